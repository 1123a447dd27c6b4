package rental

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/orm"
	"github.com/iov-one/rentbook/x"
)

func init() {
	migration.MustRegister(1, &Record{}, migration.NoModification)
}

// BucketName is where the records are stored.
const BucketName = "rental"

// Record is the state of a single rentable asset. A nil Rental means the
// record is free.
type Record struct {
	Metadata        *rentbook.Metadata
	Owner           rentbook.Address
	RentPricePerDay uint64
	Rental          *Rental
	// Escrowed is the amount held by the record escrow account.
	Escrowed uint64
}

// Rental describes an ongoing rental. All attributes are always set.
type Rental struct {
	Renter    rentbook.Address
	Duration  uint64 // days
	StartTime rentbook.UnixTime
}

var _ orm.Model = (*Record)(nil)

// NewRecord returns a free record.
func NewRecord(owner rentbook.Address, pricePerDay uint64) *Record {
	return &Record{
		Metadata:        &rentbook.Metadata{Schema: 1},
		Owner:           owner,
		RentPricePerDay: pricePerDay,
	}
}

// IsFree returns true if the record can be rented.
func (r *Record) IsFree() bool {
	return r.Rental == nil
}

func (r *Record) GetMetadata() *rentbook.Metadata {
	return r.Metadata
}

func (r *Record) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", r.Owner.Validate())
	if r.Rental == nil {
		if r.Escrowed != 0 {
			errs = errors.AppendField(errs, "Escrowed", errors.Wrap(errors.ErrState, "funds escrowed without a rental"))
		}
		return errs
	}
	errs = errors.AppendField(errs, "Rental.Renter", r.Rental.Renter.Validate())
	if r.Rental.Duration == 0 {
		errs = errors.AppendField(errs, "Rental.Duration", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Rental.StartTime", r.Rental.StartTime.Validate())
	return errs
}

func (r *Record) Copy() orm.CloneableData {
	cpy := &Record{
		Metadata:        r.Metadata.Copy(),
		Owner:           append(rentbook.Address(nil), r.Owner...),
		RentPricePerDay: r.RentPricePerDay,
		Escrowed:        r.Escrowed,
	}
	if r.Rental != nil {
		cpy.Rental = &Rental{
			Renter:    append(rentbook.Address(nil), r.Rental.Renter...),
			Duration:  r.Rental.Duration,
			StartTime: r.Rental.StartTime,
		}
	}
	return cpy
}

// Amount returns price*days, failing with ErrOverflow if it does not fit.
func (r *Record) Amount(days uint64) (uint64, error) {
	return x.MulUint64(r.RentPricePerDay, days)
}

// End returns the first moment the rental can be returned.
func (r *Rental) End() (rentbook.UnixTime, error) {
	return rentalEnd(r.StartTime, r.Duration)
}

// EscrowCondition returns the condition of the account holding the funds
// of the record with given id.
func EscrowCondition(id []byte) rentbook.Condition {
	return rentbook.NewCondition("rental", "record", id)
}

// EscrowAddress returns the address holding the funds of the record with
// given id.
func EscrowAddress(id []byte) rentbook.Address {
	return EscrowCondition(id).Address()
}

// NewRecordBucket returns a schema versioned bucket for records.
func NewRecordBucket() orm.ModelBucket {
	b := orm.NewModelBucket(BucketName, &Record{})
	return migration.NewModelBucket("rental", b)
}
