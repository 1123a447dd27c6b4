package rental

import (
	"math"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/x"
	"github.com/iov-one/rentbook/x/utils"
)

// Engine executes the state transitions of records. Every operation runs
// in a savepoint: it either commits fully or leaves records and balances
// unchanged.
//
// The engine does not check signatures. Callers must ensure that the
// presented owner and renter identities authorized the operation.
type Engine struct {
	store  Store
	ledger Ledger
	clock  Clock
}

// NewEngine returns an engine using given collaborators.
func NewEngine(s Store, l Ledger, c Clock) *Engine {
	return &Engine{store: s, ledger: l, clock: c}
}

// Initialize creates a free record. No funds are moved.
func (e *Engine) Initialize(db rentbook.KVStore, id []byte, owner rentbook.Address, pricePerDay uint64) (*Record, error) {
	if len(id) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "record id")
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	rec := NewRecord(owner, pricePerDay)
	err := utils.WithSavepoint(db, func(db rentbook.KVStore) error {
		return e.store.Create(db, id, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Rent locks price*days funds of the renter in the record escrow account
// and marks the record as occupied, starting now.
func (e *Engine) Rent(ctx rentbook.Context, db rentbook.KVStore, id []byte, renter rentbook.Address, days uint64) error {
	return utils.WithSavepoint(db, func(db rentbook.KVStore) error {
		rec, err := e.store.Load(db, id)
		if err != nil {
			return err
		}
		if !rec.IsFree() {
			return errors.Wrapf(ErrAlreadyRented, "record %X", id)
		}
		if days == 0 {
			return errors.Wrap(errors.ErrInput, "days must be greater than zero")
		}
		if err := renter.Validate(); err != nil {
			return errors.Wrap(err, "renter")
		}
		amount, err := rec.Amount(days)
		if err != nil {
			return errors.Wrap(err, "rent amount")
		}
		now, err := e.clock.Now(ctx)
		if err != nil {
			return errors.Wrap(err, "clock")
		}
		if _, err := rentalEnd(now, days); err != nil {
			return err
		}

		if err := e.ledger.Debit(db, renter, amount); err != nil {
			return errors.Wrap(err, "debit renter")
		}
		if err := e.ledger.Credit(db, EscrowAddress(id), amount); err != nil {
			return errors.Wrap(err, "credit escrow")
		}
		if rec.Escrowed, err = x.AddUint64(rec.Escrowed, amount); err != nil {
			return errors.Wrap(err, "escrowed")
		}
		rec.Rental = &Rental{
			Renter:    renter,
			Duration:  days,
			StartTime: now,
		}
		return e.store.Save(db, id, rec)
	})
}

// Return releases the escrowed funds to the owner once the rental period
// is over and makes the record free again. Early returns are rejected.
func (e *Engine) Return(ctx rentbook.Context, db rentbook.KVStore, id []byte, owner, renter rentbook.Address) error {
	return utils.WithSavepoint(db, func(db rentbook.KVStore) error {
		rec, err := e.store.Load(db, id)
		if err != nil {
			return err
		}
		if rec.IsFree() {
			return errors.Wrapf(ErrNotRented, "record %X", id)
		}
		now, err := e.clock.Now(ctx)
		if err != nil {
			return errors.Wrap(err, "clock")
		}
		end, err := rec.Rental.End()
		if err != nil {
			return err
		}
		if now < end {
			return errors.Wrapf(ErrRentalPeriodNotOver, "ends at %s", end)
		}
		if !owner.Equals(rec.Owner) {
			return errors.Wrap(errors.ErrUnauthorized, "owner mismatch")
		}
		if !renter.Equals(rec.Rental.Renter) {
			return errors.Wrap(errors.ErrUnauthorized, "renter mismatch")
		}

		// The amount is computed again from the immutable price and
		// the rental duration instead of trusting the escrowed value.
		amount, err := rec.Amount(rec.Rental.Duration)
		if err != nil {
			return errors.Wrap(err, "rent amount")
		}
		if err := e.ledger.Debit(db, EscrowAddress(id), amount); err != nil {
			return errors.Wrap(err, "debit escrow")
		}
		if err := e.ledger.Credit(db, owner, amount); err != nil {
			return errors.Wrap(err, "credit owner")
		}
		if rec.Escrowed, err = x.SubUint64(rec.Escrowed, amount); err != nil {
			return errors.Wrap(err, "escrowed")
		}
		rec.Rental = nil
		return e.store.Save(db, id, rec)
	})
}

// rentalEnd returns start + days*SecondsPerDay or ErrOverflow if the
// result cannot be represented.
func rentalEnd(start rentbook.UnixTime, days uint64) (rentbook.UnixTime, error) {
	seconds, err := x.MulUint64(days, rentbook.SecondsPerDay)
	if err != nil {
		return 0, errors.Wrap(err, "rental duration")
	}
	if start < 0 || seconds > uint64(math.MaxInt64-int64(start)) {
		return 0, errors.Wrapf(errors.ErrOverflow, "rental end of %d days", days)
	}
	return start + rentbook.UnixTime(seconds), nil
}
