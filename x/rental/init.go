package rental

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/gconf"
)

const optKey = "rental"

// GenesisRecord describes a record created at genesis. Records always
// start free.
type GenesisRecord struct {
	ID              string           `json:"id"`
	Owner           rentbook.Address `json:"owner"`
	RentPricePerDay uint64           `json:"rent_price_per_day"`
}

// Initializer loads records from the genesis file.
type Initializer struct{}

var _ rentbook.Initializer = Initializer{}

func (Initializer) FromGenesis(opts rentbook.Options, kv rentbook.KVStore) error {
	var records []GenesisRecord
	if err := opts.ReadOptions(optKey, &records); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, BucketName, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "configuration")
	}

	store := NewStore()
	for i, r := range records {
		if err := validateRecordID([]byte(r.ID), false); err != nil {
			return errors.Wrapf(err, "record %d id", i)
		}
		if err := r.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "record %d owner", i)
		}
		if err := store.Create(kv, []byte(r.ID), NewRecord(r.Owner, r.RentPricePerDay)); err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
	}
	return nil
}
