package cash

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// The address is in hex, not base64.
type GenesisAccount struct {
	Address rentbook.Address `json:"address"`
	Balance uint64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ rentbook.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts rentbook.Options, kv rentbook.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		w := &Wallet{
			Metadata: &rentbook.Metadata{Schema: 1},
			Balance:  acct.Balance,
		}
		if err := bucket.Create(kv, acct.Address, w); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
