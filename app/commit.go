package app

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// CommitStore keeps the committed state together with the two scratch
// pads used while a block is processed. Deliver writes are flushed on
// Commit and check writes are dropped.
type CommitStore struct {
	committed rentbook.CommitKVStore
	deliver   rentbook.KVCacheWrap
	check     rentbook.KVCacheWrap
}

// NewCommitStore loads the latest committed version of the store.
func NewCommitStore(store rentbook.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (rentbook.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates new deliver/check caches
func (cs *CommitStore) Commit() (rentbook.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return rentbook.CommitID{}, errors.Wrap(err, "flush deliver")
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() rentbook.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() rentbook.CacheableKVStore {
	return cs.deliver
}

// _rb: prefixes data owned by the application itself
const chainIDKey = "_rb:chainID"

func loadChainID(kv rentbook.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv rentbook.KVStore, chainID string) error {
	if !rentbook.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chain id")
	}
	if exists {
		return errors.Wrap(errors.ErrImmutable, "chain id already set")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}
