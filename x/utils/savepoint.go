package utils

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ rentbook.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx rentbook.Context, store rentbook.KVStore, tx rentbook.Tx, next rentbook.Checker) (*rentbook.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *rentbook.CheckResult
	err := WithSavepoint(store, func(db rentbook.KVStore) error {
		var err error
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx rentbook.Context, store rentbook.KVStore, tx rentbook.Tx, next rentbook.Deliverer) (*rentbook.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *rentbook.DeliverResult
	err := WithSavepoint(store, func(db rentbook.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// WithSavepoint runs fn on a cache wrap of the store. All changes made by
// fn are written to the store only if fn succeeds, and dropped otherwise.
// Stores that cannot be cache wrapped are passed to fn directly.
func WithSavepoint(store rentbook.KVStore, fn func(rentbook.KVStore) error) error {
	cstore, ok := store.(rentbook.CacheableKVStore)
	if !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
