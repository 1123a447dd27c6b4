package cash

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/orm"
	"github.com/iov-one/rentbook/x"
	"github.com/iov-one/rentbook/x/utils"
)

// Controller is the functionality needed by other extensions to move
// funds.
type Controller interface {
	// Balance returns the funds held by an address. An address with no
	// wallet holds nothing.
	Balance(db rentbook.ReadOnlyKVStore, holder rentbook.Address) (uint64, error)

	// Debit takes funds from an address. It fails with
	// ErrInsufficientFunds if the balance cannot cover the amount.
	Debit(db rentbook.KVStore, holder rentbook.Address, amount uint64) error

	// Credit adds funds to an address. It fails with ErrOverflow if the
	// balance would not fit.
	Credit(db rentbook.KVStore, holder rentbook.Address, amount uint64) error

	// MoveCoins debits src and credits dest. Either both happen or
	// none.
	MoveCoins(db rentbook.KVStore, src, dest rentbook.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller working on given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db rentbook.ReadOnlyKVStore, holder rentbook.Address) (uint64, error) {
	w, err := c.wallet(db, holder)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

func (c BaseController) Debit(db rentbook.KVStore, holder rentbook.Address, amount uint64) error {
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if amount == 0 {
		return nil
	}
	w, err := c.wallet(db, holder)
	if err != nil {
		return err
	}
	if w.Balance, err = x.SubUint64(w.Balance, amount); err != nil {
		return errors.Wrapf(err, "debit %s", holder)
	}
	return c.bucket.Put(db, holder, w)
}

func (c BaseController) Credit(db rentbook.KVStore, holder rentbook.Address, amount uint64) error {
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if amount == 0 {
		return nil
	}
	w, err := c.wallet(db, holder)
	if err != nil {
		return err
	}
	if w.Balance, err = x.AddUint64(w.Balance, amount); err != nil {
		return errors.Wrapf(err, "credit %s", holder)
	}
	return c.bucket.Put(db, holder, w)
}

func (c BaseController) MoveCoins(db rentbook.KVStore, src, dest rentbook.Address, amount uint64) error {
	return utils.WithSavepoint(db, func(db rentbook.KVStore) error {
		if err := c.Debit(db, src, amount); err != nil {
			return err
		}
		return c.Credit(db, dest, amount)
	})
}

// wallet loads the wallet of given address. A missing wallet is returned
// empty, ready to be saved.
func (c BaseController) wallet(db rentbook.ReadOnlyKVStore, holder rentbook.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, holder, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &rentbook.Metadata{}}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}
