package rental

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/x/cash"
)

// Ledger moves funds between holders.
type Ledger interface {
	// Debit fails with ErrInsufficientFunds if the holder cannot cover
	// the amount.
	Debit(db rentbook.KVStore, holder rentbook.Address, amount uint64) error
	Credit(db rentbook.KVStore, holder rentbook.Address, amount uint64) error
}

// The cash controller is the ledger used by the application.
var _ Ledger = cash.BaseController{}

// Clock is the source of the current time. It is read once per operation.
type Clock interface {
	Now(ctx rentbook.Context) (rentbook.UnixTime, error)
}

// BlockClock returns the time of the block being processed.
type BlockClock struct{}

var _ Clock = BlockClock{}

func (BlockClock) Now(ctx rentbook.Context) (rentbook.UnixTime, error) {
	t, err := rentbook.BlockTime(ctx)
	if err != nil {
		return 0, errors.Wrap(errors.ErrState, err.Error())
	}
	now := rentbook.AsUnixTime(t)
	if err := now.Validate(); err != nil {
		return 0, errors.Wrap(err, "block time")
	}
	return now, nil
}
