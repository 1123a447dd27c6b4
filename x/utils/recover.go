package utils

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// Recovery turns a panic raised by the wrapped handler into an ErrPanic
// error. The panic is logged with the logger of the context.
type Recovery struct{}

var _ rentbook.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx rentbook.Context, store rentbook.KVStore, tx rentbook.Tx, next rentbook.Checker) (_ *rentbook.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx rentbook.Context, store rentbook.KVStore, tx rentbook.Tx, next rentbook.Deliverer) (_ *rentbook.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// logPanic must be deferred before errors.Recover so that it runs after
// the panic was converted.
func logPanic(ctx rentbook.Context, err *error) {
	if errors.ErrPanic.Is(*err) {
		rentbook.GetLogger(ctx).Error("transaction panicked", "err", *err)
	}
}
