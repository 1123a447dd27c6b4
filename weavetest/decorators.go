package weavetest

import "github.com/iov-one/rentbook"

// Decorator is a mock implementation of the rentbook.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ rentbook.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx, next rentbook.Checker) (*rentbook.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx, next rentbook.Deliverer) (*rentbook.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps the handler with a single decorator.
func Decorate(h rentbook.Handler, d rentbook.Decorator) rentbook.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn rentbook.Handler
	dc rentbook.Decorator
}

var _ rentbook.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
