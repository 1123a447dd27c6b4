package weavetest

import "github.com/iov-one/rentbook"

// Handler is a mock implementation of the rentbook.Handler interface. It
// returns the configured results and counts the calls.
type Handler struct {
	checkCall   int
	CheckResult rentbook.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult rentbook.DeliverResult
	DeliverErr    error
}

var _ rentbook.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes Key/Value into the store on both check and deliver
// before returning Err. Use it to test that a decorator rolls back or
// keeps the state.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ rentbook.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &rentbook.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &rentbook.DeliverResult{}, nil
}

// PanicHandler always panics.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Check(rentbook.Context, rentbook.KVStore, rentbook.Tx) (*rentbook.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(rentbook.Context, rentbook.KVStore, rentbook.Tx) (*rentbook.DeliverResult, error) {
	panic(h.Msg)
}
