package app

import (
	"context"
	"testing"

	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	counter := &weavetest.Handler{}
	failing := &weavetest.Handler{DeliverErr: errors.ErrState}

	r.Handle("rental/rent", counter)
	r.Handle("cash/send", failing)

	assert.Panics(t, func() { r.Handle("rental/rent", counter) })
	assert.Panics(t, func() { r.Handle("rental:rent", counter) })

	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "rental/rent"}}
	_, err := r.Check(ctx, nil, tx)
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	tx = &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "cash/send"}}
	_, err = r.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrState.Is(err))

	tx = &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "rental/missing"}}
	_, err = r.Check(ctx, nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrNotFound.Is(err))

	tx = &weavetest.Tx{Err: errors.ErrMsg}
	_, err = r.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrMsg.Is(err))
	assert.Equal(t, 2, counter.CallCount())
}
