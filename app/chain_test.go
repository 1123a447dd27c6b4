package app

import (
	"context"
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/weavetest"
	"github.com/iov-one/rentbook/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	var nilDecorator *weavetest.Decorator
	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		nil,
		nilDecorator,
		utils.NewRecovery(),
		c2,
	).WithHandler(h)

	ctx := context.Background()
	_, err := stack.Check(ctx, nil, &weavetest.Tx{})
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, &weavetest.Tx{})
	require.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// A failing decorator stops the chain.
	c1.DeliverErr = errors.ErrUnauthorized
	_, err = stack.Deliver(ctx, nil, &weavetest.Tx{})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanics(t *testing.T) {
	stack := ChainDecorators(
		utils.NewRecovery(),
	).WithHandler(weavetest.PanicHandler{Msg: "boom"})

	_, err := stack.Deliver(context.Background(), nil, &weavetest.Tx{})
	assert.True(t, errors.ErrPanic.Is(err))
}

func TestChainExtends(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{CheckErr: errors.ErrState}
	base := ChainDecorators(c1)
	extended := base.Chain(c2)

	var h rentbook.Handler = &weavetest.Handler{}
	_, err := base.WithHandler(h).Check(context.Background(), nil, &weavetest.Tx{})
	assert.NoError(t, err)
	_, err = extended.WithHandler(h).Check(context.Background(), nil, &weavetest.Tx{})
	assert.True(t, errors.ErrState.Is(err))
	assert.Equal(t, 2, c1.CallCount())
}
