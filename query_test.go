package rentbook_test

import (
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/weavetest/assert"
)

type staticQuery []rentbook.Model

func (q staticQuery) Query(rentbook.ReadOnlyKVStore, string, []byte) ([]rentbook.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	r := rentbook.NewQueryRouter()
	r.RegisterAll(
		func(qr rentbook.QueryRouter) { qr.Register("/wallets", staticQuery{}) },
		func(qr rentbook.QueryRouter) { qr.Register("rentals", staticQuery{}) },
	)

	assert.Equal(t, []string{"/rentals", "/wallets"}, r.Paths())
	if r.Handler("/rentals") == nil {
		t.Fatal("handler registered without a leading slash not found")
	}
	if r.Handler("wallets") == nil {
		t.Fatal("handler not found when queried without a leading slash")
	}
	if r.Handler("/auth") != nil {
		t.Fatal("unexpected handler for an unknown path")
	}

	assert.Panics(t, func() { r.Register("wallets", staticQuery{}) })
}
