package rental

import (
	"context"
	"math"
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/store"
	"github.com/iov-one/rentbook/weavetest"
	"github.com/iov-one/rentbook/weavetest/assert"
	"github.com/iov-one/rentbook/x/cash"
)

// fixedClock always returns the same time. Tests move it forward by
// assigning a new value.
type fixedClock struct {
	now rentbook.UnixTime
}

func (c *fixedClock) Now(rentbook.Context) (rentbook.UnixTime, error) {
	return c.now, nil
}

type fixture struct {
	db     rentbook.CacheableKVStore
	ctrl   cash.Controller
	clock  *fixedClock
	engine *Engine
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	db := store.MemStore()
	migration.MustInitPkg(db, "cash", "rental")
	ctrl := cash.NewController(cash.NewBucket())
	clock := &fixedClock{now: 1500000000}
	return &fixture{
		db:     db,
		ctrl:   ctrl,
		clock:  clock,
		engine: NewEngine(NewStore(), ctrl, clock),
	}
}

func (f *fixture) balance(t testing.TB, a rentbook.Address) uint64 {
	t.Helper()
	b, err := f.ctrl.Balance(f.db, a)
	assert.Nil(t, err)
	return b
}

func (f *fixture) record(t testing.TB, id []byte) *Record {
	t.Helper()
	r, err := NewStore().Load(f.db, id)
	assert.Nil(t, err)
	return r
}

func TestRentAndReturn(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	renter := weavetest.NewCondition().Address()
	id := []byte("book-1")
	ctx := context.Background()

	f := newFixture(t)
	assert.Nil(t, f.ctrl.Credit(f.db, renter, 1000))

	if _, err := f.engine.Initialize(f.db, id, owner, 100); err != nil {
		t.Fatalf("initialize: %s", err)
	}
	initialized := f.record(t, id)
	if !initialized.IsFree() || initialized.Escrowed != 0 {
		t.Fatalf("new record must be free: %+v", initialized)
	}

	start := f.clock.now
	assert.Nil(t, f.engine.Rent(ctx, f.db, id, renter, 3))

	rec := f.record(t, id)
	assert.Equal(t, false, rec.IsFree())
	assert.Equal(t, uint64(300), rec.Escrowed)
	assert.Equal(t, renter, rec.Rental.Renter)
	assert.Equal(t, uint64(3), rec.Rental.Duration)
	assert.Equal(t, start, rec.Rental.StartTime)
	assert.Equal(t, uint64(700), f.balance(t, renter))
	assert.Equal(t, uint64(300), f.balance(t, EscrowAddress(id)))

	f.clock.now = start + 3*rentbook.SecondsPerDay
	assert.Nil(t, f.engine.Return(ctx, f.db, id, owner, renter))

	assert.Equal(t, initialized, f.record(t, id))
	assert.Equal(t, uint64(300), f.balance(t, owner))
	assert.Equal(t, uint64(0), f.balance(t, EscrowAddress(id)))
	assert.Equal(t, uint64(700), f.balance(t, renter))

	// A returned record can be rented again.
	assert.Nil(t, f.engine.Rent(ctx, f.db, id, renter, 1))
	assert.Equal(t, uint64(600), f.balance(t, renter))
}

func TestInitialize(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		id      []byte
		owner   rentbook.Address
		price   uint64
		wantErr *errors.Error
	}{
		"free record": {
			id:    []byte("a"),
			owner: owner,
			price: 10,
		},
		"zero price is allowed": {
			id:    []byte("b"),
			owner: owner,
		},
		"already initialized": {
			id:      []byte("existing"),
			owner:   owner,
			price:   10,
			wantErr: ErrAlreadyInitialized,
		},
		"missing id": {
			owner:   owner,
			wantErr: errors.ErrEmpty,
		},
		"invalid owner": {
			id:      []byte("c"),
			owner:   rentbook.Address("owner"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.engine.Initialize(f.db, []byte("existing"), owner, 1)
			assert.Nil(t, err)

			rec, err := f.engine.Initialize(f.db, tc.id, tc.owner, tc.price)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, true, rec.IsFree())
			assert.Equal(t, tc.price, f.record(t, tc.id).RentPricePerDay)
		})
	}
}

func TestRentFailures(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	renter := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()

	cases := map[string]struct {
		price   uint64
		id      []byte
		renter  rentbook.Address
		days    uint64
		rented  bool
		wantErr *errors.Error
	}{
		"unknown record": {
			price:   10,
			id:      []byte("unknown"),
			renter:  renter,
			days:    1,
			wantErr: errors.ErrNotFound,
		},
		"already rented": {
			price:   10,
			renter:  other,
			days:    1,
			rented:  true,
			wantErr: ErrAlreadyRented,
		},
		"zero days": {
			price:   10,
			renter:  renter,
			wantErr: errors.ErrInput,
		},
		"invalid renter": {
			price:   10,
			renter:  rentbook.Address("renter"),
			days:    1,
			wantErr: errors.ErrInput,
		},
		"price overflow": {
			price:   math.MaxUint64,
			renter:  renter,
			days:    2,
			wantErr: errors.ErrOverflow,
		},
		"end time overflow": {
			renter:  renter,
			days:    math.MaxInt64 / rentbook.SecondsPerDay,
			wantErr: errors.ErrOverflow,
		},
		"insufficient funds": {
			price:   1001,
			renter:  renter,
			days:    1,
			wantErr: errors.ErrInsufficientFunds,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			assert.Nil(t, f.ctrl.Credit(f.db, renter, 1000))
			assert.Nil(t, f.ctrl.Credit(f.db, other, 1000))

			recID := []byte("book")
			_, err := f.engine.Initialize(f.db, recID, owner, tc.price)
			assert.Nil(t, err)
			if tc.rented {
				assert.Nil(t, f.engine.Rent(ctx, f.db, recID, renter, 1))
			}
			want := f.record(t, recID)

			id := tc.id
			if id == nil {
				id = recID
			}
			err = f.engine.Rent(ctx, f.db, id, tc.renter, tc.days)
			assert.IsErr(t, tc.wantErr, err)

			// A failed rent leaves the state untouched.
			assert.Equal(t, want, f.record(t, recID))
			if !tc.rented {
				assert.Equal(t, uint64(1000), f.balance(t, renter))
			}
			assert.Equal(t, uint64(1000), f.balance(t, other))
		})
	}
}

func TestReturnFailures(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	renter := weavetest.NewCondition().Address()
	stranger := weavetest.NewCondition().Address()
	const start rentbook.UnixTime = 1500000000

	cases := map[string]struct {
		rented  bool
		now     rentbook.UnixTime
		owner   rentbook.Address
		renter  rentbook.Address
		wantErr *errors.Error
	}{
		"not rented": {
			now:     start + 10*rentbook.SecondsPerDay,
			owner:   owner,
			renter:  renter,
			wantErr: ErrNotRented,
		},
		"rental period not over": {
			rented:  true,
			now:     start + 1*rentbook.SecondsPerDay,
			owner:   owner,
			renter:  renter,
			wantErr: ErrRentalPeriodNotOver,
		},
		"one second before the end": {
			rented:  true,
			now:     start + 2*rentbook.SecondsPerDay - 1,
			owner:   owner,
			renter:  renter,
			wantErr: ErrRentalPeriodNotOver,
		},
		"returned exactly at the end": {
			rented: true,
			now:    start + 2*rentbook.SecondsPerDay,
			owner:  owner,
			renter: renter,
		},
		"renter mismatch": {
			rented:  true,
			now:     start + 2*rentbook.SecondsPerDay,
			owner:   owner,
			renter:  stranger,
			wantErr: errors.ErrUnauthorized,
		},
		"owner mismatch": {
			rented:  true,
			now:     start + 2*rentbook.SecondsPerDay,
			owner:   stranger,
			renter:  renter,
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.clock.now = start
			ctx := context.Background()
			assert.Nil(t, f.ctrl.Credit(f.db, renter, 1000))

			id := []byte("book")
			_, err := f.engine.Initialize(f.db, id, owner, 100)
			assert.Nil(t, err)
			if tc.rented {
				assert.Nil(t, f.engine.Rent(ctx, f.db, id, renter, 2))
			}
			want := f.record(t, id)

			f.clock.now = tc.now
			err = f.engine.Return(ctx, f.db, id, tc.owner, tc.renter)
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantErr == nil {
				assert.Equal(t, true, f.record(t, id).IsFree())
				assert.Equal(t, uint64(200), f.balance(t, owner))
				assert.Equal(t, uint64(0), f.balance(t, EscrowAddress(id)))
				return
			}
			assert.Equal(t, want, f.record(t, id))
			assert.Equal(t, uint64(0), f.balance(t, owner))
			assert.Equal(t, want.Escrowed, f.balance(t, EscrowAddress(id)))
		})
	}
}

func TestReturnAfterTheEnd(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	renter := weavetest.NewCondition().Address()
	ctx := context.Background()

	f := newFixture(t)
	assert.Nil(t, f.ctrl.Credit(f.db, renter, 50))
	id := []byte("late")
	_, err := f.engine.Initialize(f.db, id, owner, 25)
	assert.Nil(t, err)
	assert.Nil(t, f.engine.Rent(ctx, f.db, id, renter, 2))

	// Returning late costs nothing extra.
	f.clock.now += 30 * rentbook.SecondsPerDay
	assert.Nil(t, f.engine.Return(ctx, f.db, id, owner, renter))
	assert.Equal(t, uint64(50), f.balance(t, owner))
	assert.Equal(t, uint64(0), f.balance(t, renter))
}

func TestZeroPriceRental(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	renter := weavetest.NewCondition().Address()
	ctx := context.Background()

	f := newFixture(t)
	id := []byte("free")
	_, err := f.engine.Initialize(f.db, id, owner, 0)
	assert.Nil(t, err)
	assert.Nil(t, f.engine.Rent(ctx, f.db, id, renter, 5))
	assert.Equal(t, uint64(0), f.record(t, id).Escrowed)

	f.clock.now += 5 * rentbook.SecondsPerDay
	assert.Nil(t, f.engine.Return(ctx, f.db, id, owner, renter))
	assert.Equal(t, true, f.record(t, id).IsFree())
}

func TestBlockClock(t *testing.T) {
	_, err := BlockClock{}.Now(context.Background())
	assert.IsErr(t, errors.ErrState, err)

	ctx := rentbook.WithBlockTime(context.Background(), rentbook.UnixTime(1234567890).Time())
	now, err := BlockClock{}.Now(ctx)
	assert.Nil(t, err)
	assert.Equal(t, rentbook.UnixTime(1234567890), now)
}

func TestRentalEnd(t *testing.T) {
	end, err := rentalEnd(100, 2)
	assert.Nil(t, err)
	assert.Equal(t, rentbook.UnixTime(100+2*rentbook.SecondsPerDay), end)

	_, err = rentalEnd(100, math.MaxUint64)
	assert.IsErr(t, errors.ErrOverflow, err)

	_, err = rentalEnd(math.MaxInt64-10, 1)
	assert.IsErr(t, errors.ErrOverflow, err)
}
