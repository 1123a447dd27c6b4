package cash

import (
	"math"
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/store"
	"github.com/iov-one/rentbook/weavetest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Test controller works as intended", t, func() {
		kv := store.MemStore()
		migration.MustInitPkg(kv, "cash")

		ctrl := NewController(NewBucket())
		alice := weavetest.NewCondition().Address()
		bert := weavetest.NewCondition().Address()

		balance := func(addr rentbook.Address) uint64 {
			b, err := ctrl.Balance(kv, addr)
			So(err, ShouldBeNil)
			return b
		}

		Convey("A missing wallet holds nothing", func() {
			So(balance(alice), ShouldEqual, 0)
		})

		Convey("Debit of an empty wallet fails", func() {
			err := ctrl.Debit(kv, alice, 1)
			So(errors.ErrInsufficientFunds.Is(err), ShouldBeTrue)
			So(balance(alice), ShouldEqual, 0)
		})

		Convey("Zero amounts are a no-op", func() {
			So(ctrl.Debit(kv, alice, 0), ShouldBeNil)
			So(ctrl.Credit(kv, alice, 0), ShouldBeNil)
			err := NewBucket().Has(kv, alice)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("Invalid holder is rejected", func() {
			err := ctrl.Credit(kv, rentbook.Address("short"), 5)
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})

		Convey("When alice is credited", func() {
			So(ctrl.Credit(kv, alice, 500), ShouldBeNil)
			So(balance(alice), ShouldEqual, 500)

			Convey("Debit decreases the balance", func() {
				So(ctrl.Debit(kv, alice, 200), ShouldBeNil)
				So(balance(alice), ShouldEqual, 300)
			})

			Convey("Debit of the whole balance leaves zero", func() {
				So(ctrl.Debit(kv, alice, 500), ShouldBeNil)
				So(balance(alice), ShouldEqual, 0)
			})

			Convey("Debit over the balance fails without change", func() {
				err := ctrl.Debit(kv, alice, 501)
				So(errors.ErrInsufficientFunds.Is(err), ShouldBeTrue)
				So(balance(alice), ShouldEqual, 500)
			})

			Convey("Credit cannot overflow", func() {
				err := ctrl.Credit(kv, alice, math.MaxUint64)
				So(errors.ErrOverflow.Is(err), ShouldBeTrue)
				So(balance(alice), ShouldEqual, 500)
			})

			Convey("Move coins to bert", func() {
				So(ctrl.MoveCoins(kv, alice, bert, 120), ShouldBeNil)
				So(balance(alice), ShouldEqual, 380)
				So(balance(bert), ShouldEqual, 120)
			})

			Convey("Move more than owned changes nothing", func() {
				err := ctrl.MoveCoins(kv, alice, bert, 1000)
				So(errors.ErrInsufficientFunds.Is(err), ShouldBeTrue)
				So(balance(alice), ShouldEqual, 500)
				So(balance(bert), ShouldEqual, 0)
			})

			Convey("Move that overflows the destination changes nothing", func() {
				So(ctrl.Credit(kv, bert, math.MaxUint64-100), ShouldBeNil)
				err := ctrl.MoveCoins(kv, alice, bert, 200)
				So(errors.ErrOverflow.Is(err), ShouldBeTrue)
				So(balance(alice), ShouldEqual, 500)
				So(balance(bert), ShouldEqual, uint64(math.MaxUint64-100))
			})
		})
	})
}
