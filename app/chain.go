package app

import (
	"reflect"

	"github.com/iov-one/rentbook"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []rentbook.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewLogging(),
	  utils.NewRecovery(),
	  sigs.NewDecorator(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	  app.NewRouter(),
	)
*/
func ChainDecorators(chain ...rentbook.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain. Nil
// decorators are ignored.
func (d Decorators) Chain(chain ...rentbook.Decorator) Decorators {
	newChain := make([]rentbook.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			newChain = append(newChain, dec)
		}
	}
	return Decorators{newChain}
}

func isNilDecorator(d rentbook.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h rentbook.Handler) rentbook.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler.
type step struct {
	d    rentbook.Decorator
	next rentbook.Handler
}

var _ rentbook.Handler = step{}

func (s step) Check(ctx rentbook.Context, store rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx rentbook.Context, store rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
