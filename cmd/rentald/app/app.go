/*
Package app links together all the various components
to construct the rentald app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/app"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/migration"
	"github.com/iov-one/rentbook/store/iavl"
	"github.com/iov-one/rentbook/x"
	"github.com/iov-one/rentbook/x/cash"
	"github.com/iov-one/rentbook/x/rental"
	"github.com/iov-one/rentbook/x/sigs"
	"github.com/iov-one/rentbook/x/utils"
)

// Name is reported by the abci Info call.
const Name = "rentald"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching every message supported by rentald.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ctrl := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, ctrl)
	rental.RegisterRoutes(r, authFn, ctrl)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/rentals" and "/schemas"
func QueryRouter() rentbook.QueryRouter {
	r := rentbook.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		rental.RegisterQuery,
		migration.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders of all extensions. The schema
// versions must be loaded first.
func Initializers() rentbook.Initializer {
	return app.ChainInitializers(
		migration.Initializer{},
		cash.Initializer{},
		rental.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() rentbook.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h rentbook.Handler, tx rentbook.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return app.BaseApp{}, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps the data in memory.
func CommitKVStore(dbPath string) (rentbook.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name %q", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
