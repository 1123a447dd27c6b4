package app

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the query interface of an abci application as a
// read only store of a single bucket. Keys are relative to the bucket.
type ABCIStore struct {
	app  abci.Application
	path string
}

var _ rentbook.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through the query handler
// registered under path, for example "/rentals".
func NewABCIStore(app abci.Application, path string) *ABCIStore {
	return &ABCIStore{app: app, path: path}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: a.path,
		Data: key,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %s: %s", a.path, query.Log)
	}
	var value ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal result set")
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a key query", len(value.Results))
	}
}

// Has returns true if the given key is in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return len(v) > 0, err
}

// Iterator lists the whole bucket. Only the entire range is supported
// because the query interface does not carry range bounds.
func (a *ABCIStore) Iterator(start, end []byte) (rentbook.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "iterator only implemented for entire range")
	}

	query := a.app.Query(abci.RequestQuery{
		Path: a.path + "?" + rentbook.PrefixQueryMod,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %s: %s", a.path, query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot convert to model")
	}
	return store.NewSliceIterator(models), nil
}

func toModels(keys, values []byte) ([]rentbook.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
