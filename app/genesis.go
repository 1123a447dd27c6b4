package app

import (
	"github.com/iov-one/rentbook"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...rentbook.Initializer) rentbook.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []rentbook.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts rentbook.Options, kv rentbook.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
