package migration

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// Initializer fulfils the Initializer interface to load schema versions
// from the genesis file.
type Initializer struct{}

var _ rentbook.Initializer = Initializer{}

// FromGenesis declares the schema version of each listed package. Versions
// from 1 up to the given one are stored. The migration package itself is
// always initialized.
func (Initializer) FromGenesis(opts rentbook.Options, kv rentbook.KVStore) error {
	var schemas []struct {
		Pkg string `json:"pkg"`
		Ver uint32 `json:"ver"`
	}
	if err := opts.ReadOptions("initialize_schema", &schemas); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	MustInitPkg(kv, "migration")

	b := NewSchemaBucket()
	for i, s := range schemas {
		if s.Pkg == "" || s.Ver < 1 {
			return errors.Wrapf(errors.ErrInput, "invalid schema %d", i)
		}
		for v := uint32(1); v <= s.Ver; v++ {
			err := b.Create(kv, &Schema{
				Metadata: &rentbook.Metadata{Schema: 1},
				Pkg:      s.Pkg,
				Version:  v,
			})
			if err != nil {
				return errors.Wrapf(err, "schema %s version %d", s.Pkg, v)
			}
		}
	}
	return nil
}
