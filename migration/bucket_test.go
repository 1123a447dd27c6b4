package migration

import (
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/orm"
	"github.com/iov-one/rentbook/store"
	"github.com/iov-one/rentbook/weavetest/assert"
)

func TestModelBucketMigratesOnLoad(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, func(db rentbook.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Content += " migrated"
		return nil
	})

	db := store.MemStore()
	MustInitPkg(db, "mypkg")

	b := NewModelBucket("mypkg", orm.NewModelBucket("mymodels", &MyModel{}))
	b.useRegister(reg)

	// A model with no schema is stamped with the current one.
	m := &MyModel{Metadata: &rentbook.Metadata{}, Content: "old"}
	assert.Nil(t, b.Put(db, []byte("a"), m))
	assert.Equal(t, uint32(1), m.Metadata.Schema)

	var got MyModel
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, "old", got.Content)
	assert.Equal(t, uint32(1), got.Metadata.Schema)

	// Upgrade the package schema. Stored data is migrated when loaded.
	assert.Nil(t, NewSchemaBucket().Create(db, &Schema{
		Metadata: &rentbook.Metadata{Schema: 1},
		Pkg:      "mypkg",
		Version:  2,
	}))
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, "old migrated", got.Content)
	assert.Equal(t, uint32(2), got.Metadata.Schema)
}

func TestModelBucketRequiresSchema(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("notinit", orm.NewModelBucket("mymodels", &MyModel{}))

	err := b.Put(db, []byte("a"), &MyModel{Metadata: &rentbook.Metadata{Schema: 1}})
	assert.IsErr(t, errors.ErrNotFound, err)

	MustInitPkg(db, "notinit")
	err = b.Create(db, []byte("a"), &MyModel{})
	assert.IsErr(t, errors.ErrMetadata, err)
}
