package migration

import (
	"testing"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
	"github.com/iov-one/rentbook/weavetest/assert"
)

func TestZeroMigrationIsNotAllowed(t *testing.T) {
	reg := newRegister()

	assert.IsErr(t, errors.ErrInput, reg.Register(0, &MyModel{}, NoModification))
	assert.IsErr(t, errors.ErrInput, reg.Apply(nil, &MyModel{}, 0))
}

func TestRegisterMigrationMustBeSequential(t *testing.T) {
	reg := newRegister()

	// Each migration must start with 1.
	assert.IsErr(t, errors.ErrInput, reg.Register(2, &MyModel{}, NoModification))

	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, NoModification)

	assert.IsErr(t, errors.ErrInput, reg.Register(4, &MyModel{}, NoModification))
	assert.IsErr(t, errors.ErrDuplicate, reg.Register(2, &MyModel{}, NoModification))

	reg.MustRegister(3, &MyModel{}, NoModification)
	reg.MustRegister(4, &MyModel{}, NoModification)
}

func TestApply(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, func(db rentbook.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Content += "to2"
		return nil
	})
	reg.MustRegister(3, &MyModel{}, NoModification)
	reg.MustRegister(4, &MyModel{}, func(db rentbook.ReadOnlyKVStore, m Migratable) error {
		m.(*MyModel).Content += "to4"
		return nil
	})

	mymodel := &MyModel{
		Metadata: &rentbook.Metadata{Schema: 1},
		Content:  "init ",
	}

	// Running a migration can bring it up to any state in the future.
	assert.Nil(t, reg.Apply(nil, mymodel, 3))
	assert.Equal(t, uint32(3), mymodel.Metadata.Schema)
	assert.Equal(t, "init to2", mymodel.Content)

	assert.Nil(t, reg.Apply(nil, mymodel, 4))
	assert.Equal(t, uint32(4), mymodel.Metadata.Schema)
	assert.Equal(t, "init to2to4", mymodel.Content)

	// Already up to date.
	assert.Nil(t, reg.Apply(nil, mymodel, 4))
	assert.Equal(t, "init to2to4", mymodel.Content)

	// Cannot migrate backwards.
	assert.IsErr(t, errors.ErrMetadata, reg.Apply(nil, mymodel, 2))
}

func TestApplyFailures(t *testing.T) {
	reg := newRegister()
	reg.MustRegister(1, &MyModel{}, NoModification)
	reg.MustRegister(2, &MyModel{}, func(db rentbook.ReadOnlyKVStore, m Migratable) error {
		return errors.Wrap(errors.ErrState, "cannot migrate")
	})

	cases := map[string]struct {
		model   *MyModel
		to      uint32
		wantErr *errors.Error
	}{
		"missing metadata": {
			model:   &MyModel{},
			to:      1,
			wantErr: errors.ErrMetadata,
		},
		"unknown version": {
			model:   &MyModel{Metadata: &rentbook.Metadata{Schema: 1}},
			to:      3,
			wantErr: errors.ErrState,
		},
		"failing migration": {
			model:   &MyModel{Metadata: &rentbook.Metadata{Schema: 1}},
			to:      2,
			wantErr: errors.ErrState,
		},
		"invalid result": {
			model:   &MyModel{Metadata: &rentbook.Metadata{Schema: 1}, Content: "invalid"},
			to:      1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, reg.Apply(nil, tc.model, tc.to))
		})
	}
}
