package migration

import (
	"reflect"

	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// Migratable is implemented by both messages and models that support schema
// versioning.
type Migratable interface {
	GetMetadata() *rentbook.Metadata
	Validate() error
}

// Migrator is a function that migrates a data entity from version
// requiredVersion-1 to the requested version.
type Migrator func(db rentbook.ReadOnlyKVStore, m Migratable) error

// NoModification is a migration function for data that requires no change.
func NoModification(db rentbook.ReadOnlyKVStore, m Migratable) error {
	return nil
}

func newRegister() *register {
	return &register{
		handlers: make(map[payloadVersion]Migrator),
	}
}

type register struct {
	handlers map[payloadVersion]Migrator
}

// payloadVersion references a message or a model at a given schema version.
type payloadVersion struct {
	payload reflect.Type
	version uint32
}

func (r *register) MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	if err := r.Register(migrationTo, m, fn); err != nil {
		panic(err)
	}
}

// Register adds a migration function for given payload type. Versions must
// be registered sequentially starting with 1.
func (r *register) Register(migrationTo uint32, m Migratable, fn Migrator) error {
	if migrationTo < 1 {
		return errors.Wrap(errors.ErrInput, "minimal allowed version is 1")
	}
	tp, err := payloadType(m)
	if err != nil {
		return err
	}

	pv := payloadVersion{version: migrationTo, payload: tp}
	if _, ok := r.handlers[pv]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "already registered: %s.%s:%d", tp.PkgPath(), tp.Name(), migrationTo)
	}
	if migrationTo > 1 {
		prev := payloadVersion{version: migrationTo - 1, payload: tp}
		if _, ok := r.handlers[prev]; !ok {
			return errors.Wrapf(errors.ErrInput, "missing %d version migration", migrationTo-1)
		}
	}
	r.handlers[pv] = fn
	return nil
}

// Apply updates the payload in place by running all migrations up to the
// migrateTo version. The payload is validated only in its final version.
func (r *register) Apply(db rentbook.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	if migrateTo < 1 {
		return errors.Wrap(errors.ErrInput, "minimal allowed version is 1")
	}
	tp, err := payloadType(m)
	if err != nil {
		return err
	}

	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrap(errors.ErrMetadata, "nil metadata")
	}
	if meta.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version not set")
	}
	if meta.Schema > migrateTo {
		return errors.Wrapf(errors.ErrMetadata, "schema %d is newer than %d", meta.Schema, migrateTo)
	}

	for v := meta.Schema + 1; v <= migrateTo; v++ {
		migrate, ok := r.handlers[payloadVersion{payload: tp, version: v}]
		if !ok {
			return errors.Wrapf(errors.ErrState, "migration to version %d missing", v)
		}
		if err := migrate(db, m); err != nil {
			return errors.Wrapf(err, "migration to version %d", v)
		}
		meta.Schema = v
	}

	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "validation")
	}
	return nil
}

func payloadType(m Migratable) (reflect.Type, error) {
	tp := reflect.TypeOf(m)
	for tp != nil && tp.Kind() == reflect.Ptr {
		tp = tp.Elem()
	}
	if tp == nil || tp.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "only struct can be migrated, got %T", m)
	}
	return tp, nil
}

// reg is the global register that must be used during the runtime to
// register migration functions.
var reg = newRegister()

// MustRegister registers a migration function for the given payload
// type. It panics on failure and should be called from a package init.
func MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	reg.MustRegister(migrationTo, m, fn)
}

// Apply updates a payload by applying all missing migrations. Even a no
// modification migration updates the metadata to point to the latest
// version.
//
// Changes are applied directly on the passed payload, so even if this
// function fails some of the migrations might have been applied.
func Apply(db rentbook.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	return reg.Apply(db, m, migrateTo)
}
