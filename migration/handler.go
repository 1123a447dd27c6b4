package migration

import (
	"github.com/iov-one/rentbook"
	"github.com/iov-one/rentbook/errors"
)

// SchemaMigratingHandler returns a handler that ensures incoming messages
// are in the current schema version of the package before passing them to
// the wrapped handler. Messages that cannot be migrated are rejected.
func SchemaMigratingHandler(packageName string, h rentbook.Handler) rentbook.Handler {
	return &schemaMigratingHandler{
		handler:     h,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

type schemaMigratingHandler struct {
	handler     rentbook.Handler
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

func (h *schemaMigratingHandler) Check(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx rentbook.Context, db rentbook.KVStore, tx rentbook.Tx) (*rentbook.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db rentbook.ReadOnlyKVStore, tx rentbook.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	m, ok := msg.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrMsg, "%T cannot be migrated", msg)
	}
	currSchemaVer, err := h.schema.CurrentSchema(db, h.packageName)
	if err != nil {
		return errors.Wrap(err, "current message schema")
	}
	// Migration is applied in place, directly modifying the message.
	if err := h.migrations.Apply(db, m, currSchemaVer); err != nil {
		return errors.Wrap(err, "schema migration")
	}
	return nil
}

// SchemaMigratingRegistry returns a registry that wraps every registered
// handler with SchemaMigratingHandler.
func SchemaMigratingRegistry(packageName string, r rentbook.Registry) rentbook.Registry {
	return &schemaMigratingRegistry{
		packageName: packageName,
		reg:         r,
	}
}

type schemaMigratingRegistry struct {
	packageName string
	reg         rentbook.Registry
}

func (r *schemaMigratingRegistry) Handle(path string, h rentbook.Handler) {
	r.reg.Handle(path, SchemaMigratingHandler(r.packageName, h))
}
