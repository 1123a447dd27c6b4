/*
Package migration provides tooling for schema versioned entities. It can be
applied both to messages and to models.

Every versioned entity carries a *rentbook.Metadata whose Schema attribute
tells which layout the data was written with. The current schema of each
package is stored in the database and is initialized from the genesis file:

	"initialize_schema": [
	    {"pkg": "cash", "ver": 1},
	    {"pkg": "rental", "ver": 1}
	]

Extensions register a migration function for every schema version of every
entity they own in the package init, using NoModification when the layout did
not change:

	func init() {
		migration.MustRegister(1, &Record{}, migration.NoModification)
	}

Models stored using ModelBucket are migrated when loaded and stamped with the
current schema when saved. Messages are migrated before reaching the handler
when routes are registered through SchemaMigratingRegistry.
*/
package migration
