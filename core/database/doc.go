// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures either the embedded SQLite store (default) or a MySQL server
// based on the application's configuration.
//
// # Connect
//
// The generic Connect function establishes a connection to the configured
// database. Driver selection happens here; everything above it works
// against *gorm.DB regardless of the backing store.
//
// # Schema Inspection
//
// The package includes tools to inspect the live schema, used by the
// integrity checks to verify that the consolidated table matches the
// expected column set.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "hechos")
package database
