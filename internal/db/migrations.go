package db

import (
	"database/sql"
	"fmt"
)

// columnMigrations lists additive columns applied in order after schema
// creation, for databases created before the column existed. ALTER TABLE ADD
// COLUMN is not idempotent in SQLite, so each entry is guarded by a probe of
// the live table. Append new entries at the end.
var columnMigrations = []struct {
	table  string
	column string
	ddl    string
}{
	// Migration 1: collateral photos were added after the first release.
	{"items", "photo", `ALTER TABLE items ADD COLUMN photo BLOB`},
	{"items", "photo_mime", `ALTER TABLE items ADD COLUMN photo_mime TEXT`},
}

// Migrate ensures the schema exists and applies any missing additive
// columns. Safe to run on every start.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range columnMigrations {
		exists, err := hasColumn(db, m.table, m.column)
		if err != nil {
			return fmt.Errorf("checking migration %d: %w", i+1, err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(m.ddl); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

// hasColumn reports whether the table already has the named column.
func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, fmt.Errorf("scanning table info: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
