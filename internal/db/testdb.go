package db

import (
	"database/sql"
	"testing"
)

// NewTestDB creates a fresh in-memory inventory database with the schema
// applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	// Each pooled connection would get its own in-memory database.
	database.SetMaxOpenConns(1)

	if err := EnsureSchema(database); err != nil {
		database.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { database.Close() })

	return database
}

// NewTestLogDB creates a fresh in-memory activity-log database.
func NewTestLogDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test log database: %v", err)
	}
	database.SetMaxOpenConns(1)

	if err := EnsureLogSchema(database); err != nil {
		database.Close()
		t.Fatalf("creating test log database schema: %v", err)
	}

	t.Cleanup(func() { database.Close() })

	return database
}
