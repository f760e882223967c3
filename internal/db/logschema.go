package db

import (
	"database/sql"
	"fmt"
)

// logSchema is the schema of the standalone activity-log database. It lives
// in its own file and is never joined against the inventory tables.
const logSchema = `
CREATE TABLE IF NOT EXISTS logs (
    id        INTEGER PRIMARY KEY,
    timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    actor     TEXT NOT NULL,
    action    TEXT NOT NULL,
    details   TEXT
);
`

// EnsureLogSchema creates the activity-log table if it doesn't already exist.
func EnsureLogSchema(db *sql.DB) error {
	_, err := db.Exec(logSchema)
	if err != nil {
		return fmt.Errorf("creating log schema: %w", err)
	}
	return nil
}
