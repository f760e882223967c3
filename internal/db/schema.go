package db

import (
	"database/sql"
	"fmt"
)

// schema is the full inventory database schema.
//
// The event_id columns deliberately carry no FOREIGN KEY clause: deleting an
// event keeps its transactions, and an interrupted cascade may leave items
// pointing at a gone event. Both states are accepted for this tool, so the
// store must be able to hold them.
const schema = `
CREATE TABLE IF NOT EXISTS events (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    location      TEXT,
    start_date    TEXT,
    end_date      TEXT,
    last_modified DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    quantity      INTEGER NOT NULL DEFAULT 0,
    event_id      INTEGER,
    photo         BLOB,
    photo_mime    TEXT,
    last_modified DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS transactions (
    id        INTEGER PRIMARY KEY,
    item_id   INTEGER NOT NULL,
    event_id  INTEGER,
    delta     INTEGER NOT NULL,
    timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_transactions_item
    ON transactions(item_id);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all inventory tables and indexes if they don't
// already exist. It must run before any store call.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
