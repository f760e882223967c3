package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

// DefaultLogLimit caps ListRecentLogs when the caller passes no usable limit.
const DefaultLogLimit = 200

// LogAction appends an entry to the activity log and returns its id. The log
// lives in its own database: db here must be the log handle, not the
// inventory handle. A pure append, it only fails on store I/O.
func LogAction(ctx context.Context, db *sql.DB, actor, action, details string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO logs (actor, action, details) VALUES (?, ?, ?)`,
		actor, action, nullable(details),
	)
	if err != nil {
		return 0, fmt.Errorf("writing log entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting log entry id: %w", err)
	}
	return id, nil
}

// ListRecentLogs returns the newest log entries, capped at limit. A limit of
// zero or less falls back to DefaultLogLimit.
func ListRecentLogs(ctx context.Context, db *sql.DB, limit int) ([]model.LogEntry, error) {
	if limit <= 0 {
		limit = DefaultLogLimit
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, timestamp, actor, action, details
		 FROM logs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing log entries: %w", err)
	}
	defer rows.Close()

	var entries []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Actor, &e.Action, &details); err != nil {
			return nil, fmt.Errorf("scanning log entry: %w", err)
		}
		e.Details = details.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
