package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/zaloga/internal/model"
)

// nullable maps the empty string to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CreateEvent creates a new event and returns its id. Only the name is
// required; dates and location may be empty.
func CreateEvent(ctx context.Context, db *sql.DB, name, startDate, endDate, location string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO events (name, location, start_date, end_date) VALUES (?, ?, ?, ?)`,
		name, nullable(location), nullable(startDate), nullable(endDate),
	)
	if err != nil {
		return 0, fmt.Errorf("creating event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting event id: %w", err)
	}
	return id, nil
}

// UpdateEvent overwrites all fields of an event unconditionally. Passing an
// empty optional field clears it. Returns ErrNotFound when the id is absent.
func UpdateEvent(ctx context.Context, db *sql.DB, id int64, name, startDate, endDate, location string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE events
		 SET name = ?, location = ?, start_date = ?, end_date = ?, last_modified = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, nullable(location), nullable(startDate), nullable(endDate), id,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated event: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event together with the items linked to it.
// Transactions that reference the event are left in place; history stays
// append-only even when the event is gone.
//
// The item delete and the event delete are two separate statements. If the
// process dies between them, items with a dangling event_id can remain.
func DeleteEvent(ctx context.Context, db *sql.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM items WHERE event_id = ?`, id); err != nil {
		return fmt.Errorf("deleting event items: %w", err)
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

// ListEvents returns all events, newest first.
func ListEvents(ctx context.Context, db *sql.DB) ([]model.Event, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, location, start_date, end_date, last_modified
		 FROM events ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventFilter narrows a SearchEvents call. Zero-valued fields impose no
// constraint, and the set fields combine.
type EventFilter struct {
	NameContains    string
	StartsOnOrAfter string
	EndsOnOrBefore  string
}

// SearchEvents returns events matching the filter, newest first. The name
// match is a substring match with the store's collation.
func SearchEvents(ctx context.Context, db *sql.DB, filter EventFilter) ([]model.Event, error) {
	query := `SELECT id, name, location, start_date, end_date, last_modified
	          FROM events WHERE 1=1`
	var args []any

	if filter.NameContains != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+filter.NameContains+"%")
	}
	if filter.StartsOnOrAfter != "" {
		query += ` AND start_date >= ?`
		args = append(args, filter.StartsOnOrAfter)
	}
	if filter.EndsOnOrBefore != "" {
		query += ` AND end_date <= ?`
		args = append(args, filter.EndsOnOrBefore)
	}

	query += ` ORDER BY id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var e model.Event
		var location, startDate, endDate sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &location, &startDate, &endDate, &e.LastModified); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Location = location.String
		e.StartDate = startDate.String
		e.EndDate = endDate.String
		events = append(events, e)
	}
	return events, rows.Err()
}
