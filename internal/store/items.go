package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// CreateItem creates a new item and returns its id. The event link is
// optional. A negative initial quantity is accepted; only the adjustment
// path clamps.
func CreateItem(ctx context.Context, db *sql.DB, name string, quantity int, eventID *int64) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, quantity, event_id) VALUES (?, ?, ?)`,
		name, quantity, eventID,
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting item id: %w", err)
	}
	return id, nil
}

// GetItem returns an item by ID, with the linked event's name joined in when
// the event still exists. Returns ErrNotFound when the id is absent.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var eventID sql.NullInt64
	var photoMIME, eventName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT i.id, i.name, i.quantity, i.event_id, i.photo_mime, i.last_modified,
		        e.name AS event_name
		 FROM items i
		 LEFT JOIN events e ON e.id = i.event_id
		 WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Quantity, &eventID, &photoMIME, &item.LastModified, &eventName)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if eventID.Valid {
		item.EventID = &eventID.Int64
	}
	item.PhotoMIME = photoMIME.String
	item.EventName = eventName.String
	return item, nil
}

// UpdateItem overwrites an item's name, quantity and event link
// unconditionally. This is a direct correction: the quantity is not clamped
// and no transaction row is written. Returns ErrNotFound when the id is
// absent.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, name string, quantity int, eventID *int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items
		 SET name = ?, quantity = ?, event_id = ?, last_modified = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, quantity, eventID, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item. Its transactions are kept; they become
// orphaned references in the append-only history.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// AdjustQuantity applies a signed delta to an item's quantity and appends a
// transaction row, in a single database transaction. The new quantity is
// clamped at zero; over-spending is absorbed, not rejected. The transaction
// row records the requested delta, not the clamped effect, so the recorded
// history can diverge from the quantity when a spend bottomed out.
//
// This is the only path that produces transaction history. Returns the new
// quantity, or ErrNotFound when the item is absent.
func AdjustQuantity(ctx context.Context, db *sql.DB, id int64, delta int, eventID *int64) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var quantity int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM items WHERE id = ?`, id,
	).Scan(&quantity)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("reading item quantity: %w", err)
	}

	newQuantity := quantity + delta
	if newQuantity < 0 {
		newQuantity = 0
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET quantity = ?, last_modified = CURRENT_TIMESTAMP WHERE id = ?`,
		newQuantity, id,
	)
	if err != nil {
		return 0, fmt.Errorf("writing item quantity: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (item_id, event_id, delta) VALUES (?, ?, ?)`,
		id, eventID, delta,
	)
	if err != nil {
		return 0, fmt.Errorf("recording transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing adjustment: %w", err)
	}
	return newQuantity, nil
}

// ListItemSummaries returns one row per item, newest first. The last-used
// columns come from the most recent spend (delta < 0) transaction for the
// item; items that were never spent report their own last_modified and no
// event.
func ListItemSummaries(ctx context.Context, db *sql.DB) ([]model.ItemSummary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT i.id, i.name, i.quantity, i.last_modified,
		        t.event_id, t.timestamp, e.name AS event_name
		 FROM items i
		 LEFT JOIN transactions t ON t.id = (
		     SELECT id FROM transactions
		     WHERE item_id = i.id AND delta < 0
		     ORDER BY id DESC LIMIT 1
		 )
		 LEFT JOIN events e ON e.id = t.event_id
		 ORDER BY i.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.ItemSummary
	for rows.Next() {
		var s model.ItemSummary
		var modified time.Time
		var eventID sql.NullInt64
		var spentAt sql.NullTime
		var eventName sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Quantity, &modified, &eventID, &spentAt, &eventName); err != nil {
			return nil, fmt.Errorf("scanning item summary: %w", err)
		}
		if spentAt.Valid {
			s.LastUsedAt = spentAt.Time
			if eventID.Valid {
				s.LastEventID = &eventID.Int64
			}
			s.LastEventName = eventName.String
		} else {
			s.LastUsedAt = modified
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SetItemPhoto stores an item's (already normalized) photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, last_modified = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking photo update: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type. An item without a
// photo yields nil data and an empty MIME.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}
