package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/zaloga/internal/model"
)

// ListTransactions returns the quantity-change history of an item, newest
// first. Event names come from a left join: a transaction tagged with a
// since-deleted event keeps its event_id and simply has no name.
func ListTransactions(ctx context.Context, db *sql.DB, itemID int64) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT t.id, t.item_id, t.event_id, t.delta, t.timestamp, e.name AS event_name
		 FROM transactions t
		 LEFT JOIN events e ON e.id = t.event_id
		 WHERE t.item_id = ?
		 ORDER BY t.id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var eventID sql.NullInt64
		var eventName sql.NullString
		if err := rows.Scan(&t.ID, &t.ItemID, &eventID, &t.Delta, &t.Timestamp, &eventName); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		if eventID.Valid {
			t.EventID = &eventID.Int64
		}
		t.EventName = eventName.String
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
