package model

import "time"

// Transaction is an append-only record of a quantity change to an item.
// Negative delta = spent/consumed, positive = restocked. Rows are only ever
// written by the quantity adjustment; they are never updated or deleted, so
// item_id and event_id may outlive the rows they point at.
type Transaction struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	EventID   *int64    `json:"event_id,omitempty"`
	Delta     int       `json:"delta"`
	Timestamp time.Time `json:"timestamp"`

	// Joined field (not always populated). Empty when the event no longer
	// exists or the transaction was not tagged with one.
	EventName string `json:"event_name,omitempty"`
}
