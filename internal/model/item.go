package model

import "time"

// Item represents a quantity-tracked piece of collateral, optionally linked
// to the event it was acquired for. An item can exist unlinked.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	EventID      *int64    `json:"event_id,omitempty"`
	PhotoMIME    string    `json:"photo_mime,omitempty"`
	LastModified time.Time `json:"last_modified"`

	// Joined field (not always populated).
	EventName string `json:"event_name,omitempty"`
}

// ItemSummary is one row of the item overview: current quantity plus where
// and when the item was last spent. Items that were never spent report their
// own last_modified and no event.
type ItemSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	LastEventID *int64    `json:"last_event_id,omitempty"`
	LastUsedAt  time.Time `json:"last_used_at"`

	// Joined field (not always populated).
	LastEventName string `json:"last_event_name,omitempty"`
}
