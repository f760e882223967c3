package model

import "time"

// StockLevel identifies an item together with its current quantity, used for
// the most/least stocked report lines.
type StockLevel struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Summary holds the aggregate numbers shown by the reports view. The pointer
// fields are nil when the store holds no items.
type Summary struct {
	TotalEvents   int         `json:"total_events"`
	TotalItems    int         `json:"total_items"`
	TotalQuantity int         `json:"total_quantity"`
	MostStocked   *StockLevel `json:"most_stocked,omitempty"`
	LeastStocked  *StockLevel `json:"least_stocked,omitempty"`
	LastModified  *time.Time  `json:"last_modified,omitempty"`
}
