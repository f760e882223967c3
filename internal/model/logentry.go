package model

import "time"

// LogEntry is a row of the independent activity log. It is free text all the
// way down and deliberately not foreign-keyed to any inventory table.
type LogEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
}
