package model

import "time"

// Event represents an occasion (fair, expo, meetup) that collateral is
// tracked against. Dates are free-form date strings; ordering checks are the
// frontend's job.
type Event struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	StartDate    string    `json:"start_date,omitempty"`
	EndDate      string    `json:"end_date,omitempty"`
	LastModified time.Time `json:"last_modified"`
}
