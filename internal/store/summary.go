package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

// GetSummary returns the aggregate numbers for the reports view. Totals are
// zero on an empty store; the most/least stocked and last-modification
// fields are nil when no items exist. Quantity ties break by store order.
func GetSummary(ctx context.Context, db *sql.DB) (*model.Summary, error) {
	s := &model.Summary{}

	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&s.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM items`,
	).Scan(&s.TotalItems, &s.TotalQuantity)
	if err != nil {
		return nil, fmt.Errorf("counting items: %w", err)
	}

	if s.TotalItems == 0 {
		return s, nil
	}

	s.MostStocked, err = stockExtreme(ctx, db, "DESC")
	if err != nil {
		return nil, err
	}
	s.LeastStocked, err = stockExtreme(ctx, db, "ASC")
	if err != nil {
		return nil, err
	}

	var modified time.Time
	err = db.QueryRowContext(ctx,
		`SELECT last_modified FROM items ORDER BY last_modified DESC, id DESC LIMIT 1`,
	).Scan(&modified)
	if err != nil {
		return nil, fmt.Errorf("finding last modification: %w", err)
	}
	s.LastModified = &modified

	return s, nil
}

// stockExtreme picks the single highest or lowest stocked item.
func stockExtreme(ctx context.Context, db *sql.DB, direction string) (*model.StockLevel, error) {
	level := &model.StockLevel{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, quantity FROM items ORDER BY quantity `+direction+` LIMIT 1`,
	).Scan(&level.ID, &level.Name, &level.Quantity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding stock extreme: %w", err)
	}
	return level, nil
}
