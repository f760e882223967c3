// Package service is the call surface of the inventory layer. Frontends
// (the GUI, the CLI) talk to exactly one named method per capability with a
// fixed signature; none of the operations call back out.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/imaging"
	"github.com/erazemk/zaloga/internal/model"
	"github.com/erazemk/zaloga/internal/store"
)

// Service bundles the inventory database and the independent activity-log
// database. All methods are synchronous and run to completion on the calling
// goroutine; errors surface to the caller unchanged.
type Service struct {
	db    *sql.DB
	logDB *sql.DB
}

// Open opens (creating if needed) both database files, ensures their schemas
// and applies pending migrations. It is idempotent and must run before any
// other call.
func Open(dbPath, logPath string) (*Service, error) {
	database, err := db.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating inventory database: %w", err)
	}

	logDB, err := db.Open(logPath)
	if err != nil {
		database.Close()
		return nil, err
	}
	if err := db.EnsureLogSchema(logDB); err != nil {
		database.Close()
		logDB.Close()
		return nil, fmt.Errorf("preparing log database: %w", err)
	}

	return &Service{db: database, logDB: logDB}, nil
}

// New wraps already-opened database handles. The caller is responsible for
// having ensured the schemas.
func New(database, logDB *sql.DB) *Service {
	return &Service{db: database, logDB: logDB}
}

// Close releases both database handles.
func (s *Service) Close() error {
	return errors.Join(s.db.Close(), s.logDB.Close())
}

// Events

func (s *Service) CreateEvent(ctx context.Context, name, startDate, endDate, location string) (int64, error) {
	return store.CreateEvent(ctx, s.db, name, startDate, endDate, location)
}

func (s *Service) UpdateEvent(ctx context.Context, id int64, name, startDate, endDate, location string) error {
	return store.UpdateEvent(ctx, s.db, id, name, startDate, endDate, location)
}

func (s *Service) DeleteEvent(ctx context.Context, id int64) error {
	return store.DeleteEvent(ctx, s.db, id)
}

func (s *Service) ListEvents(ctx context.Context) ([]model.Event, error) {
	return store.ListEvents(ctx, s.db)
}

func (s *Service) SearchEvents(ctx context.Context, filter store.EventFilter) ([]model.Event, error) {
	return store.SearchEvents(ctx, s.db, filter)
}

// Items

func (s *Service) CreateItem(ctx context.Context, name string, quantity int, eventID *int64) (int64, error) {
	return store.CreateItem(ctx, s.db, name, quantity, eventID)
}

func (s *Service) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return store.GetItem(ctx, s.db, id)
}

func (s *Service) UpdateItem(ctx context.Context, id int64, name string, quantity int, eventID *int64) error {
	return store.UpdateItem(ctx, s.db, id, name, quantity, eventID)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return store.DeleteItem(ctx, s.db, id)
}

func (s *Service) AdjustQuantity(ctx context.Context, id int64, delta int, eventID *int64) (int, error) {
	return store.AdjustQuantity(ctx, s.db, id, delta, eventID)
}

func (s *Service) ListItemSummaries(ctx context.Context) ([]model.ItemSummary, error) {
	return store.ListItemSummaries(ctx, s.db)
}

// SetItemPhoto normalizes raw photo bytes and stores them on the item.
func (s *Service) SetItemPhoto(ctx context.Context, id int64, data []byte) error {
	photo, err := imaging.Normalize(data)
	if err != nil {
		return err
	}
	return store.SetItemPhoto(ctx, s.db, id, photo.Data, photo.MIME)
}

func (s *Service) ItemPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	return store.GetItemPhoto(ctx, s.db, id)
}

// History and reports

func (s *Service) ListTransactions(ctx context.Context, itemID int64) ([]model.Transaction, error) {
	return store.ListTransactions(ctx, s.db, itemID)
}

func (s *Service) Summary(ctx context.Context) (*model.Summary, error) {
	return store.GetSummary(ctx, s.db)
}

// Activity log

func (s *Service) LogAction(ctx context.Context, actor, action, details string) (int64, error) {
	return store.LogAction(ctx, s.logDB, actor, action, details)
}

func (s *Service) RecentLogs(ctx context.Context, limit int) ([]model.LogEntry, error) {
	return store.ListRecentLogs(ctx, s.logDB, limit)
}

// Settings

func (s *Service) Setting(ctx context.Context, key string) (string, error) {
	return store.GetSetting(ctx, s.db, key)
}

func (s *Service) SetSetting(ctx context.Context, key, value string) error {
	return store.SetSetting(ctx, s.db, key, value)
}
