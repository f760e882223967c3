package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(db.NewTestDB(t), db.NewTestLogDB(t))
}

func TestOpenCreatesAndReopens(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "inventory.sqlite3")
	logPath := filepath.Join(dir, "logs.sqlite3")
	ctx := context.Background()

	svc, err := Open(dbPath, logPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	id, err := svc.CreateEvent(ctx, "Expo", "", "", "")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Opening an existing store is idempotent and keeps the data.
	svc, err = Open(dbPath, logPath)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer svc.Close()

	events, err := svc.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != id {
		t.Errorf("expected event %d to survive a reopen, got %+v", id, events)
	}
}

func TestFullFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	eventID, err := svc.CreateEvent(ctx, "Expo", "", "", "")
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	itemID, err := svc.CreateItem(ctx, "Banner", 10, &eventID)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	quantity, err := svc.AdjustQuantity(ctx, itemID, -3, &eventID)
	if err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if quantity != 7 {
		t.Errorf("expected 7, got %d", quantity)
	}

	summaries, _ := svc.ListItemSummaries(ctx)
	if len(summaries) != 1 || summaries[0].Quantity != 7 || summaries[0].LastEventName != "Expo" {
		t.Errorf("unexpected summaries: %+v", summaries)
	}

	transactions, _ := svc.ListTransactions(ctx, itemID)
	if len(transactions) != 1 || transactions[0].Delta != -3 || transactions[0].EventName != "Expo" {
		t.Errorf("unexpected transactions: %+v", transactions)
	}

	s, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalEvents != 1 || s.TotalItems != 1 || s.TotalQuantity != 7 {
		t.Errorf("unexpected summary: %+v", s)
	}

	// The frontend logs after a successful mutation.
	if _, err := svc.LogAction(ctx, "ui", "adjust_quantity", "Banner -3"); err != nil {
		t.Fatalf("LogAction: %v", err)
	}
	entries, _ := svc.RecentLogs(ctx, 10)
	if len(entries) != 1 || entries[0].Action != "adjust_quantity" {
		t.Errorf("unexpected log entries: %+v", entries)
	}
}

func TestErrorsPassThrough(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, "  ", "", "", "")
	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}

	if err := svc.UpdateItem(ctx, 404, "Ghost", 1, nil); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.AdjustQuantity(ctx, 404, -1, nil); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetSetting(ctx, "actor", "erin"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	value, err := svc.Setting(ctx, "actor")
	if err != nil {
		t.Fatalf("Setting: %v", err)
	}
	if value != "erin" {
		t.Errorf("expected erin, got %q", value)
	}
}

func TestItemPhoto(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	itemID, _ := svc.CreateItem(ctx, "Backdrop", 1, nil)

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.Set(x, y, color.RGBA{200, 50, 50, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}

	if err := svc.SetItemPhoto(ctx, itemID, buf.Bytes()); err != nil {
		t.Fatalf("SetItemPhoto: %v", err)
	}

	data, mime, err := svc.ItemPhoto(ctx, itemID)
	if err != nil {
		t.Fatalf("ItemPhoto: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected normalized JPEG, got %s", mime)
	}
	if len(data) == 0 {
		t.Error("expected stored photo data")
	}

	if err := svc.SetItemPhoto(ctx, itemID, []byte("junk")); err == nil {
		t.Error("expected error for invalid photo bytes")
	}
}
