package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/notify"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/viewmodel"
)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.Put(&entry.Entry{ID: "old", Title: "Zebra", Content: "first day", Created: entry.Timestamp{Time: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}})
	mem.Put(&entry.Entry{ID: "new", Title: "Apple", Content: "second day", Created: entry.Timestamp{Time: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)}, Feedback: "nice"})

	n := notify.New(notify.WithTTL(time.Hour))
	t.Cleanup(n.Close)
	j := journal.New(mem, journal.WithNotifier(n))
	if err := j.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewService(j), mem
}

func TestServiceListEntries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	entries, err := svc.ListEntries(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "new" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
	if entries[0].Day != "2024-03-02" || entries[0].CreatedISO != "2024-03-02T09:00:00Z" {
		t.Fatalf("unexpected dates %+v", entries[0])
	}

	entries, err = svc.ListEntries(ctx, ListOptions{Sort: viewmodel.SortOldest})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if entries[0].ID != "old" {
		t.Fatalf("expected oldest first, got %s", entries[0].ID)
	}

	entries, err = svc.ListEntries(ctx, ListOptions{Sort: viewmodel.SortTitle})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if entries[0].Title != "Apple" {
		t.Fatalf("expected title order, got %s", entries[0].Title)
	}
}

func TestServiceSearch(t *testing.T) {
	svc, _ := newTestService(t)
	entries, err := svc.ListEntries(context.Background(), ListOptions{Query: "first"})
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "old" {
		t.Fatalf("expected only the matching entry, got %+v", entries)
	}
}

func TestServiceDays(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	days, err := svc.Days(ctx, ListOptions{Sort: viewmodel.SortOldest})
	if err != nil {
		t.Fatalf("Days failed: %v", err)
	}
	if len(days) != 2 || days[0].Day != "2024-03-01" || days[0].Count != 1 {
		t.Fatalf("unexpected days %+v", days)
	}

	day, err := svc.Day(ctx, "2024-03-02")
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	if day.Count != 1 || day.Entries[0].Feedback != "nice" {
		t.Fatalf("unexpected day %+v", day)
	}

	empty, err := svc.Day(ctx, "2020-01-01")
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	if empty.Count != 0 {
		t.Fatalf("expected empty day, got %+v", empty)
	}

	if _, err := svc.Day(ctx, "yesterday"); err == nil {
		t.Fatalf("expected error for malformed day")
	}
}

func TestServiceCreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, mem := newTestService(t)

	dto, err := svc.CreateEntry(ctx, "A", "x")
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	if dto.ID == "" || dto.CreatedISO == "" {
		t.Fatalf("expected store-assigned id and date, got %+v", dto)
	}

	updated, err := svc.UpdateEntry(ctx, dto.ID, "", "y")
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Title != "A" || updated.Content != "y" {
		t.Fatalf("expected title kept and content changed, got %+v", updated)
	}

	if _, err := svc.UpdateEntry(ctx, "missing", "T", ""); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if n, ok := svc.Journal.Notifications().Current(); !ok || n.Message != journal.MsgUpdateFailed {
		t.Fatalf("expected the update failure to be published, got %+v", n)
	}

	if err := svc.DeleteEntry(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := svc.DeleteEntry(ctx, dto.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}

	stored, err := mem.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected store to hold the seeded entries, got %d", len(stored))
	}
}

func TestServiceValidation(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEntry(context.Background(), " ", "x")
	if !journal.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceEntryByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	if _, err := svc.EntryByID(ctx, "missing"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	dto, err := svc.EntryByID(ctx, " old ")
	if err != nil {
		t.Fatalf("EntryByID failed: %v", err)
	}
	if dto.Title != "Zebra" {
		t.Fatalf("unexpected entry %+v", dto)
	}
}

func TestServiceWithoutJournal(t *testing.T) {
	svc := &Service{}
	if _, err := svc.ListEntries(context.Background(), ListOptions{}); err == nil {
		t.Fatalf("expected error without journal")
	}
}

func TestNewServer(t *testing.T) {
	if NewServer(journal.New(store.NewMemory()), "", "") == nil {
		t.Fatalf("expected server")
	}
}
