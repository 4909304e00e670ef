package storage

import (
	"context"
	"testing"
	"time"

	"github.com/hyperjump/concierge/internal/models"
)

func TestSQLiteStorage_RecordAndCount(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx := context.Background()

	count, err := store.CountInteractions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("initial count: got %d, want 0", count)
	}

	interaction := &models.Interaction{
		Query:      "quanto tenho na conta?",
		Language:   "pt",
		Intent:     "balance",
		Strategy:   "keyword",
		DurationMS: 3,
	}
	if err := store.RecordInteraction(ctx, interaction); err != nil {
		t.Fatal(err)
	}
	if interaction.ID == "" {
		t.Error("expected generated ID")
	}
	if interaction.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	count, err = store.CountInteractions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count after insert: got %d, want 1", count)
	}
}

func TestSQLiteStorage_RecentInteractions(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	for i, query := range []string{"first", "second", "third"} {
		err := store.RecordInteraction(ctx, &models.Interaction{
			Query:     query,
			Intent:    "unknown",
			Strategy:  "keyword",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentInteractions(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d interactions, want 2", len(recent))
	}
	if recent[0].Query != "third" || recent[1].Query != "second" {
		t.Errorf("ordering: got %q, %q", recent[0].Query, recent[1].Query)
	}
}

func TestSQLiteStorage_FilePersistence(t *testing.T) {
	path := t.TempDir() + "/data/interactions.db"
	store, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.RecordInteraction(ctx, &models.Interaction{
		Query: "card question", Intent: "card", Strategy: "semantic",
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteStorage(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	count, err := reopened.CountInteractions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count after reopen: got %d, want 1", count)
	}
}
