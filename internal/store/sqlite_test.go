package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/flipcard/backend/internal/store"
)

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSourceCache_FreshEntry(t *testing.T) {
	s := newStore(t)
	now := time.Now()

	if err := s.SaveCachedSource("https://sheet/1", "a,b", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := s.GetCachedSource("https://sheet/1", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.RawText != "a,b" {
		t.Errorf("expected raw text %q, got %q", "a,b", entry.RawText)
	}
}

func TestSourceCache_StaleEntryIsAbsent(t *testing.T) {
	s := newStore(t)
	fetched := time.Now().Add(-25 * time.Hour)

	if err := s.SaveCachedSource("https://sheet/1", "a,b", fetched); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.GetCachedSource("https://sheet/1", time.Now())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for a stale entry, got %v", err)
	}
}

func TestSourceCache_Upsert(t *testing.T) {
	s := newStore(t)
	now := time.Now()

	s.SaveCachedSource("https://sheet/1", "old", now.Add(-time.Hour))
	if err := s.SaveCachedSource("https://sheet/1", "new", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := s.GetCachedSource("https://sheet/1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.RawText != "new" {
		t.Errorf("expected refreshed entry, got %q", entry.RawText)
	}
}

func TestSourceCache_MissingURL(t *testing.T) {
	s := newStore(t)

	_, err := s.GetCachedSource("https://sheet/none", time.Now())
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSavedInput_SaveAndRestore(t *testing.T) {
	s := newStore(t)

	if err := s.SaveInput("cat,chat", ";"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input, err := s.GetInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Text != "cat,chat" || input.Delimiter != ";" {
		t.Errorf("unexpected input %+v", input)
	}

	// a second save overwrites the single slot
	s.SaveInput("new", ",")
	input, _ = s.GetInput()
	if input.Text != "new" {
		t.Errorf("expected overwritten input, got %q", input.Text)
	}
}

func TestSavedInput_Clear(t *testing.T) {
	s := newStore(t)
	s.SaveInput("cat,chat", ",")

	if err := s.ClearInput(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.GetInput(); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestExamples(t *testing.T) {
	s := newStore(t)

	ex := &store.Example{ID: "simple", Name: "Exemple simple", RawText: "a,b", Delimiter: ","}
	if err := s.SaveExample(ex); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetExample("simple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RawText != "a,b" {
		t.Errorf("unexpected example %+v", got)
	}

	list, err := s.ListExamples()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 example, got %d", len(list))
	}
}
