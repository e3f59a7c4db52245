package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// CachedSource is one cached remote load, keyed by the source URL.
type CachedSource struct {
	URL       string
	FetchedAt time.Time
	RawText   string
}

// SavedInput is the last raw text and delimiter the user loaded, restored on
// the next visit.
type SavedInput struct {
	Text      string
	Delimiter string
}

// Example is a built-in sample data set users can load instead of pasting
// their own.
type Example struct {
	ID        string
	Name      string
	RawText   string
	Delimiter string
}
