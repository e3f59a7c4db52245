package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// cacheTTL is the freshness window for cached remote sources. Older entries
// are treated as absent, never refreshed automatically.
const cacheTTL = 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS source_cache (
    url TEXT PRIMARY KEY,
    fetched_at TIMESTAMP NOT NULL,
    raw_text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS saved_input (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    text TEXT NOT NULL,
    delimiter TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS examples (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    delimiter TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Source cache
// ============================================================================

func (s *SQLiteStore) SaveCachedSource(url, rawText string, fetchedAt time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO source_cache (url, fetched_at, raw_text) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET fetched_at = excluded.fetched_at, raw_text = excluded.raw_text`,
		url, fetchedAt, rawText)
	return err
}

// GetCachedSource returns the cache entry for the URL, or ErrNotFound when
// there is none or the entry is older than the freshness window.
func (s *SQLiteStore) GetCachedSource(url string, now time.Time) (*CachedSource, error) {
	var entry CachedSource
	err := s.db.QueryRow(
		"SELECT url, fetched_at, raw_text FROM source_cache WHERE url = ?", url,
	).Scan(&entry.URL, &entry.FetchedAt, &entry.RawText)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if now.Sub(entry.FetchedAt) >= cacheTTL {
		return nil, ErrNotFound
	}
	return &entry, nil
}

func (s *SQLiteStore) DeleteCachedSource(url string) error {
	_, err := s.db.Exec("DELETE FROM source_cache WHERE url = ?", url)
	return err
}

// ============================================================================
// Saved input
// ============================================================================

func (s *SQLiteStore) SaveInput(text, delimiter string) error {
	_, err := s.db.Exec(`
		INSERT INTO saved_input (id, text, delimiter) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text = excluded.text, delimiter = excluded.delimiter`,
		text, delimiter)
	return err
}

func (s *SQLiteStore) GetInput() (*SavedInput, error) {
	var input SavedInput
	err := s.db.QueryRow("SELECT text, delimiter FROM saved_input WHERE id = 1").
		Scan(&input.Text, &input.Delimiter)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &input, nil
}

func (s *SQLiteStore) ClearInput() error {
	_, err := s.db.Exec("DELETE FROM saved_input WHERE id = 1")
	return err
}

// ============================================================================
// Examples
// ============================================================================

func (s *SQLiteStore) SaveExample(ex *Example) error {
	_, err := s.db.Exec(`
		INSERT INTO examples (id, name, raw_text, delimiter) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, raw_text = excluded.raw_text, delimiter = excluded.delimiter`,
		ex.ID, ex.Name, ex.RawText, ex.Delimiter)
	return err
}

func (s *SQLiteStore) GetExample(id string) (*Example, error) {
	var ex Example
	err := s.db.QueryRow(
		"SELECT id, name, raw_text, delimiter FROM examples WHERE id = ?", id,
	).Scan(&ex.ID, &ex.Name, &ex.RawText, &ex.Delimiter)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (s *SQLiteStore) ListExamples() ([]*Example, error) {
	rows, err := s.db.Query("SELECT id, name, raw_text, delimiter FROM examples ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []*Example
	for rows.Next() {
		var ex Example
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.RawText, &ex.Delimiter); err != nil {
			return nil, err
		}
		examples = append(examples, &ex)
	}
	return examples, rows.Err()
}
