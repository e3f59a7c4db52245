// internal/service/loader.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/flipcard/backend/internal/source"
	"github.com/flipcard/backend/internal/store"
)

// ErrLoadInFlight means a load for the same URL has been triggered and has
// not resolved yet. There is no cancellation; the caller simply waits for
// the first load to finish.
var ErrLoadInFlight = errors.New("a load for this source is already in progress")

// SourceCache is the slice of the store the loader needs.
type SourceCache interface {
	GetCachedSource(url string, now time.Time) (*store.CachedSource, error)
	SaveCachedSource(url, rawText string, fetchedAt time.Time) error
}

// Loader resolves a remote source URL to raw text: fresh cache entries are
// served directly, anything else goes through a single fetch whose result is
// cached. A failed fetch leaves the cache untouched and is never retried
// automatically.
type Loader struct {
	cache   SourceCache
	fetcher source.Fetcher
	logger  *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool // URL → a load is pending
}

func NewLoader(cache SourceCache, fetcher source.Fetcher, logger *slog.Logger) *Loader {
	return &Loader{
		cache:    cache,
		fetcher:  fetcher,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// Load returns the raw text for the URL, from cache when fresh.
func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	l.mu.Lock()
	if l.inFlight[url] {
		l.mu.Unlock()
		return "", ErrLoadInFlight
	}
	l.inFlight[url] = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.inFlight, url)
		l.mu.Unlock()
	}()

	if cached, err := l.cache.GetCachedSource(url, time.Now()); err == nil {
		l.logger.Info("serving source from cache", "url", url, "fetched_at", cached.FetchedAt)
		return cached.RawText, nil
	}

	rawText, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := l.cache.SaveCachedSource(url, rawText, time.Now()); err != nil {
		// the fetched data is still good, only the cache write failed
		l.logger.Warn("failed to cache source", "url", url, "error", err)
	}

	return rawText, nil
}
