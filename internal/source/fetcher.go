package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher retrieves the raw delimited text of a published data source.
// Implementations may hit the network or return canned data (for tests).
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetchError is returned when a remote load fails, so callers can tell the
// user to check the link's permissions or their connectivity. Existing data
// is never touched on this path.
type FetchError struct {
	URL     string
	Reason  string
	Wrapped error
}

func (e *FetchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("fetching %s failed: %s: %v", e.URL, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("fetching %s failed: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Wrapped
}

// sheetHost marks the only remote source accepted: a published Google Sheet
// CSV export.
const sheetHost = "docs.google.com/spreadsheets"

// HTTPFetcher fetches published sheet exports over HTTP(S).
type HTTPFetcher struct {
	client *http.Client // reused across calls
}

// Compile-time check: *HTTPFetcher satisfies the Fetcher interface.
var _ Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch issues a single GET and returns the response body as text. No
// retries; the caller decides whether to try again.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if !strings.Contains(url, sheetHost) {
		return "", &FetchError{URL: url, Reason: "not a Google Sheets URL"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Reason: "invalid URL", Wrapped: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Reason: "request failed, check that the link is public", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: url, Reason: fmt.Sprintf("server returned status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Reason: "reading response body", Wrapped: err}
	}

	return string(body), nil
}
