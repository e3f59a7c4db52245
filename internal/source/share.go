package source

import "net/url"

// ShareLink builds a shareable page URL that encodes the source sheet URL
// (and optionally a title) as query parameters. Returns "" when there is no
// source URL to share.
func ShareLink(pageURL *url.URL, sheetURL, title string) string {
	if sheetURL == "" {
		return ""
	}

	u := *pageURL
	q := url.Values{}
	q.Set("url", sheetURL)
	if title != "" {
		q.Set("title", title)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
