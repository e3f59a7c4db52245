package card

import (
	"errors"
	"strings"
)

// ErrNoData means the input contained nothing usable after trimming.
var ErrNoData = errors.New("no data provided")

// Card is one flashcard. Content is immutable after parsing; review and
// quiz state live elsewhere.
type Card struct {
	Front string
	Back  string
	Notes string
}

// lineBreakMarker is the literal marker users can type in a field to force
// a line break, in addition to real newlines inside quoted fields.
const lineBreakMarker = "||"

// NotesLines splits the notes on both line-break markers ("||" and "\n").
// Returns nil when the card has no notes.
func (c Card) NotesLines() []string {
	if strings.TrimSpace(c.Notes) == "" {
		return nil
	}
	normalized := strings.ReplaceAll(c.Notes, lineBreakMarker, "\n")
	return strings.Split(normalized, "\n")
}

// Parse turns delimiter-separated text into cards. Each line is split on the
// delimiter into front, back and optional notes; every field is trimmed.
// Rows missing a front or a back after trimming are dropped silently, as are
// blank lines. Only a completely empty input is an error.
func Parse(raw string, delimiter string) ([]Card, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoData
	}
	if delimiter == "" {
		delimiter = ","
	}

	var cards []Card
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, delimiter)
		c := Card{Front: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			c.Back = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			c.Notes = strings.TrimSpace(fields[2])
		}

		// keep only rows with both sides filled in
		if c.Front == "" || c.Back == "" {
			continue
		}
		cards = append(cards, c)
	}

	return cards, nil
}
