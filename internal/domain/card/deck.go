package card

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrRangeInvalid means a row-range selection fell outside the deck.
var ErrRangeInvalid = errors.New("invalid row range")

// SortColumn selects which field a presentation view is sorted by.
type SortColumn string

const (
	SortByFront SortColumn = "front"
	SortByBack  SortColumn = "back"
	SortByNotes SortColumn = "notes"
)

// Deck owns the canonical, ordered card list for one load cycle.
// The parse order is the only canonical order; selections and sorted views
// are index permutations over it and never reorder the deck itself.
type Deck struct {
	cards []Card
}

func NewDeck(cards []Card) *Deck {
	owned := make([]Card, len(cards))
	copy(owned, cards)
	return &Deck{cards: owned}
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the canonical card list.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Swapped returns a copy of the cards with front and back exchanged.
func (d *Deck) Swapped() []Card {
	out := make([]Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = Card{Front: c.Back, Back: c.Front, Notes: c.Notes}
	}
	return out
}

// Select returns the indices of cards matching the filter query.
// A query that compiles as a regular expression is matched case-insensitively
// against front, back and notes; anything else falls back to plain
// case-insensitive substring matching. An empty query selects every card.
func (d *Deck) Select(query string) []int {
	indices := make([]int, 0, len(d.cards))
	if query == "" {
		for i := range d.cards {
			indices = append(indices, i)
		}
		return indices
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		re = nil
	}
	lowered := strings.ToLower(query)

	for i, c := range d.cards {
		var match bool
		if re != nil {
			match = re.MatchString(c.Front) || re.MatchString(c.Back) || re.MatchString(c.Notes)
		} else {
			match = strings.Contains(strings.ToLower(c.Front), lowered) ||
				strings.Contains(strings.ToLower(c.Back), lowered) ||
				strings.Contains(strings.ToLower(c.Notes), lowered)
		}
		if match {
			indices = append(indices, i)
		}
	}
	return indices
}

// SelectRange returns the indices for a 1-based inclusive row range.
// A zero end selects the single start row.
func (d *Deck) SelectRange(start, end int) ([]int, error) {
	if end == 0 {
		end = start
	}
	if start < 1 || start > len(d.cards) || end < start || end > len(d.cards) {
		return nil, ErrRangeInvalid
	}

	indices := make([]int, 0, end-start+1)
	for i := start - 1; i < end; i++ {
		indices = append(indices, i)
	}
	return indices, nil
}

// SortedView returns the deck's indices ordered by the given column.
// Values that both parse as numbers compare numerically, everything else
// lexically. This is a presentation-only permutation.
func (d *Deck) SortedView(column SortColumn, descending bool) []int {
	indices := make([]int, len(d.cards))
	for i := range indices {
		indices[i] = i
	}

	key := func(i int) string {
		c := d.cards[i]
		switch column {
		case SortByBack:
			return c.Back
		case SortByNotes:
			return c.Notes
		default:
			return c.Front
		}
	}

	sort.SliceStable(indices, func(a, b int) bool {
		ta, tb := strings.TrimSpace(key(indices[a])), strings.TrimSpace(key(indices[b]))
		less := compareValues(ta, tb)
		if descending {
			return compareValues(tb, ta)
		}
		return less
	})
	return indices
}

func compareValues(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}

// Export renders the deck back to delimiter-separated text. Notes are only
// written for cards that have them.
func (d *Deck) Export(delimiter string) string {
	if delimiter == "" {
		delimiter = ","
	}
	var b strings.Builder
	for _, c := range d.cards {
		b.WriteString(c.Front)
		b.WriteString(delimiter)
		b.WriteString(c.Back)
		if c.Notes != "" {
			b.WriteString(delimiter)
			b.WriteString(c.Notes)
		}
		b.WriteString("\n")
	}
	return b.String()
}
