package review

import (
	"errors"
	"math"
	"math/rand"

	"github.com/flipcard/backend/internal/domain/card"
)

type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeRandom     Mode = "random"
)

type Face string

const (
	FaceFront Face = "front"
	FaceBack  Face = "back"
)

// FilterMode controls which cards are visible in the session view.
type FilterMode string

const (
	FilterUnflipped FilterMode = "unflipped"
	FilterAll       FilterMode = "all"
)

var (
	ErrNoCards       = errors.New("select at least one card")
	ErrCardIndex     = errors.New("card index out of range")
	ErrHintLevel     = errors.New("hint level must be between -1 and 3")
	ErrUnknownMode   = errors.New("unknown session mode")
	ErrUnknownFace   = errors.New("unknown card face")
	ErrUnknownFilter = errors.New("unknown filter mode")
)

// CardState is the mutable review state for one card in a session.
type CardState struct {
	Flipped   bool
	HintLevel int  // -1 = no masking, 0..3 = leading characters kept per word
	RevealAll bool // per-card override forcing full reveal
	Visible   bool
}

// Session drives one pass over a selected card subset. It holds its own
// snapshot of the cards; nothing here mutates the originating deck.
type Session struct {
	cards  []card.Card
	states []CardState
	mode   Mode
}

// New starts a session over a copy of the given cards. ModeRandom shuffles
// the copy (uniform Fisher-Yates); ModeSequential preserves input order.
// Every card starts unflipped and visible with the given hint level.
// A nil rng uses the shared math/rand source.
func New(cards []card.Card, mode Mode, hintLevel int, rng *rand.Rand) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	if mode != ModeSequential && mode != ModeRandom {
		return nil, ErrUnknownMode
	}
	if hintLevel < -1 || hintLevel > 3 {
		return nil, ErrHintLevel
	}

	owned := make([]card.Card, len(cards))
	copy(owned, cards)

	if mode == ModeRandom {
		shuffle(len(owned), func(i, j int) {
			owned[i], owned[j] = owned[j], owned[i]
		}, rng)
	}

	states := make([]CardState, len(owned))
	for i := range states {
		states[i] = CardState{HintLevel: hintLevel, Visible: true}
	}

	return &Session{cards: owned, states: states, mode: mode}, nil
}

func shuffle(n int, swap func(i, j int), rng *rand.Rand) {
	if rng != nil {
		rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}

func (s *Session) Len() int {
	return len(s.cards)
}

func (s *Session) Mode() Mode {
	return s.mode
}

// Card returns the card at the given session position.
func (s *Session) Card(i int) (card.Card, error) {
	if i < 0 || i >= len(s.cards) {
		return card.Card{}, ErrCardIndex
	}
	return s.cards[i], nil
}

// State returns the review state of the card at the given position.
func (s *Session) State(i int) (CardState, error) {
	if i < 0 || i >= len(s.states) {
		return CardState{}, ErrCardIndex
	}
	return s.states[i], nil
}

// Flip toggles the card between its front and back face.
func (s *Session) Flip(i int) error {
	if i < 0 || i >= len(s.states) {
		return ErrCardIndex
	}
	s.states[i].Flipped = !s.states[i].Flipped
	return nil
}

// FlipAllTo forces every card to show the requested face. Idempotent.
func (s *Session) FlipAllTo(face Face) error {
	if face != FaceFront && face != FaceBack {
		return ErrUnknownFace
	}
	flipped := face == FaceBack
	for i := range s.states {
		s.states[i].Flipped = flipped
	}
	return nil
}

// SetHintLevel changes the masking level for one card and clears its
// reveal override.
func (s *Session) SetHintLevel(i, level int) error {
	if i < 0 || i >= len(s.states) {
		return ErrCardIndex
	}
	if level < -1 || level > 3 {
		return ErrHintLevel
	}
	s.states[i].HintLevel = level
	s.states[i].RevealAll = false
	return nil
}

// ToggleReveal flips the per-card override that forces full reveal
// independent of the hint level. Toggling it off restores the card's
// last hint level.
func (s *Session) ToggleReveal(i int) error {
	if i < 0 || i >= len(s.states) {
		return ErrCardIndex
	}
	s.states[i].RevealAll = !s.states[i].RevealAll
	return nil
}

// MaskedBack returns the card's back face with hint masking applied.
func (s *Session) MaskedBack(i int) (string, error) {
	if i < 0 || i >= len(s.cards) {
		return "", ErrCardIndex
	}
	st := s.states[i]
	if st.RevealAll {
		return s.cards[i].Back, nil
	}
	return Mask(s.cards[i].Back, st.HintLevel), nil
}

// Filter hides flipped cards (FilterUnflipped) or shows everything
// (FilterAll).
func (s *Session) Filter(mode FilterMode) error {
	switch mode {
	case FilterUnflipped:
		for i := range s.states {
			s.states[i].Visible = !s.states[i].Flipped
		}
	case FilterAll:
		for i := range s.states {
			s.states[i].Visible = true
		}
	default:
		return ErrUnknownFilter
	}
	return nil
}

// Progress returns the flipped percentage over the currently visible cards,
// rounded to two decimal places. With no visible card it reports 0 rather
// than NaN.
func (s *Session) Progress() float64 {
	visible, flipped := 0, 0
	for _, st := range s.states {
		if !st.Visible {
			continue
		}
		visible++
		if st.Flipped {
			flipped++
		}
	}
	if visible == 0 {
		return 0
	}
	pct := float64(flipped) / float64(visible) * 100
	return math.Round(pct*100) / 100
}

// Counts returns how many cards are still unflipped and the session total,
// regardless of visibility.
func (s *Session) Counts() (unflipped, total int) {
	for _, st := range s.states {
		if !st.Flipped {
			unflipped++
		}
	}
	return unflipped, len(s.states)
}
