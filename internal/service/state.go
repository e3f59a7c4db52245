// internal/service/state.go
package service

import (
	"errors"
	"sync"

	"github.com/flipcard/backend/internal/domain/card"
)

// ErrNoDeck means no data set has been loaded yet.
var ErrNoDeck = errors.New("no data loaded")

// State is the single source of truth for the currently loaded data set.
// The deck itself is immutable; only which deck is loaded, its delimiter and
// origin, and the front/back swap toggle change here.
type State struct {
	mu        sync.RWMutex
	deck      *card.Deck
	delimiter string
	sourceURL string // "" when the data was pasted rather than fetched
	swapped   bool
}

func NewState() *State {
	return &State{}
}

// SetDeck replaces the loaded deck wholesale. The swap toggle resets, the
// way reloading data resets the presentation.
func (s *State) SetDeck(deck *card.Deck, delimiter, sourceURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
	s.delimiter = delimiter
	s.sourceURL = sourceURL
	s.swapped = false
}

// Deck returns the loaded deck, or ErrNoDeck.
func (s *State) Deck() (*card.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.deck == nil {
		return nil, ErrNoDeck
	}
	return s.deck, nil
}

func (s *State) Delimiter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.delimiter
}

func (s *State) SourceURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceURL
}

// ToggleSwap flips the front/back presentation swap and reports the new
// value.
func (s *State) ToggleSwap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapped = !s.swapped
	return s.swapped
}

func (s *State) Swapped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swapped
}

// SessionCards returns the cards as a session should see them, with the
// swap toggle applied.
func (s *State) SessionCards() ([]card.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.deck == nil {
		return nil, ErrNoDeck
	}
	if s.swapped {
		return s.deck.Swapped(), nil
	}
	return s.deck.Cards(), nil
}
