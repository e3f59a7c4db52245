package quiz

import (
	"errors"
	"math/rand"
	"unicode"
	"unicode/utf8"

	"github.com/flipcard/backend/internal/domain/card"
)

// distractorCount is how many wrong answers each question aims for.
const distractorCount = 2

var ErrNoCards = errors.New("select at least one card")

// Question is one multiple-choice question. Choices holds the correct answer
// exactly once, in randomized order; it may hold fewer than
// distractorCount+1 entries when the card pool is too small.
type Question struct {
	Prompt        string
	CorrectAnswer string
	Choices       []string
}

// Generate builds one question per card, in the order given (callers shuffle
// beforehand when they want randomized question order). A nil rng uses the
// shared math/rand source.
func Generate(cards []card.Card, rng *rand.Rand) ([]Question, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	questions := make([]Question, len(cards))
	for i, c := range cards {
		choices := append(distractors(cards, i, rng), c.Back)
		shuffle(choices, rng)

		questions[i] = Question{
			Prompt:        c.Front,
			CorrectAnswer: c.Back,
			Choices:       choices,
		}
	}
	return questions, nil
}

// distractors picks up to distractorCount wrong answers for the card at
// current. Answers starting with the same letter as the correct one are
// preferred because they make harder lures; only when that pool runs dry do
// arbitrary answers fill the remaining slots. Cards sharing the current
// card's front text are excluded entirely so duplicate fronts cannot leak
// the answer.
func distractors(cards []card.Card, current int, rng *rand.Rand) []string {
	correct := cards[current].Back
	currentFront := cards[current].Front
	firstLetter := lowerFirstRune(correct)

	var relevant []card.Card
	for _, c := range cards {
		if c.Front != currentFront {
			relevant = append(relevant, c)
		}
	}

	var lures []string
	for _, c := range relevant {
		if firstLetter != 0 && lowerFirstRune(c.Back) == firstLetter {
			lures = append(lures, c.Back)
		}
	}
	shuffle(lures, rng)

	picked := make([]string, 0, distractorCount)
	for _, lure := range lures {
		if len(picked) == distractorCount {
			break
		}
		if lure != correct && !contains(picked, lure) {
			picked = append(picked, lure)
		}
	}

	// fallback: fill up from all distinct other answers
	if len(picked) < distractorCount {
		seen := make(map[string]bool)
		var others []string
		for _, c := range relevant {
			if !seen[c.Back] {
				seen[c.Back] = true
				others = append(others, c.Back)
			}
		}
		shuffle(others, rng)

		for _, other := range others {
			if len(picked) == distractorCount {
				break
			}
			if other != correct && !contains(picked, other) {
				picked = append(picked, other)
			}
		}
	}

	return picked
}

func lowerFirstRune(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.ToLower(r)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func shuffle(values []string, rng *rand.Rand) {
	swap := func(i, j int) {
		values[i], values[j] = values[j], values[i]
	}
	if rng != nil {
		rng.Shuffle(len(values), swap)
		return
	}
	rand.Shuffle(len(values), swap)
}
