package review_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/flipcard/backend/internal/domain/card"
	"github.com/flipcard/backend/internal/domain/review"
)

func makeCards(n int) []card.Card {
	cards := make([]card.Card, n)
	for i := range cards {
		cards[i] = card.Card{
			Front: "Front " + string(rune('A'+i)),
			Back:  "Back " + string(rune('A'+i)),
		}
	}
	return cards
}

func newSession(t *testing.T, cards []card.Card, mode review.Mode) *review.Session {
	t.Helper()
	sess, err := review.New(cards, mode, -1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return sess
}

func TestNew_EmptySelection(t *testing.T) {
	_, err := review.New(nil, review.ModeSequential, -1, nil)
	if !errors.Is(err, review.ErrNoCards) {
		t.Errorf("expected ErrNoCards, got %v", err)
	}
}

func TestNew_SequentialPreservesOrder(t *testing.T) {
	cards := makeCards(10)
	sess := newSession(t, cards, review.ModeSequential)

	for i := range cards {
		c, _ := sess.Card(i)
		if c.Front != cards[i].Front {
			t.Fatalf("position %d: expected %q, got %q", i, cards[i].Front, c.Front)
		}
	}
}

func TestNew_RandomIsAPermutation(t *testing.T) {
	cards := makeCards(20)
	sess := newSession(t, cards, review.ModeRandom)

	if sess.Len() != len(cards) {
		t.Fatalf("expected %d cards, got %d", len(cards), sess.Len())
	}

	seen := make(map[string]int)
	for i := 0; i < sess.Len(); i++ {
		c, _ := sess.Card(i)
		seen[c.Front]++
	}
	for _, c := range cards {
		if seen[c.Front] != 1 {
			t.Errorf("card %q appears %d times", c.Front, seen[c.Front])
		}
	}
}

func TestNew_RandomShufflesAcrossSessions(t *testing.T) {
	cards := makeCards(20)

	// With 20 cards, two out of ten shuffles sharing one order is
	// statistically impossible unless shuffling is broken.
	first := newSession(t, cards, review.ModeRandom)
	foundDifferentOrder := false
	for seed := int64(2); seed < 12; seed++ {
		sess, err := review.New(cards, review.ModeRandom, -1, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sameOrder(first, sess) {
			foundDifferentOrder = true
			break
		}
	}
	if !foundDifferentOrder {
		t.Error("expected card order to vary across random sessions")
	}
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	cards := makeCards(20)
	original := make([]card.Card, len(cards))
	copy(original, cards)

	newSession(t, cards, review.ModeRandom)

	for i := range cards {
		if cards[i] != original[i] {
			t.Fatal("session start mutated the input slice")
		}
	}
}

func TestNew_InvalidMode(t *testing.T) {
	_, err := review.New(makeCards(1), "backwards", -1, nil)
	if !errors.Is(err, review.ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestFlip_TogglesState(t *testing.T) {
	sess := newSession(t, makeCards(3), review.ModeSequential)

	if err := sess.Flip(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st, _ := sess.State(1)
	if !st.Flipped {
		t.Error("expected card 1 to be flipped")
	}

	sess.Flip(1)
	st, _ = sess.State(1)
	if st.Flipped {
		t.Error("expected card 1 to be unflipped after second flip")
	}
}

func TestFlip_IndexOutOfRange(t *testing.T) {
	sess := newSession(t, makeCards(3), review.ModeSequential)

	if err := sess.Flip(3); !errors.Is(err, review.ErrCardIndex) {
		t.Errorf("expected ErrCardIndex, got %v", err)
	}
}

func TestFlipAllTo_Idempotent(t *testing.T) {
	sess := newSession(t, makeCards(4), review.ModeSequential)
	sess.Flip(0)

	sess.FlipAllTo(review.FaceBack)
	sess.FlipAllTo(review.FaceBack)

	for i := 0; i < sess.Len(); i++ {
		st, _ := sess.State(i)
		if !st.Flipped {
			t.Fatalf("card %d not flipped after FlipAllTo(back)", i)
		}
	}

	sess.FlipAllTo(review.FaceFront)
	for i := 0; i < sess.Len(); i++ {
		st, _ := sess.State(i)
		if st.Flipped {
			t.Fatalf("card %d still flipped after FlipAllTo(front)", i)
		}
	}
}

func TestProgress(t *testing.T) {
	sess := newSession(t, makeCards(3), review.ModeSequential)

	if p := sess.Progress(); p != 0 {
		t.Errorf("expected 0%% progress, got %v", p)
	}

	sess.Flip(0)
	if p := sess.Progress(); p != 33.33 {
		t.Errorf("expected 33.33, got %v", p)
	}

	sess.Flip(1)
	sess.Flip(2)
	if p := sess.Progress(); p != 100 {
		t.Errorf("expected 100, got %v", p)
	}
}

func TestProgress_OnlyCountsVisibleCards(t *testing.T) {
	sess := newSession(t, makeCards(4), review.ModeSequential)
	sess.Flip(0)
	sess.Flip(1)

	// hide the two flipped cards: none of the remaining visible ones is flipped
	sess.Filter(review.FilterUnflipped)
	if p := sess.Progress(); p != 0 {
		t.Errorf("expected 0 after filtering, got %v", p)
	}

	sess.Filter(review.FilterAll)
	if p := sess.Progress(); p != 50 {
		t.Errorf("expected 50 with all cards visible, got %v", p)
	}
}

func TestProgress_NoVisibleCardsReportsZero(t *testing.T) {
	sess := newSession(t, makeCards(2), review.ModeSequential)
	sess.FlipAllTo(review.FaceBack)
	sess.Filter(review.FilterUnflipped)

	if p := sess.Progress(); p != 0 {
		t.Errorf("expected 0 with no visible card, got %v", p)
	}
}

func TestProgress_StaysInBounds(t *testing.T) {
	sess := newSession(t, makeCards(7), review.ModeSequential)

	flips := []int{0, 3, 3, 5, 6, 0, 2}
	for _, i := range flips {
		sess.Flip(i)
		if p := sess.Progress(); p < 0 || p > 100 {
			t.Fatalf("progress %v out of [0, 100]", p)
		}
	}
}

func TestFilter_UnflippedHidesFlippedCards(t *testing.T) {
	sess := newSession(t, makeCards(3), review.ModeSequential)
	sess.Flip(1)

	sess.Filter(review.FilterUnflipped)

	st, _ := sess.State(1)
	if st.Visible {
		t.Error("flipped card should be hidden")
	}
	st, _ = sess.State(0)
	if !st.Visible {
		t.Error("unflipped card should stay visible")
	}
}

func TestCounts(t *testing.T) {
	sess := newSession(t, makeCards(5), review.ModeSequential)
	sess.Flip(0)
	sess.Flip(4)

	unflipped, total := sess.Counts()
	if unflipped != 3 || total != 5 {
		t.Errorf("expected 3/5, got %d/%d", unflipped, total)
	}

	// counts ignore visibility
	sess.Filter(review.FilterUnflipped)
	unflipped, total = sess.Counts()
	if unflipped != 3 || total != 5 {
		t.Errorf("expected 3/5 after filtering, got %d/%d", unflipped, total)
	}
}

func TestSetHintLevel_Validation(t *testing.T) {
	sess := newSession(t, makeCards(2), review.ModeSequential)

	if err := sess.SetHintLevel(0, 4); !errors.Is(err, review.ErrHintLevel) {
		t.Errorf("expected ErrHintLevel for level 4, got %v", err)
	}
	if err := sess.SetHintLevel(0, -2); !errors.Is(err, review.ErrHintLevel) {
		t.Errorf("expected ErrHintLevel for level -2, got %v", err)
	}
	if err := sess.SetHintLevel(5, 1); !errors.Is(err, review.ErrCardIndex) {
		t.Errorf("expected ErrCardIndex, got %v", err)
	}
}

func TestMaskedBack_FollowsHintLevel(t *testing.T) {
	cards := []card.Card{{Front: "maison", Back: "house"}}
	sess, err := review.New(cards, review.ModeSequential, 1, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	masked, _ := sess.MaskedBack(0)
	if masked != "h****" {
		t.Errorf("expected %q, got %q", "h****", masked)
	}

	sess.SetHintLevel(0, -1)
	masked, _ = sess.MaskedBack(0)
	if masked != "house" {
		t.Errorf("expected full text, got %q", masked)
	}
}

func TestToggleReveal_OverridesAndRestoresHintLevel(t *testing.T) {
	cards := []card.Card{{Front: "maison", Back: "house"}}
	sess, err := review.New(cards, review.ModeSequential, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess.ToggleReveal(0)
	masked, _ := sess.MaskedBack(0)
	if masked != "house" {
		t.Errorf("expected full reveal, got %q", masked)
	}

	// toggling off restores the previous hint level
	sess.ToggleReveal(0)
	masked, _ = sess.MaskedBack(0)
	if masked != "ho***" {
		t.Errorf("expected %q, got %q", "ho***", masked)
	}
}

func sameOrder(a, b *review.Session) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		ca, _ := a.Card(i)
		cb, _ := b.Card(i)
		if ca.Front != cb.Front {
			return false
		}
	}
	return true
}
