// internal/api/session_handler.go
package api

import (
	"errors"
	"net/http"

	"github.com/flipcard/backend/internal/domain/card"
	"github.com/flipcard/backend/internal/domain/review"
	"github.com/flipcard/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Mode      string `json:"mode"` // "sequential" or "random"
	Indices   []int  `json:"indices"`
	HintLevel *int   `json:"hint_level,omitempty"` // defaults to -1 (no masking)
}

func (r *CreateSessionRequest) Validate() error {
	if r.Mode != string(review.ModeSequential) && r.Mode != string(review.ModeRandom) {
		return errors.New("mode must be sequential or random")
	}
	if len(r.Indices) == 0 {
		return errors.New("select at least one card")
	}
	return nil
}

type SessionCardResponse struct {
	Front     string   `json:"front"`
	Back      string   `json:"back"` // masked according to the card's hint state
	Notes     []string `json:"notes,omitempty"`
	Flipped   bool     `json:"flipped"`
	Visible   bool     `json:"visible"`
	HintLevel int      `json:"hint_level"`
	Revealed  bool     `json:"revealed"`
}

type SessionResponse struct {
	ID        string                `json:"id"`
	Mode      string                `json:"mode"`
	Cards     []SessionCardResponse `json:"cards"`
	Progress  float64               `json:"progress"`
	Unflipped int                   `json:"unflipped"`
	Total     int                   `json:"total"`
}

type CardIndexRequest struct {
	Index int `json:"index"`
}

func (r *CardIndexRequest) Validate() error {
	if r.Index < 0 {
		return errors.New("index must not be negative")
	}
	return nil
}

type FlipAllRequest struct {
	Face string `json:"face"` // "front" or "back"
}

func (r *FlipAllRequest) Validate() error {
	if r.Face != string(review.FaceFront) && r.Face != string(review.FaceBack) {
		return errors.New("face must be front or back")
	}
	return nil
}

type SetHintRequest struct {
	Index int `json:"index"`
	Level int `json:"level"` // -1..3
}

func (r *SetHintRequest) Validate() error {
	if r.Index < 0 {
		return errors.New("index must not be negative")
	}
	if r.Level < -1 || r.Level > 3 {
		return errors.New("level must be between -1 and 3")
	}
	return nil
}

type FilterRequest struct {
	Mode string `json:"mode"` // "unflipped" or "all"
}

func (r *FilterRequest) Validate() error {
	if r.Mode != string(review.FilterUnflipped) && r.Mode != string(review.FilterAll) {
		return errors.New("mode must be unflipped or all")
	}
	return nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /sessions
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cards, err := h.state.SessionCards()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	selected, err := pickCards(cards, req.Indices)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hintLevel := -1
	if req.HintLevel != nil {
		hintLevel = *req.HintLevel
	}

	sess, err := review.New(selected, review.Mode(req.Mode), hintLevel, nil)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := h.sessions.PutReview(sess)
	respondJSON(w, http.StatusCreated, sessionResponse(sessionID, sess))
}

// GET /sessions/{sessionID}
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(*review.Session) error { return nil })
}

// POST /sessions/{sessionID}/flip
func (h *Handler) flipCard(w http.ResponseWriter, r *http.Request) {
	var req CardIndexRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.withSession(w, r, func(sess *review.Session) error {
		return sess.Flip(req.Index)
	})
}

// POST /sessions/{sessionID}/flip-all
func (h *Handler) flipAll(w http.ResponseWriter, r *http.Request) {
	var req FlipAllRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.withSession(w, r, func(sess *review.Session) error {
		return sess.FlipAllTo(review.Face(req.Face))
	})
}

// POST /sessions/{sessionID}/hint
func (h *Handler) setHint(w http.ResponseWriter, r *http.Request) {
	var req SetHintRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.withSession(w, r, func(sess *review.Session) error {
		return sess.SetHintLevel(req.Index, req.Level)
	})
}

// POST /sessions/{sessionID}/reveal
func (h *Handler) toggleReveal(w http.ResponseWriter, r *http.Request) {
	var req CardIndexRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.withSession(w, r, func(sess *review.Session) error {
		return sess.ToggleReveal(req.Index)
	})
}

// POST /sessions/{sessionID}/filter
func (h *Handler) filterCards(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.withSession(w, r, func(sess *review.Session) error {
		return sess.Filter(review.FilterMode(req.Mode))
	})
}

// withSession runs fn against the session from the URL and responds with the
// updated session state. Domain validation errors map to 400.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, fn func(*review.Session) error) {
	sessionID := r.PathValue("sessionID")

	var response SessionResponse
	err := h.sessions.WithReview(sessionID, func(sess *review.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		response = sessionResponse(sessionID, sess)
		return nil
	})
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "session not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, response)
}

func sessionResponse(sessionID string, sess *review.Session) SessionResponse {
	cards := make([]SessionCardResponse, sess.Len())
	for i := range cards {
		c, _ := sess.Card(i)
		st, _ := sess.State(i)
		masked, _ := sess.MaskedBack(i)
		cards[i] = SessionCardResponse{
			Front:     c.Front,
			Back:      masked,
			Notes:     c.NotesLines(),
			Flipped:   st.Flipped,
			Visible:   st.Visible,
			HintLevel: st.HintLevel,
			Revealed:  st.RevealAll,
		}
	}

	unflipped, total := sess.Counts()
	return SessionResponse{
		ID:        sessionID,
		Mode:      string(sess.Mode()),
		Cards:     cards,
		Progress:  sess.Progress(),
		Unflipped: unflipped,
		Total:     total,
	}
}

// pickCards resolves the deck indices chosen by the client.
func pickCards(cards []card.Card, indices []int) ([]card.Card, error) {
	selected := make([]card.Card, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(cards) {
			return nil, errors.New("card index out of range")
		}
		selected = append(selected, cards[idx])
	}
	return selected, nil
}
