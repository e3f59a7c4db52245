// internal/api/deck_handler.go
package api

import (
	"errors"
	"net/http"

	"github.com/flipcard/backend/internal/domain/card"
	"github.com/flipcard/backend/internal/service"
	"github.com/flipcard/backend/internal/source"
)

// ── Request / Response types ────────────────────────────────────────────────

type ParseDeckRequest struct {
	Text      string `json:"text"`
	Delimiter string `json:"delimiter,omitempty"` // defaults to ","
}

func (r *ParseDeckRequest) Validate() error {
	if r.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type LoadDeckRequest struct {
	URL string `json:"url"`
}

func (r *LoadDeckRequest) Validate() error {
	if r.URL == "" {
		return errors.New("url is required")
	}
	return nil
}

type CardResponse struct {
	Index int    `json:"index"`
	Front string `json:"front"`
	Back  string `json:"back"`
	Notes string `json:"notes,omitempty"`
}

type DeckResponse struct {
	Count     int            `json:"count"`
	Delimiter string         `json:"delimiter"`
	SourceURL string         `json:"source_url,omitempty"`
	ShareLink string         `json:"share_link,omitempty"`
	Cards     []CardResponse `json:"cards"`
}

type SelectRequest struct {
	Filter string `json:"filter,omitempty"`
	Start  int    `json:"start,omitempty"` // 1-based row range, 0 = use filter
	End    int    `json:"end,omitempty"`
}

func (r *SelectRequest) Validate() error {
	return nil
}

type SelectResponse struct {
	Indices []int `json:"indices"`
	Visible int   `json:"visible"`
	Total   int   `json:"total"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /decks
func (h *Handler) parseDeck(w http.ResponseWriter, r *http.Request) {
	var req ParseDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if req.Delimiter == "" {
		req.Delimiter = ","
	}

	cards, err := card.Parse(req.Text, req.Delimiter)
	if errors.Is(err, card.ErrNoData) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	deck := card.NewDeck(cards)
	h.state.SetDeck(deck, req.Delimiter, "")

	if err := h.store.SaveInput(req.Text, req.Delimiter); err != nil {
		h.logger.Warn("failed to persist input", "error", err)
	}

	respondJSON(w, http.StatusCreated, h.deckResponse(deck))
}

// POST /decks/load
func (h *Handler) loadDeck(w http.ResponseWriter, r *http.Request) {
	var req LoadDeckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rawText, err := h.loader.Load(r.Context(), req.URL)
	if errors.Is(err, service.ErrLoadInFlight) {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	var fetchErr *source.FetchError
	if errors.As(err, &fetchErr) {
		// previously loaded data stays intact
		respondError(w, http.StatusBadGateway, fetchErr.Error())
		return
	}
	if err != nil {
		h.logger.Error("load failed", "url", req.URL, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// published sheet exports always use a comma
	cards, err := card.Parse(rawText, ",")
	if errors.Is(err, card.ErrNoData) {
		respondError(w, http.StatusBadRequest, "the sheet contains no usable rows")
		return
	}

	deck := card.NewDeck(cards)
	h.state.SetDeck(deck, ",", req.URL)

	resp := h.deckResponse(deck)
	resp.ShareLink = source.ShareLink(h.baseURL, req.URL, "")
	respondJSON(w, http.StatusCreated, resp)
}

// GET /decks/last
type LastInputResponse struct {
	Text      string `json:"text"`
	Delimiter string `json:"delimiter"`
}

func (h *Handler) lastInput(w http.ResponseWriter, r *http.Request) {
	input, err := h.store.GetInput()
	if h.handleStoreError(w, err, "saved input") {
		return
	}

	respondJSON(w, http.StatusOK, LastInputResponse{
		Text:      input.Text,
		Delimiter: input.Delimiter,
	})
}

// DELETE /decks/last
func (h *Handler) clearInput(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearInput(); err != nil {
		h.logger.Error("failed to clear input", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /decks/select
func (h *Handler) selectCards(w http.ResponseWriter, r *http.Request) {
	deck, err := h.state.Deck()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req SelectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var indices []int
	if req.Start > 0 {
		indices, err = deck.SelectRange(req.Start, req.End)
		if errors.Is(err, card.ErrRangeInvalid) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		indices = deck.Select(req.Filter)
	}

	respondJSON(w, http.StatusOK, SelectResponse{
		Indices: indices,
		Visible: len(indices),
		Total:   deck.Len(),
	})
}

// GET /decks/view?sort=front&order=desc
func (h *Handler) deckView(w http.ResponseWriter, r *http.Request) {
	deck, err := h.state.Deck()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards := deck.Cards()
	if h.state.Swapped() {
		cards = deck.Swapped()
	}

	order := make([]int, len(cards))
	for i := range order {
		order[i] = i
	}
	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		column := card.SortColumn(sortBy)
		// the swap exchanges the displayed columns too
		if h.state.Swapped() {
			switch column {
			case card.SortByFront:
				column = card.SortByBack
			case card.SortByBack:
				column = card.SortByFront
			}
		}
		descending := r.URL.Query().Get("order") == "desc"
		order = deck.SortedView(column, descending)
	}

	view := make([]CardResponse, len(order))
	for i, idx := range order {
		c := cards[idx]
		view[i] = CardResponse{Index: idx, Front: c.Front, Back: c.Back, Notes: c.Notes}
	}

	respondJSON(w, http.StatusOK, DeckResponse{
		Count:     len(view),
		Delimiter: h.state.Delimiter(),
		SourceURL: h.state.SourceURL(),
		Cards:     view,
	})
}

// POST /decks/swap
func (h *Handler) swapDeck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.state.Deck(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"swapped": h.state.ToggleSwap()})
}

// GET /decks/export?delimiter=;
func (h *Handler) exportDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := h.state.Deck()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	delimiter := r.URL.Query().Get("delimiter")
	if delimiter == "" {
		delimiter = h.state.Delimiter()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(deck.Export(delimiter)))
}

// GET /decks/share-link?title=...
type ShareLinkResponse struct {
	ShareLink string `json:"share_link"`
}

func (h *Handler) shareLink(w http.ResponseWriter, r *http.Request) {
	sheetURL := h.state.SourceURL()
	if sheetURL == "" {
		respondError(w, http.StatusBadRequest, "the current deck was not loaded from a URL")
		return
	}

	respondJSON(w, http.StatusOK, ShareLinkResponse{
		ShareLink: source.ShareLink(h.baseURL, sheetURL, r.URL.Query().Get("title")),
	})
}

// GET /examples
type ExampleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Delimiter string `json:"delimiter"`
}

func (h *Handler) listExamples(w http.ResponseWriter, r *http.Request) {
	examples, err := h.store.ListExamples()
	if err != nil {
		h.logger.Error("failed to list examples", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	response := make([]ExampleResponse, len(examples))
	for i, ex := range examples {
		response[i] = ExampleResponse{ID: ex.ID, Name: ex.Name, Delimiter: ex.Delimiter}
	}
	respondJSON(w, http.StatusOK, response)
}

// GET /examples/{exampleID}
func (h *Handler) getExample(w http.ResponseWriter, r *http.Request) {
	ex, err := h.store.GetExample(r.PathValue("exampleID"))
	if h.handleStoreError(w, err, "example") {
		return
	}

	respondJSON(w, http.StatusOK, LastInputResponse{
		Text:      ex.RawText,
		Delimiter: ex.Delimiter,
	})
}

func (h *Handler) deckResponse(deck *card.Deck) DeckResponse {
	cards := deck.Cards()
	response := DeckResponse{
		Count:     len(cards),
		Delimiter: h.state.Delimiter(),
		SourceURL: h.state.SourceURL(),
		Cards:     make([]CardResponse, len(cards)),
	}
	for i, c := range cards {
		response.Cards[i] = CardResponse{Index: i, Front: c.Front, Back: c.Back, Notes: c.Notes}
	}
	return response
}
