// internal/api/router.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Decks
	mux.HandleFunc("POST /decks", h.parseDeck)
	mux.HandleFunc("POST /decks/load", h.loadDeck)
	mux.HandleFunc("GET /decks/last", h.lastInput)
	mux.HandleFunc("DELETE /decks/last", h.clearInput)
	mux.HandleFunc("POST /decks/select", h.selectCards)
	mux.HandleFunc("GET /decks/view", h.deckView)
	mux.HandleFunc("POST /decks/swap", h.swapDeck)
	mux.HandleFunc("GET /decks/export", h.exportDeck)
	mux.HandleFunc("GET /decks/share-link", h.shareLink)

	// Examples
	mux.HandleFunc("GET /examples", h.listExamples)
	mux.HandleFunc("GET /examples/{exampleID}", h.getExample)

	// Review sessions
	mux.HandleFunc("POST /sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/flip", h.flipCard)
	mux.HandleFunc("POST /sessions/{sessionID}/flip-all", h.flipAll)
	mux.HandleFunc("POST /sessions/{sessionID}/hint", h.setHint)
	mux.HandleFunc("POST /sessions/{sessionID}/reveal", h.toggleReveal)
	mux.HandleFunc("POST /sessions/{sessionID}/filter", h.filterCards)

	// Quizzes
	mux.HandleFunc("POST /quizzes", h.createQuiz)
	mux.HandleFunc("GET /quizzes/{quizID}", h.getQuiz)
	mux.HandleFunc("POST /quizzes/{quizID}/grade", h.gradeQuiz)
}
