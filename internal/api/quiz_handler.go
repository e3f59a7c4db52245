// internal/api/quiz_handler.go
package api

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/flipcard/backend/internal/domain/card"
	"github.com/flipcard/backend/internal/domain/quiz"
	"github.com/flipcard/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateQuizRequest struct {
	Indices []int `json:"indices"`
}

func (r *CreateQuizRequest) Validate() error {
	if len(r.Indices) == 0 {
		return errors.New("select at least one card")
	}
	return nil
}

type QuizQuestionResponse struct {
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
}

type QuizResponse struct {
	ID        string                 `json:"id"`
	Questions []QuizQuestionResponse `json:"questions"`
}

type GradeQuizRequest struct {
	// Answers maps each question index to the chosen answer. Grading refuses
	// to run until every question has one.
	Answers []QuizAnswer `json:"answers"`
}

type QuizAnswer struct {
	Index  int    `json:"index"`
	Choice string `json:"choice"`
}

func (r *GradeQuizRequest) Validate() error {
	if len(r.Answers) == 0 {
		return errors.New("answers are required")
	}
	return nil
}

type QuestionResultResponse struct {
	Chosen        string `json:"chosen"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

type QuizResultResponse struct {
	Correct    int                      `json:"correct"`
	Incorrect  int                      `json:"incorrect"`
	Percentage int                      `json:"percentage"`
	Perfect    bool                     `json:"perfect"` // callers fire the celebration on this
	Questions  []QuestionResultResponse `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /quizzes
func (h *Handler) createQuiz(w http.ResponseWriter, r *http.Request) {
	var req CreateQuizRequest
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

	// question order is always randomized
	shuffleCards(selected)

	questions, err := quiz.Generate(selected, nil)
	if errors.Is(err, quiz.ErrNoCards) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	quizID := h.sessions.PutQuiz(questions)
	respondJSON(w, http.StatusCreated, quizResponse(quizID, questions))
}

// GET /quizzes/{quizID}
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizID")

	questions, err := h.sessions.Quiz(quizID)
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "quiz not found")
		return
	}

	respondJSON(w, http.StatusOK, quizResponse(quizID, questions))
}

// POST /quizzes/{quizID}/grade
func (h *Handler) gradeQuiz(w http.ResponseWriter, r *http.Request) {
	quizID := r.PathValue("quizID")

	questions, err := h.sessions.Quiz(quizID)
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "quiz not found")
		return
	}

	var req GradeQuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	submissions := make(map[int]string, len(req.Answers))
	for _, a := range req.Answers {
		submissions[a.Index] = a.Choice
	}

	result, err := quiz.Grade(questions, submissions)
	if errors.Is(err, quiz.ErrIncomplete) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := QuizResultResponse{
		Correct:    result.Correct,
		Incorrect:  result.Incorrect,
		Percentage: result.Percentage,
		Perfect:    result.Perfect,
		Questions:  make([]QuestionResultResponse, len(result.PerQuestion)),
	}
	for i, answer := range result.PerQuestion {
		response.Questions[i] = QuestionResultResponse{
			Chosen:        answer.Chosen,
			CorrectAnswer: questions[i].CorrectAnswer,
			Correct:       answer.Correct,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// quizResponse hides the correct answers; they only come back with grading.
func quizResponse(quizID string, questions []quiz.Question) QuizResponse {
	response := QuizResponse{
		ID:        quizID,
		Questions: make([]QuizQuestionResponse, len(questions)),
	}
	for i, q := range questions {
		response.Questions[i] = QuizQuestionResponse{
			Prompt:  q.Prompt,
			Choices: q.Choices,
		}
	}
	return response
}

func shuffleCards(cards []card.Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
