// internal/service/sessions.go
package service

import (
	"errors"
	"sync"

	"github.com/flipcard/backend/internal/domain/quiz"
	"github.com/flipcard/backend/internal/domain/review"
	"github.com/flipcard/backend/internal/id"
)

var ErrSessionNotFound = errors.New("session not found")

// Sessions is the in-memory registry of live review sessions and quizzes.
// Domain sessions are not safe for concurrent use on their own, so every
// access goes through the registry lock.
type Sessions struct {
	mu      sync.Mutex
	reviews map[string]*review.Session
	quizzes map[string][]quiz.Question
}

func NewSessions() *Sessions {
	return &Sessions{
		reviews: make(map[string]*review.Session),
		quizzes: make(map[string][]quiz.Question),
	}
}

// PutReview registers a review session and returns its id.
func (s *Sessions) PutReview(sess *review.Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID := id.GenerateID()
	s.reviews[sessionID] = sess
	return sessionID
}

// WithReview runs fn against the named review session under the registry
// lock. fn may freely mutate the session.
func (s *Sessions) WithReview(sessionID string, fn func(*review.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.reviews[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(sess)
}

// PutQuiz registers a generated quiz and returns its id.
func (s *Sessions) PutQuiz(questions []quiz.Question) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	quizID := id.GenerateID()
	s.quizzes[quizID] = questions
	return quizID
}

// Quiz returns the questions of a registered quiz. The slice is shared;
// questions are immutable once generated.
func (s *Sessions) Quiz(quizID string) ([]quiz.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	questions, ok := s.quizzes[quizID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return questions, nil
}
