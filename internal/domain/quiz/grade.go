package quiz

import (
	"errors"
	"math"
)

// ErrIncomplete means at least one question has no submission. Grading is
// all-or-nothing: nothing is scored until every question is answered.
var ErrIncomplete = errors.New("incomplete quiz: every question needs an answer")

// Answer is the graded outcome for one question.
type Answer struct {
	Chosen  string
	Correct bool
}

// Result is the aggregate quiz score.
type Result struct {
	PerQuestion []Answer
	Correct     int
	Incorrect   int
	Percentage  int // rounded to nearest integer, 0 when there are no questions
	Perfect     bool
}

// Grade compares submissions (keyed by question index) against the correct
// answers. Questions are never mutated. Correctness is exact string equality.
func Grade(questions []Question, submissions map[int]string) (Result, error) {
	for i := range questions {
		if _, ok := submissions[i]; !ok {
			return Result{}, ErrIncomplete
		}
	}

	result := Result{PerQuestion: make([]Answer, len(questions))}
	for i, q := range questions {
		chosen := submissions[i]
		correct := chosen == q.CorrectAnswer
		result.PerQuestion[i] = Answer{Chosen: chosen, Correct: correct}
		if correct {
			result.Correct++
		}
	}

	total := len(questions)
	result.Incorrect = total - result.Correct
	if total > 0 {
		result.Percentage = int(math.Round(float64(result.Correct) / float64(total) * 100))
	}
	result.Perfect = total > 0 && result.Correct == total
	return result, nil
}
