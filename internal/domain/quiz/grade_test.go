package quiz_test

import (
	"errors"
	"testing"

	"github.com/flipcard/backend/internal/domain/quiz"
)

func threeQuestions() []quiz.Question {
	return []quiz.Question{
		{Prompt: "un", CorrectAnswer: "one", Choices: []string{"two", "one", "three"}},
		{Prompt: "deux", CorrectAnswer: "two", Choices: []string{"two", "three", "one"}},
		{Prompt: "trois", CorrectAnswer: "three", Choices: []string{"one", "three", "two"}},
	}
}

func TestGrade_RefusesIncompleteSubmissions(t *testing.T) {
	questions := threeQuestions()

	_, err := quiz.Grade(questions, map[int]string{0: "one", 2: "three"})
	if !errors.Is(err, quiz.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestGrade_AllCorrect(t *testing.T) {
	questions := threeQuestions()

	result, err := quiz.Grade(questions, map[int]string{0: "one", 1: "two", 2: "three"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Correct != 3 || result.Incorrect != 0 {
		t.Errorf("expected 3/0, got %d/%d", result.Correct, result.Incorrect)
	}
	if result.Percentage != 100 {
		t.Errorf("expected 100%%, got %d", result.Percentage)
	}
	if !result.Perfect {
		t.Error("expected a perfect score")
	}
}

func TestGrade_PartiallyCorrect(t *testing.T) {
	questions := threeQuestions()

	result, err := quiz.Grade(questions, map[int]string{0: "one", 1: "three", 2: "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Correct != 1 || result.Incorrect != 2 {
		t.Errorf("expected 1/2, got %d/%d", result.Correct, result.Incorrect)
	}
	// 1/3 rounds to 33
	if result.Percentage != 33 {
		t.Errorf("expected 33%%, got %d", result.Percentage)
	}
	if result.Perfect {
		t.Error("a partial score must not be perfect")
	}

	if result.PerQuestion[1].Correct || !result.PerQuestion[0].Correct {
		t.Errorf("per-question correctness wrong: %+v", result.PerQuestion)
	}
}

func TestGrade_CorrectPlusIncorrectEqualsTotal(t *testing.T) {
	questions := threeQuestions()
	submissions := map[int]string{0: "two", 1: "two", 2: "one"}

	result, err := quiz.Grade(questions, submissions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Correct+result.Incorrect != len(questions) {
		t.Errorf("correct %d + incorrect %d != total %d", result.Correct, result.Incorrect, len(questions))
	}
}

func TestGrade_ExactStringEquality(t *testing.T) {
	questions := []quiz.Question{
		{Prompt: "un", CorrectAnswer: "one", Choices: []string{"one", "One"}},
	}

	result, err := quiz.Grade(questions, map[int]string{0: "One"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Correct != 0 {
		t.Error("comparison must be case-sensitive exact equality")
	}
}

func TestGrade_NoQuestions(t *testing.T) {
	result, err := quiz.Grade(nil, map[int]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Percentage != 0 {
		t.Errorf("expected 0%% with no questions, got %d", result.Percentage)
	}
	if result.Perfect {
		t.Error("an empty quiz is not a perfect score")
	}
}

func TestGrade_DoesNotMutateQuestions(t *testing.T) {
	questions := threeQuestions()
	before := make([]quiz.Question, len(questions))
	copy(before, questions)

	quiz.Grade(questions, map[int]string{0: "x", 1: "y", 2: "z"})

	for i := range questions {
		if questions[i].Prompt != before[i].Prompt || questions[i].CorrectAnswer != before[i].CorrectAnswer {
			t.Fatal("grading mutated the questions")
		}
	}
}
