package app_test

import (
	"testing"

	"quiz-league-service/internal/app"
	"quiz-league-service/internal/domain"
)

func TestComputeRewardSkipsUnknownQuestions(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", CorrectAnswer: domain.AnswerA},
		{ID: "q2", CorrectAnswer: domain.AnswerB},
	}
	answers := map[string]domain.Answer{
		"q1":       domain.AnswerA,
		"q-stray":  domain.AnswerA,
		"q-stray2": domain.AnswerD,
	}
	if got := app.ComputeReward(answers, questions, 100); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestComputeRewardTruncatesFraction(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", CorrectAnswer: domain.AnswerA},
		{ID: "q2", CorrectAnswer: domain.AnswerB},
		{ID: "q3", CorrectAnswer: domain.AnswerC},
	}
	// 2 of 3 correct at 100/3 each is 66.66..., truncated to 66.
	answers := map[string]domain.Answer{
		"q1": domain.AnswerA,
		"q2": domain.AnswerB,
		"q3": domain.AnswerA,
	}
	if got := app.ComputeReward(answers, questions, 100); got != 66 {
		t.Fatalf("expected 66, got %d", got)
	}
}

func TestComputeRewardScoresAgainstFullQuestionSet(t *testing.T) {
	questions := []domain.Question{
		{ID: "q1", CorrectAnswer: domain.AnswerA},
		{ID: "q2", CorrectAnswer: domain.AnswerB},
		{ID: "q3", CorrectAnswer: domain.AnswerC},
		{ID: "q4", CorrectAnswer: domain.AnswerD},
	}
	// A single correct answer is worth a quarter of the budget even though
	// only one answer was submitted.
	answers := map[string]domain.Answer{"q1": domain.AnswerA}
	if got := app.ComputeReward(answers, questions, 100); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}
}

func TestComputeRewardEmptyQuiz(t *testing.T) {
	if got := app.ComputeReward(map[string]domain.Answer{"q1": domain.AnswerA}, nil, 100); got != 0 {
		t.Fatalf("expected 0 for empty quiz, got %d", got)
	}
}

func TestComputeRewardNoAnswers(t *testing.T) {
	questions := []domain.Question{{ID: "q1", CorrectAnswer: domain.AnswerA}}
	if got := app.ComputeReward(nil, questions, 100); got != 0 {
		t.Fatalf("expected 0 for no answers, got %d", got)
	}
}
