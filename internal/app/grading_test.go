package app

import (
	"math"
	"testing"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

func gradingQuiz() domain.Quiz {
	return domain.Quiz{Questions: []domain.Question{
		{Text: "Q1", Type: domain.QuestionMultipleChoice, Options: []string{"A", "B"}, CorrectAnswer: "A", Explanation: "A is right"},
		{Text: "Q2", Type: domain.QuestionMultipleChoice, Options: []string{"A", "B"}, CorrectAnswer: "B", Explanation: "B is right"},
		{Text: "Q3", Type: domain.QuestionTrueFalse, CorrectAnswer: "true", Explanation: "it is true"},
		{Text: "Q4", Type: domain.QuestionMultipleChoice, Options: []string{"X", "Y"}, CorrectAnswer: "Y", Explanation: "Y is right"},
	}}
}

func TestGradeMixedAnswers(t *testing.T) {
	// correct, wrong, correct, absent
	result := Grade(gradingQuiz(), map[int]string{0: "A", 1: "A", 2: "true"})

	if want := 100 * 2.0 / 4.0; math.Abs(result.Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", result.Score, want)
	}
	if len(result.Feedback) != 4 {
		t.Fatalf("expected feedback for all 4 questions, got %d", len(result.Feedback))
	}

	wantCorrect := []bool{true, false, true, false}
	for i, fb := range result.Feedback {
		if fb.Correct != wantCorrect[i] {
			t.Errorf("question %d: correct=%v, want %v", i, fb.Correct, wantCorrect[i])
		}
	}
	if result.Feedback[3].Submitted != "" {
		t.Fatalf("absent answer should have empty submission, got %q", result.Feedback[3].Submitted)
	}
	if result.Feedback[1].Explanation != "B is right" {
		t.Fatalf("feedback should carry explanation, got %q", result.Feedback[1].Explanation)
	}
}

func TestGradeIsCaseSensitive(t *testing.T) {
	result := Grade(gradingQuiz(), map[int]string{0: "a"})
	if result.Feedback[0].Correct {
		t.Fatal("comparison must be case-sensitive as stored")
	}
}

func TestGradeAllCorrect(t *testing.T) {
	result := Grade(gradingQuiz(), map[int]string{0: "A", 1: "B", 2: "true", 3: "Y"})
	if result.Score != 100 {
		t.Fatalf("score = %v, want 100", result.Score)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	result := Grade(domain.Quiz{}, map[int]string{0: "A"})
	if result.Score != 0 {
		t.Fatalf("empty quiz score = %v, want 0", result.Score)
	}
	if len(result.Feedback) != 1 || result.Feedback[0].Explanation == "" {
		t.Fatalf("expected a single diagnostic feedback entry, got %+v", result.Feedback)
	}
}

func TestNextStepThresholds(t *testing.T) {
	if _, advance := NextStep(80); !advance {
		t.Fatal("score 80 should advance")
	}
	if _, advance := NextStep(79.9); advance {
		t.Fatal("score below 80 should not advance")
	}
	msg, _ := NextStep(20)
	if msg == "" {
		t.Fatal("low score should still produce guidance")
	}
}
