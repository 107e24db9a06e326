package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
)

const validQuizOutput = "```json\n" + `{
  "questions": [
    {"question": "What does a stack's pop return?", "type": "multiple_choice",
     "options": ["Oldest element", "Newest element", "Random element", "Nothing"],
     "correct_answer": "Newest element", "explanation": "LIFO order."},
    {"question": "True or False: stacks are FIFO.", "type": "true_false",
     "correct_answer": "false", "explanation": "Stacks are LIFO."},
    {"question": "Which uses a stack?", "type": "multiple_choice",
     "options": ["Function calls", "Round-robin scheduling", "BFS", "Hashing"],
     "correct_answer": "Function calls", "explanation": "Call frames nest."}
  ]
}` + "\n```"

type quizCountingModel struct {
	calls    int
	response string
}

func (m *quizCountingModel) Complete(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.response, nil
}

func TestQuizGenerateUsesModelOutput(t *testing.T) {
	model := &quizCountingModel{response: validQuizOutput}
	service := NewQuizService(model, cache.NewMemoryStore(), time.Hour, zap.NewNop())

	quiz, err := service.Generate(context.Background(), "Stacks", domain.DifficultyBeginner, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("expected 3 questions from model, got %d", len(quiz.Questions))
	}
	if err := quiz.Validate(); err != nil {
		t.Fatalf("quiz invalid: %v", err)
	}
}

func TestQuizGenerateCachesByTopicAndDifficulty(t *testing.T) {
	model := &quizCountingModel{response: validQuizOutput}
	service := NewQuizService(model, cache.NewMemoryStore(), time.Hour, zap.NewNop())
	ctx := context.Background()

	if _, err := service.Generate(ctx, "Stacks", domain.DifficultyBeginner, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := service.Generate(ctx, "Stacks", domain.DifficultyBeginner, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("expected cache hit on second call, model calls = %d", model.calls)
	}

	if _, err := service.Generate(ctx, "Stacks", domain.DifficultyAdvanced, nil); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if model.calls != 2 {
		t.Fatalf("different difficulty must regenerate, model calls = %d", model.calls)
	}
}

func TestQuizGenerateFallsBackOnGarbage(t *testing.T) {
	model := &quizCountingModel{response: "no json here"}
	service := NewQuizService(model, cache.NewMemoryStore(), time.Hour, zap.NewNop())

	quiz, err := service.Generate(context.Background(), "Stacks", domain.DifficultyBeginner, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := quiz.Validate(); err != nil {
		t.Fatalf("fallback quiz invalid: %v", err)
	}
}

func TestQuizGenerateNoModel(t *testing.T) {
	service := NewQuizService(nil, cache.NewMemoryStore(), time.Hour, zap.NewNop())

	quiz, err := service.Generate(context.Background(), "Stacks", domain.DifficultyBeginner, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := quiz.Validate(); err != nil {
		t.Fatalf("fallback quiz invalid: %v", err)
	}
}
