package app

import (
	"reflect"
	"strings"
	"testing"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
)

func TestFallbackLessonIsAlwaysSchemaValid(t *testing.T) {
	topics := []string{
		"Binary Search Trees",
		"",
		"   ",
		"!!!###$$$",
		strings.Repeat("very long topic ", 200),
	}
	for _, topic := range topics {
		lesson := FallbackLesson(topic, domain.DifficultyBeginner)
		if err := lesson.Validate(); err != nil {
			t.Errorf("topic %q: fallback lesson invalid: %v", topic, err)
		}
	}
}

func TestFallbackQuizInvariants(t *testing.T) {
	quiz := FallbackQuiz("Dynamic Programming", domain.DifficultyIntermediate)

	if n := len(quiz.Questions); n < 2 || n > 3 {
		t.Fatalf("expected 2-3 questions, got %d", n)
	}
	for i, q := range quiz.Questions {
		if q.Type == domain.QuestionMultipleChoice {
			found := false
			for _, opt := range q.Options {
				if opt == q.CorrectAnswer {
					found = true
				}
			}
			if !found {
				t.Errorf("question %d: correct answer %q not in options", i, q.CorrectAnswer)
			}
		}
	}
}

func TestFallbackVideosDeterministic(t *testing.T) {
	first := FallbackVideos("Graph Algorithms")
	second := FallbackVideos("Graph Algorithms")

	if len(first) != 5 {
		t.Fatalf("expected exactly 5 videos, got %d", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("fallback videos differ across calls for the same topic")
	}
	for i, v := range first {
		if !strings.Contains(v.Title, "Graph Algorithms") {
			t.Errorf("video %d title %q does not embed topic", i, v.Title)
		}
	}
}

func TestFallbackVideosVaryByTopic(t *testing.T) {
	a := FallbackVideos("Heaps")
	b := FallbackVideos("Tries")
	if reflect.DeepEqual(a, b) {
		t.Fatal("different topics should not share identical video lists")
	}
}

func TestFallbackPathHasThreeStages(t *testing.T) {
	path := FallbackPath("Machine Learning")
	if len(path.Stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(path.Stages))
	}
	if path.Stages[0].Difficulty != "Beginner" || path.Stages[2].Difficulty != "Advanced" {
		t.Fatalf("unexpected difficulty progression: %+v", path.Stages)
	}
}

func TestFallbackEmptyTopicGetsPlaceholder(t *testing.T) {
	lesson := FallbackLesson("", domain.DifficultyBeginner)
	if !strings.Contains(lesson.Title, "General Learning") {
		t.Fatalf("empty topic should use placeholder, got %q", lesson.Title)
	}
}
