package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
)

// QuizService generates standalone adaptive quizzes for a topic and
// difficulty, following the same generate -> validate -> fallback -> cache
// shape as lesson generation.
type QuizService struct {
	model TextModel
	store cache.Store
	ttl   time.Duration
	sf    singleflight.Group
	log   *zap.Logger
}

func NewQuizService(model TextModel, store cache.Store, ttl time.Duration, log *zap.Logger) *QuizService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &QuizService{model: model, store: store, ttl: ttl, log: log}
}

// Generate returns a schema-valid quiz for the topic. History, when present,
// nudges question selection toward recently completed material.
func (s *QuizService) Generate(ctx context.Context, topic string, difficulty domain.Difficulty, history []domain.CompletedModule) (domain.Quiz, error) {
	key := fmt.Sprintf("quiz:%s:%d", normalizeTopic(topic), difficulty)

	if cached, ok := s.cachedQuiz(ctx, key); ok {
		return cached, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, ok := s.cachedQuiz(ctx, key); ok {
			return cached, nil
		}

		quiz := s.resolveQuiz(ctx, topic, difficulty, history)
		if err := ctx.Err(); err != nil {
			return domain.Quiz{}, err
		}
		s.cacheQuiz(ctx, key, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

func (s *QuizService) resolveQuiz(ctx context.Context, topic string, difficulty domain.Difficulty, history []domain.CompletedModule) domain.Quiz {
	if s.model == nil {
		return FallbackQuiz(topic, difficulty)
	}

	raw, err := s.model.Complete(ctx, quizPrompt(topic, difficulty, history))
	if err != nil {
		s.log.Warn("quiz model call failed, using fallback",
			zap.String("topic", topic), zap.Error(err))
		return FallbackQuiz(topic, difficulty)
	}

	var quiz domain.Quiz
	if err := ExtractJSON(raw, &quiz); err != nil {
		s.log.Warn("quiz extraction failed, using fallback",
			zap.String("topic", topic), zap.Error(err))
		return FallbackQuiz(topic, difficulty)
	}
	if err := quiz.Validate(); err != nil {
		s.log.Warn("generated quiz failed validation, using fallback",
			zap.String("topic", topic), zap.Error(err))
		return FallbackQuiz(topic, difficulty)
	}
	return quiz
}

func (s *QuizService) cachedQuiz(ctx context.Context, key string) (domain.Quiz, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil || !ok {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

func (s *QuizService) cacheQuiz(ctx context.Context, key string, quiz domain.Quiz) {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func quizPrompt(topic string, difficulty domain.Difficulty, history []domain.CompletedModule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create 5 quiz questions for %q at %s level.\n", topic, difficulty.Label())
	if len(history) > 0 {
		recent := history
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		titles := make([]string, 0, len(recent))
		for _, m := range recent {
			titles = append(titles, m.Title)
		}
		fmt.Fprintf(&sb, "The learner recently completed: %s.\n", strings.Join(titles, ", "))
	}
	sb.WriteString(`
Return ONLY valid JSON in exactly this format:
{
  "questions": [
    {
      "question": "Clear question text",
      "type": "multiple_choice",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Option A",
      "explanation": "Why this answer is correct"
    }
  ]
}

Rules:
- include 2 concept questions, 2 application questions and 1 analysis question
- for multiple_choice questions correct_answer must match one option verbatim
- true_false questions use "true" or "false" as correct_answer and omit options
`)
	return sb.String()
}
