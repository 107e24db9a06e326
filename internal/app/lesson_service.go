package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
)

// TextModel is the generative-model boundary: one prompt in, raw text out.
// Implementations must bound the call with their own timeout.
type TextModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VideoRecommender supplies ranked video links for a topic.
type VideoRecommender interface {
	Recommend(ctx context.Context, topic string) ([]domain.VideoRef, error)
}

// LessonService turns a free-text topic into a complete lesson: prompt the
// model, extract and validate structured output, fall back deterministically
// on any failure, attach videos, cache the result. Its public contract always
// succeeds with a schema-valid lesson unless the caller's context is gone.
type LessonService struct {
	model  TextModel // nil when no credential is configured
	videos VideoRecommender
	store  cache.Store
	ttl    time.Duration
	sf     singleflight.Group
	log    *zap.Logger
}

func NewLessonService(model TextModel, videos VideoRecommender, store cache.Store, ttl time.Duration, log *zap.Logger) *LessonService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LessonService{model: model, videos: videos, store: store, ttl: ttl, log: log}
}

// lessonPayload mirrors the JSON schema requested from the model. Video
// links are attached after content resolution, never decoded from the model.
type lessonPayload struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Content         string      `json:"content"`
	AssignmentLatex string      `json:"assignment_latex"`
	DifficultyLevel int         `json:"difficulty_level"`
	Prerequisites   []string    `json:"prerequisites"`
	Quiz            domain.Quiz `json:"quiz"`
}

// Generate produces the lesson for (topic, background), consulting the cache
// first. Identical requests within the TTL return the cached lesson without
// touching the model. The only error returned is caller cancellation.
func (s *LessonService) Generate(ctx context.Context, topic, background string, progress []domain.CompletedModule) (domain.LessonContent, error) {
	key := lessonFingerprint(topic, background)

	if cached, ok := s.cachedLesson(ctx, key); ok {
		return cached, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another request filled the cache.
		if cached, ok := s.cachedLesson(ctx, key); ok {
			return cached, nil
		}

		lesson := s.resolveContent(ctx, topic, background, progress)
		if err := ctx.Err(); err != nil {
			return domain.LessonContent{}, err
		}

		lesson.VideoLinks = s.attachVideos(ctx, topic)

		// Write only the fully assembled lesson, and never on cancellation.
		if err := ctx.Err(); err != nil {
			return domain.LessonContent{}, err
		}
		s.cacheLesson(ctx, key, lesson)
		return lesson, nil
	})
	if err != nil {
		return domain.LessonContent{}, err
	}
	return result.(domain.LessonContent), nil
}

// resolveContent runs model -> extract -> validate and degrades to the
// deterministic fallback on every failure. It cannot itself fail.
func (s *LessonService) resolveContent(ctx context.Context, topic, background string, progress []domain.CompletedModule) domain.LessonContent {
	if s.model == nil {
		s.log.Info("no model configured, using fallback lesson", zap.String("topic", topic))
		return FallbackLesson(topic, domain.DifficultyBeginner)
	}

	raw, err := s.model.Complete(ctx, lessonPrompt(topic, background, progress))
	if err != nil {
		s.log.Warn("model call failed, using fallback lesson",
			zap.String("topic", topic), zap.Error(err))
		return FallbackLesson(topic, domain.DifficultyBeginner)
	}

	var payload lessonPayload
	if err := ExtractJSON(raw, &payload); err != nil {
		var extractionErr *domain.ExtractionError
		if errors.As(err, &extractionErr) {
			s.log.Warn("extraction failed, using fallback lesson",
				zap.String("topic", topic),
				zap.Int("raw_len", len(extractionErr.Raw)),
				zap.Error(err))
		}
		return FallbackLesson(topic, domain.DifficultyBeginner)
	}

	lesson := domain.LessonContent{
		Title:           payload.Title,
		Description:     payload.Description,
		Body:            payload.Content,
		AssignmentLatex: payload.AssignmentLatex,
		Quiz:            payload.Quiz,
		DifficultyLevel: domain.ClampDifficultyLevel(payload.DifficultyLevel),
		Prerequisites:   payload.Prerequisites,
		VideoLinks:      []domain.VideoRef{},
	}
	if err := lesson.Validate(); err != nil {
		s.log.Warn("generated lesson failed validation, using fallback",
			zap.String("topic", topic), zap.Error(err))
		return FallbackLesson(topic, domain.DifficultyBeginner)
	}
	return lesson
}

// attachVideos degrades to an empty list; recommendation failure never fails
// the lesson request.
func (s *LessonService) attachVideos(ctx context.Context, topic string) []domain.VideoRef {
	if s.videos == nil {
		return []domain.VideoRef{}
	}
	videos, err := s.videos.Recommend(ctx, topic)
	if err != nil {
		s.log.Warn("video recommendation failed", zap.String("topic", topic), zap.Error(err))
		return []domain.VideoRef{}
	}
	return videos
}

func (s *LessonService) cachedLesson(ctx context.Context, key string) (domain.LessonContent, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return domain.LessonContent{}, false
	}
	if !ok {
		return domain.LessonContent{}, false
	}
	var lesson domain.LessonContent
	if err := json.Unmarshal(raw, &lesson); err != nil {
		s.log.Warn("cached lesson corrupt", zap.String("key", key), zap.Error(err))
		return domain.LessonContent{}, false
	}
	return lesson, true
}

// cacheLesson logs and swallows write errors: a generated lesson is returned
// even when caching fails.
func (s *LessonService) cacheLesson(ctx context.Context, key string, lesson domain.LessonContent) {
	raw, err := json.Marshal(lesson)
	if err != nil {
		s.log.Warn("encode lesson for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// lessonFingerprint derives the deterministic cache key from the request
// parameters: normalized topic plus a short hash of the background text.
func lessonFingerprint(topic, background string) string {
	key := "module:" + normalizeTopic(topic)
	if background != "" {
		key = fmt.Sprintf("%s:%04d", key, topicSeed(background)%10000)
	}
	return key
}

func normalizeTopic(topic string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(topic)), " ", "_")
}

func lessonPrompt(topic, background string, progress []domain.CompletedModule) string {
	var sb strings.Builder
	sb.WriteString("Create a comprehensive learning module for the topic below.\n\n")
	sb.WriteString("TOPIC: " + topic + "\n")
	if background != "" {
		sb.WriteString("LEARNER BACKGROUND: " + background + "\n")
	}
	if len(progress) > 0 {
		sb.WriteString("LEARNER HISTORY:\n")
		for _, m := range progress {
			fmt.Fprintf(&sb, "- Completed module: %s with score: %.0f\n", m.Title, m.Score)
		}
	}
	sb.WriteString(`
Return ONLY valid JSON in exactly this format:
{
  "title": "Engaging title for the learning module",
  "description": "2-3 sentence description of what students will learn",
  "content": "Markdown lesson body with Introduction, Key Concepts, Examples, Applications, Best Practices and Summary sections",
  "assignment_latex": "A complete LaTeX article with practice exercises",
  "difficulty_level": 1,
  "prerequisites": ["prerequisite1", "prerequisite2"],
  "quiz": {
    "questions": [
      {
        "question": "Question text",
        "type": "multiple_choice",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correct_answer": "Option A",
        "explanation": "Why this answer is correct"
      },
      {
        "question": "True or False: ...",
        "type": "true_false",
        "correct_answer": "true",
        "explanation": "Why"
      }
    ]
  }
}

Rules:
- difficulty_level is an integer from 1 to 5
- include 3 to 5 quiz questions
- for multiple_choice questions correct_answer must be one of options verbatim
- make sure the JSON is valid, with no unescaped quotes or trailing commas
`)
	return sb.String()
}
