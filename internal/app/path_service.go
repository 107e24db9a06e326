package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
)

// PathService suggests a personalized learning path. It is a finite
// pipeline: summarize already-fetched progress, invoke the model once on the
// structured summary, extract and validate the plan, fall back to the
// standard three-stage path. No multi-step agent loop.
type PathService struct {
	model TextModel
	store cache.Store
	ttl   time.Duration
	log   *zap.Logger
}

func NewPathService(model TextModel, store cache.Store, ttl time.Duration, log *zap.Logger) *PathService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PathService{model: model, store: store, ttl: ttl, log: log}
}

// Suggest builds the plan toward goal for one user. Always succeeds with a
// valid path unless the caller's context is gone.
func (s *PathService) Suggest(ctx context.Context, userID int64, goal, background string, progress []domain.CompletedModule) (domain.LearningPath, error) {
	key := fmt.Sprintf("user:%d:path:%s", userID, normalizeTopic(goal))

	if raw, ok, err := s.store.Get(ctx, key); err == nil && ok {
		var cached domain.LearningPath
		if json.Unmarshal(raw, &cached) == nil {
			return cached, nil
		}
	}

	path := s.resolvePath(ctx, goal, background, progress)
	if err := ctx.Err(); err != nil {
		return domain.LearningPath{}, err
	}

	if raw, err := json.Marshal(path); err == nil {
		if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
			s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return path, nil
}

func (s *PathService) resolvePath(ctx context.Context, goal, background string, progress []domain.CompletedModule) domain.LearningPath {
	if s.model == nil {
		return FallbackPath(goal)
	}

	raw, err := s.model.Complete(ctx, pathPrompt(goal, background, progress))
	if err != nil {
		s.log.Warn("path model call failed, using fallback", zap.String("goal", goal), zap.Error(err))
		return FallbackPath(goal)
	}

	var path domain.LearningPath
	if err := ExtractJSON(raw, &path); err != nil {
		s.log.Warn("path extraction failed, using fallback", zap.String("goal", goal), zap.Error(err))
		return FallbackPath(goal)
	}
	if !validPath(path) {
		s.log.Warn("generated path failed validation, using fallback", zap.String("goal", goal))
		return FallbackPath(goal)
	}
	if path.Goal == "" {
		path.Goal = goal
	}
	return path
}

func validPath(path domain.LearningPath) bool {
	if len(path.Stages) == 0 || len(path.Stages) > 6 {
		return false
	}
	for _, stage := range path.Stages {
		if stage.Title == "" || stage.Description == "" {
			return false
		}
	}
	return true
}

func pathPrompt(goal, background string, progress []domain.CompletedModule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Design a learning path toward the goal %q.\n", goal)
	if background != "" {
		fmt.Fprintf(&sb, "LEARNER BACKGROUND: %s\n", background)
	}
	if len(progress) > 0 {
		sb.WriteString("COMPLETED MODULES:\n")
		for _, m := range progress {
			fmt.Fprintf(&sb, "- %s (score %.0f)\n", m.Title, m.Score)
		}
		sb.WriteString("A student scoring 80 or above is ready for more advanced material.\n")
	}
	sb.WriteString(`
Return ONLY valid JSON in exactly this format:
{
  "goal": "the goal",
  "stages": [
    {"title": "Stage title", "description": "What this stage covers",
     "difficulty": "Beginner", "estimated_time": "2 hours"}
  ],
  "reasoning": "One paragraph explaining the ordering"
}

Include 3 to 5 stages ordered from easiest to hardest.
`)
	return sb.String()
}
