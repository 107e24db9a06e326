package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/SSHRIHARI006/GyanForge/internal/domain"
	"github.com/SSHRIHARI006/GyanForge/internal/infra/cache"
)

// VideoSearcher is the external video-search boundary.
type VideoSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]domain.VideoCandidate, error)
}

// queryVariants broaden the candidate pool per topic.
var queryVariants = []string{
	"%s tutorial",
	"%s explained",
	"learn %s",
	"%s course",
	"%s fundamentals",
}

// VideoService gathers candidates across query variants, ranks them by
// educational value (model-assisted when available, heuristic otherwise) and
// caches the top five per topic.
type VideoService struct {
	search VideoSearcher // nil when no search credential is configured
	ranker TextModel     // nil disables model-assisted ranking
	store  cache.Store
	ttl    time.Duration
	sf     singleflight.Group
	log    *zap.Logger
}

func NewVideoService(search VideoSearcher, ranker TextModel, store cache.Store, ttl time.Duration, log *zap.Logger) *VideoService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &VideoService{search: search, ranker: ranker, store: store, ttl: ttl, log: log}
}

// Recommend returns at most five ranked videos for a topic. An empty or
// unavailable search degrades to the deterministic fallback list; the call
// fails only on caller cancellation.
func (s *VideoService) Recommend(ctx context.Context, topic string) ([]domain.VideoRef, error) {
	key := "youtube:" + normalizeTopic(topic)

	if cached, ok := s.cachedVideos(ctx, key); ok {
		return cached, nil
	}

	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if cached, ok := s.cachedVideos(ctx, key); ok {
			return cached, nil
		}

		candidates := s.gatherCandidates(ctx, topic)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var videos []domain.VideoRef
		if len(candidates) == 0 {
			videos = FallbackVideos(topic)
		} else {
			videos = s.rank(ctx, topic, candidates)
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.cacheVideos(ctx, key, videos)
		return videos, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.VideoRef), nil
}

func (s *VideoService) gatherCandidates(ctx context.Context, topic string) []domain.VideoCandidate {
	if s.search == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var pool []domain.VideoCandidate
	for _, variant := range queryVariants {
		query := fmt.Sprintf(variant, topic)
		results, err := s.search.Search(ctx, query, 4)
		if err != nil {
			s.log.Warn("video search query failed", zap.String("query", query), zap.Error(err))
			continue
		}
		for _, c := range results {
			if _, dup := seen[c.URL]; dup || c.URL == "" {
				continue
			}
			seen[c.URL] = struct{}{}
			pool = append(pool, c)
		}
	}
	return pool
}

// rank orders candidates by estimated educational value and keeps the top 5.
func (s *VideoService) rank(ctx context.Context, topic string, candidates []domain.VideoCandidate) []domain.VideoRef {
	if s.ranker != nil {
		if ranked, ok := s.rankWithModel(ctx, topic, candidates); ok {
			return ranked
		}
	}
	return heuristicRank(candidates)
}

func (s *VideoService) rankWithModel(ctx context.Context, topic string, candidates []domain.VideoCandidate) ([]domain.VideoRef, bool) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an educational content curator. Rank these videos for learning %q by educational value, clarity and comprehensiveness.\n\n", topic)
	for i, c := range candidates {
		desc := c.Description
		if len(desc) > 200 {
			desc = desc[:200]
		}
		fmt.Fprintf(&sb, "Video %d: %s - %s (Channel: %s, Views: %s, Duration: %s)\n", i, c.Title, desc, c.Channel, c.Views, c.Duration)
	}
	sb.WriteString("\nReturn ONLY a JSON array of the best 5 video indices (0-based), best first. Example: [3, 7, 1, 12, 8]\n")

	raw, err := s.ranker.Complete(ctx, sb.String())
	if err != nil {
		s.log.Warn("ranking model call failed", zap.String("topic", topic), zap.Error(err))
		return nil, false
	}

	var indices []int
	if err := ExtractJSON(raw, &indices); err != nil {
		s.log.Warn("ranking output unusable", zap.String("topic", topic), zap.Error(err))
		return nil, false
	}

	var ranked []domain.VideoRef
	seen := make(map[int]struct{}, len(indices))
	for pos, idx := range indices {
		if idx < 0 || idx >= len(candidates) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		ref := toVideoRef(candidates[idx])
		ref.RelevanceScore = float64(len(indices) - pos)
		ranked = append(ranked, ref)
		if len(ranked) == 5 {
			break
		}
	}
	if len(ranked) == 0 {
		return nil, false
	}
	return ranked, true
}

// heuristicRank sorts by parsed view count then duration, both descending.
func heuristicRank(candidates []domain.VideoCandidate) []domain.VideoRef {
	sorted := append([]domain.VideoCandidate(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := parseViews(sorted[i].Views), parseViews(sorted[j].Views)
		if vi != vj {
			return vi > vj
		}
		return parseDurationSeconds(sorted[i].Duration) > parseDurationSeconds(sorted[j].Duration)
	})
	if len(sorted) > 5 {
		sorted = sorted[:5]
	}
	refs := make([]domain.VideoRef, 0, len(sorted))
	for _, c := range sorted {
		refs = append(refs, toVideoRef(c))
	}
	return refs
}

func toVideoRef(c domain.VideoCandidate) domain.VideoRef {
	return domain.VideoRef{
		Title:     c.Title,
		URL:       c.URL,
		Thumbnail: c.Thumbnail,
		Duration:  c.Duration,
	}
}

func (s *VideoService) cachedVideos(ctx context.Context, key string) ([]domain.VideoRef, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var videos []domain.VideoRef
	if err := json.Unmarshal(raw, &videos); err != nil {
		s.log.Warn("cached videos corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return videos, true
}

func (s *VideoService) cacheVideos(ctx context.Context, key string, videos []domain.VideoRef) {
	raw, err := json.Marshal(videos)
	if err != nil {
		s.log.Warn("encode videos for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// parseViews turns display strings like "1.2M views" into a count.
func parseViews(views string) int64 {
	views = strings.TrimSpace(strings.ToUpper(views))
	views = strings.TrimSuffix(views, " VIEWS")
	views = strings.TrimSuffix(views, " VIEW")
	views = strings.ReplaceAll(views, ",", "")
	if views == "" || views == "NO" {
		return 0
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(views, "K"):
		multiplier, views = 1_000, strings.TrimSuffix(views, "K")
	case strings.HasSuffix(views, "M"):
		multiplier, views = 1_000_000, strings.TrimSuffix(views, "M")
	case strings.HasSuffix(views, "B"):
		multiplier, views = 1_000_000_000, strings.TrimSuffix(views, "B")
	}
	f, err := strconv.ParseFloat(views, 64)
	if err != nil {
		return 0
	}
	return int64(f * float64(multiplier))
}

// parseDurationSeconds understands m:ss and h:mm:ss display strings.
func parseDurationSeconds(duration string) int {
	parts := strings.Split(strings.TrimSpace(duration), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}
