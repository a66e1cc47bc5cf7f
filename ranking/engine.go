// Package ranking computes the windowed top-reports and lifetime
// top-citizens lists. Both are pure functions of the aggregated state at
// call time; nothing here is persisted, so identical inputs always produce
// the identical ordering.
package ranking

import (
	"context"
	"sort"
	"time"

	"vozdobairro.com/voz-do-bairro/models"
	"vozdobairro.com/voz-do-bairro/store"
)

// PostSource is the slice of the aggregator the engine consumes.
type PostSource interface {
	Since(ctx context.Context, after time.Time) ([]models.PostView, error)
	All(ctx context.Context) ([]models.PostView, error)
}

// Config carries the tunables: list sizes, window, and the citizen-tier
// thresholds and labels. Thresholds are configuration, not business logic
// baked into the sort.
type Config struct {
	DefaultLimit      int
	DefaultWindowDays int
	SuperThreshold    int
	ActiveThreshold   int
	SuperLabel        string
	ActiveLabel       string
	EngagedLabel      string
}

func DefaultConfig() Config {
	return Config{
		DefaultLimit:      10,
		DefaultWindowDays: 7,
		SuperThreshold:    50,
		ActiveThreshold:   20,
		SuperLabel:        "Super Cidadão",
		ActiveLabel:       "Cidadão Ativo",
		EngagedLabel:      "Cidadão Engajado",
	}
}

type Engine struct {
	source   PostSource
	profiles store.ProfileDirectory
	cfg      Config

	// now is swappable so tests can pin the window edge.
	now func() time.Time
}

func NewEngine(source PostSource, profiles store.ProfileDirectory, cfg Config) *Engine {
	return &Engine{source: source, profiles: profiles, cfg: cfg, now: time.Now}
}

// TopPosts ranks the posts created inside the window by like count, then
// comment count, then age (older first), then id. An empty window is an
// empty list, not an error.
func (e *Engine) TopPosts(ctx context.Context, windowDays, limit int) ([]models.RankedPost, error) {
	if windowDays <= 0 {
		windowDays = e.cfg.DefaultWindowDays
	}
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	windowStart := e.now().Add(-time.Duration(windowDays) * 24 * time.Hour)

	views, err := e.source.Since(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.LikeCount != b.LikeCount {
			return a.LikeCount > b.LikeCount
		}
		if a.CommentCount != b.CommentCount {
			return a.CommentCount > b.CommentCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if len(views) > limit {
		views = views[:limit]
	}
	ranked := make([]models.RankedPost, 0, len(views))
	for i, v := range views {
		ranked = append(ranked, models.RankedPost{
			PostView: v,
			Rank:     i + 1,
			Score:    v.LikeCount,
		})
	}
	return ranked, nil
}

// TopAuthors ranks every profile by the likes accumulated across all of its
// posts, lifetime. Ties break on post count, then user id.
func (e *Engine) TopAuthors(ctx context.Context, limit int) ([]models.RankedAuthor, error) {
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	views, err := e.source.All(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := e.profiles.All(ctx)
	if err != nil {
		return nil, err
	}

	likesByAuthor := make(map[string]int)
	postsByAuthor := make(map[string]int)
	for _, v := range views {
		likesByAuthor[v.UserID] += v.LikeCount
		postsByAuthor[v.UserID]++
	}

	ranked := make([]models.RankedAuthor, 0, len(profiles))
	for _, p := range profiles {
		score := likesByAuthor[p.UserID]
		ranked = append(ranked, models.RankedAuthor{
			Profile:    p,
			TotalLikes: score,
			TotalPosts: postsByAuthor[p.UserID],
			Tier:       e.Tier(score),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalLikes != b.TotalLikes {
			return a.TotalLikes > b.TotalLikes
		}
		if a.TotalPosts != b.TotalPosts {
			return a.TotalPosts > b.TotalPosts
		}
		return a.UserID < b.UserID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// Tier maps a lifetime like score to its citizen label.
func (e *Engine) Tier(score int) string {
	switch {
	case score > e.cfg.SuperThreshold:
		return e.cfg.SuperLabel
	case score > e.cfg.ActiveThreshold:
		return e.cfg.ActiveLabel
	default:
		return e.cfg.EngagedLabel
	}
}
