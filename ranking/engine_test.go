package ranking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vozdobairro.com/voz-do-bairro/feed"
	"vozdobairro.com/voz-do-bairro/models"
	"vozdobairro.com/voz-do-bairro/store"
)

var now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

type fixture struct {
	posts      *store.MemoryPosts
	engagement *store.MemoryEngagement
	profiles   *store.MemoryProfiles
	engine     *Engine
}

func newFixture() *fixture {
	f := &fixture{
		posts:      store.NewMemoryPosts(),
		engagement: store.NewMemoryEngagement(),
		profiles:   store.NewMemoryProfiles(),
	}
	agg := feed.NewAggregator(f.posts, f.engagement, f.profiles)
	f.engine = NewEngine(agg, f.profiles, DefaultConfig())
	f.engine.now = func() time.Time { return now }
	return f
}

func (f *fixture) addPost(t *testing.T, id, authorID string, age time.Duration, likes, comments int) {
	t.Helper()
	ctx := context.Background()
	err := f.posts.Create(ctx, &models.Post{
		ID:          id,
		UserID:      authorID,
		Title:       "Lixo acumulado",
		Description: "Praça com lixo há dias",
		Category:    models.CategoryLixo,
		Location:    "Praça Central",
		CreatedAt:   now.Add(-age),
	})
	require.NoError(t, err)
	for i := 0; i < likes; i++ {
		require.NoError(t, f.engagement.InsertLike(ctx, id, fmt.Sprintf("liker-%s-%d", id, i)))
	}
	for i := 0; i < comments; i++ {
		require.NoError(t, f.engagement.AddComment(ctx, &models.Comment{
			ID: fmt.Sprintf("c-%s-%d", id, i), PostID: id, UserID: "commenter", Text: "ok",
		}))
	}
}

func TestTopPostsOrdering(t *testing.T) {
	f := newFixture()
	f.addPost(t, "low", "a", 24*time.Hour, 1, 0)
	f.addPost(t, "high", "a", 24*time.Hour, 7, 0)
	f.addPost(t, "mid-more-comments", "a", 24*time.Hour, 3, 5)
	f.addPost(t, "mid-fewer-comments", "a", 24*time.Hour, 3, 1)

	ranked, err := f.engine.TopPosts(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 4)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "mid-more-comments", ranked[1].ID)
	assert.Equal(t, "mid-fewer-comments", ranked[2].ID)
	assert.Equal(t, "low", ranked[3].ID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 7, ranked[0].Score)
}

func TestTopPostsOlderWinsEqualEngagement(t *testing.T) {
	f := newFixture()
	// Same likes, same comments: A is 3 days old, B is 1 day old.
	f.addPost(t, "post-a", "a", 3*24*time.Hour, 5, 2)
	f.addPost(t, "post-b", "b", 1*24*time.Hour, 5, 2)

	ranked, err := f.engine.TopPosts(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "post-a", ranked[0].ID, "older post wins the tie")
	assert.Equal(t, "post-b", ranked[1].ID)
}

func TestTopPostsWindowExcludesOldPosts(t *testing.T) {
	f := newFixture()
	f.addPost(t, "inside", "a", 6*24*time.Hour, 1, 0)
	f.addPost(t, "outside", "a", 8*24*time.Hour, 100, 0)

	ranked, err := f.engine.TopPosts(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "inside", ranked[0].ID)
}

func TestTopPostsTruncation(t *testing.T) {
	f := newFixture()
	for i := 0; i < 15; i++ {
		f.addPost(t, fmt.Sprintf("p%02d", i), "a", 24*time.Hour, i, 0)
	}

	ranked, err := f.engine.TopPosts(context.Background(), 7, 0)
	require.NoError(t, err)
	assert.Len(t, ranked, 10, "defaults to the configured limit")

	ranked, err = f.engine.TopPosts(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "p14", ranked[0].ID)
}

func TestTopPostsDeterministic(t *testing.T) {
	f := newFixture()
	// All identical engagement and timestamps: only ids separate them.
	for _, id := range []string{"delta", "alpha", "charlie", "bravo"} {
		f.addPost(t, id, "a", 24*time.Hour, 2, 1)
	}

	first, err := f.engine.TopPosts(context.Background(), 7, 10)
	require.NoError(t, err)
	second, err := f.engine.TopPosts(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs, identical ordering")

	var ids []string
	for _, r := range first {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta"}, ids)
}

func TestTopPostsEmptyWindow(t *testing.T) {
	f := newFixture()
	f.addPost(t, "ancient", "a", 30*24*time.Hour, 10, 0)

	ranked, err := f.engine.TopPosts(context.Background(), 7, 10)
	require.NoError(t, err, "an empty window is a valid empty result")
	assert.Empty(t, ranked)
}

func TestTopAuthorsLifetimeScores(t *testing.T) {
	f := newFixture()
	f.profiles.Put(models.Profile{UserID: "maria", DisplayName: "Maria Oliveira"})
	f.profiles.Put(models.Profile{UserID: "joao", DisplayName: "João Santos"})
	f.profiles.Put(models.Profile{UserID: "ana", DisplayName: "Ana Silva"})

	// Lifetime, so a month-old post still counts.
	f.addPost(t, "m1", "maria", 30*24*time.Hour, 30, 0)
	f.addPost(t, "m2", "maria", 24*time.Hour, 30, 0)
	f.addPost(t, "j1", "joao", 24*time.Hour, 25, 0)

	ranked, err := f.engine.TopAuthors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "maria", ranked[0].UserID)
	assert.Equal(t, 60, ranked[0].TotalLikes)
	assert.Equal(t, 2, ranked[0].TotalPosts)
	assert.Equal(t, "Super Cidadão", ranked[0].Tier)

	assert.Equal(t, "joao", ranked[1].UserID)
	assert.Equal(t, "Cidadão Ativo", ranked[1].Tier)

	assert.Equal(t, "ana", ranked[2].UserID)
	assert.Equal(t, 0, ranked[2].TotalLikes)
	assert.Equal(t, "Cidadão Engajado", ranked[2].Tier)
}

func TestTopAuthorsTieBreaks(t *testing.T) {
	f := newFixture()
	f.profiles.Put(models.Profile{UserID: "bravo", DisplayName: "B"})
	f.profiles.Put(models.Profile{UserID: "alpha", DisplayName: "A"})
	f.profiles.Put(models.Profile{UserID: "charlie", DisplayName: "C"})

	// bravo: 10 likes over 2 posts; charlie: 10 likes over 1 post;
	// alpha: 10 likes over 2 posts. Same score everywhere.
	f.addPost(t, "b1", "bravo", 24*time.Hour, 5, 0)
	f.addPost(t, "b2", "bravo", 24*time.Hour, 5, 0)
	f.addPost(t, "c1", "charlie", 24*time.Hour, 10, 0)
	f.addPost(t, "a1", "alpha", 24*time.Hour, 5, 0)
	f.addPost(t, "a2", "alpha", 24*time.Hour, 5, 0)

	ranked, err := f.engine.TopAuthors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "alpha", ranked[0].UserID, "post count first, then user id")
	assert.Equal(t, "bravo", ranked[1].UserID)
	assert.Equal(t, "charlie", ranked[2].UserID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestTopAuthorsTruncation(t *testing.T) {
	f := newFixture()
	for i := 0; i < 5; i++ {
		f.profiles.Put(models.Profile{UserID: fmt.Sprintf("u%d", i), DisplayName: "U"})
	}

	ranked, err := f.engine.TopAuthors(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestTierThresholdsAreConfiguration(t *testing.T) {
	cfg := DefaultConfig()
	engine := NewEngine(nil, nil, cfg)

	assert.Equal(t, "Cidadão Engajado", engine.Tier(0))
	assert.Equal(t, "Cidadão Engajado", engine.Tier(20))
	assert.Equal(t, "Cidadão Ativo", engine.Tier(21))
	assert.Equal(t, "Cidadão Ativo", engine.Tier(50))
	assert.Equal(t, "Super Cidadão", engine.Tier(51))

	cfg.SuperThreshold = 5
	cfg.ActiveThreshold = 2
	custom := NewEngine(nil, nil, cfg)
	assert.Equal(t, "Super Cidadão", custom.Tier(6))
	assert.Equal(t, "Cidadão Ativo", custom.Tier(3))
}
