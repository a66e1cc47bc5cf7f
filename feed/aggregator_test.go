package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vozdobairro.com/voz-do-bairro/apperr"
	"vozdobairro.com/voz-do-bairro/models"
	"vozdobairro.com/voz-do-bairro/store"
)

type fixture struct {
	posts      *store.MemoryPosts
	engagement *store.MemoryEngagement
	profiles   *store.MemoryProfiles
	agg        *Aggregator
}

func newFixture() *fixture {
	f := &fixture{
		posts:      store.NewMemoryPosts(),
		engagement: store.NewMemoryEngagement(),
		profiles:   store.NewMemoryProfiles(),
	}
	f.agg = NewAggregator(f.posts, f.engagement, f.profiles)
	return f
}

func (f *fixture) addPost(t *testing.T, id, authorID string, createdAt time.Time) {
	t.Helper()
	err := f.posts.Create(context.Background(), &models.Post{
		ID:          id,
		UserID:      authorID,
		Title:       "Poste apagado",
		Description: "Rua às escuras há três noites",
		Category:    models.CategoryIluminacao,
		Location:    "Av. Central",
		CreatedAt:   createdAt,
	})
	require.NoError(t, err)
}

func TestFeedMergesEngagementAndProfiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	f.profiles.Put(models.Profile{UserID: "maria", DisplayName: "Maria Oliveira", Neighborhood: "Centro"})
	f.addPost(t, "p1", "maria", base)

	require.NoError(t, f.engagement.InsertLike(ctx, "p1", "joao"))
	require.NoError(t, f.engagement.InsertLike(ctx, "p1", "ana"))
	require.NoError(t, f.engagement.InsertRepost(ctx, "p1", "joao"))
	require.NoError(t, f.engagement.AddComment(ctx, &models.Comment{
		ID: "c1", PostID: "p1", UserID: "joao", Text: "Confirmo, está tudo escuro",
	}))

	views, err := f.agg.Feed(ctx, "joao", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, "Maria Oliveira", v.Author.DisplayName)
	assert.Equal(t, "Centro", v.Author.Neighborhood)
	assert.Equal(t, 2, v.LikeCount)
	assert.Equal(t, 1, v.CommentCount)
	assert.Equal(t, 1, v.RepostCount)
	assert.True(t, v.ViewerHasLiked)
	assert.True(t, v.ViewerHasReposted)
}

func TestFeedViewerFlagsAnonymous(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addPost(t, "p1", "maria", time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	require.NoError(t, f.engagement.InsertLike(ctx, "p1", "joao"))

	views, err := f.agg.Feed(ctx, "", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].LikeCount)
	assert.False(t, views[0].ViewerHasLiked)
	assert.False(t, views[0].ViewerHasReposted)
}

func TestFeedMissingProfileGetsSentinel(t *testing.T) {
	f := newFixture()
	f.addPost(t, "p1", "ghost", time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))

	views, err := f.agg.Feed(context.Background(), "", time.Time{}, 0)
	require.NoError(t, err, "a missing profile must not fail the feed")
	require.Len(t, views, 1)
	assert.Equal(t, "Usuário", views[0].Author.DisplayName)
	assert.Equal(t, "Local", views[0].Author.Neighborhood)
	assert.Empty(t, views[0].Author.AvatarURL)
}

func TestFeedOrderNewestFirstIDTieBreak(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	f.addPost(t, "b", "maria", base)
	f.addPost(t, "a", "maria", base)
	f.addPost(t, "c", "maria", base.Add(time.Hour))

	views, err := f.agg.Feed(context.Background(), "", time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "c", views[0].ID)
	assert.Equal(t, "a", views[1].ID, "equal timestamps break ties by id")
	assert.Equal(t, "b", views[2].ID)
}

func TestFeedCutoffAndLimit(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	f.addPost(t, "old", "maria", base.Add(-48*time.Hour))
	f.addPost(t, "mid", "maria", base.Add(-time.Hour))
	f.addPost(t, "new", "maria", base)

	views, err := f.agg.Feed(context.Background(), "", base.Add(-24*time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "new", views[0].ID)

	views, err = f.agg.Feed(context.Background(), "", time.Time{}, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "new", views[0].ID)
}

func TestFeedEmpty(t *testing.T) {
	f := newFixture()
	views, err := f.agg.Feed(context.Background(), "", time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestUserPostsScopedToAuthor(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	f.addPost(t, "p1", "maria", base)
	f.addPost(t, "p2", "joao", base.Add(time.Minute))
	f.addPost(t, "p3", "maria", base.Add(2*time.Minute))

	views, err := f.agg.UserPosts(context.Background(), "maria", "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "p3", views[0].ID)
	assert.Equal(t, "p1", views[1].ID)
}

// failingEngagement forces a store failure under the aggregation.
type failingEngagement struct {
	*store.MemoryEngagement
}

func (f *failingEngagement) LikesForPosts(ctx context.Context, postIDs []string) ([]models.Like, error) {
	return nil, fmt.Errorf("fetch likes: %w", apperr.ErrStoreUnavailable)
}

func TestFeedAbortsOnStoreError(t *testing.T) {
	posts := store.NewMemoryPosts()
	engagement := &failingEngagement{MemoryEngagement: store.NewMemoryEngagement()}
	agg := NewAggregator(posts, engagement, store.NewMemoryProfiles())

	require.NoError(t, posts.Create(context.Background(), &models.Post{
		ID: "p1", UserID: "maria", Title: "t", Description: "d",
		Category: models.CategoryLixo, Location: "l",
	}))

	views, err := agg.Feed(context.Background(), "", time.Time{}, 0)
	assert.ErrorIs(t, err, apperr.ErrStoreUnavailable, "no partial feed on store failure")
	assert.Nil(t, views)
}

func TestCommentsWithAuthors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.addPost(t, "p1", "maria", time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	f.profiles.Put(models.Profile{UserID: "joao", DisplayName: "João Santos", Neighborhood: "Vila Nova"})

	first := &models.Comment{ID: "c1", PostID: "p1", UserID: "joao", Text: "Primeiro",
		CreatedAt: time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)}
	second := &models.Comment{ID: "c2", PostID: "p1", UserID: "ghost", Text: "Segundo",
		CreatedAt: time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, f.engagement.AddComment(ctx, first))
	require.NoError(t, f.engagement.AddComment(ctx, second))

	comments, err := f.agg.Comments(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c1", comments[0].ID, "comments come oldest first")
	assert.Equal(t, "João Santos", comments[0].Author.DisplayName)
	assert.Equal(t, "Usuário", comments[1].Author.DisplayName)

	_, err = f.agg.Comments(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
