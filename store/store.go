// Package store holds the three leaf stores behind the feed, toggle, and
// ranking components: posts, engagement rows, and profiles. The Postgres
// implementations are the production backend; the in-memory ones back tests
// and local development without a database.
package store

import (
	"context"
	"time"

	"vozdobairro.com/voz-do-bairro/models"
)

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	Get(ctx context.Context, id string) (*models.Post, error)

	// ListRecent returns posts created at or after the cutoff, newest
	// first, id ascending between equal timestamps. A zero cutoff means
	// no lower bound; limit <= 0 means no truncation.
	ListRecent(ctx context.Context, after time.Time, limit int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)

	// Delete removes the post row only. Cascading the engagement rows is
	// the caller's explicit job via EngagementStore.DeleteForPost.
	Delete(ctx context.Context, id string) error
}

type EngagementStore interface {
	// Batched reads, one call for an entire post-id set.
	LikesForPosts(ctx context.Context, postIDs []string) ([]models.Like, error)
	RepostsForPosts(ctx context.Context, postIDs []string) ([]models.Repost, error)
	CommentsForPosts(ctx context.Context, postIDs []string) ([]models.Comment, error)

	// InsertLike returns apperr.ErrConflict when the (post, user) row
	// already exists; the uniqueness constraint, not the caller, decides.
	InsertLike(ctx context.Context, postID, userID string) error
	DeleteLike(ctx context.Context, postID, userID string) (bool, error)
	CountLikes(ctx context.Context, postID string) (int, error)

	InsertRepost(ctx context.Context, postID, userID string) error
	DeleteRepost(ctx context.Context, postID, userID string) (bool, error)
	CountReposts(ctx context.Context, postID string) (int, error)

	AddComment(ctx context.Context, c *models.Comment) error

	// DeleteForPost removes every like, repost, and comment of one post.
	DeleteForPost(ctx context.Context, postID string) error
}

type ProfileDirectory interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	GetBatch(ctx context.Context, userIDs []string) (map[string]models.Profile, error)
	All(ctx context.Context) ([]models.Profile, error)
}
