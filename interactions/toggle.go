// Package interactions owns every write to the engagement rows: the
// like/repost toggles and comment submission. Nothing else in the service
// mutates those sets.
package interactions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"vozdobairro.com/voz-do-bairro/apperr"
	"vozdobairro.com/voz-do-bairro/models"
	"vozdobairro.com/voz-do-bairro/store"
)

const maxCommentLen = 500

type Kind string

const (
	KindLike   Kind = "like"
	KindRepost Kind = "repost"
)

type Toggle struct {
	posts      store.PostRepository
	engagement store.EngagementStore
	profiles   store.ProfileDirectory
}

func NewToggle(posts store.PostRepository, engagement store.EngagementStore, profiles store.ProfileDirectory) *Toggle {
	return &Toggle{posts: posts, engagement: engagement, profiles: profiles}
}

func (t *Toggle) Like(ctx context.Context, postID, userID string) (models.ToggleResult, error) {
	return t.toggle(ctx, KindLike, postID, userID)
}

func (t *Toggle) Repost(ctx context.Context, postID, userID string) (models.ToggleResult, error) {
	return t.toggle(ctx, KindRepost, postID, userID)
}

// toggle flips the (post, user) membership in the target set. The rule is
// deterministic: delete if a row exists, otherwise insert; an insert that
// loses a race to a concurrent toggle is absorbed as already-active, so
// duplicate rows never survive and the conflict never reaches the caller.
// The returned count is a fresh read taken after the mutation.
func (t *Toggle) toggle(ctx context.Context, kind Kind, postID, userID string) (models.ToggleResult, error) {
	if err := t.authorize(ctx, userID); err != nil {
		return models.ToggleResult{}, err
	}
	if _, err := t.posts.Get(ctx, postID); err != nil {
		return models.ToggleResult{}, err
	}

	var (
		insert func(context.Context, string, string) error
		remove func(context.Context, string, string) (bool, error)
		count  func(context.Context, string) (int, error)
	)
	switch kind {
	case KindLike:
		insert, remove, count = t.engagement.InsertLike, t.engagement.DeleteLike, t.engagement.CountLikes
	case KindRepost:
		insert, remove, count = t.engagement.InsertRepost, t.engagement.DeleteRepost, t.engagement.CountReposts
	default:
		return models.ToggleResult{}, fmt.Errorf("unknown toggle kind %q: %w", kind, apperr.ErrInvalid)
	}

	active := false
	removed, err := remove(ctx, postID, userID)
	if err != nil {
		return models.ToggleResult{}, err
	}
	if !removed {
		switch err := insert(ctx, postID, userID); {
		case err == nil:
			active = true
		case errors.Is(err, apperr.ErrConflict):
			// A concurrent toggle inserted first. The row exists, the
			// caller's intent is satisfied, report already-active.
			active = true
		default:
			return models.ToggleResult{}, err
		}
	}

	n, err := count(ctx, postID)
	if err != nil {
		return models.ToggleResult{}, err
	}
	return models.ToggleResult{Active: active, Count: n}, nil
}

// Comment appends a comment to a post under the same caller checks the
// toggles apply. Comments are append-only; there is no edit or delete path.
func (t *Toggle) Comment(ctx context.Context, postID, userID, text string) (*models.Comment, error) {
	if err := t.authorize(ctx, userID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required: %w", apperr.ErrInvalid)
	}
	if len(text) > maxCommentLen {
		return nil, fmt.Errorf("comment exceeds %d characters: %w", maxCommentLen, apperr.ErrInvalid)
	}
	if _, err := t.posts.Get(ctx, postID); err != nil {
		return nil, err
	}

	c := &models.Comment{
		ID:     uuid.NewString(),
		PostID: postID,
		UserID: userID,
		Text:   text,
	}
	if err := t.engagement.AddComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// authorize rejects anonymous and blocked callers before any store write.
// A caller whose profile row is gone is still a valid session; only an
// explicit blocked flag shuts the door.
func (t *Toggle) authorize(ctx context.Context, userID string) error {
	if userID == "" {
		return apperr.ErrAuthRequired
	}
	p, err := t.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		return err
	}
	if p.IsBlocked {
		return fmt.Errorf("user %s is blocked: %w", userID, apperr.ErrAuthRequired)
	}
	return nil
}
