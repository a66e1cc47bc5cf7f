// Package feed assembles posts, engagement sets, and author profiles into
// the PostView read model the rest of the service consumes.
package feed

import (
	"context"
	"time"

	"vozdobairro.com/voz-do-bairro/models"
	"vozdobairro.com/voz-do-bairro/store"
)

type Aggregator struct {
	posts      store.PostRepository
	engagement store.EngagementStore
	profiles   store.ProfileDirectory
}

func NewAggregator(posts store.PostRepository, engagement store.EngagementStore, profiles store.ProfileDirectory) *Aggregator {
	return &Aggregator{posts: posts, engagement: engagement, profiles: profiles}
}

// Feed returns the newest posts first, id ascending between equal
// timestamps. A zero cutoff means the whole history; viewerID may be empty
// for anonymous readers.
func (a *Aggregator) Feed(ctx context.Context, viewerID string, after time.Time, limit int) ([]models.PostView, error) {
	posts, err := a.posts.ListRecent(ctx, after, limit)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts, viewerID)
}

// UserPosts returns everything one author posted, newest first.
func (a *Aggregator) UserPosts(ctx context.Context, authorID, viewerID string) ([]models.PostView, error) {
	posts, err := a.posts.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts, viewerID)
}

// Since is the ranking engine's feed: every post created at or after the
// cutoff, fully aggregated, with no viewer and no truncation.
func (a *Aggregator) Since(ctx context.Context, after time.Time) ([]models.PostView, error) {
	posts, err := a.posts.ListRecent(ctx, after, 0)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts, "")
}

// All aggregates the entire post history, used for lifetime author scores.
func (a *Aggregator) All(ctx context.Context) ([]models.PostView, error) {
	posts, err := a.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return a.assemble(ctx, posts, "")
}

// Comments returns one post's comments oldest first, each with its author
// profile resolved (sentinel when the profile is gone).
func (a *Aggregator) Comments(ctx context.Context, postID string) ([]models.CommentWithAuthor, error) {
	if _, err := a.posts.Get(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := a.engagement.CommentsForPosts(ctx, []string{postID})
	if err != nil {
		return nil, err
	}

	authorSet := make(map[string]bool, len(comments))
	var authorIDs []string
	for _, c := range comments {
		if !authorSet[c.UserID] {
			authorSet[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}
	profiles, err := a.profiles.GetBatch(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		author, ok := profiles[c.UserID]
		if !ok {
			author = models.SentinelProfile(c.UserID)
		}
		out = append(out, models.CommentWithAuthor{Comment: c, Author: author})
	}
	return out, nil
}

// assemble issues one batched lookup per collaborator for the whole post
// set, then merges in a single pass. The number of store round-trips does
// not grow with the feed size. Any store error aborts the whole call; a
// missing author profile does not, it maps to the sentinel profile.
func (a *Aggregator) assemble(ctx context.Context, posts []models.Post, viewerID string) ([]models.PostView, error) {
	if len(posts) == 0 {
		return []models.PostView{}, nil
	}

	postIDs := make([]string, 0, len(posts))
	authorSet := make(map[string]bool, len(posts))
	var authorIDs []string
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if !authorSet[p.UserID] {
			authorSet[p.UserID] = true
			authorIDs = append(authorIDs, p.UserID)
		}
	}

	profiles, err := a.profiles.GetBatch(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	likes, err := a.engagement.LikesForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := a.engagement.CommentsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	reposts, err := a.engagement.RepostsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	likeCount := make(map[string]int, len(posts))
	likedByViewer := make(map[string]bool)
	for _, l := range likes {
		likeCount[l.PostID]++
		if viewerID != "" && l.UserID == viewerID {
			likedByViewer[l.PostID] = true
		}
	}
	commentCount := make(map[string]int, len(posts))
	for _, c := range comments {
		commentCount[c.PostID]++
	}
	repostCount := make(map[string]int, len(posts))
	repostedByViewer := make(map[string]bool)
	for _, r := range reposts {
		repostCount[r.PostID]++
		if viewerID != "" && r.UserID == viewerID {
			repostedByViewer[r.PostID] = true
		}
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		author, ok := profiles[p.UserID]
		if !ok {
			author = models.SentinelProfile(p.UserID)
		}
		views = append(views, models.PostView{
			Post:              p,
			Author:            author,
			LikeCount:         likeCount[p.ID],
			CommentCount:      commentCount[p.ID],
			RepostCount:       repostCount[p.ID],
			ViewerHasLiked:    likedByViewer[p.ID],
			ViewerHasReposted: repostedByViewer[p.ID],
		})
	}
	return views, nil
}
