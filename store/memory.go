package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"vozdobairro.com/voz-do-bairro/apperr"
	"vozdobairro.com/voz-do-bairro/models"
)

// In-memory stores with the same contracts as the Postgres ones, including
// the uniqueness guarantee on likes and reposts. They back the test suite
// and local development (STORAGE=memory).

type MemoryPosts struct {
	mu    sync.Mutex
	posts map[string]models.Post
}

func NewMemoryPosts() *MemoryPosts {
	return &MemoryPosts{posts: make(map[string]models.Post)}
}

func (s *MemoryPosts) Create(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; ok {
		return fmt.Errorf("create post: %w", apperr.ErrConflict)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.posts[p.ID] = *p
	return nil
}

func (s *MemoryPosts) Get(_ context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("get post: %w", apperr.ErrNotFound)
	}
	return &p, nil
}

func (s *MemoryPosts) ListRecent(_ context.Context, after time.Time, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []models.Post
	for _, p := range s.posts {
		if after.IsZero() || !p.CreatedAt.Before(after) {
			posts = append(posts, p)
		}
	}
	sortNewestFirst(posts)
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *MemoryPosts) ListByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []models.Post
	for _, p := range s.posts {
		if p.UserID == authorID {
			posts = append(posts, p)
		}
	}
	sortNewestFirst(posts)
	return posts, nil
}

func (s *MemoryPosts) ListAll(_ context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sortNewestFirst(posts)
	return posts, nil
}

func (s *MemoryPosts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return fmt.Errorf("delete post: %w", apperr.ErrNotFound)
	}
	delete(s.posts, id)
	return nil
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

type pair struct {
	postID string
	userID string
}

type MemoryEngagement struct {
	mu       sync.Mutex
	likes    map[pair]models.Like
	reposts  map[pair]models.Repost
	comments []models.Comment
}

func NewMemoryEngagement() *MemoryEngagement {
	return &MemoryEngagement{
		likes:   make(map[pair]models.Like),
		reposts: make(map[pair]models.Repost),
	}
}

func (s *MemoryEngagement) LikesForPosts(_ context.Context, postIDs []string) ([]models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := idSet(postIDs)
	var likes []models.Like
	for k, l := range s.likes {
		if wanted[k.postID] {
			likes = append(likes, l)
		}
	}
	return likes, nil
}

func (s *MemoryEngagement) RepostsForPosts(_ context.Context, postIDs []string) ([]models.Repost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := idSet(postIDs)
	var reposts []models.Repost
	for k, r := range s.reposts {
		if wanted[k.postID] {
			reposts = append(reposts, r)
		}
	}
	return reposts, nil
}

func (s *MemoryEngagement) CommentsForPosts(_ context.Context, postIDs []string) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := idSet(postIDs)
	var comments []models.Comment
	for _, c := range s.comments {
		if wanted[c.PostID] {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *MemoryEngagement) InsertLike(_ context.Context, postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{postID, userID}
	if _, ok := s.likes[k]; ok {
		return fmt.Errorf("insert like: %w", apperr.ErrConflict)
	}
	s.likes[k] = models.Like{PostID: postID, UserID: userID, CreatedAt: time.Now().UTC()}
	return nil
}

func (s *MemoryEngagement) DeleteLike(_ context.Context, postID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{postID, userID}
	if _, ok := s.likes[k]; !ok {
		return false, nil
	}
	delete(s.likes, k)
	return true, nil
}

func (s *MemoryEngagement) CountLikes(_ context.Context, postID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.likes {
		if k.postID == postID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryEngagement) InsertRepost(_ context.Context, postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{postID, userID}
	if _, ok := s.reposts[k]; ok {
		return fmt.Errorf("insert repost: %w", apperr.ErrConflict)
	}
	s.reposts[k] = models.Repost{PostID: postID, UserID: userID, CreatedAt: time.Now().UTC()}
	return nil
}

func (s *MemoryEngagement) DeleteRepost(_ context.Context, postID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{postID, userID}
	if _, ok := s.reposts[k]; !ok {
		return false, nil
	}
	delete(s.reposts, k)
	return true, nil
}

func (s *MemoryEngagement) CountReposts(_ context.Context, postID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.reposts {
		if k.postID == postID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryEngagement) AddComment(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.comments = append(s.comments, *c)
	return nil
}

func (s *MemoryEngagement) DeleteForPost(_ context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.likes {
		if k.postID == postID {
			delete(s.likes, k)
		}
	}
	for k := range s.reposts {
		if k.postID == postID {
			delete(s.reposts, k)
		}
	}
	kept := s.comments[:0]
	for _, c := range s.comments {
		if c.PostID != postID {
			kept = append(kept, c)
		}
	}
	s.comments = kept
	return nil
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

type MemoryProfiles struct {
	mu       sync.Mutex
	profiles map[string]models.Profile
}

func NewMemoryProfiles() *MemoryProfiles {
	return &MemoryProfiles{profiles: make(map[string]models.Profile)}
}

// Put seeds or replaces a profile. Profiles are otherwise read-only here;
// signup and admin flows live outside this service.
func (s *MemoryProfiles) Put(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

func (s *MemoryProfiles) Remove(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
}

func (s *MemoryProfiles) Get(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("get profile: %w", apperr.ErrNotFound)
	}
	return &p, nil
}

func (s *MemoryProfiles) GetBatch(_ context.Context, userIDs []string) (map[string]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *MemoryProfiles) All(_ context.Context) ([]models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].UserID < profiles[j].UserID
	})
	return profiles, nil
}
