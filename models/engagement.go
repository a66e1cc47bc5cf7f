package models

import "time"

// Like marks that one user liked one post. At most one row may exist per
// (post, user) pair; the storage layer enforces that, not the callers.
type Like struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Repost is keyed exactly like a Like but is an independent set.
type Repost struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentWithAuthor struct {
	Comment
	Author Profile `json:"author"`
}

// ToggleResult is what a like/repost toggle reports back: the viewer's new
// membership state and a fresh count of the affected set.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}
