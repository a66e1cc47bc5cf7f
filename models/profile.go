package models

import "time"

type Profile struct {
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Neighborhood string    `json:"neighborhood"`
	IsBlocked    bool      `json:"is_blocked,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SentinelProfile stands in for an author whose profile no longer resolves,
// so a feed never fails over one bad join.
func SentinelProfile(userID string) Profile {
	return Profile{
		UserID:       userID,
		DisplayName:  "Usuário",
		Neighborhood: "Local",
	}
}

// RankedPost is a PostView with its position in a ranking. It is only
// meaningful for the window and instant it was computed.
type RankedPost struct {
	PostView
	Rank  int `json:"rank"`
	Score int `json:"score"`
}

type RankedAuthor struct {
	Profile
	Rank       int    `json:"rank"`
	TotalLikes int    `json:"total_likes"`
	TotalPosts int    `json:"total_posts"`
	Tier       string `json:"tier"`
}
