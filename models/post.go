package models

import "time"

// Category is the kind of neighborhood problem a post reports.
// The values are the wire values the app has always sent.
type Category string

const (
	CategoryBuraco     Category = "buraco"
	CategoryIluminacao Category = "iluminacao"
	CategoryLixo       Category = "lixo"
	CategorySaude      Category = "saude"
	CategorySeguranca  Category = "seguranca"
	CategoryTransporte Category = "transporte"
)

var categories = map[Category]bool{
	CategoryBuraco:     true,
	CategoryIluminacao: true,
	CategoryLixo:       true,
	CategorySaude:      true,
	CategorySeguranca:  true,
	CategoryTransporte: true,
}

func (c Category) Valid() bool {
	return categories[c]
}

type Post struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostView is a post joined with its author profile and live engagement
// state for one viewer. It is assembled fresh on every read, never stored.
type PostView struct {
	Post
	Author            Profile `json:"author"`
	LikeCount         int     `json:"like_count"`
	CommentCount      int     `json:"comment_count"`
	RepostCount       int     `json:"repost_count"`
	ViewerHasLiked    bool    `json:"viewer_has_liked"`
	ViewerHasReposted bool    `json:"viewer_has_reposted"`
}
