package routes

import (
	"github.com/gorilla/mux"
	"vozdobairro.com/voz-do-bairro/feed"
	"vozdobairro.com/voz-do-bairro/handlers"
	"vozdobairro.com/voz-do-bairro/interactions"
	"vozdobairro.com/voz-do-bairro/ranking"
	"vozdobairro.com/voz-do-bairro/store"
)

type Deps struct {
	Posts      store.PostRepository
	Engagement store.EngagementStore
	Profiles   store.ProfileDirectory
	Aggregator *feed.Aggregator
	Toggle     *interactions.Toggle
	Ranking    *ranking.Engine
}

func CreatePostRoutes(deps Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/posts", handlers.GetFeed(deps.Aggregator)).Methods("GET")
	router.HandleFunc("/posts", handlers.CreatePost(deps.Posts, deps.Profiles)).Methods("POST")
	router.HandleFunc("/posts/user/{userId}", handlers.GetUserPosts(deps.Aggregator)).Methods("GET")
	router.HandleFunc("/posts/{id}", handlers.DeletePost(deps.Posts, deps.Engagement)).Methods("DELETE")
	router.HandleFunc("/posts/{postId}/like", handlers.ToggleLike(deps.Toggle)).Methods("POST")
	router.HandleFunc("/posts/{postId}/repost", handlers.ToggleRepost(deps.Toggle)).Methods("POST")
	router.HandleFunc("/posts/{postId}/comments", handlers.CreateComment(deps.Toggle)).Methods("POST")
	router.HandleFunc("/posts/{postId}/comments", handlers.GetPostComments(deps.Aggregator)).Methods("GET")

	return router
}

func CreateRankingRoutes(deps Deps, router *mux.Router) *mux.Router {
	router.HandleFunc("/ranking/posts", handlers.GetTopPosts(deps.Ranking)).Methods("GET")
	router.HandleFunc("/ranking/authors", handlers.GetTopAuthors(deps.Ranking)).Methods("GET")
	router.HandleFunc("/profiles/{userId}", handlers.GetProfile(deps.Profiles)).Methods("GET")

	return router
}
