package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"vozdobairro.com/voz-do-bairro/apperr"
	"vozdobairro.com/voz-do-bairro/auth"
	"vozdobairro.com/voz-do-bairro/feed"
	"vozdobairro.com/voz-do-bairro/models"
	"vozdobairro.com/voz-do-bairro/store"
)

const defaultFeedLimit = 20

// GetFeed serves the main feed: newest posts first, enriched with counts
// and the viewer's own like/repost flags. Anonymous viewers get the same
// feed with both flags false.
func GetFeed(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var viewerID string
		if viewer, ok := auth.ViewerFrom(r); ok {
			viewerID = viewer.UserID
		}

		var after time.Time
		if raw := r.URL.Query().Get("after"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "Invalid after timestamp", http.StatusBadRequest)
				return
			}
			after = t
		}

		limit := defaultFeedLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		views, err := agg.Feed(r.Context(), viewerID, after, limit)
		if err != nil {
			fail(w, "GetFeed", err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

// GetUserPosts serves one author's posts, newest first.
func GetUserPosts(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID := mux.Vars(r)["userId"]
		if authorID == "" {
			http.Error(w, "userId parameter missing", http.StatusBadRequest)
			return
		}

		var viewerID string
		if viewer, ok := auth.ViewerFrom(r); ok {
			viewerID = viewer.UserID
		}

		views, err := agg.UserPosts(r.Context(), authorID, viewerID)
		if err != nil {
			fail(w, "GetUserPosts", err)
			return
		}
		writeJSON(w, http.StatusOK, views)
	}
}

type createPostRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
	Category    string `json:"category" validate:"required"`
	Location    string `json:"location" validate:"required,max=200"`
	ImageURL    string `json:"image_url" validate:"omitempty,max=500"`
}

func CreatePost(posts store.PostRepository, profiles store.ProfileDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := auth.ViewerFrom(r)
		if !ok {
			fail(w, "CreatePost", apperr.ErrAuthRequired)
			return
		}
		if err := rejectBlocked(r, profiles, viewer.UserID); err != nil {
			fail(w, "CreatePost", err)
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
			return
		}
		category := models.Category(req.Category)
		if !category.Valid() {
			http.Error(w, "Invalid category", http.StatusBadRequest)
			return
		}

		p := &models.Post{
			ID:          uuid.NewString(),
			UserID:      viewer.UserID,
			Title:       req.Title,
			Description: req.Description,
			Category:    category,
			Location:    req.Location,
			ImageURL:    req.ImageURL,
		}
		if err := posts.Create(r.Context(), p); err != nil {
			fail(w, "CreatePost", err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

// DeletePost removes a post and, explicitly, every engagement row attached
// to it. Only the author or an admin may delete.
func DeletePost(posts store.PostRepository, engagement store.EngagementStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := auth.ViewerFrom(r)
		if !ok {
			fail(w, "DeletePost", apperr.ErrAuthRequired)
			return
		}

		postID := mux.Vars(r)["id"]
		p, err := posts.Get(r.Context(), postID)
		if err != nil {
			fail(w, "DeletePost", err)
			return
		}
		if p.UserID != viewer.UserID && !viewer.IsAdmin() {
			http.Error(w, "Only the author or an admin can delete a post", http.StatusForbidden)
			return
		}

		if err := engagement.DeleteForPost(r.Context(), postID); err != nil {
			fail(w, "DeletePost cascade", err)
			return
		}
		if err := posts.Delete(r.Context(), postID); err != nil {
			fail(w, "DeletePost", err)
			return
		}

		log.Printf("Post %s deleted by %s", postID, viewer.UserID)
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Post deleted successfully",
		})
	}
}

// rejectBlocked mirrors the toggle path's caller check for post creation.
func rejectBlocked(r *http.Request, profiles store.ProfileDirectory, userID string) error {
	p, err := profiles.Get(r.Context(), userID)
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
