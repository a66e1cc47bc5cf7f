package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"vozdobairro.com/voz-do-bairro/apperr"
	"vozdobairro.com/voz-do-bairro/auth"
	"vozdobairro.com/voz-do-bairro/feed"
	"vozdobairro.com/voz-do-bairro/interactions"
)

// ToggleLike flips the viewer's like on a post and answers with the new
// state and a fresh count.
func ToggleLike(toggle *interactions.Toggle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := auth.ViewerFrom(r)
		if !ok {
			fail(w, "ToggleLike", apperr.ErrAuthRequired)
			return
		}

		result, err := toggle.Like(r.Context(), mux.Vars(r)["postId"], viewer.UserID)
		if err != nil {
			fail(w, "ToggleLike", err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func ToggleRepost(toggle *interactions.Toggle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := auth.ViewerFrom(r)
		if !ok {
			fail(w, "ToggleRepost", apperr.ErrAuthRequired)
			return
		}

		result, err := toggle.Repost(r.Context(), mux.Vars(r)["postId"], viewer.UserID)
		if err != nil {
			fail(w, "ToggleRepost", err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

type createCommentRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

func CreateComment(toggle *interactions.Toggle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := auth.ViewerFrom(r)
		if !ok {
			fail(w, "CreateComment", apperr.ErrAuthRequired)
			return
		}

		var req createCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "Comment text is required (max 500 characters)", http.StatusBadRequest)
			return
		}

		comment, err := toggle.Comment(r.Context(), mux.Vars(r)["postId"], viewer.UserID, req.Text)
		if err != nil {
			fail(w, "CreateComment", err)
			return
		}
		writeJSON(w, http.StatusCreated, comment)
	}
}

func GetPostComments(agg *feed.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := agg.Comments(r.Context(), mux.Vars(r)["postId"])
		if err != nil {
			fail(w, "GetPostComments", err)
			return
		}
		writeJSON(w, http.StatusOK, comments)
	}
}
