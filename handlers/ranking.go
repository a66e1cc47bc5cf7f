package handlers

import (
	"net/http"
	"strconv"

	"vozdobairro.com/voz-do-bairro/ranking"
)

// GetTopPosts serves the windowed report ranking. window_days and limit
// fall back to the configured defaults when absent.
func GetTopPosts(engine *ranking.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		windowDays, ok := queryInt(r, "window_days")
		if !ok {
			http.Error(w, "Invalid window_days", http.StatusBadRequest)
			return
		}
		limit, ok := queryInt(r, "limit")
		if !ok {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		ranked, err := engine.TopPosts(r.Context(), windowDays, limit)
		if err != nil {
			fail(w, "GetTopPosts", err)
			return
		}
		writeJSON(w, http.StatusOK, ranked)
	}
}

func GetTopAuthors(engine *ranking.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := queryInt(r, "limit")
		if !ok {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}

		ranked, err := engine.TopAuthors(r.Context(), limit)
		if err != nil {
			fail(w, "GetTopAuthors", err)
			return
		}
		writeJSON(w, http.StatusOK, ranked)
	}
}

// queryInt reads an optional positive integer parameter; 0 means absent.
func queryInt(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
