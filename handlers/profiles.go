package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"vozdobairro.com/voz-do-bairro/store"
)

func GetProfile(profiles store.ProfileDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := profiles.Get(r.Context(), mux.Vars(r)["userId"])
		if err != nil {
			fail(w, "GetProfile", err)
			return
		}
		// The blocked flag is admin-facing, not public.
		p.IsBlocked = false
		writeJSON(w, http.StatusOK, p)
	}
}
