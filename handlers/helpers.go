package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"vozdobairro.com/voz-do-bairro/apperr"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// fail logs the real error and answers with the taxonomy's status and a
// stable client message.
func fail(w http.ResponseWriter, op string, err error) {
	log.Printf("%s error: %v", op, err)
	status := apperr.HTTPStatus(err)
	switch status {
	case http.StatusUnauthorized:
		http.Error(w, "Authentication required", status)
	case http.StatusNotFound:
		http.Error(w, "Not found", status)
	case http.StatusBadRequest:
		http.Error(w, "Invalid request", status)
	default:
		http.Error(w, "Service temporarily unavailable", status)
	}
}
