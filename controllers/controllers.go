package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"mingle_server/services"
)

// WelcomeHandler handles the root route
func WelcomeHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "Welcome to Mingle")
}

// HealthCheckHandler reports service health
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError maps engine errors onto HTTP statuses. Quota and
// check-in failures carry an actionable message; storage failures get a
// generic retry message so backend detail never leaks to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotCheckedIn):
		http.Error(w, "You need to check in at this venue before liking anyone", http.StatusForbidden)
	case errors.Is(err, services.ErrQuotaExceeded):
		http.Error(w, "You have used all your likes at this venue, check in again to get more", http.StatusForbidden)
	case errors.Is(err, services.ErrUnauthorized):
		http.Error(w, "You are not part of this match", http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, services.ErrStorageUnavailable):
		log.Printf("❌ Storage failure: %v", err)
		http.Error(w, "Something went wrong, please try again", http.StatusServiceUnavailable)
	default:
		log.Printf("❌ Unexpected error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
