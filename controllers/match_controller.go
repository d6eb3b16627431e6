package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mingle_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles API requests for matches and reconnects
type MatchController struct {
	MatchService     *services.MatchService
	ReconnectService *services.ReconnectService
}

// GetActiveMatchesHandler returns the user's matches whose window is open
func (c *MatchController) GetActiveMatchesHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	matches, err := c.MatchService.GetActiveMatchSummaries(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// GetMatchHandler returns a single match by id
func (c *MatchController) GetMatchHandler(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	match, err := c.MatchService.GetMatch(ctx, matchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, match)
}

// MarkAsMetHandler records that the matched pair met in person
func (c *MatchController) MarkAsMetHandler(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := c.MatchService.MarkAsMet(ctx, matchID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Marked as met"})
}

// RequestReconnectHandler records one side's reconnect consent
func (c *MatchController) RequestReconnectHandler(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "Missing userId field", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	revived, err := c.ReconnectService.RequestReconnect(ctx, matchID, request.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"revived": revived})
}
