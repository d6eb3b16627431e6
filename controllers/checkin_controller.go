package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mingle_server/services"
)

// CheckInController handles API requests for venue check-ins
type CheckInController struct {
	CheckInService *services.CheckInService
}

// CheckInHandler marks a user present at a venue
func (c *CheckInController) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		VenueID string `json:"venueId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.VenueID == "" {
		http.Error(w, "Missing userId or venueId", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := c.CheckInService.CheckIn(ctx, request.UserID, request.VenueID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Checked in"})
}

// CheckOutHandler marks a user as having left a venue
func (c *CheckInController) CheckOutHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string `json:"userId"`
		VenueID string `json:"venueId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" || request.VenueID == "" {
		http.Error(w, "Missing userId or venueId", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := c.CheckInService.CheckOut(ctx, request.UserID, request.VenueID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Checked out"})
}

// CheckInStatusHandler reports whether a user is checked in at a venue
func (c *CheckInController) CheckInStatusHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	venueID := r.URL.Query().Get("venueId")
	if userID == "" || venueID == "" {
		http.Error(w, "Missing userId or venueId parameter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checkedIn, err := c.CheckInService.IsCheckedIn(ctx, userID, venueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"checkedIn": checkedIn})
}
