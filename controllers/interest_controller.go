package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mingle_server/services"
)

// InterestController handles API requests for likes and quotas
type InterestController struct {
	InterestService *services.InterestService
}

// RecordLikeHandler processes a like from one checked-in user to another
func (c *InterestController) RecordLikeHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID string `json:"fromUserId"`
		ToUserID   string `json:"toUserId"`
		VenueID    string `json:"venueId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Println("❌ Invalid request payload:", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if request.FromUserID == "" || request.ToUserID == "" || request.VenueID == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if request.FromUserID == request.ToUserID {
		http.Error(w, "You cannot like yourself", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := c.InterestService.RecordLike(ctx, request.FromUserID, request.ToUserID, request.VenueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UndoLikeHandler deactivates a previously recorded like
func (c *InterestController) UndoLikeHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID string `json:"fromUserId"`
		ToUserID   string `json:"toUserId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FromUserID == "" || request.ToUserID == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := c.InterestService.UndoLike(ctx, request.FromUserID, request.ToUserID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Like removed"})
}

// IsMutualHandler reports whether two users have liked each other
func (c *InterestController) IsMutualHandler(w http.ResponseWriter, r *http.Request) {
	userA := r.URL.Query().Get("userA")
	userB := r.URL.Query().Get("userB")
	if userA == "" || userB == "" {
		http.Error(w, "Missing userA or userB parameter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	mutual, err := c.InterestService.IsMutual(ctx, userA, userB)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"mutual": mutual})
}

// AdmirersHandler returns how many users currently like the given user
func (c *InterestController) AdmirersHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "Missing userId parameter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := c.InterestService.AdmirerCount(ctx, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"admirers": count})
}

// RemainingLikesHandler returns the user's remaining like quota at a venue
func (c *InterestController) RemainingLikesHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	venueID := r.URL.Query().Get("venueId")
	if userID == "" || venueID == "" {
		http.Error(w, "Missing userId or venueId parameter", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	remaining, err := c.InterestService.RemainingLikes(ctx, userID, venueID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"remainingLikes": remaining})
}
