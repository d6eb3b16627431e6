package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"mingle_server/services"

	"github.com/gorilla/mux"
)

// ChatController handles API requests for chat threads and messages
type ChatController struct {
	ChatService *services.ChatService
}

// EnsureThreadHandler guarantees a chat thread exists for the match
func (c *ChatController) EnsureThreadHandler(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var request struct {
		VenueName string `json:"venueName"`
	}
	// An empty body is fine; the venue name is optional.
	json.NewDecoder(r.Body).Decode(&request)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	thread, err := c.ChatService.EnsureThread(ctx, matchID, request.VenueName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}

// GetMessagesHandler fetches the latest messages for a match
func (c *ChatController) GetMessagesHandler(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	messages, err := c.ChatService.GetMessages(ctx, matchID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// AppendMessageHandler stores a new message on the match's thread
func (c *ChatController) AppendMessageHandler(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	var request struct {
		SenderID string `json:"senderId"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.SenderID == "" || request.Content == "" {
		http.Error(w, "Missing senderId or content", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	message, err := c.ChatService.AppendMessage(ctx, matchID, request.SenderID, request.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, message)
}
