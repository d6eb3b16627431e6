package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes registers all chat-related routes under `/api/chats`
func RegisterChatRoutes(router *mux.Router, chatService *services.ChatService) {
	controller := &controllers.ChatController{ChatService: chatService}

	chatRouter := router.PathPrefix("/api/chats").Subrouter()

	chatRouter.HandleFunc("/{matchId}/ensure", controller.EnsureThreadHandler).Methods("POST")
	chatRouter.HandleFunc("/{matchId}/messages", controller.GetMessagesHandler).Methods("GET")
	chatRouter.HandleFunc("/{matchId}/messages", controller.AppendMessageHandler).Methods("POST")
}
