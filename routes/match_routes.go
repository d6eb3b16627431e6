package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes registers all match-related routes under `/api/matches`
func RegisterMatchRoutes(router *mux.Router, matchService *services.MatchService, reconnectService *services.ReconnectService) {
	controller := &controllers.MatchController{
		MatchService:     matchService,
		ReconnectService: reconnectService,
	}

	matchRouter := router.PathPrefix("/api/matches").Subrouter()

	matchRouter.HandleFunc("", controller.GetActiveMatchesHandler).Methods("GET")
	matchRouter.HandleFunc("/{matchId}", controller.GetMatchHandler).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/met", controller.MarkAsMetHandler).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/reconnect", controller.RequestReconnectHandler).Methods("POST")
}
