package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterInterestRoutes registers all like-related routes under `/api/likes`
func RegisterInterestRoutes(router *mux.Router, interestService *services.InterestService) {
	controller := &controllers.InterestController{InterestService: interestService}

	likeRouter := router.PathPrefix("/api/likes").Subrouter()

	likeRouter.HandleFunc("", controller.RecordLikeHandler).Methods("POST")
	likeRouter.HandleFunc("", controller.UndoLikeHandler).Methods("DELETE")
	likeRouter.HandleFunc("/mutual", controller.IsMutualHandler).Methods("GET")
	likeRouter.HandleFunc("/quota", controller.RemainingLikesHandler).Methods("GET")
	likeRouter.HandleFunc("/admirers", controller.AdmirersHandler).Methods("GET")
}
