package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterCheckInRoutes registers all check-in routes under `/api/checkins`
func RegisterCheckInRoutes(router *mux.Router, checkInService *services.CheckInService) {
	controller := &controllers.CheckInController{CheckInService: checkInService}

	checkInRouter := router.PathPrefix("/api/checkins").Subrouter()

	checkInRouter.HandleFunc("", controller.CheckInHandler).Methods("POST")
	checkInRouter.HandleFunc("", controller.CheckOutHandler).Methods("DELETE")
	checkInRouter.HandleFunc("", controller.CheckInStatusHandler).Methods("GET")
}
