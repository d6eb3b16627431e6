package routes

import (
	"mingle_server/controllers"
	"mingle_server/services"

	"github.com/gorilla/mux"
)

// RegisterDemoRoutes registers demo setup routes under `/api/demo`
func RegisterDemoRoutes(router *mux.Router, demoService *services.DemoService) {
	controller := &controllers.DemoController{DemoService: demoService}

	demoRouter := router.PathPrefix("/api/demo").Subrouter()

	demoRouter.HandleFunc("/seed", controller.SeedHandler).Methods("POST")
}
