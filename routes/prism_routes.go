package routes

import (
	"vibematch_server/controllers"
	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// RegisterPrismRoutes sets up routes for the consent unlock under /api/prism-points
func RegisterPrismRoutes(r *mux.Router, prismService *services.PrismService) {
	controller := controllers.NewPrismController(prismService)

	prismRouter := r.PathPrefix("/api/prism-points").Subrouter()

	prismRouter.HandleFunc("/consent", controller.RequestConsent).Methods("POST")
	prismRouter.HandleFunc("/{userId}", controller.GetPrismPoints).Methods("GET")
}
