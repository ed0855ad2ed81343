package routes

import (
	"vibematch_server/controllers"
	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// RegisterVibeProfileRoutes sets up routes for profile operations under /api/vibe-profile
func RegisterVibeProfileRoutes(r *mux.Router, profileService *services.VibeProfileService) {
	controller := controllers.NewVibeProfileController(profileService)

	profileRouter := r.PathPrefix("/api/vibe-profile").Subrouter()

	profileRouter.HandleFunc("", controller.UpsertProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetProfile).Methods("GET")
}
