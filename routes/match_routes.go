package routes

import (
	"vibematch_server/controllers"
	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match operations under /api/vibe-matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	controller := controllers.NewMatchController(matchService)

	matchRouter := r.PathPrefix("/api/vibe-matches").Subrouter()

	matchRouter.HandleFunc("/potential/{userId}", controller.GetPotentialMatches).Methods("GET")
	matchRouter.HandleFunc("/current/{userId}", controller.GetCurrentMatches).Methods("GET")
	matchRouter.HandleFunc("/action", controller.RecordAction).Methods("POST")
	matchRouter.HandleFunc("/unmatch", controller.Unmatch).Methods("POST")
}
