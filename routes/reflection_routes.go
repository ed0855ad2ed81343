package routes

import (
	"vibematch_server/controllers"
	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// RegisterReflectionRoutes sets up the reflection prompt catalog route
func RegisterReflectionRoutes(r *mux.Router, reflectionService *services.ReflectionService) {
	controller := controllers.NewReflectionController(reflectionService)

	r.HandleFunc("/api/reflection-prompts", controller.GetPrompts).Methods("GET")
}
