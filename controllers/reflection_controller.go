package controllers

import (
	"net/http"
	"strconv"

	"vibematch_server/services"
)

// ReflectionController serves the static reflection prompt catalog
type ReflectionController struct {
	ReflectionService *services.ReflectionService
}

// NewReflectionController creates a new instance of ReflectionController
func NewReflectionController(reflectionService *services.ReflectionService) *ReflectionController {
	return &ReflectionController{ReflectionService: reflectionService}
}

// GetPrompts returns a random subset of active prompts, capped at 8
func (c *ReflectionController) GetPrompts(w http.ResponseWriter, r *http.Request) {
	max, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		max = 0 // service applies the default cap
	}
	writeJSON(w, http.StatusOK, c.ReflectionService.GetRandomPrompts(max))
}
