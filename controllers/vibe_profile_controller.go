package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"vibematch_server/models"
	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// VibeProfileController handles requests related to vibe profiles
type VibeProfileController struct {
	ProfileService *services.VibeProfileService
}

// NewVibeProfileController creates a new instance of VibeProfileController
func NewVibeProfileController(profileService *services.VibeProfileService) *VibeProfileController {
	return &VibeProfileController{ProfileService: profileService}
}

// GetProfile handles fetching a vibe profile by user id
func (c *VibeProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpsertProfile handles creating or updating a vibe profile
func (c *VibeProfileController) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.VibeProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return
	}

	saved, err := c.ProfileService.UpsertProfile(r.Context(), profile)
	if err != nil {
		log.Printf("Failed to save profile for %s: %v", profile.UserID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
