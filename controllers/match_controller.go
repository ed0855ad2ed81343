package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// MatchController handles the like/pass lifecycle and candidate surfacing
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new instance of MatchController
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// GetPotentialMatches returns ranked candidate profiles for a user
func (c *MatchController) GetPotentialMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	candidates, err := c.MatchService.GetPotentialMatches(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// GetCurrentMatches returns every match row the user appears in
func (c *MatchController) GetCurrentMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	matches, err := c.MatchService.GetCurrentMatches(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// RecordAction applies a like or pass toward another user
func (c *MatchController) RecordAction(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID      string `json:"userId"`
		MatchUserID string `json:"matchUserId"`
		Action      string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	result, err := c.MatchService.RecordAction(r.Context(), request.UserID, request.MatchUserID, request.Action)
	if err != nil {
		log.Printf("Match action failed (%s -> %s, %s): %v", request.UserID, request.MatchUserID, request.Action, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Unmatch settles a match into the terminal inactive state
func (c *MatchController) Unmatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := c.MatchService.DeactivateMatch(r.Context(), request.MatchID, request.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "inactive", "matchId": request.MatchID})
}
