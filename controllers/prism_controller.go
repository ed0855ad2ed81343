package controllers

import (
	"encoding/json"
	"net/http"

	"vibematch_server/services"

	"github.com/gorilla/mux"
)

// PrismController handles the consent-unlock flow
type PrismController struct {
	PrismService *services.PrismService
}

// NewPrismController creates a new instance of PrismController
func NewPrismController(prismService *services.PrismService) *PrismController {
	return &PrismController{PrismService: prismService}
}

// GetPrismPoints returns the prism points across all of a user's matches
func (c *PrismController) GetPrismPoints(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	points, err := c.PrismService.GetPrismPointsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// RequestConsent records one participant's consent to the contact exchange
func (c *PrismController) RequestConsent(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	point, err := c.PrismService.RequestConsent(r.Context(), request.MatchID, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, point)
}
