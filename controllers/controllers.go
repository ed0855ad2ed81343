package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"vibematch_server/services"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps a service error onto an HTTP status and a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrProfileIncomplete):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotEligible), errors.Is(err, services.ErrMatchNotActive):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNotParticipant):
		status = http.StatusForbidden
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
