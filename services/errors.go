package services

import "errors"

// Sentinel errors let controllers map service failures onto HTTP status
// codes without string matching.
var (
	// ErrValidation covers malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers unknown profiles, matches, messages, or prism points.
	ErrNotFound = errors.New("not found")

	// ErrProfileIncomplete is returned when a match action targets a user
	// without a complete profile.
	ErrProfileIncomplete = errors.New("profile incomplete")

	// ErrNotEligible is returned when consent is requested before the
	// match's resonance count reaches the threshold.
	ErrNotEligible = errors.New("not yet eligible")

	// ErrMatchNotActive is returned for chat or resonance operations on a
	// match that is not in the active state.
	ErrMatchNotActive = errors.New("match not active")

	// ErrNotParticipant is returned when the acting user is not one of the
	// match's two participants.
	ErrNotParticipant = errors.New("user is not a participant of this match")
)
