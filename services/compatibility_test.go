package services

import (
	"fmt"
	"testing"

	"vibematch_server/models"

	"github.com/stretchr/testify/assert"
)

func TestCompatibilityScoreBaseline(t *testing.T) {
	a := &models.VibeProfile{UserID: "a", Interests: []string{"pottery"}, SeekingConnection: "mentor"}
	b := &models.VibeProfile{UserID: "b", Interests: []string{"surfing"}, SeekingConnection: "mentee"}

	assert.Equal(t, baselineScore, CompatibilityScore(a, b))
}

func TestCompatibilityScoreSharedAttributes(t *testing.T) {
	a := &models.VibeProfile{
		UserID:            "a",
		Interests:         []string{"yoga", "meditation"},
		VibeWords:         []string{"calm"},
		SeekingConnection: "growth_partner",
	}
	b := &models.VibeProfile{
		UserID:            "b",
		Interests:         []string{"yoga", "hiking"},
		VibeWords:         []string{"calm", "curious"},
		SeekingConnection: "growth_partner",
	}

	// baseline + seeking bonus + one interest + one vibe word
	want := baselineScore + seekingTypeBonus + interestBonus + vibeWordBonus
	assert.Equal(t, want, CompatibilityScore(a, b))
	assert.Equal(t, []string{"yoga"}, SharedInterests(a, b))
}

func TestCompatibilityScoreCappedAt100(t *testing.T) {
	var interests []string
	for i := 0; i < 20; i++ {
		interests = append(interests, fmt.Sprintf("interest-%d", i))
	}
	a := &models.VibeProfile{UserID: "a", Interests: interests, SeekingConnection: "friendship"}
	b := &models.VibeProfile{UserID: "b", Interests: interests, SeekingConnection: "friendship"}

	assert.Equal(t, maxScore, CompatibilityScore(a, b))
}

func TestCompatibilityScoreBounded(t *testing.T) {
	profiles := []*models.VibeProfile{
		{UserID: "empty"},
		{UserID: "full", Interests: []string{"a", "b", "c"}, VibeWords: []string{"x", "y"}, SeekingConnection: "mentor"},
	}
	for _, a := range profiles {
		for _, b := range profiles {
			score := CompatibilityScore(a, b)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestSharedInterestsCountsDuplicatesOnce(t *testing.T) {
	a := &models.VibeProfile{Interests: []string{"yoga", "yoga"}}
	b := &models.VibeProfile{Interests: []string{"yoga"}}
	assert.Equal(t, []string{"yoga"}, SharedInterests(a, b))
}
