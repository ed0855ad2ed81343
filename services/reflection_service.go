package services

import (
	"math/rand"

	"vibematch_server/models"
)

// ReflectionService serves the static prompt catalog. Prompts are
// reference data and are not mutated by user flows.
type ReflectionService struct{}

var reflectionCatalog = []models.ReflectionPrompt{
	{PromptID: "rp-001", Category: "values", Prompt: "What does a meaningful connection look like to you right now?", Difficulty: "beginner", Active: true},
	{PromptID: "rp-002", Category: "values", Prompt: "Which of your values has been tested most this year?", Difficulty: "intermediate", Active: true},
	{PromptID: "rp-003", Category: "growth", Prompt: "What habit are you proudest of building?", Difficulty: "beginner", Active: true},
	{PromptID: "rp-004", Category: "growth", Prompt: "Describe a belief you held strongly five years ago that you've since let go.", Difficulty: "deep", Active: true},
	{PromptID: "rp-005", Category: "presence", Prompt: "When did you last feel completely at ease? What was around you?", Difficulty: "beginner", Active: true},
	{PromptID: "rp-006", Category: "presence", Prompt: "What does your mind return to when it wanders?", Difficulty: "intermediate", Active: true},
	{PromptID: "rp-007", Category: "connection", Prompt: "What do you wish people asked you about more often?", Difficulty: "beginner", Active: true},
	{PromptID: "rp-008", Category: "connection", Prompt: "Share a moment when a stranger's kindness changed your day.", Difficulty: "intermediate", Active: true},
	{PromptID: "rp-009", Category: "connection", Prompt: "What part of yourself do you find hardest to share?", Difficulty: "deep", Active: true},
	{PromptID: "rp-010", Category: "gratitude", Prompt: "Name three small things you're grateful for today.", Difficulty: "beginner", Active: true},
	{PromptID: "rp-011", Category: "gratitude", Prompt: "Who shaped you in a way they probably never knew?", Difficulty: "deep", Active: true},
	{PromptID: "rp-012", Category: "dreams", Prompt: "If the next year went exactly as you hoped, what would be different?", Difficulty: "intermediate", Active: true},
}

// GetRandomPrompts returns up to max active prompts in random order.
func (rs *ReflectionService) GetRandomPrompts(max int) []models.ReflectionPrompt {
	if max <= 0 || max > models.MaxReflectionPrompts {
		max = models.MaxReflectionPrompts
	}

	active := make([]models.ReflectionPrompt, 0, len(reflectionCatalog))
	for _, p := range reflectionCatalog {
		if p.Active {
			active = append(active, p)
		}
	}

	rand.Shuffle(len(active), func(i, j int) {
		active[i], active[j] = active[j], active[i]
	})
	if len(active) > max {
		active = active[:max]
	}
	return active
}
