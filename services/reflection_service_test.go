package services

import (
	"testing"

	"vibematch_server/models"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomPromptsCap(t *testing.T) {
	rs := &ReflectionService{}

	prompts := rs.GetRandomPrompts(0)
	assert.LessOrEqual(t, len(prompts), models.MaxReflectionPrompts)

	prompts = rs.GetRandomPrompts(100)
	assert.LessOrEqual(t, len(prompts), models.MaxReflectionPrompts)

	prompts = rs.GetRandomPrompts(3)
	assert.Len(t, prompts, 3)
}

func TestGetRandomPromptsOnlyActive(t *testing.T) {
	rs := &ReflectionService{}
	for _, p := range rs.GetRandomPrompts(models.MaxReflectionPrompts) {
		assert.True(t, p.Active)
		assert.NotEmpty(t, p.Prompt)
		assert.Contains(t, []string{"beginner", "intermediate", "deep"}, p.Difficulty)
	}
}
