package models

// ReflectionPrompt is static reference data surfaced to matched users
// as conversation starters.
type ReflectionPrompt struct {
	PromptID    string `json:"promptId"`
	Category    string `json:"category"`
	Prompt      string `json:"prompt"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty"` // beginner, intermediate, deep
	Active      bool   `json:"active"`
}
