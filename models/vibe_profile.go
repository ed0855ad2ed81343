package models

// VibeProfile defines a user's self-declared matching profile
type VibeProfile struct {
	UserID            string   `dynamodbav:"userId" json:"userId"`
	Bio               string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Location          string   `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Interests         []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	VibeWords         []string `dynamodbav:"vibeWords,omitempty" json:"vibeWords,omitempty"`
	SeekingConnection string   `dynamodbav:"seekingConnection,omitempty" json:"seekingConnection,omitempty"`
	AgeRange          string   `dynamodbav:"ageRange,omitempty" json:"ageRange,omitempty"` // bucket label, e.g. "25-35"
	ProfileComplete   bool     `dynamodbav:"profileComplete" json:"profileComplete"`
	Visible           bool     `dynamodbav:"visible" json:"visible"`
	ContactShare      string   `dynamodbav:"contactShare,omitempty" json:"contactShare,omitempty"` // revealed only at Prism Point unlock
	LastActiveAt      string   `dynamodbav:"lastActiveAt,omitempty" json:"lastActiveAt,omitempty"`
}

// Eligible reports whether the profile may be surfaced as a match candidate.
func (p *VibeProfile) Eligible() bool {
	return p.ProfileComplete && p.Visible
}
