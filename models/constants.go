package models

// DynamoDB table names
const (
	VibeProfilesTable  = "VibeProfiles"
	VibeMatchesTable   = "VibeMatches"
	MatchChatTable     = "MatchChat"
	SafetyReportsTable = "SafetyReports"
	PrismPointsTable   = "PrismPoints"
)

// GSI names
const (
	UserId1Index   = "userId1-index"   // VibeMatches by first participant
	UserId2Index   = "userId2-index"   // VibeMatches by second participant
	MessageIdIndex = "messageId-index" // MatchChat by message id
)

// Match status values
const (
	MatchStatusPending  = "pending"
	MatchStatusActive   = "active"
	MatchStatusInactive = "inactive"
)

// Match action values
const (
	ActionLike  = "like"
	ActionPass  = "pass"
	ActionUnset = ""
)

// Message types
const (
	MessageTypeText       = "text"
	MessageTypeReflection = "reflection_prompt"
)

// Seeking-connection values accepted on a vibe profile
var SeekingTypes = []string{
	"friendship",
	"growth_partner",
	"mentor",
	"mentee",
	"spiritual_companion",
	"accountability_buddy",
}

// ResonanceThreshold is the resonance count at which a match becomes
// eligible for a Prism Point.
const ResonanceThreshold = 3

// ModerationHideThreshold hides a message when its AI safety score
// falls below this value. Applied uniformly at every call site.
const ModerationHideThreshold = 40

// MinResonanceLength is the minimum message length (in runes) for a
// message to count toward resonance.
const MinResonanceLength = 20

// MaxMessageLength caps chat message size at the HTTP boundary.
const MaxMessageLength = 1000

// MaxReflectionPrompts caps the number of prompts returned per request.
const MaxReflectionPrompts = 8
