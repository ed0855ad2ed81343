package models

// Match is one row per unordered user pair. The matchId is the canonical
// pair key (sorted ids joined with "#"), so both orientations resolve to
// the same row and a conditional put is enough to guarantee uniqueness.
type Match struct {
	MatchID         string `dynamodbav:"matchId" json:"matchId"`
	UserID1         string `dynamodbav:"userId1" json:"userId1"` // lexicographically lower id
	UserID2         string `dynamodbav:"userId2" json:"userId2"`
	MatchScore      int    `dynamodbav:"matchScore" json:"matchScore"`
	User1Action     string `dynamodbav:"user1Action" json:"user1Action"` // like, pass, or unset
	User2Action     string `dynamodbav:"user2Action" json:"user2Action"`
	Status          string `dynamodbav:"matchStatus" json:"status"` // pending, active, inactive
	ResonanceCount  int    `dynamodbav:"resonanceCount" json:"resonanceCount"`
	CreatedAt       string `dynamodbav:"createdAt" json:"createdAt"`
	LastInteraction string `dynamodbav:"lastInteraction" json:"lastInteraction"`
}

// Partner returns the other participant's id, or "" if userID is not a participant.
func (m *Match) Partner(userID string) string {
	switch userID {
	case m.UserID1:
		return m.UserID2
	case m.UserID2:
		return m.UserID1
	}
	return ""
}

// HasParticipant reports whether userID is one of the two matched users.
func (m *Match) HasParticipant(userID string) bool {
	return userID == m.UserID1 || userID == m.UserID2
}

// ActionOf returns the recorded action for userID.
func (m *Match) ActionOf(userID string) string {
	if userID == m.UserID1 {
		return m.User1Action
	}
	if userID == m.UserID2 {
		return m.User2Action
	}
	return ActionUnset
}
