package models

// PrismPoint is the mutual-consent gate that reveals real contact info
// between two matched, anonymous users. One row per match, created when
// the match's resonance count reaches the threshold.
type PrismPoint struct {
	MatchID      string `dynamodbav:"matchId" json:"matchId"`
	UserID1      string `dynamodbav:"userId1" json:"userId1"`
	UserID2      string `dynamodbav:"userId2" json:"userId2"`
	User1Consent bool   `dynamodbav:"user1Consent" json:"user1Consent"`
	User2Consent bool   `dynamodbav:"user2Consent" json:"user2Consent"`
	Unlocked     bool   `dynamodbav:"unlocked" json:"unlocked"`
	SharedInfo   string `dynamodbav:"sharedInfo,omitempty" json:"sharedInfo,omitempty"` // populated only after unlock
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
	UnlockedAt   string `dynamodbav:"unlockedAt,omitempty" json:"unlockedAt,omitempty"`
}

// ConsentOf returns the consent flag recorded for userID.
func (p *PrismPoint) ConsentOf(userID string) bool {
	if userID == p.UserID1 {
		return p.User1Consent
	}
	if userID == p.UserID2 {
		return p.User2Consent
	}
	return false
}
