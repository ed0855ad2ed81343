package models

// SafetyReport records a user action against a chat message. The
// underlying message is never deleted; resolution happens out of band.
type SafetyReport struct {
	ReportID   string `dynamodbav:"reportId" json:"reportId"`
	ChatID     string `dynamodbav:"chatId" json:"chatId"` // messageId of the reported message
	MatchID    string `dynamodbav:"matchId" json:"matchId"`
	UserID     string `dynamodbav:"userId" json:"userId"`
	ActionType string `dynamodbav:"actionType" json:"actionType"` // report, block, consent-withdraw
	Reason     string `dynamodbav:"reason,omitempty" json:"reason,omitempty"`
	AIFlagged  bool   `dynamodbav:"aiFlagged" json:"aiFlagged"`
	Resolved   bool   `dynamodbav:"resolved" json:"resolved"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// Safety report action types
const (
	ReportActionReport          = "report"
	ReportActionBlock           = "block"
	ReportActionConsentWithdraw = "consent-withdraw"
)
