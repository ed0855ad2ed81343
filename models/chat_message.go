package models

// ChatMessage is an append-only entry in a match's moderated chat log.
// Table key: matchId (partition) + createdAt (sort); messageId is a uuid
// attribute used for safety reports.
type ChatMessage struct {
	MatchID               string   `dynamodbav:"matchId" json:"matchId"`
	CreatedAt             string   `dynamodbav:"createdAt" json:"createdAt"`
	MessageID             string   `dynamodbav:"messageId" json:"messageId"`
	SenderID              string   `dynamodbav:"senderId" json:"senderId"`
	ReceiverID            string   `dynamodbav:"receiverId" json:"receiverId"`
	Message               string   `dynamodbav:"message" json:"message"`
	MessageType           string   `dynamodbav:"messageType" json:"messageType"` // text or reflection_prompt
	IsReflectionResponse  bool     `dynamodbav:"isReflectionResponse" json:"isReflectionResponse"`
	ReflectionPromptID    string   `dynamodbav:"reflectionPromptId,omitempty" json:"reflectionPromptId,omitempty"`
	AIModerationScore     int      `dynamodbav:"aiModerationScore" json:"aiModerationScore"` // 0-100, higher = safer
	ModerationFlags       []string `dynamodbav:"moderationFlags,omitempty" json:"moderationFlags,omitempty"`
	IsHidden              bool     `dynamodbav:"isHidden" json:"isHidden"`
	ResonanceContribution int      `dynamodbav:"resonanceContribution" json:"resonanceContribution"` // 0 or 1
	ReadAt                string   `dynamodbav:"readAt,omitempty" json:"readAt,omitempty"`
}

// ChatMessageView is a ChatMessage annotated for a particular viewer.
// PartnerName is always an anonymized placeholder until Prism Point unlock.
type ChatMessageView struct {
	ChatMessage
	IsOwn       bool   `json:"isOwn"`
	PartnerName string `json:"partnerName"`
}
