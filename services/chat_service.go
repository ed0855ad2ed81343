package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"vibematch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService handles the moderated per-match message log.
type ChatService struct {
	Dynamo   Store
	Matches  *MatchService
	Prism    *PrismService
	Analyzer TextAnalyzer
}

// SendMessageRequest carries a new message into the channel.
type SendMessageRequest struct {
	MatchID            string `json:"matchId"`
	SenderID           string `json:"senderId"`
	ReceiverID         string `json:"receiverId"`
	Message            string `json:"message"`
	MessageType        string `json:"messageType,omitempty"`
	ReflectionPromptID string `json:"reflectionPromptId,omitempty"`
}

// SendMessage validates, moderates, and stores a message, then feeds its
// resonance contribution back into the match. Moderation-service failures
// degrade to an unmoderated message rather than blocking the send.
func (cs *ChatService) SendMessage(ctx context.Context, req SendMessageRequest) (*models.ChatMessage, error) {
	if req.MatchID == "" || req.SenderID == "" || req.ReceiverID == "" {
		return nil, fmt.Errorf("%w: matchId, senderId and receiverId are required", ErrValidation)
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message must not be empty", ErrValidation)
	}

	match, err := cs.Matches.GetMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusActive {
		return nil, fmt.Errorf("%w: match %s", ErrMatchNotActive, req.MatchID)
	}
	if !match.HasParticipant(req.SenderID) || match.Partner(req.SenderID) != req.ReceiverID {
		return nil, fmt.Errorf("%w: match %s", ErrNotParticipant, req.MatchID)
	}

	message := models.ChatMessage{
		MatchID:     req.MatchID,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
		MessageID:   uuid.NewString(),
		SenderID:    req.SenderID,
		ReceiverID:  req.ReceiverID,
		Message:     req.Message,
		MessageType: models.MessageTypeText,
	}
	if req.MessageType == models.MessageTypeReflection {
		message.MessageType = models.MessageTypeReflection
		message.IsReflectionResponse = true
		message.ReflectionPromptID = req.ReflectionPromptID
	}

	verdict, err := cs.Analyzer.Analyze(ctx, req.Message)
	if err != nil {
		// Chat availability beats moderation completeness: store the
		// message unscored and flagged as unmoderated.
		log.Printf("Moderation unavailable for match %s: %v", req.MatchID, err)
		message.ModerationFlags = []string{"unmoderated"}
	} else {
		message.AIModerationScore = verdict.Score
		message.ModerationFlags = verdict.Flags
		if verdict.Score < models.ModerationHideThreshold {
			message.IsHidden = true
		}
	}

	// A message counts toward resonance when it is substantive and was
	// not flagged unsafe; at most 1 per message.
	if utf8.RuneCountInString(strings.TrimSpace(req.Message)) >= models.MinResonanceLength && !message.IsHidden {
		message.ResonanceContribution = 1
	}

	if err := cs.Dynamo.PutItem(ctx, models.MatchChatTable, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	if message.ResonanceContribution > 0 {
		newCount, err := cs.Matches.IncrementResonance(ctx, req.MatchID, message.ResonanceContribution)
		if err != nil {
			// The message is already stored; a deactivation race here only
			// costs the increment.
			log.Printf("Resonance increment skipped for match %s: %v", req.MatchID, err)
		} else if newCount >= models.ResonanceThreshold {
			if err := cs.Prism.EnsureForMatch(ctx, match); err != nil {
				log.Printf("Failed to provision prism point for match %s: %v", req.MatchID, err)
			}
		}
	}

	return &message, nil
}

// GetMessages returns the match's visible messages in insertion order,
// annotated for the viewer. The partner is always presented under an
// anonymized name until Prism Point unlock.
func (cs *ChatService) GetMessages(ctx context.Context, matchID, viewerID string) ([]models.ChatMessageView, error) {
	match, err := cs.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(viewerID) {
		return nil, fmt.Errorf("%w: match %s", ErrNotParticipant, matchID)
	}

	items, err := cs.Dynamo.QueryItemsWithOptions(ctx, models.MatchChatTable,
		"matchId = :matchId",
		map[string]types.AttributeValue{":matchId": &types.AttributeValueMemberS{Value: matchID}},
		nil, 200, false,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.ChatMessage
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}

	partnerName := AnonymousName(match.Partner(viewerID))
	views := []models.ChatMessageView{}
	for _, msg := range messages {
		if msg.IsHidden {
			continue // stored but excluded from default display
		}
		views = append(views, models.ChatMessageView{
			ChatMessage: msg,
			IsOwn:       msg.SenderID == viewerID,
			PartnerName: partnerName,
		})
	}
	return views, nil
}

// MarkMessagesAsRead stamps readAt on the viewer's unread incoming messages.
func (cs *ChatService) MarkMessagesAsRead(ctx context.Context, matchID, userID string) error {
	match, err := cs.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParticipant(userID) {
		return fmt.Errorf("%w: match %s", ErrNotParticipant, matchID)
	}

	items, err := cs.Dynamo.QueryItems(ctx, models.MatchChatTable,
		"matchId = :matchId",
		map[string]types.AttributeValue{":matchId": &types.AttributeValueMemberS{Value: matchID}},
		nil, 200,
	)
	if err != nil {
		return fmt.Errorf("failed to fetch messages: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, item := range items {
		var msg models.ChatMessage
		if err := attributevalue.UnmarshalMap(item, &msg); err != nil {
			continue
		}
		if msg.ReceiverID != userID || msg.ReadAt != "" {
			continue
		}
		_, err := cs.Dynamo.UpdateItem(ctx, models.MatchChatTable,
			"SET readAt = :now",
			map[string]types.AttributeValue{
				"matchId":   &types.AttributeValueMemberS{Value: matchID},
				"createdAt": &types.AttributeValueMemberS{Value: msg.CreatedAt},
			},
			map[string]types.AttributeValue{":now": &types.AttributeValueMemberS{Value: now}},
			nil,
		)
		if err != nil {
			log.Printf("Failed to mark message %s as read: %v", msg.MessageID, err)
		}
	}
	return nil
}

// ReportMessage files a safety report against a message. Always allowed
// for a participant, hidden or not; the message itself is never deleted.
// A block report also deactivates the match.
func (cs *ChatService) ReportMessage(ctx context.Context, chatID, userID, actionType, reason string) (*models.SafetyReport, error) {
	switch actionType {
	case models.ReportActionReport, models.ReportActionBlock, models.ReportActionConsentWithdraw:
	default:
		return nil, fmt.Errorf("%w: unknown actionType %q", ErrValidation, actionType)
	}
	if chatID == "" || userID == "" {
		return nil, fmt.Errorf("%w: chatId and userId are required", ErrValidation)
	}

	msg, err := cs.getMessageByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	match, err := cs.Matches.GetMatch(ctx, msg.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: match %s", ErrNotParticipant, msg.MatchID)
	}

	report := models.SafetyReport{
		ReportID:   uuid.NewString(),
		ChatID:     chatID,
		MatchID:    msg.MatchID,
		UserID:     userID,
		ActionType: actionType,
		Reason:     reason,
		AIFlagged:  msg.IsHidden,
		Resolved:   false,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := cs.Dynamo.PutItem(ctx, models.SafetyReportsTable, report); err != nil {
		return nil, fmt.Errorf("failed to store safety report: %w", err)
	}

	if actionType == models.ReportActionBlock {
		if err := cs.Matches.DeactivateMatch(ctx, msg.MatchID, userID); err != nil {
			log.Printf("Failed to deactivate match %s after block: %v", msg.MatchID, err)
		}
	}

	log.Printf("Safety report %s filed by %s on message %s (%s)", report.ReportID, userID, chatID, actionType)
	return &report, nil
}

func (cs *ChatService) getMessageByID(ctx context.Context, messageID string) (*models.ChatMessage, error) {
	items, err := cs.Dynamo.QueryItemsWithIndex(ctx, models.MatchChatTable, models.MessageIdIndex,
		"messageId = :messageId",
		map[string]types.AttributeValue{":messageId": &types.AttributeValueMemberS{Value: messageID}},
		nil, 1,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up message: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: message %s", ErrNotFound, messageID)
	}

	var msg models.ChatMessage
	if err := attributevalue.UnmarshalMap(items[0], &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &msg, nil
}

// AnonymousName derives a stable pseudonym for a user id. Real names are
// never shown before Prism Point unlock.
func AnonymousName(userID string) string {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return fmt.Sprintf("Kindred Spirit #%03d", h.Sum32()%1000)
}
