package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"vibematch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PrismService owns the mutual-consent contact unlock. A prism point is
// provisioned once a match's resonance reaches the threshold; each
// participant consents independently; the moment both have consented the
// point unlocks and the shared contact payload is populated. Unlock is
// one-way: consent and shared info are immutable afterwards.
type PrismService struct {
	Dynamo   Store
	Matches  *MatchService
	Profiles *VibeProfileService
}

// EnsureForMatch creates the match's prism point if it does not exist yet.
// Safe to call from concurrent message sends.
func (ps *PrismService) EnsureForMatch(ctx context.Context, match *models.Match) error {
	point := models.PrismPoint{
		MatchID:   match.MatchID,
		UserID1:   match.UserID1,
		UserID2:   match.UserID2,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	err := ps.Dynamo.PutItemConditional(ctx, models.PrismPointsTable, point, "attribute_not_exists(matchId)")
	if errors.Is(err, ErrConditionFailed) {
		return nil
	}
	if err == nil {
		log.Printf("Prism point provisioned for match %s", match.MatchID)
	}
	return err
}

// GetPrismPoint retrieves the prism point for a match.
func (ps *PrismService) GetPrismPoint(ctx context.Context, matchID string) (*models.PrismPoint, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.PrismPointsTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("%w: prism point for match %s", ErrNotFound, matchID)
		}
		return nil, err
	}

	var point models.PrismPoint
	if err := attributevalue.UnmarshalMap(item, &point); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prism point: %w", err)
	}
	return &point, nil
}

// RequestConsent records that userID consents to the contact exchange for
// this match. Rejected while the match's resonance is below the
// threshold. Idempotent per user; when the second consent lands, the
// point unlocks and the shared payload is built from both users'
// contact-share preferences.
func (ps *PrismService) RequestConsent(ctx context.Context, matchID, userID string) (*models.PrismPoint, error) {
	match, err := ps.Matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: match %s", ErrNotParticipant, matchID)
	}
	if match.ResonanceCount < models.ResonanceThreshold {
		return nil, fmt.Errorf("%w: resonance %d of %d", ErrNotEligible, match.ResonanceCount, models.ResonanceThreshold)
	}

	// Backfill the row if the send-time provisioning was missed.
	if err := ps.EnsureForMatch(ctx, match); err != nil {
		return nil, err
	}

	point, err := ps.GetPrismPoint(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if point.Unlocked {
		return point, nil
	}

	consentField := "user1Consent"
	if userID == point.UserID2 {
		consentField = "user2Consent"
	}
	attrs, err := ps.Dynamo.UpdateItem(ctx, models.PrismPointsTable,
		fmt.Sprintf("SET %s = :true", consentField),
		map[string]types.AttributeValue{"matchId": &types.AttributeValueMemberS{Value: matchID}},
		map[string]types.AttributeValue{":true": &types.AttributeValueMemberBOOL{Value: true}},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record consent: %w", err)
	}

	var updated models.PrismPoint
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prism point: %w", err)
	}

	if updated.User1Consent && updated.User2Consent && !updated.Unlocked {
		return ps.unlock(ctx, &updated)
	}
	return &updated, nil
}

func (ps *PrismService) unlock(ctx context.Context, point *models.PrismPoint) (*models.PrismPoint, error) {
	sharedInfo, err := ps.buildSharedInfo(ctx, point)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	attrs, err := ps.Dynamo.UpdateItemConditional(ctx, models.PrismPointsTable,
		"SET unlocked = :true, sharedInfo = :info, unlockedAt = :now",
		map[string]types.AttributeValue{"matchId": &types.AttributeValueMemberS{Value: point.MatchID}},
		map[string]types.AttributeValue{
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":info":  &types.AttributeValueMemberS{Value: sharedInfo},
			":now":   &types.AttributeValueMemberS{Value: now},
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
		nil,
		"unlocked = :false",
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// A concurrent consent already unlocked it.
			return ps.GetPrismPoint(ctx, point.MatchID)
		}
		return nil, fmt.Errorf("failed to unlock prism point: %w", err)
	}

	var unlocked models.PrismPoint
	if err := attributevalue.UnmarshalMap(attrs, &unlocked); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prism point: %w", err)
	}
	log.Printf("Prism point unlocked for match %s", point.MatchID)
	return &unlocked, nil
}

func (ps *PrismService) buildSharedInfo(ctx context.Context, point *models.PrismPoint) (string, error) {
	payload := map[string]string{}
	for _, userID := range []string{point.UserID1, point.UserID2} {
		profile, err := ps.Profiles.GetProfile(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("failed to build shared info: %w", err)
		}
		if profile.ContactShare != "" {
			payload[userID] = profile.ContactShare
		}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode shared info: %w", err)
	}
	return string(encoded), nil
}

// GetPrismPointsForUser returns the prism points across all of the user's
// matches.
func (ps *PrismService) GetPrismPointsForUser(ctx context.Context, userID string) ([]models.PrismPoint, error) {
	matches, err := ps.Matches.GetCurrentMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	points := []models.PrismPoint{}
	for _, match := range matches {
		point, err := ps.GetPrismPoint(ctx, match.MatchID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		points = append(points, *point)
	}
	return points, nil
}
