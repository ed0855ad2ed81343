package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibematch_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// VibeProfileService manages the self-declared matching profiles.
type VibeProfileService struct {
	Dynamo Store
}

// GetProfile retrieves a vibe profile by user id.
func (ps *VibeProfileService) GetProfile(ctx context.Context, userID string) (*models.VibeProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := ps.Dynamo.GetItem(ctx, models.VibeProfilesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("%w: profile for user %s", ErrNotFound, userID)
		}
		return nil, err
	}

	var profile models.VibeProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// UpsertProfile creates or replaces a user's profile. Completeness is
// derived server-side from the required fields rather than trusted from
// the client. Profiles are never hard-deleted; hiding is done through the
// visibility flag.
func (ps *VibeProfileService) UpsertProfile(ctx context.Context, profile models.VibeProfile) (*models.VibeProfile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if profile.SeekingConnection != "" && !validSeekingType(profile.SeekingConnection) {
		return nil, fmt.Errorf("%w: unknown seekingConnection %q", ErrValidation, profile.SeekingConnection)
	}

	profile.ProfileComplete = profileIsComplete(&profile)
	profile.LastActiveAt = time.Now().UTC().Format(time.RFC3339)

	// First write defaults to visible; an existing profile keeps whatever
	// the caller sent.
	if _, err := ps.GetProfile(ctx, profile.UserID); errors.Is(err, ErrNotFound) {
		profile.Visible = true
	}

	if err := ps.Dynamo.PutItem(ctx, models.VibeProfilesTable, profile); err != nil {
		return nil, fmt.Errorf("failed to store profile: %w", err)
	}
	return &profile, nil
}

// requireCompleteProfile fetches a profile and fails with
// ErrProfileIncomplete unless it exists and is complete.
func (ps *VibeProfileService) requireCompleteProfile(ctx context.Context, userID string) (*models.VibeProfile, error) {
	profile, err := ps.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s has no profile", ErrProfileIncomplete, userID)
		}
		return nil, err
	}
	if !profile.ProfileComplete {
		return nil, fmt.Errorf("%w: user %s", ErrProfileIncomplete, userID)
	}
	return profile, nil
}

func profileIsComplete(p *models.VibeProfile) bool {
	return strings.TrimSpace(p.Bio) != "" &&
		len(p.Interests) > 0 &&
		p.SeekingConnection != "" &&
		p.AgeRange != ""
}

func validSeekingType(v string) bool {
	for _, t := range models.SeekingTypes {
		if t == v {
			return true
		}
	}
	return false
}
