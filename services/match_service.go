package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"vibematch_server/models"
	"vibematch_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchService owns the like/pass state machine and the resonance counter.
type MatchService struct {
	Dynamo   Store
	Profiles *VibeProfileService
}

// ActionResult is returned from RecordAction.
type ActionResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"matchId,omitempty"`
	Status  string `json:"status,omitempty"`
}

// PotentialMatch pairs a candidate profile with its compatibility score.
type PotentialMatch struct {
	Profile         models.VibeProfile `json:"profile"`
	MatchScore      int                `json:"matchScore"`
	SharedInterests []string           `json:"sharedInterests"`
}

// MatchIDFor returns the canonical match id for an unordered user pair.
// Sorting the ids makes lookup and creation orientation-insensitive.
func MatchIDFor(userA, userB string) string {
	lo, hi := userA, userB
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + "#" + hi
}

// GetMatch retrieves a match row by id.
func (ms *MatchService) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	key := map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
	item, err := ms.Dynamo.GetItem(ctx, models.VibeMatchesTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
		}
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// RecordAction applies a like or pass from userID toward otherUserID and
// advances the pair's state machine. The first like creates a pending row;
// the reciprocal like activates it; a pass settles the pair into the
// terminal inactive state.
func (ms *MatchService) RecordAction(ctx context.Context, userID, otherUserID, action string) (*ActionResult, error) {
	if action != models.ActionLike && action != models.ActionPass {
		return nil, fmt.Errorf("%w: action must be %q or %q", ErrValidation, models.ActionLike, models.ActionPass)
	}
	if userID == "" || otherUserID == "" || userID == otherUserID {
		return nil, fmt.Errorf("%w: two distinct user ids are required", ErrValidation)
	}

	actorProfile, err := ms.Profiles.requireCompleteProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	targetProfile, err := ms.Profiles.requireCompleteProfile(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	matchID := MatchIDFor(userID, otherUserID)
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if match == nil {
		// A pass on a never-seen pair records nothing.
		if action == models.ActionPass {
			return &ActionResult{Matched: false}, nil
		}
		created, err := ms.createPendingMatch(ctx, userID, actorProfile, targetProfile)
		if err == nil {
			return &ActionResult{Matched: false, MatchID: created.MatchID, Status: created.Status}, nil
		}
		if !errors.Is(err, ErrConditionFailed) {
			return nil, err
		}
		// Lost a concurrent-create race; fall through to the update path.
		if match, err = ms.GetMatch(ctx, matchID); err != nil {
			return nil, err
		}
	}

	if match.Status == models.MatchStatusInactive {
		return nil, fmt.Errorf("%w: match %s is terminal", ErrMatchNotActive, matchID)
	}

	if action == models.ActionLike {
		if match.Status == models.MatchStatusActive {
			// Repeated like on an already-mutual match: nothing to transition.
			return &ActionResult{Matched: true, MatchID: matchID, Status: match.Status}, nil
		}
		if match.ActionOf(otherUserID) == models.ActionLike {
			return ms.activateMatch(ctx, match, userID)
		}
	}

	// One-sided update: record this participant's action. A pass settles
	// the pair into the terminal state.
	status := match.Status
	if action == models.ActionPass {
		status = models.MatchStatusInactive
	}
	if err := ms.setAction(ctx, match, userID, action, status); err != nil {
		return nil, err
	}
	return &ActionResult{Matched: false, MatchID: matchID, Status: status}, nil
}

func (ms *MatchService) createPendingMatch(ctx context.Context, actorID string, actor, target *models.VibeProfile) (*models.Match, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	match := models.Match{
		MatchID:         MatchIDFor(actor.UserID, target.UserID),
		UserID1:         minID(actor.UserID, target.UserID),
		UserID2:         maxID(actor.UserID, target.UserID),
		MatchScore:      CompatibilityScore(actor, target),
		Status:          models.MatchStatusPending,
		ResonanceCount:  0,
		CreatedAt:       now,
		LastInteraction: now,
	}
	if actorID == match.UserID1 {
		match.User1Action = models.ActionLike
	} else {
		match.User2Action = models.ActionLike
	}

	// attribute_not_exists guards against a duplicate row when both users
	// like each other concurrently.
	err := ms.Dynamo.PutItemConditional(ctx, models.VibeMatchesTable, match, "attribute_not_exists(matchId)")
	if err != nil {
		return nil, err
	}
	log.Printf("Match %s created (pending) by %s", match.MatchID, actorID)
	return &match, nil
}

func (ms *MatchService) activateMatch(ctx context.Context, match *models.Match, actorID string) (*ActionResult, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	actionField := "user1Action"
	if actorID == match.UserID2 {
		actionField = "user2Action"
	}

	// Conditional on still being pending so the activation happens once.
	_, err := ms.Dynamo.UpdateItemConditional(ctx, models.VibeMatchesTable,
		fmt.Sprintf("SET %s = :like, matchStatus = :active, lastInteraction = :now", actionField),
		map[string]types.AttributeValue{"matchId": &types.AttributeValueMemberS{Value: match.MatchID}},
		map[string]types.AttributeValue{
			":like":    &types.AttributeValueMemberS{Value: models.ActionLike},
			":active":  &types.AttributeValueMemberS{Value: models.MatchStatusActive},
			":now":     &types.AttributeValueMemberS{Value: now},
			":pending": &types.AttributeValueMemberS{Value: models.MatchStatusPending},
		},
		nil,
		"matchStatus = :pending",
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			// Another request already transitioned the row.
			current, getErr := ms.GetMatch(ctx, match.MatchID)
			if getErr != nil {
				return nil, getErr
			}
			return &ActionResult{Matched: current.Status == models.MatchStatusActive, MatchID: match.MatchID, Status: current.Status}, nil
		}
		return nil, err
	}

	log.Printf("Match %s is now mutual", match.MatchID)
	return &ActionResult{Matched: true, MatchID: match.MatchID, Status: models.MatchStatusActive}, nil
}

func (ms *MatchService) setAction(ctx context.Context, match *models.Match, actorID, action, status string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	actionField := "user1Action"
	if actorID == match.UserID2 {
		actionField = "user2Action"
	}

	_, err := ms.Dynamo.UpdateItem(ctx, models.VibeMatchesTable,
		fmt.Sprintf("SET %s = :action, matchStatus = :status, lastInteraction = :now", actionField),
		map[string]types.AttributeValue{"matchId": &types.AttributeValueMemberS{Value: match.MatchID}},
		map[string]types.AttributeValue{
			":action": &types.AttributeValueMemberS{Value: action},
			":status": &types.AttributeValueMemberS{Value: status},
			":now":    &types.AttributeValueMemberS{Value: now},
		},
		nil,
	)
	return err
}

// IncrementResonance atomically adds a non-negative contribution to the
// match's resonance counter. The add happens at the storage layer
// conditioned on the match being active, so concurrent sends never lose
// updates. Returns the new counter value.
func (ms *MatchService) IncrementResonance(ctx context.Context, matchID string, contribution int) (int, error) {
	if contribution < 0 {
		return 0, fmt.Errorf("%w: resonance contribution must be non-negative", ErrValidation)
	}
	if contribution == 0 {
		match, err := ms.GetMatch(ctx, matchID)
		if err != nil {
			return 0, err
		}
		return match.ResonanceCount, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	attrs, err := ms.Dynamo.UpdateItemConditional(ctx, models.VibeMatchesTable,
		"SET resonanceCount = resonanceCount + :inc, lastInteraction = :now",
		map[string]types.AttributeValue{"matchId": &types.AttributeValueMemberS{Value: matchID}},
		map[string]types.AttributeValue{
			":inc":    &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", contribution)},
			":now":    &types.AttributeValueMemberS{Value: now},
			":active": &types.AttributeValueMemberS{Value: models.MatchStatusActive},
		},
		nil,
		"matchStatus = :active",
	)
	if err != nil {
		if errors.Is(err, ErrConditionFailed) {
			return 0, fmt.Errorf("%w: match %s", ErrMatchNotActive, matchID)
		}
		return 0, err
	}

	var updated models.Match
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return 0, fmt.Errorf("failed to unmarshal updated match: %w", err)
	}
	return updated.ResonanceCount, nil
}

// DeactivateMatch settles a match into the terminal inactive state
// (unmatch / block). Only a participant may deactivate.
func (ms *MatchService) DeactivateMatch(ctx context.Context, matchID, userID string) error {
	match, err := ms.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasParticipant(userID) {
		return fmt.Errorf("%w: match %s", ErrNotParticipant, matchID)
	}
	if match.Status == models.MatchStatusInactive {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = ms.Dynamo.UpdateItem(ctx, models.VibeMatchesTable,
		"SET matchStatus = :inactive, lastInteraction = :now",
		map[string]types.AttributeValue{"matchId": &types.AttributeValueMemberS{Value: matchID}},
		map[string]types.AttributeValue{
			":inactive": &types.AttributeValueMemberS{Value: models.MatchStatusInactive},
			":now":      &types.AttributeValueMemberS{Value: now},
		},
		nil,
	)
	return err
}

// GetCurrentMatches returns every match row the user appears in,
// regardless of status, queried through both orientation GSIs.
func (ms *MatchService) GetCurrentMatches(ctx context.Context, userID string) ([]models.Match, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrValidation)
	}

	matches := []models.Match{}
	for _, q := range []struct{ index, field string }{
		{models.UserId1Index, "userId1"},
		{models.UserId2Index, "userId2"},
	} {
		items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.VibeMatchesTable, q.index,
			fmt.Sprintf("%s = :uid", q.field),
			map[string]types.AttributeValue{":uid": &types.AttributeValueMemberS{Value: userID}},
			nil, 100,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch matches: %w", err)
		}
		var page []models.Match
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
		}
		matches = append(matches, page...)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LastInteraction > matches[j].LastInteraction
	})
	return matches, nil
}

// GetPotentialMatches surfaces complete, visible profiles the user has no
// existing match row with, ranked by compatibility score descending.
func (ms *MatchService) GetPotentialMatches(ctx context.Context, userID string) ([]PotentialMatch, error) {
	me, err := ms.Profiles.requireCompleteProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Any existing row excludes the pair, whatever its status.
	existing, err := ms.GetCurrentMatches(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := map[string]struct{}{userID: {}}
	for _, m := range existing {
		excluded[m.Partner(userID)] = struct{}{}
	}

	var candidates []models.VibeProfile
	err = ms.Dynamo.ScanWithFilter(ctx, models.VibeProfilesTable, func(item map[string]types.AttributeValue) bool {
		id := utils.ExtractString(item, "userId")
		if _, skip := excluded[id]; skip {
			return false
		}
		return utils.ExtractBool(item, "profileComplete") && utils.ExtractBool(item, "visible")
	}, &candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate profiles: %w", err)
	}

	results := make([]PotentialMatch, 0, len(candidates))
	for i := range candidates {
		results = append(results, PotentialMatch{
			Profile:         candidates[i],
			MatchScore:      CompatibilityScore(me, &candidates[i]),
			SharedInterests: SharedInterests(me, &candidates[i]),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results, nil
}

func minID(a, b string) string {
	if a < b {
		return a
	}
	return b
}

func maxID(a, b string) string {
	if a < b {
		return b
	}
	return a
}
