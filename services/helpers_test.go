package services

import (
	"context"
	"testing"

	"vibematch_server/models"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store    *memoryStore
	profiles *VibeProfileService
	matches  *MatchService
	prism    *PrismService
	analyzer *stubAnalyzer
	chat     *ChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemoryStore()
	profiles := &VibeProfileService{Dynamo: store}
	matches := &MatchService{Dynamo: store, Profiles: profiles}
	prism := &PrismService{Dynamo: store, Matches: matches, Profiles: profiles}
	analyzer := &stubAnalyzer{score: 90}
	chat := &ChatService{Dynamo: store, Matches: matches, Prism: prism, Analyzer: analyzer}
	return &testEnv{store: store, profiles: profiles, matches: matches, prism: prism, analyzer: analyzer, chat: chat}
}

func (e *testEnv) seedProfile(t *testing.T, userID string, interests, vibeWords []string, seeking string) *models.VibeProfile {
	t.Helper()
	profile, err := e.profiles.UpsertProfile(context.Background(), models.VibeProfile{
		UserID:            userID,
		Bio:               "Exploring mindful living",
		Location:          "Portland",
		Interests:         interests,
		VibeWords:         vibeWords,
		SeekingConnection: seeking,
		AgeRange:          "25-35",
		ContactShare:      userID + "@example.com",
	})
	require.NoError(t, err)
	require.True(t, profile.ProfileComplete)
	return profile
}

// activateMatchPair likes both ways and returns the active match id.
func (e *testEnv) activateMatchPair(t *testing.T, userA, userB string) string {
	t.Helper()
	ctx := context.Background()
	_, err := e.matches.RecordAction(ctx, userA, userB, models.ActionLike)
	require.NoError(t, err)
	result, err := e.matches.RecordAction(ctx, userB, userA, models.ActionLike)
	require.NoError(t, err)
	require.True(t, result.Matched)
	return result.MatchID
}
