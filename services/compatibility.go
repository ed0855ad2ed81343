package services

import "vibematch_server/models"

// Compatibility scoring weights. The score starts from a baseline and
// accumulates bonuses for shared attributes, capped at 100.
const (
	baselineScore    = 50
	seekingTypeBonus = 15
	interestBonus    = 8
	vibeWordBonus    = 5
	maxScore         = 100
)

// CompatibilityScore computes a bounded score in [0,100] from the overlap
// of two complete profiles. Pure function; callers are responsible for
// filtering incomplete profiles.
func CompatibilityScore(a, b *models.VibeProfile) int {
	score := baselineScore

	if a.SeekingConnection != "" && a.SeekingConnection == b.SeekingConnection {
		score += seekingTypeBonus
	}

	score += len(intersect(a.Interests, b.Interests)) * interestBonus
	score += len(intersect(a.VibeWords, b.VibeWords)) * vibeWordBonus

	if score > maxScore {
		score = maxScore
	}
	return score
}

// SharedInterests returns the interests both profiles declare, preserving
// the order of the first profile's list.
func SharedInterests(a, b *models.VibeProfile) []string {
	return intersect(a.Interests, b.Interests)
}

func intersect(a, b []string) []string {
	seen := make(map[string]struct{}, len(b))
	for _, v := range b {
		seen[v] = struct{}{}
	}
	shared := []string{}
	for _, v := range a {
		if _, ok := seen[v]; ok {
			shared = append(shared, v)
			delete(seen, v) // count duplicates once
		}
	}
	return shared
}
