package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillWeightsSumToOne(t *testing.T) {
	positions := []Position{PositionQB, PositionRB, PositionWR, PositionCB, PositionLB, PositionTE, PositionK}
	for _, position := range positions {
		weights := SkillWeights(position)
		require.NotEmpty(t, weights, "position %s has no weights", position)

		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "weights for %s must sum to 1.0", position)
	}
}

func TestParseSkillCategory(t *testing.T) {
	skill, err := ParseSkillCategory("route_running")
	require.NoError(t, err)
	assert.Equal(t, SkillRouteRunning, skill)

	_, err = ParseSkillCategory("charisma")
	assert.Error(t, err)
}

func TestParseStatCategory(t *testing.T) {
	category, err := ParseStatCategory("pass_yards")
	require.NoError(t, err)
	assert.Equal(t, StatPassYards, category)
	assert.Equal(t, UnitPassing, category.Unit())

	_, err = ParseStatCategory("three_pointers")
	assert.Error(t, err)
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, MinRating, ClampRating(12))
	assert.Equal(t, MaxRating, ClampRating(105))
	assert.Equal(t, 75, ClampRating(75))
}

func TestGetSkillFallsBackToOverall(t *testing.T) {
	profile := PlayerProfile{
		Name:          "Test QB",
		Position:      PositionQB,
		OverallRating: 85,
		Skills:        map[SkillCategory]int{SkillAwareness: 90},
	}

	assert.Equal(t, 90, profile.GetSkill(SkillAwareness))
	assert.Equal(t, 85, profile.GetSkill(SkillSpeed), "unrated skill should fall back to overall")
}

func TestRatingTiers(t *testing.T) {
	cases := []struct {
		overall int
		tier    RatingTier
	}{
		{96, TierElite},
		{84, TierGood},
		{73, TierAverage},
		{64, TierBelowAverage},
		{55, TierPoor},
	}
	for _, tc := range cases {
		profile := PlayerProfile{OverallRating: tc.overall}
		assert.Equal(t, tc.tier, profile.Tier())
	}
}

func TestNewPlayerSeasonProfileSeedsWatermarks(t *testing.T) {
	profile := PlayerProfile{
		Name:          "Test RB",
		Position:      PositionRB,
		OverallRating: 88,
		Skills: map[SkillCategory]int{
			SkillSpeed:    90,
			SkillAgility:  85,
			SkillStrength: 92,
			SkillHands:    70,
		},
	}

	season := NewPlayerSeasonProfile(profile, 2024, "TEN")
	require.NotNil(t, season)
	assert.Equal(t, 2024, season.Season)
	assert.Empty(t, season.Games)
	assert.Equal(t, 50.0, season.Confidence)

	for skill, rating := range profile.Skills {
		assert.Equal(t, rating, season.CurrentRatings[skill])
		assert.Equal(t, rating, season.PeakRatings[skill])
		assert.Equal(t, rating, season.LowestRatings[skill])
	}
}

func TestOverallRatingIsDerivedFromWeights(t *testing.T) {
	profile := PlayerProfile{
		Name:          "Test QB",
		Position:      PositionQB,
		OverallRating: 96,
		Skills: map[SkillCategory]int{
			SkillAwareness: 97,
			SkillHands:     92,
			SkillSpeed:     76,
			SkillAgility:   83,
		},
	}
	season := NewPlayerSeasonProfile(profile, 2024, "KC")

	// 92*0.3 + 97*0.4 + 76*0.1 + 83*0.2 = 90.6 -> 91
	assert.Equal(t, 91, season.OverallRating())
	assert.Equal(t, 91, season.StartingOverall())
	assert.Equal(t, 0, season.OverallChange())

	// Mutating a current skill moves the derived overall with it.
	season.CurrentRatings[SkillAwareness] = 99
	season.CurrentRatings[SkillHands] = 94
	// 94*0.3 + 99*0.4 + 76*0.1 + 83*0.2 = 92.0 -> 92
	assert.Equal(t, 92, season.OverallRating())
	assert.Equal(t, 1, season.OverallChange())
}
