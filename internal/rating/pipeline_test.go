package rating

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsim/gridiron/internal/models"
)

func newTestPlayer() *models.PlayerSeasonProfile {
	profile := models.PlayerProfile{
		Name:          "Test WR",
		Position:      models.PositionWR,
		OverallRating: 90,
		Skills: map[models.SkillCategory]int{
			models.SkillHands:        88,
			models.SkillRouteRunning: 90,
			models.SkillSpeed:        97,
			models.SkillAgility:      95,
		},
	}
	return models.NewPlayerSeasonProfile(profile, 2024, "MIA")
}

func testGame(week int, grade float64) models.PlayerGameStats {
	return models.PlayerGameStats{
		GameID:   fmt.Sprintf("game_w%d", week),
		Week:     week,
		Opponent: "BUF",
		Stats:    map[models.StatCategory]float64{models.StatReceptions: 5},
		Grade:    grade,
	}
}

func TestApplyGameAppendsToLog(t *testing.T) {
	pipeline := NewPipeline(0)
	player := newTestPlayer()

	for week := 1; week <= 6; week++ {
		pipeline.ApplyGame(player, testGame(week, 70), nil)
	}

	require.Len(t, player.Games, 6)
	for i, game := range player.Games {
		assert.Equal(t, i+1, game.Week, "log order must match call order")
	}
}

func TestApplyGameClampsRatings(t *testing.T) {
	pipeline := NewPipeline(0)
	player := newTestPlayer()

	// Hammer hands downward far past the floor.
	for week := 1; week <= 30; week++ {
		pipeline.ApplyGame(player, testGame(week, 60), map[models.SkillCategory]int{
			models.SkillHands: -3,
		})
		rating := player.CurrentRatings[models.SkillHands]
		assert.GreaterOrEqual(t, rating, models.MinRating)
		assert.LessOrEqual(t, rating, models.MaxRating)
	}
	assert.Equal(t, models.MinRating, player.CurrentRatings[models.SkillHands])

	// And speed upward past the ceiling.
	for week := 31; week <= 40; week++ {
		pipeline.ApplyGame(player, testGame(week, 60), map[models.SkillCategory]int{
			models.SkillSpeed: 3,
		})
	}
	assert.Equal(t, models.MaxRating, player.CurrentRatings[models.SkillSpeed])
}

func TestWatermarksAlwaysBracketCurrent(t *testing.T) {
	pipeline := NewPipeline(0)
	player := newTestPlayer()

	deltas := []map[models.SkillCategory]int{
		{models.SkillHands: 2},
		{models.SkillHands: -3},
		{models.SkillHands: 1},
		{models.SkillHands: -2},
		{models.SkillHands: 3},
	}
	prevPeak := player.PeakRatings[models.SkillHands]
	prevLow := player.LowestRatings[models.SkillHands]

	for week, delta := range deltas {
		pipeline.ApplyGame(player, testGame(week+1, 70), delta)

		current := player.CurrentRatings[models.SkillHands]
		peak := player.PeakRatings[models.SkillHands]
		low := player.LowestRatings[models.SkillHands]

		assert.GreaterOrEqual(t, peak, current)
		assert.LessOrEqual(t, low, current)
		assert.GreaterOrEqual(t, peak, prevPeak, "peak must never shrink")
		assert.LessOrEqual(t, low, prevLow, "low must never rise")
		prevPeak, prevLow = peak, low
	}

	// 88 -> 90 -> 87 -> 88 -> 86 -> 89
	assert.Equal(t, 90, player.PeakRatings[models.SkillHands])
	assert.Equal(t, 86, player.LowestRatings[models.SkillHands])
}

func TestRecentFormUsesConfiguredWindow(t *testing.T) {
	pipeline := NewPipeline(4)
	player := newTestPlayer()

	grades := []float64{60, 70, 80, 90, 100}
	for i, grade := range grades {
		pipeline.ApplyGame(player, testGame(i+1, grade), nil)
	}

	// Last four grades: 70, 80, 90, 100.
	assert.InDelta(t, 85.0, player.RecentForm, 1e-9)

	// A two-game window only sees 90 and 100.
	short := NewPipeline(2)
	fresh := newTestPlayer()
	for i, grade := range grades {
		short.ApplyGame(fresh, testGame(i+1, grade), nil)
	}
	assert.InDelta(t, 95.0, fresh.RecentForm, 1e-9)
}

func TestRecentFormWithFewerGamesThanWindow(t *testing.T) {
	pipeline := NewPipeline(4)
	player := newTestPlayer()

	pipeline.ApplyGame(player, testGame(1, 64), nil)
	pipeline.ApplyGame(player, testGame(2, 72), nil)

	assert.InDelta(t, 68.0, player.RecentForm, 1e-9)
}

func TestConfidenceDrift(t *testing.T) {
	pipeline := NewPipeline(4)

	hot := newTestPlayer()
	require.Equal(t, 50.0, hot.Confidence)
	pipeline.ApplyGame(hot, testGame(1, 90), nil)
	assert.Equal(t, 55.0, hot.Confidence)

	cold := newTestPlayer()
	pipeline.ApplyGame(cold, testGame(1, 40), nil)
	assert.Equal(t, 47.0, cold.Confidence)

	flat := newTestPlayer()
	pipeline.ApplyGame(flat, testGame(1, 60), nil)
	assert.Equal(t, 50.0, flat.Confidence)
}

func TestConfidenceStaysBounded(t *testing.T) {
	pipeline := NewPipeline(4)

	hot := newTestPlayer()
	for week := 1; week <= 20; week++ {
		pipeline.ApplyGame(hot, testGame(week, 95), nil)
	}
	assert.Equal(t, 100.0, hot.Confidence)

	cold := newTestPlayer()
	for week := 1; week <= 30; week++ {
		pipeline.ApplyGame(cold, testGame(week, 30), nil)
	}
	assert.Equal(t, 0.0, cold.Confidence)
}

func TestSeasonStatsAccumulate(t *testing.T) {
	pipeline := NewPipeline(4)
	player := newTestPlayer()

	pipeline.ApplyGame(player, models.PlayerGameStats{
		GameID: "g1", Week: 1, Opponent: "NE",
		Stats: map[models.StatCategory]float64{
			models.StatReceptions:     7,
			models.StatReceivingYards: 112,
		},
		Grade: 84,
	}, nil)
	pipeline.ApplyGame(player, models.PlayerGameStats{
		GameID: "g2", Week: 2, Opponent: "NYJ",
		Stats: map[models.StatCategory]float64{
			models.StatReceptions:     5,
			models.StatReceivingYards: 68,
		},
		Grade: 76,
	}, nil)

	require.NotNil(t, player.SeasonStats)
	assert.Equal(t, 2, player.SeasonStats.GamesPlayed)
	assert.Equal(t, 12.0, player.SeasonStats.TotalStats[models.StatReceptions])
	assert.Equal(t, 180.0, player.SeasonStats.TotalStats[models.StatReceivingYards])
	assert.InDelta(t, 90.0, player.SeasonStats.PerGameAverages[models.StatReceivingYards], 1e-9)
	assert.InDelta(t, 80.0, player.SeasonStats.SeasonGrade, 1e-9)
}
