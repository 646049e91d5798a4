package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldsim/gridiron/internal/models"
)

func game(stats map[models.StatCategory]float64) models.PlayerGameStats {
	return models.PlayerGameStats{
		GameID:   "test_game",
		Week:     1,
		Opponent: "LV",
		Stats:    stats,
		Grade:    75.0,
	}
}

func TestQuarterbackHighCompletionPercentage(t *testing.T) {
	deltas := ComputeDeltas(models.PositionQB, game(map[models.StatCategory]float64{
		models.StatPassAttempts:    35,
		models.StatPassCompletions: 28, // 80%
		models.StatInterceptions:   0,
	}))

	assert.Equal(t, 2, deltas[models.SkillHands])
	assert.Equal(t, 2, deltas[models.SkillAwareness])
}

func TestQuarterbackLowCompletionPercentage(t *testing.T) {
	deltas := ComputeDeltas(models.PositionQB, game(map[models.StatCategory]float64{
		models.StatPassAttempts:    30,
		models.StatPassCompletions: 12, // 40%
	}))

	assert.Equal(t, -2, deltas[models.SkillHands])
	assert.Equal(t, -2, deltas[models.SkillAwareness])
}

func TestQuarterbackZeroAttemptsNoAdjustment(t *testing.T) {
	deltas := ComputeDeltas(models.PositionQB, game(map[models.StatCategory]float64{
		models.StatPassAttempts: 0,
	}))
	assert.Empty(t, deltas)
}

func TestQuarterbackInterceptionsBeyondFirst(t *testing.T) {
	// One interception is free; each one after costs awareness.
	deltas := ComputeDeltas(models.PositionQB, game(map[models.StatCategory]float64{
		models.StatInterceptions: 1,
	}))
	assert.Empty(t, deltas)

	deltas = ComputeDeltas(models.PositionQB, game(map[models.StatCategory]float64{
		models.StatInterceptions: 3,
	}))
	assert.Equal(t, -2, deltas[models.SkillAwareness])
}

func TestQuarterbackInterceptionsClampedAtFloor(t *testing.T) {
	// Bad completion day plus a pick parade: awareness bottoms out at -3.
	deltas := ComputeDeltas(models.PositionQB, game(map[models.StatCategory]float64{
		models.StatPassAttempts:    40,
		models.StatPassCompletions: 15, // 37.5%
		models.StatInterceptions:   5,
	}))

	assert.Equal(t, MinDeltaPerGame, deltas[models.SkillAwareness])
	assert.Equal(t, -2, deltas[models.SkillHands])
}

func TestRunningBackYardsPerCarry(t *testing.T) {
	deltas := ComputeDeltas(models.PositionRB, game(map[models.StatCategory]float64{
		models.StatRushAttempts: 20,
		models.StatRushYards:    130, // 6.5 ypc
	}))
	assert.Equal(t, 2, deltas[models.SkillAgility])
	assert.Equal(t, 2, deltas[models.SkillSpeed])

	deltas = ComputeDeltas(models.PositionRB, game(map[models.StatCategory]float64{
		models.StatRushAttempts: 20,
		models.StatRushYards:    40, // 2.0 ypc
	}))
	assert.Equal(t, -2, deltas[models.SkillAgility])
	assert.Equal(t, -2, deltas[models.SkillSpeed])
}

func TestRunningBackBrokenTacklesCumulativeAndClamped(t *testing.T) {
	deltas := ComputeDeltas(models.PositionRB, game(map[models.StatCategory]float64{
		models.StatBrokenTackles: 2,
	}))
	assert.Equal(t, 2, deltas[models.SkillStrength])
	assert.Equal(t, 2, deltas[models.SkillAgility])

	// Five broken tackles would be +5; the per-game ceiling holds it at +3.
	deltas = ComputeDeltas(models.PositionRB, game(map[models.StatCategory]float64{
		models.StatBrokenTackles: 5,
	}))
	assert.Equal(t, MaxDeltaPerGame, deltas[models.SkillStrength])
	assert.Equal(t, MaxDeltaPerGame, deltas[models.SkillAgility])
}

func TestRunningBackZeroCarriesNoAdjustment(t *testing.T) {
	deltas := ComputeDeltas(models.PositionRB, game(map[models.StatCategory]float64{
		models.StatRushYards: 15, // garbage data without attempts
	}))
	assert.Empty(t, deltas)
}

func TestReceiverCatchRate(t *testing.T) {
	deltas := ComputeDeltas(models.PositionWR, game(map[models.StatCategory]float64{
		models.StatTargets:    10,
		models.StatReceptions: 8, // 80%
	}))
	assert.Equal(t, 2, deltas[models.SkillHands])
	assert.Equal(t, 1, deltas[models.SkillRouteRunning])
}

func TestReceiverDropsOverrideCatchRate(t *testing.T) {
	// Three drops wipe out even a strong catch-rate day for hands.
	deltas := ComputeDeltas(models.PositionWR, game(map[models.StatCategory]float64{
		models.StatTargets:    12,
		models.StatReceptions: 10, // 83%
		models.StatDrops:      3,
	}))
	assert.Equal(t, -3, deltas[models.SkillHands])
	assert.Equal(t, 1, deltas[models.SkillRouteRunning])
}

func TestReceiverZeroTargetsNoAdjustment(t *testing.T) {
	deltas := ComputeDeltas(models.PositionWR, game(map[models.StatCategory]float64{
		models.StatReceptions: 0,
	}))
	assert.Empty(t, deltas)
}

func TestDefenderTackleVolume(t *testing.T) {
	for _, position := range []models.Position{models.PositionCB, models.PositionS, models.PositionLB, models.PositionDL} {
		deltas := ComputeDeltas(position, game(map[models.StatCategory]float64{
			models.StatTackles: 11,
		}))
		assert.Equal(t, 2, deltas[models.SkillTackle], "position %s", position)
	}
}

func TestDefenderMissedTacklesCumulative(t *testing.T) {
	deltas := ComputeDeltas(models.PositionLB, game(map[models.StatCategory]float64{
		models.StatTackles:       10,
		models.StatMissedTackles: 4,
	}))
	// +2 for volume, -4 for misses, clamped floor is -3 but -2 is in range.
	assert.Equal(t, -2, deltas[models.SkillTackle])
}

func TestUnlistedPositionIsEmptyNotError(t *testing.T) {
	deltas := ComputeDeltas(models.PositionK, game(map[models.StatCategory]float64{
		models.StatTackles: 12,
	}))
	assert.NotNil(t, deltas)
	assert.Empty(t, deltas)
}

func TestDeltasAreBoundedForAllPositions(t *testing.T) {
	extreme := game(map[models.StatCategory]float64{
		models.StatPassAttempts:    60,
		models.StatPassCompletions: 55,
		models.StatInterceptions:   8,
		models.StatRushAttempts:    30,
		models.StatRushYards:       300,
		models.StatBrokenTackles:   12,
		models.StatTargets:         20,
		models.StatReceptions:      19,
		models.StatDrops:           6,
		models.StatTackles:         18,
		models.StatMissedTackles:   9,
	})

	for _, position := range []models.Position{models.PositionQB, models.PositionRB, models.PositionWR, models.PositionLB} {
		for skill, delta := range ComputeDeltas(position, extreme) {
			assert.GreaterOrEqual(t, delta, MinDeltaPerGame, "%s/%s", position, skill)
			assert.LessOrEqual(t, delta, MaxDeltaPerGame, "%s/%s", position, skill)
		}
	}
}
