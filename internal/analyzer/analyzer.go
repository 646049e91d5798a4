package analyzer

import (
	"github.com/fieldsim/gridiron/internal/models"
)

// Per-skill delta bounds for a single game.
const (
	MaxDeltaPerGame = 3
	MinDeltaPerGame = -3
)

// Adjustment steps per performance signal.
const (
	completionHighPct = 0.70
	completionLowPct  = 0.50
	completionStep    = 2

	ypcHigh    = 5.0
	ypcLow     = 3.0
	ypcStep    = 2
	brokenStep = 1

	catchRateHigh    = 0.75
	catchRateStep    = 2
	routeRunningStep = 1
	dropThreshold    = 2
	dropPenalty      = -3

	tackleThreshold = 8
	tackleStep      = 2
	missedStep      = -1
)

// ComputeDeltas maps a single game's raw stats into bounded per-skill
// rating deltas for the given position. It is a pure function: it reads no
// season state and every delta is clamped to [-3, +3]. Positions without a
// rule set yield an empty map.
func ComputeDeltas(position models.Position, game models.PlayerGameStats) map[models.SkillCategory]int {
	switch {
	case position == models.PositionQB:
		return quarterbackDeltas(game)
	case position == models.PositionRB:
		return runningBackDeltas(game)
	case position == models.PositionWR:
		return receiverDeltas(game)
	case position.IsDefensive():
		return defenderDeltas(game)
	}
	return map[models.SkillCategory]int{}
}

func quarterbackDeltas(game models.PlayerGameStats) map[models.SkillCategory]int {
	deltas := map[models.SkillCategory]int{}

	attempts := game.GetStat(models.StatPassAttempts)
	completions := game.GetStat(models.StatPassCompletions)
	if attempts > 0 {
		completionPct := completions / attempts
		if completionPct > completionHighPct {
			add(deltas, models.SkillHands, completionStep)
			add(deltas, models.SkillAwareness, completionStep)
		} else if completionPct < completionLowPct {
			add(deltas, models.SkillHands, -completionStep)
			add(deltas, models.SkillAwareness, -completionStep)
		}
	}

	// Every interception beyond the first costs awareness.
	interceptions := int(game.GetStat(models.StatInterceptions))
	if interceptions > 1 {
		add(deltas, models.SkillAwareness, -(interceptions - 1))
	}

	return deltas
}

func runningBackDeltas(game models.PlayerGameStats) map[models.SkillCategory]int {
	deltas := map[models.SkillCategory]int{}

	attempts := game.GetStat(models.StatRushAttempts)
	yards := game.GetStat(models.StatRushYards)
	if attempts > 0 {
		ypc := yards / attempts
		if ypc > ypcHigh {
			add(deltas, models.SkillAgility, ypcStep)
			add(deltas, models.SkillSpeed, ypcStep)
		} else if ypc < ypcLow {
			add(deltas, models.SkillAgility, -ypcStep)
			add(deltas, models.SkillSpeed, -ypcStep)
		}
	}

	brokenTackles := int(game.GetStat(models.StatBrokenTackles))
	if brokenTackles > 0 {
		add(deltas, models.SkillStrength, brokenTackles*brokenStep)
		add(deltas, models.SkillAgility, brokenTackles*brokenStep)
	}

	return deltas
}

func receiverDeltas(game models.PlayerGameStats) map[models.SkillCategory]int {
	deltas := map[models.SkillCategory]int{}

	targets := game.GetStat(models.StatTargets)
	receptions := game.GetStat(models.StatReceptions)
	if targets > 0 {
		catchRate := receptions / targets
		if catchRate > catchRateHigh {
			add(deltas, models.SkillHands, catchRateStep)
			add(deltas, models.SkillRouteRunning, routeRunningStep)
		}
	}

	// A drop-heavy game overrides any catch-rate credit for hands.
	drops := int(game.GetStat(models.StatDrops))
	if drops > dropThreshold {
		deltas[models.SkillHands] = dropPenalty
	}

	return deltas
}

func defenderDeltas(game models.PlayerGameStats) map[models.SkillCategory]int {
	deltas := map[models.SkillCategory]int{}

	tackles := game.GetStat(models.StatTackles)
	if tackles > tackleThreshold {
		add(deltas, models.SkillTackle, tackleStep)
	}

	missed := int(game.GetStat(models.StatMissedTackles))
	if missed > 0 {
		add(deltas, models.SkillTackle, missed*missedStep)
	}

	return deltas
}

// add accumulates a delta for a skill, clamping to the per-game bounds.
func add(deltas map[models.SkillCategory]int, skill models.SkillCategory, delta int) {
	v := deltas[skill] + delta
	if v > MaxDeltaPerGame {
		v = MaxDeltaPerGame
	}
	if v < MinDeltaPerGame {
		v = MinDeltaPerGame
	}
	deltas[skill] = v
}
