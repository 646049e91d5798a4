package models

import "fmt"

// StatCategory represents a per-game statistical category
type StatCategory string

const (
	// Passing stats
	StatPassAttempts    StatCategory = "pass_attempts"
	StatPassCompletions StatCategory = "pass_completions"
	StatPassYards       StatCategory = "pass_yards"
	StatPassTouchdowns  StatCategory = "pass_touchdowns"
	StatInterceptions   StatCategory = "interceptions"
	StatSacksTaken      StatCategory = "sacks_taken"
	StatQBRating        StatCategory = "quarterback_rating"

	// Rushing stats
	StatRushAttempts      StatCategory = "rush_attempts"
	StatRushYards         StatCategory = "rush_yards"
	StatRushTouchdowns    StatCategory = "rush_touchdowns"
	StatFumbles           StatCategory = "fumbles"
	StatBrokenTackles     StatCategory = "broken_tackles"
	StatYardsAfterContact StatCategory = "yards_after_contact"

	// Receiving stats
	StatTargets             StatCategory = "targets"
	StatReceptions          StatCategory = "receptions"
	StatReceivingYards      StatCategory = "receiving_yards"
	StatReceivingTouchdowns StatCategory = "receiving_touchdowns"
	StatDrops               StatCategory = "drops"
	StatYardsAfterCatch     StatCategory = "yards_after_catch"

	// Defensive stats
	StatTackles          StatCategory = "tackles"
	StatTacklesForLoss   StatCategory = "tackles_for_loss"
	StatSacks            StatCategory = "sacks"
	StatPassBreakups     StatCategory = "pass_breakups"
	StatInterceptionsDef StatCategory = "interceptions_defense"
	StatForcedFumbles    StatCategory = "forced_fumbles"

	// Special categories
	StatClutchPlays   StatCategory = "clutch_plays"
	StatPenalties     StatCategory = "penalties"
	StatMissedTackles StatCategory = "missed_tackles"
)

// StatUnit groups stat categories by the unit that produces them
type StatUnit string

const (
	UnitPassing   StatUnit = "passing"
	UnitRushing   StatUnit = "rushing"
	UnitReceiving StatUnit = "receiving"
	UnitDefense   StatUnit = "defense"
	UnitSpecial   StatUnit = "special"
)

// statUnits maps every valid stat category to its unit; membership in this
// table is what makes a category valid.
var statUnits = map[StatCategory]StatUnit{
	StatPassAttempts:    UnitPassing,
	StatPassCompletions: UnitPassing,
	StatPassYards:       UnitPassing,
	StatPassTouchdowns:  UnitPassing,
	StatInterceptions:   UnitPassing,
	StatSacksTaken:      UnitPassing,
	StatQBRating:        UnitPassing,

	StatRushAttempts:      UnitRushing,
	StatRushYards:         UnitRushing,
	StatRushTouchdowns:    UnitRushing,
	StatFumbles:           UnitRushing,
	StatBrokenTackles:     UnitRushing,
	StatYardsAfterContact: UnitRushing,

	StatTargets:             UnitReceiving,
	StatReceptions:          UnitReceiving,
	StatReceivingYards:      UnitReceiving,
	StatReceivingTouchdowns: UnitReceiving,
	StatDrops:               UnitReceiving,
	StatYardsAfterCatch:     UnitReceiving,

	StatTackles:          UnitDefense,
	StatTacklesForLoss:   UnitDefense,
	StatSacks:            UnitDefense,
	StatPassBreakups:     UnitDefense,
	StatInterceptionsDef: UnitDefense,
	StatForcedFumbles:    UnitDefense,

	StatClutchPlays:   UnitSpecial,
	StatPenalties:     UnitSpecial,
	StatMissedTackles: UnitSpecial,
}

// Unit returns the unit a stat category belongs to.
func (s StatCategory) Unit() StatUnit {
	return statUnits[s]
}

// ParseStatCategory validates a raw stat name from external input
func ParseStatCategory(raw string) (StatCategory, error) {
	s := StatCategory(raw)
	if _, ok := statUnits[s]; !ok {
		return "", fmt.Errorf("unknown stat category: %q", raw)
	}
	return s, nil
}
