package models

import "fmt"

// SkillCategory represents a specific rated skill for a player
type SkillCategory string

const (
	// Offensive skills
	SkillSpeed        SkillCategory = "speed"
	SkillAcceleration SkillCategory = "acceleration"
	SkillAgility      SkillCategory = "agility"
	SkillStrength     SkillCategory = "strength"
	SkillHands        SkillCategory = "hands"
	SkillRouteRunning SkillCategory = "route_running"
	SkillAwareness    SkillCategory = "awareness"

	// Blocking skills
	SkillPassBlocking SkillCategory = "pass_blocking"
	SkillRunBlocking  SkillCategory = "run_blocking"

	// Defensive skills
	SkillTackle     SkillCategory = "tackle"
	SkillCoverage   SkillCategory = "coverage"
	SkillPassRush   SkillCategory = "pass_rush"
	SkillRunDefense SkillCategory = "run_defense"
)

// AllSkillCategories lists every valid skill category
var AllSkillCategories = []SkillCategory{
	SkillSpeed, SkillAcceleration, SkillAgility, SkillStrength,
	SkillHands, SkillRouteRunning, SkillAwareness,
	SkillPassBlocking, SkillRunBlocking,
	SkillTackle, SkillCoverage, SkillPassRush, SkillRunDefense,
}

var validSkills = func() map[SkillCategory]bool {
	m := make(map[SkillCategory]bool, len(AllSkillCategories))
	for _, s := range AllSkillCategories {
		m[s] = true
	}
	return m
}()

// ParseSkillCategory validates a raw skill name from external input
func ParseSkillCategory(raw string) (SkillCategory, error) {
	s := SkillCategory(raw)
	if !validSkills[s] {
		return "", fmt.Errorf("unknown skill category: %q", raw)
	}
	return s, nil
}

// Position represents a player position tag
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
	PositionOL Position = "OL"
	PositionDL Position = "DL"
	PositionLB Position = "LB"
	PositionCB Position = "CB"
	PositionS  Position = "S"
	PositionK  Position = "K"
	PositionP  Position = "P"
)

// IsDefensive reports whether the position belongs to the defensive family
// used by the performance analyzer.
func (p Position) IsDefensive() bool {
	switch p {
	case PositionCB, PositionS, PositionLB, PositionDL:
		return true
	}
	return false
}

// positionSkillWeights maps each position to the skills that drive its
// overall rating. Weights for a position always sum to 1.0.
var positionSkillWeights = map[Position]map[SkillCategory]float64{
	PositionQB: {
		SkillHands:     0.3,
		SkillAwareness: 0.4,
		SkillSpeed:     0.1,
		SkillAgility:   0.2,
	},
	PositionRB: {
		SkillSpeed:    0.3,
		SkillAgility:  0.3,
		SkillStrength: 0.3,
		SkillHands:    0.1,
	},
	PositionWR: {
		SkillHands:        0.4,
		SkillRouteRunning: 0.3,
		SkillSpeed:        0.2,
		SkillAgility:      0.1,
	},
	PositionCB: {
		SkillCoverage: 0.4,
		SkillSpeed:    0.3,
		SkillAgility:  0.2,
		SkillTackle:   0.1,
	},
	PositionLB: {
		SkillTackle:     0.4,
		SkillCoverage:   0.2,
		SkillRunDefense: 0.3,
		SkillStrength:   0.1,
	},
}

// defaultSkillWeights is used for positions without a dedicated table.
var defaultSkillWeights = map[SkillCategory]float64{
	SkillSpeed:     0.25,
	SkillStrength:  0.25,
	SkillAgility:   0.25,
	SkillAwareness: 0.25,
}

// SkillWeights returns the overall-rating weights for a position.
func SkillWeights(position Position) map[SkillCategory]float64 {
	if w, ok := positionSkillWeights[position]; ok {
		return w
	}
	return defaultSkillWeights
}

// Rating bounds for every skill and overall rating.
const (
	MinRating = 30
	MaxRating = 99
)

// ClampRating bounds a rating value to the valid range.
func ClampRating(value int) int {
	if value < MinRating {
		return MinRating
	}
	if value > MaxRating {
		return MaxRating
	}
	return value
}
