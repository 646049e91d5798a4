package models

import "math"

// RatingTier buckets overall ratings for display and roster analysis
type RatingTier string

const (
	TierElite        RatingTier = "elite"         // 90+ overall
	TierGood         RatingTier = "good"          // 80-89 overall
	TierAverage      RatingTier = "average"       // 70-79 overall
	TierBelowAverage RatingTier = "below_average" // 60-69 overall
	TierPoor         RatingTier = "poor"          // <60 overall
)

// PlayerProfile represents a player's identity and starting ratings.
// It is immutable for the season; in-season changes live on PlayerSeasonProfile.
type PlayerProfile struct {
	Name          string                `json:"name"`
	Position      Position              `json:"position"`
	OverallRating int                   `json:"overall_rating"`
	Skills        map[SkillCategory]int `json:"skills"`
	Traits        []string              `json:"traits,omitempty"`
}

// GetSkill returns a specific skill rating, defaulting to overall if not rated.
func (p PlayerProfile) GetSkill(skill SkillCategory) int {
	if v, ok := p.Skills[skill]; ok {
		return v
	}
	return p.OverallRating
}

// Tier returns the overall rating tier.
func (p PlayerProfile) Tier() RatingTier {
	switch {
	case p.OverallRating >= 90:
		return TierElite
	case p.OverallRating >= 80:
		return TierGood
	case p.OverallRating >= 70:
		return TierAverage
	case p.OverallRating >= 60:
		return TierBelowAverage
	default:
		return TierPoor
	}
}

// PlayerGameStats represents statistics for a single game. Records are
// immutable once appended to a player's game log.
type PlayerGameStats struct {
	GameID   string                   `json:"game_id"`
	Week     int                      `json:"week"`
	Opponent string                   `json:"opponent"`
	Stats    map[StatCategory]float64 `json:"stats"`
	Grade    float64                  `json:"grade"`
	KeyPlays []string                 `json:"key_plays,omitempty"`
}

// GetStat returns a specific stat, defaulting to 0 when absent.
func (g PlayerGameStats) GetStat(category StatCategory) float64 {
	return g.Stats[category]
}

// SeasonStats represents aggregated season statistics for one player
type SeasonStats struct {
	Season          int                      `json:"season"`
	GamesPlayed     int                      `json:"games_played"`
	TotalStats      map[StatCategory]float64 `json:"total_stats"`
	PerGameAverages map[StatCategory]float64 `json:"per_game_averages"`
	SeasonGrade     float64                  `json:"season_grade"`
}

// PlayerSeasonProfile is the mutable aggregate root for one player's season:
// base profile, append-only game log, current ratings, watermarks and trends.
// CurrentRatings is mutated only by the rating pipeline.
type PlayerSeasonProfile struct {
	Profile PlayerProfile `json:"profile"`
	Season  int           `json:"season"`
	Team    string        `json:"team"`

	Games       []PlayerGameStats `json:"games"`
	SeasonStats *SeasonStats      `json:"season_stats,omitempty"`

	CurrentRatings map[SkillCategory]int `json:"current_ratings"`
	PeakRatings    map[SkillCategory]int `json:"peak_ratings"`
	LowestRatings  map[SkillCategory]int `json:"lowest_ratings"`

	RecentForm float64 `json:"recent_form"`
	Confidence float64 `json:"confidence"`

	// Contract/roster info, read by roster management only
	Salary        int  `json:"salary"`
	ContractYears int  `json:"contract_years"`
	RookieYear    bool `json:"rookie_year"`
}

// NewPlayerSeasonProfile creates a season profile seeded from the base
// profile: current ratings copy the starting skills, watermarks start at
// the current values.
func NewPlayerSeasonProfile(profile PlayerProfile, season int, team string) *PlayerSeasonProfile {
	current := make(map[SkillCategory]int, len(profile.Skills))
	peak := make(map[SkillCategory]int, len(profile.Skills))
	lowest := make(map[SkillCategory]int, len(profile.Skills))
	for skill, rating := range profile.Skills {
		current[skill] = rating
		peak[skill] = rating
		lowest[skill] = rating
	}

	return &PlayerSeasonProfile{
		Profile:        profile,
		Season:         season,
		Team:           team,
		Games:          make([]PlayerGameStats, 0),
		CurrentRatings: current,
		PeakRatings:    peak,
		LowestRatings:  lowest,
		Confidence:     50.0,
		ContractYears:  1,
	}
}

// GamesPlayed returns the length of the game log.
func (p *PlayerSeasonProfile) GamesPlayed() int {
	return len(p.Games)
}

// CurrentSkill returns the current rating for a skill, falling back to the
// base profile when the skill has never been adjusted.
func (p *PlayerSeasonProfile) CurrentSkill(skill SkillCategory) int {
	if v, ok := p.CurrentRatings[skill]; ok {
		return v
	}
	return p.Profile.GetSkill(skill)
}

// OverallRating computes the position-weighted average of current skill
// ratings, rounded to the nearest integer. The overall is always derived,
// never stored, so current skills and overall cannot drift apart.
func (p *PlayerSeasonProfile) OverallRating() int {
	return weightedOverall(p.Profile.Position, p.CurrentSkill)
}

// StartingOverall computes the derived overall from the base profile's
// starting skills using the same weights.
func (p *PlayerSeasonProfile) StartingOverall() int {
	return weightedOverall(p.Profile.Position, p.Profile.GetSkill)
}

// OverallChange returns the season-to-date overall rating delta.
func (p *PlayerSeasonProfile) OverallChange() int {
	return p.OverallRating() - p.StartingOverall()
}

func weightedOverall(position Position, skillAt func(SkillCategory) int) int {
	weights := SkillWeights(position)
	sum := 0.0
	for skill, weight := range weights {
		sum += float64(skillAt(skill)) * weight
	}
	return ClampRating(int(math.Round(sum)))
}
