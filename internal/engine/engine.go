package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fieldsim/gridiron/internal/analyzer"
	"github.com/fieldsim/gridiron/internal/models"
	"github.com/fieldsim/gridiron/internal/rating"
	"github.com/fieldsim/gridiron/pkg/logger"
)

// Sentinel errors reported to callers. These are deterministic logic
// errors; the engine never retries or falls back silently.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player already registered")
	ErrMalformedImport = errors.New("malformed season import")
)

// Engine owns the per-season player registry and coordinates the
// performance analyzer and rating pipeline. It assumes exactly one logical
// writer per season; callers needing cross-goroutine access must serialize
// externally.
type Engine struct {
	season   int
	players  map[string]*models.PlayerSeasonProfile
	order    []string // player keys in registration order, leader tie-break
	pipeline *rating.Pipeline
	log      *logrus.Entry
}

// NewEngine creates a season rating engine for the given year. formWindow
// configures the recent-form trend window; pass 0 for the default.
func NewEngine(season, formWindow int) *Engine {
	return &Engine{
		season:   season,
		players:  make(map[string]*models.PlayerSeasonProfile),
		order:    make([]string, 0),
		pipeline: rating.NewPipeline(formWindow),
		log:      logger.WithComponent("season_engine").WithField("season", season),
	}
}

// Season returns the engine's season year.
func (e *Engine) Season() int {
	return e.season
}

// PlayerKey derives the registry key for a player from name and team.
func PlayerKey(name, team string) string {
	return strings.ReplaceAll(name+"_"+team, " ", "_")
}

// AddPlayer registers a player for the season with an empty game log and
// current ratings seeded from the base profile. Registering the same
// name+team twice fails with ErrDuplicatePlayer.
func (e *Engine) AddPlayer(profile models.PlayerProfile, team string) (*models.PlayerSeasonProfile, error) {
	key := PlayerKey(profile.Name, team)
	if _, exists := e.players[key]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, key)
	}

	seasonProfile := models.NewPlayerSeasonProfile(profile, e.season, team)
	e.players[key] = seasonProfile
	e.order = append(e.order, key)

	logger.WithPlayerContext(key, team).WithFields(logrus.Fields{
		"position": profile.Position,
		"overall":  seasonProfile.StartingOverall(),
	}).Info("Player registered for season")

	return seasonProfile, nil
}

// GetPlayer returns the season profile for a player key.
func (e *Engine) GetPlayer(playerKey string) (*models.PlayerSeasonProfile, error) {
	player, ok := e.players[playerKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerKey)
	}
	return player, nil
}

// PlayerCount returns the number of registered players.
func (e *Engine) PlayerCount() int {
	return len(e.players)
}

// RecordGameStats records one game for a player: the analyzer derives
// bounded per-skill deltas from that game alone and the rating pipeline
// applies them, appends the game to the log and updates trend state.
// Unknown player keys fail with ErrPlayerNotFound and leave the registry
// unchanged.
func (e *Engine) RecordGameStats(playerKey string, game models.PlayerGameStats) error {
	player, ok := e.players[playerKey]
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerKey)
	}

	deltas := analyzer.ComputeDeltas(player.Profile.Position, game)
	e.pipeline.ApplyGame(player, game, deltas)

	logger.WithPlayerContext(playerKey, player.Team).WithFields(logrus.Fields{
		"game_id": game.GameID,
		"week":    game.Week,
		"grade":   game.Grade,
	}).Debug("Recorded game stats")

	return nil
}

// SkillLine reports one skill's season trajectory in a rating summary.
type SkillLine struct {
	Original int `json:"original"`
	Current  int `json:"current"`
	Change   int `json:"change"`
	Peak     int `json:"peak"`
	Lowest   int `json:"lowest"`
}

// RatingSummary is the engine's read model for one player, consumed by
// roster management and the HTTP layer.
type RatingSummary struct {
	PlayerName      string                             `json:"player_name"`
	Position        models.Position                    `json:"position"`
	Team            string                             `json:"team"`
	GamesPlayed     int                                `json:"games_played"`
	StartingOverall int                                `json:"starting_overall"`
	CurrentOverall  int                                `json:"current_overall"`
	OverallChange   int                                `json:"overall_change"`
	SkillRatings    map[models.SkillCategory]SkillLine `json:"skill_ratings"`
	RecentForm      float64                            `json:"recent_form"`
	Confidence      float64                            `json:"confidence"`
	SeasonGrade     float64                            `json:"season_grade"`
	SeasonTotals    map[models.StatCategory]float64    `json:"season_totals,omitempty"`
}

// GetPlayerRatingSummary builds the full rating summary for a player key.
func (e *Engine) GetPlayerRatingSummary(playerKey string) (*RatingSummary, error) {
	player, ok := e.players[playerKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerKey)
	}

	skillRatings := make(map[models.SkillCategory]SkillLine, len(player.CurrentRatings))
	for skill := range player.CurrentRatings {
		original := player.Profile.GetSkill(skill)
		current := player.CurrentSkill(skill)
		skillRatings[skill] = SkillLine{
			Original: original,
			Current:  current,
			Change:   current - original,
			Peak:     player.PeakRatings[skill],
			Lowest:   player.LowestRatings[skill],
		}
	}

	summary := &RatingSummary{
		PlayerName:      player.Profile.Name,
		Position:        player.Profile.Position,
		Team:            player.Team,
		GamesPlayed:     player.GamesPlayed(),
		StartingOverall: player.StartingOverall(),
		CurrentOverall:  player.OverallRating(),
		OverallChange:   player.OverallChange(),
		SkillRatings:    skillRatings,
		RecentForm:      player.RecentForm,
		Confidence:      player.Confidence,
	}
	if player.SeasonStats != nil {
		summary.SeasonGrade = player.SeasonStats.SeasonGrade
		summary.SeasonTotals = player.SeasonStats.TotalStats
	}

	return summary, nil
}

// CurrentRatings exposes a copy of a player's current per-skill ratings
// for read-only consumers.
func (e *Engine) CurrentRatings(playerKey string) (map[models.SkillCategory]int, error) {
	player, ok := e.players[playerKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerKey)
	}
	ratings := make(map[models.SkillCategory]int, len(player.CurrentRatings))
	for skill, value := range player.CurrentRatings {
		ratings[skill] = value
	}
	return ratings, nil
}
