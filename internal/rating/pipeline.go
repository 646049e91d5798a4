package rating

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/fieldsim/gridiron/internal/models"
	"github.com/fieldsim/gridiron/pkg/logger"
)

// DefaultFormWindow is the number of recent games used for the form trend.
const DefaultFormWindow = 4

// Confidence drift thresholds, applied after each recorded game.
const (
	formHotThreshold  = 75.0
	formColdThreshold = 50.0
	confidenceGain    = 5.0
	confidenceLoss    = 3.0
)

// Pipeline applies per-game rating deltas to a player's season profile:
// clamped skill updates, peak/low watermarks, season stat totals and the
// recent-form and confidence trend state. The overall rating is never
// touched here; it is derived on read from current skills.
type Pipeline struct {
	formWindow int
}

// NewPipeline creates a rating pipeline. A non-positive formWindow falls
// back to the default window of 4 games.
func NewPipeline(formWindow int) *Pipeline {
	if formWindow <= 0 {
		formWindow = DefaultFormWindow
	}
	return &Pipeline{formWindow: formWindow}
}

// FormWindow returns the configured recent-form window.
func (p *Pipeline) FormWindow() int {
	return p.formWindow
}

// ApplyGame appends the game to the player's log and applies the delta
// mapping: for every skill present, the new value is the clamped sum, and
// the peak/low watermarks widen to cover it. Season totals and trend state
// are recomputed from the updated log.
func (p *Pipeline) ApplyGame(player *models.PlayerSeasonProfile, game models.PlayerGameStats, deltas map[models.SkillCategory]int) {
	player.Games = append(player.Games, game)

	for skill, delta := range deltas {
		current := player.CurrentSkill(skill)
		updated := models.ClampRating(current + delta)
		player.CurrentRatings[skill] = updated

		if peak, ok := player.PeakRatings[skill]; !ok || updated > peak {
			player.PeakRatings[skill] = updated
		}
		if low, ok := player.LowestRatings[skill]; !ok || updated < low {
			player.LowestRatings[skill] = updated
		}
	}

	p.updateSeasonStats(player)
	p.updateTrends(player)

	logger.WithSeasonContext(player.Season, game.Week).WithFields(logrus.Fields{
		"player":       player.Profile.Name,
		"skills_moved": len(deltas),
		"overall":      player.OverallRating(),
		"recent_form":  player.RecentForm,
	}).Debug("Applied game to rating pipeline")
}

// updateSeasonStats recomputes season totals, per-game averages and the
// season grade from the full game log.
func (p *Pipeline) updateSeasonStats(player *models.PlayerSeasonProfile) {
	if player.SeasonStats == nil {
		player.SeasonStats = &models.SeasonStats{Season: player.Season}
	}

	totals := make(map[models.StatCategory]float64)
	grades := make([]float64, 0, len(player.Games))
	for _, game := range player.Games {
		for category, value := range game.Stats {
			totals[category] += value
		}
		grades = append(grades, game.Grade)
	}

	averages := make(map[models.StatCategory]float64, len(totals))
	gamesPlayed := len(player.Games)
	if gamesPlayed > 0 {
		for category, total := range totals {
			averages[category] = total / float64(gamesPlayed)
		}
	}

	player.SeasonStats.GamesPlayed = gamesPlayed
	player.SeasonStats.TotalStats = totals
	player.SeasonStats.PerGameAverages = averages
	if len(grades) > 0 {
		player.SeasonStats.SeasonGrade = stat.Mean(grades, nil)
	}
}

// updateTrends recomputes recent form over the configured window and
// drifts confidence toward the player's current form.
func (p *Pipeline) updateTrends(player *models.PlayerSeasonProfile) {
	if len(player.Games) == 0 {
		return
	}

	start := len(player.Games) - p.formWindow
	if start < 0 {
		start = 0
	}
	recent := make([]float64, 0, p.formWindow)
	for _, game := range player.Games[start:] {
		recent = append(recent, game.Grade)
	}
	player.RecentForm = stat.Mean(recent, nil)

	if player.RecentForm > formHotThreshold {
		player.Confidence += confidenceGain
		if player.Confidence > 100 {
			player.Confidence = 100
		}
	} else if player.RecentForm < formColdThreshold {
		player.Confidence -= confidenceLoss
		if player.Confidence < 0 {
			player.Confidence = 0
		}
	}
}
