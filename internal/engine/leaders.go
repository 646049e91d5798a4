package engine

import (
	"sort"

	"github.com/fieldsim/gridiron/internal/models"
)

// LeaderEntry is one row of a league leaderboard.
type LeaderEntry struct {
	PlayerKey  string  `json:"player_key"`
	PlayerName string  `json:"player_name"`
	Team       string  `json:"team"`
	Value      float64 `json:"value"`
}

// MoverEntry is one row of a risers/fallers ranking.
type MoverEntry struct {
	PlayerKey      string `json:"player_key"`
	PlayerName     string `json:"player_name"`
	Team           string `json:"team"`
	CurrentOverall int    `json:"current_overall"`
	OverallChange  int    `json:"overall_change"`
}

// GetLeagueLeaders ranks players by the summed value of a stat category
// across their game log, restricted to players with at least minGames
// recorded. The ranking is descending; ties keep registration order. It is
// computed on demand from current state; callers needing repeated queries
// should cache externally.
func (e *Engine) GetLeagueLeaders(category models.StatCategory, minGames int) []LeaderEntry {
	leaders := make([]LeaderEntry, 0, len(e.order))
	for _, key := range e.order {
		player := e.players[key]
		if player.GamesPlayed() < minGames {
			continue
		}

		total := 0.0
		for _, game := range player.Games {
			total += game.GetStat(category)
		}
		leaders = append(leaders, LeaderEntry{
			PlayerKey:  key,
			PlayerName: player.Profile.Name,
			Team:       player.Team,
			Value:      total,
		})
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].Value > leaders[j].Value
	})
	return leaders
}

// GetBiggestRisers ranks players by overall rating gained since season
// start, descending.
func (e *Engine) GetBiggestRisers() []MoverEntry {
	movers := e.collectMovers()
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].OverallChange > movers[j].OverallChange
	})
	return movers
}

// GetBiggestFallers ranks players by overall rating lost since season
// start, ascending.
func (e *Engine) GetBiggestFallers() []MoverEntry {
	movers := e.collectMovers()
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].OverallChange < movers[j].OverallChange
	})
	return movers
}

func (e *Engine) collectMovers() []MoverEntry {
	movers := make([]MoverEntry, 0, len(e.order))
	for _, key := range e.order {
		player := e.players[key]
		movers = append(movers, MoverEntry{
			PlayerKey:      key,
			PlayerName:     player.Profile.Name,
			Team:           player.Team,
			CurrentOverall: player.OverallRating(),
			OverallChange:  player.OverallChange(),
		})
	}
	return movers
}
