package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsim/gridiron/internal/models"
)

func addQuarterbackWithYards(t *testing.T, eng *Engine, name, team string, perGameYards float64, games int) string {
	t.Helper()
	_, err := eng.AddPlayer(quarterbackProfile(name), team)
	require.NoError(t, err)

	key := PlayerKey(name, team)
	for week := 1; week <= games; week++ {
		err := eng.RecordGameStats(key, models.PlayerGameStats{
			GameID:   fmt.Sprintf("%s_w%d", key, week),
			Week:     week,
			Opponent: "OPP",
			Stats: map[models.StatCategory]float64{
				models.StatPassYards: perGameYards,
			},
			Grade: 75,
		})
		require.NoError(t, err)
	}
	return key
}

func TestLeagueLeadersRankByTotalDescending(t *testing.T) {
	eng := NewEngine(2024, 0)
	addQuarterbackWithYards(t, eng, "Josh Allen", "BUF", 280, 10) // 2800
	addQuarterbackWithYards(t, eng, "Joe Burrow", "CIN", 310, 10) // 3100
	addQuarterbackWithYards(t, eng, "Jared Goff", "DET", 250, 10) // 2500

	leaders := eng.GetLeagueLeaders(models.StatPassYards, 0)
	require.Len(t, leaders, 3)
	assert.Equal(t, "Joe Burrow", leaders[0].PlayerName)
	assert.Equal(t, 3100.0, leaders[0].Value)
	assert.Equal(t, "Josh Allen", leaders[1].PlayerName)
	assert.Equal(t, "Jared Goff", leaders[2].PlayerName)
}

func TestLeagueLeadersMinGamesFilter(t *testing.T) {
	eng := NewEngine(2024, 0)
	addQuarterbackWithYards(t, eng, "Josh Allen", "BUF", 250, 10)
	// Higher total but only five games played.
	addQuarterbackWithYards(t, eng, "Backup Star", "BUF", 600, 5)

	leaders := eng.GetLeagueLeaders(models.StatPassYards, 8)
	require.Len(t, leaders, 1)
	assert.Equal(t, "Josh Allen", leaders[0].PlayerName)

	// With no minimum the backup's volume wins.
	leaders = eng.GetLeagueLeaders(models.StatPassYards, 0)
	require.Len(t, leaders, 2)
	assert.Equal(t, "Backup Star", leaders[0].PlayerName)
}

func TestLeagueLeadersTieKeepsRegistrationOrder(t *testing.T) {
	eng := NewEngine(2024, 0)
	addQuarterbackWithYards(t, eng, "First Registered", "BUF", 300, 4)
	addQuarterbackWithYards(t, eng, "Second Registered", "CIN", 300, 4)
	addQuarterbackWithYards(t, eng, "Third Registered", "DET", 300, 4)

	leaders := eng.GetLeagueLeaders(models.StatPassYards, 0)
	require.Len(t, leaders, 3)
	assert.Equal(t, "First Registered", leaders[0].PlayerName)
	assert.Equal(t, "Second Registered", leaders[1].PlayerName)
	assert.Equal(t, "Third Registered", leaders[2].PlayerName)
}

func TestLeagueLeadersEmptyRegistry(t *testing.T) {
	eng := NewEngine(2024, 0)
	leaders := eng.GetLeagueLeaders(models.StatPassYards, 0)
	assert.NotNil(t, leaders)
	assert.Empty(t, leaders)
}

func TestRisersAndFallers(t *testing.T) {
	eng := NewEngine(2024, 0)

	// Riser: strong completion games push hands and awareness up.
	riser := addQuarterbackWithYards(t, eng, "Hot Hand", "KC", 0, 0)
	for week := 1; week <= 3; week++ {
		require.NoError(t, eng.RecordGameStats(riser, models.PlayerGameStats{
			GameID: fmt.Sprintf("hot_w%d", week), Week: week, Opponent: "LV",
			Stats: map[models.StatCategory]float64{
				models.StatPassAttempts:    30,
				models.StatPassCompletions: 25,
			},
			Grade: 90,
		}))
	}

	// Faller: ugly completion rate and turnovers.
	faller := addQuarterbackWithYards(t, eng, "Cold Hand", "NYJ", 0, 0)
	for week := 1; week <= 3; week++ {
		require.NoError(t, eng.RecordGameStats(faller, models.PlayerGameStats{
			GameID: fmt.Sprintf("cold_w%d", week), Week: week, Opponent: "NE",
			Stats: map[models.StatCategory]float64{
				models.StatPassAttempts:    30,
				models.StatPassCompletions: 12,
				models.StatInterceptions:   3,
			},
			Grade: 40,
		}))
	}

	// Flat: never played.
	addQuarterbackWithYards(t, eng, "Flat Line", "CHI", 0, 0)

	risers := eng.GetBiggestRisers()
	require.Len(t, risers, 3)
	assert.Equal(t, "Hot Hand", risers[0].PlayerName)
	assert.Greater(t, risers[0].OverallChange, 0)

	fallers := eng.GetBiggestFallers()
	require.Len(t, fallers, 3)
	assert.Equal(t, "Cold Hand", fallers[0].PlayerName)
	assert.Less(t, fallers[0].OverallChange, 0)
}
