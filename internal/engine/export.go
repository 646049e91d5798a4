package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fieldsim/gridiron/internal/models"
)

// seasonDocument is the on-disk shape of a full season export. Rating and
// stat maps use raw string keys so import can validate every category name
// before anything touches the registry.
type seasonDocument struct {
	Season  int                       `json:"season"`
	Order   []string                  `json:"registration_order"`
	Players map[string]playerDocument `json:"players"`
}

type playerDocument struct {
	Profile        profileDocument `json:"profile"`
	Team           string          `json:"team"`
	Games          []gameDocument  `json:"games"`
	CurrentRatings map[string]int  `json:"current_ratings"`
	PeakRatings    map[string]int  `json:"peak_ratings"`
	LowestRatings  map[string]int  `json:"lowest_ratings"`
	RecentForm     float64         `json:"recent_form"`
	Confidence     float64         `json:"confidence"`
	Salary         int             `json:"salary"`
	ContractYears  int             `json:"contract_years"`
	RookieYear     bool            `json:"rookie_year"`
}

type profileDocument struct {
	Name          string         `json:"name"`
	Position      string         `json:"position"`
	OverallRating int            `json:"overall_rating"`
	Skills        map[string]int `json:"skills"`
	Traits        []string       `json:"traits,omitempty"`
}

type gameDocument struct {
	GameID   string             `json:"game_id"`
	Week     int                `json:"week"`
	Opponent string             `json:"opponent"`
	Stats    map[string]float64 `json:"stats"`
	Grade    float64            `json:"grade"`
	KeyPlays []string           `json:"key_plays,omitempty"`
}

// ExportSeasonData serializes the full registry to a JSON file. The export
// carries everything needed for an identical re-import: base profiles, game
// logs, rating maps, watermarks, trend state and registration order.
func (e *Engine) ExportSeasonData(path string) error {
	doc := seasonDocument{
		Season:  e.season,
		Order:   append([]string(nil), e.order...),
		Players: make(map[string]playerDocument, len(e.players)),
	}

	for key, player := range e.players {
		doc.Players[key] = playerDocument{
			Profile: profileDocument{
				Name:          player.Profile.Name,
				Position:      string(player.Profile.Position),
				OverallRating: player.Profile.OverallRating,
				Skills:        skillMapToStrings(player.Profile.Skills),
				Traits:        player.Profile.Traits,
			},
			Team:           player.Team,
			Games:          gamesToDocuments(player.Games),
			CurrentRatings: skillMapToStrings(player.CurrentRatings),
			PeakRatings:    skillMapToStrings(player.PeakRatings),
			LowestRatings:  skillMapToStrings(player.LowestRatings),
			RecentForm:     player.RecentForm,
			Confidence:     player.Confidence,
			Salary:         player.Salary,
			ContractYears:  player.ContractYears,
			RookieYear:     player.RookieYear,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal season data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write season data: %w", err)
	}

	e.log.WithField("path", path).WithField("players", len(e.players)).Info("Season data exported")
	return nil
}

// ImportSeasonData deserializes a season export and replaces the registry
// wholesale. Any missing required field or unknown skill/stat category
// rejects the whole import with ErrMalformedImport; the registry is only
// swapped once the entire file has validated.
func (e *Engine) ImportSeasonData(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read season data: %w", err)
	}

	var doc seasonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	players := make(map[string]*models.PlayerSeasonProfile, len(doc.Players))
	for key, pd := range doc.Players {
		player, err := e.buildPlayer(key, pd, doc.Season)
		if err != nil {
			return err
		}
		players[key] = player
	}

	// Length, membership and uniqueness together make the order a
	// bijection onto the player set.
	order := doc.Order
	if len(order) != len(players) {
		return fmt.Errorf("%w: registration order lists %d players, document has %d",
			ErrMalformedImport, len(order), len(players))
	}
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		if _, ok := players[key]; !ok {
			return fmt.Errorf("%w: registration order references unknown player %q", ErrMalformedImport, key)
		}
		if seen[key] {
			return fmt.Errorf("%w: registration order lists player %q twice", ErrMalformedImport, key)
		}
		seen[key] = true
	}

	e.season = doc.Season
	e.players = players
	e.order = order

	e.log.WithField("path", path).WithField("players", len(players)).Info("Season data imported")
	return nil
}

func (e *Engine) buildPlayer(key string, pd playerDocument, season int) (*models.PlayerSeasonProfile, error) {
	if pd.Profile.Name == "" {
		return nil, fmt.Errorf("%w: player %q missing profile name", ErrMalformedImport, key)
	}
	if pd.Profile.Position == "" {
		return nil, fmt.Errorf("%w: player %q missing position", ErrMalformedImport, key)
	}
	if pd.Team == "" {
		return nil, fmt.Errorf("%w: player %q missing team", ErrMalformedImport, key)
	}

	skills, err := parseSkillMap(pd.Profile.Skills)
	if err != nil {
		return nil, fmt.Errorf("%w: player %q profile: %v", ErrMalformedImport, key, err)
	}
	current, err := parseSkillMap(pd.CurrentRatings)
	if err != nil {
		return nil, fmt.Errorf("%w: player %q current ratings: %v", ErrMalformedImport, key, err)
	}
	peak, err := parseSkillMap(pd.PeakRatings)
	if err != nil {
		return nil, fmt.Errorf("%w: player %q peak ratings: %v", ErrMalformedImport, key, err)
	}
	lowest, err := parseSkillMap(pd.LowestRatings)
	if err != nil {
		return nil, fmt.Errorf("%w: player %q lowest ratings: %v", ErrMalformedImport, key, err)
	}

	games := make([]models.PlayerGameStats, 0, len(pd.Games))
	for i, gd := range pd.Games {
		stats := make(map[models.StatCategory]float64, len(gd.Stats))
		for raw, value := range gd.Stats {
			category, err := models.ParseStatCategory(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: player %q game %d: %v", ErrMalformedImport, key, i, err)
			}
			stats[category] = value
		}
		games = append(games, models.PlayerGameStats{
			GameID:   gd.GameID,
			Week:     gd.Week,
			Opponent: gd.Opponent,
			Stats:    stats,
			Grade:    gd.Grade,
			KeyPlays: gd.KeyPlays,
		})
	}

	player := &models.PlayerSeasonProfile{
		Profile: models.PlayerProfile{
			Name:          pd.Profile.Name,
			Position:      models.Position(pd.Profile.Position),
			OverallRating: pd.Profile.OverallRating,
			Skills:        skills,
			Traits:        pd.Profile.Traits,
		},
		Season:         season,
		Team:           pd.Team,
		Games:          games,
		CurrentRatings: current,
		PeakRatings:    peak,
		LowestRatings:  lowest,
		RecentForm:     pd.RecentForm,
		Confidence:     pd.Confidence,
		Salary:         pd.Salary,
		ContractYears:  pd.ContractYears,
		RookieYear:     pd.RookieYear,
	}

	// Season totals, averages and grade are derived from the game log.
	e.rebuildSeasonStats(player)

	return player, nil
}

func (e *Engine) rebuildSeasonStats(player *models.PlayerSeasonProfile) {
	if len(player.Games) == 0 {
		return
	}
	totals := make(map[models.StatCategory]float64)
	gradeSum := 0.0
	for _, game := range player.Games {
		for category, value := range game.Stats {
			totals[category] += value
		}
		gradeSum += game.Grade
	}
	gamesPlayed := len(player.Games)
	averages := make(map[models.StatCategory]float64, len(totals))
	for category, total := range totals {
		averages[category] = total / float64(gamesPlayed)
	}
	player.SeasonStats = &models.SeasonStats{
		Season:          player.Season,
		GamesPlayed:     gamesPlayed,
		TotalStats:      totals,
		PerGameAverages: averages,
		SeasonGrade:     gradeSum / float64(gamesPlayed),
	}
}

func skillMapToStrings(m map[models.SkillCategory]int) map[string]int {
	out := make(map[string]int, len(m))
	for skill, value := range m {
		out[string(skill)] = value
	}
	return out
}

func parseSkillMap(m map[string]int) (map[models.SkillCategory]int, error) {
	out := make(map[models.SkillCategory]int, len(m))
	for raw, value := range m {
		skill, err := models.ParseSkillCategory(raw)
		if err != nil {
			return nil, err
		}
		out[skill] = value
	}
	return out, nil
}

func gamesToDocuments(games []models.PlayerGameStats) []gameDocument {
	out := make([]gameDocument, 0, len(games))
	for _, game := range games {
		stats := make(map[string]float64, len(game.Stats))
		for category, value := range game.Stats {
			stats[string(category)] = value
		}
		out = append(out, gameDocument{
			GameID:   game.GameID,
			Week:     game.Week,
			Opponent: game.Opponent,
			Stats:    stats,
			Grade:    game.Grade,
			KeyPlays: game.KeyPlays,
		})
	}
	return out
}
