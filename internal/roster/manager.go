package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fieldsim/gridiron/internal/engine"
	"github.com/fieldsim/gridiron/internal/models"
	"github.com/fieldsim/gridiron/pkg/logger"
)

// leagueTeams maps team codes to franchise names.
var leagueTeams = map[string]string{
	"ARI": "Arizona Cardinals", "ATL": "Atlanta Falcons", "BAL": "Baltimore Ravens",
	"BUF": "Buffalo Bills", "CAR": "Carolina Panthers", "CHI": "Chicago Bears",
	"CIN": "Cincinnati Bengals", "CLE": "Cleveland Browns", "DAL": "Dallas Cowboys",
	"DEN": "Denver Broncos", "DET": "Detroit Lions", "GB": "Green Bay Packers",
	"HOU": "Houston Texans", "IND": "Indianapolis Colts", "JAX": "Jacksonville Jaguars",
	"KC": "Kansas City Chiefs", "LAC": "Los Angeles Chargers", "LAR": "Los Angeles Rams",
	"LV": "Las Vegas Raiders", "MIA": "Miami Dolphins", "MIN": "Minnesota Vikings",
	"NE": "New England Patriots", "NO": "New Orleans Saints", "NYG": "New York Giants",
	"NYJ": "New York Jets", "PHI": "Philadelphia Eagles", "PIT": "Pittsburgh Steelers",
	"SEA": "Seattle Seahawks", "SF": "San Francisco 49ers", "TB": "Tampa Bay Buccaneers",
	"TEN": "Tennessee Titans", "WAS": "Washington Commanders",
}

// Manager manages rosters for every team in the league plus the free agent
// pool. Rating data is read from the season engine; the manager never
// writes ratings back.
type Manager struct {
	season     int
	teams      map[string]*TeamRoster
	freeAgents []string
	log        *logrus.Entry
}

// NewManager creates a roster manager with an empty roster per league team.
func NewManager(season int) *Manager {
	m := &Manager{
		season:     season,
		teams:      make(map[string]*TeamRoster, len(leagueTeams)),
		freeAgents: make([]string, 0),
		log:        logger.WithComponent("roster_manager").WithField("season", season),
	}
	for code, name := range leagueTeams {
		m.teams[code] = NewTeamRoster(code, name)
	}
	return m
}

// TeamRoster returns the roster for a team code.
func (m *Manager) TeamRoster(teamCode string) (*TeamRoster, error) {
	roster, ok := m.teams[strings.ToUpper(teamCode)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, teamCode)
	}
	return roster, nil
}

// AddFreeAgent adds a player key to the free agent pool. Pooling a key
// already in the pool is a no-op.
func (m *Manager) AddFreeAgent(playerKey string) {
	if !containsKey(m.freeAgents, playerKey) {
		m.freeAgents = append(m.freeAgents, playerKey)
	}
}

// FreeAgents returns a copy of the free agent pool in pooling order.
func (m *Manager) FreeAgents() []string {
	return append([]string(nil), m.freeAgents...)
}

// IsFreeAgent reports whether a player key is in the free agent pool.
func (m *Manager) IsFreeAgent(playerKey string) bool {
	return containsKey(m.freeAgents, playerKey)
}

// TradePlayer moves a player between teams, enforcing no-trade clauses and
// the receiving team's cap space.
func (m *Manager) TradePlayer(playerKey, fromTeam, toTeam string) error {
	from, err := m.TeamRoster(fromTeam)
	if err != nil {
		return err
	}
	to, err := m.TeamRoster(toTeam)
	if err != nil {
		return err
	}

	contract, ok := from.Contracts[playerKey]
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrNotOnRoster, playerKey, fromTeam)
	}
	if contract.NoTradeClause {
		return fmt.Errorf("%w: %s", ErrNoTradeClause, playerKey)
	}
	if to.AvailableCap < contract.CapHit {
		return fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientCap, toTeam, contract.CapHit, to.AvailableCap)
	}

	if _, err := from.ReleasePlayer(playerKey); err != nil {
		return err
	}
	if err := to.AddPlayer(playerKey, contract, SpotActive); err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{
		"player_key": playerKey,
		"from":       fromTeam,
		"to":         toTeam,
		"cap_hit":    contract.CapHit,
	}).Info("Trade completed")
	return nil
}

// SignFreeAgent signs a pooled free agent to a team.
func (m *Manager) SignFreeAgent(playerKey, teamCode string, contract Contract) error {
	if !m.IsFreeAgent(playerKey) {
		return fmt.Errorf("%w: %s", ErrNotFreeAgent, playerKey)
	}
	roster, err := m.TeamRoster(teamCode)
	if err != nil {
		return err
	}
	if roster.AvailableCap < contract.CapHit {
		return fmt.Errorf("%w: %s needs %d, has %d", ErrInsufficientCap, teamCode, contract.CapHit, roster.AvailableCap)
	}
	if err := roster.AddPlayer(playerKey, contract, SpotActive); err != nil {
		return err
	}
	m.freeAgents = removeKey(m.freeAgents, playerKey)

	m.log.WithFields(logrus.Fields{
		"player_key": playerKey,
		"team":       teamCode,
		"cap_hit":    contract.CapHit,
	}).Info("Free agent signed")
	return nil
}

// ReleaseToFreeAgency releases a player from a team into the pool.
func (m *Manager) ReleaseToFreeAgency(playerKey, teamCode string) error {
	roster, err := m.TeamRoster(teamCode)
	if err != nil {
		return err
	}
	if _, err := roster.ReleasePlayer(playerKey); err != nil {
		return err
	}
	m.freeAgents = append(m.freeAgents, playerKey)

	m.log.WithFields(logrus.Fields{
		"player_key": playerKey,
		"team":       teamCode,
	}).Info("Player released to free agency")
	return nil
}

// CapSummary reports a team's salary cap position.
type CapSummary struct {
	TotalCap     int     `json:"total_cap"`
	Used         int     `json:"used"`
	Available    int     `json:"available"`
	UsagePercent float64 `json:"usage_percent"`
}

// PositionGroup reports current rating strength for one position group.
type PositionGroup struct {
	Position       models.Position `json:"position"`
	PlayerCount    int             `json:"player_count"`
	AverageOverall float64         `json:"average_overall"`
}

// TopPerformer is a roster player ranked by season-to-date overall change.
type TopPerformer struct {
	PlayerKey     string `json:"player_key"`
	PlayerName    string `json:"player_name"`
	OverallChange int    `json:"overall_change"`
}

// Analysis is a team-level view joining roster state with engine ratings.
type Analysis struct {
	Team           string          `json:"team"`
	RosterSize     int             `json:"roster_size"`
	Cap            CapSummary      `json:"salary_cap"`
	PositionGroups []PositionGroup `json:"position_groups"`
	TopPerformers  []TopPerformer  `json:"top_performers"`
}

// AnalyzeTeam builds a roster analysis for a team using rating summaries
// from the season engine. Players without a registered season profile are
// skipped.
func (m *Manager) AnalyzeTeam(teamCode string, seasonEngine *engine.Engine) (*Analysis, error) {
	roster, err := m.TeamRoster(teamCode)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Team:       fmt.Sprintf("%s (%s)", roster.TeamName, roster.TeamCode),
		RosterSize: len(roster.ActiveRoster),
		Cap: CapSummary{
			TotalCap:     roster.SalaryCap,
			Used:         roster.TotalCapUsed,
			Available:    roster.AvailableCap,
			UsagePercent: float64(roster.TotalCapUsed) / float64(roster.SalaryCap) * 100,
		},
	}

	type groupAccum struct {
		count int
		total int
	}
	groups := make(map[models.Position]*groupAccum)
	performers := make([]TopPerformer, 0, len(roster.ActiveRoster))

	for _, playerKey := range roster.ActiveRoster {
		summary, err := seasonEngine.GetPlayerRatingSummary(playerKey)
		if err != nil {
			m.log.WithField("player_key", playerKey).Debug("No season profile for roster player, skipping")
			continue
		}

		g, ok := groups[summary.Position]
		if !ok {
			g = &groupAccum{}
			groups[summary.Position] = g
		}
		g.count++
		g.total += summary.CurrentOverall

		performers = append(performers, TopPerformer{
			PlayerKey:     playerKey,
			PlayerName:    summary.PlayerName,
			OverallChange: summary.OverallChange,
		})
	}

	for position, g := range groups {
		analysis.PositionGroups = append(analysis.PositionGroups, PositionGroup{
			Position:       position,
			PlayerCount:    g.count,
			AverageOverall: float64(g.total) / float64(g.count),
		})
	}
	sort.Slice(analysis.PositionGroups, func(i, j int) bool {
		return analysis.PositionGroups[i].Position < analysis.PositionGroups[j].Position
	})

	sort.SliceStable(performers, func(i, j int) bool {
		return performers[i].OverallChange > performers[j].OverallChange
	})
	if len(performers) > 5 {
		performers = performers[:5]
	}
	analysis.TopPerformers = performers

	return analysis, nil
}
