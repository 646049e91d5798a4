package roster

import (
	"errors"
	"fmt"
)

// ContractType represents the kind of contract a player is signed under.
type ContractType string

const (
	ContractRookie        ContractType = "rookie"
	ContractVeteran       ContractType = "veteran"
	ContractFranchiseTag  ContractType = "franchise_tag"
	ContractTransitionTag ContractType = "transition_tag"
	ContractPracticeSquad ContractType = "practice_squad"
)

// Roster limits.
const (
	ActiveRosterLimit  = 53
	PracticeSquadLimit = 16

	// DefaultSalaryCap is the league salary cap in dollars.
	DefaultSalaryCap = 224_800_000
)

var (
	ErrRosterFull      = errors.New("active roster is full")
	ErrSquadFull       = errors.New("practice squad is full")
	ErrInsufficientCap = errors.New("insufficient cap space")
	ErrNoTradeClause   = errors.New("player has a no-trade clause")
	ErrNotOnRoster     = errors.New("player not on roster")
	ErrNotFreeAgent    = errors.New("player is not a free agent")
	ErrUnknownTeam     = errors.New("unknown team code")
)

// RosterSpot identifies which roster group a player occupies.
type RosterSpot string

const (
	SpotActive        RosterSpot = "active"
	SpotPracticeSquad RosterSpot = "practice_squad"
	SpotInjuredList   RosterSpot = "ir"
)

// Contract holds the financial terms for one player.
type Contract struct {
	TotalValue      int          `json:"total_value"`
	Years           int          `json:"years"`
	GuaranteedMoney int          `json:"guaranteed_money"`
	SigningBonus    int          `json:"signing_bonus"`
	CapHit          int          `json:"cap_hit"`
	Type            ContractType `json:"contract_type"`
	CanBeCut        bool         `json:"can_be_cut"`
	NoTradeClause   bool         `json:"no_trade_clause"`
}

// TeamRoster holds one team's roster groups, contracts and cap accounting.
type TeamRoster struct {
	TeamCode string `json:"team_code"`
	TeamName string `json:"team_name"`

	ActiveRoster   []string `json:"active_roster"`
	PracticeSquad  []string `json:"practice_squad"`
	InjuredReserve []string `json:"injured_reserve"`

	SalaryCap    int `json:"salary_cap"`
	TotalCapUsed int `json:"total_cap_used"`
	AvailableCap int `json:"available_cap"`

	Contracts map[string]Contract `json:"contracts"`

	// DepthCharts maps position to an ordered list of player keys.
	DepthCharts map[string][]string `json:"depth_charts"`
}

// NewTeamRoster creates an empty roster with the default salary cap.
func NewTeamRoster(teamCode, teamName string) *TeamRoster {
	r := &TeamRoster{
		TeamCode:    teamCode,
		TeamName:    teamName,
		SalaryCap:   DefaultSalaryCap,
		Contracts:   make(map[string]Contract),
		DepthCharts: make(map[string][]string),
	}
	r.recalculateCap()
	return r
}

func (r *TeamRoster) recalculateCap() {
	used := 0
	for _, contract := range r.Contracts {
		used += contract.CapHit
	}
	r.TotalCapUsed = used
	r.AvailableCap = r.SalaryCap - used
}

// AddPlayer adds a player to a roster group under the given contract.
func (r *TeamRoster) AddPlayer(playerKey string, contract Contract, spot RosterSpot) error {
	switch spot {
	case SpotActive:
		if len(r.ActiveRoster) >= ActiveRosterLimit {
			return fmt.Errorf("%w (%d players)", ErrRosterFull, ActiveRosterLimit)
		}
		r.ActiveRoster = append(r.ActiveRoster, playerKey)
	case SpotPracticeSquad:
		if len(r.PracticeSquad) >= PracticeSquadLimit {
			return fmt.Errorf("%w (%d players)", ErrSquadFull, PracticeSquadLimit)
		}
		r.PracticeSquad = append(r.PracticeSquad, playerKey)
	case SpotInjuredList:
		r.InjuredReserve = append(r.InjuredReserve, playerKey)
	default:
		return fmt.Errorf("unknown roster spot %q", spot)
	}

	r.Contracts[playerKey] = contract
	r.recalculateCap()
	return nil
}

// ReleasePlayer removes a player from every roster group and depth chart,
// returning the released contract.
func (r *TeamRoster) ReleasePlayer(playerKey string) (Contract, error) {
	contract, ok := r.Contracts[playerKey]
	if !ok {
		return Contract{}, fmt.Errorf("%w: %s on %s", ErrNotOnRoster, playerKey, r.TeamCode)
	}
	delete(r.Contracts, playerKey)

	r.ActiveRoster = removeKey(r.ActiveRoster, playerKey)
	r.PracticeSquad = removeKey(r.PracticeSquad, playerKey)
	r.InjuredReserve = removeKey(r.InjuredReserve, playerKey)
	for position, players := range r.DepthCharts {
		r.DepthCharts[position] = removeKey(players, playerKey)
	}

	r.recalculateCap()
	return contract, nil
}

// SetDepthChart sets the ordered depth chart for a position. Every listed
// player must be on the active roster.
func (r *TeamRoster) SetDepthChart(position string, playerKeys []string) error {
	for _, key := range playerKeys {
		if !containsKey(r.ActiveRoster, key) {
			return fmt.Errorf("%w: %s not on active roster", ErrNotOnRoster, key)
		}
	}
	r.DepthCharts[position] = append([]string(nil), playerKeys...)
	return nil
}

// Starters returns the first player at each charted position.
func (r *TeamRoster) Starters() map[string]string {
	starters := make(map[string]string, len(r.DepthCharts))
	for position, players := range r.DepthCharts {
		if len(players) > 0 {
			starters[position] = players[0]
		}
	}
	return starters
}

func removeKey(keys []string, key string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
