package formation

import (
	"errors"
	"fmt"
	"math"
)

// Lane represents horizontal positioning on the field.
type Lane string

const (
	LaneLeft   Lane = "left"
	LaneMiddle Lane = "middle"
	LaneRight  Lane = "right"
)

// OffDepth represents offensive depth levels relative to the line of
// scrimmage.
type OffDepth string

const (
	OffLine      OffDepth = "line"
	OffBackfield OffDepth = "backfield"
	OffWide      OffDepth = "wide"
)

// DefDepth represents defensive depth levels.
type DefDepth string

const (
	DefLine DefDepth = "line"
	DefBox  DefDepth = "box"
	DefDeep DefDepth = "deep"
)

// PlayersPerSide is the number of players a legal formation places.
const PlayersPerSide = 11

var (
	ErrInvalidLane  = errors.New("invalid lane")
	ErrInvalidDepth = errors.New("invalid depth")
)

var validLanes = map[Lane]bool{LaneLeft: true, LaneMiddle: true, LaneRight: true}
var validOffDepths = map[OffDepth]bool{OffLine: true, OffBackfield: true, OffWide: true}
var validDefDepths = map[DefDepth]bool{DefLine: true, DefBox: true, DefDeep: true}

// OffSlot identifies one lane/depth cell of an offensive formation.
type OffSlot struct {
	Lane  Lane
	Depth OffDepth
}

// DefSlot identifies one lane/depth cell of a defensive formation.
type DefSlot struct {
	Lane  Lane
	Depth DefDepth
}

// OffFormation places offensive players into lane/depth slots. Players are
// referenced by name only for display; formations have no link back to the
// rating engine.
type OffFormation struct {
	Name       string
	Placements map[OffSlot][]string
}

// NewOffFormation creates an empty offensive formation.
func NewOffFormation(name string) *OffFormation {
	return &OffFormation{
		Name:       name,
		Placements: make(map[OffSlot][]string),
	}
}

// AddPlayer places a player into a lane/depth slot.
func (f *OffFormation) AddPlayer(lane Lane, depth OffDepth, playerName string) error {
	if !validLanes[lane] {
		return fmt.Errorf("%w: %q", ErrInvalidLane, lane)
	}
	if !validOffDepths[depth] {
		return fmt.Errorf("%w: %q", ErrInvalidDepth, depth)
	}
	slot := OffSlot{Lane: lane, Depth: depth}
	f.Placements[slot] = append(f.Placements[slot], playerName)
	return nil
}

// Count returns how many players occupy a slot.
func (f *OffFormation) Count(lane Lane, depth OffDepth) int {
	return len(f.Placements[OffSlot{Lane: lane, Depth: depth}])
}

// PlayerCount returns the total number of placed players.
func (f *OffFormation) PlayerCount() int {
	total := 0
	for _, players := range f.Placements {
		total += len(players)
	}
	return total
}

// Validate checks the formation places exactly eleven players.
func (f *OffFormation) Validate() error {
	if n := f.PlayerCount(); n != PlayersPerSide {
		return fmt.Errorf("formation %q places %d players, need %d", f.Name, n, PlayersPerSide)
	}
	return nil
}

// DefFormation places defensive players into lane/depth slots.
type DefFormation struct {
	Name       string
	Placements map[DefSlot][]string
}

// NewDefFormation creates an empty defensive formation.
func NewDefFormation(name string) *DefFormation {
	return &DefFormation{
		Name:       name,
		Placements: make(map[DefSlot][]string),
	}
}

// AddPlayer places a player into a lane/depth slot.
func (f *DefFormation) AddPlayer(lane Lane, depth DefDepth, playerName string) error {
	if !validLanes[lane] {
		return fmt.Errorf("%w: %q", ErrInvalidLane, lane)
	}
	if !validDefDepths[depth] {
		return fmt.Errorf("%w: %q", ErrInvalidDepth, depth)
	}
	slot := DefSlot{Lane: lane, Depth: depth}
	f.Placements[slot] = append(f.Placements[slot], playerName)
	return nil
}

// Count returns how many players occupy a slot.
func (f *DefFormation) Count(lane Lane, depth DefDepth) int {
	return len(f.Placements[DefSlot{Lane: lane, Depth: depth}])
}

// PlayerCount returns the total number of placed players.
func (f *DefFormation) PlayerCount() int {
	total := 0
	for _, players := range f.Placements {
		total += len(players)
	}
	return total
}

// Validate checks the formation places exactly eleven players.
func (f *DefFormation) Validate() error {
	if n := f.PlayerCount(); n != PlayersPerSide {
		return fmt.Errorf("formation %q places %d players, need %d", f.Name, n, PlayersPerSide)
	}
	return nil
}

// Coordinate is a position on the field grid.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo computes the straight-line distance to another coordinate.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Field is a bounded rectangular playing surface with a line of scrimmage.
type Field struct {
	Width           int
	Height          int
	LineOfScrimmage int
}

// NewField creates a field, validating that the line of scrimmage falls
// within bounds.
func NewField(width, height, lineOfScrimmage int) (*Field, error) {
	if lineOfScrimmage >= height {
		return nil, fmt.Errorf("line of scrimmage %d outside field height %d", lineOfScrimmage, height)
	}
	return &Field{Width: width, Height: height, LineOfScrimmage: lineOfScrimmage}, nil
}

// Contains reports whether a coordinate is within the playing area.
func (f *Field) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < f.Width && c.Y >= 0 && c.Y < f.Height
}

// LaneCenter returns the center coordinate of a lane at the given depth
// line.
func (f *Field) LaneCenter(lane Lane, y int) Coordinate {
	switch lane {
	case LaneLeft:
		return Coordinate{X: f.Width / 4, Y: y}
	case LaneRight:
		return Coordinate{X: (3 * f.Width) / 4, Y: y}
	default:
		return Coordinate{X: f.Width / 2, Y: y}
	}
}
