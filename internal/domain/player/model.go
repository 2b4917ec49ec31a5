package player

import (
	"fmt"
	"strings"
)

// Sport identifies which pipeline a player belongs to.
type Sport string

const (
	SportFootball   Sport = "nfl"
	SportBasketball Sport = "nba"
)

// Position represents the closed position vocabulary per sport.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"

	PositionPG Position = "PG"
	PositionSG Position = "SG"
	PositionSF Position = "SF"
	PositionPF Position = "PF"
	PositionC  Position = "C"
	PositionG  Position = "G"
	PositionF  Position = "F"
)

// FootballPositions is the eligible pool filter: only these four positions
// enter the football player pool.
var FootballPositions = map[Position]struct{}{
	PositionQB: {},
	PositionRB: {},
	PositionWR: {},
	PositionTE: {},
}

// Player is one selectable athlete in a pool.
type Player struct {
	ID       string
	Sport    Sport
	Name     string
	Team     string
	Position Position
	Headshot string
	Jersey   string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Sport == "" {
		return fmt.Errorf("player sport is required")
	}
	return nil
}

// Identity is the aggregation key for a player. Provider ids win; when a
// feed omits the id a name+team surrogate is synthesized so two distinct
// provider ids can never collapse into one entry.
type Identity struct {
	Key       string
	Synthetic bool
}

func IdentityFor(sport Sport, providerID, name, team string) Identity {
	if providerID != "" {
		return Identity{Key: string(sport) + ":" + providerID}
	}
	return Identity{
		Key:       string(sport) + ":" + strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToUpper(strings.TrimSpace(team)),
		Synthetic: true,
	}
}

// NormalizeFootballPosition maps free-text feed positions onto the closed
// football vocabulary. Unknown inputs return ok=false so callers can drop
// ineligible rows instead of guessing.
func NormalizeFootballPosition(raw string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := FootballPositions[p]; ok {
		return p, true
	}
	return "", false
}

// NormalizeBasketballPosition maps provider position labels, full names
// included, onto the basketball vocabulary. Unrecognized labels default to
// the generic guard slot rather than dropping the player.
func NormalizeBasketballPosition(raw string) Position {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "PG", "SG", "SF", "PF", "C", "G", "F":
		return Position(s)
	}
	switch {
	case strings.Contains(s, "POINT"):
		return PositionPG
	case strings.Contains(s, "SHOOT"):
		return PositionSG
	case strings.Contains(s, "SMALL"):
		return PositionSF
	case strings.Contains(s, "POWER"):
		return PositionPF
	case strings.Contains(s, "CENTER"):
		return PositionC
	case strings.Contains(s, "FORWARD"):
		return PositionF
	default:
		return PositionG
	}
}
