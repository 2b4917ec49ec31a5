// Package stats holds the normalized stat lines produced by the source
// adapters, after synonym resolution and numeric coercion.
package stats

import "github.com/Ndwalker8/NFL-100/internal/domain/player"

// FootballLine is one player-week of football counting stats. Absent feed
// columns are already coerced to zero.
type FootballLine struct {
	PassYds       float64
	PassTD        float64
	Interceptions float64
	RushYds       float64
	RushTD        float64
	Receptions    float64
	RecYds        float64
	RecTD         float64
	FumblesLost   float64
}

// Add returns the field-wise sum of two lines, for merge policies that
// combine partial observations of one player-period.
func (l FootballLine) Add(o FootballLine) FootballLine {
	return FootballLine{
		PassYds:       l.PassYds + o.PassYds,
		PassTD:        l.PassTD + o.PassTD,
		Interceptions: l.Interceptions + o.Interceptions,
		RushYds:       l.RushYds + o.RushYds,
		RushTD:        l.RushTD + o.RushTD,
		Receptions:    l.Receptions + o.Receptions,
		RecYds:        l.RecYds + o.RecYds,
		RecTD:         l.RecTD + o.RecTD,
		FumblesLost:   l.FumblesLost + o.FumblesLost,
	}
}

// PrecomputedPoints carries the feed's own fantasy point columns when they
// exist. nil means the column was absent, which is different from 0.0.
type PrecomputedPoints struct {
	Std  *float64
	Half *float64
	PPR  *float64
}

// FootballPlayerWeek is one observation of a player in a given week.
type FootballPlayerWeek struct {
	PlayerID    string
	Name        string
	Team        string
	Position    player.Position
	Season      int
	Week        int
	Line        FootballLine
	Precomputed PrecomputedPoints
}

// BasketballLine is one player-game of basketball counting stats. Minutes
// are informational and never scored.
type BasketballLine struct {
	Points     float64
	Rebounds   float64
	Assists    float64
	Steals     float64
	Blocks     float64
	Turnovers  float64
	ThreesMade float64
	Minutes    float64
}

// Add returns the field-wise sum of two lines.
func (l BasketballLine) Add(o BasketballLine) BasketballLine {
	return BasketballLine{
		Points:     l.Points + o.Points,
		Rebounds:   l.Rebounds + o.Rebounds,
		Assists:    l.Assists + o.Assists,
		Steals:     l.Steals + o.Steals,
		Blocks:     l.Blocks + o.Blocks,
		Turnovers:  l.Turnovers + o.Turnovers,
		ThreesMade: l.ThreesMade + o.ThreesMade,
		Minutes:    l.Minutes + o.Minutes,
	}
}

// BasketballPlayerGame is one box-score observation of a player.
type BasketballPlayerGame struct {
	PlayerID string
	Name     string
	Team     string
	EventID  string
	Line     BasketballLine
}
