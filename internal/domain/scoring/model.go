// Package scoring converts normalized stat lines into fantasy points.
// Every function here is pure; fetching, caching and aggregation live with
// the callers.
package scoring

import (
	"fmt"
	"strings"

	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
)

// Mode selects the football reception bonus.
type Mode string

const (
	ModeStd  Mode = "std"
	ModeHalf Mode = "half"
	ModePPR  Mode = "ppr"
)

// ParseMode maps user input onto a Mode; empty defaults to std.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "std", "standard":
		return ModeStd, nil
	case "half", "half_ppr", "half-ppr":
		return ModeHalf, nil
	case "ppr":
		return ModePPR, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", raw)
}

func (m Mode) receptionBonus() float64 {
	switch m {
	case ModePPR:
		return 1.0
	case ModeHalf:
		return 0.5
	default:
		return 0
	}
}

// FootballPoints scores one football line under the given mode. Terms are
// summed in a fixed order so identical inputs always yield the identical
// float, regardless of which adapter or goroutine produced the line.
func FootballPoints(line stats.FootballLine, mode Mode) float64 {
	pts := line.PassYds / 25.0
	pts += line.PassTD * 4.0
	pts += line.RushYds / 10.0
	pts += line.RushTD * 6.0
	pts += line.RecYds / 10.0
	pts += line.RecTD * 6.0
	pts += line.Receptions * mode.receptionBonus()
	pts -= line.Interceptions * 2.0
	pts -= line.FumblesLost * 2.0
	return pts
}

// FootballPointsFor prefers the feed's precomputed column for the requested
// mode and recomputes from counting stats only when that column is absent.
// The feed's own number reflects scoring nuances the counting columns may
// not carry.
func FootballPointsFor(week stats.FootballPlayerWeek, mode Mode) float64 {
	var pre *float64
	switch mode {
	case ModePPR:
		pre = week.Precomputed.PPR
	case ModeHalf:
		pre = week.Precomputed.Half
	default:
		pre = week.Precomputed.Std
	}
	if pre != nil {
		return *pre
	}
	return FootballPoints(week.Line, mode)
}

// BasketballPoints scores one box-score line. Fixed term order, same
// determinism contract as FootballPoints.
func BasketballPoints(line stats.BasketballLine) float64 {
	pts := line.Points
	pts += line.Rebounds * 1.2
	pts += line.Assists * 1.5
	pts += line.Steals * 3.0
	pts += line.Blocks * 3.0
	pts -= line.Turnovers
	pts += line.ThreesMade * 0.5
	return pts
}

// MergePolicy decides how repeated observations of the same player-period
// combine during aggregation.
type MergePolicy string

const (
	// MergeMax keeps the highest score. Duplicate rows from upstream are
	// usually progressive snapshots of the same game, so the final
	// (largest) one is the validated value.
	MergeMax MergePolicy = "max"
	// MergeSum adds observations, for feeds that split a period into
	// genuine partial rows.
	MergeSum MergePolicy = "sum"
	// MergeLast keeps whichever observation arrived last.
	MergeLast MergePolicy = "last"
)

func ParseMergePolicy(raw string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "max":
		return MergeMax, nil
	case "sum":
		return MergeSum, nil
	case "last":
		return MergeLast, nil
	}
	return "", fmt.Errorf("unknown merge policy %q", raw)
}

// Merge combines an existing score with a newly observed one.
func (p MergePolicy) Merge(existing, incoming float64) float64 {
	switch p {
	case MergeSum:
		return existing + incoming
	case MergeLast:
		return incoming
	default:
		if incoming > existing {
			return incoming
		}
		return existing
	}
}
