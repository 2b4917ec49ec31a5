package usecase

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/domain/scoring"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
)

// ScoreEntry is one player's aggregated fantasy score for a period,
// together with the stat line that survived the merge. Exactly one of
// Football/Basketball is set, matching the snapshot's sport.
type ScoreEntry struct {
	PlayerID   string
	Name       string
	Team       string
	Position   player.Position
	Points     float64
	Football   *stats.FootballLine
	Basketball *stats.BasketballLine
}

// Aggregator folds repeated stat observations into one entry per player
// and fixes the presentation order. It is safe for concurrent use; the
// collator is built per call because collators carry internal buffers.
type Aggregator struct {
	policy scoring.MergePolicy
}

func NewAggregator(policy scoring.MergePolicy) *Aggregator {
	if policy == "" {
		policy = scoring.MergeMax
	}
	return &Aggregator{policy: policy}
}

type aggregateState struct {
	entries map[string]*ScoreEntry
	order   []string
}

func newAggregateState(capacity int) *aggregateState {
	return &aggregateState{
		entries: make(map[string]*ScoreEntry, capacity),
		order:   make([]string, 0, capacity),
	}
}

func (a *Aggregator) observe(state *aggregateState, identity player.Identity, entry ScoreEntry) {
	existing, seen := state.entries[identity.Key]
	if !seen {
		copied := entry
		state.entries[identity.Key] = &copied
		state.order = append(state.order, identity.Key)
		return
	}
	a.mergeLines(existing, entry)
	existing.Points = a.policy.Merge(existing.Points, entry.Points)
	if existing.Name == "" {
		existing.Name = entry.Name
	}
	if existing.Team == "" {
		existing.Team = entry.Team
	}
}

// mergeLines keeps the stat line consistent with the merged score: sum
// adds lines field-wise, last replaces, max keeps the line of whichever
// observation holds the higher score. Must run before Points is merged.
func (a *Aggregator) mergeLines(existing *ScoreEntry, entry ScoreEntry) {
	switch a.policy {
	case scoring.MergeSum:
		if entry.Football != nil {
			summed := entry.Football.Add(derefFootball(existing.Football))
			existing.Football = &summed
		}
		if entry.Basketball != nil {
			summed := entry.Basketball.Add(derefBasketball(existing.Basketball))
			existing.Basketball = &summed
		}
	case scoring.MergeLast:
		existing.Football = entry.Football
		existing.Basketball = entry.Basketball
	default:
		if entry.Points > existing.Points {
			existing.Football = entry.Football
			existing.Basketball = entry.Basketball
		}
	}
}

func derefFootball(l *stats.FootballLine) stats.FootballLine {
	if l == nil {
		return stats.FootballLine{}
	}
	return *l
}

func derefBasketball(l *stats.BasketballLine) stats.BasketballLine {
	if l == nil {
		return stats.BasketballLine{}
	}
	return *l
}

// AggregateFootball scores and folds a set of player weeks under one mode.
// Rows without a provider id dedup on a name+team surrogate and produce a
// warning; distinct ids never merge.
func (a *Aggregator) AggregateFootball(rows []stats.FootballPlayerWeek, mode scoring.Mode) ([]ScoreEntry, []string) {
	state := newAggregateState(len(rows))
	warnings := make([]string, 0, 2)
	missingIDs := 0

	for _, row := range rows {
		identity := player.IdentityFor(player.SportFootball, row.PlayerID, row.Name, row.Team)
		if identity.Synthetic {
			missingIDs++
		}
		line := row.Line
		a.observe(state, identity, ScoreEntry{
			PlayerID: row.PlayerID,
			Name:     row.Name,
			Team:     row.Team,
			Position: row.Position,
			Points:   scoring.FootballPointsFor(row, mode),
			Football: &line,
		})
	}

	if missingIDs > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows had no player id and were keyed by name+team", missingIDs))
	}
	return a.finish(state), warnings
}

// AggregateBasketball scores and folds a set of box-score observations.
func (a *Aggregator) AggregateBasketball(rows []stats.BasketballPlayerGame) ([]ScoreEntry, []string) {
	state := newAggregateState(len(rows))
	warnings := make([]string, 0, 2)
	missingIDs := 0

	for _, row := range rows {
		identity := player.IdentityFor(player.SportBasketball, row.PlayerID, row.Name, row.Team)
		if identity.Synthetic {
			missingIDs++
		}
		line := row.Line
		a.observe(state, identity, ScoreEntry{
			PlayerID:   row.PlayerID,
			Name:       row.Name,
			Team:       row.Team,
			Points:     scoring.BasketballPoints(row.Line),
			Basketball: &line,
		})
	}

	if missingIDs > 0 {
		warnings = append(warnings, fmt.Sprintf("%d box-score rows had no athlete id and were keyed by name+team", missingIDs))
	}
	return a.finish(state), warnings
}

// finish flattens and orders the aggregate: points descending, then name
// ascending under locale-aware collation, then id for a total order.
func (a *Aggregator) finish(state *aggregateState) []ScoreEntry {
	out := make([]ScoreEntry, 0, len(state.order))
	for _, key := range state.order {
		out = append(out, *state.entries[key])
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if cmp := collator.CompareString(out[i].Name, out[j].Name); cmp != 0 {
			return cmp < 0
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
