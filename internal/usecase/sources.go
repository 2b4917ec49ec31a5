package usecase

import (
	"context"

	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
)

// FootballSeasonData is one fetched season snapshot. SeasonUsed differs
// from the requested season when the source served a fallback year.
type FootballSeasonData struct {
	SeasonUsed int
	Rows       []stats.FootballPlayerWeek
	Warnings   []string
}

// FootballStatsSource provides weekly football stat snapshots.
type FootballStatsSource interface {
	FetchSeason(ctx context.Context, season int) (FootballSeasonData, error)
}

// BasketballSlate is every box-score observation for one slate date, plus
// non-fatal per-game warnings.
type BasketballSlate struct {
	Players  []stats.BasketballPlayerGame
	Warnings []string
}

// BasketballStatsSource provides box scores for a slate date.
type BasketballStatsSource interface {
	FetchSlate(ctx context.Context, date string) (BasketballSlate, error)
}

// BasketballRosterSource lists rostered players for a slate date.
type BasketballRosterSource interface {
	ListRosters(ctx context.Context, date string) ([]player.Player, []string, error)
}

// PayloadArchiver optionally persists raw upstream payloads for
// schema-drift debugging. Implementations must never surface failures to
// callers.
type PayloadArchiver interface {
	Archive(ctx context.Context, source, entityType, entityKey string, body []byte)
}
