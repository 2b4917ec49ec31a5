package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
)

type stubRosterSource struct {
	players  []player.Player
	warnings []string
	err      error
}

func (s *stubRosterSource) ListRosters(context.Context, string) ([]player.Player, []string, error) {
	return s.players, s.warnings, s.err
}

func TestGetFootballPool_DedupsAcrossWeeks(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{
			2024: {
				SeasonUsed: 2024,
				Rows: []stats.FootballPlayerWeek{
					{PlayerID: "00-001", Name: "Josh Allen", Team: "BUF", Position: player.PositionQB, Week: 1},
					{PlayerID: "00-001", Name: "Josh Allen", Team: "BUF", Position: player.PositionQB, Week: 2},
					{PlayerID: "00-002", Name: "Ja'Marr Chase", Team: "CIN", Position: player.PositionWR, Week: 1},
				},
			},
		},
	}
	svc := NewPoolService(source, &stubRosterSource{}, nil, nil)

	pool, err := svc.GetFootballPool(context.Background(), 2024, 0)
	if err != nil {
		t.Fatalf("GetFootballPool: %v", err)
	}
	if len(pool.Players) != 2 {
		t.Fatalf("players=%d, want weekly duplicates folded", len(pool.Players))
	}
	// Name ascending.
	if pool.Players[0].Name != "Ja'Marr Chase" {
		t.Fatalf("order: %s first", pool.Players[0].Name)
	}
}

func TestGetFootballPool_WeekFilter(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{
			2024: {
				SeasonUsed: 2024,
				Rows: []stats.FootballPlayerWeek{
					{PlayerID: "00-001", Name: "Week One Guy", Team: "BUF", Week: 1},
					{PlayerID: "00-002", Name: "Week Two Guy", Team: "CIN", Week: 2},
				},
			},
		},
	}
	svc := NewPoolService(source, &stubRosterSource{}, nil, nil)

	pool, err := svc.GetFootballPool(context.Background(), 2024, 2)
	if err != nil {
		t.Fatalf("GetFootballPool: %v", err)
	}
	if len(pool.Players) != 1 || pool.Players[0].Name != "Week Two Guy" {
		t.Fatalf("players=%v", pool.Players)
	}
}

func TestGetFootballPool_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewPoolService(&stubFootballSource{}, &stubRosterSource{}, nil, nil)

	if _, err := svc.GetFootballPool(context.Background(), 0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing season: %v", err)
	}
	if _, err := svc.GetFootballPool(context.Background(), 2024, 99); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("week 99: %v", err)
	}
}

func TestGetBasketballPool_PartialRosterFailureIsWarning(t *testing.T) {
	t.Parallel()

	source := &stubRosterSource{
		players: []player.Player{
			{ID: "77", Sport: player.SportBasketball, Name: "Luka Doncic", Team: "DAL", Position: player.PositionPG},
		},
		warnings: []string{"team 13: provider status=500"},
	}
	svc := NewPoolService(&stubFootballSource{}, source, nil, nil)

	pool, err := svc.GetBasketballPool(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("partial roster failure must not error: %v", err)
	}
	if len(pool.Players) != 1 {
		t.Fatalf("players=%v", pool.Players)
	}
	if len(pool.Warnings) != 1 {
		t.Fatalf("warnings=%v, want the per-team failure surfaced", pool.Warnings)
	}
}

func TestGetBasketballPool_TotalFailurePropagates(t *testing.T) {
	t.Parallel()

	source := &stubRosterSource{err: &SourceUnavailableError{Source: "stub"}}
	svc := NewPoolService(&stubFootballSource{}, source, nil, nil)

	if _, err := svc.GetBasketballPool(context.Background(), "2026-01-15"); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err=%v, want ErrSourceUnavailable", err)
	}
}

func TestGetBasketballPool_RejectsBadDate(t *testing.T) {
	t.Parallel()

	svc := NewPoolService(&stubFootballSource{}, &stubRosterSource{}, nil, nil)

	if _, err := svc.GetBasketballPool(context.Background(), "01/15/2026"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err=%v, want ErrInvalidInput", err)
	}
}
