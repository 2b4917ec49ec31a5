package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Ndwalker8/NFL-100/internal/domain/scoring"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
)

type stubBasketballSource struct {
	slate BasketballSlate
	err   error
}

func (s *stubBasketballSource) FetchSlate(context.Context, string) (BasketballSlate, error) {
	if s.err != nil {
		return BasketballSlate{}, s.err
	}
	return s.slate, nil
}

func TestGetFootballSnapshot_FiltersWeekAndScores(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{
			2024: {
				SeasonUsed: 2024,
				Rows: []stats.FootballPlayerWeek{
					{PlayerID: "00-001", Name: "Josh Allen", Team: "BUF", Week: 1,
						Line: stats.FootballLine{PassYds: 300, PassTD: 3, Interceptions: 1}},
					{PlayerID: "00-001", Name: "Josh Allen", Team: "BUF", Week: 2,
						Line: stats.FootballLine{PassYds: 150}},
				},
			},
		},
	}
	svc := NewSnapshotService(SnapshotServiceConfig{Football: source})

	snapshot, err := svc.GetFootballSnapshot(context.Background(), 2024, 1, scoring.ModeStd)
	if err != nil {
		t.Fatalf("GetFootballSnapshot: %v", err)
	}
	if len(snapshot.Entries) != 1 {
		t.Fatalf("entries=%d, want week 2 filtered out", len(snapshot.Entries))
	}
	if snapshot.Entries[0].Points != 22.0 {
		t.Fatalf("points=%v, want 22.0", snapshot.Entries[0].Points)
	}
	if snapshot.SeasonUsed != 2024 || snapshot.Week != 1 || snapshot.Mode != scoring.ModeStd {
		t.Fatalf("metadata: %+v", snapshot)
	}
}

func TestGetFootballSnapshot_EmptyWeekIsSuccess(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{2024: seasonWithWeeks(2024, 1, 2)},
	}
	svc := NewSnapshotService(SnapshotServiceConfig{Football: source})

	snapshot, err := svc.GetFootballSnapshot(context.Background(), 2024, 14, scoring.ModeHalf)
	if err != nil {
		t.Fatalf("empty week must succeed: %v", err)
	}
	if snapshot.Entries == nil || len(snapshot.Entries) != 0 {
		t.Fatalf("entries=%v, want empty non-nil", snapshot.Entries)
	}
}

func TestGetFootballSnapshot_SourceFailurePropagates(t *testing.T) {
	t.Parallel()

	svc := NewSnapshotService(SnapshotServiceConfig{Football: &stubFootballSource{}})

	_, err := svc.GetFootballSnapshot(context.Background(), 2024, 1, scoring.ModeStd)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err=%v, want ErrSourceUnavailable", err)
	}
}

func TestGetFootballSnapshot_RejectsBadInput(t *testing.T) {
	t.Parallel()

	svc := NewSnapshotService(SnapshotServiceConfig{Football: &stubFootballSource{}})

	if _, err := svc.GetFootballSnapshot(context.Background(), 0, 1, scoring.ModeStd); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("season 0: %v", err)
	}
	if _, err := svc.GetFootballSnapshot(context.Background(), 2024, 23, scoring.ModeStd); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("week 23: %v", err)
	}
}

func TestGetBasketballSnapshot_PartialWarningsSurvive(t *testing.T) {
	t.Parallel()

	source := &stubBasketballSource{
		slate: BasketballSlate{
			Players: []stats.BasketballPlayerGame{
				{PlayerID: "77", Name: "Luka Doncic", Team: "DAL", EventID: "401",
					Line: stats.BasketballLine{Points: 30, Rebounds: 10, Assists: 8, Steals: 2, Blocks: 1, Turnovers: 4, ThreesMade: 4}},
			},
			Warnings: []string{"event 402: provider status=500"},
		},
	}
	svc := NewSnapshotService(SnapshotServiceConfig{Basketball: source, Football: &stubFootballSource{}})

	snapshot, err := svc.GetBasketballSnapshot(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("GetBasketballSnapshot: %v", err)
	}
	if len(snapshot.Entries) != 1 || snapshot.Entries[0].Points != 61.0 {
		t.Fatalf("entries=%v", snapshot.Entries)
	}
	if len(snapshot.Warnings) != 1 {
		t.Fatalf("warnings=%v, want upstream warning preserved", snapshot.Warnings)
	}
}

func TestGetBasketballSnapshot_EmptySlate(t *testing.T) {
	t.Parallel()

	source := &stubBasketballSource{slate: BasketballSlate{}}
	svc := NewSnapshotService(SnapshotServiceConfig{Basketball: source, Football: &stubFootballSource{}})

	snapshot, err := svc.GetBasketballSnapshot(context.Background(), "2026-07-04")
	if err != nil {
		t.Fatalf("empty slate must succeed: %v", err)
	}
	if snapshot.Entries == nil || len(snapshot.Entries) != 0 {
		t.Fatalf("entries=%v, want empty non-nil", snapshot.Entries)
	}
	if snapshot.Warnings == nil {
		t.Fatal("warnings must be non-nil for callers")
	}
}
