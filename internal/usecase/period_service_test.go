package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
	"github.com/Ndwalker8/NFL-100/internal/platform/cache"
)

type stubFootballSource struct {
	data  map[int]FootballSeasonData
	errs  map[int]error
	calls int
}

func (s *stubFootballSource) FetchSeason(_ context.Context, season int) (FootballSeasonData, error) {
	s.calls++
	if err, ok := s.errs[season]; ok {
		return FootballSeasonData{}, err
	}
	if data, ok := s.data[season]; ok {
		return data, nil
	}
	return FootballSeasonData{}, &SourceUnavailableError{
		Source:   "stub",
		Attempts: []Attempt{{URL: fmt.Sprintf("stub://%d", season), Reason: "no data"}},
	}
}

func seasonWithWeeks(season int, weeks ...int) FootballSeasonData {
	rows := make([]stats.FootballPlayerWeek, 0, len(weeks))
	for _, w := range weeks {
		rows = append(rows, stats.FootballPlayerWeek{
			PlayerID: fmt.Sprintf("00-%03d", w),
			Name:     fmt.Sprintf("Player %d", w),
			Team:     "AAA",
			Season:   season,
			Week:     w,
		})
	}
	return FootballSeasonData{SeasonUsed: season, Rows: rows}
}

func TestActiveFootball_PicksHighestPopulatedWeek(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{
			2025: seasonWithWeeks(2025, 1, 2, 3, 7, 5),
		},
	}
	svc := NewPeriodService(PeriodServiceConfig{
		Football:         source,
		CandidateSeasons: []int{2025, 2024},
	})

	active, err := svc.ActiveFootball(context.Background())
	if err != nil {
		t.Fatalf("ActiveFootball: %v", err)
	}
	if active.Season != 2025 || active.Week != 7 {
		t.Fatalf("active=%+v, want 2025 week 7", active)
	}
	if source.calls != 1 {
		t.Fatalf("calls=%d, want the first candidate to satisfy the probe", source.calls)
	}
}

func TestActiveFootball_FallsThroughFailedCandidates(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{
			2023: seasonWithWeeks(2023, 18),
		},
	}
	svc := NewPeriodService(PeriodServiceConfig{
		Football:         source,
		CandidateSeasons: []int{2025, 2024, 2023},
	})

	active, err := svc.ActiveFootball(context.Background())
	if err != nil {
		t.Fatalf("ActiveFootball: %v", err)
	}
	if active.Season != 2023 || active.Week != 18 {
		t.Fatalf("active=%+v, want fallback to 2023 week 18", active)
	}
}

func TestActiveFootball_ExhaustionIsNoDataFound(t *testing.T) {
	t.Parallel()

	svc := NewPeriodService(PeriodServiceConfig{
		Football:         &stubFootballSource{},
		CandidateSeasons: []int{2025, 2024},
	})

	_, err := svc.ActiveFootball(context.Background())
	if !errors.Is(err, ErrNoDataFound) {
		t.Fatalf("err=%v, want ErrNoDataFound", err)
	}
}

func TestActiveFootball_CachesResolution(t *testing.T) {
	t.Parallel()

	source := &stubFootballSource{
		data: map[int]FootballSeasonData{2025: seasonWithWeeks(2025, 4)},
	}
	svc := NewPeriodService(PeriodServiceConfig{
		Football:         source,
		Cache:            cache.NewStore(time.Hour),
		CandidateSeasons: []int{2025},
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.ActiveFootball(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if source.calls != 1 {
		t.Fatalf("calls=%d, want probe cached after first resolution", source.calls)
	}
}

func TestCurrentFootball_UsesInjectedClock(t *testing.T) {
	t.Parallel()

	svc := NewPeriodService(PeriodServiceConfig{
		Football: &stubFootballSource{},
		Now: func() time.Time {
			// One day after the 2025 kickoff (Sept 4).
			return time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)
		},
	})

	current := svc.CurrentFootball(context.Background())
	if current.Season != 2025 || current.Week != 1 {
		t.Fatalf("current=%+v, want 2025 week 1", current)
	}
}

func TestCurrentBasketball_ReferenceZoneDate(t *testing.T) {
	t.Parallel()

	et, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	svc := NewPeriodService(PeriodServiceConfig{
		Football:       &stubFootballSource{},
		BasketballZone: et,
		Now: func() time.Time {
			return time.Date(2026, time.March, 2, 2, 30, 0, 0, time.UTC)
		},
	})

	if got := svc.CurrentBasketball(context.Background()); got.Date != "2026-03-01" {
		t.Fatalf("date=%s, want previous day in reference zone", got.Date)
	}
}
