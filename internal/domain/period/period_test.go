package period

import (
	"testing"
	"time"
)

func TestKickoff_FirstThursdayAfterFirstMonday(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		2023: "2023-09-07",
		2024: "2024-09-05",
		2025: "2025-09-04",
	}

	for season, want := range cases {
		got := Kickoff(season)
		if got.Weekday() != time.Thursday {
			t.Fatalf("season %d kickoff on %s, want Thursday", season, got.Weekday())
		}
		if got.Format("2006-01-02") != want {
			t.Fatalf("season %d kickoff = %s, want %s", season, got.Format("2006-01-02"), want)
		}
	}
}

func TestKickoff_SeptemberFirstMonday(t *testing.T) {
	t.Parallel()

	// 2025: Sept 1 is a Monday, so kickoff must be Thursday the 4th, not a
	// week later.
	if got := Kickoff(2025).Format("2006-01-02"); got != "2025-09-04" {
		t.Fatalf("got %s, want 2025-09-04", got)
	}
}

func TestSeasonFor_MonthBoundary(t *testing.T) {
	t.Parallel()

	aug := time.Date(2025, time.August, 31, 23, 59, 0, 0, time.UTC)
	sep := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

	if got := SeasonFor(aug); got != 2024 {
		t.Fatalf("late August resolved to season %d, want 2024", got)
	}
	if got := SeasonFor(sep); got != 2025 {
		t.Fatalf("September 1 resolved to season %d, want 2025", got)
	}
}

func TestCurrentFootball_WeekProgression(t *testing.T) {
	t.Parallel()

	kickoff := Kickoff(2025) // 2025-09-04

	cases := []struct {
		now        time.Time
		wantSeason int
		wantWeek   int
	}{
		{kickoff, 2025, 1},
		{kickoff.Add(6 * 24 * time.Hour), 2025, 1},
		{kickoff.Add(7 * 24 * time.Hour), 2025, 2},
		{kickoff.Add(17*7*24*time.Hour + time.Hour), 2025, 18},
		// Deep offseason clamps to the final week instead of inventing
		// week 19+.
		{kickoff.Add(30 * 7 * 24 * time.Hour), 2025, 18},
	}

	for _, tc := range cases {
		got := CurrentFootball(tc.now)
		if got.Season != tc.wantSeason || got.Week != tc.wantWeek {
			t.Fatalf("at %s got %d week %d, want %d week %d",
				tc.now.Format(time.RFC3339), got.Season, got.Week, tc.wantSeason, tc.wantWeek)
		}
	}
}

func TestCurrentFootball_PreKickoffRollsBackSeason(t *testing.T) {
	t.Parallel()

	// September 2nd 2025: SeasonFor says 2025, but kickoff (Sept 4) has
	// not happened yet, so the active period is still the 2024 season.
	now := time.Date(2025, time.September, 2, 12, 0, 0, 0, time.UTC)
	got := CurrentFootball(now)
	if got.Season != 2024 {
		t.Fatalf("season=%d, want rollback to 2024", got.Season)
	}
	if got.Week != 18 {
		t.Fatalf("week=%d, want clamp to 18", got.Week)
	}
}

func TestCurrentBasketball_UsesReferenceZone(t *testing.T) {
	t.Parallel()

	et, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	// 02:30 UTC on March 2nd is still March 1st in the eastern zone.
	now := time.Date(2026, time.March, 2, 2, 30, 0, 0, time.UTC)
	got := CurrentBasketball(now, et)
	if got.Date != "2026-03-01" {
		t.Fatalf("date=%s, want 2026-03-01", got.Date)
	}
}

func TestValidateWeek(t *testing.T) {
	t.Parallel()

	for _, w := range []int{1, 18, 22} {
		if err := ValidateWeek(w); err != nil {
			t.Fatalf("week %d rejected: %v", w, err)
		}
	}
	for _, w := range []int{0, -1, 23} {
		if err := ValidateWeek(w); err == nil {
			t.Fatalf("week %d accepted", w)
		}
	}
}

func TestCompactDate(t *testing.T) {
	t.Parallel()

	got, err := CompactDate("2026-01-15")
	if err != nil || got != "20260115" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if _, err := CompactDate("01/15/2026"); err == nil {
		t.Fatal("expected parse error")
	}
}
