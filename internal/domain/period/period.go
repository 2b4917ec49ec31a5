// Package period resolves "now" into the scoring period each sport uses:
// a season+week pair for football, a slate date for basketball.
package period

import (
	"fmt"
	"time"

	"github.com/Ndwalker8/NFL-100/internal/domain/player"
)

const (
	FirstWeek = 1
	LastWeek  = 18

	// MaxProbeWeek bounds the backward data probe; late season feeds can
	// carry postseason weeks beyond the regular 18.
	MaxProbeWeek = 22
)

// Football is a season+week scoring period.
type Football struct {
	Season int
	Week   int
}

func (f Football) String() string {
	return fmt.Sprintf("%d-%d", f.Season, f.Week)
}

// Basketball is a single slate date, formatted YYYY-MM-DD.
type Basketball struct {
	Date string
}

// Period is the sport-tagged union handed to API callers.
type Period struct {
	Sport  player.Sport
	Season int
	Week   int
	Date   string
}

// SeasonFor maps a UTC instant onto the football season label: September
// through December belong to the current year, January through August to
// the prior year's season.
func SeasonFor(now time.Time) int {
	now = now.UTC()
	if now.Month() >= time.September {
		return now.Year()
	}
	return now.Year() - 1
}

// Kickoff returns the season opener instant: the first Thursday strictly
// after the first Monday of September, at 00:00 UTC.
func Kickoff(season int) time.Time {
	d := time.Date(season, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	d = d.AddDate(0, 0, 1)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// CurrentFootball resolves the active football period at the given instant.
// Before the season's kickoff it rolls back to the final week of the prior
// season; the week index clamps to [FirstWeek, LastWeek].
func CurrentFootball(now time.Time) Football {
	now = now.UTC()
	season := SeasonFor(now)
	kickoff := Kickoff(season)
	if now.Before(kickoff) {
		season--
		kickoff = Kickoff(season)
	}

	week := int(now.Sub(kickoff)/(7*24*time.Hour)) + 1
	if week < FirstWeek {
		week = FirstWeek
	}
	if week > LastWeek {
		week = LastWeek
	}

	return Football{Season: season, Week: week}
}

// CurrentBasketball resolves "today" in the given reference zone. Slates
// are labelled by the league's home timezone, not the caller's.
func CurrentBasketball(now time.Time, zone *time.Location) Basketball {
	if zone == nil {
		zone = time.UTC
	}
	return Basketball{Date: now.In(zone).Format("2006-01-02")}
}

// ValidateWeek checks a caller-supplied week against the probe-extended
// range.
func ValidateWeek(week int) error {
	if week < FirstWeek || week > MaxProbeWeek {
		return fmt.Errorf("week %d out of range [%d, %d]", week, FirstWeek, MaxProbeWeek)
	}
	return nil
}

// ValidateDate checks a caller-supplied slate date.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, err)
	}
	return nil
}

// CompactDate converts YYYY-MM-DD to the YYYYMMDD form scoreboard feeds use.
func CompactDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("date %q is not YYYY-MM-DD: %w", date, err)
	}
	return t.Format("20060102"), nil
}
