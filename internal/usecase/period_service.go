package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Ndwalker8/NFL-100/internal/domain/period"
	"github.com/Ndwalker8/NFL-100/internal/platform/cache"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
)

// PeriodService resolves the active scoring period per sport. Calendar
// math is instant; the data-backed probe walks actual snapshots and is
// cached.
type PeriodService struct {
	football         FootballStatsSource
	cache            *cache.Store
	logger           *logging.Logger
	now              func() time.Time
	basketballZone   *time.Location
	candidateSeasons []int
}

type PeriodServiceConfig struct {
	Football         FootballStatsSource
	Cache            *cache.Store
	Logger           *logging.Logger
	Now              func() time.Time
	BasketballZone   *time.Location
	CandidateSeasons []int
}

func NewPeriodService(cfg PeriodServiceConfig) *PeriodService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	zone := cfg.BasketballZone
	if zone == nil {
		zone = time.UTC
	}
	seasons := cfg.CandidateSeasons
	if len(seasons) == 0 {
		current := period.SeasonFor(now())
		seasons = []int{current, current - 1, current - 2}
	}

	return &PeriodService{
		football:         cfg.Football,
		cache:            cfg.Cache,
		logger:           logger,
		now:              now,
		basketballZone:   zone,
		candidateSeasons: seasons,
	}
}

// CurrentFootball returns the calendar-derived football period.
func (s *PeriodService) CurrentFootball(ctx context.Context) period.Football {
	_, span := startUsecaseSpan(ctx, "usecase.PeriodService.CurrentFootball")
	defer span.End()

	return period.CurrentFootball(s.now())
}

// CurrentBasketball returns today's slate date in the reference zone.
func (s *PeriodService) CurrentBasketball(ctx context.Context) period.Basketball {
	_, span := startUsecaseSpan(ctx, "usecase.PeriodService.CurrentBasketball")
	defer span.End()

	return period.CurrentBasketball(s.now(), s.basketballZone)
}

// ActiveFootball probes backward for the most recent football period that
// actually has data: the highest populated week of the first candidate
// season with any rows. Exhausting every candidate is ErrNoDataFound.
func (s *PeriodService) ActiveFootball(ctx context.Context) (period.Football, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PeriodService.ActiveFootball")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		for _, season := range s.candidateSeasons {
			if ctx.Err() != nil {
				return period.Football{}, ctx.Err()
			}

			data, err := s.football.FetchSeason(ctx, season)
			if err != nil {
				s.logger.WarnContext(ctx, "season probe failed, trying next candidate",
					"season", season, "error", err)
				continue
			}

			if week := highestPopulatedWeek(data); week > 0 {
				return period.Football{Season: data.SeasonUsed, Week: week}, nil
			}
		}
		return period.Football{}, fmt.Errorf("%w: probed seasons %v", ErrNoDataFound, s.candidateSeasons)
	}

	var (
		out any
		err error
	)
	if s.cache != nil {
		out, err = s.cache.GetOrLoad(ctx, "period:football:active", load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return period.Football{}, err
	}

	active, ok := out.(period.Football)
	if !ok {
		return period.Football{}, fmt.Errorf("unexpected cached period type %T", out)
	}
	return active, nil
}

func highestPopulatedWeek(data FootballSeasonData) int {
	best := 0
	for _, row := range data.Rows {
		if row.Week > best && row.Week <= period.MaxProbeWeek {
			best = row.Week
		}
	}
	return best
}
