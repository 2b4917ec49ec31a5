package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Ndwalker8/NFL-100/internal/domain/period"
	"github.com/Ndwalker8/NFL-100/internal/domain/scoring"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
	"github.com/Ndwalker8/NFL-100/internal/platform/cache"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
)

// SnapshotService produces aggregated scoring snapshots for a period.
// Partial upstream failure degrades to warnings on a successful snapshot;
// only total source failure surfaces as an error.
type SnapshotService struct {
	football     FootballStatsSource
	basketball   BasketballStatsSource
	aggregator   *Aggregator
	cache        *cache.Store
	logger       *logging.Logger
	fetchTimeout time.Duration
}

type SnapshotServiceConfig struct {
	Football     FootballStatsSource
	Basketball   BasketballStatsSource
	Aggregator   *Aggregator
	Cache        *cache.Store
	Logger       *logging.Logger
	FetchTimeout time.Duration
}

func NewSnapshotService(cfg SnapshotServiceConfig) *SnapshotService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	aggregator := cfg.Aggregator
	if aggregator == nil {
		aggregator = NewAggregator(scoring.MergeMax)
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &SnapshotService{
		football:     cfg.Football,
		basketball:   cfg.Basketball,
		aggregator:   aggregator,
		cache:        cfg.Cache,
		logger:       logger,
		fetchTimeout: timeout,
	}
}

// FootballSnapshot is a scored, ordered view of one football week.
type FootballSnapshot struct {
	Season     int          `json:"season"`
	SeasonUsed int          `json:"seasonUsed"`
	Week       int          `json:"week"`
	Mode       scoring.Mode `json:"mode"`
	Entries    []ScoreEntry `json:"entries"`
	Warnings   []string     `json:"warnings"`
}

// BasketballSnapshot is a scored, ordered view of one slate date.
type BasketballSnapshot struct {
	Date     string       `json:"date"`
	Entries  []ScoreEntry `json:"entries"`
	Warnings []string     `json:"warnings"`
}

func (s *SnapshotService) GetFootballSnapshot(ctx context.Context, season, week int, mode scoring.Mode) (FootballSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.GetFootballSnapshot")
	defer span.End()

	if season <= 0 {
		return FootballSnapshot{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if err := period.ValidateWeek(week); err != nil {
		return FootballSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := fmt.Sprintf("snapshot:nfl:%d:%d:%s", season, week, mode)
	out, err := s.loadCached(ctx, key, func(ctx context.Context) (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()

		data, err := s.football.FetchSeason(fetchCtx, season)
		if err != nil {
			return nil, err
		}

		weekRows := make([]stats.FootballPlayerWeek, 0, 512)
		for _, row := range data.Rows {
			if row.Week == week {
				weekRows = append(weekRows, row)
			}
		}

		entries, aggWarnings := s.aggregator.AggregateFootball(weekRows, mode)
		warnings := append(append([]string{}, data.Warnings...), aggWarnings...)

		if len(weekRows) == 0 {
			s.logger.InfoContext(ctx, "football week has no rows",
				"season", data.SeasonUsed, "week", week)
		}

		return FootballSnapshot{
			Season:     season,
			SeasonUsed: data.SeasonUsed,
			Week:       week,
			Mode:       mode,
			Entries:    entries,
			Warnings:   warnings,
		}, nil
	})
	if err != nil {
		return FootballSnapshot{}, err
	}

	snapshot, ok := out.(FootballSnapshot)
	if !ok {
		return FootballSnapshot{}, fmt.Errorf("unexpected cached snapshot type %T", out)
	}
	return snapshot, nil
}

func (s *SnapshotService) GetBasketballSnapshot(ctx context.Context, date string) (BasketballSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.GetBasketballSnapshot")
	defer span.End()

	if err := period.ValidateDate(date); err != nil {
		return BasketballSnapshot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := "snapshot:nba:" + date
	out, err := s.loadCached(ctx, key, func(ctx context.Context) (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()

		slate, err := s.basketball.FetchSlate(fetchCtx, date)
		if err != nil {
			return nil, err
		}

		entries, aggWarnings := s.aggregator.AggregateBasketball(slate.Players)
		warnings := append(append([]string{}, slate.Warnings...), aggWarnings...)

		return BasketballSnapshot{
			Date:     date,
			Entries:  entries,
			Warnings: warnings,
		}, nil
	})
	if err != nil {
		return BasketballSnapshot{}, err
	}

	snapshot, ok := out.(BasketballSnapshot)
	if !ok {
		return BasketballSnapshot{}, fmt.Errorf("unexpected cached snapshot type %T", out)
	}
	return snapshot, nil
}

func (s *SnapshotService) loadCached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}
