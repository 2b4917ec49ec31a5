package usecase

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Ndwalker8/NFL-100/internal/domain/period"
	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/platform/cache"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
)

// PoolService builds the selectable player pools. Football pools derive
// from the season stat snapshot; basketball pools come from team rosters.
type PoolService struct {
	football FootballStatsSource
	rosters  BasketballRosterSource
	cache    *cache.Store
	logger   *logging.Logger
}

func NewPoolService(football FootballStatsSource, rosters BasketballRosterSource, store *cache.Store, logger *logging.Logger) *PoolService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PoolService{
		football: football,
		rosters:  rosters,
		cache:    store,
		logger:   logger,
	}
}

// FootballPool is the eligible football pool for a season, or one week of
// it. Warnings are non-fatal and must be surfaced to the caller.
type FootballPool struct {
	SeasonUsed int             `json:"seasonUsed"`
	Week       int             `json:"week,omitempty"`
	Players    []player.Player `json:"players"`
	Warnings   []string        `json:"warnings"`
}

// BasketballPool is the rostered basketball pool for a slate date.
type BasketballPool struct {
	Date     string          `json:"date"`
	Players  []player.Player `json:"players"`
	Warnings []string        `json:"warnings"`
}

func (s *PoolService) GetFootballPool(ctx context.Context, season, week int) (FootballPool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.GetFootballPool")
	defer span.End()

	if season <= 0 {
		return FootballPool{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if week != 0 {
		if err := period.ValidateWeek(week); err != nil {
			return FootballPool{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	key := fmt.Sprintf("pool:nfl:%d:%d", season, week)
	out, err := s.loadCached(ctx, key, func(ctx context.Context) (any, error) {
		data, err := s.football.FetchSeason(ctx, season)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]struct{}, 512)
		players := make([]player.Player, 0, 512)
		for _, row := range data.Rows {
			if week != 0 && row.Week != week {
				continue
			}
			identity := player.IdentityFor(player.SportFootball, row.PlayerID, row.Name, row.Team)
			if _, dup := seen[identity.Key]; dup {
				continue
			}
			seen[identity.Key] = struct{}{}
			players = append(players, player.Player{
				ID:       row.PlayerID,
				Sport:    player.SportFootball,
				Name:     row.Name,
				Team:     row.Team,
				Position: row.Position,
			})
		}
		sortPlayersByName(players)

		warnings := data.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		return FootballPool{
			SeasonUsed: data.SeasonUsed,
			Week:       week,
			Players:    players,
			Warnings:   warnings,
		}, nil
	})
	if err != nil {
		return FootballPool{}, err
	}

	pool, ok := out.(FootballPool)
	if !ok {
		return FootballPool{}, fmt.Errorf("unexpected cached pool type %T", out)
	}
	return pool, nil
}

func (s *PoolService) GetBasketballPool(ctx context.Context, date string) (BasketballPool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PoolService.GetBasketballPool")
	defer span.End()

	if err := period.ValidateDate(date); err != nil {
		return BasketballPool{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := "pool:nba:" + date
	out, err := s.loadCached(ctx, key, func(ctx context.Context) (any, error) {
		players, warnings, err := s.rosters.ListRosters(ctx, date)
		if err != nil {
			return nil, err
		}
		if players == nil {
			players = []player.Player{}
		}
		if warnings == nil {
			warnings = []string{}
		}
		return BasketballPool{Date: date, Players: players, Warnings: warnings}, nil
	})
	if err != nil {
		return BasketballPool{}, err
	}

	pool, ok := out.(BasketballPool)
	if !ok {
		return BasketballPool{}, fmt.Errorf("unexpected cached pool type %T", out)
	}
	return pool, nil
}

func (s *PoolService) loadCached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, loader)
}

func sortPlayersByName(players []player.Player) {
	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(players, func(i, j int) bool {
		if cmp := collator.CompareString(players[i].Name, players[j].Name); cmp != 0 {
			return cmp < 0
		}
		return players[i].ID < players[j].ID
	})
}
