// Package espn reads basketball scoreboards, box scores and team rosters
// from the public site API. Box-score payload shapes drift between
// provider versions, so all parsing is duck-typed with synonym-aware
// field access.
package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/Ndwalker8/NFL-100/internal/domain/period"
	"github.com/Ndwalker8/NFL-100/internal/domain/player"
	"github.com/Ndwalker8/NFL-100/internal/domain/stats"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
	"github.com/Ndwalker8/NFL-100/internal/platform/rawrow"
	"github.com/Ndwalker8/NFL-100/internal/platform/resilience"
	"github.com/Ndwalker8/NFL-100/internal/usecase"
)

const (
	defaultBaseURL        = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	defaultBoxWorkers     = 6
	defaultRosterWorkers  = 8
	maxSampleErrors       = 4
	responseBodyByteLimit = 8 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	BoxWorkers     int
	RosterWorkers  int
	Logger         *logging.Logger
	Archiver       usecase.PayloadArchiver
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	boxWorkers     int
	rosterWorkers  int
	logger         *logging.Logger
	archiver       usecase.PayloadArchiver
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	boxWorkers := cfg.BoxWorkers
	if boxWorkers < 1 {
		boxWorkers = defaultBoxWorkers
	}
	rosterWorkers := cfg.RosterWorkers
	if rosterWorkers < 1 {
		rosterWorkers = defaultRosterWorkers
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		boxWorkers:     boxWorkers,
		rosterWorkers:  rosterWorkers,
		logger:         logger,
		archiver:       cfg.Archiver,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchSlate returns every box-score observation for a slate date. An
// empty schedule is a successful empty slate. Individual game failures
// degrade to warnings; only total failure is an error.
func (c *Client) FetchSlate(ctx context.Context, date string) (usecase.BasketballSlate, error) {
	compact, err := period.CompactDate(date)
	if err != nil {
		return usecase.BasketballSlate{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	scoreboardPath := "/scoreboard"
	scoreboardQuery := map[string]string{"dates": compact}
	root, err := c.doJSON(ctx, scoreboardPath, scoreboardQuery)
	if err != nil {
		if ctx.Err() != nil {
			return usecase.BasketballSlate{}, ctx.Err()
		}
		return usecase.BasketballSlate{}, &usecase.SourceUnavailableError{
			Source:   "espn",
			Attempts: []usecase.Attempt{{URL: c.requestURL(scoreboardPath, scoreboardQuery), Reason: err.Error()}},
		}
	}

	eventIDs := parseScoreboardEventIDs(root)
	if len(eventIDs) == 0 {
		c.logger.InfoContext(ctx, "empty slate", "date", date)
		return usecase.BasketballSlate{Players: []stats.BasketballPlayerGame{}}, nil
	}

	var (
		mu       sync.Mutex
		players  []stats.BasketballPlayerGame
		warnings []string
		failures []usecase.Attempt
	)

	workers, err := ants.NewPool(c.boxWorkers)
	if err != nil {
		return usecase.BasketballSlate{}, fmt.Errorf("create box-score worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for _, eventID := range eventIDs {
		eventID := eventID
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()

			summaryQuery := map[string]string{"event": eventID}
			summary, fetchErr := c.doJSON(ctx, "/summary", summaryQuery)
			if fetchErr != nil {
				mu.Lock()
				warnings = append(warnings, fmt.Sprintf("event %s: %v", eventID, fetchErr))
				failures = append(failures, usecase.Attempt{URL: c.requestURL("/summary", summaryQuery), Reason: fetchErr.Error()})
				mu.Unlock()
				return
			}

			games, parseWarnings := parseBoxScore(summary, eventID)
			mu.Lock()
			players = append(players, games...)
			warnings = append(warnings, parseWarnings...)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			warnings = append(warnings, fmt.Sprintf("event %s: submit: %v", eventID, submitErr))
			mu.Unlock()
		}
	}
	wg.Wait()

	if ctx.Err() != nil {
		return usecase.BasketballSlate{}, ctx.Err()
	}
	if len(failures) == len(eventIDs) {
		return usecase.BasketballSlate{}, &usecase.SourceUnavailableError{Source: "espn", Attempts: failures}
	}

	// Fan-in order depends on goroutine scheduling; fix it before handing
	// the slate to callers.
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].EventID != players[j].EventID {
			return players[i].EventID < players[j].EventID
		}
		return players[i].PlayerID < players[j].PlayerID
	})
	sort.Strings(warnings)

	c.logger.InfoContext(ctx, "slate fetched",
		"date", date, "events", len(eventIDs), "players", len(players), "warnings", len(warnings))
	return usecase.BasketballSlate{Players: players, Warnings: warnings}, nil
}

// ListRosters returns the rostered players for every team on the slate.
// When the slate is empty, or every roster fetch fails, it falls back to
// the league-wide team listing so the pool is never silently empty.
func (c *Client) ListRosters(ctx context.Context, date string) ([]player.Player, []string, error) {
	compact, err := period.CompactDate(date)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	teamIDs := []string{}
	warnings := []string{}

	root, err := c.doJSON(ctx, "/scoreboard", map[string]string{"dates": compact})
	if err == nil {
		teamIDs = parseScoreboardTeamIDs(root)
	} else {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		warnings = append(warnings, fmt.Sprintf("scoreboard: %v", err))
	}

	if len(teamIDs) == 0 {
		leagueRoot, leagueErr := c.doJSON(ctx, "/teams", nil)
		if leagueErr != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			return nil, nil, &usecase.SourceUnavailableError{
				Source: "espn",
				Attempts: []usecase.Attempt{
					{URL: c.requestURL("/scoreboard", map[string]string{"dates": compact}), Reason: "no slate teams"},
					{URL: c.requestURL("/teams", nil), Reason: leagueErr.Error()},
				},
			}
		}
		teamIDs = parseLeagueTeamIDs(leagueRoot)
		warnings = append(warnings, "empty slate, pool built from league-wide team list")
	}

	sort.Strings(teamIDs)

	var (
		mu      sync.Mutex
		players []player.Player
		sampled []string
		failed  int
	)

	workers := pool.New().WithMaxGoroutines(c.rosterWorkers)
	for _, teamID := range teamIDs {
		teamID := teamID
		workers.Go(func() {
			rosterRoot, rosterErr := c.doJSON(ctx, "/teams/"+teamID, map[string]string{"enable": "roster"})
			if rosterErr != nil {
				mu.Lock()
				failed++
				if len(sampled) < maxSampleErrors {
					sampled = append(sampled, fmt.Sprintf("team %s: %v", teamID, rosterErr))
				}
				mu.Unlock()
				return
			}

			roster := parseTeamRoster(rosterRoot)
			mu.Lock()
			players = append(players, roster...)
			mu.Unlock()
		})
	}
	workers.Wait()

	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	if failed == len(teamIDs) && len(teamIDs) > 0 {
		attempts := make([]usecase.Attempt, 0, len(sampled))
		for _, s := range sampled {
			attempts = append(attempts, usecase.Attempt{URL: c.requestURL("/teams/...", nil), Reason: s})
		}
		return nil, nil, &usecase.SourceUnavailableError{Source: "espn", Attempts: attempts}
	}

	warnings = append(warnings, sampled...)
	if failed > maxSampleErrors {
		warnings = append(warnings, fmt.Sprintf("%d additional roster fetches failed", failed-maxSampleErrors))
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})

	c.logger.InfoContext(ctx, "rosters fetched",
		"date", date, "teams", len(teamIDs), "players", len(players), "failed_teams", failed)
	return players, warnings, nil
}

func (c *Client) requestURL(path string, query map[string]string) string {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string) (rawrow.Row, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: basketball stat source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.requestURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errESPNTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if c.archiver != nil {
		c.archiver.Archive(ctx, "espn", "api_response", fullURL, raw)
	}

	var root rawrow.Row
	if err := sonic.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return root, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, responseBodyByteLimit))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d", errESPNTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
