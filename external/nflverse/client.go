// Package nflverse downloads weekly football stat snapshots published as
// CSV assets. Assets move between release locations and compression
// schemes over time, so every fetch walks an ordered candidate list and
// takes the first one that parses.
package nflverse

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
	"github.com/Ndwalker8/NFL-100/internal/platform/resilience"
	"github.com/Ndwalker8/NFL-100/internal/usecase"
)

const (
	defaultRawBase      = "https://github.com/nflverse/nflverse-data/releases/download/player_stats"
	defaultReleaseBase1 = "https://github.com/nflverse/nflverse-data/releases/download/stats_player"
	defaultReleaseBase2 = "https://github.com/nflverse/nflverse-data/releases/download/stats_player_week"

	// Seasons after this one may not have a published asset yet; a failed
	// fetch falls back to the prior season.
	latestPublishedSeason = 2024

	maxBodyBytes = 64 << 20
)

var errNflverseTransient = crerr.New("nflverse transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	RawBase        string
	ReleaseBase1   string
	ReleaseBase2   string
	RequestTimeout time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Archiver       usecase.PayloadArchiver
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	rawBase        string
	releaseBase1   string
	releaseBase2   string
	requestTimeout time.Duration
	maxRetries     int
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
		httpClient = &fasthttp.Client{
			MaxResponseBodySize: maxBodyBytes,
			ReadTimeout:         cfg.RequestTimeout,
		}
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		rawBase:        baseOrDefault(cfg.RawBase, defaultRawBase),
		releaseBase1:   baseOrDefault(cfg.ReleaseBase1, defaultReleaseBase1),
		releaseBase2:   baseOrDefault(cfg.ReleaseBase2, defaultReleaseBase2),
		requestTimeout: timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		archiver:       cfg.Archiver,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func baseOrDefault(raw, fallback string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return fallback
	}
	return base
}

// candidates lists snapshot locations in priority order: the raw gzip
// asset first, then the per-week release assets in both compressions.
func (c *Client) candidates(season int) []string {
	return []string{
		fmt.Sprintf("%s/player_stats_%d.csv.gz", c.rawBase, season),
		fmt.Sprintf("%s/stats_player_week_%d.csv.gz", c.releaseBase1, season),
		fmt.Sprintf("%s/stats_player_week_%d.csv", c.releaseBase1, season),
		fmt.Sprintf("%s/stats_player_week_%d.csv.gz", c.releaseBase2, season),
		fmt.Sprintf("%s/stats_player_week_%d.csv", c.releaseBase2, season),
	}
}

// FetchSeason downloads and parses the weekly stat snapshot for a season.
// An unpublished future season falls back to the prior one; SeasonUsed
// reports which season's data came back.
func (c *Client) FetchSeason(ctx context.Context, season int) (usecase.FootballSeasonData, error) {
	if season <= 0 {
		return usecase.FootballSeasonData{}, fmt.Errorf("%w: season must be positive", usecase.ErrInvalidInput)
	}

	result, err := c.fetchSeasonOnce(ctx, season)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return usecase.FootballSeasonData{}, ctx.Err()
	}

	if season > latestPublishedSeason {
		c.logger.WarnContext(ctx, "season snapshot missing, falling back to prior season",
			"season", season, "fallback_season", season-1, "error", err)
		fallback, fbErr := c.fetchSeasonOnce(ctx, season-1)
		if fbErr == nil {
			return fallback, nil
		}
	}

	return usecase.FootballSeasonData{}, err
}

func (c *Client) fetchSeasonOnce(ctx context.Context, season int) (usecase.FootballSeasonData, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nflverse circuit breaker rejected request", "state", c.breaker.State())
			return usecase.FootballSeasonData{}, fmt.Errorf("%w: football stat source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	key := fmt.Sprintf("season:%d", season)
	out, err, _ := c.flight.Do(key, func() (any, error) {
		res, fetchErr := c.walkCandidates(ctx, season)
		if c.circuitEnabled {
			if fetchErr != nil && isNflverseCircuitFailure(fetchErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return res, fetchErr
	})
	if err != nil {
		return usecase.FootballSeasonData{}, err
	}

	result, ok := out.(usecase.FootballSeasonData)
	if !ok {
		return usecase.FootballSeasonData{}, fmt.Errorf("unexpected season result type %T", out)
	}
	return result, nil
}

func (c *Client) walkCandidates(ctx context.Context, season int) (usecase.FootballSeasonData, error) {
	attempts := make([]usecase.Attempt, 0, 5)
	for _, candidateURL := range c.candidates(season) {
		if ctx.Err() != nil {
			return usecase.FootballSeasonData{}, ctx.Err()
		}

		body, err := c.download(ctx, candidateURL)
		if err != nil {
			attempts = append(attempts, usecase.Attempt{URL: candidateURL, Reason: err.Error()})
			continue
		}

		plain, err := maybeGunzip(body)
		if err != nil {
			attempts = append(attempts, usecase.Attempt{URL: candidateURL, Reason: "decompress: " + err.Error()})
			continue
		}

		rows, warnings, err := parseSeasonCSV(plain, season)
		if err != nil {
			// Malformed payload: record and move to the next candidate.
			attempts = append(attempts, usecase.Attempt{URL: candidateURL, Reason: "parse: " + err.Error()})
			continue
		}

		if c.archiver != nil {
			c.archiver.Archive(ctx, "nflverse", "csv_snapshot", candidateURL, plain)
		}

		c.logger.InfoContext(ctx, "season snapshot fetched",
			"season", season, "url", candidateURL, "rows", len(rows), "row_warnings", len(warnings))
		return usecase.FootballSeasonData{SeasonUsed: season, Rows: rows, Warnings: warnings}, nil
	}

	return usecase.FootballSeasonData{}, &usecase.SourceUnavailableError{Source: "nflverse", Attempts: attempts}
}

func (c *Client) download(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		body, status, err := c.doGet(fullURL)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errNflverseTransient, err)
		} else if status >= 200 && status < 300 {
			return body, nil
		} else if isRetryableStatus(status) {
			lastErr = fmt.Errorf("%w: status=%d", errNflverseTransient, status)
		} else {
			return nil, fmt.Errorf("status=%d", status)
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
		lastErr = fmt.Errorf("download failed")
	}
	return nil, lastErr
}

func (c *Client) doGet(fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/csv, application/gzip, */*")

	if err := c.httpClient.DoRedirects(req, resp, 5); err != nil {
		return nil, 0, err
	}

	// The response buffer is pooled; copy before release.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, resp.StatusCode(), nil
}

var gzipMagic = []byte{0x1f, 0x8b}

// maybeGunzip decompresses when the body carries the gzip magic bytes.
// The sniff is authoritative over the asset's file extension; mislabelled
// assets show up in the wild in both directions.
func maybeGunzip(body []byte) ([]byte, error) {
	if len(body) < 2 || !bytes.Equal(body[:2], gzipMagic) {
		return body, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = zr.Close()
	}()

	plain, err := io.ReadAll(io.LimitReader(zr, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return plain, nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func isNflverseCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errNflverseTransient)
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
