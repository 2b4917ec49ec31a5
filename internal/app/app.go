package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Ndwalker8/NFL-100/external/espn"
	"github.com/Ndwalker8/NFL-100/external/nflverse"
	"github.com/Ndwalker8/NFL-100/internal/config"
	"github.com/Ndwalker8/NFL-100/internal/infrastructure/repository/postgres"
	"github.com/Ndwalker8/NFL-100/internal/interfaces/httpapi"
	"github.com/Ndwalker8/NFL-100/internal/platform/cache"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
	"github.com/Ndwalker8/NFL-100/internal/platform/resilience"
	"github.com/Ndwalker8/NFL-100/internal/usecase"
)

// NewHTTPServer wires the service graph. The returned cleanup closes
// resources that outlive a request, currently the archive DB pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cleanup := func(context.Context) error { return nil }

	var archiver usecase.PayloadArchiver
	if cfg.ArchiveEnabled {
		db, err := openArchiveDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open archive db: %w", err)
		}
		archiver = usecase.NewArchiveService(postgres.NewRawDataRepository(db), logger)
		cleanup = func(context.Context) error { return db.Close() }
		logger.Info("payload archive enabled", "db", dbNameFromURL(cfg.DBURL))
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	zone, err := time.LoadLocation(cfg.BasketballZone)
	if err != nil {
		return nil, nil, fmt.Errorf("load slate timezone %q: %w", cfg.BasketballZone, err)
	}

	nflClient := nflverse.NewClient(nflverse.ClientConfig{
		RawBase:        cfg.NFLVerseRawBase,
		ReleaseBase1:   cfg.NFLVerseReleaseBase1,
		ReleaseBase2:   cfg.NFLVerseReleaseBase2,
		RequestTimeout: cfg.NFLVerseTimeout,
		MaxRetries:     cfg.NFLVerseMaxRetries,
		Logger:         logger,
		Archiver:       archiver,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NFLVerseCircuitEnabled,
			FailureThreshold: cfg.NFLVerseCircuitFailureCount,
			OpenTimeout:      cfg.NFLVerseCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NFLVerseCircuitHalfOpenReq,
		},
	})

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:       cfg.ESPNBaseURL,
		Timeout:       cfg.ESPNTimeout,
		MaxRetries:    cfg.ESPNMaxRetries,
		BoxWorkers:    cfg.ESPNBoxWorkers,
		RosterWorkers: cfg.ESPNRosterWorkers,
		Logger:        logger,
		Archiver:      archiver,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenReq,
		},
	})

	periodSvc := usecase.NewPeriodService(usecase.PeriodServiceConfig{
		Football:         nflClient,
		Cache:            store,
		Logger:           logger,
		BasketballZone:   zone,
		CandidateSeasons: cfg.CandidateSeasons,
	})
	poolSvc := usecase.NewPoolService(nflClient, espnClient, store, logger)
	snapshotSvc := usecase.NewSnapshotService(usecase.SnapshotServiceConfig{
		Football:     nflClient,
		Basketball:   espnClient,
		Aggregator:   usecase.NewAggregator(cfg.MergePolicy),
		Cache:        store,
		Logger:       logger,
		FetchTimeout: cfg.SnapshotFetchTimeout,
	})

	handler := httpapi.NewHandler(periodSvc, poolSvc, snapshotSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openArchiveDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
