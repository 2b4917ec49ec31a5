package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ndwalker8/NFL-100/internal/domain/scoring"
	"github.com/Ndwalker8/NFL-100/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	PprofEnabled       bool
	PprofAddr          string

	CacheEnabled bool
	CacheTTL     time.Duration

	MergePolicy          scoring.MergePolicy
	CandidateSeasons     []int
	BasketballZone       string
	SnapshotFetchTimeout time.Duration

	NFLVerseRawBase             string
	NFLVerseReleaseBase1        string
	NFLVerseReleaseBase2        string
	NFLVerseTimeout             time.Duration
	NFLVerseMaxRetries          int
	NFLVerseCircuitEnabled      bool
	NFLVerseCircuitFailureCount int
	NFLVerseCircuitOpenTimeout  time.Duration
	NFLVerseCircuitHalfOpenReq  int

	ESPNBaseURL             string
	ESPNTimeout             time.Duration
	ESPNMaxRetries          int
	ESPNBoxWorkers          int
	ESPNRosterWorkers       int
	ESPNCircuitEnabled      bool
	ESPNCircuitFailureCount int
	ESPNCircuitOpenTimeout  time.Duration
	ESPNCircuitHalfOpenReq  int

	ArchiveEnabled          bool
	DBURL                   string
	DBDisablePreparedBinary bool

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	mergePolicy, err := scoring.ParseMergePolicy(getEnv("SCORING_MERGE_POLICY", "max"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_MERGE_POLICY: %w", err)
	}

	candidateSeasons, err := parseSeasonList(getEnv("PERIOD_CANDIDATE_SEASONS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("parse PERIOD_CANDIDATE_SEASONS: %w", err)
	}

	basketballZone := strings.TrimSpace(getEnv("NBA_SLATE_TIMEZONE", "America/New_York"))
	if basketballZone == "" {
		return Config{}, fmt.Errorf("NBA_SLATE_TIMEZONE cannot be empty")
	}

	snapshotFetchTimeout, err := time.ParseDuration(getEnv("SNAPSHOT_FETCH_TIMEOUT", "45s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_FETCH_TIMEOUT: %w", err)
	}
	if snapshotFetchTimeout <= 0 {
		return Config{}, fmt.Errorf("SNAPSHOT_FETCH_TIMEOUT must be > 0")
	}

	nflverseTimeout, err := time.ParseDuration(getEnv("NFLVERSE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_TIMEOUT: %w", err)
	}
	if nflverseTimeout <= 0 {
		return Config{}, fmt.Errorf("NFLVERSE_TIMEOUT must be > 0")
	}
	nflverseMaxRetries, err := getEnvAsInt("NFLVERSE_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_MAX_RETRIES: %w", err)
	}
	if nflverseMaxRetries < 0 {
		return Config{}, fmt.Errorf("NFLVERSE_MAX_RETRIES must be >= 0")
	}
	nflverseCircuitEnabled, err := strconv.ParseBool(getEnv("NFLVERSE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_ENABLED: %w", err)
	}
	nflverseCircuitFailureCount, err := getEnvAsInt("NFLVERSE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if nflverseCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("NFLVERSE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	nflverseCircuitOpenTimeout, err := time.ParseDuration(getEnv("NFLVERSE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if nflverseCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("NFLVERSE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	nflverseCircuitHalfOpenReq, err := getEnvAsInt("NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if nflverseCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("NFLVERSE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	espnTimeout, err := time.ParseDuration(getEnv("ESPN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_TIMEOUT: %w", err)
	}
	if espnTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_TIMEOUT must be > 0")
	}
	espnMaxRetries, err := getEnvAsInt("ESPN_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_MAX_RETRIES: %w", err)
	}
	if espnMaxRetries < 0 {
		return Config{}, fmt.Errorf("ESPN_MAX_RETRIES must be >= 0")
	}
	espnBoxWorkers, err := getEnvAsInt("ESPN_BOX_WORKERS", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_BOX_WORKERS: %w", err)
	}
	if espnBoxWorkers < 1 {
		return Config{}, fmt.Errorf("ESPN_BOX_WORKERS must be >= 1")
	}
	espnRosterWorkers, err := getEnvAsInt("ESPN_ROSTER_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_ROSTER_WORKERS: %w", err)
	}
	if espnRosterWorkers < 1 {
		return Config{}, fmt.Errorf("ESPN_ROSTER_WORKERS must be >= 1")
	}
	espnCircuitEnabled, err := strconv.ParseBool(getEnv("ESPN_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_ENABLED: %w", err)
	}
	espnCircuitFailureCount, err := getEnvAsInt("ESPN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if espnCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	espnCircuitOpenTimeout, err := time.ParseDuration(getEnv("ESPN_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if espnCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	espnCircuitHalfOpenReq, err := getEnvAsInt("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ESPN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if espnCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("ESPN_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	archiveEnabled, err := strconv.ParseBool(getEnv("ARCHIVE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if archiveEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when ARCHIVE_ENABLED=true")
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "nfl-100-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		LogLevel:           logLevel,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:     swaggerEnabled,
		PprofEnabled:       pprofEnabled,
		PprofAddr:          pprofAddr,

		CacheEnabled: cacheEnabled,
		CacheTTL:     cacheTTL,

		MergePolicy:          mergePolicy,
		CandidateSeasons:     candidateSeasons,
		BasketballZone:       basketballZone,
		SnapshotFetchTimeout: snapshotFetchTimeout,

		NFLVerseRawBase:             strings.TrimSpace(getEnv("NFLVERSE_RAW_BASE_URL", "")),
		NFLVerseReleaseBase1:        strings.TrimSpace(getEnv("NFLVERSE_RELEASE_BASE_URL_1", "")),
		NFLVerseReleaseBase2:        strings.TrimSpace(getEnv("NFLVERSE_RELEASE_BASE_URL_2", "")),
		NFLVerseTimeout:             nflverseTimeout,
		NFLVerseMaxRetries:          nflverseMaxRetries,
		NFLVerseCircuitEnabled:      nflverseCircuitEnabled,
		NFLVerseCircuitFailureCount: nflverseCircuitFailureCount,
		NFLVerseCircuitOpenTimeout:  nflverseCircuitOpenTimeout,
		NFLVerseCircuitHalfOpenReq:  nflverseCircuitHalfOpenReq,

		ESPNBaseURL:             strings.TrimSpace(getEnv("ESPN_BASE_URL", "")),
		ESPNTimeout:             espnTimeout,
		ESPNMaxRetries:          espnMaxRetries,
		ESPNBoxWorkers:          espnBoxWorkers,
		ESPNRosterWorkers:       espnRosterWorkers,
		ESPNCircuitEnabled:      espnCircuitEnabled,
		ESPNCircuitFailureCount: espnCircuitFailureCount,
		ESPNCircuitOpenTimeout:  espnCircuitOpenTimeout,
		ESPNCircuitHalfOpenReq:  espnCircuitHalfOpenReq,

		ArchiveEnabled:          archiveEnabled,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		UptraceCaptureRequestBody:  uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes: uptraceRequestBodyMaxBytes,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        betterStackEndpoint,
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        betterStackMinLevel,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseSeasonList reads a comma-separated list of season years, most
// recent first. Empty input means "derive from the calendar at startup".
func parseSeasonList(raw string) ([]int, error) {
	items := splitCSV(raw)
	if len(items) == 0 {
		return nil, nil
	}

	out := make([]int, 0, len(items))
	for _, item := range items {
		season, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid season %q: %w", item, err)
		}
		if season < 1999 {
			return nil, fmt.Errorf("season %d predates the stat feed", season)
		}
		out = append(out, season)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
