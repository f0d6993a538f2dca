package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	CORSAllowedOrigins           []string
	APISportsBaseURL             string
	APISportsKey                 string
	APISportsTimeout             time.Duration
	APISportsMaxRetries          int
	APISportsCircuitEnabled      bool
	APISportsCircuitFailureCount int
	APISportsCircuitOpenTimeout  time.Duration
	APISportsCircuitHalfOpenReq  int
	LeagueIDByName               map[string]int64
	LiveCacheTTL                 time.Duration
	ReferenceCacheTTL            time.Duration
	ScheduleWindow               time.Duration
	OddsHorizon                  time.Duration
	RefreshWorkers               int
	UptraceEnabled               bool
	UptraceDSN                   string
	LogLevel                     logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	apiSportsTimeout, err := time.ParseDuration(getEnv("APISPORTS_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_TIMEOUT: %w", err)
	}
	if apiSportsTimeout <= 0 {
		return Config{}, fmt.Errorf("APISPORTS_TIMEOUT must be > 0")
	}
	apiSportsMaxRetries, err := getEnvAsInt("APISPORTS_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_MAX_RETRIES: %w", err)
	}
	if apiSportsMaxRetries < 0 {
		return Config{}, fmt.Errorf("APISPORTS_MAX_RETRIES must be >= 0")
	}
	apiSportsCircuitEnabled, err := strconv.ParseBool(getEnv("APISPORTS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_ENABLED: %w", err)
	}
	apiSportsCircuitFailureCount, err := getEnvAsInt("APISPORTS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if apiSportsCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	apiSportsCircuitOpenTimeout, err := time.ParseDuration(getEnv("APISPORTS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if apiSportsCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	apiSportsCircuitHalfOpenReq, err := getEnvAsInt("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if apiSportsCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("APISPORTS_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	apiSportsKey := strings.TrimSpace(getEnv("APISPORTS_API_KEY", ""))
	if appEnv == EnvProd && apiSportsKey == "" {
		return Config{}, fmt.Errorf("APISPORTS_API_KEY is required when APP_ENV=prod")
	}

	leagueIDByName, err := parseIDMap(getEnv("LEAGUE_ID_MAP", "nfl:1,ncaa:2"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_ID_MAP: %w", err)
	}

	liveCacheTTL, err := time.ParseDuration(getEnv("LIVE_CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse LIVE_CACHE_TTL: %w", err)
	}
	if liveCacheTTL <= 0 {
		return Config{}, fmt.Errorf("LIVE_CACHE_TTL must be > 0")
	}
	referenceCacheTTL, err := time.ParseDuration(getEnv("REFERENCE_CACHE_TTL", "300s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REFERENCE_CACHE_TTL: %w", err)
	}
	if referenceCacheTTL <= 0 {
		return Config{}, fmt.Errorf("REFERENCE_CACHE_TTL must be > 0")
	}

	scheduleWindow, err := time.ParseDuration(getEnv("SCHEDULE_WINDOW", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCHEDULE_WINDOW: %w", err)
	}
	if scheduleWindow <= 0 {
		return Config{}, fmt.Errorf("SCHEDULE_WINDOW must be > 0")
	}
	oddsHorizon, err := time.ParseDuration(getEnv("ODDS_HORIZON", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ODDS_HORIZON: %w", err)
	}
	if oddsHorizon <= 0 {
		return Config{}, fmt.Errorf("ODDS_HORIZON must be > 0")
	}

	refreshWorkers, err := getEnvAsInt("REFRESH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse REFRESH_WORKERS: %w", err)
	}
	if refreshWorkers < 1 {
		return Config{}, fmt.Errorf("REFRESH_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                       appEnv,
		ServiceName:                  getEnv("APP_SERVICE_NAME", "gridiron-feed-api"),
		ServiceVersion:               getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                     getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                  readTimeout,
		WriteTimeout:                 writeTimeout,
		CORSAllowedOrigins:           splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		APISportsBaseURL:             strings.TrimSpace(getEnv("APISPORTS_BASE_URL", "https://v1.american-football.api-sports.io")),
		APISportsKey:                 apiSportsKey,
		APISportsTimeout:             apiSportsTimeout,
		APISportsMaxRetries:          apiSportsMaxRetries,
		APISportsCircuitEnabled:      apiSportsCircuitEnabled,
		APISportsCircuitFailureCount: apiSportsCircuitFailureCount,
		APISportsCircuitOpenTimeout:  apiSportsCircuitOpenTimeout,
		APISportsCircuitHalfOpenReq:  apiSportsCircuitHalfOpenReq,
		LeagueIDByName:               leagueIDByName,
		LiveCacheTTL:                 liveCacheTTL,
		ReferenceCacheTTL:            referenceCacheTTL,
		ScheduleWindow:               scheduleWindow,
		OddsHorizon:                  oddsHorizon,
		RefreshWorkers:               refreshWorkers,
		UptraceEnabled:               uptraceEnabled,
		UptraceDSN:                   uptraceDSN,
		LogLevel:                     parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
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

func parseIDMap(raw string) (map[string]int64, error) {
	out := make(map[string]int64)
	parts := strings.Split(raw, ",")
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}

		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected name:number", item)
		}

		key := strings.ToLower(strings.TrimSpace(segments[0]))
		if key == "" {
			return nil, fmt.Errorf("empty league name in item %q", item)
		}
		value, err := strconv.ParseInt(strings.TrimSpace(segments[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number in item %q: %w", item, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("id must be > 0 in item %q", item)
		}

		out[key] = value
	}
	return out, nil
}
