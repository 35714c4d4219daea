package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/openfooty/league-browser/internal/platform/logging"
	"github.com/openfooty/league-browser/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the browser.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string

	Language string
	SportTag string

	SportsDBBaseURL             string
	SportsDBAPIKey              string
	SportsDBTimeout             time.Duration
	SportsDBMaxRetries          int
	SportsDBCircuitEnabled      bool
	SportsDBCircuitFailureCount int
	SportsDBCircuitOpenTimeout  time.Duration
	SportsDBCircuitHalfOpenReq  int

	BadgeWorkers int

	LogLevel logging.Level
	LogPath  string

	UptraceEnabled bool
	UptraceDSN     string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	sportsDBTimeout, err := time.ParseDuration(getEnv("SPORTSDB_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_TIMEOUT: %w", err)
	}
	sportsDBMaxRetries, err := getEnvAsInt("SPORTSDB_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_MAX_RETRIES: %w", err)
	}
	circuitEnabled, err := strconv.ParseBool(getEnv("SPORTSDB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("SPORTSDB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("SPORTSDB_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	circuitHalfOpenReq, err := getEnvAsInt("SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SPORTSDB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	badgeWorkers, err := getEnvAsInt("BADGE_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse BADGE_WORKERS: %w", err)
	}
	if badgeWorkers < 1 {
		return Config{}, fmt.Errorf("BADGE_WORKERS must be greater than zero")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	return Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "league-browser"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),

		Language: strings.ToLower(strings.TrimSpace(getEnv("APP_LANGUAGE", "en"))),
		SportTag: strings.TrimSpace(getEnv("APP_SPORT_TAG", "Soccer")),

		SportsDBBaseURL:             getEnv("SPORTSDB_BASE_URL", "https://thesportsdb.com/api/v1/json"),
		SportsDBAPIKey:              getEnv("SPORTSDB_API_KEY", "2"),
		SportsDBTimeout:             sportsDBTimeout,
		SportsDBMaxRetries:          sportsDBMaxRetries,
		SportsDBCircuitEnabled:      circuitEnabled,
		SportsDBCircuitFailureCount: circuitFailureCount,
		SportsDBCircuitOpenTimeout:  circuitOpenTimeout,
		SportsDBCircuitHalfOpenReq:  circuitHalfOpenReq,

		BadgeWorkers: badgeWorkers,

		LogLevel: parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogPath:  getEnv("APP_LOG_PATH", "league-browser.log"),

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,
	}, nil
}

// CircuitBreakerConfig shapes the client breaker settings.
func (c Config) CircuitBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.SportsDBCircuitEnabled,
		FailureThreshold: c.SportsDBCircuitFailureCount,
		OpenTimeout:      c.SportsDBCircuitOpenTimeout,
		HalfOpenMaxReq:   c.SportsDBCircuitHalfOpenReq,
	}
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
