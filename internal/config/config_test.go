package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "Soccer", cfg.SportTag)
	require.Equal(t, "en", cfg.Language)
	require.Equal(t, "2", cfg.SportsDBAPIKey)
	require.Equal(t, "https://thesportsdb.com/api/v1/json", cfg.SportsDBBaseURL)
	require.Equal(t, 20*time.Second, cfg.SportsDBTimeout)
	require.Equal(t, 8, cfg.BadgeWorkers)
	require.False(t, cfg.UptraceEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_LANGUAGE", "FR")
	t.Setenv("APP_SPORT_TAG", "Basketball")
	t.Setenv("SPORTSDB_MAX_RETRIES", "5")
	t.Setenv("BADGE_WORKERS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, EnvProd, cfg.AppEnv)
	require.Equal(t, "fr", cfg.Language)
	require.Equal(t, "Basketball", cfg.SportTag)
	require.Equal(t, 5, cfg.SportsDBMaxRetries)
	require.Equal(t, 2, cfg.BadgeWorkers)
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BadgeWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BADGE_WORKERS", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_CircuitBreakerConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SPORTSDB_CIRCUIT_ENABLED", "true")
	t.Setenv("SPORTSDB_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("SPORTSDB_CIRCUIT_OPEN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	breaker := cfg.CircuitBreakerConfig()
	require.True(t, breaker.Enabled)
	require.Equal(t, 3, breaker.FailureThreshold)
	require.Equal(t, 30*time.Second, breaker.OpenTimeout)
}
