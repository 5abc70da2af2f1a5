package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"API_BASE_URL", "DEFAULT_REGION", "DB_PATH", "DB_URL", "SERVER_PORT",
		"LOG_LEVEL", "REQUEST_SPACING", "RETRY_UNIT", "MAX_RETRIES", "PROFILE_TTL", "SEASON_START"} {
		t.Setenv(k, "")
	}
	t.Setenv("RIOT_API_KEY", "RGAPI-test")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "RGAPI-test", cfg.RiotAPIKey)
	assert.Equal(t, "https://{region}.api.riotgames.com", cfg.APIBaseURL)
	assert.Equal(t, "euw1", cfg.DefaultRegion)
	assert.Equal(t, "summoners.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.RequestSpacing)
	assert.Equal(t, time.Second, cfg.RetryUnit)
	assert.Equal(t, 1, cfg.MaxRetries)
	assert.Equal(t, time.Hour, cfg.ProfileTTL)
	assert.Equal(t, time.Date(2023, 1, 11, 0, 0, 0, 0, time.UTC), cfg.SeasonStart)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-custom")
	t.Setenv("DEFAULT_REGION", "na1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REQUEST_SPACING", "250ms")
	t.Setenv("MAX_RETRIES", "3")
	t.Setenv("PROFILE_TTL", "30m")
	t.Setenv("SEASON_START", "2024-01-10")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "na1", cfg.DefaultRegion)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestSpacing)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 30*time.Minute, cfg.ProfileTTL)
	assert.Equal(t, 2024, cfg.SeasonStart.Year())
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RIOT_API_KEY")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-test")

	t.Run("invalid int falls back", func(t *testing.T) {
		t.Setenv("MAX_RETRIES", "notanumber")
		cfg, err := Load(zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.MaxRetries)
	})

	t.Run("retry cap out of range", func(t *testing.T) {
		t.Setenv("MAX_RETRIES", "50")
		_, err := Load(zerolog.Nop())
		require.Error(t, err)
	})

	t.Run("bad season start", func(t *testing.T) {
		t.Setenv("SEASON_START", "11/01/2023")
		_, err := Load(zerolog.Nop())
		require.Error(t, err)
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")
		_, err := Load(zerolog.Nop())
		require.Error(t, err)
	})
}
