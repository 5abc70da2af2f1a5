package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"summoner-tracker/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey    string `validate:"required"`
	APIBaseURL    string `validate:"required"`
	DefaultRegion string `validate:"required"`
	DBPath        string `validate:"required_without=DBURL"`
	DBURL         string `validate:"omitempty,url"`
	DBAuthToken   string
	ServerPort    string `validate:"required,numeric"`
	LogLevel      string `validate:"oneof=trace debug info warn error fatal panic disabled"`

	RequestSpacing time.Duration `validate:"gte=0"`
	RetryUnit      time.Duration `validate:"gt=0"`
	MaxRetries     int           `validate:"gte=0,lte=5"`
	ProfileTTL     time.Duration `validate:"gt=0"`
	SeasonStart    time.Time     `validate:"required"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	seasonStart, err := time.Parse(time.DateOnly, getEnv("SEASON_START", constants.SeasonStartDate))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SEASON_START: %w", err)
	}

	cfg := &Config{
		RiotAPIKey:     getEnv("RIOT_API_KEY", ""),
		APIBaseURL:     getEnv("API_BASE_URL", "https://{region}.api.riotgames.com"),
		DefaultRegion:  getEnv("DEFAULT_REGION", "euw1"),
		DBPath:         getEnv("DB_PATH", "summoners.db"),
		DBURL:          getEnv("DB_URL", ""),
		DBAuthToken:    getEnv("DB_AUTH_TOKEN", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestSpacing: getDuration("REQUEST_SPACING", constants.RequestSpacing),
		RetryUnit:      getDuration("RETRY_UNIT", constants.RetryAfterUnit),
		MaxRetries:     getInt("MAX_RETRIES", constants.MaxRateLimitRetry),
		ProfileTTL:     getDuration("PROFILE_TTL", constants.ProfileRefreshTTL),
		SeasonStart:    seasonStart,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Bool("remote_db", cfg.DBURL != "").
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("default_region", cfg.DefaultRegion).
		Dur("request_spacing", cfg.RequestSpacing).
		Dur("profile_ttl", cfg.ProfileTTL).
		Time("season_start", cfg.SeasonStart).
		Msg("configuration loaded")

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			if errs[0].Field() == "RiotAPIKey" {
				return fmt.Errorf("RIOT_API_KEY is required")
			}
			return fmt.Errorf("invalid configuration: field %s failed %q", errs[0].Field(), errs[0].Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
