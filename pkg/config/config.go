package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	CORS       CORSConfig
	Log        LogConfig
	Suggestion SuggestionConfig
	Reports    ReportsConfig
	Seed       SeedConfig
}

// DatabaseConfig locates the embedded store file.
type DatabaseConfig struct {
	Path          string
	BusyTimeoutMS int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SuggestionConfig points at the external generative-text service used to
// draft exercise descriptions.
type SuggestionConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// ReportsConfig carries report tunables. DailyBucketMaxDays is the window
// span above which the revenue series switches from daily to monthly
// buckets; AvgMonthDays converts retention day counts to months.
type ReportsConfig struct {
	DailyBucketMaxDays int
	AvgMonthDays       float64
}

// SeedConfig toggles starter-data population of a fresh store.
type SeedConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Path:          v.GetString("DB_PATH"),
		BusyTimeoutMS: v.GetInt("DB_BUSY_TIMEOUT_MS"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Suggestion = SuggestionConfig{
		URL:     v.GetString("SUGGESTION_URL"),
		APIKey:  v.GetString("SUGGESTION_API_KEY"),
		Timeout: parseDuration(v.GetString("SUGGESTION_TIMEOUT"), 15*time.Second),
	}

	cfg.Reports = ReportsConfig{
		DailyBucketMaxDays: v.GetInt("REPORTS_DAILY_BUCKET_MAX_DAYS"),
		AvgMonthDays:       v.GetFloat64("REPORTS_AVG_MONTH_DAYS"),
	}

	cfg.Seed = SeedConfig{Enabled: v.GetBool("SEED_ON_EMPTY")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_PATH", "./studio.db")
	v.SetDefault("DB_BUSY_TIMEOUT_MS", 5000)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SUGGESTION_URL", "")
	v.SetDefault("SUGGESTION_API_KEY", "")
	v.SetDefault("SUGGESTION_TIMEOUT", "15s")

	v.SetDefault("REPORTS_DAILY_BUCKET_MAX_DAYS", 90)
	v.SetDefault("REPORTS_AVG_MONTH_DAYS", 30.4375)

	v.SetDefault("SEED_ON_EMPTY", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
