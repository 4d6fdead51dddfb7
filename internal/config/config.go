package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the dashboard API.
type Config struct {
	AppName               string
	AppEnv                string
	AppPort               string
	DataBaseURL           string
	BuildVersion          string
	FetchTimeout          time.Duration
	RedisURL              string
	SummaryCacheTTL       time.Duration
	DefaultMinWeeklyCerts int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STUDIAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Studian Class Dashboard API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("data.version", "dev")
	v.SetDefault("data.fetch_timeout", "10s")
	v.SetDefault("summary.cache_ttl", "5m")
	v.SetDefault("weekly.min_certs", 3)

	fetchTimeout, err := time.ParseDuration(v.GetString("data.fetch_timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid data fetch timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("summary.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid summary cache ttl: %w", err)
	}

	cfg := Config{
		AppName:               v.GetString("app.name"),
		AppEnv:                v.GetString("app.env"),
		AppPort:               v.GetString("app.port"),
		DataBaseURL:           v.GetString("data.base_url"),
		BuildVersion:          v.GetString("data.version"),
		FetchTimeout:          fetchTimeout,
		RedisURL:              v.GetString("redis.url"),
		SummaryCacheTTL:       cacheTTL,
		DefaultMinWeeklyCerts: v.GetInt("weekly.min_certs"),
	}

	if cfg.DataBaseURL == "" {
		return Config{}, fmt.Errorf("data base url must be provided")
	}

	if cfg.DefaultMinWeeklyCerts <= 0 {
		cfg.DefaultMinWeeklyCerts = 3
	}

	return cfg, nil
}
