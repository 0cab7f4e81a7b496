package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string   `mapstructure:"PORT"`
	Env              string   `mapstructure:"ENV"`
	DatabaseURL      string   `mapstructure:"DATABASE_URL"`
	DBMaxConns       int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns       int32    `mapstructure:"DB_MIN_CONNS"`
	ExpectedDatabase string   `mapstructure:"EXPECTED_DATABASE"`
	AuthSecret       string   `mapstructure:"AUTH_SECRET"`
	CORSOrigins      []string `mapstructure:"CORS_ORIGINS"`
	MetricsCacheTTL  int      `mapstructure:"METRICS_CACHE_TTL_SECONDS"`
	StudiesCacheTTL  int      `mapstructure:"STUDIES_CACHE_TTL_SECONDS"`
	RefCacheTTL      int      `mapstructure:"REFERENCE_CACHE_TTL_SECONDS"`
	SessionTTLMin    int      `mapstructure:"SESSION_TTL_MINUTES"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("EXPECTED_DATABASE", "clinical_research")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("METRICS_CACHE_TTL_SECONDS", 30)
	v.SetDefault("STUDIES_CACHE_TTL_SECONDS", 60)
	v.SetDefault("REFERENCE_CACHE_TTL_SECONDS", 300)
	v.SetDefault("SESSION_TTL_MINUTES", 480)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("EXPECTED_DATABASE")
	v.BindEnv("AUTH_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("METRICS_CACHE_TTL_SECONDS")
	v.BindEnv("STUDIES_CACHE_TTL_SECONDS")
	v.BindEnv("REFERENCE_CACHE_TTL_SECONDS")
	v.BindEnv("SESSION_TTL_MINUTES")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// mode AUTH_SECRET must be set so that bearer tokens are actually verified.
func (c *Config) Validate() error {
	if c.ExpectedDatabase == "" {
		return fmt.Errorf("EXPECTED_DATABASE must not be empty")
	}
	if !c.IsDev() && c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required when ENV is not development")
	}
	if c.MetricsCacheTTL <= 0 || c.StudiesCacheTTL <= 0 || c.RefCacheTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.SessionTTLMin <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}
