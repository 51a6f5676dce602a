package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// envConfig mirrors the settings that may come from the environment.
// Durations are Go duration strings, e.g. "15s".
type envConfig struct {
	APIBaseURL     string `env:"RECIPES_API_URL"`
	DBPath         string `env:"RECIPES_DB_PATH"`
	RequestTimeout string `env:"RECIPES_REQUEST_TIMEOUT"`
	SessionTTL     string `env:"RECIPES_SESSION_TTL"`
	PageSize       int    `env:"RECIPES_PAGE_SIZE"`
	LogLevel       string `env:"RECIPES_LOG_LEVEL"`
	LogBackend     string `env:"RECIPES_LOG_BACKEND"`
	S3Endpoint     string `env:"RECIPES_S3_ENDPOINT"`
	S3Region       string `env:"RECIPES_S3_REGION"`
	S3AccessKey    string `env:"RECIPES_S3_ACCESS_KEY"`
	S3SecretKey    string `env:"RECIPES_S3_SECRET_KEY"`
}

func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	setString(&cfg.APIBaseURL, ec.APIBaseURL)
	setString(&cfg.DBPath, ec.DBPath)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogBackend, ec.LogBackend)
	setString(&cfg.S3Endpoint, ec.S3Endpoint)
	setString(&cfg.S3Region, ec.S3Region)
	setString(&cfg.S3AccessKey, ec.S3AccessKey)
	setString(&cfg.S3SecretKey, ec.S3SecretKey)
	if ec.PageSize > 0 {
		cfg.PageSize = ec.PageSize
	}

	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"RECIPES_REQUEST_TIMEOUT", ec.RequestTimeout, &cfg.RequestTimeout},
		{"RECIPES_SESSION_TTL", ec.SessionTTL, &cfg.SessionTTL},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}
