package config

import (
	"time"

	"github.com/dmitrijs2005/recipes/internal/client/api"
	"github.com/dmitrijs2005/recipes/internal/client/credential"
	"github.com/dmitrijs2005/recipes/internal/client/loading"
	"github.com/dmitrijs2005/recipes/internal/client/pagination"
	"github.com/dmitrijs2005/recipes/internal/client/stores"
	"github.com/dmitrijs2005/recipes/internal/logging"
)

// Config holds runtime settings for the recipes CLI.
type Config struct {
	APIBaseURL          string
	DBPath              string
	RequestTimeout      time.Duration
	SessionTTL          time.Duration
	PageSize            int
	CollectionLoadFloor time.Duration
	ProfileLoadFloor    time.Duration
	AlertDelay          time.Duration
	LogLevel            string
	LogBackend          string
	S3Endpoint          string
	S3Region            string
	S3AccessKey         string
	S3SecretKey         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = api.DefaultBaseURL
	c.DBPath = "recipes.db"
	c.RequestTimeout = api.DefaultTimeout
	c.SessionTTL = credential.DefaultTTL
	c.PageSize = pagination.DefaultPageSize
	c.CollectionLoadFloor = loading.CollectionFloor
	c.ProfileLoadFloor = loading.ProfileFloor
	c.AlertDelay = stores.DefaultAlertDelay
	c.LogLevel = "warn"
	c.LogBackend = logging.BackendSlog
	c.S3Region = "us-east-1"
}

// LoadConfig applies defaults, then the JSON file, the environment and the
// flags found in args (os.Args[1:] in production). Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
