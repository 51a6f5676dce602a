package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/recipes/internal/flagx"
	"github.com/dmitrijs2005/recipes/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the current value alone.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	DBPath              string          `json:"db_path"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SessionTTL          *timex.Duration `json:"session_ttl"`
	PageSize            int             `json:"page_size"`
	CollectionLoadFloor *timex.Duration `json:"collection_load_floor"`
	ProfileLoadFloor    *timex.Duration `json:"profile_load_floor"`
	AlertDelay          *timex.Duration `json:"alert_delay"`
	LogLevel            string          `json:"log_level"`
	LogBackend          string          `json:"log_backend"`
	S3Endpoint          string          `json:"s3_endpoint"`
	S3Region            string          `json:"s3_region"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Region, jc.S3Region)
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.SessionTTL, jc.SessionTTL)
	setDuration(&cfg.CollectionLoadFloor, jc.CollectionLoadFloor)
	setDuration(&cfg.ProfileLoadFloor, jc.ProfileLoadFloor)
	setDuration(&cfg.AlertDelay, jc.AlertDelay)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
