package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/flagx"
	"github.com/dmitrijs2005/aideasy/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent keys leave the
// current value alone.
type JSONConfig struct {
	ServerURL            string          `json:"server_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	RefreshThreshold     *timex.Duration `json:"refresh_threshold"`
	AccessTokenTTL       *timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL      *timex.Duration `json:"refresh_token_ttl"`
	RefreshQueueCapacity *int            `json:"refresh_queue_capacity"`
	SessionDB            string          `json:"session_db"`
	Timezone             string          `json:"timezone"`
	HourStart            *int            `json:"hour_start"`
	HourEnd              *int            `json:"hour_end"`
	OnlineCheckInterval  *timex.Duration `json:"online_check_interval"`
	LogLevel             string          `json:"log_level"`
	LogFormat            string          `json:"log_format"`
}

// parseJSON overlays cfg with the JSON file named by -c or -config. No
// flag means no file.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JSONConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.Timezone, jc.Timezone)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setDuration(&cfg.RefreshThreshold, jc.RefreshThreshold)
	setDuration(&cfg.AccessTokenTTL, jc.AccessTokenTTL)
	setDuration(&cfg.RefreshTokenTTL, jc.RefreshTokenTTL)
	setDuration(&cfg.OnlineCheckInterval, jc.OnlineCheckInterval)

	setInt(&cfg.RefreshQueueCapacity, jc.RefreshQueueCapacity)
	setInt(&cfg.HourStart, jc.HourStart)
	setInt(&cfg.HourEnd, jc.HourEnd)
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

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
