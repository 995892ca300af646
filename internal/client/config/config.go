package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/client/calendar"
)

// Config holds runtime settings for the scheduling CLI.
//
// Units: all intervals are time.Duration values; hours are 0..24 on the
// local clock of Timezone.
type Config struct {
	ServerURL            string
	RequestTimeout       time.Duration
	RefreshThreshold     time.Duration
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	RefreshQueueCapacity int
	SessionDB            string
	Timezone             string
	HourStart            int
	HourEnd              int
	OnlineCheckInterval  time.Duration
	LogLevel             string
	LogFormat            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3333/v1"
	c.RequestTimeout = 10 * time.Second
	c.RefreshThreshold = 5 * time.Minute
	c.AccessTokenTTL = 24 * time.Hour
	c.RefreshTokenTTL = 15 * 24 * time.Hour
	c.RefreshQueueCapacity = 64
	c.SessionDB = "session.db"
	c.Timezone = "Local"
	c.HourStart = 0
	c.HourEnd = 24
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.RefreshQueueCapacity < 1 {
		return fmt.Errorf("refresh queue capacity must be at least 1, got %d", c.RefreshQueueCapacity)
	}
	if c.HourStart < 0 || c.HourEnd > 24 || c.HourStart >= c.HourEnd {
		return fmt.Errorf("invalid hour range %d-%d", c.HourStart, c.HourEnd)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. "" and "Local" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// HourRange is the visible part of the day grid.
func (c *Config) HourRange() calendar.HourRange {
	return calendar.HourRange{Start: c.HourStart, End: c.HourEnd}
}

// Load constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}
