package mockapi

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/aideasy/internal/flagx"
	"github.com/dmitrijs2005/aideasy/internal/timex"
)

// Config holds runtime settings for the mock API server.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - BasePath: prefix of every route, "/v1" like the production API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Development only.
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes.
type Config struct {
	Addr            string
	BasePath        string
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Seed            bool
	LogLevel        string
	LogFormat       string
}

// LoadDefaults populates Config with development defaults. Short token
// lifetimes make the client's refresh path easy to observe.
func (c *Config) LoadDefaults() {
	c.Addr = ":3333"
	c.BasePath = "/v1"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = 2 * time.Minute
	c.RefreshTokenTTL = 30 * time.Minute
	c.Seed = true
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// JSONConfig is the file form of Config.
type JSONConfig struct {
	Addr            string          `json:"addr"`
	BasePath        string          `json:"base_path"`
	SecretKey       string          `json:"secret_key"`
	AccessTokenTTL  *timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL *timex.Duration `json:"refresh_token_ttl"`
	Seed            *bool           `json:"seed"`
	LogLevel        string          `json:"log_level"`
	LogFormat       string          `json:"log_format"`
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := cfg.overlayJSON(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return cfg, nil
}

func (c *Config) overlayJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.Addr != "" {
		c.Addr = jc.Addr
	}
	if jc.BasePath != "" {
		c.BasePath = jc.BasePath
	}
	if jc.SecretKey != "" {
		c.SecretKey = jc.SecretKey
	}
	if jc.AccessTokenTTL != nil {
		c.AccessTokenTTL = jc.AccessTokenTTL.Duration
	}
	if jc.RefreshTokenTTL != nil {
		c.RefreshTokenTTL = jc.RefreshTokenTTL.Duration
	}
	if jc.Seed != nil {
		c.Seed = *jc.Seed
	}
	if jc.LogLevel != "" {
		c.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		c.LogFormat = jc.LogFormat
	}
	return nil
}

// parseFlags accepts:
//
//	-a string    listen address
//	-k string    jwt secret
//	-at duration access token lifetime
//	-rt duration refresh token lifetime
//	-l string    log level
func (c *Config) parseFlags(args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-at", "-rt", "-l"})

	fs := flag.NewFlagSet("mockapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.Addr, "a", c.Addr, "listen address")
	fs.StringVar(&c.SecretKey, "k", c.SecretKey, "jwt secret")
	fs.DurationVar(&c.AccessTokenTTL, "at", c.AccessTokenTTL, "access token lifetime")
	fs.DurationVar(&c.RefreshTokenTTL, "rt", c.RefreshTokenTTL, "refresh token lifetime")
	fs.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	return fs.Parse(args)
}
