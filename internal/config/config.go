package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prefix is the environment prefix read by New.
// Example: QWIKY_ADMIN_TOKEN, QWIKY_ADMIN_ORIGIN
const Prefix = "QWIKY_ADMIN"

// Config holds the settings for the admin client and CLI.
type Config struct {
	// Origin is scheme://host[:port]; the client appends the fixed /api base path.
	Origin string `envconfig:"ORIGIN" default:"http://localhost:8080"`

	// Token is the process-default bearer token. Empty means no Authorization header.
	Token string `envconfig:"TOKEN" default:""`

	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`

	// Token store
	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	StorePath   string `envconfig:"STORE_PATH" default:"./data/admin.db"`

	Debug    bool   `envconfig:"DEBUG" default:"false"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat selects human-readable console output or JSON lines.
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// Log formats accepted in LogFormat.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// New parses the environment and validates the result.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("origin", cfg.Origin).
		Bool("token_present", cfg.Token != "").
		Dur("timeout", cfg.Timeout).
		Str("store_driver", cfg.StoreDriver).
		Str("store_path", cfg.StorePath).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns defaults suitable for unit tests: in-memory store, no token.
func NewForTesting() *Config {
	return &Config{
		Origin:      "http://localhost:8080",
		Timeout:     30 * time.Second,
		StoreDriver: "memory",
		LogLevel:    "debug",
	}
}

// Validate checks value ranges and normalizes Origin.
func (c *Config) Validate() error {
	c.Origin = strings.TrimRight(strings.TrimSpace(c.Origin), "/")
	if c.Origin == "" {
		return fmt.Errorf("%s_ORIGIN must not be empty", Prefix)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be > 0", Prefix)
	}
	switch strings.ToLower(c.StoreDriver) {
	case "memory", "sqlite", "bolt", "bbolt":
	default:
		return fmt.Errorf("unsupported %s_STORE_DRIVER: %s", Prefix, c.StoreDriver)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid %s_LOG_LEVEL %q: %w", Prefix, c.LogLevel, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported %s_LOG_FORMAT: %s", Prefix, c.LogFormat)
	}
	return nil
}

// JSONLogs reports whether logs should be written as JSON lines.
func (c *Config) JSONLogs() bool {
	return strings.EqualFold(c.LogFormat, LogFormatJSON)
}

// Level returns the parsed log level, or info when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
