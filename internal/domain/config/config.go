// Package config provides configuration domain models.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

var (
	// ErrInvalidConfiguration is returned when configuration is invalid.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Environment variables that override configuration values.
const (
	EnvFibonacciURL = "AVGCALC_FIBONACCI_URL"
	EnvRandomURL    = "AVGCALC_RANDOM_URL"
	EnvTimeout      = "AVGCALC_TIMEOUT"
	EnvDefaultKind  = "AVGCALC_DEFAULT_KIND"
	EnvDefaultCount = "AVGCALC_DEFAULT_COUNT"
	EnvMaxCount     = "AVGCALC_MAX_COUNT"
	EnvLogLevel     = "AVGCALC_LOG_LEVEL"
	EnvLogDir       = "AVGCALC_LOG_DIR"
	EnvMetricsAddr  = "AVGCALC_METRICS_ADDR"
)

// RemoteConfig represents the external numeric services.
type RemoteConfig struct {
	// FibonacciURL is the base endpoint; the count is appended as a path segment.
	FibonacciURL string `json:"fibonacci_url"`

	// RandomURL is the random integer endpoint; parameters go in the query.
	RandomURL string `json:"random_url"`

	// Timeout bounds each remote call.
	Timeout time.Duration `json:"timeout"`

	// RandomMin and RandomMax bound the random integers requested.
	RandomMin int `json:"random_min"`
	RandomMax int `json:"random_max"`
}

// Validate validates the remote configuration.
func (c *RemoteConfig) Validate() error {
	for name, raw := range map[string]string{"fibonacci_url": c.FibonacciURL, "random_url": c.RandomURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL: %q", ErrInvalidConfiguration, name, raw)
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfiguration)
	}

	if c.RandomMin > c.RandomMax {
		return fmt.Errorf("%w: random_min cannot exceed random_max", ErrInvalidConfiguration)
	}

	return nil
}

// DefaultsConfig represents the parameters used on startup.
type DefaultsConfig struct {
	Kind  sequence.SourceKind `json:"kind"`
	Count int                 `json:"count"`
}

// Validate validates the defaults.
func (c *DefaultsConfig) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: invalid default kind: %s", ErrInvalidConfiguration, c.Kind)
	}
	if c.Count < 0 {
		return fmt.Errorf("%w: default count cannot be negative", ErrInvalidConfiguration)
	}
	return nil
}

// LimitsConfig bounds user input.
type LimitsConfig struct {
	// MaxCount is the largest accepted requested count.
	MaxCount int `json:"max_count"`
}

// Validate validates the limits.
func (c *LimitsConfig) Validate() error {
	if c.MaxCount < 1 {
		return fmt.Errorf("%w: max_count must be at least 1", ErrInvalidConfiguration)
	}
	return nil
}

// AdvancedConfig represents logging and metrics configuration.
type AdvancedConfig struct {
	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string `json:"log_level"`

	// LogDir is the directory for dated log files. Empty disables file logging.
	LogDir string `json:"log_dir"`

	// MetricsAddr is the listen address for /metrics, e.g. "127.0.0.1:9464".
	// Empty disables the endpoint.
	MetricsAddr string `json:"metrics_addr"`
}

// Validate validates the advanced configuration.
func (c *AdvancedConfig) Validate() error {
	validLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}

	if !validLevels[c.LogLevel] {
		return fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfiguration, c.LogLevel)
	}

	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			return fmt.Errorf("%w: invalid metrics address %q: %v", ErrInvalidConfiguration, c.MetricsAddr, err)
		}
	}

	return nil
}

// Config represents the complete application configuration.
type Config struct {
	// Version is the configuration version.
	Version int `json:"version"`

	Remote   RemoteConfig   `json:"remote"`
	Defaults DefaultsConfig `json:"defaults"`
	Limits   LimitsConfig   `json:"limits"`
	Advanced AdvancedConfig `json:"advanced"`
}

// Validate validates the complete configuration.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: unsupported configuration version: %d", ErrInvalidConfiguration, c.Version)
	}

	if err := c.Remote.Validate(); err != nil {
		return fmt.Errorf("remote: %w", err)
	}

	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}

	if err := sequence.CheckCount(c.Defaults.Kind, c.Defaults.Count, c.Limits.MaxCount); err != nil {
		return fmt.Errorf("%w: default count: %v", ErrInvalidConfiguration, err)
	}

	if err := c.Advanced.Validate(); err != nil {
		return fmt.Errorf("advanced: %w", err)
	}

	return nil
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Remote: RemoteConfig{
			FibonacciURL: "https://fibonacci-numbers-api.herokuapp.com/fibonacci",
			RandomURL:    "https://www.random.org/integers/",
			Timeout:      10 * time.Second,
			RandomMin:    1,
			RandomMax:    10000,
		},
		Defaults: DefaultsConfig{
			Kind:  sequence.KindPrime,
			Count: 10,
		},
		Limits: LimitsConfig{
			MaxCount: 10000,
		},
		Advanced: AdvancedConfig{
			LogLevel: "info",
			LogDir:   filepath.Join(".", "data", "logs"),
		},
	}
}

// Load returns the default configuration overlaid with environment variables.
// If envFile is non-empty and exists it is loaded first; variables already set
// in the process environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load env file: %w", err)
			}
		}
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays values found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFibonacciURL); ok && v != "" {
		c.Remote.FibonacciURL = v
	}
	if v, ok := lookup(EnvRandomURL); ok && v != "" {
		c.Remote.RandomURL = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, EnvTimeout, err)
		}
		c.Remote.Timeout = d
	}
	if v, ok := lookup(EnvDefaultKind); ok && v != "" {
		kind, err := sequence.ParseKind(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, EnvDefaultKind, err)
		}
		c.Defaults.Kind = kind
	}
	if v, ok := lookup(EnvDefaultCount); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, EnvDefaultCount, err)
		}
		c.Defaults.Count = n
	}
	if v, ok := lookup(EnvMaxCount); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfiguration, EnvMaxCount, err)
		}
		c.Limits.MaxCount = n
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.Advanced.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogDir); ok {
		c.Advanced.LogDir = v
	}
	if v, ok := lookup(EnvMetricsAddr); ok {
		c.Advanced.MetricsAddr = v
	}
	return nil
}
