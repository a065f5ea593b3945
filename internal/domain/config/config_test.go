// Package config provides unit tests for configuration domain models.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

// TestDefaultConfig tests that the default configuration is valid.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, sequence.KindPrime, cfg.Defaults.Kind)
	assert.Equal(t, 10, cfg.Defaults.Count)
	assert.Equal(t, 1, cfg.Remote.RandomMin)
	assert.Equal(t, 10000, cfg.Remote.RandomMax)
}

// TestConfig_Validate tests configuration validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"bad version", func(c *Config) { c.Version = 2 }, true},
		{"relative fibonacci url", func(c *Config) { c.Remote.FibonacciURL = "/fib" }, true},
		{"empty random url", func(c *Config) { c.Remote.RandomURL = "" }, true},
		{"zero timeout", func(c *Config) { c.Remote.Timeout = 0 }, true},
		{"inverted random range", func(c *Config) { c.Remote.RandomMin = 10; c.Remote.RandomMax = 1 }, true},
		{"invalid default kind", func(c *Config) { c.Defaults.Kind = "odd" }, true},
		{"negative default count", func(c *Config) { c.Defaults.Count = -1 }, true},
		{"zero default count", func(c *Config) { c.Defaults.Count = 0 }, false},
		{"zero max count", func(c *Config) { c.Limits.MaxCount = 0 }, true},
		{"default above max", func(c *Config) { c.Defaults.Count = 50; c.Limits.MaxCount = 20 }, true},
		{"fibonacci default at cap", func(c *Config) { c.Defaults.Kind = sequence.KindFibonacci; c.Defaults.Count = 93 }, false},
		{"fibonacci default above cap", func(c *Config) { c.Defaults.Kind = sequence.KindFibonacci; c.Defaults.Count = 94 }, true},
		{"bad log level", func(c *Config) { c.Advanced.LogLevel = "verbose" }, true},
		{"warning log level", func(c *Config) { c.Advanced.LogLevel = "warning" }, false},
		{"metrics address", func(c *Config) { c.Advanced.MetricsAddr = "127.0.0.1:9464" }, false},
		{"metrics address without port", func(c *Config) { c.Advanced.MetricsAddr = "localhost" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Config.Validate() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

// TestConfig_ApplyEnv tests environment overlays.
func TestConfig_ApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvFibonacciURL: "http://localhost:9000/fib",
		EnvRandomURL:    "http://localhost:9000/rand",
		EnvTimeout:      "3s",
		EnvDefaultKind:  "r",
		EnvDefaultCount: "25",
		EnvMaxCount:     "500",
		EnvLogLevel:     "debug",
		EnvLogDir:       "",
		EnvMetricsAddr:  ":9464",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:9000/fib", cfg.Remote.FibonacciURL)
	assert.Equal(t, "http://localhost:9000/rand", cfg.Remote.RandomURL)
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, sequence.KindRandom, cfg.Defaults.Kind)
	assert.Equal(t, 25, cfg.Defaults.Count)
	assert.Equal(t, 500, cfg.Limits.MaxCount)
	assert.Equal(t, "debug", cfg.Advanced.LogLevel)
	assert.Equal(t, "", cfg.Advanced.LogDir)
	assert.Equal(t, ":9464", cfg.Advanced.MetricsAddr)
}

// TestConfig_ApplyEnv_LogLevel tests that log level names are case-insensitive.
func TestConfig_ApplyEnv_LogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"DEBUG", "debug"},
		{"Info", "info"},
		{" warn ", "warn"},
		{"warning", "warning"},
		{"WARNING", "warning"},
		{"ERROR", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{EnvLogLevel: tt.value})))
			assert.Equal(t, tt.want, cfg.Advanced.LogLevel)
			assert.NoError(t, cfg.Validate())
		})
	}
}

// TestConfig_ApplyEnv_Invalid tests rejection of malformed overrides.
func TestConfig_ApplyEnv_Invalid(t *testing.T) {
	for _, env := range []map[string]string{
		{EnvTimeout: "soon"},
		{EnvDefaultKind: "odd"},
		{EnvDefaultCount: "ten"},
		{EnvMaxCount: "1e3"},
	} {
		err := DefaultConfig().ApplyEnv(envMap(env))
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "env %v", env)
	}
}

// TestLoad tests loading from a .env file.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "AVGCALC_DEFAULT_KIND=even\nAVGCALC_DEFAULT_COUNT=4\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	// godotenv.Load never overrides variables already present.
	t.Setenv(EnvDefaultKind, "")
	os.Unsetenv(EnvDefaultKind)
	t.Setenv(EnvDefaultCount, "")
	os.Unsetenv(EnvDefaultCount)

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, sequence.KindEven, cfg.Defaults.Kind)
	assert.Equal(t, 4, cfg.Defaults.Count)
}

// TestLoad_MissingFile tests that a missing env file falls back to defaults.
func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(EnvDefaultKind, "fibonacci")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, sequence.KindFibonacci, cfg.Defaults.Kind)
}
