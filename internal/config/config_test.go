package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(16*1024), cfg.Server.MaxBodyBytes)
	assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:5173")
	assert.Equal(t, uint64(0), cfg.Prediction.Seed)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.IPLimitPerMin)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "layoff-o-meter", cfg.Tracing.ServiceName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
  mode: debug
prediction:
  seed: 42
redis:
  addr: localhost:6379
cache:
  ttl: 1m
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LAYOFF_SERVER_PORT", "9191")
	t.Setenv("LAYOFF_RATE_LIMIT_IP_LIMIT_PER_MIN", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, uint64(42), cfg.Prediction.Seed)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.RateLimit.IPLimitPerMin)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{name: "port", mutate: func(c *Config) { c.Server.Port = 0 }, message: "server.port"},
		{name: "mode", mutate: func(c *Config) { c.Server.Mode = "prod" }, message: "server.mode"},
		{name: "timeout", mutate: func(c *Config) { c.Server.RequestTimeout = 0 }, message: "server.request_timeout"},
		{name: "body", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, message: "server.max_body_bytes"},
		{name: "rate limit", mutate: func(c *Config) { c.RateLimit.IPLimitPerMin = 0 }, message: "rate_limit.ip_limit_per_min"},
		{name: "cache ttl", mutate: func(c *Config) { c.Cache.TTL = -time.Second }, message: "cache.ttl"},
		{name: "sample ratio", mutate: func(c *Config) { c.Tracing.SampleRatio = 1.5 }, message: "tracing.sample_ratio"},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }, message: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			cfg, err := FromViper(v)
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{"debug": "DEBUG", "": "INFO", "WARN": "WARN", "error": "ERROR"} {
		lvl, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, lvl.String())
	}
}
