package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "portfolio", cfg.Counter.Namespace)
	assert.Equal(t, 100*time.Millisecond, cfg.TypingSpeed)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	src := `
port: "9000"
content_path: content/portfolio.yaml
counter:
  namespace: aniket
  relay_url: "https://corsproxy.io/?url="
  timeout: 2s
ledger:
  path: data/visits.db
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	t.Setenv("PORTFOLIO_COUNTER__KEY", "home")
	t.Setenv("PORTFOLIO_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "content/portfolio.yaml", cfg.ContentPath)
	assert.Equal(t, "aniket", cfg.Counter.Namespace)
	assert.Equal(t, "home", cfg.Counter.Key)
	assert.Equal(t, "https://corsproxy.io/?url=", cfg.Counter.RelayURL)
	assert.Equal(t, 2*time.Second, cfg.Counter.Timeout)
	assert.Equal(t, "data/visits.db", cfg.Ledger.Path)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched defaults survive
	assert.Equal(t, "https://api.counterapi.dev/v1", cfg.Counter.BaseURL)
}

func TestLegacyEnvNames(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("TO_EMAIL", "owner@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "me@example.com", cfg.SMTP.User)
	assert.Equal(t, "secret", cfg.SMTP.Pass)
	assert.Equal(t, "owner@example.com", cfg.SMTP.To)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"bad mode", func(c *Config) { c.Mode = "prod" }},
		{"counter without base", func(c *Config) { c.Counter.BaseURL = "" }},
		{"counter without key", func(c *Config) { c.Counter.Key = "" }},
		{"negative timeout", func(c *Config) { c.Counter.Timeout = -time.Second }},
		{"negative retention", func(c *Config) { c.Ledger.Retention = -time.Hour }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Counter.Enabled = false
	cfg.Counter.BaseURL = ""
	assert.NoError(t, cfg.Validate())
}
