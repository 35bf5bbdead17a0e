package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys use a double
// underscore: PORTFOLIO_COUNTER__NAMESPACE sets counter.namespace.
const EnvPrefix = "PORTFOLIO_"

type Config struct {
	Port         string        `koanf:"port" yaml:"port"`
	Mode         string        `koanf:"mode" yaml:"mode"` // gin mode: debug, release or test
	LogLevel     string        `koanf:"log_level" yaml:"log_level"`
	ContentPath  string        `koanf:"content_path" yaml:"content_path"`
	WatchContent bool          `koanf:"watch_content" yaml:"watch_content"`
	TypingSpeed  time.Duration `koanf:"typing_speed" yaml:"typing_speed"`
	Counter      CounterConfig `koanf:"counter" yaml:"counter"`
	Ledger       LedgerConfig  `koanf:"ledger" yaml:"ledger"`
	SMTP         SMTPConfig    `koanf:"smtp" yaml:"smtp"`
	Admin        AdminConfig   `koanf:"admin" yaml:"admin"`
	CORS         CORSConfig    `koanf:"cors" yaml:"cors"`
	MCP          MCPConfig     `koanf:"mcp" yaml:"mcp"`
}

type CounterConfig struct {
	Enabled   bool          `koanf:"enabled" yaml:"enabled"`
	BaseURL   string        `koanf:"base_url" yaml:"base_url"`
	RelayURL  string        `koanf:"relay_url" yaml:"relay_url"`
	Namespace string        `koanf:"namespace" yaml:"namespace"`
	Key       string        `koanf:"key" yaml:"key"`
	Timeout   time.Duration `koanf:"timeout" yaml:"timeout"`
}

type LedgerConfig struct {
	Path      string        `koanf:"path" yaml:"path"` // empty disables the ledger
	Salt      string        `koanf:"salt" yaml:"salt"`
	Retention time.Duration `koanf:"retention" yaml:"retention"`
}

type SMTPConfig struct {
	Host string `koanf:"host" yaml:"host"`
	Port string `koanf:"port" yaml:"port"`
	User string `koanf:"user" yaml:"user"`
	Pass string `koanf:"pass" yaml:"pass"`
	To   string `koanf:"to" yaml:"to"`
}

type AdminConfig struct {
	Token string `koanf:"token" yaml:"token"` // empty generates one at startup
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins" yaml:"allowed_origins"`
}

type MCPConfig struct {
	Enabled bool `koanf:"enabled" yaml:"enabled"`
}

// DefaultConfig mirrors the values the site always ran with.
func DefaultConfig() *Config {
	return &Config{
		Port:        "8080",
		Mode:        "release",
		LogLevel:    "info",
		TypingSpeed: 100 * time.Millisecond,
		Counter: CounterConfig{
			Enabled:   true,
			BaseURL:   "https://api.counterapi.dev/v1",
			Namespace: "portfolio",
			Key:       "visits",
			Timeout:   5 * time.Second,
		},
		Ledger: LedgerConfig{
			Retention: 365 * 24 * time.Hour,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		MCP: MCPConfig{Enabled: true},
	}
}

// Load reads configuration from the given YAML file when it exists, then
// the PORTFOLIO_* overrides, then the plain variables the site has always
// honoured (PORT, SMTP_*, TO_EMAIL).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applyLegacyEnv(cfg)
	return cfg, nil
}

func applyLegacyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Port, "PORT")
	set(&cfg.SMTP.Host, "SMTP_HOST")
	set(&cfg.SMTP.Port, "SMTP_PORT")
	set(&cfg.SMTP.User, "SMTP_USER")
	set(&cfg.SMTP.Pass, "SMTP_PASS")
	set(&cfg.SMTP.To, "TO_EMAIL")
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if c.Counter.Enabled {
		if c.Counter.BaseURL == "" {
			return fmt.Errorf("counter.base_url is required when the counter is enabled")
		}
		if c.Counter.Namespace == "" || c.Counter.Key == "" {
			return fmt.Errorf("counter.namespace and counter.key are required when the counter is enabled")
		}
	}
	if c.Counter.Timeout < 0 {
		return fmt.Errorf("counter.timeout must be non-negative")
	}
	if c.Ledger.Retention < 0 {
		return fmt.Errorf("ledger.retention must be non-negative")
	}
	if c.TypingSpeed < 0 {
		return fmt.Errorf("typing_speed must be non-negative")
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}
