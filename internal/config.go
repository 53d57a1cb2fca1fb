package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Realtime      RealtimeConfig      `mapstructure:"realtime"`
	Session       SessionConfig       `mapstructure:"session"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type RealtimeConfig struct {
	HubURL           string          `mapstructure:"hub_url"`
	HandshakeTimeout time.Duration   `mapstructure:"handshake_timeout"`
	ReconnectDelays  []time.Duration `mapstructure:"reconnect_delays"`
}

type SessionConfig struct {
	// Path of the persisted session file. Empty means the default under
	// the user config dir.
	Path string `mapstructure:"path"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a config purely from environment variables, used in
// container deployments where no config.yml is mounted.
func LoadConfigFromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        getEnv("BUDGET_API_BASE_URL", "http://localhost:5022/api"),
			RequestTimeout: getEnvAsDuration("BUDGET_API_REQUEST_TIMEOUT", 10*time.Second),
		},
		Realtime: RealtimeConfig{
			HubURL:           getEnv("BUDGET_REALTIME_HUB_URL", "ws://localhost:5022/hubs/budget"),
			HandshakeTimeout: getEnvAsDuration("BUDGET_REALTIME_HANDSHAKE_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Path: getEnv("BUDGET_SESSION_PATH", ""),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("BUDGET_LOG_LEVEL", "info"),
				Format: getEnv("BUDGET_LOG_FORMAT", "text"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.Realtime.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("realtime config: %v", err))
	}

	if err := c.Session.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("session config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %s", u.Scheme)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	return nil
}

func (c *RealtimeConfig) Validate() error {
	if c.HubURL == "" {
		return errors.New("hub_url is required")
	}
	u, err := url.Parse(c.HubURL)
	if err != nil {
		return fmt.Errorf("invalid hub_url %s: %w", c.HubURL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("hub_url must be ws or wss, got %s", u.Scheme)
	}
	return nil
}

func (c *SessionConfig) Validate() error {
	if c.Path == "" {
		return nil
	}
	if !filepath.IsAbs(c.Path) {
		return fmt.Errorf("session path must be absolute, got %s", c.Path)
	}
	return nil
}

// ResolvePath returns the configured session file path, falling back to the
// per-user config directory.
func (c *SessionConfig) ResolvePath() (string, error) {
	if c.Path != "" {
		return c.Path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "budget-allocation", "session.json"), nil
}
