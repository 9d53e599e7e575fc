// Package config loads server configuration from an optional YAML file with
// environment overrides. Configuration is resolved once at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIKey     string `yaml:"api_key"`
	Endpoint   string `yaml:"endpoint"`
	ToolPrefix string `yaml:"tool_prefix"`
	LogLevel   string `yaml:"log_level"`

	Retry RetryConfig `yaml:"retry"`
	Rate  RateConfig  `yaml:"rate"`
	Batch BatchConfig `yaml:"batch"`
}

// Duration parses YAML scalars like "500ms" or "1m" via time.ParseDuration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type RetryConfig struct {
	MaxRetries     int      `yaml:"max_retries"`
	InitialBackoff Duration `yaml:"initial_backoff"`
	MaxBackoff     Duration `yaml:"max_backoff"`
}

type RateConfig struct {
	// MaxRequests per Window. Zero disables client-side rate limiting.
	MaxRequests int      `yaml:"max_requests"`
	Window      Duration `yaml:"window"`
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

func Default() *Config {
	return &Config{
		Endpoint: "https://api.linear.app/graphql",
		LogLevel: "info",
		Retry: RetryConfig{
			MaxRetries:     3,
			InitialBackoff: Duration(time.Second),
			MaxBackoff:     Duration(10 * time.Second),
		},
		Batch: BatchConfig{Concurrency: 5},
	}
}

// Load reads the YAML file at path when path is non-empty, then applies
// environment overrides and validates. With an empty path only defaults and
// the environment apply, so a bare LINEAR_API_KEY is a complete setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LINEAR_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("LINEAR_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("LINEAR_TOOL_PREFIX"); v != "" {
		cfg.ToolPrefix = v
	} else if v := os.Getenv("TOOL_PREFIX"); v != "" {
		cfg.ToolPrefix = v
	}
	if v := os.Getenv("LINEAR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LINEAR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retry.MaxRetries = n
		}
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("api key is required (set LINEAR_API_KEY)")
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return fmt.Errorf("endpoint is required")
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if cfg.Rate.MaxRequests > 0 && cfg.Rate.Window <= 0 {
		return fmt.Errorf("rate window is required when max_requests is set")
	}
	if cfg.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch concurrency must be positive")
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.LogLevel)
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog level. Validation
// rejects anything outside the switch.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
