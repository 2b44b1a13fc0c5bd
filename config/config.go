// Package config loads the service configuration from a YAML file, applies
// defaults for anything left unset, and validates the result. Durations are
// given in milliseconds. The API credential is deliberately not part of the
// file; it comes from the ANTHROPIC_API_KEY environment variable.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	ReadTimeoutMs  int64  `yaml:"read_timeout_ms"`
	WriteTimeoutMs int64  `yaml:"write_timeout_ms"`
	IdleTimeoutMs  int64  `yaml:"idle_timeout_ms"`
}

type AnthropicConfig struct {
	APIURL    string `yaml:"api_url"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	TimeoutMs int64  `yaml:"timeout_ms"`
}

type RateLimitConfig struct {
	Limit    int   `yaml:"limit"`
	WindowMs int64 `yaml:"window_ms"`
}

// RedisConfig selects the shared counter store. Leaving Addr empty keeps the
// in-memory store, which is fine for a single instance.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

func (s ServerConfig) ReadTimeout() time.Duration  { return time.Duration(s.ReadTimeoutMs) * time.Millisecond }
func (s ServerConfig) WriteTimeout() time.Duration { return time.Duration(s.WriteTimeoutMs) * time.Millisecond }
func (s ServerConfig) IdleTimeout() time.Duration  { return time.Duration(s.IdleTimeoutMs) * time.Millisecond }

func (a AnthropicConfig) Timeout() time.Duration { return time.Duration(a.TimeoutMs) * time.Millisecond }

func (r RateLimitConfig) Window() time.Duration { return time.Duration(r.WindowMs) * time.Millisecond }

// Default returns the configuration used when no file is present: the stock
// rate-limit policy (7 requests per caller per 24h) and the Anthropic
// endpoint defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeoutMs:  15_000,
			WriteTimeoutMs: 60_000,
			IdleTimeoutMs:  60_000,
		},
		Anthropic: AnthropicConfig{
			APIURL:    "https://api.anthropic.com/v1/messages",
			Model:     "claude-3-opus-20240229",
			MaxTokens: 1000,
			TimeoutMs: 30_000,
		},
		RateLimit: RateLimitConfig{
			Limit:    7,
			WindowMs: 86_400_000,
		},
	}
}

// Load reads the config at path, fills defaults and validates. A missing file
// is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	normalize(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// normalize backfills zero values left by a partial file with the defaults.
func normalize(cfg *Config) {
	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = def.Server.ReadTimeoutMs
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = def.Server.WriteTimeoutMs
	}
	if cfg.Server.IdleTimeoutMs <= 0 {
		cfg.Server.IdleTimeoutMs = def.Server.IdleTimeoutMs
	}
	if cfg.Anthropic.APIURL == "" {
		cfg.Anthropic.APIURL = def.Anthropic.APIURL
	}
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = def.Anthropic.Model
	}
	if cfg.Anthropic.MaxTokens <= 0 {
		cfg.Anthropic.MaxTokens = def.Anthropic.MaxTokens
	}
	if cfg.Anthropic.TimeoutMs <= 0 {
		cfg.Anthropic.TimeoutMs = def.Anthropic.TimeoutMs
	}
	if cfg.RateLimit.Limit <= 0 {
		cfg.RateLimit.Limit = def.RateLimit.Limit
	}
	if cfg.RateLimit.WindowMs <= 0 {
		cfg.RateLimit.WindowMs = def.RateLimit.WindowMs
	}
}

func validate(cfg Config) error {
	if cfg.RateLimit.Window() < time.Second {
		return fmt.Errorf("rate_limit.window_ms %d is below one second", cfg.RateLimit.WindowMs)
	}
	if cfg.Anthropic.MaxTokens > 8192 {
		return fmt.Errorf("anthropic.max_tokens %d exceeds the endpoint maximum", cfg.Anthropic.MaxTokens)
	}
	return nil
}
