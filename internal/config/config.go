// Package config loads the gateway configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type UpstreamConfig struct {
	// BaseURL is the origin of the fitness tracking API,
	// e.g. "http://localhost:8000".
	BaseURL string `yaml:"base_url"`

	// QueryTimeout bounds each page query.
	QueryTimeout time.Duration `yaml:"query_timeout"`

	// BreakerCooldown is how long an open circuit stays open before probing.
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
}

type TelemetryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	Environment  string `yaml:"environment"`
}

type LoggingConfig struct {
	// Level is a zerolog level name: debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration defaults applied before the file and
// environment overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Upstream: UpstreamConfig{
			QueryTimeout:    10 * time.Second,
			BreakerCooldown: 30 * time.Second,
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: "localhost:4317",
			Environment:  "development",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. An empty path skips the file and uses defaults plus environment.
// Env vars use the prefix FITSIGHT_ and underscore-separated paths:
//
//	FITSIGHT_SERVER_HOST, FITSIGHT_SERVER_PORT,
//	FITSIGHT_UPSTREAM_BASE_URL, FITSIGHT_UPSTREAM_QUERY_TIMEOUT,
//	FITSIGHT_TELEMETRY_ENABLED, FITSIGHT_TELEMETRY_OTLP_ENDPOINT,
//	FITSIGHT_TELEMETRY_ENVIRONMENT, FITSIGHT_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FITSIGHT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FITSIGHT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FITSIGHT_UPSTREAM_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("FITSIGHT_UPSTREAM_QUERY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.QueryTimeout = d
		}
	}
	if v := os.Getenv("FITSIGHT_UPSTREAM_BREAKER_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.BreakerCooldown = d
		}
	}
	if v := os.Getenv("FITSIGHT_TELEMETRY_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = v == "true"
	}
	if v := os.Getenv("FITSIGHT_TELEMETRY_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLPEndpoint = v
	}
	if v := os.Getenv("FITSIGHT_TELEMETRY_ENVIRONMENT"); v != "" {
		cfg.Telemetry.Environment = v
	}
	if v := os.Getenv("FITSIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.QueryTimeout <= 0 {
		return fmt.Errorf("upstream.query_timeout must be positive")
	}
	return nil
}
