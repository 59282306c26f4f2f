package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Planner  PlannerConfig  `yaml:"planner"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type NATSConfig struct {
	URL string `yaml:"url"`
}

type PlannerConfig struct {
	ForecastHorizonWeeks int `yaml:"forecast_horizon_weeks"`
	RateLimitPerMinute   int `yaml:"rate_limit_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Planner: PlannerConfig{
			ForecastHorizonWeeks: 8,
			RateLimitPerMinute:   120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ROSTER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("ROSTER_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("ROSTER_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("ROSTER_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ROSTER_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("ROSTER_FORECAST_HORIZON_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Planner.ForecastHorizonWeeks = n
		}
	}
	if v := os.Getenv("ROSTER_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Planner.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("ROSTER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
