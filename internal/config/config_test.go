package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	envVars := []string{
		"ROSTER_PORT", "ROSTER_METRICS_PORT", "ROSTER_ADMIN_TOKEN",
		"ROSTER_DATABASE_URL", "ROSTER_NATS_URL",
		"ROSTER_FORECAST_HORIZON_WEEKS", "ROSTER_RATE_LIMIT_PER_MINUTE",
		"ROSTER_LOG_LEVEL",
	}
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default nats URL, got %s", cfg.NATS.URL)
	}
	if cfg.Planner.ForecastHorizonWeeks != 8 {
		t.Errorf("expected forecast horizon 8 weeks, got %d", cfg.Planner.ForecastHorizonWeeks)
	}
	if cfg.Planner.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Planner.RateLimitPerMinute)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json', got '%s'", cfg.Logging.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ROSTER_PORT", "9100")
	t.Setenv("ROSTER_METRICS_PORT", "9101")
	t.Setenv("ROSTER_ADMIN_TOKEN", "secret-token")
	t.Setenv("ROSTER_DATABASE_URL", "postgres://localhost/roster_test")
	t.Setenv("ROSTER_NATS_URL", "nats://nats:4222")
	t.Setenv("ROSTER_FORECAST_HORIZON_WEEKS", "12")
	t.Setenv("ROSTER_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("ROSTER_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9101 {
		t.Errorf("expected metrics port 9101, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.AdminToken != "secret-token" {
		t.Errorf("expected admin token, got '%s'", cfg.Server.AdminToken)
	}
	if cfg.Database.URL != "postgres://localhost/roster_test" {
		t.Errorf("expected database URL, got '%s'", cfg.Database.URL)
	}
	if cfg.NATS.URL != "nats://nats:4222" {
		t.Errorf("expected nats URL, got '%s'", cfg.NATS.URL)
	}
	if cfg.Planner.ForecastHorizonWeeks != 12 {
		t.Errorf("expected horizon 12, got %d", cfg.Planner.ForecastHorizonWeeks)
	}
	if cfg.Planner.RateLimitPerMinute != 30 {
		t.Errorf("expected rate limit 30, got %d", cfg.Planner.RateLimitPerMinute)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got '%s'", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
server:
  port: 8800
planner:
  forecast_horizon_weeks: 4
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8800 {
		t.Errorf("expected port 8800 from file, got %d", cfg.Server.Port)
	}
	if cfg.Planner.ForecastHorizonWeeks != 4 {
		t.Errorf("expected horizon 4 from file, got %d", cfg.Planner.ForecastHorizonWeeks)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port, got %d", cfg.Server.MetricsPort)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8800\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ROSTER_PORT", "9200")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("expected env to override file, got %d", cfg.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
