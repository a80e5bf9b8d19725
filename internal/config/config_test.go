package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort == "" {
		t.Error("ServerPort has no default")
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Workers)
	}
	if cfg.RatePerSecond != 100 || cfg.RatePerMinute != 2000 {
		t.Errorf("rate defaults = %d/s %d/min, want 100/s 2000/min", cfg.RatePerSecond, cfg.RatePerMinute)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9999")
	t.Setenv("POSTGRES_URL", "postgres://example/orbits")
	t.Setenv("REDIS_ADDR", "redis.example:6379")
	t.Setenv("REDIS_PASSWORD", "hunter2")
	t.Setenv("API_TOKEN", "secret-token")
	t.Setenv("PROP_WORKERS", "3")
	t.Setenv("RATE_LIMIT_PER_SECOND", "7")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "70")

	cfg := Load()

	if cfg.ServerPort != ":9999" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.PostgresURL != "postgres://example/orbits" {
		t.Errorf("PostgresURL = %q", cfg.PostgresURL)
	}
	if cfg.RedisAddr != "redis.example:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.RedisPassword != "hunter2" {
		t.Errorf("RedisPassword = %q", cfg.RedisPassword)
	}
	if cfg.APIToken != "secret-token" {
		t.Errorf("APIToken = %q", cfg.APIToken)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.RatePerSecond != 7 || cfg.RatePerMinute != 70 {
		t.Errorf("rates = %d/s %d/min", cfg.RatePerSecond, cfg.RatePerMinute)
	}
}
