package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eugenenazirov/summit-pack/internal/grid"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"DEFAULT_CAPACITY", "GENERATOR_MAX_ATTEMPTS", "CONDITION_SEED", "CATALOG_FILE",
		"SESSION_IDLE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.DefaultCapacity != grid.DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", grid.DefaultCapacity, cfg.DefaultCapacity)
	}
	if cfg.GeneratorMaxAttempts != 100 {
		t.Fatalf("expected 100 generator attempts, got %d", cfg.GeneratorMaxAttempts)
	}
	if cfg.ConditionSeed != 0 || cfg.CatalogFile != "" {
		t.Fatalf("unexpected game defaults: %+v", cfg)
	}
	if cfg.SessionIdleTTL != 30*time.Minute {
		t.Fatalf("unexpected session idle TTL: %s", cfg.SessionIdleTTL)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEFAULT_CAPACITY", "60")
	t.Setenv("GENERATOR_MAX_ATTEMPTS", "5")
	t.Setenv("CONDITION_SEED", "42")
	t.Setenv("CATALOG_FILE", "/tmp/items.yaml")
	t.Setenv("SESSION_IDLE_TTL", "5m")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" || cfg.DefaultCapacity != 60 || cfg.GeneratorMaxAttempts != 5 {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.ConditionSeed != 42 || cfg.CatalogFile != "/tmp/items.yaml" || cfg.SessionIdleTTL != 5*time.Minute {
		t.Fatalf("unexpected game overrides: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
port: "7000"
log_level: warn
write_timeout: 30s
enable_request_logging: false
rate_limit:
  rps: 0
game:
  default_capacity: 40
  condition_seed: 7
  session_idle_ttl: 0s
`)
	t.Setenv("PORT", "7100")

	port := "7200"
	capacity := 80
	cfg, err := Load(&CLIOverrides{ConfigFile: path, Port: &port, DefaultCapacity: &capacity})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7200" {
		t.Fatalf("expected CLI port to win, got %s", cfg.Port)
	}
	if cfg.DefaultCapacity != 80 {
		t.Fatalf("expected CLI capacity to win, got %d", cfg.DefaultCapacity)
	}
	if cfg.LogLevel != "warn" || cfg.WriteTimeout != 30*time.Second || cfg.EnableRequestLogging {
		t.Fatalf("expected YAML values, got %+v", cfg)
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected YAML to disable rate limiting, got %v", cfg.RateLimitRPS)
	}
	if cfg.ConditionSeed != 7 {
		t.Fatalf("expected YAML seed, got %d", cfg.ConditionSeed)
	}
	if cfg.SessionIdleTTL != 0 {
		t.Fatalf("expected YAML to disable idle eviction, got %s", cfg.SessionIdleTTL)
	}

	t.Setenv("PORT", "")
	cfg, err = Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "7000" {
		t.Fatalf("expected YAML port, got %s", cfg.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "capacity", key: "DEFAULT_CAPACITY", val: "45"},
		{name: "attempts", key: "GENERATOR_MAX_ATTEMPTS", val: "0"},
		{name: "log level", key: "LOG_LEVEL", val: "chatty"},
		{name: "idle ttl", key: "SESSION_IDLE_TTL", val: "-1m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(nil); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.key, tc.val)
			}
		})
	}

	clearEnv(t)
	t.Setenv("DEFAULT_CAPACITY", "45")
	if _, err := Load(nil); !errors.Is(err, grid.ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
