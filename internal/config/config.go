package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eugenenazirov/summit-pack/internal/condition"
	"github.com/eugenenazirov/summit-pack/internal/grid"
	"github.com/eugenenazirov/summit-pack/internal/logging"
	"github.com/eugenenazirov/summit-pack/internal/storage"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	LogLevel             string
	RateLimitRPS         float64
	RateLimitBurst       int

	// DefaultCapacity is the backpack size of new sessions.
	DefaultCapacity int
	// GeneratorMaxAttempts bounds rejection sampling of conditions.
	GeneratorMaxAttempts int
	// ConditionSeed seeds the condition generator; 0 seeds from the clock.
	ConditionSeed uint64
	// CatalogFile replaces the embedded equipment catalog when set.
	CatalogFile string
	// SessionIdleTTL evicts sessions untouched for this long; 0 keeps them.
	SessionIdleTTL time.Duration
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	LogLevel             string        `yaml:"log_level"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	Game                 yamlGame      `yaml:"game"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// yamlGame represents the game section in YAML.
type yamlGame struct {
	DefaultCapacity      int    `yaml:"default_capacity"`
	GeneratorMaxAttempts int    `yaml:"generator_max_attempts"`
	ConditionSeed        uint64 `yaml:"condition_seed"`
	CatalogFile          string `yaml:"catalog_file"`
	SessionIdleTTL       string `yaml:"session_idle_ttl"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile      string
	Port            *string
	LogLevel        *string
	RateLimitRPS    *float64
	RateLimitBurst  *int
	DefaultCapacity *int
	ConditionSeed   *uint64
	CatalogFile     *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	applyEnvConfig(&cfg)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		LogLevel:             logging.DefaultLevel,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		DefaultCapacity:      grid.DefaultCapacity,
		GeneratorMaxAttempts: condition.DefaultMaxAttempts,
		SessionIdleTTL:       storage.DefaultIdleTTL,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	for _, d := range []struct {
		raw    string
		target *time.Duration
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	} {
		if d.raw == "" {
			continue
		}
		if parsed, err := time.ParseDuration(d.raw); err == nil {
			*d.target = parsed
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	if yamlCfg.Game.DefaultCapacity != 0 {
		cfg.DefaultCapacity = yamlCfg.Game.DefaultCapacity
	}
	if yamlCfg.Game.GeneratorMaxAttempts != 0 {
		cfg.GeneratorMaxAttempts = yamlCfg.Game.GeneratorMaxAttempts
	}
	if yamlCfg.Game.ConditionSeed != 0 {
		cfg.ConditionSeed = yamlCfg.Game.ConditionSeed
	}
	if yamlCfg.Game.CatalogFile != "" {
		cfg.CatalogFile = yamlCfg.Game.CatalogFile
	}
	if yamlCfg.Game.SessionIdleTTL != "" {
		if parsed, err := time.ParseDuration(yamlCfg.Game.SessionIdleTTL); err == nil {
			cfg.SessionIdleTTL = parsed
		}
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := env("PORT"); port != "" {
		cfg.Port = port
	}

	if level := env("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if rps := env("RATE_LIMIT_RPS"); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := env("RATE_LIMIT_BURST"); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}

	if capacity := env("DEFAULT_CAPACITY"); capacity != "" {
		if value, err := strconv.Atoi(capacity); err == nil {
			cfg.DefaultCapacity = value
		}
	}

	if attempts := env("GENERATOR_MAX_ATTEMPTS"); attempts != "" {
		if value, err := strconv.Atoi(attempts); err == nil {
			cfg.GeneratorMaxAttempts = value
		}
	}

	if seed := env("CONDITION_SEED"); seed != "" {
		if value, err := strconv.ParseUint(seed, 10, 64); err == nil {
			cfg.ConditionSeed = value
		}
	}

	if path := env("CATALOG_FILE"); path != "" {
		cfg.CatalogFile = path
	}

	if ttl := env("SESSION_IDLE_TTL"); ttl != "" {
		if value, err := time.ParseDuration(ttl); err == nil {
			cfg.SessionIdleTTL = value
		}
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	if overrides.DefaultCapacity != nil && *overrides.DefaultCapacity != 0 {
		cfg.DefaultCapacity = *overrides.DefaultCapacity
	}

	if overrides.ConditionSeed != nil && *overrides.ConditionSeed != 0 {
		cfg.ConditionSeed = *overrides.ConditionSeed
	}

	if overrides.CatalogFile != nil && *overrides.CatalogFile != "" {
		cfg.CatalogFile = *overrides.CatalogFile
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if _, err := grid.DimensionsFor(cfg.DefaultCapacity); err != nil {
		return fmt.Errorf("DEFAULT_CAPACITY %d: %w", cfg.DefaultCapacity, err)
	}
	if cfg.SessionIdleTTL < 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be >= 0")
	}
	if cfg.GeneratorMaxAttempts < 1 {
		return fmt.Errorf("GENERATOR_MAX_ATTEMPTS must be >= 1")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}
