package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "5m"
// or "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// TimeControl is the default clock settings handed to new games.
type TimeControl struct {
	InitialTime Duration `yaml:"initial_time"`
	Increment   Duration `yaml:"increment"`
	FixedExtra  Duration `yaml:"fixed_extra"`
}

type AppConfig struct {
	RedisURL    string `yaml:"redis_url"`
	DatabaseURL string `yaml:"database_url"`

	// GameTTL bounds how long an abandoned game record survives in redis.
	GameTTL Duration `yaml:"game_ttl"`
	// SweepInterval is how often active games are checked for fallen flags.
	SweepInterval Duration `yaml:"sweep_interval"`

	EloKFactor float64 `yaml:"elo_k_factor"`

	DefaultTimeControl TimeControl `yaml:"default_time_control"`
}

// Load reads the optional YAML config file named by KASUPEL_CONFIG (default
// config.yaml), then applies environment overrides. REDIS_URL is the only
// hard requirement.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		GameTTL:       Duration(24 * time.Hour),
		SweepInterval: Duration(5 * time.Second),
		EloKFactor:    32,
		DefaultTimeControl: TimeControl{
			InitialTime: Duration(10 * time.Minute),
			Increment:   Duration(5 * time.Second),
			FixedExtra:  Duration(10 * time.Second),
		},
	}

	path := strings.TrimSpace(getenvDefault("KASUPEL_CONFIG", "config.yaml"))
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GAME_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GAME_TTL: %w", err)
		}
		cfg.GameTTL = Duration(d)
	}
	if v := strings.TrimSpace(os.Getenv("SWEEP_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SWEEP_INTERVAL: %w", err)
		}
		cfg.SweepInterval = Duration(d)
	}
	if v := strings.TrimSpace(os.Getenv("ELO_K_FACTOR")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.EloKFactor = f
		}
	}

	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.GameTTL.Std() <= 0 {
		return nil, errors.New("game_ttl must be positive")
	}
	if cfg.SweepInterval.Std() <= 0 {
		return nil, errors.New("sweep_interval must be positive")
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
