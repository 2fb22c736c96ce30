// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings. Content tuning lives in the Lua files,
// not here.
type Config struct {
	Content     string  `env:"TILEQUEST_CONTENT"      envDefault:"games/woodland"`
	TickRate    int     `env:"TILEQUEST_TICK_RATE"    envDefault:"60"`
	Seed        int64   `env:"TILEQUEST_SEED"         envDefault:"0"`
	LogLevel    string  `env:"TILEQUEST_LOG_LEVEL"    envDefault:"info"`
	LogFormat   string  `env:"TILEQUEST_LOG_FORMAT"   envDefault:"console"`
	LogFile     string  `env:"TILEQUEST_LOG_FILE"`
	MetricsAddr string  `env:"TILEQUEST_METRICS_ADDR"`
	SpawnRate   float64 `env:"TILEQUEST_SPAWN_RATE"   envDefault:"2"`
	SpawnBurst  int     `env:"TILEQUEST_SPAWN_BURST"  envDefault:"1"`
}

// Default returns the settings used when the environment sets nothing.
func Default() Config {
	return Config{
		Content:    "games/woodland",
		TickRate:   60,
		LogLevel:   "info",
		LogFormat:  "console",
		SpawnRate:  2,
		SpawnBurst: 1,
	}
}

// FromEnv loads the settings from TILEQUEST_* variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game loop cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("TILEQUEST_TICK_RATE must be positive, got %d", c.TickRate)
	}
	if c.SpawnRate < 0 {
		return fmt.Errorf("TILEQUEST_SPAWN_RATE must not be negative, got %g", c.SpawnRate)
	}
	if c.SpawnBurst < 0 {
		return fmt.Errorf("TILEQUEST_SPAWN_BURST must not be negative, got %d", c.SpawnBurst)
	}
	return nil
}

// Frame is the duration of one tick.
func (c Config) Frame() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
