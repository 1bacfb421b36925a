// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package config loads layered service configuration via Koanf v2:
// built-in defaults, then an optional YAML file, then environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/pulseplan/genome/internal/events"
	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/logging"
)

// Config is the root configuration for the genome service.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Store   StoreConfig   `koanf:"store"`
	Engine  EngineConfig  `koanf:"engine"`
	Quiz    QuizConfig    `koanf:"quiz"`
	Events  EventsConfig  `koanf:"events"`
	Logging LoggingConfig `koanf:"logging"`
	API     APIConfig     `koanf:"api"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects and tunes the genome store.
type StoreConfig struct {
	// Backend is "badger" or "memory".
	Backend string `koanf:"backend"`
	// Path is the BadgerDB directory, unused for the memory backend.
	Path string `koanf:"path"`
	// GCInterval is how often Badger value-log GC runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// EngineConfig tunes the classification engine.
type EngineConfig struct {
	Params genome.Params `koanf:"params"`
	// SelectorSeed seeds the quiz selector's shuffling. Zero selects
	// the built-in default seed.
	SelectorSeed int64 `koanf:"selector_seed"`
}

// QuizConfig locates the question bank.
type QuizConfig struct {
	// BankPath is an optional YAML question bank. Empty uses the
	// built-in bank.
	BankPath string `koanf:"bank_path"`
}

// EventsConfig tunes the event bus.
type EventsConfig struct {
	Enabled bool                 `koanf:"enabled"`
	Breaker events.BreakerConfig `koanf:"breaker"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// defaultConfig returns a Config with all defaults applied. These are
// layered first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8472,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Backend:    "badger",
			Path:       "/data/genome",
			GCInterval: 10 * time.Minute,
		},
		Engine: EngineConfig{
			Params:       genome.DefaultParams(),
			SelectorSeed: 0,
		},
		Quiz: QuizConfig{
			BankPath: "",
		},
		Events: EventsConfig{
			Enabled: true,
			Breaker: events.DefaultBreakerConfig(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		API: APIConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Store.Backend {
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	case "memory":
	default:
		return fmt.Errorf("store.backend %q is not supported (badger, memory)", c.Store.Backend)
	}
	if c.Engine.Params.Temperature <= 0 {
		return fmt.Errorf("engine.params.temperature must be positive")
	}
	if c.Engine.Params.MinSignals < 1 {
		return fmt.Errorf("engine.params.min_signals must be at least 1")
	}
	if c.Engine.Params.SecondaryThreshold < 0 || c.Engine.Params.SecondaryThreshold >= 1 {
		return fmt.Errorf("engine.params.secondary_threshold must be in [0, 1)")
	}
	if !c.API.RateLimitDisabled {
		if c.API.RateLimitReqs < 1 {
			return fmt.Errorf("api.rate_limit_reqs must be at least 1")
		}
		if c.API.RateLimitWindow <= 0 {
			return fmt.Errorf("api.rate_limit_window must be positive")
		}
	}
	return nil
}

// LoggingSettings converts the logging section into the logging
// package's config shape.
func (c *Config) LoggingSettings() logging.Config {
	return logging.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Caller: c.Logging.Caller,
	}
}
