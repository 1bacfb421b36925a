// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8472 {
		t.Errorf("Server.Port = %d, want 8472", cfg.Server.Port)
	}
	if cfg.Store.Backend != "badger" {
		t.Errorf("Store.Backend = %q, want badger", cfg.Store.Backend)
	}
	if cfg.Engine.Params.Temperature != 5.0 {
		t.Errorf("Engine.Params.Temperature = %v, want 5.0", cfg.Engine.Params.Temperature)
	}
	if cfg.Engine.Params.MinSignals != 20 {
		t.Errorf("Engine.Params.MinSignals = %v, want 20", cfg.Engine.Params.MinSignals)
	}
	if cfg.Engine.Params.SecondaryThreshold != 0.12 {
		t.Errorf("Engine.Params.SecondaryThreshold = %v, want 0.12", cfg.Engine.Params.SecondaryThreshold)
	}
	if !cfg.Events.Enabled {
		t.Error("Events.Enabled = false, want true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_YAMLFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genome.yaml")
	content := `
server:
  port: 9000
store:
  backend: memory
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genome.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("GENOME_SERVER_PORT", "9100")
	t.Setenv("GENOME_STORE_BACKEND", "memory")
	t.Setenv("GENOME_API_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 (env wins over file)", cfg.Server.Port)
	}
	if cfg.Store.Backend != "memory" {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != want[0] || cfg.API.CORSOrigins[1] != want[1] {
		t.Errorf("API.CORSOrigins = %v, want %v", cfg.API.CORSOrigins, want)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GENOME_SERVER_PORT", "server.port"},
		{"GENOME_STORE_GC_INTERVAL", "store.gc_interval"},
		{"GENOME_ENGINE_SELECTOR_SEED", "engine.selector_seed"},
		{"GENOME_EVENTS_BREAKER__TIMEOUT", "events.breaker.timeout"},
		{"GENOME_UNRELATED_KEY", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envTransform(tt.in); got != tt.want {
				t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }, true},
		{"badger without path", func(c *Config) { c.Store.Path = "" }, true},
		{"memory without path is fine", func(c *Config) {
			c.Store.Backend = "memory"
			c.Store.Path = ""
		}, false},
		{"zero temperature", func(c *Config) { c.Engine.Params.Temperature = 0 }, true},
		{"secondary threshold at 1", func(c *Config) { c.Engine.Params.SecondaryThreshold = 1 }, true},
		{"rate limit zero reqs", func(c *Config) { c.API.RateLimitReqs = 0 }, true},
		{"rate limiting disabled skips limits", func(c *Config) {
			c.API.RateLimitDisabled = true
			c.API.RateLimitReqs = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
