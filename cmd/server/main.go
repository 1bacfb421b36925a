// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package main is the entry point for the genome service.
//
// The service classifies subjects into creative archetypes from an
// append-only signal log and serves the classification, quiz, and
// recompute operations over HTTP.
//
// Startup order:
//
//  1. Configuration: layered load via Koanf v2 (defaults, YAML, env)
//  2. Logging: zerolog, configured from the logging section
//  3. Store: BadgerDB (or in-memory for ephemeral runs)
//  4. Event bus: in-process Watermill pub/sub with circuit breaker
//  5. Engine: catalog, question bank, processor, selector
//  6. Supervision: suture tree running the HTTP server and store GC
//
// Configuration uses the GENOME_ env prefix:
//
//	export GENOME_SERVER_PORT=8472
//	export GENOME_STORE_PATH=/data/genome
//	export GENOME_LOGGING_LEVEL=debug
//	./genome-server
//
// Shutdown is graceful on SIGINT and SIGTERM: the server drains
// in-flight requests, then the store and event bus are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulseplan/genome/internal/api"
	"github.com/pulseplan/genome/internal/config"
	"github.com/pulseplan/genome/internal/events"
	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/logging"
	"github.com/pulseplan/genome/internal/quiz"
	"github.com/pulseplan/genome/internal/service"
	"github.com/pulseplan/genome/internal/store"
	"github.com/pulseplan/genome/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingSettings())
	logging.Info().
		Str("backend", cfg.Store.Backend).
		Int("port", cfg.Server.Port).
		Msg("Starting genome service")

	catalog := genome.DefaultCatalog()

	bank, err := loadBank(cfg, catalog)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load question bank")
	}
	logging.Info().
		Int("pool_size", bank.PoolSize()).
		Int("categories", len(bank.Categories())).
		Msg("Question bank loaded")

	st, badgerStore, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open genome store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	var bus *events.Bus
	var publisher service.Publisher
	if cfg.Events.Enabled {
		bus = events.NewBus(cfg.Events.Breaker, events.NewLoggerAdapter(logging.Logger()))
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		publisher = bus
	}

	svc := service.New(st, publisher, catalog, bank,
		cfg.Engine.Params, cfg.Engine.SelectorSeed, logging.Logger())

	router := api.NewRouter(api.NewHandler(svc, nil), api.RouterConfig{
		CORSOrigins:       cfg.API.CORSOrigins,
		RateLimitReqs:     cfg.API.RateLimitReqs,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		RateLimitDisabled: cfg.API.RateLimitDisabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	if badgerStore != nil {
		tree.AddDataService(supervisor.NewGCService(badgerStore, cfg.Store.GCInterval))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := tree.ServeBackground(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree exited with error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Fatal().Err(err).Msg("Supervisor tree failed")
		}
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", fmt.Sprintf("%v", svc.Service)).Msg("Service did not stop cleanly")
		}
	}

	logging.Info().Msg("Genome service stopped")
}

// loadBank loads the YAML question bank when configured, otherwise the
// built-in bank.
func loadBank(cfg *config.Config, catalog *genome.Catalog) (*quiz.Bank, error) {
	if cfg.Quiz.BankPath != "" {
		return quiz.LoadBank(cfg.Quiz.BankPath, catalog)
	}
	return quiz.DefaultBank(catalog)
}

// openStore opens the configured store backend. The second return is
// non-nil only for Badger, whose value log needs periodic GC.
func openStore(cfg *config.Config) (store.Store, *store.BadgerStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil, nil
	case "badger":
		bs, err := store.NewBadgerStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return bs, bs, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}
