// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package service coordinates the genome engine: it loads genomes from
// the store, runs the quiz processor and selector, recomputes
// projections, and publishes change events. All writes go through
// optimistic-concurrency saves with bounded retry.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulseplan/genome/internal/events"
	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/metrics"
	"github.com/pulseplan/genome/internal/quiz"
	"github.com/pulseplan/genome/internal/store"
)

// Tier describes how much evidence backs a subject's classification.
type Tier string

const (
	// TierExploring: fewer than five quiz questions answered.
	TierExploring Tier = "exploring"
	// TierEmerging: quiz complete but the log is still shallow or the
	// classification is weak.
	TierEmerging Tier = "emerging"
	// TierEstablished: deep log and a confident classification.
	TierEstablished Tier = "established"
)

// Evidence thresholds for tier assignment.
const (
	exploringAnsweredThreshold = 5
	emergingSignalThreshold    = 20
	emergingConfidenceFloor    = 0.35
)

// saveRetries bounds optimistic-concurrency retry loops.
const saveRetries = 3

// ErrNotFound is returned for reads of subjects without a genome.
var ErrNotFound = store.ErrGenomeNotFound

// View is a genome together with its evidence tier, the shape the API
// serves to clients.
type View struct {
	Genome *genome.Genome `json:"genome"`
	Tier   Tier           `json:"tier"`
}

// Publisher is the event surface the service needs.
type Publisher interface {
	PublishProjectionUpdated(ctx context.Context, g *genome.Genome, trigger string) error
	PublishGenomeDeleted(ctx context.Context, subjectID string) error
}

var _ Publisher = (*events.Bus)(nil)

// Service is the genome engine behind the HTTP API.
type Service struct {
	store     store.Store
	bus       Publisher
	catalog   *genome.Catalog
	bank      *quiz.Bank
	params    genome.Params
	processor *quiz.Processor
	selector  *quiz.Selector
	logger    zerolog.Logger

	now   func() time.Time
	newID func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the service clock, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides signal ID generation, used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New creates a Service. The bus may be nil, in which case no events
// are published.
func New(st store.Store, bus Publisher, catalog *genome.Catalog, bank *quiz.Bank,
	params genome.Params, selectorSeed int64, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     st,
		bus:       bus,
		catalog:   catalog,
		bank:      bank,
		params:    params,
		processor: quiz.NewProcessor(bank, catalog, params),
		selector:  quiz.NewSelector(bank, catalog, selectorSeed),
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the subject's genome with its evidence tier.
func (s *Service) Get(ctx context.Context, subjectID string) (*View, error) {
	g, err := s.store.Get(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.view(g), nil
}

// Catalog returns the archetype catalog the engine classifies against.
func (s *Service) Catalog() *genome.Catalog {
	return s.catalog
}

// RecordSignal validates and appends one behavioral signal, recomputes
// the projection, and persists the genome. Unknown designations in the
// weights fail fast before anything is written.
func (s *Service) RecordSignal(ctx context.Context, subjectID string, sig genome.Signal) (*View, error) {
	if err := s.catalog.ValidateWeights(sig.ArchetypeWeights); err != nil {
		return nil, err
	}
	if sig.ID == "" {
		sig.ID = s.newID()
	}
	if sig.Timestamp.IsZero() {
		sig.Timestamp = s.now().UTC()
	}
	if sig.Type == "" {
		sig.Type = genome.SignalImplicit
	}

	g, err := s.mutate(ctx, subjectID, func(g *genome.Genome) error {
		g.Append(sig)
		s.recompute(g)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SignalsAppended.WithLabelValues(string(sig.Type)).Inc()
	s.publish(ctx, g, "signal")
	return s.view(g), nil
}

// SubmitQuiz applies a batch of quiz responses. It returns the number
// of responses that resolved to at least one signal along with the
// refreshed genome; unresolvable responses are skipped, not fatal.
func (s *Service) SubmitQuiz(ctx context.Context, subjectID string, responses []quiz.Response) (*View, int, error) {
	var processed int
	g, err := s.mutate(ctx, subjectID, func(g *genome.Genome) error {
		n, _, err := s.processor.Apply(g, responses)
		if err != nil {
			return err
		}
		processed = n
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	metrics.QuizSubmissions.Inc()
	if processed > 0 {
		s.publish(ctx, g, "quiz")
	}
	return s.view(g), processed, nil
}

// NextQuestions returns the next quiz batch for a subject. Subjects
// without a genome get the cold-start batch; nothing is persisted.
func (s *Service) NextQuestions(ctx context.Context, subjectID string) (quiz.Selection, error) {
	g, err := s.store.Get(ctx, subjectID)
	if errors.Is(err, store.ErrGenomeNotFound) {
		g = genome.New(subjectID, s.catalog)
	} else if err != nil {
		return quiz.Selection{}, err
	}

	sel := s.selector.Next(g)
	metrics.SelectorBatches.WithLabelValues(string(sel.Mode)).Inc()
	return sel, nil
}

// Recompute rebuilds the projection from the full signal log and
// persists it. Used after catalog or parameter changes.
func (s *Service) Recompute(ctx context.Context, subjectID string) (*View, error) {
	g, err := s.mutate(ctx, subjectID, func(g *genome.Genome) error {
		s.recompute(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, g, "recompute")
	return s.view(g), nil
}

// Delete removes a subject's genome and emits the deletion event.
func (s *Service) Delete(ctx context.Context, subjectID string) error {
	if err := s.store.Delete(ctx, subjectID); err != nil {
		return err
	}
	if s.bus != nil {
		if err := s.bus.PublishGenomeDeleted(ctx, subjectID); err != nil {
			s.logger.Warn().Err(err).Str("subject", subjectID).Msg("deletion event dropped")
		}
	}
	return nil
}

// mutate loads (or lazily creates) the genome, applies fn, and saves
// under optimistic concurrency with bounded retry. On conflict the
// genome is re-read and fn re-applied against the fresh log.
func (s *Service) mutate(ctx context.Context, subjectID string, fn func(*genome.Genome) error) (*genome.Genome, error) {
	var lastErr error
	for attempt := 0; attempt < saveRetries; attempt++ {
		g, err := s.store.Get(ctx, subjectID)
		if errors.Is(err, store.ErrGenomeNotFound) {
			g = genome.New(subjectID, s.catalog)
		} else if err != nil {
			return nil, err
		}

		if err := fn(g); err != nil {
			return nil, err
		}

		if err := s.store.Save(ctx, g, g.Version); err != nil {
			if errors.Is(err, store.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("save genome for %s after %d attempts: %w", subjectID, saveRetries, lastErr)
}

func (s *Service) recompute(g *genome.Genome) {
	start := time.Now()
	g.Apply(genome.Recompute(g.Signals, s.catalog, s.params))
	g.ClassifiedAt = s.now().UTC()
	metrics.ObserveRecompute(start)
}

func (s *Service) publish(ctx context.Context, g *genome.Genome, trigger string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishProjectionUpdated(ctx, g, trigger); err != nil {
		s.logger.Warn().Err(err).
			Str("subject", g.SubjectID).
			Str("trigger", trigger).
			Msg("projection event dropped")
	}
}

func (s *Service) view(g *genome.Genome) *View {
	return &View{Genome: g, Tier: s.tier(g)}
}

// tier grades evidence depth: exploring until the standard quiz is
// done, emerging until the log is deep and the classification firm.
func (s *Service) tier(g *genome.Genome) Tier {
	if len(g.AnsweredQuestions()) < exploringAnsweredThreshold {
		return TierExploring
	}
	if len(g.Signals) < emergingSignalThreshold || g.Confidence < emergingConfidenceFloor {
		return TierEmerging
	}
	return TierEstablished
}
