// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/metrics"
)

// BreakerConfig tunes the circuit breaker around publish operations.
type BreakerConfig struct {
	Name             string        `koanf:"name"`
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// DefaultBreakerConfig returns conservative breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "genome-events",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 5,
	}
}

// newBreaker creates a circuit breaker from the config.
// Uses the gobreaker generic API with interface{} for flexibility.
func newBreaker(cfg BreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
	})
}

// Bus wraps a Watermill GoChannel pub/sub with circuit breaker
// protection on the publish path.
type Bus struct {
	pubsub  *gochannel.GoChannel
	breaker *gobreaker.CircuitBreaker[interface{}]
	mu      sync.RWMutex
	closed  bool
}

// NewBus creates an in-process event bus.
func NewBus(cfg BreakerConfig, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, logger)

	return &Bus{
		pubsub:  pubsub,
		breaker: newBreaker(cfg),
	}
}

// PublishProjectionUpdated emits the projection-updated event for a
// genome. Publish failures are counted but never block the caller's
// write path; the caller decides whether to treat them as fatal.
func (b *Bus) PublishProjectionUpdated(ctx context.Context, g *genome.Genome, trigger string) error {
	event := NewProjectionUpdated(g, trigger)
	msg, err := marshalMessage(event, g.SubjectID, trigger)
	if err != nil {
		return fmt.Errorf("marshal projection event: %w", err)
	}
	return b.publish(ctx, TopicProjectionUpdated, msg)
}

// PublishGenomeDeleted emits the deletion event for a subject.
func (b *Bus) PublishGenomeDeleted(ctx context.Context, subjectID string) error {
	event := &GenomeDeleted{SubjectID: subjectID, OccurredAt: time.Now().UTC()}
	msg, err := marshalMessage(event, subjectID, "")
	if err != nil {
		return fmt.Errorf("marshal deletion event: %w", err)
	}
	return b.publish(ctx, TopicGenomeDeleted, msg)
}

func (b *Bus) publish(ctx context.Context, topic string, msg *message.Message) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	b.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.pubsub.Publish(topic, msg)
	})
	if err != nil {
		metrics.ProjectionEventsDropped.Inc()
		return err
	}
	metrics.ProjectionEventsPublished.Inc()
	return nil
}

// Subscribe returns a channel of messages for the topic. The channel
// closes when ctx is canceled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// BreakerState reports the circuit breaker state for monitoring.
func (b *Bus) BreakerState() string {
	return b.breaker.State().String()
}

// Close shuts down the bus and all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}
