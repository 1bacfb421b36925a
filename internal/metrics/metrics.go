// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package metrics provides Prometheus instrumentation for the genome
// service: recomputation latency, signal throughput, quiz activity,
// store contention, and API request metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Engine metrics
	RecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "genome_recompute_duration_seconds",
			Help:    "Duration of full-log distribution recomputations",
			Buckets: prometheus.DefBuckets,
		},
	)

	SignalsAppended = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genome_signals_appended_total",
			Help: "Total signals appended to genome logs",
		},
		[]string{"type"},
	)

	QuizSubmissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genome_quiz_submissions_total",
			Help: "Total quiz response batches processed",
		},
	)

	SelectorBatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genome_selector_batches_total",
			Help: "Question batches served, by selector mode",
		},
		[]string{"mode"},
	)

	// Store metrics
	StoreConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genome_store_version_conflicts_total",
			Help: "Optimistic-concurrency conflicts on genome saves",
		},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genome_store_operation_duration_seconds",
			Help:    "Duration of genome store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Event metrics
	ProjectionEventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genome_projection_events_published_total",
			Help: "Projection-update events published to the event bus",
		},
	)

	ProjectionEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genome_projection_events_dropped_total",
			Help: "Projection-update events dropped due to publish failures",
		},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveRecompute records one recomputation.
func ObserveRecompute(start time.Time) {
	RecomputeDuration.Observe(time.Since(start).Seconds())
}

// ObserveStoreOperation records one store operation.
func ObserveStoreOperation(operation string, start time.Time) {
	StoreOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, status int, start time.Time) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}
