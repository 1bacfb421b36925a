// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package store persists taste genomes. Two implementations are
// provided: a BadgerDB-backed store for production and an in-memory
// store for tests and ephemeral deployments.
//
// All saves use optimistic concurrency: the caller passes the version
// it last read, and the store rejects the write with
// ErrVersionConflict if the stored genome has moved on.
package store

import (
	"context"
	"errors"

	"github.com/pulseplan/genome/internal/genome"
)

var (
	// ErrGenomeNotFound is returned when no genome exists for a subject.
	ErrGenomeNotFound = errors.New("genome not found")

	// ErrVersionConflict is returned when a save races with a
	// concurrent writer. Callers should re-read and retry.
	ErrVersionConflict = errors.New("genome version conflict")

	// ErrStoreClosed is returned for operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Store persists genomes keyed by subject ID.
type Store interface {
	// Get returns the genome for a subject, or ErrGenomeNotFound.
	Get(ctx context.Context, subjectID string) (*genome.Genome, error)

	// Save writes the genome if its stored version still equals
	// expectedVersion (0 means the genome must not exist yet). On
	// success the persisted genome carries expectedVersion+1, and the
	// passed genome's Version field is updated to match.
	Save(ctx context.Context, g *genome.Genome, expectedVersion uint64) error

	// Delete removes a subject's genome. Deleting a missing genome is
	// not an error.
	Delete(ctx context.Context, subjectID string) error

	// Close releases the store's resources.
	Close() error
}
