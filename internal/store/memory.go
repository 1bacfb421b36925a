// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package store

import (
	"context"
	"sync"

	"github.com/goccy/go-json"

	"github.com/pulseplan/genome/internal/genome"
)

// MemoryStore implements Store with an in-process map. Genomes are
// stored serialized so callers never share mutable state with the
// store, matching BadgerStore semantics.
type MemoryStore struct {
	mu      sync.RWMutex
	genomes map[string][]byte
	closed  bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{genomes: make(map[string][]byte)}
}

// Get retrieves the genome for a subject.
func (s *MemoryStore) Get(ctx context.Context, subjectID string) (*genome.Genome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	data, ok := s.genomes[subjectID]
	if !ok {
		return nil, ErrGenomeNotFound
	}
	var g genome.Genome
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Save writes the genome under optimistic concurrency.
func (s *MemoryStore) Save(ctx context.Context, g *genome.Genome, expectedVersion uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}

	if data, ok := s.genomes[g.SubjectID]; ok {
		var current genome.Genome
		if err := json.Unmarshal(data, &current); err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return ErrVersionConflict
		}
	} else if expectedVersion != 0 {
		return ErrVersionConflict
	}

	next := *g
	next.Version = expectedVersion + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return err
	}
	s.genomes[g.SubjectID] = data
	g.Version = next.Version
	return nil
}

// Delete removes a subject's genome.
func (s *MemoryStore) Delete(ctx context.Context, subjectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	delete(s.genomes, subjectID)
	return nil
}

// Close marks the store closed; further operations fail.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
