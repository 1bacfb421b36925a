// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/metrics"
)

// Key prefix for BadgerDB storage
const genomeKeyPrefix = "genome:"

// gcDiscardRatio is the reclaim threshold for Badger value-log GC.
const gcDiscardRatio = 0.5

// BadgerStore implements Store using BadgerDB for durable storage.
type BadgerStore struct {
	db *badger.DB
}

var _ Store = (*BadgerStore)(nil)

// NewBadgerStore opens a BadgerDB at path and returns a store backed
// by it. The store owns the database and closes it on Close.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 64 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for genomes: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStoreFromDB wraps an already-open BadgerDB. Closing the
// returned store closes the database.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func genomeKey(subjectID string) []byte {
	return []byte(genomeKeyPrefix + subjectID)
}

// Get retrieves the genome for a subject.
func (s *BadgerStore) Get(ctx context.Context, subjectID string) (*genome.Genome, error) {
	start := time.Now()
	defer metrics.ObserveStoreOperation("get", start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g genome.Genome
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(genomeKey(subjectID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGenomeNotFound
		}
		if err != nil {
			return fmt.Errorf("get genome: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &g)
		})
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Save writes the genome under optimistic concurrency. The version
// check and the write happen inside a single Badger transaction, so
// concurrent savers serialize on the key.
func (s *BadgerStore) Save(ctx context.Context, g *genome.Genome, expectedVersion uint64) error {
	start := time.Now()
	defer metrics.ObserveStoreOperation("save", start)

	if err := ctx.Err(); err != nil {
		return err
	}

	next := *g
	next.Version = expectedVersion + 1

	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("marshal genome: %w", err)
	}

	key := genomeKey(g.SubjectID)
	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			if expectedVersion != 0 {
				return ErrVersionConflict
			}
		case err != nil:
			return fmt.Errorf("read current genome: %w", err)
		default:
			var current genome.Genome
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &current)
			}); err != nil {
				return fmt.Errorf("unmarshal current genome: %w", err)
			}
			if current.Version != expectedVersion {
				return ErrVersionConflict
			}
		}
		return txn.Set(key, data)
	})
	if errors.Is(err, badger.ErrConflict) {
		err = ErrVersionConflict
	}
	if errors.Is(err, ErrVersionConflict) {
		metrics.StoreConflicts.Inc()
	}
	if err != nil {
		return err
	}

	g.Version = next.Version
	return nil
}

// Delete removes a subject's genome.
func (s *BadgerStore) Delete(ctx context.Context, subjectID string) error {
	start := time.Now()
	defer metrics.ObserveStoreOperation("delete", start)

	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(genomeKey(subjectID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// RunGC runs one round of Badger value-log garbage collection.
// badger.ErrNoRewrite (nothing to reclaim) is not an error.
func (s *BadgerStore) RunGC() error {
	err := s.db.RunValueLogGC(gcDiscardRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
