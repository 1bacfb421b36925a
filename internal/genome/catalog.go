// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package genome

import (
	"errors"
	"fmt"
)

// Catalog errors.
var (
	// ErrUnknownDesignation indicates a signal referenced a designation
	// outside the catalog. Such signals are rejected at ingestion to
	// prevent distribution drift from malformed data.
	ErrUnknownDesignation = errors.New("designation is not in the catalog")

	// ErrEmptyCatalog indicates a catalog was constructed with no entries.
	ErrEmptyCatalog = errors.New("catalog must contain at least one designation")

	// ErrDuplicateDesignation indicates a catalog entry appeared twice.
	ErrDuplicateDesignation = errors.New("duplicate designation in catalog")
)

// CatalogEntry pairs a designation code with its descriptive label.
type CatalogEntry struct {
	ID    Designation `json:"id" koanf:"id"`
	Label string      `json:"label" koanf:"label"`
}

// Catalog is the closed, immutable set of archetype designations. It is
// loaded once at startup and safely shared across concurrent requests.
type Catalog struct {
	ordered []Designation
	labels  map[Designation]string
}

// NewCatalog builds a catalog from entries. Order is preserved and becomes
// the deterministic iteration order used during recomputation.
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		ordered: make([]Designation, 0, len(entries)),
		labels:  make(map[Designation]string, len(entries)),
	}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry with empty designation: %w", ErrEmptyCatalog)
		}
		if _, exists := c.labels[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDesignation, e.ID)
		}
		c.ordered = append(c.ordered, e.ID)
		c.labels[e.ID] = e.Label
	}
	return c, nil
}

// DefaultCatalog returns the built-in archetype catalog. Deployments can
// override it through configuration; the engine treats membership as
// injected, versioned data rather than a hard-coded enum.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]CatalogEntry{
		{ID: "V-2", Label: "Visionary"},
		{ID: "S-0", Label: "Storyteller"},
		{ID: "T-1", Label: "Technician"},
		{ID: "F-9", Label: "Futurist"},
		{ID: "C-4", Label: "Curator"},
		{ID: "R-10", Label: "Realist"},
		{ID: "D-8", Label: "Disruptor"},
		{ID: "NULL", Label: "Unaligned"},
		{ID: "H-6", Label: "Harmonist"},
		{ID: "P-7", Label: "Provocateur"},
		{ID: "L-3", Label: "Lyricist"},
		{ID: "N-5", Label: "Naturalist"},
	})
	if err != nil {
		// The built-in catalog is statically valid.
		panic(err)
	}
	return c
}

// Size returns the number of designations.
func (c *Catalog) Size() int {
	return len(c.ordered)
}

// Contains reports whether d is a catalog member.
func (c *Catalog) Contains(d Designation) bool {
	_, ok := c.labels[d]
	return ok
}

// Label returns the descriptive label for a designation, or "" if the
// designation is not in the catalog.
func (c *Catalog) Label(d Designation) string {
	return c.labels[d]
}

// Designations returns the catalog members in their stable order. The
// returned slice is a copy.
func (c *Catalog) Designations() []Designation {
	out := make([]Designation, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Entries returns the catalog as entry values in stable order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(c.ordered))
	for _, d := range c.ordered {
		out = append(out, CatalogEntry{ID: d, Label: c.labels[d]})
	}
	return out
}

// ValidateWeights checks that every key of an archetype weight map belongs
// to the catalog. Used to fail fast at signal ingestion.
func (c *Catalog) ValidateWeights(weights map[Designation]float64) error {
	for d := range weights {
		if !c.Contains(d) {
			return fmt.Errorf("%w: %s", ErrUnknownDesignation, d)
		}
	}
	return nil
}
