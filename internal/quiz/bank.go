// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pulseplan/genome/internal/genome"
)

// Bank validation errors.
var (
	ErrDuplicateQuestionID = errors.New("duplicate question id in bank")
	ErrBadCardCount        = errors.New("question must have exactly 4 cards")
	ErrBadCardWeights      = errors.New("card weights must be non-negative over 1-2 designations")
	ErrBadQuestionPrefix   = errors.New("question id has wrong pool prefix")
)

// cardsPerQuestion is fixed by the best/worst format.
const cardsPerQuestion = 4

// Pair is an unordered designation pair, used to key honing templates.
type Pair struct {
	A genome.Designation `koanf:"a"`
	B genome.Designation `koanf:"b"`
}

// key returns the canonical form, independent of ordering.
func (p Pair) key() Pair {
	if p.B < p.A {
		return Pair{A: p.B, B: p.A}
	}
	return p
}

// HoningTemplate binds extra discriminating questions to a confused pair.
type HoningTemplate struct {
	Pair      Pair       `koanf:"pair"`
	Questions []Question `koanf:"questions"`
}

// Bank is the read-only question bank: the static best/worst pool plus
// honing templates for confused designation pairs.
type Bank struct {
	pool       []Question
	honing     map[Pair][]Question
	byID       map[string]*Question
	categories []string
	touched    map[string][]genome.Designation
}

// NewBank validates and indexes a question bank against the catalog.
func NewBank(pool []Question, honing []HoningTemplate, catalog *genome.Catalog) (*Bank, error) {
	b := &Bank{
		pool:    pool,
		honing:  make(map[Pair][]Question),
		byID:    make(map[string]*Question),
		touched: make(map[string][]genome.Designation),
	}

	seenCategory := make(map[string]struct{})
	for i := range b.pool {
		q := &b.pool[i]
		if err := b.indexQuestion(q, StaticPrefix, catalog); err != nil {
			return nil, err
		}
		if _, ok := seenCategory[q.Category]; !ok {
			seenCategory[q.Category] = struct{}{}
			b.categories = append(b.categories, q.Category)
		}
	}

	for _, tpl := range honing {
		key := tpl.Pair.key()
		if !catalog.Contains(key.A) || !catalog.Contains(key.B) {
			return nil, fmt.Errorf("honing pair {%s,%s}: %w", key.A, key.B, genome.ErrUnknownDesignation)
		}
		qs := make([]Question, len(tpl.Questions))
		copy(qs, tpl.Questions)
		for i := range qs {
			if err := b.indexQuestion(&qs[i], HoningPrefix, catalog); err != nil {
				return nil, err
			}
		}
		b.honing[key] = append(b.honing[key], qs...)
	}

	// Touched designations per category: the union of designations any
	// card of any pool question in the category references. Catalog order
	// keeps entropy summation deterministic.
	for _, category := range b.categories {
		set := make(map[genome.Designation]struct{})
		for i := range b.pool {
			if b.pool[i].Category != category {
				continue
			}
			for _, c := range b.pool[i].Cards {
				for d := range c.Weights {
					set[d] = struct{}{}
				}
			}
		}
		for _, d := range catalog.Designations() {
			if _, ok := set[d]; ok {
				b.touched[category] = append(b.touched[category], d)
			}
		}
	}

	return b, nil
}

// indexQuestion validates a single question and registers it for lookup.
func (b *Bank) indexQuestion(q *Question, prefix string, catalog *genome.Catalog) error {
	if !strings.HasPrefix(q.ID, prefix) {
		return fmt.Errorf("%w: %s (want prefix %q)", ErrBadQuestionPrefix, q.ID, prefix)
	}
	if _, exists := b.byID[q.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateQuestionID, q.ID)
	}
	if len(q.Cards) != cardsPerQuestion {
		return fmt.Errorf("%w: %s has %d", ErrBadCardCount, q.ID, len(q.Cards))
	}
	for _, c := range q.Cards {
		if len(c.Weights) < 1 || len(c.Weights) > 2 {
			return fmt.Errorf("%w: card %s references %d designations", ErrBadCardWeights, c.ID, len(c.Weights))
		}
		for d, w := range c.Weights {
			if !catalog.Contains(d) {
				return fmt.Errorf("card %s: %w: %s", c.ID, genome.ErrUnknownDesignation, d)
			}
			if w < 0 {
				return fmt.Errorf("%w: card %s weight for %s is negative", ErrBadCardWeights, c.ID, d)
			}
		}
	}
	b.byID[q.ID] = q
	return nil
}

// Lookup resolves a question by id across the static pool and all honing
// templates. Returns nil when the id is unknown.
func (b *Bank) Lookup(id string) *Question {
	return b.byID[id]
}

// Pool returns the static question pool. The slice must not be mutated.
func (b *Bank) Pool() []Question {
	return b.pool
}

// PoolSize returns the number of static questions.
func (b *Bank) PoolSize() int {
	return len(b.pool)
}

// Categories returns the distinct pool categories in authoring order.
func (b *Bank) Categories() []string {
	return b.categories
}

// Touched returns the designations referenced by any card of any pool
// question in the category, in catalog order.
func (b *Bank) Touched(category string) []genome.Designation {
	return b.touched[category]
}

// HoningFor returns the honing questions for an unordered designation pair.
func (b *Bank) HoningFor(a, d genome.Designation) []Question {
	return b.honing[Pair{A: a, B: d}.key()]
}

// bankFile is the YAML override shape.
type bankFile struct {
	Pool   []Question       `koanf:"pool"`
	Honing []HoningTemplate `koanf:"honing"`
}

// LoadBank reads a question bank from a YAML file and validates it against
// the catalog. Used when a deployment overrides the built-in bank.
func LoadBank(path string, catalog *genome.Catalog) (*Bank, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load quiz bank %s: %w", path, err)
	}

	var f bankFile
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("unmarshal quiz bank %s: %w", path, err)
	}

	bank, err := NewBank(f.Pool, f.Honing, catalog)
	if err != nil {
		return nil, fmt.Errorf("validate quiz bank %s: %w", path, err)
	}
	return bank, nil
}
