// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package quiz

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/pulseplan/genome/internal/genome"
)

// Batch sizes for the selection phases.
const (
	standardBatchSize = 5
	honingBatchSize   = 3
)

// Selector is the active-learning policy: given a genome's answered
// history and current distribution, it chooses the next batch of
// questions. Safe for concurrent use; the only mutable state is the RNG.
type Selector struct {
	bank    *Bank
	catalog *genome.Catalog

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewSelector creates a selector with a seeded RNG for deterministic
// cold-start shuffles. A zero seed falls back to a fixed default.
func NewSelector(bank *Bank, catalog *genome.Catalog, seed int64) *Selector {
	if seed == 0 {
		seed = 42
	}
	return &Selector{
		bank:    bank,
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for question shuffling
	}
}

// Next returns the next question batch for the genome.
//
// Phases are monotonic per subject: standard while unanswered static
// questions remain (cold-start category sampling, then entropy-ranked
// retakes), honing once the static pool is exhausted, complete when no
// honing questions remain for any confused pair.
func (s *Selector) Next(g *genome.Genome) Selection {
	answered := g.AnsweredQuestions()

	var unanswered []Question
	for _, q := range s.bank.Pool() {
		if _, done := answered[q.ID]; !done {
			unanswered = append(unanswered, q)
		}
	}

	if len(unanswered) > 0 {
		if len(answered) == 0 {
			return Selection{Questions: s.coldStart(unanswered), Mode: ModeStandard}
		}
		return Selection{Questions: s.entropyRanked(unanswered, g.Distribution), Mode: ModeStandard}
	}

	if honing := s.honing(answered, g.Distribution); len(honing) > 0 {
		return Selection{Questions: honing, Mode: ModeHoning}
	}

	return Selection{Questions: []Question{}, Mode: ModeComplete}
}

// coldStart samples one question from each of up to five shuffled
// categories, so a new subject's first batch spans the archetype space.
func (s *Selector) coldStart(unanswered []Question) []Question {
	byCategory := make(map[string][]Question)
	var categories []string
	for _, q := range unanswered {
		if _, seen := byCategory[q.Category]; !seen {
			categories = append(categories, q.Category)
		}
		byCategory[q.Category] = append(byCategory[q.Category], q)
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(categories), func(i, j int) {
		categories[i], categories[j] = categories[j], categories[i]
	})
	picks := make([]Question, 0, standardBatchSize)
	for _, c := range categories {
		if len(picks) == standardBatchSize {
			break
		}
		candidates := byCategory[c]
		picks = append(picks, candidates[s.rng.Intn(len(candidates))])
	}
	s.rngMu.Unlock()

	return picks
}

// entropyRanked orders unanswered questions by the entropy of their
// category's touched designations, highest first: ask next about the part
// of the archetype space the distribution has resolved least.
func (s *Selector) entropyRanked(unanswered []Question, distribution map[genome.Designation]float64) []Question {
	categoryEntropy := make(map[string]float64)
	for _, c := range s.bank.Categories() {
		categoryEntropy[c] = genome.Entropy(distribution, s.bank.Touched(c))
	}

	ranked := make([]Question, len(unanswered))
	copy(ranked, unanswered)
	sort.SliceStable(ranked, func(i, j int) bool {
		return categoryEntropy[ranked[i].Category] > categoryEntropy[ranked[j].Category]
	})

	if len(ranked) > standardBatchSize {
		ranked = ranked[:standardBatchSize]
	}
	return ranked
}

// honing walks designation pairs from the most confused (smallest
// probability gap) outward and collects their unanswered template
// questions, up to the honing batch size.
func (s *Selector) honing(answered map[string]struct{}, distribution map[genome.Designation]float64) []Question {
	designations := s.catalog.Designations()

	type pairGap struct {
		a, b genome.Designation
		gap  float64
	}
	pairs := make([]pairGap, 0, len(designations)*(len(designations)-1)/2)
	for i := 0; i < len(designations); i++ {
		for j := i + 1; j < len(designations); j++ {
			pairs = append(pairs, pairGap{
				a:   designations[i],
				b:   designations[j],
				gap: math.Abs(distribution[designations[i]] - distribution[designations[j]]),
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].gap < pairs[j].gap
	})

	var picks []Question
	for _, p := range pairs {
		for _, q := range s.bank.HoningFor(p.a, p.b) {
			if _, done := answered[q.ID]; done {
				continue
			}
			picks = append(picks, q)
			if len(picks) == honingBatchSize {
				return picks
			}
		}
	}
	return picks
}
