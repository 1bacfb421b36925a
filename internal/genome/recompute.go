// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package genome

import (
	"math"
)

// Params tunes the distribution recomputation.
type Params struct {
	// Temperature is the softmax temperature. Higher values flatten the
	// distribution and bound the effect of any single outlier signal.
	Temperature float64 `koanf:"temperature"`

	// MinSignals is the evidence depth at which confidence is no longer
	// dampened. Below it, confidence scales linearly with log size so a
	// single early signal cannot produce unwarranted certainty.
	MinSignals int `koanf:"min_signals"`

	// SecondaryThreshold is the minimum probability for a runner-up
	// designation to be reported as secondary.
	SecondaryThreshold float64 `koanf:"secondary_threshold"`
}

// DefaultParams returns the production recomputation parameters.
func DefaultParams() Params {
	return Params{
		Temperature:        5.0,
		MinSignals:         20,
		SecondaryThreshold: 0.12,
	}
}

// normalized applies defaults for zero values.
func (p Params) normalized() Params {
	if p.Temperature <= 0 {
		p.Temperature = 5.0
	}
	if p.MinSignals <= 0 {
		p.MinSignals = 20
	}
	if p.SecondaryThreshold <= 0 {
		p.SecondaryThreshold = 0.12
	}
	return p
}

// Recompute derives the archetype projection from a full signal log. It is
// a pure function: same log, same catalog, same params, bit-identical
// output. Complexity is O(len(signals) * avg weights per signal).
//
// An empty log yields a uniform distribution, no primary or secondary, and
// zero confidence.
func Recompute(signals []Signal, catalog *Catalog, params Params) Projection {
	params = params.normalized()
	designations := catalog.Designations()

	if len(signals) == 0 {
		uniform := make(map[Designation]float64, len(designations))
		p := 1.0 / float64(len(designations))
		for _, d := range designations {
			uniform[d] = p
		}
		return Projection{Distribution: uniform}
	}

	// Accumulate weighted evidence per designation. Each bin only ever
	// receives its own terms in signal order, so the floating summation
	// order is stable regardless of map iteration order.
	running := make(map[Designation]float64, len(designations))
	for i := range signals {
		multiplier := signals[i].Weight
		if multiplier == 0 {
			multiplier = 1.0
		}
		multiplier = math.Abs(multiplier)
		for d, w := range signals[i].ArchetypeWeights {
			running[d] += w * multiplier
		}
	}

	// Softmax with temperature, shifted by the max for numerical
	// stability. The shift cancels out of the ratio.
	maxRunning := math.Inf(-1)
	for _, d := range designations {
		if running[d] > maxRunning {
			maxRunning = running[d]
		}
	}

	exps := make(map[Designation]float64, len(designations))
	var sum float64
	for _, d := range designations {
		e := math.Exp((running[d] - maxRunning) / params.Temperature)
		exps[d] = e
		sum += e
	}

	distribution := make(map[Designation]float64, len(designations))
	for _, d := range designations {
		distribution[d] = exps[d] / sum
	}

	// Primary and secondary by probability, ties resolved by catalog order.
	var primary Designation
	best := math.Inf(-1)
	for _, d := range designations {
		if distribution[d] > best {
			best = distribution[d]
			primary = d
		}
	}

	var secondary Designation
	second := math.Inf(-1)
	for _, d := range designations {
		if d == primary {
			continue
		}
		if distribution[d] > second {
			second = distribution[d]
			secondary = d
		}
	}
	if second <= params.SecondaryThreshold {
		secondary = ""
	}

	// Dampen confidence while evidence is sparse.
	evidence := float64(len(signals)) / float64(params.MinSignals)
	if evidence > 1 {
		evidence = 1
	}

	return Projection{
		Distribution: distribution,
		Primary:      primary,
		Secondary:    secondary,
		Confidence:   distribution[primary] * evidence,
	}
}

// Entropy computes the Shannon entropy (natural log) of the distribution
// restricted to the given designations. Zero-probability terms are skipped.
// The quiz selector uses it to rank question categories by how unresolved
// their archetype space is.
func Entropy(distribution map[Designation]float64, over []Designation) float64 {
	var h float64
	for _, d := range over {
		p := distribution[d]
		if p <= 0 {
			continue
		}
		h -= p * math.Log(p)
	}
	return h
}
