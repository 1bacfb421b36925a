// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package quiz

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulseplan/genome/internal/genome"
)

// worstMultiplier scales a worst card's weights into negative evidence.
const worstMultiplier = -0.5

// Processor converts submitted quiz responses into genome signals and
// triggers a full-log recomputation. Resolution is lenient: unknown
// question or card ids are skipped, never an error, so submission stays
// robust to stale client-cached question ids.
type Processor struct {
	bank    *Bank
	catalog *genome.Catalog
	params  genome.Params

	// Injection points for tests.
	now   func() time.Time
	newID func() string
}

// NewProcessor creates a response processor over a validated bank.
func NewProcessor(bank *Bank, catalog *genome.Catalog, params genome.Params) *Processor {
	return &Processor{
		bank:    bank,
		catalog: catalog,
		params:  params,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Apply appends the signals produced by a batch of responses to the genome,
// then recomputes the projection once over the entire signal log and stamps
// ClassifiedAt. It returns the number of responses that resolved to at
// least one signal and the total number of signals appended: a full
// best/worst response counts once in processed and twice in appended.
//
// Legacy responses carry client-supplied weights, so those are validated
// against the catalog and rejected with ErrUnknownDesignation on a miss.
func (p *Processor) Apply(g *genome.Genome, responses []Response) (processed, appended int, err error) {
	for i := range responses {
		signals, err := p.signalsFor(responses[i])
		if err != nil {
			return processed, appended, err
		}
		if len(signals) == 0 {
			continue
		}
		g.Append(signals...)
		processed++
		appended += len(signals)
	}

	g.Apply(genome.Recompute(g.Signals, p.catalog, p.params))
	g.ClassifiedAt = p.now()
	return processed, appended, nil
}

// signalsFor resolves one response into zero or more signals.
func (p *Processor) signalsFor(r Response) ([]genome.Signal, error) {
	switch r.Kind {
	case ResponseLegacy:
		if len(r.Weights) == 0 {
			return nil, nil
		}
		if err := p.catalog.ValidateWeights(r.Weights); err != nil {
			return nil, fmt.Errorf("legacy response %s: %w", r.QuestionID, err)
		}
		return []genome.Signal{{
			ID:               p.newID(),
			Type:             genome.SignalChoice,
			Value:            r.Answer,
			Weight:           1.0,
			ArchetypeWeights: cloneWeights(r.Weights),
			Metadata:         genome.SignalMetadata{QuestionID: r.QuestionID},
			Timestamp:        p.now(),
		}}, nil

	case ResponseBestWorst:
		question := p.bank.Lookup(r.QuestionID)
		if question == nil {
			return nil, nil
		}

		var out []genome.Signal
		if best := question.card(r.Best); best != nil {
			out = append(out, genome.Signal{
				ID:               p.newID(),
				Type:             genome.SignalChoice,
				Value:            best.ID,
				Weight:           1.0,
				ArchetypeWeights: cloneWeights(best.Weights),
				Metadata:         genome.SignalMetadata{QuestionID: question.ID, Selection: "best"},
				Timestamp:        p.now(),
			})
		}
		if worst := question.card(r.Worst); worst != nil {
			scaled := make(map[genome.Designation]float64, len(worst.Weights))
			for d, w := range worst.Weights {
				scaled[d] = w * worstMultiplier
			}
			out = append(out, genome.Signal{
				ID:               p.newID(),
				Type:             genome.SignalChoice,
				Value:            worst.ID,
				Weight:           1.0,
				ArchetypeWeights: scaled,
				Metadata:         genome.SignalMetadata{QuestionID: question.ID, Selection: "worst"},
				Timestamp:        p.now(),
			})
		}
		return out, nil

	default:
		// Unknown kinds are dropped, matching the lenient resolution
		// posture of the rest of quiz processing.
		return nil, nil
	}
}

func cloneWeights(w map[genome.Designation]float64) map[genome.Designation]float64 {
	out := make(map[genome.Designation]float64, len(w))
	for d, v := range w {
		out[d] = v
	}
	return out
}
