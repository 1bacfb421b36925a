// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package genome

import (
	"time"
)

// Designation is one archetype code in the catalog, e.g. "V-2".
type Designation string

// SignalType classifies the origin of a piece of evidence.
type SignalType string

// Signal types observed across the ingestion surfaces.
const (
	SignalChoice   SignalType = "choice"
	SignalSkip     SignalType = "skip"
	SignalSave     SignalType = "save"
	SignalLike     SignalType = "like"
	SignalImplicit SignalType = "implicit"
)

// SignalMetadata carries optional provenance for a signal.
type SignalMetadata struct {
	// QuestionID links a signal back to the quiz question that produced it.
	// Empty for behavioral signals.
	QuestionID string `json:"question_id,omitempty"`

	// Selection is "best" or "worst" for best/worst quiz signals.
	Selection string `json:"selection,omitempty"`
}

// Signal is one immutable unit of evidence about a subject's preference.
// Signals are append-only: once recorded they are never edited or deleted.
type Signal struct {
	// ID uniquely identifies the signal within a genome.
	ID string `json:"id"`

	// Type classifies the evidence source.
	Type SignalType `json:"type"`

	// Value is the selected entity, e.g. a card ID.
	Value string `json:"value,omitempty"`

	// Weight scales the whole signal. Zero means unset and is treated
	// as 1.0 during recomputation.
	Weight float64 `json:"weight,omitempty"`

	// ArchetypeWeights maps designations to evidence weight. Values may
	// be negative (worst-card scoring). Keys must belong to the catalog.
	ArchetypeWeights map[Designation]float64 `json:"archetype_weights"`

	// Metadata carries provenance such as the originating question.
	Metadata SignalMetadata `json:"metadata,omitempty"`

	// Timestamp records when the signal was observed.
	Timestamp time.Time `json:"timestamp"`
}

// Projection is the derived classification state for a subject.
type Projection struct {
	// Distribution assigns a probability to every catalog designation.
	// Values sum to 1 within floating epsilon.
	Distribution map[Designation]float64 `json:"distribution"`

	// Primary is the most probable designation. Empty when the signal
	// log is empty.
	Primary Designation `json:"primary,omitempty"`

	// Secondary is the runner-up designation, present only when its
	// probability exceeds the secondary threshold.
	Secondary Designation `json:"secondary,omitempty"`

	// Confidence is the primary probability dampened by evidence depth.
	Confidence float64 `json:"confidence"`
}

// Genome is one subject's accumulated preference state: the signal log plus
// the projection derived from it.
type Genome struct {
	SubjectID string   `json:"subject_id"`
	Signals   []Signal `json:"signals"`

	// Derived fields, recomputed from the full signal log.
	Distribution map[Designation]float64 `json:"distribution"`
	Primary      Designation             `json:"primary,omitempty"`
	Secondary    Designation             `json:"secondary,omitempty"`
	Confidence   float64                 `json:"confidence"`
	ClassifiedAt time.Time               `json:"classified_at,omitempty"`

	// Version supports optimistic concurrency at the store boundary.
	// It is incremented by the store on every successful save.
	Version uint64 `json:"version"`
}

// New creates an empty genome for a subject with a uniform distribution
// over the given catalog and no primary archetype.
func New(subjectID string, catalog *Catalog) *Genome {
	g := &Genome{
		SubjectID: subjectID,
		Signals:   make([]Signal, 0),
	}
	g.Apply(Recompute(nil, catalog, DefaultParams()))
	return g
}

// Append adds signals to the log. It never recomputes; callers decide when
// to derive the projection.
func (g *Genome) Append(signals ...Signal) {
	g.Signals = append(g.Signals, signals...)
}

// Apply replaces the derived fields with the given projection.
func (g *Genome) Apply(p Projection) {
	g.Distribution = p.Distribution
	g.Primary = p.Primary
	g.Secondary = p.Secondary
	g.Confidence = p.Confidence
}

// Projection returns the current derived state as a standalone value.
func (g *Genome) Projection() Projection {
	return Projection{
		Distribution: g.Distribution,
		Primary:      g.Primary,
		Secondary:    g.Secondary,
		Confidence:   g.Confidence,
	}
}

// AnsweredQuestions returns the set of quiz question IDs that have produced
// at least one signal in the log.
func (g *Genome) AnsweredQuestions() map[string]struct{} {
	answered := make(map[string]struct{})
	for i := range g.Signals {
		if id := g.Signals[i].Metadata.QuestionID; id != "" {
			answered[id] = struct{}{}
		}
	}
	return answered
}
