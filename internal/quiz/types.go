// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package quiz

import (
	"github.com/pulseplan/genome/internal/genome"
)

// Question id prefixes identify the pool a question came from.
const (
	// StaticPrefix marks questions from the static best/worst pool.
	StaticPrefix = "bw-"

	// HoningPrefix marks questions from honing templates.
	HoningPrefix = "hone-"
)

// Card is one selectable answer within a question. Weights are authored
// non-negative over one or two designations; sign is only introduced by
// best/worst scoring.
type Card struct {
	ID          string                         `json:"id" koanf:"id"`
	Label       string                         `json:"label" koanf:"label"`
	Description string                         `json:"description,omitempty" koanf:"description"`
	Weights     map[genome.Designation]float64 `json:"weights" koanf:"weights"`
}

// Question is a static elicitation prompt with exactly four cards. The
// subject picks the card most like them (best) and least like them (worst).
type Question struct {
	ID       string `json:"id" koanf:"id"`
	Prompt   string `json:"prompt" koanf:"prompt"`
	Category string `json:"category" koanf:"category"`
	Cards    []Card `json:"cards" koanf:"cards"`
}

// card resolves a card by id, nil if absent.
func (q *Question) card(id string) *Card {
	for i := range q.Cards {
		if q.Cards[i].ID == id {
			return &q.Cards[i]
		}
	}
	return nil
}

// ResponseKind discriminates the submitted answer shape. The legacy single
// answer format predates best/worst scoring and is kept as an explicit
// variant rather than a shape-sniffed branch.
type ResponseKind string

// Response kinds.
const (
	ResponseBestWorst ResponseKind = "best_worst"
	ResponseLegacy    ResponseKind = "legacy"
)

// Response is one submitted quiz answer, tagged by Kind.
type Response struct {
	Kind       ResponseKind `json:"kind" validate:"required,oneof=best_worst legacy"`
	QuestionID string       `json:"question_id" validate:"required"`

	// Best/worst variant: card ids within the question.
	Best  string `json:"best,omitempty"`
	Worst string `json:"worst,omitempty"`

	// Legacy variant: a single answer carrying pre-computed weights.
	Answer  string                         `json:"answer,omitempty"`
	Weights map[genome.Designation]float64 `json:"weights,omitempty"`
}

// Mode is the selector's current phase for a subject.
type Mode string

// Selector modes. Transitions are monotonic per subject:
// standard → honing → complete.
const (
	ModeStandard Mode = "standard"
	ModeHoning   Mode = "honing"
	ModeComplete Mode = "complete"
)

// Selection is the next batch of questions for a subject.
type Selection struct {
	Questions []Question `json:"questions"`
	Mode      Mode       `json:"mode"`
}
