// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package events publishes genome lifecycle events to an in-process
// Watermill bus. Downstream schedulers subscribe to pick up projection
// changes without polling the store.
package events

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/pulseplan/genome/internal/genome"
)

// Topics published by the genome service.
const (
	TopicProjectionUpdated = "genome.projection.updated"
	TopicGenomeDeleted     = "genome.deleted"
)

// Metadata keys set on every published message.
const (
	MetaSubjectID = "subject_id"
	MetaTrigger   = "trigger"
)

// ProjectionUpdated is emitted after a genome's derived state changes.
type ProjectionUpdated struct {
	SubjectID    string                             `json:"subject_id"`
	Primary      genome.Designation                 `json:"primary,omitempty"`
	Secondary    genome.Designation                 `json:"secondary,omitempty"`
	Confidence   float64                            `json:"confidence"`
	Distribution map[genome.Designation]float64     `json:"distribution"`
	SignalCount  int                                `json:"signal_count"`
	Version      uint64                             `json:"version"`
	Trigger      string                             `json:"trigger"`
	OccurredAt   time.Time                          `json:"occurred_at"`
}

// GenomeDeleted is emitted after a subject's genome is removed.
type GenomeDeleted struct {
	SubjectID  string    `json:"subject_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProjectionUpdated builds the event payload from a genome.
func NewProjectionUpdated(g *genome.Genome, trigger string) *ProjectionUpdated {
	return &ProjectionUpdated{
		SubjectID:    g.SubjectID,
		Primary:      g.Primary,
		Secondary:    g.Secondary,
		Confidence:   g.Confidence,
		Distribution: g.Distribution,
		SignalCount:  len(g.Signals),
		Version:      g.Version,
		Trigger:      trigger,
		OccurredAt:   time.Now().UTC(),
	}
}

// marshalMessage serializes an event into a Watermill message with a
// fresh UUID and the subject ID in the metadata.
func marshalMessage(payload any, subjectID, trigger string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(MetaSubjectID, subjectID)
	if trigger != "" {
		msg.Metadata.Set(MetaTrigger, trigger)
	}
	return msg, nil
}
