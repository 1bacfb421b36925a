// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package genome implements the core taste-genome classifier: the archetype
// catalog, the append-only signal log, and the pure recomputation that turns
// accumulated signals into a probability distribution over archetypes.
//
// The package has no dependencies on other internal packages so that the
// service, store, and API layers can all share it without import cycles.
//
// Everything here is deterministic: recomputing an unchanged signal log
// always yields an identical projection. Derived fields on a Genome
// (distribution, primary, secondary, confidence) are a cache of
// Recompute over the log and carry no independent lifecycle.
package genome
