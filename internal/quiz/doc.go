// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package quiz holds the static best/worst question bank, the response
// processor that turns submitted answers into genome signals, and the
// active-learning selector that decides which questions to ask next.
//
// The bank is versioned, read-only data: loaded once at startup (built-in
// default or YAML override) and shared across all requests without locking.
package quiz
