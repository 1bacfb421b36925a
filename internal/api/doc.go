// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

// Package api exposes the genome engine over HTTP using the Chi
// router. All responses use the models.APIResponse envelope.
package api
