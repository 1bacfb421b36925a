// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/quiz"
	"github.com/pulseplan/genome/internal/service"
	"github.com/pulseplan/genome/internal/store"
	"github.com/pulseplan/genome/internal/validation"
)

// Handler serves the genome API endpoints.
type Handler struct {
	svc   *service.Service
	ready func() bool
}

// NewHandler creates a Handler. The ready probe may be nil, in which
// case readiness always reports healthy.
func NewHandler(svc *service.Service, ready func() bool) *Handler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Handler{svc: svc, ready: ready}
}

// signalRequest is the body of POST /genome/{subjectID}/signals.
type signalRequest struct {
	Type    string             `json:"type" validate:"omitempty,oneof=choice skip save like implicit"`
	Value   string             `json:"value"`
	Weight  float64            `json:"weight"`
	Weights map[string]float64 `json:"weights" validate:"required,min=1"`
}

// quizRequest is the body of POST /genome/{subjectID}/quiz.
type quizRequest struct {
	Responses []quiz.Response `json:"responses" validate:"required,min=1,dive"`
}

// quizResult is the payload returned after a quiz submission.
type quizResult struct {
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	View      *service.View `json:"view"`
}

// GetGenome handles GET /api/v1/genome/{subjectID}.
func (h *Handler) GetGenome(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	view, err := h.svc.Get(r.Context(), subjectID)
	if errors.Is(err, service.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "no genome for subject", nil)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load genome", err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

// DeleteGenome handles DELETE /api/v1/genome/{subjectID}.
func (h *Handler) DeleteGenome(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	if err := h.svc.Delete(r.Context(), subjectID); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete genome", err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"subject_id": subjectID})
}

// RecordSignal handles POST /api/v1/genome/{subjectID}/signals.
func (h *Handler) RecordSignal(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	var req signalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), nil)
		return
	}

	weights := make(map[genome.Designation]float64, len(req.Weights))
	for d, v := range req.Weights {
		weights[genome.Designation(d)] = v
	}

	view, err := h.svc.RecordSignal(r.Context(), subjectID, genome.Signal{
		Type:             genome.SignalType(req.Type),
		Value:            req.Value,
		Weight:           req.Weight,
		ArchetypeWeights: weights,
	})
	if errors.Is(err, genome.ErrUnknownDesignation) {
		respondError(w, r, http.StatusBadRequest, "UNKNOWN_DESIGNATION", err.Error(), nil)
		return
	}
	if errors.Is(err, store.ErrVersionConflict) {
		respondError(w, r, http.StatusConflict, "CONFLICT", "concurrent update, retry the request", err)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to record signal", err)
		return
	}
	respondJSON(w, r, http.StatusCreated, view)
}

// SubmitQuiz handles POST /api/v1/genome/{subjectID}/quiz.
func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), nil)
		return
	}

	view, processed, err := h.svc.SubmitQuiz(r.Context(), subjectID, req.Responses)
	if errors.Is(err, genome.ErrUnknownDesignation) {
		respondError(w, r, http.StatusBadRequest, "UNKNOWN_DESIGNATION", err.Error(), nil)
		return
	}
	if errors.Is(err, store.ErrVersionConflict) {
		respondError(w, r, http.StatusConflict, "CONFLICT", "concurrent update, retry the request", err)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to process quiz", err)
		return
	}

	respondJSON(w, r, http.StatusOK, &quizResult{
		Processed: processed,
		Skipped:   len(req.Responses) - processed,
		View:      view,
	})
}

// NextQuestions handles GET /api/v1/genome/{subjectID}/quiz/next.
func (h *Handler) NextQuestions(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	sel, err := h.svc.NextQuestions(r.Context(), subjectID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to select questions", err)
		return
	}
	respondJSON(w, r, http.StatusOK, sel)
}

// Recompute handles POST /api/v1/genome/{subjectID}/recompute.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	view, err := h.svc.Recompute(r.Context(), subjectID)
	if errors.Is(err, store.ErrVersionConflict) {
		respondError(w, r, http.StatusConflict, "CONFLICT", "concurrent update, retry the request", err)
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to recompute genome", err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

// Catalog handles GET /api/v1/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.svc.Catalog().Entries())
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if !h.ready() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, r, code, map[string]string{"status": status})
}

// HealthLive handles GET /api/v1/health/live. The process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.ready() {
		respondError(w, r, http.StatusServiceUnavailable, "NOT_READY", "service is not ready", nil)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
