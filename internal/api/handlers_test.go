// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/logging"
	"github.com/pulseplan/genome/internal/models"
	"github.com/pulseplan/genome/internal/quiz"
	"github.com/pulseplan/genome/internal/service"
	"github.com/pulseplan/genome/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := genome.DefaultCatalog()
	bank, err := quiz.DefaultBank(catalog)
	if err != nil {
		t.Fatalf("DefaultBank() error = %v", err)
	}
	svc := service.New(store.NewMemoryStore(), nil, catalog, bank,
		genome.DefaultParams(), 1, logging.NewTestLogger(io.Discard))

	router := NewRouter(NewHandler(svc, nil), RouterConfig{
		CORSOrigins:       []string{"*"},
		RateLimitDisabled: true,
	})

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func doRequest(t *testing.T, method, url string, body any) (*http.Response, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, &env
}

func TestAPI_Catalog(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/catalog", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var entries []genome.CatalogEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		t.Fatalf("unmarshal entries: %v", err)
	}
	if len(entries) != 12 {
		t.Errorf("catalog size = %d, want 12", len(entries))
	}
}

func TestAPI_GetGenomeNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/genome/nobody", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", env.Error)
	}
	if env.Metadata.RequestID == "" {
		t.Error("metadata request_id is empty")
	}
}

func TestAPI_RecordSignalAndGet(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/signals", map[string]any{
		"type":    "like",
		"value":   "card-7",
		"weights": map[string]float64{"V-2": 0.8, "S-0": 0.2},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201; error = %+v", resp.StatusCode, env.Error)
	}

	var view service.View
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.Genome.Primary != "V-2" {
		t.Errorf("Primary = %q, want V-2", view.Genome.Primary)
	}
	if view.Tier != service.TierExploring {
		t.Errorf("Tier = %q, want exploring", view.Tier)
	}

	resp, env = doRequest(t, http.MethodGet, srv.URL+"/api/v1/genome/subject-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", resp.StatusCode)
	}
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if len(view.Genome.Signals) != 1 {
		t.Errorf("signal count = %d, want 1", len(view.Genome.Signals))
	}
}

func TestAPI_RecordSignalValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		body     map[string]any
		wantCode string
	}{
		{
			name:     "missing weights",
			body:     map[string]any{"type": "like"},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "bad signal type",
			body:     map[string]any{"type": "telepathy", "weights": map[string]float64{"V-2": 1.0}},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "unknown designation",
			body:     map[string]any{"type": "like", "weights": map[string]float64{"X-99": 1.0}},
			wantCode: "UNKNOWN_DESIGNATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/signals", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestAPI_SubmitQuiz(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/quiz", map[string]any{
		"responses": []map[string]any{
			{"kind": "best_worst", "question_id": "bw-01", "best": "bw-01-a", "worst": "bw-01-c"},
			{"kind": "best_worst", "question_id": "missing", "best": "x", "worst": "y"},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200; error = %+v", resp.StatusCode, env.Error)
	}

	var result quizResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Processed != 1 {
		t.Errorf("Processed = %d, want 1", result.Processed)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if got := len(result.View.Genome.Signals); got != 2 {
		t.Errorf("signal count = %d, want 2", got)
	}
}

func TestAPI_SubmitQuizRejectsUnknownKind(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/quiz", map[string]any{
		"responses": []map[string]any{
			{"kind": "freeform", "question_id": "bw-01"},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}

func TestAPI_NextQuestions(t *testing.T) {
	srv := newTestServer(t)

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/genome/subject-1/quiz/next", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sel quiz.Selection
	if err := json.Unmarshal(env.Data, &sel); err != nil {
		t.Fatalf("unmarshal selection: %v", err)
	}
	if sel.Mode != quiz.ModeStandard {
		t.Errorf("Mode = %q, want standard", sel.Mode)
	}
	if len(sel.Questions) != 5 {
		t.Errorf("question count = %d, want 5", len(sel.Questions))
	}
}

func TestAPI_Recompute(t *testing.T) {
	srv := newTestServer(t)

	doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/signals", map[string]any{
		"type":    "choice",
		"weights": map[string]float64{"P-7": 1.0},
	})

	resp, env := doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/recompute", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200; error = %+v", resp.StatusCode, env.Error)
	}

	var view service.View
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if view.Genome.Primary != "P-7" {
		t.Errorf("Primary = %q, want P-7", view.Genome.Primary)
	}
}

func TestAPI_DeleteGenome(t *testing.T) {
	srv := newTestServer(t)

	doRequest(t, http.MethodPost, srv.URL+"/api/v1/genome/subject-1/signals", map[string]any{
		"type":    "like",
		"weights": map[string]float64{"V-2": 1.0},
	})

	resp, _ := doRequest(t, http.MethodDelete, srv.URL+"/api/v1/genome/subject-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", resp.StatusCode)
	}

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/genome/subject-1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestAPI_Health(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		resp, env := doRequest(t, http.MethodGet, srv.URL+path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, resp.StatusCode)
		}
		if env.Status != "success" {
			t.Errorf("%s envelope status = %q, want success", path, env.Status)
		}
	}
}

func TestAPI_ReadinessProbeFailure(t *testing.T) {
	catalog := genome.DefaultCatalog()
	bank, err := quiz.DefaultBank(catalog)
	if err != nil {
		t.Fatalf("DefaultBank() error = %v", err)
	}
	svc := service.New(store.NewMemoryStore(), nil, catalog, bank,
		genome.DefaultParams(), 1, logging.NewTestLogger(io.Discard))

	router := NewRouter(NewHandler(svc, func() bool { return false }), RouterConfig{
		CORSOrigins:       []string{"*"},
		RateLimitDisabled: true,
	})
	srv := httptest.NewServer(router.Setup())
	defer srv.Close()

	resp, env := doRequest(t, http.MethodGet, srv.URL+"/api/v1/health/ready", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "NOT_READY" {
		t.Errorf("error = %+v, want NOT_READY", env.Error)
	}
}
