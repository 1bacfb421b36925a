// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/pulseplan/genome/internal/genome"
	"github.com/pulseplan/genome/internal/logging"
	"github.com/pulseplan/genome/internal/quiz"
	"github.com/pulseplan/genome/internal/store"
)

type capturedEvent struct {
	subjectID string
	trigger   string
	deleted   bool
}

// fakeBus records published events in order.
type fakeBus struct {
	events []capturedEvent
	err    error
}

func (b *fakeBus) PublishProjectionUpdated(_ context.Context, g *genome.Genome, trigger string) error {
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, capturedEvent{subjectID: g.SubjectID, trigger: trigger})
	return nil
}

func (b *fakeBus) PublishGenomeDeleted(_ context.Context, subjectID string) error {
	if b.err != nil {
		return b.err
	}
	b.events = append(b.events, capturedEvent{subjectID: subjectID, deleted: true})
	return nil
}

// conflictingStore forces the first n saves to fail with a version conflict.
type conflictingStore struct {
	store.Store
	conflicts int
}

func (s *conflictingStore) Save(ctx context.Context, g *genome.Genome, expectedVersion uint64) error {
	if s.conflicts > 0 {
		s.conflicts--
		return store.ErrVersionConflict
	}
	return s.Store.Save(ctx, g, expectedVersion)
}

func newTestService(t *testing.T, st store.Store, bus Publisher) *Service {
	t.Helper()
	catalog := genome.DefaultCatalog()
	bank, err := quiz.DefaultBank(catalog)
	if err != nil {
		t.Fatalf("DefaultBank() error = %v", err)
	}
	var n int
	return New(st, bus, catalog, bank, genome.DefaultParams(), 1,
		logging.NewTestLogger(io.Discard),
		WithClock(func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("sig-%03d", n)
		}),
	)
}

func TestService_RecordSignalCreatesGenome(t *testing.T) {
	st := store.NewMemoryStore()
	bus := &fakeBus{}
	svc := newTestService(t, st, bus)
	ctx := context.Background()

	view, err := svc.RecordSignal(ctx, "subject-1", genome.Signal{
		Type:             genome.SignalLike,
		Value:            "card-7",
		ArchetypeWeights: map[genome.Designation]float64{"V-2": 0.8},
	})
	if err != nil {
		t.Fatalf("RecordSignal() error = %v", err)
	}

	if view.Genome.Version != 1 {
		t.Errorf("Version = %d, want 1", view.Genome.Version)
	}
	if len(view.Genome.Signals) != 1 {
		t.Fatalf("signal count = %d, want 1", len(view.Genome.Signals))
	}
	sig := view.Genome.Signals[0]
	if sig.ID != "sig-001" {
		t.Errorf("signal ID = %q, want sig-001", sig.ID)
	}
	if sig.Timestamp.IsZero() {
		t.Error("signal timestamp not stamped")
	}
	if view.Genome.Primary != "V-2" {
		t.Errorf("Primary = %q, want V-2", view.Genome.Primary)
	}
	if view.Tier != TierExploring {
		t.Errorf("Tier = %q, want exploring", view.Tier)
	}

	if len(bus.events) != 1 || bus.events[0].trigger != "signal" {
		t.Errorf("published events = %+v, want one signal trigger", bus.events)
	}

	stored, err := st.Get(ctx, "subject-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(stored.Signals) != 1 {
		t.Errorf("stored signal count = %d, want 1", len(stored.Signals))
	}
}

func TestService_RecordSignalRejectsUnknownDesignation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(t, st, &fakeBus{})
	ctx := context.Background()

	_, err := svc.RecordSignal(ctx, "subject-1", genome.Signal{
		Type:             genome.SignalLike,
		ArchetypeWeights: map[genome.Designation]float64{"X-99": 1.0},
	})
	if !errors.Is(err, genome.ErrUnknownDesignation) {
		t.Fatalf("RecordSignal() error = %v, want ErrUnknownDesignation", err)
	}

	// Nothing written: fail-fast happens before the store is touched.
	if _, err := st.Get(ctx, "subject-1"); !errors.Is(err, store.ErrGenomeNotFound) {
		t.Errorf("Get() error = %v, want ErrGenomeNotFound", err)
	}
}

func TestService_SubmitQuiz(t *testing.T) {
	st := store.NewMemoryStore()
	bus := &fakeBus{}
	svc := newTestService(t, st, bus)
	ctx := context.Background()

	view, processed, err := svc.SubmitQuiz(ctx, "subject-1", []quiz.Response{
		{Kind: quiz.ResponseBestWorst, QuestionID: "bw-01", Best: "bw-01-a", Worst: "bw-01-c"},
		{Kind: quiz.ResponseBestWorst, QuestionID: "missing", Best: "x", Worst: "y"},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}
	if processed != 1 {
		t.Errorf("processed = %d, want 1", processed)
	}
	if got := len(view.Genome.Signals); got != 2 {
		t.Errorf("signal count = %d, want 2 (best + worst)", got)
	}
	if len(bus.events) != 1 || bus.events[0].trigger != "quiz" {
		t.Errorf("published events = %+v, want one quiz trigger", bus.events)
	}
}

func TestService_SubmitQuizAllSkippedPublishesNothing(t *testing.T) {
	bus := &fakeBus{}
	svc := newTestService(t, store.NewMemoryStore(), bus)

	_, processed, err := svc.SubmitQuiz(context.Background(), "subject-1", []quiz.Response{
		{Kind: quiz.ResponseBestWorst, QuestionID: "missing", Best: "x", Worst: "y"},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz() error = %v", err)
	}
	if processed != 0 {
		t.Errorf("processed = %d, want 0", processed)
	}
	if len(bus.events) != 0 {
		t.Errorf("published events = %+v, want none", bus.events)
	}
}

func TestService_NextQuestionsColdStart(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(t, st, &fakeBus{})
	ctx := context.Background()

	sel, err := svc.NextQuestions(ctx, "new-subject")
	if err != nil {
		t.Fatalf("NextQuestions() error = %v", err)
	}
	if sel.Mode != quiz.ModeStandard {
		t.Errorf("Mode = %q, want standard", sel.Mode)
	}
	if len(sel.Questions) != 5 {
		t.Errorf("question count = %d, want 5", len(sel.Questions))
	}

	// Selection is read-only: no genome is created as a side effect.
	if _, err := st.Get(ctx, "new-subject"); !errors.Is(err, store.ErrGenomeNotFound) {
		t.Errorf("Get() error = %v, want ErrGenomeNotFound", err)
	}
}

func TestService_RecomputeRefreshesProjection(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestService(t, st, &fakeBus{})
	ctx := context.Background()

	if _, err := svc.RecordSignal(ctx, "subject-1", genome.Signal{
		Type:             genome.SignalChoice,
		ArchetypeWeights: map[genome.Designation]float64{"P-7": 1.0},
	}); err != nil {
		t.Fatalf("RecordSignal() error = %v", err)
	}

	view, err := svc.Recompute(ctx, "subject-1")
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}
	if view.Genome.Primary != "P-7" {
		t.Errorf("Primary = %q, want P-7", view.Genome.Primary)
	}
	if view.Genome.Version != 2 {
		t.Errorf("Version = %d, want 2", view.Genome.Version)
	}
	if view.Genome.ClassifiedAt.IsZero() {
		t.Error("ClassifiedAt not stamped")
	}
}

func TestService_SaveRetriesOnConflict(t *testing.T) {
	st := &conflictingStore{Store: store.NewMemoryStore(), conflicts: 2}
	svc := newTestService(t, st, &fakeBus{})

	view, err := svc.RecordSignal(context.Background(), "subject-1", genome.Signal{
		Type:             genome.SignalLike,
		ArchetypeWeights: map[genome.Designation]float64{"V-2": 1.0},
	})
	if err != nil {
		t.Fatalf("RecordSignal() error = %v", err)
	}
	if view.Genome.Version != 1 {
		t.Errorf("Version = %d, want 1", view.Genome.Version)
	}
}

func TestService_SaveGivesUpAfterBoundedRetries(t *testing.T) {
	st := &conflictingStore{Store: store.NewMemoryStore(), conflicts: 10}
	svc := newTestService(t, st, &fakeBus{})

	_, err := svc.RecordSignal(context.Background(), "subject-1", genome.Signal{
		Type:             genome.SignalLike,
		ArchetypeWeights: map[genome.Designation]float64{"V-2": 1.0},
	})
	if !errors.Is(err, store.ErrVersionConflict) {
		t.Fatalf("RecordSignal() error = %v, want wrapped ErrVersionConflict", err)
	}
}

func TestService_Delete(t *testing.T) {
	st := store.NewMemoryStore()
	bus := &fakeBus{}
	svc := newTestService(t, st, bus)
	ctx := context.Background()

	if _, err := svc.RecordSignal(ctx, "subject-1", genome.Signal{
		Type:             genome.SignalLike,
		ArchetypeWeights: map[genome.Designation]float64{"V-2": 1.0},
	}); err != nil {
		t.Fatalf("RecordSignal() error = %v", err)
	}

	if err := svc.Delete(ctx, "subject-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, "subject-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	last := bus.events[len(bus.events)-1]
	if !last.deleted || last.subjectID != "subject-1" {
		t.Errorf("last event = %+v, want deletion of subject-1", last)
	}
}

func TestService_PublishFailureDoesNotFailWrite(t *testing.T) {
	bus := &fakeBus{err: errors.New("bus down")}
	svc := newTestService(t, store.NewMemoryStore(), bus)

	view, err := svc.RecordSignal(context.Background(), "subject-1", genome.Signal{
		Type:             genome.SignalLike,
		ArchetypeWeights: map[genome.Designation]float64{"V-2": 1.0},
	})
	if err != nil {
		t.Fatalf("RecordSignal() error = %v", err)
	}
	if view.Genome.Version != 1 {
		t.Errorf("Version = %d, want 1", view.Genome.Version)
	}
}

func TestService_Tier(t *testing.T) {
	svc := newTestService(t, store.NewMemoryStore(), &fakeBus{})

	quizSignals := func(n int) []genome.Signal {
		signals := make([]genome.Signal, n)
		for i := range signals {
			signals[i] = genome.Signal{
				ID:               fmt.Sprintf("q-%d", i),
				Type:             genome.SignalChoice,
				ArchetypeWeights: map[genome.Designation]float64{"V-2": 1.0},
				Metadata:         genome.SignalMetadata{QuestionID: fmt.Sprintf("bw-%02d", i)},
			}
		}
		return signals
	}

	tests := []struct {
		name    string
		signals []genome.Signal
		want    Tier
	}{
		{"empty log", nil, TierExploring},
		{"few questions answered", quizSignals(3), TierExploring},
		{"quiz done but shallow log", quizSignals(6), TierEmerging},
		{"deep log and confident", quizSignals(30), TierEstablished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := genome.New("subject-1", genome.DefaultCatalog())
			g.Append(tt.signals...)
			g.Apply(genome.Recompute(g.Signals, genome.DefaultCatalog(), genome.DefaultParams()))
			if got := svc.tier(g); got != tt.want {
				t.Errorf("tier() = %q, want %q", got, tt.want)
			}
		})
	}
}
