package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/ratelimit"
)

// --- Fakes ---

type countingStore struct {
	cleanups  atomic.Int32
	retention atomic.Int64
	err       error
}

func (s *countingStore) Save(context.Context, *model.Plan) error { return nil }
func (s *countingStore) Get(context.Context, string) (*model.Plan, error) {
	return nil, model.ErrPlanNotFound
}
func (s *countingStore) List(context.Context, int) ([]model.PlanSummary, error) { return nil, nil }
func (s *countingStore) Cleanup(_ context.Context, olderThan time.Duration) (int64, error) {
	s.cleanups.Add(1)
	s.retention.Store(int64(olderThan))
	return 3, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func countingTask(name string, calls *atomic.Int32, err error) Task {
	return Task{Name: name, Run: func(context.Context) error {
		calls.Add(1)
		return err
	}}
}

// --- Tests ---

func TestRun_CancelReturnsPromptly(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler([]Task{countingTask("t", &calls, nil)}, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error on cancel, got: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not return within 2s after cancel")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 immediate run", calls.Load())
	}
}

func TestRun_TicksRepeatedly(t *testing.T) {
	var calls atomic.Int32
	s := NewScheduler([]Task{countingTask("t", &calls, nil)}, 50*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(180 * time.Millisecond)
	cancel()
	<-done

	if got := calls.Load(); got < 2 {
		t.Errorf("calls = %d, want >= 2", got)
	}
}

func TestRun_FailingTaskDoesNotStopOthers(t *testing.T) {
	var failing, healthy atomic.Int32
	s := NewScheduler([]Task{
		countingTask("failing", &failing, errors.New("boom")),
		countingTask("healthy", &healthy, nil),
	}, time.Hour, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	if failing.Load() != 1 || healthy.Load() != 1 {
		t.Errorf("failing=%d healthy=%d, want 1 and 1", failing.Load(), healthy.Load())
	}
}

func TestArchiveCleanup(t *testing.T) {
	store := &countingStore{}
	task := ArchiveCleanup(store, 48*time.Hour, discardLogger())

	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.cleanups.Load() != 1 {
		t.Errorf("cleanups = %d, want 1", store.cleanups.Load())
	}
	if got := time.Duration(store.retention.Load()); got != 48*time.Hour {
		t.Errorf("retention = %v, want 48h", got)
	}

	store.err = errors.New("locked")
	if err := task.Run(context.Background()); err == nil {
		t.Error("expected store error to propagate")
	}
}

func TestLimiterPrune(t *testing.T) {
	l := ratelimit.NewLimiter(time.Millisecond)
	l.Allow("10.0.0.1")
	time.Sleep(5 * time.Millisecond)

	if err := LimiterPrune(l, discardLogger()).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ok, _ := l.Allow("10.0.0.1"); !ok {
		t.Error("key should be allowed again after pruning")
	}
}
