package reminder

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Execute(context.Context) (int, error) {
	r.calls.Add(1)
	return 1, r.err
}

func TestWorker_RunsImmediatelyAndOnTick(t *testing.T) {
	runner := &countingRunner{}
	w := NewWorker(runner, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Start(ctx) }()

	deadline := time.After(2 * time.Second)
	for runner.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 2 passes, got %d", runner.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("expected clean shutdown, got %v", err)
	}
}

func TestWorker_ErrorsDoNotStopLoop(t *testing.T) {
	runner := &countingRunner{err: errors.New("db down")}
	w := NewWorker(runner, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if runner.calls.Load() < 2 {
		t.Errorf("expected loop to keep running after errors, got %d passes", runner.calls.Load())
	}
}

func TestNewWorker_DefaultInterval(t *testing.T) {
	w := NewWorker(&countingRunner{}, 0)
	if w.pollInterval != time.Hour {
		t.Errorf("expected 1h default, got %s", w.pollInterval)
	}
}
