package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrier_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	r := NewRetrier(RetryConfig{Attempts: 3, Step: time.Millisecond})

	calls := 0
	var waits []time.Duration
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, func(_ int, _ error, wait time.Duration) {
		waits = append(waits, wait)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d want=3", calls)
	}
	if len(waits) != 2 || waits[0] != time.Millisecond || waits[1] != 2*time.Millisecond {
		t.Fatalf("expected linear waits [1ms 2ms], got=%v", waits)
	}
}

func TestRetrier_StopsAfterAttempts(t *testing.T) {
	t.Parallel()

	r := NewRetrier(RetryConfig{Attempts: 3, Step: time.Millisecond})
	sentinel := errors.New("still down")

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	}, nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected last error, got=%v", err)
	}
	if calls != 3 {
		t.Fatalf("calls=%d want=3", calls)
	}
}

func TestRetrier_PermanentErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	r := NewRetrier(RetryConfig{Attempts: 5, Step: time.Millisecond})
	sentinel := errors.New("not found")

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return Permanent(sentinel)
	}, nil)
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected permanent error, got=%v", err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d want=1", calls)
	}
}

func TestRetrier_CancelledContext(t *testing.T) {
	t.Parallel()

	r := NewRetrier(RetryConfig{Attempts: 3, Step: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- r.Do(ctx, func(context.Context) error {
			calls++
			cancel()
			return errors.New("boom")
		}, nil)
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got=%v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("retrier did not observe cancellation")
	}
	if calls != 1 {
		t.Fatalf("calls=%d want=1", calls)
	}
}

func TestRetrier_ConstantBackoff(t *testing.T) {
	t.Parallel()

	r := NewRetrier(RetryConfig{Attempts: 3, Step: 2 * time.Millisecond, Constant: true})

	var waits []time.Duration
	_ = r.Do(context.Background(), func(context.Context) error {
		return errors.New("empty roster")
	}, func(_ int, _ error, wait time.Duration) {
		waits = append(waits, wait)
	})
	if len(waits) != 2 || waits[0] != 2*time.Millisecond || waits[1] != 2*time.Millisecond {
		t.Fatalf("expected constant waits [2ms 2ms], got=%v", waits)
	}
}
