package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(now *time.Time) *CircuitBreaker {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	b.now = func() time.Time { return *now }
	return b
}

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)

	var transitions []CircuitState
	b.OnTransition(func(_, to CircuitState) { transitions = append(transitions, to) })

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}
	b.Record(errors.New("upstream 503"))
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after one failure, got=%s", state)
	}

	b.Record(errors.New("upstream 503"))
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold, got=%s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got=%v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got=%v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got=%v", err)
	}

	b.Record(nil)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got=%s", state)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(transitions) != len(want) {
		t.Fatalf("transitions=%v want=%v", transitions, want)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Fatalf("transition[%d]=%s want=%s", i, transitions[i], want[i])
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	b := newTestBreaker(&now)
	b.RecordFailure()
	b.RecordFailure()

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe, got=%v", err)
	}
	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got=%s", state)
	}
}

func TestCircuitBreaker_DisabledIsNil(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	for i := 0; i < 100; i++ {
		b.RecordFailure()
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("nil breaker must allow, got=%v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("nil breaker state=%s want=closed", state)
	}
}
