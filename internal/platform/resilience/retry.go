package resilience

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrier runs an operation up to Attempts times with linear or constant backoff.
type Retrier struct {
	cfg RetryConfig
}

func NewRetrier(cfg RetryConfig) *Retrier {
	return &Retrier{cfg: NormalizeRetryConfig(cfg)}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Do calls op until it succeeds, returns a Permanent error, attempts run
// out, or ctx is done. notify, when set, sees every failure that will be
// followed by another attempt. The last error is returned unwrapped.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error, notify func(attempt int, err error, wait time.Duration)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	attempt := 0
	operation := func() error {
		attempt++
		if err := sleepContext(ctx, r.cfg.Throttle); err != nil {
			return backoff.Permanent(err)
		}
		return op(ctx)
	}

	var wait backoff.BackOff = &linearBackOff{step: r.cfg.Step}
	if r.cfg.Constant {
		wait = backoff.NewConstantBackOff(r.cfg.Step)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(wait, uint64(r.cfg.Attempts-1)), ctx)

	return backoff.RetryNotify(operation, policy, func(err error, delay time.Duration) {
		if notify != nil {
			notify(attempt, err, delay)
		}
	})
}

type linearBackOff struct {
	step     time.Duration
	failures int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.failures++
	return time.Duration(b.failures) * b.step
}

func (b *linearBackOff) Reset() {
	b.failures = 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
