package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/signtide/signtide/pkg/metrics"
)

// Policy bounds how often a fallible operation is attempted. Delay is fixed
// between attempts; the remote service rate-limits rather than degrades, so
// exponential backoff buys nothing here.
type Policy struct {
	// Name labels the policy in logs and metrics
	Name string

	// Attempts is the total number of tries, including the first
	Attempts int

	// Delay is the fixed pause between consecutive attempts
	Delay time.Duration
}

// Canonical policies. Business operations get a generous budget because the
// drive gateway throttles bursts; notification pushes get a short one because
// a dead channel must not stall the run.
var (
	Business = Policy{Name: "business", Attempts: 5, Delay: 30 * time.Second}
	Notify   = Policy{Name: "notify", Attempts: 3, Delay: 3 * time.Second}
)

// ExhaustedError reports that an operation failed across its entire retry
// budget. It wraps the last underlying failure.
type ExhaustedError struct {
	Op       string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do runs fn up to p.Attempts times, sleeping p.Delay between attempts.
// It returns nil on the first success. When the budget is exhausted it
// returns an *ExhaustedError wrapping the last failure. Context cancellation
// during the delay aborts immediately with the context's error.
func (p Policy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		metrics.RetryAttempts.WithLabelValues(p.Name).Inc()

		if err := fn(ctx); err == nil {
			return nil
		} else {
			last = err
		}

		if attempt == attempts {
			break
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return err
		}
	}

	return &ExhaustedError{Op: op, Attempts: attempts, Last: last}
}

// DoValue is Do for value-producing operations. On exhaustion the zero value
// of T is returned alongside the *ExhaustedError.
func DoValue[T any](ctx context.Context, p Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := p.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// sleep waits for d or until ctx is cancelled, whichever comes first
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
