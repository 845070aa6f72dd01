package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flaky returns an operation that fails k times and then succeeds,
// counting invocations through calls.
func flaky(k int, calls *int) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		*calls++
		if *calls <= k {
			return errors.New("transient")
		}
		return nil
	}
}

// TestDoSucceedsAfterFailures tests that a success within budget stops retrying
func TestDoSucceedsAfterFailures(t *testing.T) {
	tests := []struct {
		name          string
		failures      int
		attempts      int
		expectedCalls int
	}{
		{name: "first try succeeds", failures: 0, attempts: 5, expectedCalls: 1},
		{name: "succeeds on second try", failures: 1, attempts: 5, expectedCalls: 2},
		{name: "succeeds on last try", failures: 4, attempts: 5, expectedCalls: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			p := Policy{Name: "test", Attempts: tt.attempts, Delay: 0}

			err := p.Do(context.Background(), "op", flaky(tt.failures, &calls))

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCalls, calls)
		})
	}
}

// TestDoExhaustsBudget tests that exhaustion stops after exactly Attempts tries
func TestDoExhaustsBudget(t *testing.T) {
	calls := 0
	p := Policy{Name: "test", Attempts: 3, Delay: 0}

	err := p.Do(context.Background(), "op", flaky(10, &calls))

	assert.Equal(t, 3, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "op", exhausted.Op)
	assert.Equal(t, 3, exhausted.Attempts)
	assert.EqualError(t, exhausted.Last, "transient")
}

// TestExhaustedErrorUnwrap tests that the last failure is reachable via errors.Is
func TestExhaustedErrorUnwrap(t *testing.T) {
	sentinel := errors.New("boom")
	p := Policy{Name: "test", Attempts: 2, Delay: 0}

	err := p.Do(context.Background(), "op", func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
}

// TestDoZeroAttemptsRunsOnce tests that a non-positive budget still tries once
func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	p := Policy{Name: "test", Attempts: 0, Delay: 0}

	err := p.Do(context.Background(), "op", flaky(0, &calls))

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// TestDoContextCancelledDuringDelay tests that cancellation aborts the wait
func TestDoContextCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{Name: "test", Attempts: 5, Delay: time.Minute}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := p.Do(ctx, "op", func(ctx context.Context) error {
		calls++
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

// TestDoValue tests the value-producing variant
func TestDoValue(t *testing.T) {
	calls := 0
	p := Policy{Name: "test", Attempts: 3, Delay: 0}

	v, err := DoValue(context.Background(), p, "op", func(ctx context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

// TestDoValueExhausted tests that exhaustion yields the zero value
func TestDoValueExhausted(t *testing.T) {
	p := Policy{Name: "test", Attempts: 2, Delay: 0}

	v, err := DoValue(context.Background(), p, "op", func(ctx context.Context) (string, error) {
		return "partial", errors.New("always")
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "", v)
}
