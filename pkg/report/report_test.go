package report

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	calls  int
	titles []string
	bodies []string
}

func (c *captureSender) Dispatch(ctx context.Context, title, body string) {
	c.calls++
	c.titles = append(c.titles, title)
	c.bodies = append(c.bodies, body)
}

// TestRecorderOrder tests that lines come back in append order
func TestRecorderOrder(t *testing.T) {
	r := NewRecorder()
	r.Append("first")
	r.Appendf("second %d", 2)
	r.Append("third")

	assert.Equal(t, []string{"first", "second 2", "third"}, r.Lines())
	assert.Equal(t, 3, r.Len())
}

// TestRecorderConcurrentAppends tests that concurrent writers lose nothing
func TestRecorderConcurrentAppends(t *testing.T) {
	r := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Appendf("line-%d", n)
		}(i)
	}
	wg.Wait()

	lines := r.Lines()
	require.Len(t, lines, 50)
	seen := make(map[string]bool, 50)
	for _, l := range lines {
		seen[l] = true
	}
	for i := 0; i < 50; i++ {
		assert.True(t, seen[fmt.Sprintf("line-%d", i)], "missing line-%d", i)
	}
}

// TestDrainAndClear tests that draining empties the buffer idempotently
func TestDrainAndClear(t *testing.T) {
	r := NewRecorder()
	r.Append("a")
	r.Append("b")

	assert.Equal(t, []string{"a", "b"}, r.DrainAndClear())
	assert.Equal(t, 0, r.Len())

	// second drain is a no-op
	assert.Empty(t, r.DrainAndClear())
}

// TestReporterFlush tests that the body joins lines in order
func TestReporterFlush(t *testing.T) {
	r := NewRecorder()
	r.Append("1.account use****45678 start")
	r.Append("  personal sign-in gained (MB) 53")

	sender := &captureSender{}
	rp := NewReporter(r, sender)
	rp.Flush(context.Background(), "daily check-in")

	require.Equal(t, 1, sender.calls)
	assert.Equal(t, "daily check-in", sender.titles[0])
	assert.Equal(t, "1.account use****45678 start\n  personal sign-in gained (MB) 53", sender.bodies[0])

	// recorder cleared by flush
	assert.Equal(t, 0, r.Len())
}

// TestReporterFlushEmpty tests that an empty log dispatches nothing
func TestReporterFlushEmpty(t *testing.T) {
	sender := &captureSender{}
	rp := NewReporter(NewRecorder(), sender)

	rp.Flush(context.Background(), "daily check-in")
	rp.Flush(context.Background(), "daily check-in")

	assert.Equal(t, 0, sender.calls)
}

// TestReporterSecondFlushNoop tests that a drained run cannot re-dispatch
func TestReporterSecondFlushNoop(t *testing.T) {
	r := NewRecorder()
	r.Append("line")

	sender := &captureSender{}
	rp := NewReporter(r, sender)

	rp.Flush(context.Background(), "t")
	rp.Flush(context.Background(), "t")

	assert.Equal(t, 1, sender.calls)
}
