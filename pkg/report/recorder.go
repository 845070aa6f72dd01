package report

import (
	"fmt"
	"sync"
)

// Recorder is the run log: an append-only ordered line buffer shared by
// every component for the duration of one run. Append is the only operation
// performed while the run is in flight; the reporter drains it once at the
// end. Appends from concurrent sign-in repetitions are line-atomic.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// NewRecorder creates an empty run log
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Append adds one formatted line to the run log
func (r *Recorder) Append(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Appendf formats and adds one line to the run log
func (r *Recorder) Appendf(format string, args ...interface{}) {
	r.Append(fmt.Sprintf(format, args...))
}

// Len returns the number of recorded lines
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

// Lines returns a copy of the recorded lines without draining them
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// DrainAndClear returns all recorded lines and resets the buffer. Safe to
// call on an empty recorder; the second drain of a run returns nothing.
func (r *Recorder) DrainAndClear() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.lines
	r.lines = nil
	return out
}
