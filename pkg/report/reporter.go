package report

import (
	"context"
	"strings"

	"github.com/signtide/signtide/pkg/log"
)

// Sender dispatches one assembled report to the configured notification
// channels. Implemented by notify.Dispatcher.
type Sender interface {
	Dispatch(ctx context.Context, title, body string)
}

// Reporter assembles the run log into a single report body and hands it to
// the sender when the run ends, then clears the log. The command layer
// invokes Flush from a deferred block so it runs on success, on contained
// failure, and when an error propagates out of the orchestrator.
type Reporter struct {
	recorder *Recorder
	sender   Sender
}

// NewReporter creates a reporter over the given run log and sender
func NewReporter(recorder *Recorder, sender Sender) *Reporter {
	return &Reporter{recorder: recorder, sender: sender}
}

// Flush drains the run log, joins it into one body, and dispatches it under
// the given title. An empty log dispatches nothing; a second Flush of the
// same run is a no-op.
func (rp *Reporter) Flush(ctx context.Context, title string) {
	logger := log.WithComponent("report")

	lines := rp.recorder.DrainAndClear()
	if len(lines) == 0 {
		logger.Debug().Msg("run log empty, nothing to dispatch")
		return
	}

	body := strings.Join(lines, "\n")
	logger.Info().
		Int("lines", len(lines)).
		Str("title", title).
		Msg("dispatching run report")

	rp.sender.Dispatch(ctx, title, body)
}
