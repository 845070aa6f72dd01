package notify

import (
	"context"
	"sync"
	"time"

	"github.com/signtide/signtide/pkg/log"
	"github.com/signtide/signtide/pkg/metrics"
	"github.com/signtide/signtide/pkg/retry"
)

// DefaultTimeout bounds one push attempt. Pushes are small JSON bodies; a
// channel that cannot answer in a few seconds is down.
const DefaultTimeout = 3 * time.Second

// Notifier is one outbound push channel. Push must treat an application
// level rejection (HTTP 200 with a non-ok payload) as an error, so the
// retry policy sees it.
type Notifier interface {
	Name() string
	Push(ctx context.Context, title, body string) error
}

// Dispatcher fans a report out to every configured channel. Channels are
// independent: each gets its own retry budget, a dead channel never blocks
// the others, and no delivery failure escapes into the run's exit path.
type Dispatcher struct {
	notifiers []Notifier
	policy    retry.Policy
}

// NewDispatcher creates a dispatcher over the given channels. Nil entries
// (unconfigured channels) are dropped.
func NewDispatcher(policy retry.Policy, notifiers ...Notifier) *Dispatcher {
	kept := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return &Dispatcher{notifiers: kept, policy: policy}
}

// Channels returns the names of the configured channels
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.notifiers))
	for i, n := range d.notifiers {
		names[i] = n.Name()
	}
	return names
}

// Dispatch pushes title/body to every channel concurrently and waits for
// all of them. Failures are logged and counted, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, title, body string) {
	logger := log.WithComponent("notify")

	var wg sync.WaitGroup
	for _, n := range d.notifiers {
		wg.Add(1)
		go func(n Notifier) {
			defer wg.Done()

			err := d.policy.Do(ctx, n.Name()+" push", func(ctx context.Context) error {
				return n.Push(ctx, title, body)
			})
			if err != nil {
				metrics.NotificationsTotal.WithLabelValues(n.Name(), metrics.ResultError).Inc()
				logger.Error().Err(err).Str("channel", n.Name()).Msg("push failed")
				return
			}
			metrics.NotificationsTotal.WithLabelValues(n.Name(), metrics.ResultOK).Inc()
			logger.Info().Str("channel", n.Name()).Msg("push delivered")
		}(n)
	}
	wg.Wait()
}
