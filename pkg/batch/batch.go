package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/signtide/signtide/pkg/account"
	"github.com/signtide/signtide/pkg/cohort"
	"github.com/signtide/signtide/pkg/drive"
	"github.com/signtide/signtide/pkg/log"
	"github.com/signtide/signtide/pkg/metrics"
	"github.com/signtide/signtide/pkg/report"
	"github.com/signtide/signtide/pkg/retry"
	"github.com/signtide/signtide/pkg/task"
)

// FatalError aborts the whole run. The engine returns it instead of exiting
// from deep inside the loop; the command layer decides the process response.
type FatalError struct {
	Masked string
	Err    error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("run aborted at account %s: %v", e.Masked, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Summary is the structured result of one run
type Summary struct {
	RunID      string
	Accounts   int
	Succeeded  int
	Failed     int
	Cohorts    int
	Reconciled int
}

// baseline tracks the cohort's first account between its own task and the
// cohort-end reconciliation
type baseline struct {
	cred   account.Credential
	before *drive.CapacitySnapshot
	taskOK bool
}

// runState is the explicit per-iteration state threaded through the loop:
// the active cohort's baseline, nothing more. It replaces the shared
// mutable globals an earlier incarnation of this tool coordinated through.
type runState struct {
	baseline *baseline
}

// Engine drives the ordered account list through per-account tasks and
// cohort reconciliation. Accounts run strictly sequentially; concurrency
// exists only inside one account's repeated sign-in actions.
type Engine struct {
	dial             drive.Dialer
	runner           *task.Runner
	resolver         *cohort.Resolver
	recorder         *report.Recorder
	policy           retry.Policy
	fatalAuthTimeout bool
}

// NewEngine creates a batch engine
func NewEngine(dial drive.Dialer, runner *task.Runner, resolver *cohort.Resolver,
	recorder *report.Recorder, policy retry.Policy, fatalAuthTimeout bool) *Engine {
	return &Engine{
		dial:             dial,
		runner:           runner,
		resolver:         resolver,
		recorder:         recorder,
		policy:           policy,
		fatalAuthTimeout: fatalAuthTimeout,
	}
}

// Run processes every account in order. Per-account failures are contained
// and reflected in the summary; the only error Run returns is a *FatalError
// raised by a timeout-class login failure when that escalation is enabled.
// The summary is valid even alongside a non-nil error.
func (e *Engine) Run(ctx context.Context, creds []account.Credential) (*Summary, error) {
	summary := &Summary{
		RunID:    uuid.New().String(),
		Accounts: len(creds),
	}
	logger := log.WithRunID(summary.RunID)
	logger.Info().Int("accounts", len(creds)).Int("cohort_size", e.resolver.Size()).Msg("starting run")

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.RunDuration)

	state := runState{}
	for i, cred := range creds {
		desc := e.resolver.Describe(i, len(creds))
		masked := cred.Masked()

		logger.Info().
			Str("account", masked).
			Int("position", i+1).
			Int("cohort", desc.Index).
			Msg("processing account")

		outcome := e.runner.Run(ctx, cred, i, desc)

		if desc.Start {
			state.baseline = &baseline{
				cred:   cred,
				before: outcome.Baseline,
				taskOK: outcome.Err == nil,
			}
		}

		if outcome.Err != nil {
			metrics.AccountsFailed.Inc()
			summary.Failed++
			logger.Error().Err(outcome.Err).Str("account", masked).Msg("account task failed")

			// Only an authentication timeout aborts the run: a timeout in a
			// later step is that account's problem, not the gateway's.
			var authErr *drive.AuthError
			if e.fatalAuthTimeout && errors.As(outcome.Err, &authErr) && drive.IsTimeout(authErr) {
				e.recorder.Appendf("run aborted: login timeout at account %s", masked)
				return summary, &FatalError{Masked: masked, Err: outcome.Err}
			}
		} else {
			metrics.AccountsProcessed.Inc()
			summary.Succeeded++
		}

		// blank separator between accounts in the report
		e.recorder.Append("")

		if desc.End {
			summary.Cohorts++
			if e.reconcile(ctx, desc, state.baseline, logger) {
				summary.Reconciled++
			}
			state.baseline = nil
		}
	}

	logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("reconciled", summary.Reconciled).
		Msg("run complete")
	return summary, nil
}

// reconcile re-checks the cohort's baseline account on a fresh session and
// reports the capacity growth since the baseline snapshot. Every skip path
// is a warning, never a run failure.
func (e *Engine) reconcile(ctx context.Context, desc cohort.Descriptor, b *baseline, logger zerolog.Logger) bool {
	cohortLog := logger.With().Int("cohort", desc.Index).Logger()

	if _, ok := e.resolver.FamilyID(desc.Index); !ok {
		cohortLog.Warn().Msg("no family ID configured for cohort, skipping reconciliation")
		e.recorder.Appendf("cohort %d reconciliation skipped: no family ID configured", desc.Index+1)
		metrics.ReconciliationsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		return false
	}
	if b == nil || !b.taskOK || b.before == nil {
		cohortLog.Warn().Msg("baseline unusable, skipping reconciliation")
		e.recorder.Appendf("cohort %d reconciliation skipped: baseline unavailable", desc.Index+1)
		metrics.ReconciliationsTotal.WithLabelValues(metrics.ResultSkipped).Inc()
		return false
	}

	masked := b.cred.Masked()

	// fresh session: the baseline account's original session is long gone
	sess := e.dial(b.cred)
	if err := e.policy.Do(ctx, "baseline login", func(ctx context.Context) error {
		return sess.Login(ctx)
	}); err != nil {
		cohortLog.Error().Err(err).Str("account", masked).Msg("baseline re-login failed")
		e.recorder.Appendf("cohort %d reconciliation failed: baseline login: %v", desc.Index+1, err)
		metrics.ReconciliationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return false
	}

	after, err := retry.DoValue(ctx, e.policy, "baseline capacity",
		func(ctx context.Context) (drive.CapacitySnapshot, error) {
			return sess.Capacity(ctx)
		})
	if err != nil {
		cohortLog.Error().Err(err).Str("account", masked).Msg("baseline capacity read failed")
		e.recorder.Appendf("cohort %d reconciliation failed: capacity query: %v", desc.Index+1, err)
		metrics.ReconciliationsTotal.WithLabelValues(metrics.ResultError).Inc()
		return false
	}

	delta := after.Delta(*b.before)
	e.recorder.Appendf("cohort %d baseline %s personal+ %.0f MB, family+ %.0f MB",
		desc.Index+1, masked, delta.PersonalMB(), delta.FamilyMB())
	e.recorder.Appendf("  baseline personal total: %.2f GB", after.PersonalGB())
	e.recorder.Appendf("  baseline family total: %.2f GB", after.FamilyGB())
	e.recorder.Append("")

	cohortLog.Info().
		Str("account", masked).
		Int64("personal_delta_bytes", delta.PersonalBytes).
		Int64("family_delta_bytes", delta.FamilyBytes).
		Msg("cohort reconciled")
	metrics.ReconciliationsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return true
}
