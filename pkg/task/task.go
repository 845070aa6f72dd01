package task

import (
	"context"
	"strconv"
	"sync"

	"github.com/signtide/signtide/pkg/account"
	"github.com/signtide/signtide/pkg/cohort"
	"github.com/signtide/signtide/pkg/drive"
	"github.com/signtide/signtide/pkg/log"
	"github.com/signtide/signtide/pkg/metrics"
	"github.com/signtide/signtide/pkg/report"
	"github.com/signtide/signtide/pkg/retry"
)

// Report line prefixes. Two leading spaces indent account detail lines under
// the account header in the final report.
const (
	personalPrefix = "  personal sign-in gained (MB)"
	familyPrefix   = "  family sign-in gained (MB)"
)

// Config controls how one account's sign-in actions run
type Config struct {
	// PersonalConcurrency is the fan-out width for personal sign-ins
	PersonalConcurrency int

	// FamilyConcurrency is the fan-out width for family sign-ins
	FamilyConcurrency int

	// PersonalFirstOnly limits personal sign-ins to each cohort's first account
	PersonalFirstOnly bool

	// FamilySingleFirst limits family sign-ins to one sequential attempt by
	// each cohort's first account
	FamilySingleFirst bool
}

// Outcome is the per-account result. Gain entries are one string per
// repetition ("53", "0", ...); a repetition that reports "already signed"
// contributes nothing, and a block where no repetition contributed gets a
// single fallback "0".
type Outcome struct {
	// Index is the 0-based account position in the input list
	Index int

	// PersonalGains holds one entry per personal repetition that produced output
	PersonalGains []string

	// FamilyGains holds one entry per family repetition that produced output
	FamilyGains []string

	// Baseline is the capacity sampled after login and before any action,
	// only for cohort-first accounts
	Baseline *drive.CapacitySnapshot

	// Err is set when the account's task failed; a set Err means later
	// steps were skipped
	Err error
}

// Runner executes the authenticate → act → measure sequence for one account.
// A Runner is stateless across accounts; each Run dials a fresh session that
// no other account shares.
type Runner struct {
	dial     drive.Dialer
	cfg      Config
	recorder *report.Recorder
	policy   retry.Policy
}

// NewRunner creates a task runner
func NewRunner(dial drive.Dialer, cfg Config, recorder *report.Recorder, policy retry.Policy) *Runner {
	return &Runner{dial: dial, cfg: cfg, recorder: recorder, policy: policy}
}

// Run drives one account through the full sequence. Failures never escape:
// they land in Outcome.Err and the caller decides what they mean for the
// rest of the batch.
func (r *Runner) Run(ctx context.Context, acct account.Credential, index int, desc cohort.Descriptor) Outcome {
	masked := acct.Masked()
	logger := log.WithAccount(masked)
	outcome := Outcome{Index: index}

	r.recorder.Appendf("%d.account %s start", index+1, masked)

	sess := r.dial(acct)
	if err := r.policy.Do(ctx, "login", func(ctx context.Context) error {
		return sess.Login(ctx)
	}); err != nil {
		logger.Error().Err(err).Msg("login failed")
		r.recorder.Appendf("  login failed: %v", err)
		// tagged so the orchestrator can tell an authentication failure
		// apart from later per-account failures
		outcome.Err = &drive.AuthError{Err: err}
		return outcome
	}

	// Cohort baselines are sampled between login and the first action so the
	// delta at cohort end covers every action of every member.
	if desc.Start {
		snap, err := sess.Capacity(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("baseline capacity read failed, cohort delta unavailable")
		} else {
			outcome.Baseline = &snap
		}
	}

	if !r.cfg.PersonalFirstOnly || desc.Start {
		outcome.PersonalGains = r.fanOut(ctx, r.cfg.PersonalConcurrency, metrics.KindPersonal,
			func(ctx context.Context) (drive.SignResult, error) {
				return sess.SignPersonal(ctx)
			})
		r.recorder.Append(joinGains(personalPrefix, outcome.PersonalGains))
	}

	if r.cfg.FamilySingleFirst && !desc.Start {
		logger.Debug().Msg("family sign-in restricted to cohort firsts, skipping")
		return outcome
	}

	families, err := sess.Families(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("family list query failed")
		r.recorder.Appendf("  family list failed: %v", err)
		outcome.Err = err
		return outcome
	}
	if len(families) == 0 {
		logger.Warn().Msg("account belongs to no family, skipping family sign-in")
		return outcome
	}

	family := pickFamily(families, desc.FamilyID)
	if family.ID != desc.FamilyID && desc.FamilyID != "" {
		logger.Warn().
			Str("wanted", desc.FamilyID).
			Str("using", family.ID).
			Msg("configured family not found, falling back to first")
	}

	width := r.cfg.FamilyConcurrency
	if r.cfg.FamilySingleFirst {
		// single sequential attempt for the cohort's first account
		width = 1
	}
	outcome.FamilyGains = r.fanOut(ctx, width, metrics.KindFamily,
		func(ctx context.Context) (drive.SignResult, error) {
			return sess.SignFamily(ctx, family.ID)
		})
	r.recorder.Append(joinGains(familyPrefix, outcome.FamilyGains))

	return outcome
}

// fanOut launches n concurrent repetitions of one sign-in action and joins
// them all. A repetition's failure is strictly local: it becomes a "0" entry
// and never disturbs its siblings. The returned entries always contain at
// least one element.
func (r *Runner) fanOut(ctx context.Context, n int, kind string, do func(ctx context.Context) (drive.SignResult, error)) []string {
	if n <= 0 {
		n = 1
	}

	var mu sync.Mutex
	var gains []string

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			res, err := do(ctx)
			if err != nil {
				metrics.SignInsTotal.WithLabelValues(kind, metrics.ResultError).Inc()
				mu.Lock()
				gains = append(gains, "0")
				mu.Unlock()
				return
			}
			if res.AlreadySigned {
				metrics.SignInsTotal.WithLabelValues(kind, metrics.ResultAlreadyDone).Inc()
				return
			}
			metrics.SignInsTotal.WithLabelValues(kind, metrics.ResultOK).Inc()
			mu.Lock()
			gains = append(gains, strconv.FormatInt(res.BonusMB, 10))
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(gains) == 0 {
		// every repetition was already consumed; show an explicit zero
		gains = append(gains, "0")
	}
	return gains
}

// pickFamily returns the family matching wanted, or the first entry
func pickFamily(families []drive.Family, wanted string) drive.Family {
	for _, f := range families {
		if f.ID == wanted {
			return f
		}
	}
	return families[0]
}

func joinGains(prefix string, gains []string) string {
	line := prefix
	for _, g := range gains {
		line += " " + g
	}
	return line
}
