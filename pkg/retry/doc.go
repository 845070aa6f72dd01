/*
Package retry provides a bounded, fixed-delay retry invoker.

A Policy carries an attempt budget and a fixed inter-attempt delay. Do runs
an operation under a policy; DoValue does the same for operations that
produce a value. When every attempt fails the caller receives an
*ExhaustedError wrapping the last underlying failure, which it can inspect
with errors.As to decide whether the exhaustion is fatal to the whole run or
only to one account.

Two canonical policies exist:

  - retry.Business: 5 attempts, 30s apart, for drive gateway operations
  - retry.Notify: 3 attempts, 3s apart, for push channel delivery

Both are plain values; callers needing different tuning construct their own
Policy (the configuration layer does this for overrides).

# Usage

	err := retry.Business.Do(ctx, "login", func(ctx context.Context) error {
		return session.Login(ctx)
	})
	var exhausted *retry.ExhaustedError
	if errors.As(err, &exhausted) {
		// budget spent; exhausted.Last holds the final failure
	}

Attempt counts are exposed through pkg/metrics under the policy's name.
*/
package retry
