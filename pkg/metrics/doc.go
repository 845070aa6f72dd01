/*
Package metrics provides Prometheus instrumentation for Signtide runs.

Metrics are package-level collectors registered once in init(). Components
increment them directly; nothing in the run's control flow depends on them.

# Metrics

Account metrics:
  - signtide_accounts_processed_total: accounts whose task completed
  - signtide_accounts_failed_total: accounts whose task ended in error

Sign-in metrics:
  - signtide_signins_total{kind,result}: repetitions by kind
    (personal/family) and result (ok/already_done/error)

Retry metrics:
  - signtide_retry_attempts_total{policy}: attempts by policy name

Cohort metrics:
  - signtide_reconciliations_total{result}: reconciliations by result
    (ok/skipped/error)

Notification metrics:
  - signtide_notifications_total{channel,result}: pushes by channel

Run metrics:
  - signtide_run_duration_seconds: wall-clock duration histogram

# Usage

	metrics.SignInsTotal.WithLabelValues(metrics.KindPersonal, metrics.ResultOK).Inc()

	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.RunDuration)

Expose the scrape endpoint while a run is in flight with:

	metrics.Serve(":9105")

A batch run is short-lived; the endpoint exists for long multi-cohort runs
where an operator wants live progress, and disappears with the process.
*/
package metrics
