package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Account metrics
	AccountsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signtide_accounts_processed_total",
			Help: "Total number of accounts whose task completed without error",
		},
	)

	AccountsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signtide_accounts_failed_total",
			Help: "Total number of accounts whose task ended in a contained error",
		},
	)

	// Sign-in metrics
	SignInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signtide_signins_total",
			Help: "Total number of sign-in repetitions by kind and result",
		},
		[]string{"kind", "result"},
	)

	// Retry metrics
	RetryAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signtide_retry_attempts_total",
			Help: "Total number of operation attempts by retry policy",
		},
		[]string{"policy"},
	)

	// Cohort metrics
	ReconciliationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signtide_reconciliations_total",
			Help: "Total number of cohort reconciliations by result",
		},
		[]string{"result"},
	)

	// Notification metrics
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signtide_notifications_total",
			Help: "Total number of notification pushes by channel and result",
		},
		[]string{"channel", "result"},
	)

	// Run metrics
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signtide_run_duration_seconds",
			Help:    "Wall-clock duration of one full batch run in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(AccountsProcessed)
	prometheus.MustRegister(AccountsFailed)
	prometheus.MustRegister(SignInsTotal)
	prometheus.MustRegister(RetryAttempts)
	prometheus.MustRegister(ReconciliationsTotal)
	prometheus.MustRegister(NotificationsTotal)
	prometheus.MustRegister(RunDuration)
}

// Label values used with the vectors above.
const (
	KindPersonal = "personal"
	KindFamily   = "family"

	ResultOK          = "ok"
	ResultAlreadyDone = "already_done"
	ResultError       = "error"
	ResultSkipped     = "skipped"
)

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr in a background goroutine. A batch run is
// short-lived, so scrape failures after the run ends are expected; the
// listener dies with the process.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}
