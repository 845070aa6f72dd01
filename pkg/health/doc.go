/*
Package health probes the check-in gateway before a run starts.

A batch over many accounts against a dead gateway produces dozens of
identical login timeouts, each burned through the full business retry
budget. The preflight probe turns that into one clear log line at the top
of the run. The probe is advisory: an unhealthy result is logged and the
run proceeds anyway, because the gateway may recover mid-run and the batch
engine already contains per-account failures.

Any HTTP answer below 500 counts as reachable: the probe establishes that
the gateway process is up, not that any particular account can log in.
*/
package health
