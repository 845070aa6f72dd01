/*
Package report accumulates the run log and dispatches the final summary.

The Recorder is the single shared mutable resource of a run: every component
appends its human-readable outcome lines to it (alongside, not instead of,
structured logging). Lines stay in insertion order and appends from
concurrent sign-in repetitions never interleave within a line.

The Reporter drains the Recorder exactly once at the end of a run, normal
or aborted, joins the lines into one body, and hands it to a Sender (the
notify dispatcher). Draining clears the buffer, so calling Flush again, or
on an empty recorder, is a harmless no-op.

Flush is wired into a deferred block in the command layer; the only path
that bypasses it is the process-fatal abort the batch engine reserves for a
gateway-down login timeout.
*/
package report
