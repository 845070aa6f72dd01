/*
Package batch orchestrates one full check-in run.

The Engine walks the parsed account list strictly in input order. For each
account it resolves cohort membership, hands the account to the task runner,
and contains whatever comes back: a failed account is logged with its masked
identifier, counted, and left behind; the loop moves on. Concurrency never
crosses account boundaries; it lives only inside one account's repeated
sign-in actions.

Cohorts close at their last member or at the end of the list. At that point
the engine reconciles the cohort: it re-dials a fresh session for the
cohort's baseline account (its first member), logs in again, reads capacity,
and reports the growth since the baseline snapshot taken before that
account's own actions ran. A baseline is only usable when its account's task
succeeded; otherwise, and when the family-ID list has no entry for the
cohort, reconciliation is skipped with a warning. Exactly one reconciliation
attempt happens per cohort, always after every member has been attempted and
before the next cohort starts.

One condition escalates past the account boundary: a timeout-class login
failure, which usually means the gateway is down for every account still
queued. With fatal escalation enabled the engine stops and returns a
*FatalError; the command layer maps that to the process response. No code in
this package exits the process.

Run always returns a Summary (run ID, counts of processed, failed, and
reconciled), valid even when it also returns a fatal error.
*/
package batch
