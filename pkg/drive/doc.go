/*
Package drive is the boundary to the cloud-drive service.

The Session interface covers the five operations the batch engine needs:
login, personal check-in, family check-in, family listing, and capacity
query. All of them are slow, fallible network calls; callers never assume
success without an explicit result.

A Dialer produces a fresh Session per credential. The orchestrator owns one
session per account and never shares it across accounts; the cohort
reconciliation step dials a second, fresh session for the baseline account.

The bundled Client implementation speaks normalized JSON to a check-in
gateway over HTTP. It is deliberately thin: the gateway implements the
service's actual wire protocol, and this package only carries request and
response shapes. Tests and alternative deployments can substitute any
Session implementation through the Dialer seam.

Error types:

  - AuthError: login failed for one account
  - ActionError: one check-in action failed (Kind is "personal" or "family")

IsTimeout classifies timeout-class failures; the orchestrator escalates a
login timeout to a run-level abort, since it usually means the gateway is
unreachable for every remaining account too.
*/
package drive
