/*
Package notify delivers the end-of-run report to external push channels.

Two channels exist, mirroring the operators' setup: WxPusher and a Telegram
bot. A channel is configured iff both members of its credential pair are
present; the constructors return nil otherwise and the Dispatcher drops nil
entries, so an unconfigured channel is never even constructed.

Delivery semantics:

  - Each channel gets its own retry budget (retry.Notify by default).
  - An application-level rejection (HTTP 200 carrying a non-ok payload)
    counts as a failure for retry purposes, not as a success.
  - Channels are dispatched concurrently and joined; one channel's failure
    never prevents the other's attempt.
  - Delivery failures are logged and counted in metrics, and are never
    returned to the caller: a broken push channel must not turn a completed
    run into a failed one, nor mask the run's own outcome.

Both channels expose BaseURL for tests to point at an httptest server.
*/
package notify
