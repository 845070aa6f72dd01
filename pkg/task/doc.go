/*
Package task executes the check-in sequence for one account.

The Runner drives a single account through authenticate → sign-in actions →
(for cohort firsts) capacity baseline, dialing a fresh drive session that no
other account shares. Login runs under the business retry policy; when the
budget is exhausted the outcome records the error and no further step runs
for that account. Nothing panics and nothing propagates: the orchestrator
reads Outcome.Err and decides whether the failure stays contained.

Sign-in actions fan out: N concurrent personal repetitions and M concurrent
family repetitions (widths from configuration). Each repetition is isolated:
a failure becomes a "0" gain entry, and an "already signed" response
contributes nothing. The runner always joins the whole group before moving on. A
block where no repetition produced an entry gets one fallback "0" so the
report always shows the block.

Two restriction modes exist for operators running large batches:

  - PersonalFirstOnly: only each cohort's first account performs personal
    sign-ins.
  - FamilySingleFirst: family sign-in is reduced to one sequential attempt,
    performed only by each cohort's first account.

Every outcome line is appended to the shared run recorder as it is produced,
so the final report interleaves accounts in processing order.
*/
package task
