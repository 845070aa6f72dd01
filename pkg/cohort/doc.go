/*
Package cohort partitions the ordered account list into fixed-size cohorts.

A cohort is a run of consecutive accounts (default 20) that share one family
ID and one baseline capacity measurement. Partitioning is purely positional:
account index i belongs to cohort i/size, the first account of each cohort
is its baseline account, and the cohort closes at its last member or at the
end of the whole list, whichever comes first.

The family ID for cohort k is entry k of a separately configured ordered
list. A missing entry is not an error; the Resolver reports it and the
orchestrator skips that cohort's reconciliation with a warning.

All functions here are pure; the package holds no state beyond the parsed
family-ID list.
*/
package cohort
