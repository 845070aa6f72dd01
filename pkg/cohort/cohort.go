package cohort

import "strings"

// DefaultSize is the number of consecutive accounts sharing one family ID
// and one baseline measurement.
const DefaultSize = 20

// Descriptor identifies the cohort one account belongs to
type Descriptor struct {
	// Index is the 0-based cohort index
	Index int

	// FamilyID is the family group resolved for this cohort; empty when the
	// configured family-ID list is too short
	FamilyID string

	// Start is true for the cohort's first account (the baseline account)
	Start bool

	// End is true for the cohort's last account, or the last account of the
	// whole list
	End bool
}

// IndexFor returns the cohort index for a 0-based account index
func IndexFor(accountIndex, size int) int {
	if size <= 0 {
		size = DefaultSize
	}
	return accountIndex / size
}

// IsStart reports whether accountIndex opens a cohort
func IsStart(accountIndex, size int) bool {
	if size <= 0 {
		size = DefaultSize
	}
	return accountIndex%size == 0
}

// IsEnd reports whether accountIndex closes a cohort. The last account of
// the list always closes its cohort, full or not.
func IsEnd(accountIndex, total, size int) bool {
	if size <= 0 {
		size = DefaultSize
	}
	return accountIndex%size == size-1 || accountIndex == total-1
}

// Resolver maps cohort indices to family IDs from an ordered list
type Resolver struct {
	familyIDs []string
	size      int
}

// NewResolver parses the whitespace/newline separated family-ID list.
// The list is indexed by cohort: entry k serves cohort k.
func NewResolver(rawFamilyIDs string, size int) *Resolver {
	if size <= 0 {
		size = DefaultSize
	}
	return &Resolver{
		familyIDs: strings.Fields(rawFamilyIDs),
		size:      size,
	}
}

// Size returns the cohort size the resolver was built with
func (r *Resolver) Size() int {
	return r.size
}

// FamilyID returns the family ID for a cohort index. ok is false when the
// configured list has no entry for that cohort; callers treat that as a
// warning and skip reconciliation, never as a fatal error.
func (r *Resolver) FamilyID(cohortIndex int) (string, bool) {
	if cohortIndex < 0 || cohortIndex >= len(r.familyIDs) {
		return "", false
	}
	return r.familyIDs[cohortIndex], true
}

// Describe resolves the full cohort descriptor for one account position
func (r *Resolver) Describe(accountIndex, total int) Descriptor {
	idx := IndexFor(accountIndex, r.size)
	familyID, _ := r.FamilyID(idx)
	return Descriptor{
		Index:    idx,
		FamilyID: familyID,
		Start:    IsStart(accountIndex, r.size),
		End:      IsEnd(accountIndex, total, r.size),
	}
}
