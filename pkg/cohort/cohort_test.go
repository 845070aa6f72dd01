package cohort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIndexFor tests cohort index derivation
func TestIndexFor(t *testing.T) {
	tests := []struct {
		name         string
		accountIndex int
		size         int
		expected     int
	}{
		{name: "first account", accountIndex: 0, size: 20, expected: 0},
		{name: "last of first cohort", accountIndex: 19, size: 20, expected: 0},
		{name: "first of second cohort", accountIndex: 20, size: 20, expected: 1},
		{name: "third cohort", accountIndex: 44, size: 20, expected: 2},
		{name: "non-positive size falls back to default", accountIndex: 25, size: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IndexFor(tt.accountIndex, tt.size))
		})
	}
}

// TestCohortBoundaries tests the 45-account/size-20 partition from the
// batch engine's contract: cohorts [0..19], [20..39], [40..44].
func TestCohortBoundaries(t *testing.T) {
	const total = 45
	const size = 20

	starts := []int{}
	ends := []int{}
	for i := 0; i < total; i++ {
		if IsStart(i, size) {
			starts = append(starts, i)
		}
		if IsEnd(i, total, size) {
			ends = append(ends, i)
		}
	}

	assert.Equal(t, []int{0, 20, 40}, starts)
	assert.Equal(t, []int{19, 39, 44}, ends)
}

// TestIsEndLastAccountClosesPartialCohort tests that the final account
// always closes its cohort
func TestIsEndLastAccountClosesPartialCohort(t *testing.T) {
	// 5 accounts, size 20: only index 4 ends the (single, partial) cohort
	assert.False(t, IsEnd(3, 5, 20))
	assert.True(t, IsEnd(4, 5, 20))

	// exact multiple: index 19 ends via both rules
	assert.True(t, IsEnd(19, 20, 20))
}

// TestResolverFamilyID tests family-ID lookup including the short-list case
func TestResolverFamilyID(t *testing.T) {
	r := NewResolver("fam-a fam-b", 20)

	id, ok := r.FamilyID(0)
	assert.True(t, ok)
	assert.Equal(t, "fam-a", id)

	id, ok = r.FamilyID(1)
	assert.True(t, ok)
	assert.Equal(t, "fam-b", id)

	// cohort 2 has no configured family ID
	id, ok = r.FamilyID(2)
	assert.False(t, ok)
	assert.Equal(t, "", id)
}

// TestDescribe tests full descriptor resolution
func TestDescribe(t *testing.T) {
	r := NewResolver("fam-a\nfam-b\nfam-c", 20)

	tests := []struct {
		name         string
		accountIndex int
		total        int
		expected     Descriptor
	}{
		{
			name:         "baseline of cohort 0",
			accountIndex: 0,
			total:        45,
			expected:     Descriptor{Index: 0, FamilyID: "fam-a", Start: true, End: false},
		},
		{
			name:         "middle of cohort 1",
			accountIndex: 25,
			total:        45,
			expected:     Descriptor{Index: 1, FamilyID: "fam-b", Start: false, End: false},
		},
		{
			name:         "end of partial cohort 2",
			accountIndex: 44,
			total:        45,
			expected:     Descriptor{Index: 2, FamilyID: "fam-c", Start: false, End: true},
		},
		{
			name:         "single-account list is both start and end",
			accountIndex: 0,
			total:        1,
			expected:     Descriptor{Index: 0, FamilyID: "fam-a", Start: true, End: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Describe(tt.accountIndex, tt.total))
		})
	}
}
