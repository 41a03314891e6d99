package team

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/hire-picker/internal/candidate"
)

func TestResolveManualSelection(t *testing.T) {
	pool := []candidate.Candidate{
		applicant("a", "NY", 5, "$100,000"),
		applicant("b", "NY", 4, "$50,000"),
		applicant("c", "NY", 1, ""),
	}
	c := Constraints{TeamSize: 2, MaxPerLocation: 1, MinLocations: 3}

	res := Resolve(pool, []string{"c@example.com", "b@example.com", "c@example.com"}, skillOnly, c)

	assert.True(t, res.Manual)
	assert.Equal(t, []string{"c@example.com", "b@example.com"}, emails(res.Team))
	assert.Equal(t, 50000.0, res.TotalCost)
	assert.Equal(t, res.TotalCost, res.Summary.Cost)
	assert.Empty(t, res.Swaps)
	assert.Len(t, res.Scored, 3)
}

func TestResolveFallsBackToPick(t *testing.T) {
	pool := []candidate.Candidate{
		applicant("a", "NY", 5, ""),
		applicant("b", "SF", 4, ""),
		applicant("c", "LA", 1, ""),
	}
	c := Constraints{TeamSize: 2, MaxPerLocation: 1, MinLocations: 1}

	tests := []struct {
		name     string
		selected []string
	}{
		{name: "nothing selected"},
		{name: "too few", selected: []string{"c@example.com"}},
		{name: "unknown emails pruned", selected: []string{"c@example.com", "gone@example.com"}},
		{name: "too many", selected: []string{"a@example.com", "b@example.com", "c@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(pool, tt.selected, skillOnly, c)
			assert.False(t, res.Manual)
			assert.Equal(t, []string{"a@example.com", "b@example.com"}, emails(res.Team))
		})
	}
}
