package candidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	candidates, err := Load("testdata/candidates.json")
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	ada := candidates[0]
	assert.Equal(t, "ada@example.com", ada.Email)
	assert.Equal(t, "London", ada.Location)
	assert.Equal(t, "Frontend Engineer", ada.WorkExperiences[0].RoleName)
	assert.True(t, ada.Education.Degrees[0].IsTop50)
	assert.Equal(t, "+1 555 0100", ada.PhoneOrNA())

	salary, ok := ada.Salary()
	assert.True(t, ok)
	assert.Equal(t, 120000.0, salary)

	grace := candidates[1]
	assert.Nil(t, grace.Phone)
	assert.Equal(t, "N/A", grace.PhoneOrNA())
	assert.Empty(t, grace.WorkExperiences)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading candidates file")
}

func TestParse(t *testing.T) {
	t.Run("blank input is an empty pool", func(t *testing.T) {
		candidates, err := Parse([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, candidates)
	})

	t.Run("object instead of array", func(t *testing.T) {
		_, err := Parse([]byte(`{"name": "x", "email": "x@example.com"}`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "(root)", verr.Errors[0].Field)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := Parse([]byte(`[{"name": "x"}]`))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Error(), "email")
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Parse([]byte(`[{"name": `))
		require.Error(t, err)
		var verr *ValidationError
		assert.NotErrorAs(t, err, &verr)
	})

	t.Run("nulls are tolerated", func(t *testing.T) {
		candidates, err := Parse([]byte(`[{"name": "x", "email": "x@example.com", "skills": null, "location": null}]`))
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Empty(t, candidates[0].Skills)
		assert.Equal(t, "", candidates[0].Location)
	})
}

func TestSubmittedAt(t *testing.T) {
	tests := []struct {
		raw    string
		parsed bool
	}{
		{raw: "2025-01-28 09:02:16.000000", parsed: true},
		{raw: "2025-01-29T10:00:00Z", parsed: true},
		{raw: "2025-01-29T10:00:00.123+02:00", parsed: true},
		{raw: "2025-01-29", parsed: true},
		{raw: "", parsed: false},
		{raw: "yesterday", parsed: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := Candidate{SubmittedAtRaw: tt.raw}
			_, ok := c.SubmittedAt()
			assert.Equal(t, tt.parsed, ok)
		})
	}
}

func TestCost(t *testing.T) {
	assert.Equal(t, 0.0, (&Candidate{}).Cost())
	assert.Equal(t, 0.0, (&Candidate{AnnualSalaryExpectation: map[string]string{"part-time": "$40,000"}}).Cost())
	assert.Equal(t, 80000.0, (&Candidate{AnnualSalaryExpectation: map[string]string{FullTime: "$80,000"}}).Cost())
}
