package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/team"
)

func pool() []candidate.Candidate {
	phone := "+44 20 7946 0000"
	return []candidate.Candidate{
		{
			Name:                    "Ada",
			Email:                   "ada@example.com",
			Phone:                   &phone,
			Location:                "London",
			AnnualSalaryExpectation: map[string]string{candidate.FullTime: "$120,000"},
			WorkExperiences: []candidate.WorkExperience{
				{Company: "Acme", RoleName: "Frontend Engineer"},
				{Company: "Globex", RoleName: "Developer"},
			},
			Education: candidate.Education{Degrees: []candidate.Degree{{Degree: "BSc", School: "UCL"}}},
			Skills:    []string{"React", "TypeScript"},
		},
		{
			Name:                    "Grace",
			Email:                   "grace@example.com",
			Location:                "New York",
			AnnualSalaryExpectation: map[string]string{candidate.FullTime: "$95,000"},
			Skills:                  []string{"COBOL"},
		},
		{Name: "Linus", Email: "linus@example.com", Location: "London", Skills: []string{"C"}},
	}
}

func picked(t *testing.T) (team.Result, team.Constraints) {
	t.Helper()
	c := team.Constraints{TeamSize: 3, MaxPerLocation: 1, MinLocations: 3}
	res := team.Pick(pool(), scoring.DefaultWeights(), c)
	require.Len(t, res.Team, 2)
	return res, c
}

func TestMarkdown(t *testing.T) {
	res, c := picked(t)
	review := &ai.Review{Verdict: "revise", Summary: "Thin on backend.", Risks: []string{"one backend"}}

	var buf bytes.Buffer
	err := Markdown(&buf, Report{
		GeneratedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Constraints: c,
		Result:      res,
		Review:      review,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# Hiring Decision - 2025-03-01 09:30")
	assert.Contains(t, out, "**Team Size:** 3")
	assert.Contains(t, out, "**Locations Covered:** London, New York")
	assert.Contains(t, out, "**Total Cost:** $215,000")
	assert.Contains(t, out, "Only 2 of 3 seats could be filled")
	assert.Contains(t, out, "below the requested 3")
	assert.Contains(t, out, "### Ada\n- Email: ada@example.com\n- Location: London\n- Expected Salary: $120,000")
	assert.Contains(t, out, "**Verdict:** revise")
	assert.Contains(t, out, "- one backend")
	assert.NotContains(t, out, "Location Swaps")
	assert.NotContains(t, out, "<no value>")
}

func TestMarkdownWithoutReview(t *testing.T) {
	res := team.Pick(nil, scoring.DefaultWeights(), team.DefaultConstraints())

	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, Report{Constraints: team.DefaultConstraints(), Result: res}))

	assert.Contains(t, buf.String(), "**Total Cost:** $0")
	assert.NotContains(t, buf.String(), "AI Review")
	assert.NotContains(t, buf.String(), "below the requested")
}

func TestByLocation(t *testing.T) {
	res, _ := picked(t)

	report := ByLocation(res)

	require.Len(t, report["London"], 1)
	assert.Equal(t, "Ada", report["London"][0]["name"])
	assert.Equal(t, "+44 20 7946 0000", report["London"][0]["phone"])
	assert.Equal(t, "N/A", report["New York"][0]["phone"])
	assert.Equal(t, "$95,000", report["New York"][0]["salary"])
}

func TestRows(t *testing.T) {
	res, _ := picked(t)

	rows := Rows(res, scoring.DefaultWeights(), pool())
	require.Len(t, rows, 3)

	ada := rows[0]
	assert.Equal(t, "Ada", ada[0])
	assert.Equal(t, "$120,000", ada[5])
	assert.Equal(t, "React, TypeScript", ada[6])
	assert.Equal(t, 2, ada[7])
	assert.Equal(t, "BSc from UCL", ada[8])
	assert.Equal(t, "Acme, Globex", ada[10])
	assert.Equal(t, "Frontend Engineer, Developer", ada[11])

	grace := rows[1]
	assert.Equal(t, "N/A", grace[3])
	assert.Equal(t, "None", grace[8])
	assert.Equal(t, "None", grace[11])

	summary := rows[2]
	assert.Equal(t, "TEAM SUMMARY", summary[0])
	assert.Equal(t, "$215,000", summary[5])
	assert.Equal(t, "3 unique skills", summary[6])
	assert.Equal(t, "2 locations", summary[10])
}

func TestSpreadsheet(t *testing.T) {
	res, _ := picked(t)
	path := filepath.Join(t.TempDir(), SpreadsheetFileName(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "hiring-team-2025-03-01.xlsx", filepath.Base(path))

	require.NoError(t, Spreadsheet(path, res, scoring.DefaultWeights(), pool()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Roles", rows[0][11])
	assert.Equal(t, "Ada", rows[1][0])
	assert.Equal(t, "TEAM SUMMARY", rows[3][0])
}

func TestSpreadsheetEmptyTeam(t *testing.T) {
	res := team.Pick(nil, scoring.DefaultWeights(), team.DefaultConstraints())
	err := Spreadsheet(filepath.Join(t.TempDir(), "empty.xlsx"), res, scoring.DefaultWeights(), nil)
	require.ErrorIs(t, err, ErrEmptyTeam)
}

func TestDumpToTmpFile(t *testing.T) {
	res, _ := picked(t)

	path, err := DumpToTmpFile("team", res)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded team.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, res.TotalCost, decoded.TotalCost)
	assert.Len(t, decoded.Team, 2)
}
