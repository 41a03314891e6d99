package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/scoring"
)

func rankedFixture() []scoring.Scored {
	pool := []candidate.Candidate{
		{Name: "Ada", Email: "ada@example.com", Location: "London", Skills: []string{"React", "TypeScript"}},
		{Name: "Grace", Email: "grace@example.com", Location: "New York", Skills: []string{"CSS"}},
	}
	return scoring.Rank(pool, scoring.DefaultWeights())
}

func TestWriteRankJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankJSON(&buf, rankedFixture(), true))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "ada@example.com", rows[0]["email"])
	assert.EqualValues(t, 1, rows[0]["rank"])
	assert.Contains(t, rows[0], "skillScore")
	assert.NotEmpty(t, rows[0]["reasons"])
}

func TestWriteRankJSONWithoutReasons(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankJSON(&buf, rankedFixture(), false))
	assert.NotContains(t, buf.String(), "reasons")
}

func TestWriteRankTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRankTable(&buf, rankedFixture(), false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[1], "ada@example.com")
	assert.Contains(t, lines[2], "grace@example.com")
}
