package scoring

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/hire-picker/internal/candidate"
)

func generatedPool(n int) []candidate.Candidate {
	roles := []string{"Frontend Developer", "Software Engineer", "Chef", "Product Owner"}
	skills := [][]string{{"React"}, {"CSS", "Node"}, {}, {"Go"}}

	pool := make([]candidate.Candidate, 0, n)
	for i := range n {
		pool = append(pool, candidate.Candidate{
			Email:                   fmt.Sprintf("c%03d@example.com", i),
			Location:                fmt.Sprintf("city-%d", i%3),
			SubmittedAtRaw:          fmt.Sprintf("2025-01-%02dT00:00:00Z", i%28+1),
			AnnualSalaryExpectation: salary(fmt.Sprintf("$%d", 50000+(i%7)*10000)),
			WorkExperiences:         []candidate.WorkExperience{{RoleName: roles[i%len(roles)]}},
			Skills:                  skills[i%len(skills)],
		})
	}
	return pool
}

func TestRankOrdersByScore(t *testing.T) {
	ranked := Rank(generatedPool(40), DefaultWeights())
	require.Len(t, ranked, 40)

	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		require.GreaterOrEqual(t, prev.Score, cur.Score)
		if prev.Score == cur.Score {
			require.Less(t, prev.Candidate.Email, cur.Candidate.Email, "ties are ordered by email")
		}
	}
}

func TestRankEmptyPool(t *testing.T) {
	assert.Empty(t, Rank(nil, DefaultWeights()))
}

func TestRankScoresAgainstWholePool(t *testing.T) {
	pool := generatedPool(10)
	ctx := Context{Weights: DefaultWeights(), All: pool}

	for _, s := range Rank(pool, DefaultWeights()) {
		assert.Equal(t, Score(s.Candidate, ctx), s.Result)
	}
}

func TestRankBatchedMatchesRank(t *testing.T) {
	pool := generatedPool(123)
	expected := Rank(pool, DefaultWeights())

	for _, size := range []int{0, 1, 7, 50, 500} {
		t.Run(fmt.Sprintf("batch-%d", size), func(t *testing.T) {
			got, err := RankBatched(context.Background(), pool, DefaultWeights(), size)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}
}

func TestRankBatchedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RankBatched(ctx, generatedPool(10), DefaultWeights(), 2)
	require.ErrorIs(t, err, context.Canceled)
}
