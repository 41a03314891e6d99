package scoring

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/hire-picker/internal/candidate"
)

// DefaultBatchSize is the chunk size RankBatched uses when none is given.
const DefaultBatchSize = 50

// Scored is a candidate together with its score against a pool.
type Scored struct {
	Candidate candidate.Candidate `json:"candidate"`
	Result
	index int
}

// Reasons explains the stored score.
func (s Scored) Reasons() []string {
	return explain(s.Candidate, s.Result)
}

// Rank scores every candidate against pool and returns them ordered by
// descending score. Ties are broken by email, then by pool position.
func Rank(pool []candidate.Candidate, w Weights) []Scored {
	b := poolBounds(pool)
	scored := make([]Scored, len(pool))
	for i, c := range pool {
		scored[i] = Scored{Candidate: c, Result: score(c, w, b), index: i}
	}
	sortScored(scored)
	return scored
}

// RankBatched is Rank with scoring spread over concurrent batches. Batches
// are merged before sorting so the order matches Rank.
func RankBatched(ctx context.Context, pool []candidate.Candidate, w Weights, batchSize int) ([]Scored, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	b := poolBounds(pool)
	scored := make([]Scored, len(pool))

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(pool); start += batchSize {
		end := min(start+batchSize, len(pool))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				scored[i] = Scored{Candidate: pool[i], Result: score(pool[i], w, b), index: i}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortScored(scored)
	return scored, nil
}

func sortScored(s []Scored) {
	slices.SortStableFunc(s, func(a, b Scored) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Candidate.Email, b.Candidate.Email); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
}
