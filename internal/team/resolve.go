package team

import (
	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/scoring"
)

// Resolve honours a manual selection: when exactly TeamSize of the selected
// emails exist in pool they form the team as chosen and the selector is
// skipped. Any other selection falls back to Pick.
func Resolve(pool []candidate.Candidate, selected []string, w scoring.Weights, c Constraints) Result {
	picked := candidate.NewPool(pool).PruneSelection(selected)
	if len(picked) == 0 || len(picked) != c.TeamSize {
		return Pick(pool, w, c)
	}

	ranked := scoring.Rank(pool, w)
	byEmail := make(map[string]scoring.Scored, len(ranked))
	for _, s := range ranked {
		if _, ok := byEmail[s.Candidate.Email]; !ok {
			byEmail[s.Candidate.Email] = s
		}
	}

	members := make([]scoring.Scored, 0, len(picked))
	team := make([]candidate.Candidate, 0, len(picked))
	total := 0.0
	for _, email := range picked {
		m := byEmail[email]
		members = append(members, m)
		team = append(team, m.Candidate)
		total += m.Candidate.Cost()
	}

	return Result{
		Team:      team,
		Members:   members,
		Scored:    ranked,
		TotalCost: total,
		Summary:   Summarize(team),
		Manual:    true,
	}
}
