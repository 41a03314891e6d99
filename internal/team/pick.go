package team

import (
	"slices"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/scoring"
)

const (
	// unknownLocation stands in for an empty location when counting.
	unknownLocation = "Unknown"
	newSkillBoost   = 0.005
)

// Swap records one location repair: Out left the team so In could join.
type Swap struct {
	Out scoring.Scored `json:"out"`
	In  scoring.Scored `json:"in"`
}

type Result struct {
	// Team is in selection order, not score order.
	Team []candidate.Candidate `json:"team"`
	// Members mirrors Team with the stored scores, diversity boost included.
	Members   []scoring.Scored `json:"members"`
	Scored    []scoring.Scored `json:"scored"`
	TotalCost float64          `json:"totalCost"`
	Summary   Summary          `json:"summary"`
	Swaps     []Swap           `json:"swaps,omitempty"`
	Manual    bool             `json:"manual"`
}

// Shortfall is how many members are missing to reach the team size.
func (r Result) Shortfall(c Constraints) int {
	return max(0, c.TeamSize-len(r.Team))
}

// DistinctLocations counts locations in the team, empty ones as "Unknown".
func (r Result) DistinctLocations() int {
	keys := make(map[string]struct{}, len(r.Team))
	for _, c := range r.Team {
		keys[locationKey(c.Location)] = struct{}{}
	}
	return len(keys)
}

func locationKey(location string) string {
	if location == "" {
		return unknownLocation
	}
	return location
}

// DiversityBoost is the bonus c earns for every listed skill that no member
// has yet. It only changes the stored score, never the pick order.
func DiversityBoost(members []scoring.Scored, c candidate.Candidate) float64 {
	present := make(map[string]struct{})
	for _, m := range members {
		for _, s := range m.Candidate.LowerSkills() {
			present[s] = struct{}{}
		}
	}

	fresh := 0
	for _, s := range c.LowerSkills() {
		if _, ok := present[s]; !ok {
			fresh++
		}
	}
	return float64(fresh) * newSkillBoost
}

// Pick greedily fills a team by score under the location cap and budget,
// then swaps redundant-location members for candidates from unrepresented
// locations until MinLocations is met or no compliant swap is left.
// It is a heuristic and does not guarantee an optimal team.
func Pick(pool []candidate.Candidate, w scoring.Weights, c Constraints) Result {
	ranked := scoring.Rank(pool, w)

	s := &selector{constraints: c, counts: make(map[string]int)}
	s.fill(ranked)
	s.repair(ranked)

	return s.result(ranked)
}

type selector struct {
	constraints Constraints
	members     []scoring.Scored
	counts      map[string]int
	total       float64
	swaps       []Swap
}

func (s *selector) fill(ranked []scoring.Scored) {
	for _, item := range ranked {
		if len(s.members) >= s.constraints.TeamSize {
			break
		}

		loc := locationKey(item.Candidate.Location)
		if s.counts[loc] >= s.constraints.MaxPerLocation {
			continue
		}

		cost := item.Candidate.Cost()
		if !s.constraints.withinBudget(s.total + cost) {
			continue
		}

		item.Score += DiversityBoost(s.members, item.Candidate)
		s.members = append(s.members, item)
		s.counts[loc]++
		s.total += cost
	}
}

func (s *selector) repair(ranked []scoring.Scored) {
	if s.distinct() >= s.constraints.MinLocations {
		return
	}

	// The repair pool is fixed up front: candidates from locations the
	// greedy fill left uncovered, in rank order.
	pool := make([]scoring.Scored, 0, len(ranked))
	for _, item := range ranked {
		if s.counts[locationKey(item.Candidate.Location)] == 0 {
			pool = append(pool, item)
		}
	}

	for _, in := range pool {
		if s.distinct() >= s.constraints.MinLocations {
			return
		}

		loc := locationKey(in.Candidate.Location)
		if s.counts[loc] >= s.constraints.MaxPerLocation {
			continue
		}

		idx := s.donor()
		if idx < 0 {
			return
		}

		out := s.members[idx]
		next := s.total - out.Candidate.Cost() + in.Candidate.Cost()
		if !s.constraints.withinBudget(next) {
			continue
		}

		s.members = slices.Delete(s.members, idx, idx+1)
		s.counts[locationKey(out.Candidate.Location)]--
		s.members = append(s.members, in)
		s.counts[loc]++
		s.total = next
		s.swaps = append(s.swaps, Swap{Out: out, In: in})
	}
}

// donor returns the index of the lowest-scoring member whose location has
// another representative, or -1.
func (s *selector) donor() int {
	idx := -1
	for i, m := range s.members {
		if s.counts[locationKey(m.Candidate.Location)] <= 1 {
			continue
		}
		if idx < 0 || m.Score < s.members[idx].Score {
			idx = i
		}
	}
	return idx
}

func (s *selector) distinct() int {
	n := 0
	for _, count := range s.counts {
		if count > 0 {
			n++
		}
	}
	return n
}

func (s *selector) result(ranked []scoring.Scored) Result {
	team := make([]candidate.Candidate, 0, len(s.members))
	for _, m := range s.members {
		team = append(team, m.Candidate)
	}

	members := s.members
	if members == nil {
		members = []scoring.Scored{}
	}

	return Result{
		Team:      team,
		Members:   members,
		Scored:    ranked,
		TotalCost: s.total,
		Summary:   Summarize(team),
		Swaps:     s.swaps,
	}
}
