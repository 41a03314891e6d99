// Package team assembles a hiring team from a scored candidate pool.
package team

import (
	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/utils"
)

// Summary is the skills/locations/cost rollup of a team.
type Summary struct {
	Skills    []string `json:"skills"`
	Locations []string `json:"locations"`
	Cost      float64  `json:"cost"`
}

// Summarize aggregates members into a Summary. Skills are lowercased; both
// skills and locations keep first-seen order.
func Summarize(members []candidate.Candidate) Summary {
	skills := make([]string, 0)
	locations := make([]string, 0, len(members))
	cost := 0.0

	for i := range members {
		skills = append(skills, members[i].LowerSkills()...)
		locations = append(locations, members[i].Location)
		cost += members[i].Cost()
	}

	return Summary{
		Skills:    utils.Unique(skills),
		Locations: utils.Unique(locations),
		Cost:      cost,
	}
}
