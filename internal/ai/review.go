// Package ai asks a language model for a second opinion on a picked team.
// Reviews are advisory and never change the selection.
package ai

import (
	"context"

	"github.com/spigell/hire-picker/internal/team"
)

type Review struct {
	Verdict   string   `json:"verdict"`
	Strengths []string `json:"strengths,omitempty"`
	Risks     []string `json:"risks,omitempty"`
	Summary   string   `json:"summary"`
	Raw       string   `json:"-"`
}

type Reviewer interface {
	Review(ctx context.Context, brief TeamBrief) (*Review, error)
}

// TeamBrief is the compact view of a team sent to the model.
type TeamBrief struct {
	Members     []MemberBrief    `json:"members"`
	Skills      []string         `json:"skills"`
	Locations   []string         `json:"locations"`
	TotalCost   float64          `json:"totalCost"`
	Constraints team.Constraints `json:"constraints"`
	Manual      bool             `json:"manual"`
}

type MemberBrief struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Score    float64  `json:"score"`
	Salary   float64  `json:"salary"`
	Skills   []string `json:"skills"`
	Roles    []string `json:"roles"`
	Reasons  []string `json:"reasons"`
}

// NewTeamBrief drops contact details so emails and phones never reach the provider.
func NewTeamBrief(res team.Result, c team.Constraints) TeamBrief {
	members := make([]MemberBrief, 0, len(res.Members))
	for _, m := range res.Members {
		roles := make([]string, 0, len(m.Candidate.WorkExperiences))
		for _, w := range m.Candidate.WorkExperiences {
			roles = append(roles, w.RoleName)
		}
		members = append(members, MemberBrief{
			Name:     m.Candidate.Name,
			Location: m.Candidate.Location,
			Score:    m.Score,
			Salary:   m.Candidate.Cost(),
			Skills:   m.Candidate.Skills,
			Roles:    roles,
			Reasons:  m.Reasons(),
		})
	}

	return TeamBrief{
		Members:     members,
		Skills:      res.Summary.Skills,
		Locations:   res.Summary.Locations,
		TotalCost:   res.TotalCost,
		Constraints: c,
		Manual:      res.Manual,
	}
}
