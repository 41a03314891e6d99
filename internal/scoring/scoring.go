// Package scoring computes pool-relative fitness scores for candidates.
package scoring

import (
	"math"
	"slices"
	"strings"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/utils"
)

// ReferenceSkills is the vocabulary the skill score is measured against.
var ReferenceSkills = []string{
	"React",
	"Next JS",
	"TypeScript",
	"Redux",
	"Angular",
	"React Native",
	"JavaScript",
	"CSS",
	"Tailwind",
	"Testing",
	"Node",
}

const (
	csDegreeBonus = 0.6
	top50Bonus    = 0.25
	top25Bonus    = 0.15
)

// Context carries the weights and the pool used for normalization.
// Callers pass a pool that includes the scored candidate. When it does not,
// salary and recency are still clamped to [0,1] against the pool's range.
type Context struct {
	Weights Weights
	All     []candidate.Candidate
}

// Breakdown holds the unweighted sub-scores and the matched reference skills.
type Breakdown struct {
	Matches        []string `json:"matches"`
	SkillScore     float64  `json:"skillScore"`
	RoleScore      float64  `json:"roleScore"`
	EducationScore float64  `json:"educationScore"`
	SalaryEff      float64  `json:"salaryEff"`
	Recency        float64  `json:"recency"`
}

// Result is the rounded weighted score together with its breakdown.
type Result struct {
	Score     float64   `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
}

// bounds are the pool-wide ranges salary and recency are normalized against.
type bounds struct {
	minSalary, maxSalary float64
	minTime, maxTime     float64
	hasTime              bool
}

func poolBounds(all []candidate.Candidate) bounds {
	b := bounds{minSalary: 0, maxSalary: 1}

	var salaries, times []float64
	for i := range all {
		if s, ok := all[i].Salary(); ok {
			salaries = append(salaries, s)
		}
		if t, ok := all[i].SubmittedAt(); ok {
			times = append(times, float64(t.UnixMilli()))
		}
	}

	if len(salaries) > 0 {
		b.minSalary, b.maxSalary = slices.Min(salaries), slices.Max(salaries)
	}
	if len(times) > 0 {
		b.minTime, b.maxTime, b.hasTime = slices.Min(times), slices.Max(times), true
	}
	return b
}

// Score computes the weighted fitness of c relative to ctx.All.
func Score(c candidate.Candidate, ctx Context) Result {
	return score(c, ctx.Weights, poolBounds(ctx.All))
}

func score(c candidate.Candidate, w Weights, b bounds) Result {
	matches := skillMatches(c)
	skillScore := float64(len(matches)) / float64(max(1, len(ReferenceSkills)))

	roleScore := 0.0
	for _, exp := range c.WorkExperiences {
		roleScore = math.Max(roleScore, utils.RoleRelevance(exp.RoleName))
	}

	educationScore := educationScore(c.Education.Degrees)

	salary, ok := c.Salary()
	if !ok {
		salary = b.maxSalary
	}
	salaryEff := 1 - utils.Normalize(salary, b.minSalary, b.maxSalary)

	recency := 0.0
	if t, ok := c.SubmittedAt(); ok && b.hasTime {
		recency = utils.Normalize(float64(t.UnixMilli()), b.minTime, b.maxTime)
	}

	final := 0.0
	if len(c.Skills) > 0 || roleScore > 0 {
		final = w.SkillMatch*skillScore +
			w.RoleRelevance*roleScore +
			w.Education*educationScore +
			w.SalaryEfficiency*salaryEff +
			w.Recency*recency
	}

	return Result{
		Score: round4(final),
		Breakdown: Breakdown{
			Matches:        matches,
			SkillScore:     skillScore,
			RoleScore:      roleScore,
			EducationScore: educationScore,
			SalaryEff:      salaryEff,
			Recency:        recency,
		},
	}
}

// skillMatches returns the reference skills the candidate lists, in
// vocabulary order.
func skillMatches(c candidate.Candidate) []string {
	lower := c.LowerSkills()
	matches := make([]string, 0, len(ReferenceSkills))
	for _, ref := range ReferenceSkills {
		if slices.Contains(lower, strings.ToLower(ref)) {
			matches = append(matches, ref)
		}
	}
	return matches
}

func educationScore(degrees []candidate.Degree) float64 {
	var hasCS, top50, top25 bool
	for _, d := range degrees {
		hasCS = hasCS || strings.Contains(strings.ToLower(d.Subject), "computer")
		top50 = top50 || d.IsTop50
		top25 = top25 || d.IsTop25
	}

	s := 0.0
	if hasCS {
		s += csDegreeBonus
	}
	if top50 {
		s += top50Bonus
	}
	if top25 {
		s += top25Bonus
	}
	return s
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
