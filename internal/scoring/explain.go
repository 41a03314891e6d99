package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/utils"
)

const strongRoleThreshold = 0.7

// Explain lists human-readable reasons behind the candidate's score. The last
// line is always the overall score.
func Explain(c candidate.Candidate, ctx Context) []string {
	return explain(c, Score(c, ctx))
}

func explain(c candidate.Candidate, res Result) []string {
	b := res.Breakdown
	reasons := make([]string, 0, 5)

	if len(b.Matches) > 0 {
		reasons = append(reasons, fmt.Sprintf("Strong stack fit: %s.", strings.Join(b.Matches, ", ")))
	}
	if b.RoleScore >= strongRoleThreshold {
		reasons = append(reasons, "Relevant prior roles for frontend/software engineering.")
	}
	if b.EducationScore > 0 {
		reasons = append(reasons, "Educational background supports engineering capability.")
	}
	if salary, ok := c.Salary(); ok && b.SalaryEff > 0.5 {
		reasons = append(reasons, fmt.Sprintf("Cost-efficient at %s.", utils.FormatUSD(salary)))
	}

	reasons = append(reasons, fmt.Sprintf("Overall fit score: %.1f%%.", res.Score*100))
	return reasons
}
