// Package export renders a picked team as a markdown report, a spreadsheet
// or a raw JSON dump.
package export

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	_ "embed"

	"github.com/ecodeclub/ekit/slice"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/team"
	"github.com/spigell/hire-picker/internal/utils"
)

const ReportFileName = "hiring-report.md"

//go:embed report.md.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(reportTemplate))

// Report is everything the markdown report shows. Review is optional.
type Report struct {
	GeneratedAt time.Time
	Constraints team.Constraints
	Result      team.Result
	Review      *ai.Review
}

type reportView struct {
	Date         string
	TeamSize     int
	MinLocations int
	Locations    []string
	Cost         string
	Manual       bool
	Shortfall    bool
	DiversityGap bool
	Members      []memberView
	Swaps        []swapView
	Review       *ai.Review
}

type memberView struct {
	Name     string
	Email    string
	Location string
	Salary   string
	Score    string
	Reasons  []string
}

type swapView struct {
	Out string
	In  string
}

// Markdown writes the hiring decision report.
func Markdown(w io.Writer, r Report) error {
	res := r.Result
	view := reportView{
		Date:         r.GeneratedAt.Format("2006-01-02 15:04"),
		TeamSize:     r.Constraints.TeamSize,
		MinLocations: r.Constraints.MinLocations,
		Locations:    res.Summary.Locations,
		Cost:         utils.FormatUSD(res.Summary.Cost),
		Manual:       res.Manual,
		Shortfall:    res.Shortfall(r.Constraints) > 0,
		DiversityGap: !res.Manual && len(res.Team) > 0 && res.DistinctLocations() < r.Constraints.MinLocations,
		Members:      slice.Map(res.Members, func(_ int, m scoring.Scored) memberView { return newMemberView(m) }),
		Swaps: slice.Map(res.Swaps, func(_ int, s team.Swap) swapView {
			return swapView{Out: s.Out.Candidate.Name, In: s.In.Candidate.Name}
		}),
		Review: r.Review,
	}

	if err := reportTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func newMemberView(m scoring.Scored) memberView {
	return memberView{
		Name:     m.Candidate.Name,
		Email:    m.Candidate.Email,
		Location: m.Candidate.Location,
		Salary:   utils.FormatUSD(m.Candidate.Cost()),
		Score:    fmt.Sprintf("%.1f%%", m.Score*100),
		Reasons:  m.Reasons(),
	}
}

// ByLocation groups team members by location for console output.
func ByLocation(res team.Result) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, m := range res.Members {
		key := m.Candidate.Location
		if key == "" {
			key = "Unknown"
		}
		report[key] = append(report[key], map[string]string{
			"name":   m.Candidate.Name,
			"email":  m.Candidate.Email,
			"phone":  m.Candidate.PhoneOrNA(),
			"salary": utils.FormatUSD(m.Candidate.Cost()),
			"score":  fmt.Sprintf("%.4f", m.Score),
			"skills": strings.Join(m.Candidate.Skills, ", "),
		})
	}
	return report
}
