// Package candidate holds applicant records and the helpers that load and
// slice candidate pools before they are scored.
package candidate

import (
	"strings"
	"time"

	"github.com/spigell/hire-picker/internal/utils"
)

// FullTime is the salary expectation key used for cost and efficiency.
const FullTime = "full-time"

var submittedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

type Candidate struct {
	Name                    string            `json:"name"`
	Email                   string            `json:"email"`
	Phone                   *string           `json:"phone,omitempty"`
	Location                string            `json:"location"`
	SubmittedAtRaw          string            `json:"submitted_at"`
	WorkAvailability        []string          `json:"work_availability,omitempty"`
	AnnualSalaryExpectation map[string]string `json:"annual_salary_expectation,omitempty"`
	WorkExperiences         []WorkExperience  `json:"work_experiences"`
	Education               Education         `json:"education"`
	Skills                  []string          `json:"skills"`
}

type WorkExperience struct {
	Company  string `json:"company"`
	RoleName string `json:"roleName"`
}

type Education struct {
	HighestLevel string   `json:"highest_level"`
	Degrees      []Degree `json:"degrees"`
}

type Degree struct {
	Degree         string `json:"degree"`
	Subject        string `json:"subject"`
	School         string `json:"school"`
	GPA            string `json:"gpa"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
	OriginalSchool string `json:"originalSchool,omitempty"`
	IsTop50        bool   `json:"isTop50,omitempty"`
	IsTop25        bool   `json:"isTop25,omitempty"`
}

// Salary returns the parsed full-time salary expectation.
func (c *Candidate) Salary() (float64, bool) {
	if c.AnnualSalaryExpectation == nil {
		return 0, false
	}
	return utils.ParseUSD(c.AnnualSalaryExpectation[FullTime])
}

// Cost is the full-time salary expectation, or 0 when it is missing.
func (c *Candidate) Cost() float64 {
	v, _ := c.Salary()
	return v
}

// SubmittedAt parses submitted_at. Unknown formats report false.
func (c *Candidate) SubmittedAt() (time.Time, bool) {
	raw := strings.TrimSpace(c.SubmittedAtRaw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range submittedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LowerSkills returns the skills lowercased, keeping duplicates and order.
func (c *Candidate) LowerSkills() []string {
	out := make([]string, 0, len(c.Skills))
	for _, s := range c.Skills {
		out = append(out, strings.ToLower(s))
	}
	return out
}

func (c *Candidate) PhoneOrNA() string {
	if c.Phone == nil || strings.TrimSpace(*c.Phone) == "" {
		return "N/A"
	}
	return *c.Phone
}
