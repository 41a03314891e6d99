package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/candidate"
)

type skillsFilter struct {
	disabled bool
	reason   string
	skills   []string
}

// NewSkills creates a filter that keeps candidates listing any of the configured skills.
func NewSkills() Filter {
	return &skillsFilter{}
}

func (f *skillsFilter) Name() string { return "skills" }

func (f *skillsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *skillsFilter) IsEnabled() bool { return !f.disabled }

func (f *skillsFilter) Validate(cfg *Config) error {
	f.skills = nil
	if cfg == nil {
		return nil
	}
	for _, s := range cfg.Skills {
		if s = strings.TrimSpace(s); s != "" {
			f.skills = append(f.skills, s)
		}
	}
	return nil
}

func (f *skillsFilter) Apply(_ context.Context, deps Deps, p *candidate.Pool) (*candidate.Pool, Step, error) {
	initial := p.Len()
	if len(f.skills) == 0 {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	kept := p.FilterBySkills(f.skills)
	if deps.Logger != nil && kept.Len() != initial {
		deps.Logger.Info("keeping candidates with selected skills",
			zap.Strings("skills", f.skills),
			zap.Int("candidates_left", kept.Len()),
		)
	}

	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}

func (f *skillsFilter) Status() Status {
	details := map[string]string{}
	if len(f.skills) > 0 {
		details["skills"] = strings.Join(f.skills, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
