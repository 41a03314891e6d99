package filtering

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/candidate"
)

type availabilityFilter struct {
	disabled bool
	reason   string
	fullTime bool
}

// NewAvailability creates a filter that removes candidates not available
// for full-time work when full-time-only is set.
func NewAvailability() Filter {
	return &availabilityFilter{}
}

func (f *availabilityFilter) Name() string { return "availability" }

func (f *availabilityFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *availabilityFilter) IsEnabled() bool { return !f.disabled }

func (f *availabilityFilter) Validate(cfg *Config) error {
	f.fullTime = cfg != nil && cfg.FullTimeOnly
	return nil
}

func (f *availabilityFilter) Apply(_ context.Context, deps Deps, p *candidate.Pool) (*candidate.Pool, Step, error) {
	initial := p.Len()
	if !f.fullTime {
		return p, Step{Initial: initial, Dropped: 0, Left: p.Len()}, nil
	}

	excluded := p.ExcludeUnavailable(candidate.FullTime)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding candidates not available full-time",
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", p.Len()),
		)
	}

	return p, Step{Initial: initial, Dropped: len(excluded), Left: p.Len()}, nil
}

func (f *availabilityFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"full_time_only": strconv.FormatBool(f.fullTime)},
	}
}
