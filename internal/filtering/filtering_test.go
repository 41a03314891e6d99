package filtering

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/hire-picker/internal/candidate"
)

func pool() *candidate.Pool {
	return candidate.NewPool([]candidate.Candidate{
		{Name: "A", Email: "a@example.com", Skills: []string{"React"}, WorkAvailability: []string{"full-time"}},
		{Name: "B", Email: "b@example.com", Skills: []string{"Go"}, WorkAvailability: []string{"part-time"}},
		{Name: "C", Email: "c@example.com", Skills: []string{"React", "CSS"}},
		{Name: "D", Email: "d@example.com", Skills: []string{"CSS"}, WorkAvailability: []string{"full-time"}},
	})
}

type failingFilter struct{ validateErr, applyErr error }

func (f *failingFilter) Name() string           { return "failing" }
func (f *failingFilter) Disable(string)         {}
func (f *failingFilter) IsEnabled() bool        { return true }
func (f *failingFilter) Validate(*Config) error { return f.validateErr }
func (f *failingFilter) Apply(_ context.Context, _ Deps, p *candidate.Pool) (*candidate.Pool, Step, error) {
	return p, Step{}, f.applyErr
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	excludePath := filepath.Join(dir, "excluded.json")
	excluded := candidate.NewPool([]candidate.Candidate{{Name: "D", Email: "d@example.com"}}).
		ToExcluded(candidate.ExcludeActorUser, "hired elsewhere")
	require.NoError(t, excluded.ToFile(excludePath))

	tests := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{name: "no config", want: []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}},
		{name: "skills", cfg: &Config{Skills: []string{"CSS", " "}}, want: []string{"c@example.com", "d@example.com"}},
		{name: "exclude file", cfg: &Config{ExcludeFile: excludePath}, want: []string{"a@example.com", "b@example.com", "c@example.com"}},
		{name: "full time only", cfg: &Config{FullTimeOnly: true}, want: []string{"a@example.com", "c@example.com", "d@example.com"}},
		{
			name: "combined",
			cfg:  &Config{Skills: []string{"React", "CSS"}, ExcludeFile: excludePath, FullTimeOnly: true},
			want: []string{"a@example.com", "c@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(context.Background(), tt.cfg, Deps{}, Defaults(), pool())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Emails())
		})
	}
}

func TestRunLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	steps := Defaults()
	DisableByName(steps, "availability", "not needed")

	_, err := Run(context.Background(), &Config{Skills: []string{"Go"}, FullTimeOnly: true}, Deps{Logger: zap.New(core)}, steps, pool())
	require.NoError(t, err)

	disabled := observed.FilterMessage("filter disabled").All()
	require.Len(t, disabled, 1)
	assert.Equal(t, "availability", disabled[0].ContextMap()["name"])

	var skills map[string]any
	for _, entry := range observed.FilterMessage("filter step").All() {
		if ctx := entry.ContextMap(); ctx["name"] == "skills" {
			skills = ctx
		}
	}
	require.NotNil(t, skills)
	assert.Equal(t, int64(4), skills["initial"])
	assert.Equal(t, int64(3), skills["dropped"])
	assert.Equal(t, int64(1), skills["left"])
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := Run(context.Background(), nil, Deps{}, []Filter{&failingFilter{validateErr: boom}}, pool())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing")

	_, err = Run(context.Background(), nil, Deps{}, []Filter{&failingFilter{applyErr: boom}}, pool())
	require.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, nil, Deps{}, Defaults(), pool())
	require.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	steps := Defaults()
	DisableByName(steps, "skills", "flag")
	_, err := Run(context.Background(), &Config{ExcludeFile: "excluded.json", FullTimeOnly: true}, Deps{}, steps[:2], pool())
	require.NoError(t, err)

	statuses := Describe(steps)
	require.Len(t, statuses, 3)

	assert.Equal(t, Status{Name: "exclude_file", Enabled: true, Details: map[string]string{"path": "excluded.json"}}, statuses[0])
	assert.Equal(t, "true", statuses[1].Details["full_time_only"])
	assert.False(t, statuses[2].Enabled)
	assert.Equal(t, "flag", statuses[2].Reason)
}
