package cmd

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/filtering"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/server"
	"github.com/spigell/hire-picker/internal/team"
)

type Config struct {
	Candidates  string           `mapstructure:"candidates"`
	Weights     scoring.Weights  `mapstructure:"weights"`
	Constraints team.Constraints `mapstructure:"constraints"`
	Filters     filtering.Config `mapstructure:"filters"`
	// Selected forces a manual team when it names exactly team-size candidates.
	Selected []string      `mapstructure:"selected"`
	Export   ExportConfig  `mapstructure:"export"`
	AI       *AIConfig     `mapstructure:"ai"`
	Server   server.Config `mapstructure:"server"`
}

type ExportConfig struct {
	Report      string `mapstructure:"report"`
	Spreadsheet string `mapstructure:"spreadsheet"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	w := scoring.DefaultWeights()
	v.SetDefault("weights.skill-match", w.SkillMatch)
	v.SetDefault("weights.role-relevance", w.RoleRelevance)
	v.SetDefault("weights.education", w.Education)
	v.SetDefault("weights.salary-efficiency", w.SalaryEfficiency)
	v.SetDefault("weights.recency", w.Recency)

	c := team.DefaultConstraints()
	v.SetDefault("constraints.team-size", c.TeamSize)
	v.SetDefault("constraints.max-per-location", c.MaxPerLocation)
	v.SetDefault("constraints.min-locations", c.MinLocations)

	v.SetDefault("candidates", "candidates.json")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.batch-size", scoring.DefaultBatchSize)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.max-retries", 2)
	v.SetDefault("ai.gemini.max-log-length", 200)
}

func getConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), weightOverrides)
}

func loadConfig(v *viper.Viper, overrides map[string]string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := applyWeightOverrides(&config.Weights, overrides); err != nil {
		return nil, err
	}

	config.Server.Weights = config.Weights
	config.Server.Constraints = config.Constraints

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &config, nil
}

// applyWeightOverrides decodes key=value pairs from --weights onto w.
// Keys use the config names; unknown keys are an error.
func applyWeightOverrides(w *scoring.Weights, overrides map[string]string) error {
	if len(overrides) == 0 {
		return nil
	}

	raw := make(map[string]any, len(overrides))
	for k, v := range overrides {
		raw[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           w,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(raw); err != nil {
		keys := make([]string, 0, len(overrides))
		for k := range overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Errorf("applying weight overrides %v: %w", keys, err)
	}
	return nil
}

// logWeights notes weights that do not add up to 1. Scores then
// may leave [0,1], which is allowed.
func logWeights(log *zap.Logger, w scoring.Weights) {
	if sum := w.Sum(); math.Abs(sum-1) > 1e-9 {
		log.Info("weights do not sum to 1", zap.Float64("sum", sum), zap.Any("weights", w))
	}
}
