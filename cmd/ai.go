package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/ai/gemini"
	"github.com/spigell/hire-picker/internal/secrets"
)

// newReviewer returns nil when AI review is disabled.
func newReviewer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Reviewer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai review is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries)
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(generator, log, cfg.Gemini.MaxLogLength), nil
}
