package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/filtering"
)

// loadPool reads the candidates file and runs the configured filters.
func loadPool(ctx context.Context, config *Config, log *zap.Logger) ([]candidate.Candidate, error) {
	items, err := candidate.Load(config.Candidates)
	if err != nil {
		var verr *candidate.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				log.Error("invalid candidate record", zap.String("field", fe.Field), zap.String("message", fe.Message))
			}
		}
		return nil, err
	}

	log.Info("candidates loaded", zap.String("path", config.Candidates), zap.Int("count", len(items)))

	steps := filtering.Defaults()
	if viper.GetBool("ignore-exclude-file") {
		filtering.DisableByName(steps, "exclude_file", "ignored by flag")
	}

	pool, err := filtering.Run(ctx, &config.Filters, filtering.Deps{Logger: log}, steps, candidate.NewPool(items))
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}

	for _, status := range filtering.Describe(steps) {
		log.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	return pool.Items, nil
}
