package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/logger"
	"github.com/spigell/hire-picker/internal/scoring"
)

var explainCmd = &cobra.Command{
	Use:   "explain <email>",
	Short: "Explain the score of one candidate",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		explain(args[0])
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func explain(email string) {
	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	pool, err := loadPool(context.Background(), config, log)
	if err != nil {
		log.Fatal("loading candidates", zap.Error(err))
	}

	c := candidate.NewPool(pool).FindByEmail(email)
	if c == nil {
		log.Fatal("candidate not found in the filtered pool", zap.String(logger.FieldCandidate, email))
	}

	res := scoring.Score(*c, scoring.Context{Weights: config.Weights, All: pool})
	log.Info("candidate scored", logger.CandidateFields(c.Email, c.Location, res.Score)...)

	for _, reason := range scoring.Explain(*c, scoring.Context{Weights: config.Weights, All: pool}) {
		fmt.Println(reason)
	}
}
