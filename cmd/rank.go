package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/scoring"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank the filtered candidate pool",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().Bool("explain", false, "print the reasons behind every score")
	rankCmd.Flags().IntP("limit", "n", 0, "show only the top n candidates (0 shows all)")
	rankCmd.Flags().StringP("output", "o", "table", "output format: table or json")
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logWeights(logger, config.Weights)

	pool, err := loadPool(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	ranked, err := scoring.RankBatched(ctx, pool, config.Weights, config.Server.BatchSize)
	if err != nil {
		logger.Fatal("ranking candidates", zap.Error(err))
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}

	explain, _ := cmd.Flags().GetBool("explain")
	output, _ := cmd.Flags().GetString("output")

	switch output {
	case "json":
		err = writeRankJSON(os.Stdout, ranked, explain)
	case "table":
		err = writeRankTable(os.Stdout, ranked, explain)
	default:
		err = fmt.Errorf("unknown output format %q", output)
	}
	if err != nil {
		logger.Fatal("printing ranking", zap.Error(err))
	}
}

type rankedRow struct {
	Rank    int      `json:"rank"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
	scoring.Breakdown
}

func writeRankJSON(w io.Writer, ranked []scoring.Scored, explain bool) error {
	rows := make([]rankedRow, 0, len(ranked))
	for i, s := range ranked {
		row := rankedRow{Rank: i + 1, Name: s.Candidate.Name, Email: s.Candidate.Email, Score: s.Score, Breakdown: s.Breakdown}
		if explain {
			row.Reasons = s.Reasons()
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeRankTable(w io.Writer, ranked []scoring.Scored, explain bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tEMAIL\tLOCATION\tSCORE\tSKILLS\tROLE\tEDU\tSALARY\tRECENCY")
	for i, s := range ranked {
		b := s.Breakdown
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.4f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			i+1, s.Candidate.Name, s.Candidate.Email, s.Candidate.Location, s.Score,
			b.SkillScore, b.RoleScore, b.EducationScore, b.SalaryEff, b.Recency)
		if explain {
			fmt.Fprintf(tw, "\t%s\n", strings.Join(s.Reasons(), " "))
		}
	}
	return tw.Flush()
}
