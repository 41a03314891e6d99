package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/export"
	"github.com/spigell/hire-picker/internal/logger"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/team"
)

const (
	PromptAccept              = "Accept and export"
	PromptNo                  = "No"
	PromptBack                = "back"
	PromptDone                = "done"
	PromptReportByLocation    = "Report by location"
	PromptManualSelection     = "Select team in manual mode"
	PromptReview              = "Ask AI for a review"
	PromptTeamToFile          = "Dump team to file"
	PromptAppendToExcludeFile = "Append team to exclude file"
)

var errExit = errors.New("exit requested")

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a hiring team from the filtered candidate pool",
	Run: func(cmd *cobra.Command, _ []string) {
		pick(cmd)
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation, export the picked team right away")
}

// session is the state shared by the interactive actions.
type session struct {
	ctx      context.Context
	log      *zap.Logger
	config   *Config
	pool     []candidate.Candidate
	result   team.Result
	reviewer ai.Reviewer
	review   *ai.Review
}

func pick(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hire-picker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	logWeights(logger, config.Weights)

	pool, err := loadPool(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	if len(pool) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	reviewer, err := newReviewer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI review", zap.Error(err))
	}

	s := &session{
		ctx:      ctx,
		log:      logger,
		config:   config,
		pool:     pool,
		reviewer: reviewer,
		result:   team.Resolve(pool, config.Selected, config.Weights, config.Constraints),
	}
	s.logTeam()

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	action := PromptAccept
	for {
		if !autoApprove {
			prompt := promptui.Select{
				Label: "Proceed?",
				Items: s.actions(),
			}
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := s.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) actions() []string {
	items := []string{PromptAccept, PromptNo, PromptReportByLocation, PromptManualSelection, PromptTeamToFile}
	if s.reviewer != nil {
		items = append(items, PromptReview)
	}
	if s.config.Filters.ExcludeFile != "" && len(s.result.Team) > 0 {
		items = append(items, PromptAppendToExcludeFile)
	}
	return items
}

func (s *session) handleAction(action string) error {
	switch action {
	case PromptAccept:
		if err := s.export(); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		s.log.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByLocation:
		pretty, _ := json.MarshalIndent(export.ByLocation(s.result), "", "  ")
		s.log.Info(string(pretty), zap.Int("team size", len(s.result.Team)))
		return nil
	case PromptManualSelection:
		return s.manualSelection()
	case PromptReview:
		return s.runReview()
	case PromptTeamToFile:
		filename, err := export.DumpToTmpFile("hire-picker-team", s.result)
		if err != nil {
			return fmt.Errorf("dump team to file: %w", err)
		}
		s.log.Info("dumping team to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return s.appendToExcludeFile()
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// logTeam prints the picked team and warns about unmet constraints.
func (s *session) logTeam() {
	res, c := s.result, s.config.Constraints

	for _, m := range res.Members {
		s.log.Info("team member", logger.CandidateFields(m.Candidate.Email, m.Candidate.Location, m.Score)...)
	}
	for _, sw := range res.Swaps {
		s.log.Info("location swap",
			zap.String("out", sw.Out.Candidate.Email),
			zap.String("in", sw.In.Candidate.Email),
			zap.String("new location", sw.In.Candidate.Location),
		)
	}

	fields := append(logger.TeamFields(len(res.Team), res.DistinctLocations(), res.TotalCost),
		zap.Strings("skills", res.Summary.Skills),
		zap.Bool("manual", res.Manual),
	)
	s.log.Info("team picked", fields...)

	if n := res.Shortfall(c); n > 0 {
		s.log.Warn("team is smaller than requested",
			zap.Int("missing", n),
			zap.Int("team size", c.TeamSize),
		)
	}
	if !res.Manual && len(res.Team) > 0 && res.DistinctLocations() < c.MinLocations {
		s.log.Warn("team does not cover the minimum number of locations",
			zap.Int("covered", res.DistinctLocations()),
			zap.Int("min locations", c.MinLocations),
		)
	}
}

func (s *session) runReview() error {
	if s.reviewer == nil {
		return nil
	}

	review, err := s.reviewer.Review(s.ctx, ai.NewTeamBrief(s.result, s.config.Constraints))
	if err != nil {
		s.log.Warn("AI review failed", zap.Error(err))
		return nil
	}
	s.review = review

	s.log.Info("AI review",
		zap.String("verdict", review.Verdict),
		zap.Strings("strengths", review.Strengths),
		zap.Strings("risks", review.Risks),
		zap.String("summary", review.Summary),
	)
	return nil
}

// export writes the markdown report and the spreadsheet. A review is
// requested first when AI is enabled and none was made yet.
func (s *session) export() error {
	if len(s.result.Team) == 0 {
		s.log.Warn("nothing to export", zap.String("reason", "team is empty"))
		return nil
	}

	if s.review == nil {
		if err := s.runReview(); err != nil {
			return err
		}
	}

	now := time.Now()

	reportPath := s.config.Export.Report
	if reportPath == "" {
		reportPath = export.ReportFileName
	}
	file, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	if err := export.Markdown(file, export.Report{
		GeneratedAt: now,
		Constraints: s.config.Constraints,
		Result:      s.result,
		Review:      s.review,
	}); err != nil {
		return err
	}
	s.log.Info("report written", zap.String("filename", reportPath))

	sheetPath := s.config.Export.Spreadsheet
	if sheetPath == "" {
		sheetPath = export.SpreadsheetFileName(now)
	}
	if err := export.Spreadsheet(sheetPath, s.result, s.config.Weights, s.pool); err != nil {
		return err
	}
	s.log.Info("spreadsheet written", zap.String("filename", sheetPath))

	return nil
}

func (s *session) appendToExcludeFile() error {
	excludeFile := s.config.Filters.ExcludeFile

	excluded, err := candidate.GetExcludedFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(candidate.NewPool(s.result.Team).ToExcluded(candidate.ExcludeActorUser, "picked"))

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	s.log.Info("appended to exclude file", zap.String("filename", excludeFile), zap.Int("count", len(s.result.Team)))
	return nil
}

// manualSelection lets the user toggle candidates until the team is
// complete, then resolves the selection like the selected config key does.
func (s *session) manualSelection() error {
	ranked := scoring.Rank(s.pool, s.config.Weights)
	selected := candidate.NewPool(s.result.Team).Emails()

	for {
		items := make([]string, 0, len(ranked)+2)
		for _, r := range ranked {
			mark := " "
			if slices.Contains(selected, r.Candidate.Email) {
				mark = "x"
			}
			items = append(items, fmt.Sprintf("[%s] %s %s / %s / %.4f",
				mark, r.Candidate.Email, r.Candidate.Name, r.Candidate.Location, r.Score,
			))
		}
		items = append(items, PromptDone, PromptBack)

		prompt := promptui.Select{
			Label: fmt.Sprintf("Toggle candidates (%d/%d selected) and choose %s", len(selected), s.config.Constraints.TeamSize, PromptDone),
			Items: items,
			Size:  10,
		}

		_, choice, err := prompt.Run()
		if err != nil {
			return err
		}

		switch choice {
		case PromptBack:
			return nil
		case PromptDone:
			if len(selected) != s.config.Constraints.TeamSize {
				s.log.Warn("selection does not match the team size, picking automatically",
					zap.Int("selected", len(selected)),
					zap.Int("team size", s.config.Constraints.TeamSize),
				)
			}
			s.result = team.Resolve(s.pool, selected, s.config.Weights, s.config.Constraints)
			s.review = nil
			s.logTeam()
			return nil
		default:
			email := strings.Fields(choice[len("[x] "):])[0]
			if i := slices.Index(selected, email); i >= 0 {
				selected = slices.Delete(selected, i, i+1)
			} else {
				selected = append(selected, email)
			}
		}
	}
}
