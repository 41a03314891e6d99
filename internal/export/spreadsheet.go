package export

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/xuri/excelize/v2"

	"github.com/spigell/hire-picker/internal/candidate"
	"github.com/spigell/hire-picker/internal/scoring"
	"github.com/spigell/hire-picker/internal/team"
	"github.com/spigell/hire-picker/internal/utils"
)

const SheetName = "Picked Candidates"

var ErrEmptyTeam = errors.New("no candidates selected for export")

type column struct {
	title string
	width float64
}

var columns = []column{
	{"Name", 20},
	{"Email", 30},
	{"Location", 15},
	{"Phone", 15},
	{"Score (%)", 12},
	{"Expected Salary", 15},
	{"Skills", 40},
	{"Work Experience", 15},
	{"Education", 40},
	{"Years of Experience", 20},
	{"Companies Worked At", 40},
	{"Roles", 40},
}

// SpreadsheetFileName is the default file name for an export made at now.
func SpreadsheetFileName(now time.Time) string {
	return fmt.Sprintf("hiring-team-%s.xlsx", now.Format("2006-01-02"))
}

// Spreadsheet writes the team to an xlsx file at path. Scores are recomputed
// against pool without the diversity boost, followed by a TEAM SUMMARY row.
func Spreadsheet(path string, res team.Result, w scoring.Weights, pool []candidate.Candidate) error {
	if len(res.Team) == 0 {
		return ErrEmptyTeam
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := slice.Map(columns, func(_ int, c column) any { return c.title })
	for i, row := range append([][]any{header}, Rows(res, w, pool)...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i, c := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, c.width); err != nil {
			return fmt.Errorf("set width of %s: %w", name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}
	return nil
}

// Rows returns one row per member in team order plus the summary row.
func Rows(res team.Result, w scoring.Weights, pool []candidate.Candidate) [][]any {
	ctx := scoring.Context{Weights: w, All: pool}

	rows := make([][]any, 0, len(res.Team)+1)
	for _, c := range res.Team {
		score := scoring.Score(c, ctx).Score
		rows = append(rows, []any{
			c.Name,
			c.Email,
			c.Location,
			c.PhoneOrNA(),
			int(math.Round(score * 100)),
			utils.FormatUSD(c.Cost()),
			joinOr(c.Skills, ", "),
			len(c.WorkExperiences),
			joinOr(slice.Map(c.Education.Degrees, func(_ int, d candidate.Degree) string {
				return fmt.Sprintf("%s from %s", d.Degree, d.School)
			}), "; "),
			len(c.WorkExperiences),
			joinOr(slice.Map(c.WorkExperiences, func(_ int, e candidate.WorkExperience) string { return e.Company }), ", "),
			joinOr(slice.Map(c.WorkExperiences, func(_ int, e candidate.WorkExperience) string { return e.RoleName }), ", "),
		})
	}

	return append(rows, []any{
		"TEAM SUMMARY",
		"",
		"",
		"",
		0,
		utils.FormatUSD(res.Summary.Cost),
		fmt.Sprintf("%d unique skills", len(res.Summary.Skills)),
		0,
		"",
		0,
		fmt.Sprintf("%d locations", len(res.Summary.Locations)),
		"",
	})
}

func joinOr(items []string, sep string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, sep)
}
