package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/hire-picker/internal/ai"
	"github.com/spigell/hire-picker/internal/logger"
	"github.com/spigell/hire-picker/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

var verdicts = []string{"approve", "revise", "reject"}

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Reviewer asks Gemini for a verdict on a picked team.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

func NewReviewer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (r *Reviewer) Review(ctx context.Context, brief ai.TeamBrief) (*ai.Review, error) {
	if len(brief.Members) == 0 {
		return nil, errors.New("team is empty")
	}

	teamJSON, err := json.MarshalIndent(brief.Members, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal team payload: %w", err)
	}

	constraintsJSON, err := json.MarshalIndent(map[string]any{
		"constraints": brief.Constraints,
		"skills":      brief.Skills,
		"locations":   brief.Locations,
		"totalCost":   brief.TotalCost,
		"manual":      brief.Manual,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal constraints payload: %w", err)
	}

	prompt := buildPrompt(string(teamJSON), string(constraintsJSON))

	r.logger.Debug("gemini generate content request",
		zap.Int("team_size", len(brief.Members)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	review.Raw = raw
	return review, nil
}

func buildPrompt(teamJSON, constraintsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Constraints:\n{{CONSTRAINTS_JSON}}\n\nTeam:\n{{TEAM_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{TEAM_JSON}}", teamJSON)
	prompt = strings.ReplaceAll(prompt, "{{CONSTRAINTS_JSON}}", constraintsJSON)
	return prompt
}

func parseResponse(raw string) (*ai.Review, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	verdict := strings.ToLower(coerceString(data["verdict"]))
	if !containsString(verdicts, verdict) {
		return nil, fmt.Errorf("unexpected verdict %q", verdict)
	}

	return &ai.Review{
		Verdict:   verdict,
		Strengths: coerceStrings(data["strengths"]),
		Risks:     coerceStrings(data["risks"]),
		Summary:   coerceString(data["summary"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// coerceStrings accepts either a JSON list or a single string.
func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
