package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-pro"
)

var sleep = time.Sleep

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models     contentModels
	modelName  string
	maxRetries int
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, model, maxRetries), nil
}

func newGenerator(models contentModels, model string, maxRetries int) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Generator{models: models, modelName: model, maxRetries: max(0, maxRetries)}
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// Temporary API failures are retried with a linear backoff.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			sleep(time.Duration(attempt) * time.Second)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err != nil {
			lastErr = fmt.Errorf("generate content: %w", err)
			if !temporary(err) {
				return "", lastErr
			}
			continue
		}

		return responseText(resp)
	}

	return "", lastErr
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func temporary(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	if resp != nil {
		for _, candidate := range resp.Candidates {
			if candidate == nil || candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part == nil {
					continue
				}
				text := strings.TrimSpace(part.Text)
				if text == "" {
					continue
				}
				if builder.Len() > 0 {
					builder.WriteString("\n")
				}
				builder.WriteString(text)
			}
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
