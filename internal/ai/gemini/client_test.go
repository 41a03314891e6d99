package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"google.golang.org/genai"
)

type fakeModels struct {
	responses []fakeResponse
	calls     int
	models    []string
}

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.models = append(f.models, model)
	if f.calls >= len(f.responses) {
		return nil, errors.New("unexpected call")
	}
	res := f.responses[f.calls]
	f.calls++
	return res.resp, res.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func noSleep(t *testing.T) {
	t.Helper()
	original := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = original })
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	noSleep(t)

	models := &fakeModels{responses: []fakeResponse{
		{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}},
		{resp: textResponse(" first ", "", "second")},
	}}
	gen := newGenerator(models, "gemini-pro", 2)

	out, err := gen.GenerateContent(context.Background(), "review this team")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "first\nsecond" {
		t.Fatalf("unexpected output: %q", out)
	}
	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
	if models.models[0] != "gemini-pro" {
		t.Fatalf("unexpected model: %s", models.models[0])
	}
}

func TestGeneratorStopsOnPermanentError(t *testing.T) {
	noSleep(t)

	models := &fakeModels{responses: []fakeResponse{
		{err: genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}},
		{resp: textResponse("never")},
	}}
	gen := newGenerator(models, "", 3)

	if _, err := gen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error")
	}
	if models.calls != 1 {
		t.Fatalf("expected a single call, got %d", models.calls)
	}
	if gen.Model() != defaultModel {
		t.Fatalf("expected default model, got %s", gen.Model())
	}
}

func TestGeneratorGivesUpAfterRetries(t *testing.T) {
	noSleep(t)

	tempErr := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	models := &fakeModels{responses: []fakeResponse{{err: tempErr}, {err: tempErr}}}
	gen := newGenerator(models, "gemini-pro", 1)

	_, err := gen.GenerateContent(context.Background(), "prompt")
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected wrapped api error, got %v", err)
	}
	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
}

func TestGeneratorRejectsEmptyInputAndOutput(t *testing.T) {
	gen := newGenerator(&fakeModels{responses: []fakeResponse{{resp: textResponse("  ")}}}, "m", 0)

	if _, err := gen.GenerateContent(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
	if _, err := gen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for empty response")
	}

	var nilGen *Generator
	if _, err := nilGen.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatalf("expected error for nil generator")
	}
}
