package candidate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed candidates.schema.json
var schemaSource []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaSource))
})

// ValidationError lists every schema violation found in a candidates document.
type ValidationError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("candidates validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Load reads and parses a candidates JSON file.
func Load(path string) ([]Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidates file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse validates a JSON array of candidate records against the embedded
// schema and decodes it. Blank input is an empty pool.
func Parse(data []byte) ([]Candidate, error) {
	if strings.TrimSpace(string(data)) == "" {
		return []Candidate{}, nil
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	var candidates []Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}

// Validate checks a candidates document against the embedded schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load candidates schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("invalid candidates json: %w", err)
	}

	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return verr
}
