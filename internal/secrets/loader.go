package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// Env names an environment variable holding the secret. It is consulted
	// when File is not set and wins over Value when non-empty.
	Env string
	// File points to a file containing the secret value. When set it takes
	// precedence over Env and Value.
	File string
}

// Load returns the trimmed secret from the first configured source in the
// order File, Env, Value.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if secret := strings.TrimSpace(os.Getenv(env)); secret != "" {
			return secret, nil
		}
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.Env != "" {
			return "", fmt.Errorf("%s is not configured (checked $%s)", name, strings.TrimSpace(src.Env))
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
