package export

import (
	"encoding/json"
	"os"
)

// DumpToTmpFile writes v as indented JSON to a new temp file and returns its path.
func DumpToTmpFile(prefix string, v any) (string, error) {
	file, err := os.CreateTemp("", prefix+"_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
