package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readRequest decodes a YAML or JSON request file into out. A path of "-" reads stdin.
func readRequest(path string, out any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}

	return decodeRequest(data, out)
}

// decodeRequest decodes YAML or JSON request data. JSON is accepted as a subset of YAML.
func decodeRequest(data []byte, out any) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse request file: %w", err)
	}
	return nil
}

// writeJSON writes v as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// ValidateFormat checks an output format name
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatTable:
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected %s or %s)", format, FormatJSON, FormatTable)
}
