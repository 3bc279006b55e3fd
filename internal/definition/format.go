package definition

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a definition file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// Detect picks a format from the file extension, defaulting to JSON.
func Detect(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt", ".fsm", ".automaton":
		return FormatText
	}
	return FormatJSON
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "text", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown definition format %q", s)
}
