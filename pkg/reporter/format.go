package reporter

import "fmt"

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatSections Format = "sections"
	FormatPayload  Format = "payload"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "sections":
		return FormatSections, nil
	case "payload":
		return FormatPayload, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, sections, payload", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSections, FormatPayload:
		return true
	default:
		return false
	}
}
