package reporter

import (
	"io"
	"os"

	"golang.org/x/term"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Rule widths in columns.
const (
	defaultTermWidth = 80
	maxRuleWidth     = 100
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Compact disables indentation for JSON formats.
	Compact bool

	// Width overrides the detected terminal width for separators.
	Width int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}

// ruleWidth returns the separator width: the explicit Width, else the
// terminal width capped at maxRuleWidth.
func (o Options) ruleWidth() int {
	if o.Width > 0 {
		return o.Width
	}
	return min(getTerminalWidth(o.Writer), maxRuleWidth)
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
