// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Preview header
	Title   lipgloss.Style
	Version lipgloss.Style
	Meta    lipgloss.Style

	// Preview body
	Label       lipgloss.Style
	Link        lipgloss.Style
	SectionRule lipgloss.Style

	// Outcome styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Version: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Meta:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		SectionRule: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:       plain,
		Version:     plain,
		Meta:        plain,
		Label:       plain,
		Link:        plain,
		SectionRule: plain,
		Success:     plain,
		Warning:     plain,
		Error:       plain,
		Dim:         plain,
		Bold:        plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return IsTerminal(f)
		}
		return false
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
