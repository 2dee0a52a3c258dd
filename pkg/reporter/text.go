package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/announcer/internal/ui/pretty"
)

// TextReporter formats a preview as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, preview *Preview) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	writeHeader(bw, r.styles, preview)

	if !preview.Result.Matched {
		fmt.Fprint(bw, r.styles.FormatMissing(preview.Version))
		return nil
	}

	width := r.opts.ruleWidth()
	fmt.Fprint(bw, r.styles.FormatRule("", width))
	fmt.Fprint(bw, ensureNewline(preview.Result.Body))
	fmt.Fprint(bw, r.styles.FormatRule("", width))

	changes, changelogURL := preview.Links()
	fmt.Fprint(bw, r.styles.FormatLink("Changes", changes))
	fmt.Fprint(bw, r.styles.FormatLink("Changelog", changelogURL))

	return nil
}

func writeHeader(bw *bufio.Writer, styles *pretty.Styles, preview *Preview) {
	fmt.Fprint(bw, styles.FormatHeader(preview.Project, preview.Version))
	fmt.Fprint(bw, styles.FormatMeta(
		"target", preview.Target.String(),
		"dialect", string(preview.Target.Dialect()),
		"file", preview.ChangelogPath,
	))
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
