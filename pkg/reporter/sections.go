package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/announcer/internal/ui/pretty"
)

// SectionsReporter prints each card section under its own separator, the
// way a Teams client lays them out.
type SectionsReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewSectionsReporter creates a new sections reporter.
func NewSectionsReporter(opts Options) *SectionsReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SectionsReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
	}
}

// Report implements Reporter. Without split sections the body is shown as
// a single section.
func (r *SectionsReporter) Report(ctx context.Context, preview *Preview) (err error) {
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

	sections := preview.Result.Sections
	if len(sections) == 0 && preview.Result.Body != "" {
		sections = []string{preview.Result.Body}
	}

	width := r.opts.ruleWidth()
	for i, section := range sections {
		label := fmt.Sprintf("section %d/%d", i+1, len(sections))
		fmt.Fprint(bw, r.styles.FormatRule(label, width))
		fmt.Fprint(bw, ensureNewline(section))
	}

	return nil
}
