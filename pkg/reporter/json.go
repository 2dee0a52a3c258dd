package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoPayload is returned by the payload format when nothing was built.
var ErrNoPayload = errors.New("no payload to report")

// JSONOutput is the JSON shape of a preview.
type JSONOutput struct {
	Project      string   `json:"project,omitempty"`
	Version      string   `json:"version"`
	Target       string   `json:"target"`
	Dialect      string   `json:"dialect"`
	Changelog    string   `json:"changelog,omitempty"`
	Matched      bool     `json:"matched"`
	DiffURL      string   `json:"diffUrl,omitempty"`
	ChangelogURL string   `json:"changelogUrl,omitempty"`
	Body         string   `json:"body"`
	Sections     []string `json:"sections,omitempty"`
}

// JSONReporter formats a preview as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, preview *Preview) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	changes, changelogURL := preview.Links()
	output := JSONOutput{
		Project:      preview.Project,
		Version:      preview.Version,
		Target:       preview.Target.String(),
		Dialect:      string(preview.Target.Dialect()),
		Changelog:    preview.ChangelogPath,
		Matched:      preview.Result.Matched,
		DiffURL:      changes,
		ChangelogURL: changelogURL,
		Body:         preview.Result.Body,
		Sections:     preview.Result.Sections,
	}

	return writeJSON(r.opts, output)
}

// PayloadReporter prints the webhook body exactly as it would be posted,
// indented unless Compact is set.
type PayloadReporter struct {
	opts Options
}

// NewPayloadReporter creates a new payload reporter.
func NewPayloadReporter(opts Options) *PayloadReporter {
	return &PayloadReporter{opts: opts}
}

// Report implements Reporter.
func (r *PayloadReporter) Report(ctx context.Context, preview *Preview) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if preview.Payload == nil {
		return fmt.Errorf("report: %w", ErrNoPayload)
	}
	return writeJSON(r.opts, preview.Payload)
}

// writeJSON encodes v without HTML escaping so mrkdwn links and Teams
// markup stay readable.
func writeJSON(opts Options, v any) (err error) {
	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(bw)
	encoder.SetEscapeHTML(false)
	if !opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
