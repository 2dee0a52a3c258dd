// Package reporter prints previews of rendered announcements.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/changelog"
)

// Preview is everything a reporter can show about one rendered version.
type Preview struct {
	Project       string
	Version       string
	Target        announce.Target
	ChangelogPath string
	Result        changelog.Result

	// Payload is the webhook body that would be posted. It may be nil.
	Payload any
}

// Links derives the "View changes" and "View CHANGELOG.md" targets.
func (p *Preview) Links() (changes, changelogURL string) {
	base, ref := announce.DeriveURLs(p.Result.DiffURL)
	return p.Result.DiffURL, announce.ChangelogURL(base, ref)
}

// Reporter writes a preview.
type Reporter interface {
	Report(ctx context.Context, preview *Preview) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSections:
		return NewSectionsReporter(opts), nil
	case FormatPayload:
		return NewPayloadReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
