// Package announce turns a rendered changelog section into a chat webhook
// payload and delivers it.
package announce

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/announcer/pkg/changelog"
	"github.com/yaklabco/announcer/pkg/mdast"
)

var (
	// ErrVersionNotFound is returned in strict mode when the changelog has
	// no heading for the requested version.
	ErrVersionNotFound = errors.New("version not found in changelog")

	// ErrDelivery wraps every failure to post to a webhook.
	ErrDelivery = errors.New("delivering announcement")
)

// Parser turns markdown into a tree.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.Source, error)
}

// Poster delivers a payload to one webhook.
type Poster interface {
	Post(ctx context.Context, webhookURL string, payload any) error
}

// Request describes one announcement.
type Request struct {
	Target   Target
	Webhooks []string

	// Project and Version name the release in the message title.
	Project string
	Version string

	// ChangelogPath is used for diagnostics only; Content is parsed.
	ChangelogPath string
	Content       []byte

	Slack SlackOptions

	// TeamsSections posts one card section per top-level block.
	TeamsSections bool

	Tables             changelog.TableFormatter
	DetectCodeLanguage bool

	// DryRun builds the payload without posting it.
	DryRun bool

	// Strict fails with ErrVersionNotFound instead of announcing an empty
	// section.
	Strict bool
}

// Announcement is the outcome of Announce.
type Announcement struct {
	Result changelog.Result

	// Payload is a SlackMessage or a TeamsMessage.
	Payload any

	// Delivered counts webhooks that accepted the payload.
	Delivered int
}

// Announcer renders changelog sections and posts them to webhooks.
// It is safe for concurrent use when its Parser and Poster are.
type Announcer struct {
	parser Parser
	poster Poster
	logger *log.Logger
}

// New creates an Announcer. A nil logger discards output.
func New(parser Parser, poster Poster, logger *log.Logger) *Announcer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Announcer{parser: parser, poster: poster, logger: logger}
}

// Prepare parses and renders req and builds the payload without posting it.
func (a *Announcer) Prepare(ctx context.Context, req Request) (*Announcement, error) {
	target := TargetSlack
	if req.Target != "" {
		parsed, err := ParseTarget(string(req.Target))
		if err != nil {
			return nil, err
		}
		target = parsed
	}

	src, err := a.parser.Parse(ctx, req.ChangelogPath, req.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", req.ChangelogPath, err)
	}

	res, err := changelog.Render(src.Root, changelog.Options{
		Version:            req.Version,
		Dialect:            target.Dialect(),
		SplitSections:      target == TargetTeams && req.TeamsSections,
		Tables:             req.Tables,
		DetectCodeLanguage: req.DetectCodeLanguage,
		Logger:             a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", req.ChangelogPath, err)
	}

	if !res.Matched {
		if req.Strict {
			return nil, fmt.Errorf("%w: %s in %s", ErrVersionNotFound, req.Version, req.ChangelogPath)
		}
		a.logger.Warn("version not found, announcing an empty section",
			"release", req.Version,
			"path", req.ChangelogPath,
		)
	}

	ann := &Announcement{Result: res}
	switch target {
	case TargetTeams:
		ann.Payload = BuildTeamsMessage(req.Project, req.Version, res)
	default:
		ann.Payload = BuildSlackMessage(req.Slack, req.Project, req.Version, res)
	}

	a.logger.Debug("prepared announcement",
		"target", target,
		"project", req.Project,
		"release", req.Version,
		"diff_url", res.DiffURL,
		"sections", len(res.Sections),
	)

	return ann, nil
}

// Announce prepares req and posts the payload to every webhook at once.
// The first delivery failure cancels the others and is returned.
func (a *Announcer) Announce(ctx context.Context, req Request) (*Announcement, error) {
	if len(req.Webhooks) == 0 && !req.DryRun {
		return nil, ErrNoWebhook
	}

	ann, err := a.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.DryRun {
		a.logger.Info("dry run, not posting", "webhooks", len(req.Webhooks))
		return ann, nil
	}

	delivered := make([]bool, len(req.Webhooks))
	g, gctx := errgroup.WithContext(ctx)
	for i, hook := range req.Webhooks {
		g.Go(func() error {
			if err := a.poster.Post(gctx, hook, ann.Payload); err != nil {
				return err
			}
			delivered[i] = true
			return nil
		})
	}
	err = g.Wait()

	for _, ok := range delivered {
		if ok {
			ann.Delivered++
		}
	}
	if err != nil {
		return ann, fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	a.logger.Info("announced release",
		"project", req.Project,
		"release", req.Version,
		"target", req.Target,
		"webhooks", ann.Delivered,
	)
	return ann, nil
}
