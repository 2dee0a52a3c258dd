// Package changelog selects one release from a keep-a-changelog document and
// renders it for a chat webhook, either as Slack mrkdwn or as Teams HTML.
package changelog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/announcer/pkg/langdetect"
	"github.com/yaklabco/announcer/pkg/mdast"
)

// Dialect is the output markup of a render.
type Dialect string

// Supported dialects.
const (
	DialectMrkdwn Dialect = "mrkdwn"
	DialectHTML   Dialect = "html"
)

// Errors returned by Render.
var (
	ErrNilDocument    = errors.New("nil document")
	ErrUnknownDialect = errors.New("unknown dialect")
)

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case DialectMrkdwn, DialectHTML:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// Options controls a single Render call.
type Options struct {
	// Version is the release label to select, matched exactly.
	Version string

	// Dialect selects the output markup.
	Dialect Dialect

	// SplitSections makes the HTML dialect return one fragment per
	// top-level block. Paragraphs stay with the fragment before them.
	SplitSections bool

	// Tables lays out tables for the mrkdwn dialect.
	// Nil selects PipeTableFormatter.
	Tables TableFormatter

	// DetectCodeLanguage lets the HTML dialect guess a language class for
	// code blocks without an info string.
	DetectCodeLanguage bool

	// Logger receives debug and warning output. Nil discards it.
	Logger *log.Logger
}

// Result is the rendered section of one version.
type Result struct {
	// Body is the whole rendered section, "" when the version is absent.
	Body string

	// DiffURL is the link target of the version heading, or "".
	DiffURL string

	// Sections holds the HTML fragments when SplitSections was requested.
	// Joined without separator they equal Body.
	Sections []string

	// Matched reports whether the version heading was found.
	Matched bool
}

// HasDiffURL reports whether the version heading carried a link.
func (r Result) HasDiffURL() bool {
	return r.DiffURL != ""
}

// Render selects opts.Version from doc and renders it in opts.Dialect.
// Each call uses its own renderer, so concurrent calls are safe as long as
// nobody mutates doc.
func Render(doc *mdast.Node, opts Options) (Result, error) {
	if doc == nil {
		return Result{}, ErrNilDocument
	}

	logger := loggerOrDiscard(opts.Logger)
	sel := SelectSection(doc, opts.Version, logger)
	res := Result{DiffURL: sel.DiffURL, Matched: sel.Matched}

	switch opts.Dialect {
	case DialectMrkdwn:
		tables := opts.Tables
		if tables == nil {
			tables = PipeTableFormatter{}
		}
		r := &mrkdwnRenderer{tables: tables, logger: logger}
		res.Body = joinRendered(sel.Nodes, r.render)

	case DialectHTML:
		r := &htmlRenderer{logger: logger}
		if opts.DetectCodeLanguage {
			r.detectLanguage = detectCodeLanguage
		}
		if opts.SplitSections {
			res.Sections = splitSections(sel.Nodes, r.render)
			res.Body = strings.Join(res.Sections, "")
		} else {
			res.Body = joinRendered(sel.Nodes, r.render)
		}

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownDialect, opts.Dialect)
	}

	logger.Debug("rendered section",
		"version", opts.Version,
		"dialect", opts.Dialect,
		"blocks", len(sel.Nodes),
		"diff_url", res.DiffURL,
	)

	return res, nil
}

func joinRendered(nodes []*mdast.Node, render func(*mdast.Node) string) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(render(n))
	}
	return sb.String()
}

// splitSections starts a new fragment at every block except paragraphs,
// which join the fragment before them.
func splitSections(nodes []*mdast.Node, render func(*mdast.Node) string) []string {
	var sections []string
	for _, n := range nodes {
		text := render(n)
		if n.Kind == mdast.NodeParagraph && len(sections) > 0 {
			sections[len(sections)-1] += text
			continue
		}
		sections = append(sections, text)
	}
	return sections
}

func detectCodeLanguage(code []byte) string {
	lang, ok := langdetect.Detect(code)
	if !ok {
		return ""
	}
	return lang
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard)
}
