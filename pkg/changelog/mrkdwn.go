package changelog

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/announcer/pkg/mdast"
)

// Placeholders emitted for nodes that only make sense inside a parent the
// compact dialect flattens on its own.
const (
	placeholderListItem    = "list_item_uncalled"
	placeholderTableRow    = "table_row_unsupported"
	placeholderTableCell   = "table_cell_unsupported"
	placeholderUnsupported = "unsupported"
)

const codeFence = "```\n"

// mrkdwnRenderer renders nodes as Slack mrkdwn.
type mrkdwnRenderer struct {
	tables TableFormatter
	logger *log.Logger
}

var _ mdast.Visitor[string] = (*mrkdwnRenderer)(nil)

func (r *mrkdwnRenderer) render(n *mdast.Node) string {
	return mdast.Accept[string](n, r)
}

func (r *mrkdwnRenderer) inner(n *mdast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		sb.WriteString(r.render(child))
	}
	return sb.String()
}

func (r *mrkdwnRenderer) VisitDocument(n *mdast.Node) string  { return r.inner(n) }
func (r *mrkdwnRenderer) VisitParagraph(n *mdast.Node) string { return r.inner(n) }

// VisitHeading renders level 3 as a bold line and every other level as a
// plain line. Markup inside the heading is dropped.
func (r *mrkdwnRenderer) VisitHeading(n *mdast.Node) string {
	text := mdast.PlainText(n)
	if n.HeadingLevel() == 3 {
		return "*" + text + "*\n"
	}
	return text + "\n"
}

func (r *mrkdwnRenderer) VisitList(n *mdast.Node) string {
	var sb strings.Builder
	for _, entry := range FlattenList(n, 0, r.render) {
		sb.WriteString(entry.Format())
	}
	return sb.String()
}

func (r *mrkdwnRenderer) VisitListItem(*mdast.Node) string {
	return placeholderListItem
}

func (r *mrkdwnRenderer) VisitBlockquote(n *mdast.Node) string {
	return "> " + r.inner(n) + "\n"
}

func (r *mrkdwnRenderer) VisitCodeBlock(n *mdast.Node) string {
	return codeFence + string(n.Literal()) + codeFence
}

func (r *mrkdwnRenderer) VisitThematicBreak(*mdast.Node) string { return "---\n" }

func (r *mrkdwnRenderer) VisitHTMLBlock(n *mdast.Node) string { return string(n.Literal()) }

// VisitTable fences the formatter's layout so it shows in a fixed-width font.
func (r *mrkdwnRenderer) VisitTable(n *mdast.Node) string {
	headers, rows, aligns := tableCells(n)
	return codeFence + r.tables.FormatTable(headers, rows, aligns) + "\n" + codeFence
}

func (r *mrkdwnRenderer) VisitTableRow(*mdast.Node) string  { return placeholderTableRow }
func (r *mrkdwnRenderer) VisitTableCell(*mdast.Node) string { return placeholderTableCell }

func (r *mrkdwnRenderer) VisitText(n *mdast.Node) string {
	return escapeText(string(n.Literal()))
}

func (r *mrkdwnRenderer) VisitEmphasis(n *mdast.Node) string      { return "_" + r.inner(n) + "_" }
func (r *mrkdwnRenderer) VisitStrong(n *mdast.Node) string        { return "*" + r.inner(n) + "*" }
func (r *mrkdwnRenderer) VisitStrikethrough(n *mdast.Node) string { return "~" + r.inner(n) + "~" }

// VisitCodeSpan keeps the literal unescaped.
func (r *mrkdwnRenderer) VisitCodeSpan(n *mdast.Node) string {
	return "`" + string(n.Literal()) + "`"
}

func (r *mrkdwnRenderer) VisitLink(n *mdast.Node) string {
	return "<" + n.Destination() + "|" + escapeText(mdast.PlainText(n)) + ">"
}

func (r *mrkdwnRenderer) VisitAutoLink(n *mdast.Node) string {
	target := autoLinkTarget(n.Destination(), n.Inline != nil && n.Inline.Link != nil && n.Inline.Link.Email)
	return "<" + target + "|" + escapeText(mdast.PlainText(n)) + ">"
}

// VisitImage links to the image source; the alt text is not shown.
func (r *mrkdwnRenderer) VisitImage(n *mdast.Node) string {
	src := n.Destination()
	return "<" + src + "|" + escapeText(src) + ">"
}

func (r *mrkdwnRenderer) VisitSoftBreak(*mdast.Node) string { return "\n" }
func (r *mrkdwnRenderer) VisitHardBreak(*mdast.Node) string { return "\n" }

func (r *mrkdwnRenderer) VisitHTMLInline(n *mdast.Node) string { return string(n.Literal()) }

func (r *mrkdwnRenderer) VisitRaw(n *mdast.Node) string {
	r.logger.Debug("rendering placeholder", "kind", n.Kind)
	return placeholderUnsupported
}
