package changelog

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/announcer/pkg/mdast"
)

// htmlRenderer renders nodes as HTML fragments for Teams message cards.
type htmlRenderer struct {
	// detectLanguage guesses a fence language when the info string is empty.
	// It returns "" when unsure. Nil disables detection.
	detectLanguage func(code []byte) string
	logger         *log.Logger
}

var _ mdast.Visitor[string] = (*htmlRenderer)(nil)

func (r *htmlRenderer) render(n *mdast.Node) string {
	return mdast.Accept[string](n, r)
}

func (r *htmlRenderer) inner(n *mdast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		sb.WriteString(r.render(child))
	}
	return sb.String()
}

// blocks renders the children of n joined by newlines.
func (r *htmlRenderer) blocks(n *mdast.Node) string {
	parts := make([]string, 0, n.ChildCount())
	for child := n.FirstChild; child != nil; child = child.Next {
		parts = append(parts, r.render(child))
	}
	return strings.Join(parts, "\n")
}

func (r *htmlRenderer) VisitDocument(n *mdast.Node) string { return r.inner(n) }

// VisitParagraph drops the <p> wrapper inside tight list items.
func (r *htmlRenderer) VisitParagraph(n *mdast.Node) string {
	if inTightList(n) {
		return r.inner(n)
	}
	return "<p>" + r.inner(n) + "</p>"
}

func (r *htmlRenderer) VisitHeading(n *mdast.Node) string {
	tag := "h" + strconv.Itoa(n.HeadingLevel())
	return "<" + tag + ">" + r.inner(n) + "</" + tag + ">"
}

func (r *htmlRenderer) VisitList(n *mdast.Node) string {
	tag, attr := "ul", ""
	if n.Block != nil {
		if start, ok := n.Block.List.Start(); ok {
			tag = "ol"
			if start != 1 {
				attr = ` start="` + strconv.Itoa(start) + `"`
			}
		}
	}
	return "<" + tag + attr + ">\n" + r.blocks(n) + "\n</" + tag + ">"
}

// VisitListItem puts block children on their own lines. In a tight list a
// leading or trailing paragraph hugs the <li> tag instead.
func (r *htmlRenderer) VisitListItem(n *mdast.Node) string {
	if !n.HasChildren() {
		return "<li></li>"
	}
	open, closing := "\n", "\n"
	if isTightList(n.Parent) {
		if n.FirstChild.Kind == mdast.NodeParagraph {
			open = ""
		}
		if n.LastChild.Kind == mdast.NodeParagraph {
			closing = ""
		}
	}
	return "<li>" + open + r.blocks(n) + closing + "</li>"
}

func (r *htmlRenderer) VisitBlockquote(n *mdast.Node) string {
	return "<blockquote>\n" + r.blocks(n) + "\n</blockquote>"
}

func (r *htmlRenderer) VisitCodeBlock(n *mdast.Node) string {
	var lang string
	if n.Block != nil && n.Block.CodeBlock != nil {
		lang = n.Block.CodeBlock.Language
	}
	if lang == "" && r.detectLanguage != nil {
		lang = r.detectLanguage(n.Literal())
		if lang != "" {
			r.logger.Debug("detected code language", "language", lang)
		}
	}

	attr := ""
	if lang != "" {
		attr = ` class="language-` + escapeAttr(lang) + `"`
	}
	return "<pre><code" + attr + ">" + escapeText(string(n.Literal())) + "</code></pre>"
}

func (r *htmlRenderer) VisitThematicBreak(*mdast.Node) string { return "<hr />" }

func (r *htmlRenderer) VisitHTMLBlock(n *mdast.Node) string {
	return strings.TrimSuffix(string(n.Literal()), "\n")
}

func (r *htmlRenderer) VisitTable(n *mdast.Node) string {
	var head, body strings.Builder
	for row := n.FirstChild; row != nil; row = row.Next {
		if row.Block != nil && row.Block.Header {
			head.WriteString(r.render(row))
			continue
		}
		body.WriteString(r.render(row))
	}

	var sb strings.Builder
	sb.WriteString("<table>\n")
	if head.Len() > 0 {
		sb.WriteString("<thead>\n" + head.String() + "</thead>\n")
	}
	sb.WriteString("<tbody>\n" + body.String() + "</tbody>\n")
	sb.WriteString("</table>")
	return sb.String()
}

func (r *htmlRenderer) VisitTableRow(n *mdast.Node) string {
	return "<tr>\n" + r.inner(n) + "</tr>\n"
}

func (r *htmlRenderer) VisitTableCell(n *mdast.Node) string {
	tag := "td"
	if row := n.Parent; row != nil && row.Block != nil && row.Block.Header {
		tag = "th"
	}
	attr := ""
	if n.Block != nil && n.Block.Alignment != mdast.AlignNone {
		attr = ` align="` + n.Block.Alignment.String() + `"`
	}
	return "<" + tag + attr + ">" + r.inner(n) + "</" + tag + ">\n"
}

func (r *htmlRenderer) VisitText(n *mdast.Node) string {
	return escapeText(string(n.Literal()))
}

func (r *htmlRenderer) VisitEmphasis(n *mdast.Node) string {
	return "<em>" + r.inner(n) + "</em>"
}

func (r *htmlRenderer) VisitStrong(n *mdast.Node) string {
	return "<strong>" + r.inner(n) + "</strong>"
}

func (r *htmlRenderer) VisitStrikethrough(n *mdast.Node) string {
	return "<del>" + r.inner(n) + "</del>"
}

func (r *htmlRenderer) VisitCodeSpan(n *mdast.Node) string {
	return "<code>" + escapeText(string(n.Literal())) + "</code>"
}

func (r *htmlRenderer) VisitLink(n *mdast.Node) string {
	return `<a href="` + escapeAttr(n.Destination()) + `"` + titleAttr(n) + ">" + r.inner(n) + "</a>"
}

func (r *htmlRenderer) VisitAutoLink(n *mdast.Node) string {
	email := n.Inline != nil && n.Inline.Link != nil && n.Inline.Link.Email
	target := autoLinkTarget(n.Destination(), email)
	return `<a href="` + escapeAttr(target) + `">` + r.inner(n) + "</a>"
}

func (r *htmlRenderer) VisitImage(n *mdast.Node) string {
	return `<img src="` + escapeAttr(n.Destination()) + `" alt="` + escapeAttr(mdast.PlainText(n)) + `"` + titleAttr(n) + " />"
}

func (r *htmlRenderer) VisitSoftBreak(*mdast.Node) string { return "\n" }
func (r *htmlRenderer) VisitHardBreak(*mdast.Node) string { return "<br />\n" }

func (r *htmlRenderer) VisitHTMLInline(n *mdast.Node) string { return string(n.Literal()) }

// VisitRaw falls back to the escaped text of the node.
func (r *htmlRenderer) VisitRaw(n *mdast.Node) string {
	r.logger.Debug("rendering raw node as text", "kind", n.Kind)
	return escapeText(mdast.PlainText(n))
}

func titleAttr(n *mdast.Node) string {
	if n.Inline == nil || n.Inline.Link == nil || n.Inline.Link.Title == "" {
		return ""
	}
	return ` title="` + escapeAttr(n.Inline.Link.Title) + `"`
}

func isTightList(list *mdast.Node) bool {
	return list != nil && list.Kind == mdast.NodeList &&
		list.Block != nil && list.Block.List != nil && list.Block.List.Tight
}

// inTightList reports whether n is a direct child of an item in a tight list.
func inTightList(n *mdast.Node) bool {
	item := n.Parent
	return item != nil && item.Kind == mdast.NodeListItem && isTightList(item.Parent)
}
