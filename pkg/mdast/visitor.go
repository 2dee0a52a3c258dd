package mdast

// Visitor has one method per NodeKind. Implementations get a compile error
// when a kind is added here and they do not handle it.
type Visitor[T any] interface {
	VisitDocument(n *Node) T
	VisitParagraph(n *Node) T
	VisitHeading(n *Node) T
	VisitList(n *Node) T
	VisitListItem(n *Node) T
	VisitBlockquote(n *Node) T
	VisitCodeBlock(n *Node) T
	VisitThematicBreak(n *Node) T
	VisitHTMLBlock(n *Node) T
	VisitTable(n *Node) T
	VisitTableRow(n *Node) T
	VisitTableCell(n *Node) T
	VisitText(n *Node) T
	VisitEmphasis(n *Node) T
	VisitStrong(n *Node) T
	VisitStrikethrough(n *Node) T
	VisitCodeSpan(n *Node) T
	VisitLink(n *Node) T
	VisitAutoLink(n *Node) T
	VisitImage(n *Node) T
	VisitSoftBreak(n *Node) T
	VisitHardBreak(n *Node) T
	VisitHTMLInline(n *Node) T
	VisitRaw(n *Node) T
}

// Accept dispatches n to the visitor method for its kind.
// Kinds outside the defined range go to VisitRaw.
func Accept[T any](n *Node, v Visitor[T]) T {
	switch n.Kind {
	case NodeDocument:
		return v.VisitDocument(n)
	case NodeParagraph:
		return v.VisitParagraph(n)
	case NodeHeading:
		return v.VisitHeading(n)
	case NodeList:
		return v.VisitList(n)
	case NodeListItem:
		return v.VisitListItem(n)
	case NodeBlockquote:
		return v.VisitBlockquote(n)
	case NodeCodeBlock:
		return v.VisitCodeBlock(n)
	case NodeThematicBreak:
		return v.VisitThematicBreak(n)
	case NodeHTMLBlock:
		return v.VisitHTMLBlock(n)
	case NodeTable:
		return v.VisitTable(n)
	case NodeTableRow:
		return v.VisitTableRow(n)
	case NodeTableCell:
		return v.VisitTableCell(n)
	case NodeText:
		return v.VisitText(n)
	case NodeEmphasis:
		return v.VisitEmphasis(n)
	case NodeStrong:
		return v.VisitStrong(n)
	case NodeStrikethrough:
		return v.VisitStrikethrough(n)
	case NodeCodeSpan:
		return v.VisitCodeSpan(n)
	case NodeLink:
		return v.VisitLink(n)
	case NodeAutoLink:
		return v.VisitAutoLink(n)
	case NodeImage:
		return v.VisitImage(n)
	case NodeSoftBreak:
		return v.VisitSoftBreak(n)
	case NodeHardBreak:
		return v.VisitHardBreak(n)
	case NodeHTMLInline:
		return v.VisitHTMLInline(n)
	default:
		return v.VisitRaw(n)
	}
}
