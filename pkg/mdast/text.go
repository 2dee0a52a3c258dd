package mdast

import "strings"

// PlainText returns the literal text of a subtree with all markup dropped.
// Leaves contribute their literal, breaks contribute a single space.
func PlainText(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	writePlain(&sb, n)
	return sb.String()
}

func writePlain(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case NodeSoftBreak, NodeHardBreak:
		sb.WriteByte(' ')
		return
	case NodeText, NodeCodeSpan, NodeHTMLInline, NodeCodeBlock, NodeHTMLBlock:
		sb.Write(n.Literal())
		return
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		writePlain(sb, child)
	}
}

// Source is one parsed Markdown document.
type Source struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Root is the AST root node (Document).
	Root *Node
}
