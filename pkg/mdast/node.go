package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeLink
	NodeAutoLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeHTMLBlock:     "HTMLBlock",
	NodeTable:         "Table",
	NodeTableRow:      "TableRow",
	NodeTableCell:     "TableCell",
	NodeText:          "Text",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeStrikethrough: "Strikethrough",
	NodeCodeSpan:      "CodeSpan",
	NodeLink:          "Link",
	NodeAutoLink:      "AutoLink",
	NodeImage:         "Image",
	NodeSoftBreak:     "SoftBreak",
	NodeHardBreak:     "HardBreak",
	NodeHTMLInline:    "HTMLInline",
	NodeRaw:           "Raw",
}

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "NodeKind(unknown)"
}

// Kinds returns every defined node kind in declaration order.
func Kinds() []NodeKind {
	kinds := make([]NodeKind, 0, nodeKindCount)
	for k := range nodeKindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
// Renderers only read the tree; they never mutate it.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeTable, NodeTableRow, NodeTableCell:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeStrikethrough, NodeCodeSpan,
		NodeLink, NodeAutoLink, NodeImage, NodeSoftBreak, NodeHardBreak, NodeHTMLInline:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// HeadingLevel returns the heading level, or 0 for non-heading nodes.
func (n *Node) HeadingLevel() int {
	if n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// Literal returns the literal payload of a leaf node: text for Text and
// CodeSpan, code for CodeBlock, markup for HTML nodes. Nil otherwise.
func (n *Node) Literal() []byte {
	switch {
	case n.Inline != nil && n.Inline.Text != nil:
		return n.Inline.Text
	case n.Block != nil && n.Block.CodeBlock != nil:
		return n.Block.CodeBlock.Literal
	case n.Block != nil && n.Block.HTML != nil:
		return n.Block.HTML
	default:
		return nil
	}
}

// Destination returns the target of a Link, AutoLink, or Image node.
func (n *Node) Destination() string {
	if n.Inline == nil || n.Inline.Link == nil {
		return ""
	}
	return n.Inline.Link.Destination
}
