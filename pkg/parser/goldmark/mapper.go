package goldmark

import (
	"bytes"

	"github.com/yaklabco/announcer/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
// Line breaks carried as flags on goldmark text become sibling break nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}

		textNode, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		switch {
		case textNode.HardLineBreak():
			mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
		case textNode.SoftLineBreak():
			mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gmn.Level)
		m.mapChildren(gmn, node)

	case *ast.Paragraph, *ast.TextBlock:
		// Link reference definitions leave an empty paragraph behind.
		if gmNode.Lines().Len() == 0 {
			return nil
		}
		// Tight list items hold a TextBlock; it renders like a paragraph.
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
			Literal:  m.linesValue(gmn.Lines()),
			Indented: true,
		})

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(m.textValue(gmn))

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(copyContent(gmn.Value))

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmn, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmn, node)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)
		var literal []byte
		for i := range gmn.Segments.Len() {
			seg := gmn.Segments.At(i)
			literal = append(literal, seg.Value(m.content)...)
		}
		node.Inline = mdast.NewInlineAttrs().WithText(literal)

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeStrikethrough)
		m.mapChildren(gmn, node)

	case *east.TaskCheckBox:
		marker := "[ ] "
		if gmn.IsChecked {
			marker = "[x] "
		}
		node = mdast.NewText(marker)

	case *east.Table:
		node = m.mapTable(gmn)

	case *east.TableHeader:
		// goldmark puts header cells directly under TableHeader.
		node = mdast.NewNode(mdast.NodeTableRow)
		node.Block = &mdast.BlockAttrs{Header: true}
		m.mapChildren(gmn, node)

	case *east.TableRow:
		node = mdast.NewNode(mdast.NodeTableRow)
		node.Block = mdast.NewBlockAttrs()
		m.mapChildren(gmn, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeTableCell)
		node.Block = &mdast.BlockAttrs{Alignment: mapAlignment(gmn.Alignment)}
		m.mapChildren(gmn, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(listAttrs)
	m.mapChildren(list, node)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	codeAttrs := &mdast.CodeBlockAttrs{
		Literal: m.linesValue(codeBlock.Lines()),
	}
	if codeBlock.Info != nil {
		codeAttrs.Info = string(codeBlock.Info.Value(m.content))
	}
	if lang := codeBlock.Language(m.content); lang != nil {
		codeAttrs.Language = string(lang)
	}

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(codeAttrs)
	return node
}

// mapHTMLBlock keeps the block's raw markup, including a closing line.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLBlock)
	literal := m.linesValue(block.Lines())
	if block.HasClosure() {
		literal = append(literal, block.ClosureLine.Value(m.content)...)
	}
	node.Block = &mdast.BlockAttrs{HTML: literal}
	return node
}

// mapEmphasis converts a goldmark Emphasis node to an mdast node.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	var node *mdast.Node

	if emphasis.Level == 2 {
		node = mdast.NewNode(mdast.NodeStrong)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(2)
	} else {
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(1)
	}

	m.mapChildren(emphasis, node)
	return node
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast leaf.
// Line endings inside a code span become spaces.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var literal []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			literal = append(literal, c.Value(m.content)...)
		case *ast.String:
			literal = append(literal, c.Value...)
		}
	}
	literal = bytes.ReplaceAll(literal, []byte("\n"), []byte(" "))

	node.Inline = mdast.NewInlineAttrs().WithText(literal)
	return node
}

// mapAutoLink converts a goldmark AutoLink to an mdast node with its label
// as a single text child.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeAutoLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination: string(al.URL(m.content)),
		Email:       al.AutoLinkType == ast.AutoLinkEmail,
	})
	mdast.AppendChild(node, mdast.NewText(string(al.Label(m.content))))
	return node
}

// mapTable converts a GFM Table to an mdast node.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	node := mdast.NewNode(mdast.NodeTable)

	aligns := make([]mdast.Alignment, len(table.Alignments))
	for i, a := range table.Alignments {
		aligns[i] = mapAlignment(a)
	}

	node.Block = mdast.NewBlockAttrs().WithTable(&mdast.TableAttrs{Alignments: aligns})
	m.mapChildren(table, node)
	return node
}

// textValue returns a text node's literal with backslash escapes and
// character references resolved. Raw text is returned unchanged.
func (m *mapper) textValue(textNode *ast.Text) []byte {
	value := textNode.Value(m.content)
	if textNode.IsRaw() {
		return copyContent(value)
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return copyContent(value)
}

// linesValue concatenates the source of every line segment.
func (m *mapper) linesValue(lines *text.Segments) []byte {
	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}
	return buf.Bytes()
}

func mapAlignment(a east.Alignment) mdast.Alignment {
	switch a {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignRight:
		return mdast.AlignRight
	default:
		return mdast.AlignNone
	}
}
