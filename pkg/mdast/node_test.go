package mdast_test

import (
	"testing"

	"github.com/yaklabco/announcer/pkg/mdast"
)

func TestNode_IsBlock(t *testing.T) {
	t.Parallel()

	blockKinds := []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeParagraph,
		mdast.NodeHeading,
		mdast.NodeList,
		mdast.NodeListItem,
		mdast.NodeBlockquote,
		mdast.NodeCodeBlock,
		mdast.NodeThematicBreak,
		mdast.NodeHTMLBlock,
		mdast.NodeTable,
		mdast.NodeTableRow,
		mdast.NodeTableCell,
	}

	for _, kind := range blockKinds {
		node := &mdast.Node{Kind: kind}
		if !node.IsBlock() {
			t.Errorf("expected %s to be block", kind)
		}
		if node.IsInline() {
			t.Errorf("expected %s to not be inline", kind)
		}
	}
}

func TestNode_IsInline(t *testing.T) {
	t.Parallel()

	inlineKinds := []mdast.NodeKind{
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeStrong,
		mdast.NodeStrikethrough,
		mdast.NodeCodeSpan,
		mdast.NodeLink,
		mdast.NodeAutoLink,
		mdast.NodeImage,
		mdast.NodeSoftBreak,
		mdast.NodeHardBreak,
		mdast.NodeHTMLInline,
	}

	for _, kind := range inlineKinds {
		node := &mdast.Node{Kind: kind}
		if !node.IsInline() {
			t.Errorf("expected %s to be inline", kind)
		}
		if node.IsBlock() {
			t.Errorf("expected %s to not be block", kind)
		}
	}

	raw := &mdast.Node{Kind: mdast.NodeRaw}
	if raw.IsBlock() || raw.IsInline() {
		t.Error("expected Raw to be neither block nor inline")
	}
}

func TestNode_ChildCount(t *testing.T) {
	t.Parallel()

	parent := mdast.NewNode(mdast.NodeDocument)

	if parent.ChildCount() != 0 || parent.HasChildren() {
		t.Errorf("expected 0 children, got %d", parent.ChildCount())
	}

	mdast.AppendChild(parent, mdast.NewNode(mdast.NodeParagraph))
	mdast.AppendChild(parent, mdast.NewNode(mdast.NodeParagraph))
	mdast.AppendChild(parent, mdast.NewNode(mdast.NodeParagraph))
	if parent.ChildCount() != 3 {
		t.Errorf("expected 3 children, got %d", parent.ChildCount())
	}
	if !parent.HasChildren() {
		t.Error("expected node with children to report them")
	}
}

func TestNode_Children(t *testing.T) {
	t.Parallel()

	child1 := mdast.NewNode(mdast.NodeParagraph)
	child2 := mdast.NewNode(mdast.NodeHeading)
	child3 := mdast.NewNode(mdast.NodeCodeBlock)
	parent := mdast.NewContainer(mdast.NodeDocument, child1, child2, child3)

	children := parent.Children()

	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}

	if children[0] != child1 || children[1] != child2 || children[2] != child3 {
		t.Error("children not in expected order")
	}
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     mdast.NodeKind
		expected string
	}{
		{mdast.NodeDocument, "Document"},
		{mdast.NodeParagraph, "Paragraph"},
		{mdast.NodeHeading, "Heading"},
		{mdast.NodeList, "List"},
		{mdast.NodeTableCell, "TableCell"},
		{mdast.NodeStrikethrough, "Strikethrough"},
		{mdast.NodeAutoLink, "AutoLink"},
		{mdast.NodeRaw, "Raw"},
		{mdast.NodeKind(999), "NodeKind(unknown)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			if tt.kind.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.kind.String())
			}
		})
	}
}

func TestKinds_AllNamed(t *testing.T) {
	t.Parallel()

	kinds := mdast.Kinds()
	if kinds[0] != mdast.NodeDocument || kinds[len(kinds)-1] != mdast.NodeRaw {
		t.Fatalf("unexpected kind range %s..%s", kinds[0], kinds[len(kinds)-1])
	}

	for _, kind := range kinds {
		if kind.String() == "" || kind.String() == "NodeKind(unknown)" {
			t.Errorf("kind %d has no name", kind)
		}
	}
}

func TestNode_HeadingLevel(t *testing.T) {
	t.Parallel()

	if got := mdast.NewHeading(3).HeadingLevel(); got != 3 {
		t.Errorf("expected level 3, got %d", got)
	}

	if got := mdast.NewNode(mdast.NodeParagraph).HeadingLevel(); got != 0 {
		t.Errorf("expected level 0 for paragraph, got %d", got)
	}

	if got := mdast.NewNode(mdast.NodeHeading).HeadingLevel(); got != 0 {
		t.Errorf("expected level 0 for heading without attrs, got %d", got)
	}
}

func TestNode_Literal(t *testing.T) {
	t.Parallel()

	text := mdast.NewText("hello")
	if string(text.Literal()) != "hello" {
		t.Errorf("expected text literal, got %q", text.Literal())
	}

	code := mdast.NewNode(mdast.NodeCodeBlock)
	code.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Literal: []byte("x := 1\n")})
	if string(code.Literal()) != "x := 1\n" {
		t.Errorf("expected code literal, got %q", code.Literal())
	}

	html := mdast.NewNode(mdast.NodeHTMLBlock)
	html.Block = &mdast.BlockAttrs{HTML: []byte("<div>")}
	if string(html.Literal()) != "<div>" {
		t.Errorf("expected html literal, got %q", html.Literal())
	}

	if mdast.NewNode(mdast.NodeParagraph).Literal() != nil {
		t.Error("expected nil literal for paragraph")
	}
}

func TestNode_Destination(t *testing.T) {
	t.Parallel()

	link := mdast.NewLink("https://example.com", mdast.NewText("x"))
	if link.Destination() != "https://example.com" {
		t.Errorf("unexpected destination %q", link.Destination())
	}

	if mdast.NewText("x").Destination() != "" {
		t.Error("expected empty destination for text")
	}
}

func TestListAttrs_Start(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		attrs     *mdast.ListAttrs
		wantStart int
		wantOK    bool
	}{
		{"nil", nil, 0, false},
		{"unordered", &mdast.ListAttrs{StartNumber: 4}, 0, false},
		{"ordered from one", &mdast.ListAttrs{Ordered: true, StartNumber: 1}, 1, true},
		{"ordered from two", &mdast.ListAttrs{Ordered: true, StartNumber: 2}, 2, true},
		{"ordered from zero", &mdast.ListAttrs{Ordered: true}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, ok := tt.attrs.Start()
			if start != tt.wantStart || ok != tt.wantOK {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.wantStart, tt.wantOK, start, ok)
			}
		})
	}
}

func TestAlignment_String(t *testing.T) {
	t.Parallel()

	tests := map[mdast.Alignment]string{
		mdast.AlignNone:   "",
		mdast.AlignLeft:   "left",
		mdast.AlignCenter: "center",
		mdast.AlignRight:  "right",
	}

	for align, want := range tests {
		if align.String() != want {
			t.Errorf("expected %q, got %q", want, align.String())
		}
	}
}
