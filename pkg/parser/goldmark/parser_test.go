package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/yaklabco/announcer/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func TestParser_Parse_Basic(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx := context.Background()

	content := []byte("# Hello\n\nWorld")
	src, err := parser.Parse(ctx, "CHANGELOG.md", content)

	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if src == nil {
		t.Fatal("expected non-nil source")
	}

	if src.Path != "CHANGELOG.md" {
		t.Errorf("Path = %q, want %q", src.Path, "CHANGELOG.md")
	}

	if string(src.Content) != string(content) {
		t.Errorf("Content mismatch")
	}

	// Verify content is a copy, not the same slice.
	if &src.Content[0] == &content[0] {
		t.Error("Content should be a copy, not the same slice")
	}

	if src.Root == nil || src.Root.Kind != mdast.NodeDocument {
		t.Fatal("expected document root")
	}

	children := src.Root.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 top-level blocks, got %d", len(children))
	}

	if children[0].Kind != mdast.NodeHeading || children[1].Kind != mdast.NodeParagraph {
		t.Errorf("unexpected blocks %s, %s", children[0].Kind, children[1].Kind)
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	parser := New(FlavorCommonMark)

	src, err := parser.Parse(context.Background(), "empty.md", []byte{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if src.Root == nil {
		t.Fatal("expected root for empty document")
	}

	if src.Root.HasChildren() {
		t.Errorf("expected no children, got %d", src.Root.ChildCount())
	}
}

func TestParser_Parse_ContextCancelled(t *testing.T) {
	parser := New(FlavorCommonMark)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_ContextTimeout(t *testing.T) {
	parser := New(FlavorCommonMark)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for expired context")
	}
}

func TestParser_Parse_GFM(t *testing.T) {
	content := []byte("~~gone~~\n\n| a |\n|---|\n| 1 |\n")

	gfm, err := New(FlavorGFM).Parse(context.Background(), "gfm.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(mdast.FindByKind(gfm.Root, mdast.NodeStrikethrough)) != 1 {
		t.Error("expected strikethrough under gfm")
	}

	if len(mdast.FindByKind(gfm.Root, mdast.NodeTable)) != 1 {
		t.Error("expected table under gfm")
	}

	cm, err := New(FlavorCommonMark).Parse(context.Background(), "cm.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(mdast.FindByKind(cm.Root, mdast.NodeStrikethrough)) != 0 {
		t.Error("expected no strikethrough under commonmark")
	}

	if len(mdast.FindByKind(cm.Root, mdast.NodeTable)) != 0 {
		t.Error("expected no table under commonmark")
	}
}

func TestParser_Parse_ReferenceLinkHeading(t *testing.T) {
	content := []byte("## [1.0.0] - 2018-09-26\n\n### Added\n\n- Initial version\n\n" +
		"[1.0.0]: https://github.com/example/announcer/compare/0.1.0...1.0.0\n")

	src, err := New(FlavorGFM).Parse(context.Background(), "CHANGELOG.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	heading := src.Root.FirstChild
	if heading == nil || heading.HeadingLevel() != 2 {
		t.Fatal("expected level 2 heading first")
	}

	link := heading.FirstChild
	if link == nil || link.Kind != mdast.NodeLink {
		t.Fatalf("expected heading to start with a link")
	}

	if link.Destination() != "https://github.com/example/announcer/compare/0.1.0...1.0.0" {
		t.Errorf("unexpected destination %q", link.Destination())
	}

	if got := mdast.PlainText(link); got != "1.0.0" {
		t.Errorf("link text = %q, want 1.0.0", got)
	}

	if got := mdast.PlainText(heading); got != "1.0.0 - 2018-09-26" {
		t.Errorf("heading text = %q", got)
	}

	// The definition is consumed by the parser and leaves no block behind.
	if src.Root.ChildCount() != 3 {
		t.Errorf("expected 3 top-level blocks, got %d", src.Root.ChildCount())
	}
}

func TestParser_Parse_Deterministic(t *testing.T) {
	content := []byte("# T\n\n- a\n  - b\n\n1. x\n2. y\n")
	parser := New(FlavorGFM)

	first, err := parser.Parse(context.Background(), "a.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	second, err := parser.Parse(context.Background(), "a.md", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var kinds1, kinds2 []mdast.NodeKind
	_ = mdast.Walk(first.Root, func(n *mdast.Node) error {
		kinds1 = append(kinds1, n.Kind)
		return nil
	})
	_ = mdast.Walk(second.Root, func(n *mdast.Node) error {
		kinds2 = append(kinds2, n.Kind)
		return nil
	})

	if len(kinds1) != len(kinds2) {
		t.Fatalf("node counts differ: %d vs %d", len(kinds1), len(kinds2))
	}

	for i := range kinds1 {
		if kinds1[i] != kinds2[i] {
			t.Errorf("node %d: %s vs %s", i, kinds1[i], kinds2[i])
		}
	}
}
