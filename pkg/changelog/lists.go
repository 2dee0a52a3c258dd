package changelog

import (
	"strconv"
	"strings"

	"github.com/yaklabco/announcer/pkg/mdast"
)

// Bullet glyphs for unnumbered list entries.
const (
	TopBullet = "\u2022"
	SubBullet = "\u2023"
)

// indentPerDepth is the leading whitespace added for each nesting level.
const indentPerDepth = "    "

// ListEntry is one flattened list item with its nesting depth and number.
type ListEntry struct {
	Depth    int
	Number   int
	Numbered bool
	Content  string
}

// Format renders the entry as one line of compact markup.
func (e ListEntry) Format() string {
	var bullet string
	switch {
	case e.Numbered:
		bullet = strconv.Itoa(e.Number) + "."
	case e.Depth > 0:
		bullet = SubBullet
	default:
		bullet = TopBullet
	}
	return strings.Repeat(indentPerDepth, e.Depth) + bullet + " " + e.Content + "\n"
}

// listCounter hands out sequence numbers for one list level.
type listCounter struct {
	next   int
	active bool
}

func newListCounter(list *mdast.Node) *listCounter {
	var attrs *mdast.ListAttrs
	if list.Block != nil {
		attrs = list.Block.List
	}
	start, ok := attrs.Start()
	return &listCounter{next: start, active: ok}
}

func (c *listCounter) take() (int, bool) {
	if !c.active {
		return 0, false
	}
	n := c.next
	c.next++
	return n, true
}

// FlattenList turns list and its nested lists into entries in document order.
//
// Every non-list child of an item consumes one number from its list's
// counter and is rendered with renderBlock. Nested lists recurse one level
// deeper with their own counter and consume nothing from the parent.
func FlattenList(list *mdast.Node, depth int, renderBlock func(*mdast.Node) string) []ListEntry {
	var entries []ListEntry
	counter := newListCounter(list)

	for item := list.FirstChild; item != nil; item = item.Next {
		for child := item.FirstChild; child != nil; child = child.Next {
			if child.Kind == mdast.NodeList {
				entries = append(entries, FlattenList(child, depth+1, renderBlock)...)
				continue
			}
			number, numbered := counter.take()
			entries = append(entries, ListEntry{
				Depth:    depth,
				Number:   number,
				Numbered: numbered,
				Content:  renderBlock(child),
			})
		}
	}

	return entries
}
