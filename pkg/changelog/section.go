package changelog

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/announcer/pkg/mdast"
)

// versionHeadingLevel is the heading level that opens a release section.
const versionHeadingLevel = 2

// Selection is the part of a changelog that belongs to one version.
type Selection struct {
	// Nodes are the selected top-level blocks in document order, starting
	// with the matched version heading.
	Nodes []*mdast.Node

	// DiffURL is the target of the version heading's link, or "".
	DiffURL string

	// Matched reports whether any level-2 heading carried the version.
	Matched bool
}

// SelectSection collects the top-level blocks of doc that belong to version.
//
// A level-2 heading whose first child reads exactly version opens the
// section; any other level-2 heading closes it. The version comparison is
// case-sensitive and does no normalisation. A section that ends on a
// heading drops that heading. No match yields an empty Selection.
func SelectSection(doc *mdast.Node, version string, logger *log.Logger) Selection {
	var sel Selection
	if doc == nil {
		return sel
	}
	logger = loggerOrDiscard(logger)

	inside := false
	for child := doc.FirstChild; child != nil; child = child.Next {
		if child.HeadingLevel() == versionHeadingLevel {
			inside = headingVersion(child) == version
			if inside {
				sel.Matched = true
				if label := child.FirstChild; label != nil && label.Kind == mdast.NodeLink {
					sel.DiffURL = label.Destination()
				}
			}
		}

		if !inside {
			logger.Debug("skipping block outside section", "kind", child.Kind)
			continue
		}
		sel.Nodes = append(sel.Nodes, child)
	}

	if n := len(sel.Nodes); n > 0 && sel.Nodes[n-1].Kind == mdast.NodeHeading {
		logger.Warn("dropping empty trailing heading", "heading", mdast.PlainText(sel.Nodes[n-1]))
		sel.Nodes = sel.Nodes[:n-1]
	}

	return sel
}

// Versions lists the version label of every level-2 heading in doc order.
func Versions(doc *mdast.Node) []string {
	if doc == nil {
		return nil
	}
	var versions []string
	for child := doc.FirstChild; child != nil; child = child.Next {
		if child.HeadingLevel() == versionHeadingLevel {
			versions = append(versions, headingVersion(child))
		}
	}
	return versions
}

// headingVersion is the plain text of a heading's first child.
func headingVersion(heading *mdast.Node) string {
	return mdast.PlainText(heading.FirstChild)
}
