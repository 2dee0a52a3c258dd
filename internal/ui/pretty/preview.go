package pretty

import (
	"fmt"
	"strings"
)

// ruleChar draws section separators.
const ruleChar = "─"

// FormatHeader returns the "project version" line that opens a preview.
func (s *Styles) FormatHeader(project, version string) string {
	if project == "" {
		return s.Version.Render(version) + "\n"
	}
	return s.Title.Render(project) + " " + s.Version.Render(version) + "\n"
}

// FormatMeta renders key=value pairs on one dimmed line. Empty values are skipped.
func (s *Styles) FormatMeta(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		parts = append(parts, pairs[i]+"="+pairs[i+1])
	}
	if len(parts) == 0 {
		return ""
	}
	return s.Meta.Render(strings.Join(parts, " ")) + "\n"
}

// FormatRule draws a separator of the given width with label inset after
// two rule characters.
func (s *Styles) FormatRule(label string, width int) string {
	lead := strings.Repeat(ruleChar, 2)
	if label == "" {
		return s.SectionRule.Render(strings.Repeat(ruleChar, max(width, 4))) + "\n"
	}

	text := lead + " " + label + " "
	fill := max(width-len([]rune(text)), 2)
	return s.SectionRule.Render(text+strings.Repeat(ruleChar, fill)) + "\n"
}

// FormatLink renders "label: url". It returns "" for an empty url.
func (s *Styles) FormatLink(label, url string) string {
	if url == "" {
		return ""
	}
	return s.Label.Render(label+":") + " " + s.Link.Render(url) + "\n"
}

// FormatDelivered summarises a delivery run.
func (s *Styles) FormatDelivered(delivered, total int, dryRun bool) string {
	switch {
	case dryRun:
		return s.Warning.Render("Dry run:") + " payload not posted\n"
	case delivered == total:
		return s.Success.Render("Delivered") + fmt.Sprintf(" to %d of %d webhook(s)\n", delivered, total)
	default:
		return s.Error.Render("Partially delivered") + fmt.Sprintf(" to %d of %d webhook(s)\n", delivered, total)
	}
}

// FormatMissing warns that a version has no changelog section.
func (s *Styles) FormatMissing(version string) string {
	return s.Warning.Render("No section") + fmt.Sprintf(" found for version %q\n", version)
}
