package changelog

import (
	"strings"

	"github.com/yuin/goldmark/util"
)

// Both chat dialects treat &, < and > as markup in text.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes an HTML attribute value the way goldmark's own renderer
// does, quotes included.
func escapeAttr(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

// autoLinkTarget prefixes email autolinks with mailto:.
func autoLinkTarget(dest string, email bool) string {
	if email && !strings.HasPrefix(dest, "mailto:") {
		return "mailto:" + dest
	}
	return dest
}
