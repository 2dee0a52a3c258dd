// Package langdetect guesses the language of a code snippet so fenced code
// without an info string can still carry a language class in HTML output.
// It uses go-enry for shebangs and classification.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// rule recognises one language from highly indicative content.
type rule struct {
	lang  string
	match func(content []byte) bool
}

// rules are tried in order before falling back to the enry classifier.
//
//nolint:gochecknoglobals // static lookup table
var rules = []rule{
	{"go", func(c []byte) bool { return bytes.HasPrefix(bytes.TrimSpace(c), []byte("package ")) }},
	{"python", isPython},
	{"html", func(c []byte) bool {
		return containsAny(strings.ToLower(string(c)), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(c []byte) bool {
		t := bytes.TrimSpace(c)
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) && bytes.Contains(t, []byte(`"`))
	}},
	{"dockerfile", func(c []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(c), []byte("FROM ")) ||
			(bytes.Contains(c, []byte("WORKDIR ")) && bytes.Contains(c, []byte("COPY ")))
	}},
	{"sql", func(c []byte) bool {
		head := strings.ToUpper(strings.TrimSpace(string(c)))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(head, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c []byte) bool { return containsAny(string(c), "fn main()", "println!", "let mut ") }},
	{"javascript", func(c []byte) bool { return containsAny(string(c), "=>", "const ", "let ", "console.log", "alert(") }},
	{"yaml", isYAML},
}

// classifierCandidates limits enry's classifier to languages seen in changelogs.
//
//nolint:gochecknoglobals // static lookup table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a lower-case fence tag for content.
// ok is false when no strategy is confident.
func Detect(content []byte) (lang string, ok bool) {
	if len(bytes.TrimSpace(content)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), true
	}

	for _, r := range rules {
		if r.match(content) {
			return r.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return "", false
}

func isPython(content []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") &&
		(strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ")) {
		return true
	}
	return strings.Contains(s, "__name__")
}

// isYAML counts "key: value" lines and top-level list items.
func isYAML(content []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		switch {
		case len(line) == 0, bytes.HasPrefix(line, []byte("#")):
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			count++
		case bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && !bytes.HasPrefix(line, []byte(`"`)):
			count++
		}
	}
	return count >= 2
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
