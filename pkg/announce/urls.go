package announce

import "regexp"

// Repository hosts link a release heading either to a compare view
// ("{base}/compare/{from}...{to}") or to a tree view ("{base}/tree/{ref}").
//
//nolint:gochecknoglobals // compiled once
var (
	compareURLPattern = regexp.MustCompile(`^(.*)/compare/[^/]+[.][.][.]([^/]+)$`)
	treeURLPattern    = regexp.MustCompile(`^(.*)/tree/([^/]+)$`)
)

// DeriveURLs splits a release heading's link into the repository base URL
// and the git reference it points at. Both are "" when diffURL has neither
// shape.
func DeriveURLs(diffURL string) (baseURL, reference string) {
	if diffURL == "" {
		return "", ""
	}
	if m := compareURLPattern.FindStringSubmatch(diffURL); m != nil {
		return m[1], m[2]
	}
	if m := treeURLPattern.FindStringSubmatch(diffURL); m != nil {
		return m[1], m[2]
	}
	return "", ""
}

// ChangelogURL is the web view of CHANGELOG.md at reference, or "" without
// a base URL.
func ChangelogURL(baseURL, reference string) string {
	if baseURL == "" {
		return ""
	}
	return baseURL + "/blob/" + reference + "/CHANGELOG.md"
}
