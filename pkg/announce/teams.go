package announce

import "github.com/yaklabco/announcer/pkg/changelog"

// MessageCard constants.
const (
	teamsCardType    = "MessageCard"
	teamsCardContext = "https://schema.org/extensions"
	teamsOpenURI     = "OpenUri"
	teamsDefaultOS   = "default"
)

// TeamsMessage is a legacy Office 365 connector card.
type TeamsMessage struct {
	Type            string         `json:"@type"`
	Context         string         `json:"@context"`
	Summary         string         `json:"summary"`
	Title           string         `json:"title"`
	Sections        []TeamsSection `json:"sections"`
	PotentialAction []TeamsAction  `json:"potentialAction,omitempty"`
}

// TeamsSection is one HTML fragment of the card body.
type TeamsSection struct {
	Text string `json:"text"`
}

// TeamsAction is a button opening a URI.
type TeamsAction struct {
	Type    string        `json:"@type"`
	Name    string        `json:"name"`
	Targets []TeamsTarget `json:"targets"`
}

// TeamsTarget is the URI an action opens on one platform.
type TeamsTarget struct {
	OS  string `json:"os"`
	URI string `json:"uri"`
}

// BuildTeamsMessage composes the announcement of version for project from
// an HTML render result. A result rendered with split sections yields one
// card section per fragment; otherwise the whole body is a single section.
func BuildTeamsMessage(project, version string, res changelog.Result) TeamsMessage {
	title := project + " " + version

	msg := TeamsMessage{
		Type:    teamsCardType,
		Context: teamsCardContext,
		Summary: title,
		Title:   title,
	}

	if len(res.Sections) > 0 {
		msg.Sections = make([]TeamsSection, 0, len(res.Sections))
		for _, s := range res.Sections {
			msg.Sections = append(msg.Sections, TeamsSection{Text: s})
		}
	} else {
		msg.Sections = []TeamsSection{{Text: res.Body}}
	}

	baseURL, reference := DeriveURLs(res.DiffURL)
	if res.HasDiffURL() {
		msg.PotentialAction = append(msg.PotentialAction, openURI("View changes", res.DiffURL))
	}
	if changelogURL := ChangelogURL(baseURL, reference); changelogURL != "" {
		msg.PotentialAction = append(msg.PotentialAction, openURI("View CHANGELOG.md", changelogURL))
	}

	return msg
}

func openURI(name, uri string) TeamsAction {
	return TeamsAction{
		Type:    teamsOpenURI,
		Name:    name,
		Targets: []TeamsTarget{{OS: teamsDefaultOS, URI: uri}},
	}
}
