package announce

import (
	"strings"

	"github.com/yaklabco/announcer/pkg/changelog"
)

// colorGood is Slack's green attachment bar.
const colorGood = "good"

// SlackOptions customise how the message appears in the channel.
type SlackOptions struct {
	// Username overrides the webhook's configured name.
	Username string

	// IconURL sets the avatar image. It takes precedence over IconEmoji.
	IconURL string

	// IconEmoji is an emoji name, with or without surrounding colons.
	IconEmoji string
}

// SlackMessage is an incoming-webhook payload using legacy attachments.
type SlackMessage struct {
	Attachments []SlackAttachment `json:"attachments"`
	Username    string            `json:"username,omitempty"`
	IconURL     string            `json:"icon_url,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
}

// SlackAttachment is one coloured block of a Slack message.
type SlackAttachment struct {
	Fallback string        `json:"fallback,omitempty"`
	Color    string        `json:"color"`
	Pretext  string        `json:"pretext,omitempty"`
	Text     string        `json:"text,omitempty"`
	Actions  []SlackAction `json:"actions,omitempty"`
}

// MarshalJSON writes "text" on every attachment without buttons, even when
// the release notes are empty. Button attachments carry no text key.
func (a SlackAttachment) MarshalJSON() ([]byte, error) {
	type attachment SlackAttachment
	if len(a.Actions) > 0 {
		return EncodePayload(attachment(a))
	}
	return EncodePayload(struct {
		attachment
		Text string `json:"text"`
	}{attachment(a), a.Text})
}

// SlackAction is a link button.
type SlackAction struct {
	Type string `json:"type"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

// BuildSlackMessage composes the announcement of version for project from
// a mrkdwn render result.
//
// The first attachment carries the release notes. A second attachment with
// "View Changes" and "View CHANGELOG.md" buttons follows when the version
// heading linked somewhere.
func BuildSlackMessage(opts SlackOptions, project, version string, res changelog.Result) SlackMessage {
	baseURL, reference := DeriveURLs(res.DiffURL)

	pretext := "*" + project + " " + version + "*"
	if baseURL != "" {
		pretext += " (" + baseURL + ")"
	}

	msg := SlackMessage{
		Attachments: []SlackAttachment{{
			Color:   colorGood,
			Pretext: pretext,
			Text:    res.Body,
		}},
		Username: opts.Username,
	}

	var (
		fallback []string
		actions  []SlackAction
	)
	if res.HasDiffURL() {
		fallback = append(fallback, "View changes at "+res.DiffURL)
		actions = append(actions, SlackAction{Type: "button", Text: "View Changes", URL: res.DiffURL})
	}
	if changelogURL := ChangelogURL(baseURL, reference); changelogURL != "" {
		fallback = append(fallback, "View CHANGELOG.md at "+changelogURL)
		actions = append(actions, SlackAction{Type: "button", Text: "View CHANGELOG.md", URL: changelogURL})
	}
	if len(actions) > 0 {
		msg.Attachments = append(msg.Attachments, SlackAttachment{
			Fallback: strings.Join(fallback, "\n"),
			Color:    colorGood,
			Actions:  actions,
		})
	}

	switch {
	case opts.IconURL != "":
		msg.IconURL = opts.IconURL
	case opts.IconEmoji != "":
		msg.IconEmoji = ":" + strings.Trim(opts.IconEmoji, ":") + ":"
	}

	return msg
}
