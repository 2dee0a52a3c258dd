package announce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/changelog"
)

const announce1Slack = `{
	"attachments": [
		{
			"color": "good",
			"pretext": "*test_announce1 1.0.0* (https://github.com/Metaswitch/announcer)",
			"text": "1.0.0 - 2018-09-26\n*Added*\n• Test Announce changelog: <https://github.com/Metaswitch/announcer|Announcer>\n"
		},
		{
			"fallback": "View changes at https://github.com/Metaswitch/announcer/compare/0.1.0...1.0.0\nView CHANGELOG.md at https://github.com/Metaswitch/announcer/blob/1.0.0/CHANGELOG.md",
			"color": "good",
			"actions": [
				{"type": "button", "text": "View Changes", "url": "https://github.com/Metaswitch/announcer/compare/0.1.0...1.0.0"},
				{"type": "button", "text": "View CHANGELOG.md", "url": "https://github.com/Metaswitch/announcer/blob/1.0.0/CHANGELOG.md"}
			]
		}
	],
	"username": "test_announce1"
}`

func announce1Result() changelog.Result {
	return changelog.Result{
		Body:    "1.0.0 - 2018-09-26\n*Added*\n• Test Announce changelog: <https://github.com/Metaswitch/announcer|Announcer>\n",
		DiffURL: "https://github.com/Metaswitch/announcer/compare/0.1.0...1.0.0",
		Matched: true,
	}
}

func TestBuildSlackMessage(t *testing.T) {
	t.Parallel()

	msg := announce.BuildSlackMessage(
		announce.SlackOptions{Username: "test_announce1"},
		"test_announce1", "1.0.0", announce1Result(),
	)

	got, err := announce.EncodePayload(msg)
	require.NoError(t, err)
	assert.JSONEq(t, announce1Slack, string(got))
	assert.Contains(t, string(got), "<https://github.com/Metaswitch/announcer|Announcer>")
}

func TestBuildSlackMessage_Icons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      announce.SlackOptions
		wantURL   string
		wantEmoji string
	}{
		{"none", announce.SlackOptions{}, "", ""},
		{"emoji", announce.SlackOptions{IconEmoji: "party_parrot"}, "", ":party_parrot:"},
		{"emoji with colons", announce.SlackOptions{IconEmoji: ":party_parrot:"}, "", ":party_parrot:"},
		{"url", announce.SlackOptions{IconURL: "https://example.com/icon.png"}, "https://example.com/icon.png", ""},
		{
			"url wins over emoji",
			announce.SlackOptions{IconURL: "https://example.com/icon.png", IconEmoji: "x"},
			"https://example.com/icon.png", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg := announce.BuildSlackMessage(tt.opts, "p", "1.0.0", announce1Result())
			assert.Equal(t, tt.wantURL, msg.IconURL)
			assert.Equal(t, tt.wantEmoji, msg.IconEmoji)
		})
	}
}

func TestBuildSlackMessage_NoDiffURL(t *testing.T) {
	t.Parallel()

	msg := announce.BuildSlackMessage(announce.SlackOptions{}, "proj", "1.0.0", changelog.Result{
		Body:    "1.0.0\n",
		Matched: true,
	})

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "*proj 1.0.0*", msg.Attachments[0].Pretext)
	assert.Equal(t, "1.0.0\n", msg.Attachments[0].Text)
	assert.Empty(t, msg.Username)
}

func TestBuildSlackMessage_UnrecognisedDiffURL(t *testing.T) {
	t.Parallel()

	// The link still gets a button, but no CHANGELOG.md link can be derived.
	msg := announce.BuildSlackMessage(announce.SlackOptions{}, "proj", "1.0.0", changelog.Result{
		Body:    "x",
		DiffURL: "https://example.com/releases/1.0.0",
	})

	require.Len(t, msg.Attachments, 2)
	assert.Equal(t, "*proj 1.0.0*", msg.Attachments[0].Pretext)
	assert.Equal(t, "View changes at https://example.com/releases/1.0.0", msg.Attachments[1].Fallback)
	require.Len(t, msg.Attachments[1].Actions, 1)
	assert.Equal(t, "View Changes", msg.Attachments[1].Actions[0].Text)
}

func TestBuildSlackMessage_EmptyNotesKeepText(t *testing.T) {
	t.Parallel()

	// An unmatched version still posts a notes attachment with empty text.
	msg := announce.BuildSlackMessage(announce.SlackOptions{}, "proj", "9.9.9", changelog.Result{})

	got, err := announce.EncodePayload(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"attachments": [
			{"color": "good", "pretext": "*proj 9.9.9*", "text": ""}
		]
	}`, string(got))
}

func TestSlackAttachment_MarkupStaysLiteral(t *testing.T) {
	t.Parallel()

	got, err := announce.EncodePayload(announce.SlackAttachment{Color: "good", Text: "<https://x|a & b>"})
	require.NoError(t, err)
	assert.Contains(t, string(got), `"text":"<https://x|a & b>"`)
}
