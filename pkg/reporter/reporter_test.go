package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/changelog"
	"github.com/yaklabco/announcer/pkg/reporter"
)

func slackPreview() *reporter.Preview {
	return &reporter.Preview{
		Project:       "announcer",
		Version:       "1.0.0",
		Target:        announce.TargetSlack,
		ChangelogPath: "CHANGELOG.md",
		Result: changelog.Result{
			Body:    "1.0.0\n*Added*\n• Tables & <links>\n",
			DiffURL: "https://github.com/example/announcer/compare/0.9.0...1.0.0",
			Matched: true,
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sections", input: "sections", want: reporter.FormatSections},
		{name: "payload", input: "payload", want: reporter.FormatPayload},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	assert.False(t, reporter.Format("").IsValid())
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Color: "never", Width: 10})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), slackPreview()))

	want := "announcer 1.0.0\n" +
		"target=slack dialect=mrkdwn file=CHANGELOG.md\n" +
		"──────────\n" +
		"1.0.0\n*Added*\n• Tables & <links>\n" +
		"──────────\n" +
		"Changes: https://github.com/example/announcer/compare/0.9.0...1.0.0\n" +
		"Changelog: https://github.com/example/announcer/blob/1.0.0/CHANGELOG.md\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_Missing(t *testing.T) {
	t.Parallel()

	preview := slackPreview()
	preview.Version = "9.9.9"
	preview.Result = changelog.Result{}

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})
	require.NoError(t, rep.Report(context.Background(), preview))

	assert.Contains(t, buf.String(), `No section found for version "9.9.9"`)
	assert.NotContains(t, buf.String(), "Changes:")
}

func TestSectionsReporter(t *testing.T) {
	t.Parallel()

	preview := &reporter.Preview{
		Version: "1.0.0",
		Target:  announce.TargetTeams,
		Result: changelog.Result{
			Body:     "<h2>1.0.0</h2><p>one</p>",
			Sections: []string{"<h2>1.0.0</h2><p>one</p>", "<hr />"},
			Matched:  true,
		},
	}

	var buf bytes.Buffer
	rep := reporter.NewSectionsReporter(reporter.Options{Writer: &buf, Color: "never", Width: 20})
	require.NoError(t, rep.Report(context.Background(), preview))

	want := "1.0.0\n" +
		"target=teams dialect=html\n" +
		"── section 1/2 ─────\n" +
		"<h2>1.0.0</h2><p>one</p>\n" +
		"── section 2/2 ─────\n" +
		"<hr />\n"
	assert.Equal(t, want, buf.String())
}

func TestSectionsReporter_FallsBackToBody(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewSectionsReporter(reporter.Options{Writer: &buf, Color: "never", Width: 20})
	require.NoError(t, rep.Report(context.Background(), slackPreview()))

	assert.Contains(t, buf.String(), "── section 1/1 ─────\n1.0.0\n*Added*")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})
	require.NoError(t, rep.Report(context.Background(), slackPreview()))

	// Markup is not HTML-escaped.
	assert.Contains(t, buf.String(), "Tables & <links>")

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "announcer", out.Project)
	assert.Equal(t, "slack", out.Target)
	assert.Equal(t, "mrkdwn", out.Dialect)
	assert.True(t, out.Matched)
	assert.Equal(t, "https://github.com/example/announcer/blob/1.0.0/CHANGELOG.md", out.ChangelogURL)
	assert.Empty(t, out.Sections)
}

func TestPayloadReporter(t *testing.T) {
	t.Parallel()

	preview := slackPreview()
	preview.Payload = announce.BuildSlackMessage(announce.SlackOptions{}, preview.Project, preview.Version, preview.Result)

	var buf bytes.Buffer
	rep := reporter.NewPayloadReporter(reporter.Options{Writer: &buf, Compact: true})
	require.NoError(t, rep.Report(context.Background(), preview))

	assert.True(t, strings.HasPrefix(buf.String(), `{"attachments":[`))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "Tables & <links>")
}

func TestPayloadReporter_NoPayload(t *testing.T) {
	t.Parallel()

	rep := reporter.NewPayloadReporter(reporter.Options{Writer: &bytes.Buffer{}})
	err := rep.Report(context.Background(), slackPreview())
	require.ErrorIs(t, err, reporter.ErrNoPayload)
}

func TestReport_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, format := range []reporter.Format{
		reporter.FormatText, reporter.FormatJSON, reporter.FormatSections, reporter.FormatPayload,
	} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err)
		require.ErrorIs(t, rep.Report(ctx, slackPreview()), context.Canceled, "format %s", format)
	}
}
