package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/yaklabco/announcer/internal/cli"
	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/reporter"
)

const testChangelog = `# Changelog

## [Unreleased]

## [1.1.0] - 2025-03-01

### Added

- Something new with ` + "`code`" + `

### Fixed

- A **bold** fix

## [1.0.0] - 2025-01-01

- First release

[Unreleased]: https://github.com/example/widget/compare/1.1.0...HEAD
[1.1.0]: https://github.com/example/widget/compare/1.0.0...1.1.0
[1.0.0]: https://github.com/example/widget/tree/1.0.0
`

// isolate points configuration discovery at empty directories.
func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "CHANGELOG.md")
	if err := os.WriteFile(path, []byte(testChangelog), 0o644); err != nil {
		t.Fatalf("write changelog: %v", err)
	}
	return path
}

func execute(args ...string) (string, string, error) {
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test-version"})

	if cmd.Use != "announcer" {
		t.Errorf("expected Use to be 'announcer', got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected Short and Long descriptions to be set")
	}

	for _, name := range []string{"announce", "render", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestAnnounceCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	announceCmd, _, err := cmd.Find([]string{"announce"})
	if err != nil {
		t.Fatalf("announce command not found: %v", err)
	}

	expectedFlags := []string{
		"target",
		"webhook",
		"slackhook",
		"changelogversion",
		"changelogfile",
		"projectname",
		"username",
		"iconurl",
		"iconemoji",
		"compatibility-teams-sections",
		"table-style",
		"detect-code-language",
		"strict",
		"timeout",
		"dry-run",
	}
	for _, flagName := range expectedFlags {
		if announceCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on announce command", flagName)
		}
	}

	if announceCmd.Flags().Lookup("slackhook").Deprecated == "" {
		t.Error("expected --slackhook to be deprecated")
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute("version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(stdout, "announcer") {
		t.Errorf("expected version output to name announcer, got %q", stdout)
	}
}

func TestAnnounce_DryRunPrintsSlackPayload(t *testing.T) {
	changelog := isolate(t)

	stdout, _, err := execute("announce",
		"--changelogfile", changelog,
		"--changelogversion", "1.1.0",
		"--projectname", "widget",
		"--iconemoji", "party_parrot",
		"--dry-run",
	)
	if err != nil {
		t.Fatalf("announce failed: %v", err)
	}

	var msg announce.SlackMessage
	if err := json.Unmarshal([]byte(stdout), &msg); err != nil {
		t.Fatalf("stdout is not a Slack payload: %v\n%s", err, stdout)
	}
	if msg.IconEmoji != ":party_parrot:" {
		t.Errorf("unexpected icon emoji %q", msg.IconEmoji)
	}
	if len(msg.Attachments) == 0 {
		t.Fatal("expected at least one attachment")
	}

	var text strings.Builder
	for _, a := range msg.Attachments {
		text.WriteString(a.Pretext)
		text.WriteString(a.Text)
	}
	for _, want := range []string{"Something new", "`code`", "*bold*"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("expected payload text to contain %q, got %q", want, text.String())
		}
	}
	if strings.Contains(text.String(), "First release") {
		t.Error("payload leaked the next version's section")
	}
}

func TestAnnounce_PostsToEveryWebhook(t *testing.T) {
	changelog := isolate(t)

	var (
		mu     sync.Mutex
		bodies []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	stdout, _, err := execute("announce",
		"--target", "teams",
		"--changelogfile", changelog,
		"--changelogversion", "1.1.0",
		"--projectname", "widget",
		"--webhook", server.URL+"/one",
		"--webhook", server.URL+"/two",
		"--color", "never",
	)
	if err != nil {
		t.Fatalf("announce failed: %v", err)
	}
	if !strings.Contains(stdout, "Delivered to 2 of 2 webhook(s)") {
		t.Errorf("unexpected summary %q", stdout)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(bodies))
	}
	for _, body := range bodies {
		var msg announce.TeamsMessage
		if err := json.Unmarshal([]byte(body), &msg); err != nil {
			t.Fatalf("posted body is not a Teams card: %v", err)
		}
		if msg.Type != "MessageCard" {
			t.Errorf("expected MessageCard, got %q", msg.Type)
		}
		if !strings.Contains(body, "<code>code</code>") {
			t.Errorf("expected inline code as HTML, got %s", body)
		}
	}
}

func TestRender_JSON(t *testing.T) {
	changelog := isolate(t)

	stdout, _, err := execute("render",
		"--changelogfile", changelog,
		"--changelogversion", "1.1.0",
		"--projectname", "widget",
		"--format", "json",
	)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var out reporter.JSONOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("render output is not JSON: %v\n%s", err, stdout)
	}
	if !out.Matched {
		t.Error("expected version 1.1.0 to match")
	}
	if out.DiffURL != "https://github.com/example/widget/compare/1.0.0...1.1.0" {
		t.Errorf("unexpected diff URL %q", out.DiffURL)
	}
	if out.Dialect != "mrkdwn" {
		t.Errorf("expected mrkdwn dialect, got %q", out.Dialect)
	}
}

func TestRender_TeamsSections(t *testing.T) {
	changelog := isolate(t)

	stdout, _, err := execute("render",
		"--target", "teams",
		"--changelogfile", changelog,
		"--changelogversion", "1.1.0",
		"--projectname", "widget",
		"--format", "sections",
		"--color", "never",
	)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(stdout, "section 1/") {
		t.Errorf("expected numbered sections, got %q", stdout)
	}
	if strings.Contains(stdout, "section 1/1 ") {
		t.Errorf("expected more than one section, got %q", stdout)
	}
}

func TestRender_UsesConfigFile(t *testing.T) {
	changelog := isolate(t)

	cfgPath := filepath.Join(t.TempDir(), "announcer.yml")
	cfg := "target: teams\nproject_name: from-config\nchangelog_file: " + changelog + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := execute("render", "--config", cfgPath, "--changelogversion", "1.1.0", "--format", "json")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var out reporter.JSONOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("render output is not JSON: %v", err)
	}
	if out.Project != "from-config" || out.Target != "teams" {
		t.Errorf("config file was not applied: project=%q target=%q", out.Project, out.Target)
	}
}

func TestExitCodes(t *testing.T) {
	changelog := isolate(t)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer failing.Close()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{
			name: "missing version",
			args: []string{"announce", "--changelogfile", changelog, "--dry-run"},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown flag",
			args: []string{"announce", "--nope"},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "icon url and emoji",
			args: []string{"render", "--changelogversion", "1.1.0", "--iconurl", "https://x", "--iconemoji", "x"},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "webhook and slackhook together",
			args: []string{
				"announce", "--changelogfile", changelog, "--changelogversion", "1.1.0",
				"--webhook", "https://hooks.example.com/a", "--slackhook", "https://hooks.example.com/b",
			},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "no webhook",
			args: []string{"announce", "--changelogfile", changelog, "--changelogversion", "1.1.0", "--projectname", "w"},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown target",
			args: []string{"render", "--changelogfile", changelog, "--changelogversion", "1.1.0", "--target", "irc"},
			want: cli.ExitConfigError,
		},
		{
			name: "strict missing version",
			args: []string{
				"render", "--changelogfile", changelog, "--changelogversion", "9.9.9",
				"--projectname", "w", "--strict",
			},
			want: cli.ExitConfigError,
		},
		{
			name: "missing changelog",
			args: []string{
				"render", "--changelogfile", filepath.Join(t.TempDir(), "NOPE.md"),
				"--changelogversion", "1.1.0", "--projectname", "w",
			},
			want: cli.ExitIOError,
		},
		{
			name: "webhook rejects payload",
			args: []string{
				"announce", "--changelogfile", changelog, "--changelogversion", "1.1.0",
				"--projectname", "w", "--webhook", failing.URL,
			},
			want: cli.ExitUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := cli.ExitCodeFromError(err); got != tt.want {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".announcer.yml")

	if _, _, err := execute("init", "--target", "teams", "--projectname", "widget", "--output", output); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if !strings.Contains(string(content), "target: teams") {
		t.Errorf("expected teams target in generated config:\n%s", content)
	}

	_, _, err = execute("init", "--output", output)
	if got := cli.ExitCodeFromError(err); got != cli.ExitInvalidUsage {
		t.Errorf("expected existing file to be a usage error, got %d (%v)", got, err)
	}

	if _, _, err := execute("init", "--output", output, "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}
