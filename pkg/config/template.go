package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Target preselects "slack" or "teams". Empty means slack.
	Target string

	// Webhooks are written uncommented when given.
	Webhooks []string

	// ProjectName is written uncommented when given.
	ProjectName string
}

// GenerateTemplate creates a commented .announcer.yml. The result always
// parses back into a Config.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	target := strings.ToLower(opts.Target)
	if target == "" {
		target = TargetSlack
	}
	if target != TargetSlack && target != TargetTeams {
		return nil, fmt.Errorf("unknown target %q", opts.Target)
	}

	def := NewConfig()
	var buf bytes.Buffer

	buf.WriteString("# announcer configuration\n")
	buf.WriteString("# Values here are overridden by ANNOUNCER_* environment variables and flags.\n\n")

	buf.WriteString("# Chat service: slack or teams\n")
	fmt.Fprintf(&buf, "target: %s\n\n", target)

	buf.WriteString("# Incoming webhook URLs. Each receives the same message.\n")
	buf.WriteString("# Prefer ANNOUNCER_WEBHOOKS over committing secrets.\n")
	if len(opts.Webhooks) > 0 {
		buf.WriteString("webhooks:\n")
		for _, hook := range opts.Webhooks {
			fmt.Fprintf(&buf, "  - %s\n", quote(hook))
		}
	} else {
		buf.WriteString("# webhooks:\n#   - https://hooks.slack.com/services/T000/B000/XXXX\n")
	}
	buf.WriteString("\n")

	buf.WriteString("# Changelog in keep-a-changelog format\n")
	fmt.Fprintf(&buf, "changelog_file: %s\n\n", def.ChangelogFile)

	buf.WriteString("# Project name in the message title (default: git origin repository name)\n")
	if opts.ProjectName != "" {
		fmt.Fprintf(&buf, "project_name: %s\n\n", quote(opts.ProjectName))
	} else {
		buf.WriteString("# project_name: my-project\n\n")
	}

	buf.WriteString("# Markdown flavor: commonmark or gfm\n")
	fmt.Fprintf(&buf, "flavor: %s\n\n", def.Flavor)

	buf.WriteString("# Slack table layout: plain or box\n")
	fmt.Fprintf(&buf, "table_style: %s\n\n", def.TableStyle)

	buf.WriteString("# Guess a language for unlabelled code blocks (Teams)\n")
	fmt.Fprintf(&buf, "detect_code_language: %t\n\n", def.DetectCodeLanguage)

	buf.WriteString("# Per-webhook request timeout\n")
	fmt.Fprintf(&buf, "timeout: %s\n\n", def.Timeout)

	buf.WriteString("# Log level: debug, info, warn, error\n")
	fmt.Fprintf(&buf, "log_level: %s\n\n", def.LogLevel)

	buf.WriteString("slack:\n")
	buf.WriteString("  # username: release-bot\n")
	buf.WriteString("  # icon_url: https://example.com/icon.png\n")
	buf.WriteString("  # icon_emoji: party_parrot\n\n")

	buf.WriteString("teams:\n")
	buf.WriteString("  # One card section per block\n")
	fmt.Fprintf(&buf, "  sections: %t\n", def.Teams.Sections)

	out := buf.Bytes()
	if _, err := FromYAML(out); err != nil {
		return nil, fmt.Errorf("generated template is invalid: %w", err)
	}
	return out, nil
}

// quote renders s as a YAML scalar.
func quote(s string) string {
	node := yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(string(out), "\n")
}
