// Package config defines the configuration types for announcer.
// These types are plain data; loading and layering live in configloader.
package config

import "time"

// Target names accepted in configuration.
const (
	TargetSlack = "slack"
	TargetTeams = "teams"
)

// Table styles accepted in configuration.
const (
	TableStylePlain = "plain"
	TableStyleBox   = "box"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat selects how the render command prints a preview.
type OutputFormat string

const (
	FormatText     OutputFormat = "text"
	FormatJSON     OutputFormat = "json"
	FormatSections OutputFormat = "sections"
	FormatPayload  OutputFormat = "payload"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSections, FormatPayload:
		return true
	default:
		return false
	}
}

// Defaults.
const (
	DefaultChangelogFile = "CHANGELOG.md"
	DefaultTimeout       = 10 * time.Second
	DefaultLogLevel      = "info"
)

// SlackConfig customises Slack messages.
type SlackConfig struct {
	// Username overrides the webhook's display name.
	Username string `koanf:"username" yaml:"username,omitempty"`

	// IconURL sets the avatar image. It wins over IconEmoji.
	IconURL string `koanf:"icon_url" yaml:"icon_url,omitempty"`

	// IconEmoji is an emoji name such as "party_parrot".
	IconEmoji string `koanf:"icon_emoji" yaml:"icon_emoji,omitempty"`
}

// TeamsConfig customises Teams message cards.
type TeamsConfig struct {
	// Sections posts one card section per top-level block, for clients that
	// mangle long single-section cards.
	Sections bool `koanf:"sections" yaml:"sections"`
}

// Config is the root configuration structure.
type Config struct {
	// Target is "slack" or "teams".
	Target string `koanf:"target" yaml:"target"`

	// Webhooks receive the announcement. Each gets the same payload.
	Webhooks []string `koanf:"webhooks" yaml:"webhooks,omitempty"`

	// ChangelogFile is read relative to the working directory, then
	// relative to the repository root.
	ChangelogFile string `koanf:"changelog_file" yaml:"changelog_file"`

	// ProjectName titles the message. Empty means derive it from git.
	ProjectName string `koanf:"project_name" yaml:"project_name,omitempty"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `koanf:"flavor" yaml:"flavor"`

	// TableStyle lays out tables in Slack messages: "plain" or "box".
	TableStyle string `koanf:"table_style" yaml:"table_style"`

	// DetectCodeLanguage guesses a language for unlabelled code blocks in
	// Teams messages.
	DetectCodeLanguage bool `koanf:"detect_code_language" yaml:"detect_code_language"`

	// Timeout bounds each webhook post.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	Slack SlackConfig `koanf:"slack" yaml:"slack"`
	Teams TeamsConfig `koanf:"teams" yaml:"teams"`

	// CLI-level options (not persisted to config files).

	// Version is the changelog version to announce.
	Version string `koanf:"-" yaml:"-"`

	// DryRun prints the payload instead of posting it.
	DryRun bool `koanf:"-" yaml:"-"`

	// Strict fails when the version has no section.
	Strict bool `koanf:"-" yaml:"-"`

	// Format selects the render preview format.
	Format OutputFormat `koanf:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Target:        TargetSlack,
		ChangelogFile: DefaultChangelogFile,
		Flavor:        FlavorGFM,
		TableStyle:    TableStylePlain,
		Timeout:       DefaultTimeout,
		LogLevel:      DefaultLogLevel,
		Format:        FormatText,
	}
}
