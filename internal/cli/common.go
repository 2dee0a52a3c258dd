package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/announcer/internal/configloader"
	"github.com/yaklabco/announcer/internal/gitinfo"
	"github.com/yaklabco/announcer/internal/logging"
	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/changelog"
	"github.com/yaklabco/announcer/pkg/config"
	"github.com/yaklabco/announcer/pkg/fsutil"
)

// releaseFlags are shared by announce and render.
type releaseFlags struct {
	target        string
	version       string
	changelogFile string
	projectName   string
	username      string
	iconURL       string
	iconEmoji     string
	teamsSections bool
	tableStyle    string
	detectLang    bool
	strict        bool
}

func addReleaseFlags(cmd *cobra.Command, flags *releaseFlags) {
	cmd.Flags().StringVar(&flags.target, "target", "", "chat service: slack or teams (default slack)")
	cmd.Flags().StringVar(&flags.version, "changelogversion", "", "version whose section to announce (required)")
	cmd.Flags().StringVar(&flags.changelogFile, "changelogfile", "",
		"path to the changelog (default CHANGELOG.md, retried at the repository root)")
	cmd.Flags().StringVar(&flags.projectName, "projectname", "",
		"project name in the message title (default: git origin repository name)")
	cmd.Flags().StringVar(&flags.username, "username", "", "Slack display name")
	cmd.Flags().StringVar(&flags.iconURL, "iconurl", "", "Slack avatar image URL")
	cmd.Flags().StringVar(&flags.iconEmoji, "iconemoji", "", "Slack avatar emoji, e.g. party_parrot")
	cmd.Flags().BoolVar(&flags.teamsSections, "compatibility-teams-sections", false,
		"post one Teams card section per block")
	cmd.Flags().StringVar(&flags.tableStyle, "table-style", "", "Slack table layout: plain or box")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-code-language", false,
		"guess a language class for unlabelled code blocks in Teams messages")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when the version has no changelog section")
}

// validate checks flag combinations cobra cannot express.
func (f *releaseFlags) validate() error {
	if f.version == "" {
		return fmt.Errorf("%w: --changelogversion is required", ErrUsage)
	}
	if f.iconURL != "" && f.iconEmoji != "" {
		return fmt.Errorf("%w: --iconurl and --iconemoji are mutually exclusive", ErrUsage)
	}
	return nil
}

// apply copies the flags onto cfg. Unset flags keep their zero value, so
// merging leaves the configured values in place.
func (f *releaseFlags) apply(cfg *config.Config) {
	cfg.Version = f.version
	cfg.Target = f.target
	cfg.ChangelogFile = f.changelogFile
	cfg.ProjectName = f.projectName
	cfg.TableStyle = f.tableStyle
	cfg.Slack = config.SlackConfig{
		Username:  f.username,
		IconURL:   f.iconURL,
		IconEmoji: f.iconEmoji,
	}
	cfg.Teams.Sections = f.teamsSections
	cfg.DetectCodeLanguage = f.detectLang
	cfg.Strict = f.strict
}

// session is the resolved state a release command works from.
type session struct {
	cfg           *config.Config
	changelogPath string
	content       []byte
	snapshot      *fsutil.Snapshot
	project       string
	tables        changelog.TableFormatter
}

// loadConfig resolves configuration for cmd, layering cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		logging.SetLevel(result.Config.LogLevel)
	}

	return result.Config, nil
}

// openSession loads configuration and reads the changelog.
func openSession(cmd *cobra.Command, cliCfg *config.Config) (*session, error) {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return nil, err
	}
	logger := logging.Default()

	path, err := resolveChangelog(cfg.ChangelogFile)
	if err != nil {
		return nil, err
	}

	content, snap, err := fsutil.ReadFile(commandContext(cmd), path)
	if err != nil {
		return nil, err
	}

	project := cfg.ProjectName
	if project == "" {
		project, err = gitinfo.ProjectName("")
		if err != nil {
			return nil, fmt.Errorf("derive project name: %w", err)
		}
	}

	tables, err := changelog.TableFormatterFor(cfg.TableStyle)
	if err != nil {
		return nil, err
	}

	// Commands read the release-tagged logger back with logging.FromContext.
	ctx := logging.WithRelease(logging.WithLogger(commandContext(cmd), logger), cfg.Target, cfg.Version)
	cmd.SetContext(ctx)
	logger = logging.FromContext(ctx)

	logger.Debug("configuration loaded",
		logging.FieldPath, path,
		logging.FieldProject, project,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldDryRun, cfg.DryRun,
	)

	return &session{
		cfg:           cfg,
		changelogPath: path,
		content:       content,
		snapshot:      snap,
		project:       project,
		tables:        tables,
	}, nil
}

// resolveChangelog finds path in the working directory, then relative to
// the enclosing git repository's root.
func resolveChangelog(path string) (string, error) {
	var dirs []string
	if repo, err := gitinfo.Open(""); err == nil && repo.Root() != "" {
		dirs = append(dirs, repo.Root())
	}
	return fsutil.Resolve(path, dirs...)
}

// request builds the announce.Request for the session.
func (s *session) request() announce.Request {
	return announce.Request{
		Target:        announce.Target(s.cfg.Target),
		Webhooks:      s.cfg.Webhooks,
		Project:       s.project,
		Version:       s.cfg.Version,
		ChangelogPath: s.changelogPath,
		Content:       s.content,
		Slack: announce.SlackOptions{
			Username:  s.cfg.Slack.Username,
			IconURL:   s.cfg.Slack.IconURL,
			IconEmoji: s.cfg.Slack.IconEmoji,
		},
		TeamsSections:      s.cfg.Teams.Sections,
		Tables:             s.tables,
		DetectCodeLanguage: s.cfg.DetectCodeLanguage,
		DryRun:             s.cfg.DryRun,
		Strict:             s.cfg.Strict,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
