package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/announcer/internal/configloader"
	"github.com/yaklabco/announcer/internal/logging"
	"github.com/yaklabco/announcer/pkg/config"
	"github.com/yaklabco/announcer/pkg/fsutil"
)

// defaultConfigFile is written by init when --output is not given.
const defaultConfigFile = ".announcer.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force       bool
	target      string
	webhooks    []string
	projectName string
	output      string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new announcer configuration file",
		Long: `Create a commented .announcer.yml in the current directory. Every key is
documented along with the environment variable that overrides it.

Examples:
  announcer init                              Create .announcer.yml for Slack
  announcer init --target teams               Preselect Microsoft Teams
  announcer init --webhook https://hooks.slack.com/services/...
  announcer init --output ci/announcer.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.target, "target", "", "Chat service: slack or teams (default slack)")
	cmd.Flags().StringArrayVar(&flags.webhooks, "webhook", nil, "Webhook URL to write into the file (repeatable)")
	cmd.Flags().StringVar(&flags.projectName, "projectname", "", "Project name to write into the file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.target != "" && !configloader.IsValidTarget(flags.target) {
		return fmt.Errorf("%w: invalid target %q: must be slack or teams", ErrUsage, flags.target)
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Target:      flags.target,
		Webhooks:    flags.webhooks,
		ProjectName: flags.projectName,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	err = fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode, flags.force)
	if errors.Is(err, fsutil.ErrExists) {
		return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
	}
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if len(flags.webhooks) > 0 {
		logger.Warn("webhook URLs are secrets; keep this file out of version control or use ANNOUNCER_WEBHOOKS")
	}
	logger.Info("run 'announcer render --changelogversion <version>' to preview a message")

	return nil
}
