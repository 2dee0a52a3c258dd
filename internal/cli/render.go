package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/announcer/internal/logging"
	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/config"
	"github.com/yaklabco/announcer/pkg/fsutil"
	goldmarkparser "github.com/yaklabco/announcer/pkg/parser/goldmark"
	"github.com/yaklabco/announcer/pkg/reporter"
)

type renderFlags struct {
	releaseFlags
	format  string
	compact bool
	watch   bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Preview a changelog section as it would be posted",
		Long: `Render one version's changelog section in the target's dialect and print
it without posting anything.

Formats:
  text      header, rendered body and the derived links
  json      the rendered result as a JSON document
  sections  each Teams card section separately
  payload   the exact JSON body that announce would post

With --watch the changelog is re-rendered every time it is saved.

Examples:
  announcer render --changelogversion 1.2.0
  announcer render --changelogversion 1.2.0 --target teams --format sections
  announcer render --changelogversion 1.2.0 --format payload --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, flags)
		},
	}

	addReleaseFlags(cmd, &flags.releaseFlags)
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, sections, payload (default text)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "single-line JSON for json and payload formats")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the changelog changes")

	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}

	cliCfg := &config.Config{}
	flags.apply(cliCfg)
	if flags.format != "" {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cliCfg.Format = config.OutputFormat(format)
	}

	sess, err := openSession(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := sess.cfg
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	colorMode, _ := cmd.Flags().GetString("color")
	rep, err := reporter.New(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Format:  format,
		Color:   colorMode,
		Compact: flags.compact,
	})
	if err != nil {
		return err
	}

	req := sess.request()
	req.DryRun = true
	if format == reporter.FormatSections && strings.EqualFold(cfg.Target, string(announce.TargetTeams)) {
		req.TeamsSections = true
	}
	announcer := announce.New(goldmarkparser.New(string(cfg.Flavor)), nil, logger)

	render := func(ctx context.Context, content []byte) error {
		req.Content = content
		ann, err := announcer.Prepare(ctx, req)
		if err != nil {
			return err
		}
		return rep.Report(ctx, &reporter.Preview{
			Project:       req.Project,
			Version:       req.Version,
			Target:        targetOrDefault(req.Target),
			ChangelogPath: sess.changelogPath,
			Result:        ann.Result,
			Payload:       ann.Payload,
		})
	}

	if err := render(ctx, sess.content); err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}

	logger.Info("watching for changes", logging.FieldPath, sess.changelogPath)
	return fsutil.Watch(ctx, sess.snapshot, func(content []byte, _ *fsutil.Snapshot) error {
		if err := render(ctx, content); err != nil {
			logger.Error("render failed", logging.FieldPath, sess.changelogPath, logging.FieldError, err)
		}
		return nil
	})
}

// targetOrDefault resolves an unset target to Slack.
func targetOrDefault(target announce.Target) announce.Target {
	if parsed, err := announce.ParseTarget(string(target)); err == nil {
		return parsed
	}
	return announce.TargetSlack
}
