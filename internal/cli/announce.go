package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/yaklabco/announcer/internal/logging"
	"github.com/yaklabco/announcer/internal/ui/pretty"
	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/config"
	goldmarkparser "github.com/yaklabco/announcer/pkg/parser/goldmark"
	"github.com/yaklabco/announcer/pkg/reporter"
)

// spinnerCharSet is a braille spinner.
const spinnerCharSet = 14

type announceFlags struct {
	releaseFlags
	webhooks  []string
	slackhook []string
	timeout   time.Duration
	dryRun    bool
}

func newAnnounceCommand(info BuildInfo) *cobra.Command {
	flags := &announceFlags{}

	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Post a changelog section to Slack or Teams",
		Long:  announceLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnnounce(cmd, flags, info)
		},
	}

	addReleaseFlags(cmd, &flags.releaseFlags)
	cmd.Flags().StringArrayVar(&flags.webhooks, "webhook", nil, "incoming webhook URL (repeatable)")
	cmd.Flags().StringArrayVar(&flags.slackhook, "slackhook", nil, "incoming webhook URL (repeatable)")
	_ = cmd.Flags().MarkDeprecated("slackhook", "use --webhook instead")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-webhook request timeout (default 10s)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the payload instead of posting it")

	return cmd
}

const announceLongDescription = `Extract one version's section from a keep-a-changelog file and post it
to one or more incoming webhooks.

Slack receives mrkdwn attachments; Teams receives an HTML MessageCard. Both
get "View changes" and "View CHANGELOG.md" buttons when the version heading
links to a compare or tree URL.

Examples:
  announcer announce --changelogversion 1.2.0 --webhook https://hooks.slack.com/services/...
  announcer announce --target teams --changelogversion 1.2.0 --webhook https://example.webhook.office.com/...
  announcer announce --changelogversion 1.2.0 --dry-run`

func runAnnounce(cmd *cobra.Command, flags *announceFlags, info BuildInfo) error {
	if err := flags.validate(); err != nil {
		return err
	}

	// --slackhook is the old spelling of --webhook; mixing them is ambiguous.
	if len(flags.webhooks) > 0 && len(flags.slackhook) > 0 {
		return fmt.Errorf("%w: --webhook and --slackhook are mutually exclusive", ErrUsage)
	}

	cliCfg := &config.Config{Timeout: flags.timeout, DryRun: flags.dryRun}
	flags.apply(cliCfg)
	switch {
	case len(flags.webhooks) > 0:
		cliCfg.Webhooks = flags.webhooks
	case len(flags.slackhook) > 0:
		cliCfg.Webhooks = flags.slackhook
	}

	sess, err := openSession(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := sess.cfg
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	client := announce.NewClient(cfg.Timeout,
		announce.WithUserAgent("announcer/"+info.Version),
		announce.WithLogger(logger),
	)
	announcer := announce.New(goldmarkparser.New(string(cfg.Flavor)), client, logger)

	stop := startSpinner(cmd.ErrOrStderr(), cfg, len(cfg.Webhooks))
	ann, err := announcer.Announce(ctx, sess.request())
	stop()

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	if err != nil {
		if ann != nil && ann.Delivered > 0 {
			fmt.Fprint(cmd.OutOrStdout(), styles.FormatDelivered(ann.Delivered, len(cfg.Webhooks), false))
		}
		return err
	}

	if cfg.DryRun {
		rep := reporter.NewPayloadReporter(reporter.Options{Writer: cmd.OutOrStdout()})
		if err := rep.Report(ctx, &reporter.Preview{Payload: ann.Payload}); err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatDelivered(0, len(cfg.Webhooks), true))
		return nil
	}

	logger.Debug("delivery finished",
		logging.FieldWebhooks, ann.Delivered,
		logging.FieldDiffURL, ann.Result.DiffURL,
	)
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatDelivered(ann.Delivered, len(cfg.Webhooks), false))
	return nil
}

// startSpinner shows progress on an interactive stderr while webhooks are
// posted. It returns the function that stops it.
func startSpinner(w io.Writer, cfg *config.Config, webhooks int) func() {
	f, ok := w.(*os.File)
	if !ok || !pretty.IsTerminal(f) || cfg.DryRun || webhooks == 0 {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[spinnerCharSet], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = fmt.Sprintf(" posting %s to %d webhook(s)", cfg.Version, webhooks)
	s.Start()
	return s.Stop
}
