package cli_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/announcer/internal/cli"
	"github.com/yaklabco/announcer/internal/configloader"
	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/fsutil"
)

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"generic", errors.New("boom"), cli.ExitFailure},
		{"cancelled", context.Canceled, cli.ExitFailure},
		{"usage", fmt.Errorf("%w: --changelogversion is required", cli.ErrUsage), cli.ExitInvalidUsage},
		{"no webhook", announce.ErrNoWebhook, cli.ExitInvalidUsage},
		{"delivery", fmt.Errorf("%w: %w", announce.ErrDelivery, &announce.DeliveryError{StatusCode: 500}), cli.ExitUnavailable},
		{"transport", fmt.Errorf("%w: connection refused", announce.ErrDelivery), cli.ExitUnavailable},
		{"validation", &configloader.ValidationError{Field: "target", Message: "bad"}, cli.ExitConfigError},
		{"unknown target", fmt.Errorf("x: %w", announce.ErrUnknownTarget), cli.ExitConfigError},
		{"strict", fmt.Errorf("x: %w", announce.ErrVersionNotFound), cli.ExitConfigError},
		{"missing changelog", fmt.Errorf("%w: CHANGELOG.md", fsutil.ErrNotFound), cli.ExitIOError},
		{"exists", fmt.Errorf("%w: .announcer.yml", fsutil.ErrExists), cli.ExitIOError},
		{"missing config", fmt.Errorf("load explicit config: %w", os.ErrNotExist), cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err))
		})
	}
}
