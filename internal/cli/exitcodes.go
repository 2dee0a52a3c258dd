package cli

import (
	"errors"
	"os"

	"github.com/yaklabco/announcer/internal/configloader"
	"github.com/yaklabco/announcer/pkg/announce"
	"github.com/yaklabco/announcer/pkg/changelog"
	"github.com/yaklabco/announcer/pkg/fsutil"
)

// Exit codes for announcer, following sysexits.h where one fits.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates an error with no more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates bad configuration or changelog data.
	ExitConfigError = 65

	// ExitUnavailable indicates a webhook rejected or never received the payload.
	ExitUnavailable = 69

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrUsage marks command-line mistakes such as a missing required flag.
var ErrUsage = errors.New("invalid usage")

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validation *configloader.ValidationError
	var delivery *announce.DeliveryError

	switch {
	case errors.Is(err, ErrUsage), errors.Is(err, announce.ErrNoWebhook):
		return ExitInvalidUsage
	case errors.As(err, &delivery), errors.Is(err, announce.ErrDelivery):
		return ExitUnavailable
	case errors.As(err, &validation),
		errors.Is(err, announce.ErrUnknownTarget),
		errors.Is(err, announce.ErrVersionNotFound),
		errors.Is(err, changelog.ErrUnknownDialect):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrExists),
		errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission):
		return ExitIOError
	default:
		return ExitFailure
	}
}
