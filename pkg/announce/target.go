package announce

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/announcer/pkg/changelog"
)

// Target is the chat service a webhook belongs to.
type Target string

// Supported targets.
const (
	TargetSlack Target = "slack"
	TargetTeams Target = "teams"
)

// ErrUnknownTarget is returned by ParseTarget for unsupported names.
var ErrUnknownTarget = errors.New("unknown target")

// ParseTarget validates a target name. Matching is case-insensitive.
func ParseTarget(name string) (Target, error) {
	switch t := Target(strings.ToLower(strings.TrimSpace(name))); t {
	case TargetSlack, TargetTeams:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownTarget, name, TargetSlack, TargetTeams)
	}
}

// Dialect is the markup the target's webhook understands.
func (t Target) Dialect() changelog.Dialect {
	if t == TargetTeams {
		return changelog.DialectHTML
	}
	return changelog.DialectMrkdwn
}

// String implements fmt.Stringer.
func (t Target) String() string {
	return string(t)
}
