package configloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envVarPrefix is the prefix for all announcer environment variables.
const envVarPrefix = "ANNOUNCER_"

// envMappings maps environment variable names (without prefix) to config keys.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]string{
	"TARGET":               "target",
	"WEBHOOKS":             "webhooks",
	"CHANGELOG_FILE":       "changelog_file",
	"PROJECT_NAME":         "project_name",
	"FLAVOR":               "flavor",
	"TABLE_STYLE":          "table_style",
	"DETECT_CODE_LANGUAGE": "detect_code_language",
	"TIMEOUT":              "timeout",
	"LOG_LEVEL":            "log_level",
	"SLACK_USERNAME":       "slack.username",
	"SLACK_ICON_URL":       "slack.icon_url",
	"SLACK_ICON_EMOJI":     "slack.icon_emoji",
	"TEAMS_SECTIONS":       "teams.sections",
}

// loadEnv layers ANNOUNCER_* variables onto k. Unknown variables and empty
// values are skipped. ANNOUNCER_WEBHOOKS is a comma-separated list.
func loadEnv(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(envVarPrefix, ".", envTransform)
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform maps ANNOUNCER_SLACK_ICON_URL to slack.icon_url.
func envTransform(name, value string) (string, any) {
	key, ok := envMappings[strings.TrimPrefix(name, envVarPrefix)]
	if !ok || strings.TrimSpace(value) == "" {
		return "", nil
	}

	if key == "webhooks" {
		return key, splitList(value)
	}
	return key, strings.TrimSpace(value)
}

// EnvVarName returns the environment variable that sets key,
// e.g. ANNOUNCER_SLACK_ICON_URL for slack.icon_url.
func EnvVarName(key string) string {
	return envVarPrefix + strings.ToUpper(strings.ReplaceAll(key, keyDelim, "_"))
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
