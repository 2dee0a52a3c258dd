package configloader

import (
	"slices"

	"github.com/yaklabco/announcer/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true overrides, so a flag cannot unset a file value
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Target != "" {
		result.Target = override.Target
	}
	if override.ChangelogFile != "" {
		result.ChangelogFile = override.ChangelogFile
	}
	if override.ProjectName != "" {
		result.ProjectName = override.ProjectName
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.TableStyle != "" {
		result.TableStyle = override.TableStyle
	}
	if override.Timeout != 0 {
		result.Timeout = override.Timeout
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	if override.DetectCodeLanguage {
		result.DetectCodeLanguage = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.Strict {
		result.Strict = true
	}

	result.Slack = mergeSlack(base.Slack, override.Slack)
	if override.Teams.Sections {
		result.Teams.Sections = true
	}

	if override.Webhooks != nil {
		result.Webhooks = slices.Clone(override.Webhooks)
	}

	return &result
}

// mergeSlack merges Slack settings field by field.
func mergeSlack(base, override config.SlackConfig) config.SlackConfig {
	result := base
	if override.Username != "" {
		result.Username = override.Username
	}
	if override.IconURL != "" {
		result.IconURL = override.IconURL
	}
	if override.IconEmoji != "" {
		result.IconEmoji = override.IconEmoji
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
