package configloader

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yaklabco/announcer/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "slack.icon_url").
	Field string

	// Value is the invalid value. Webhook errors carry only the host.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown keys).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownTargets = map[string]bool{
	config.TargetSlack: true,
	config.TargetTeams: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownTableStyles = map[string]bool{
	config.TableStylePlain: true,
	config.TableStyleBox:   true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if !knownTargets[strings.ToLower(cfg.Target)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "target",
			Value:   cfg.Target,
			Message: fmt.Sprintf("invalid target %q; must be one of: slack, teams", cfg.Target),
		})
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.TableStyle != "" && !knownTableStyles[cfg.TableStyle] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "table_style",
			Value:   cfg.TableStyle,
			Message: fmt.Sprintf("invalid table style %q; must be one of: plain, box", cfg.TableStyle),
		})
	}

	if cfg.Timeout <= 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "timeout",
			Value:   cfg.Timeout,
			Message: "timeout must be greater than zero",
		})
	}

	if cfg.LogLevel != "" && !knownLogLevels[strings.ToLower(cfg.LogLevel)] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sections, payload", cfg.Format),
		})
	}

	validateWebhooks(cfg, result)

	if cfg.Slack.IconURL != "" && cfg.Slack.IconEmoji != "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "slack.icon_emoji",
			Value:   cfg.Slack.IconEmoji,
			Message: "both icon_url and icon_emoji are set; icon_url takes precedence",
		})
	}

	return result
}

// validateWebhooks checks that every webhook is an absolute http(s) URL.
// Messages never include the full URL since it carries the webhook secret.
func validateWebhooks(cfg *config.Config, result *ValidationResult) {
	for i, raw := range cfg.Webhooks {
		field := fmt.Sprintf("webhooks[%d]", i)

		u, err := url.Parse(raw)
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Message: "webhook is not a valid URL",
			})
			continue
		}

		if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   u.Host,
				Message: "webhook must be an absolute http or https URL",
			})
			continue
		}

		if u.Scheme == "http" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   u.Host,
				Message: "webhook uses plain http; the URL is sent unencrypted",
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidTarget returns true if the target name is valid.
func IsValidTarget(target string) bool {
	return knownTargets[strings.ToLower(target)]
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidTableStyle returns true if the table style is valid.
func IsValidTableStyle(style string) bool {
	return knownTableStyles[style]
}
