// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Announcement fields.
	FieldProject  = "project"
	FieldRelease  = "release"
	FieldTarget   = "target"
	FieldDialect  = "dialect"
	FieldWebhooks = "webhooks"
	FieldDiffURL  = "diff_url"
	FieldDryRun   = "dry_run"
	FieldFlavor   = "flavor"
	FieldSections = "sections"

	// Delivery fields.
	FieldHost       = "host"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
