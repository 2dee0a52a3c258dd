// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered loading with
// koanf, environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yaklabco/announcer/pkg/config"
)

// keyDelim separates nested koanf keys.
const keyDelim = "."

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is loaded after any discovered project config.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading ANNOUNCER_* environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (ANNOUNCER_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.announcer.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/announcer/config.yaml)
//  6. System config (/etc/announcer/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	k := koanf.New(keyDelim)

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"system", paths.System, opts.IgnoreSystemConfig},
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}

		if err := loadFile(k, layer.path, result); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
	}

	if !opts.IgnoreEnv {
		if err := loadEnv(k); err != nil {
			return nil, err
		}
	}

	cfg := config.NewConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadFile reads one YAML layer into its own koanf instance so unknown keys
// can be reported against the file, then merges it into k.
func loadFile(k *koanf.Koanf, path string, result *LoadResult) error {
	layer := koanf.New(keyDelim)
	if err := layer.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for _, key := range layer.Keys() {
		if !isKnownKey(key) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unknown key %q is ignored", path, key))
		}
	}

	if err := k.Merge(layer); err != nil {
		return fmt.Errorf("merge %s: %w", path, err)
	}
	result.LoadedFrom = append(result.LoadedFrom, path)
	return nil
}

// isKnownKey reports whether key is a config key announcer understands.
func isKnownKey(key string) bool {
	for _, known := range envMappings {
		if key == known {
			return true
		}
	}
	return false
}

// KnownKeys returns every configuration key, sorted.
func KnownKeys() []string {
	keys := make([]string, 0, len(envMappings))
	for _, key := range envMappings {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
