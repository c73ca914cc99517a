// Package config turns viper settings (flags, LINGO_ environment variables
// and .lingo.yaml) into batch plans.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/lingo/pkg/batch"
	"github.com/agentstation/lingo/pkg/codec"
	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
)

// Keys read from viper.
const (
	KeyReference    = "reference"
	KeyDir          = "dir"
	KeyLanguages    = "languages"
	KeyFormat       = "format"
	KeyBackupSuffix = "backup_suffix"
	KeyTargets      = "targets"
	KeyTarget       = "target"
	KeyStrict       = "strict"
	KeyConcurrency  = "concurrency"
	KeyDryRun       = "dry_run"
)

// Settings is everything a sync run needs.
type Settings struct {
	Plan        batch.Plan
	Strict      bool
	Concurrency int
	DryRun      bool
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(v *viper.Viper, key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := v.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// SetDefaults registers the default values of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackupSuffix, constants.DefaultBackupSuffix)
	v.SetDefault(KeyConcurrency, constants.DefaultConcurrency)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyDryRun, false)
}

// Load reads the settings for a sync run.
func Load(v *viper.Viper) (*Settings, error) {
	plan, err := LoadPlan(v)
	if err != nil {
		return nil, err
	}

	concurrency := v.GetInt(KeyConcurrency)
	if concurrency == 0 {
		concurrency = constants.DefaultConcurrency
	}
	if concurrency < 0 || concurrency > constants.MaxConcurrency {
		return nil, &errors.ValidationError{
			Field:   KeyConcurrency,
			Value:   concurrency,
			Message: fmt.Sprintf("must be between 1 and %d", constants.MaxConcurrency),
		}
	}

	return &Settings{
		Plan:        plan,
		Strict:      v.GetBool(KeyStrict),
		Concurrency: concurrency,
		DryRun:      v.GetBool(KeyDryRun),
	}, nil
}

// LoadPlan builds a plan from the reference path plus targets given three
// ways, in this order: explicit targets entries, "path[:backup]" target
// specs, and language codes resolved against dir.
func LoadPlan(v *viper.Viper) (batch.Plan, error) {
	reference := strings.TrimSpace(v.GetString(KeyReference))
	if reference == "" {
		return batch.Plan{}, &errors.ConfigError{
			Component: KeyReference,
			Message:   "a reference file is required (--reference or LINGO_REFERENCE)",
		}
	}

	suffix := v.GetString(KeyBackupSuffix)
	if suffix == "" {
		suffix = constants.DefaultBackupSuffix
	}

	plan := batch.Plan{Reference: reference}

	// Step 1: Explicit targets from the config file
	var entries []batch.Target
	if err := v.UnmarshalKey(KeyTargets, &entries); err != nil {
		return batch.Plan{}, errors.NewConfigError(KeyTargets, "invalid targets list", err)
	}
	for i, e := range entries {
		if e.Path == "" {
			return batch.Plan{}, &errors.ValidationError{
				Field:   fmt.Sprintf("%s[%d].path", KeyTargets, i),
				Message: "target path is required",
			}
		}
		t := batch.NewTarget(e.Path, suffix)
		if e.Backup != "" {
			t.Backup = e.Backup
		}
		if e.Language != "" {
			t.Language = e.Language
		}
		plan.Targets = append(plan.Targets, t)
	}

	// Step 2: path[:backup] specs from flags
	for _, spec := range v.GetStringSlice(KeyTarget) {
		t, err := ParseTargetSpec(spec, suffix)
		if err != nil {
			return batch.Plan{}, err
		}
		plan.Targets = append(plan.Targets, t)
	}

	// Step 3: Languages resolved against the locale directory
	languages := v.GetStringSlice(KeyLanguages)
	if len(languages) > 0 {
		format, err := resolveFormat(v.GetString(KeyFormat), reference)
		if err != nil {
			return batch.Plan{}, err
		}
		dir := v.GetString(KeyDir)
		if dir == "" {
			dir = filepath.Dir(reference)
		}
		for _, lang := range languages {
			lang = strings.TrimSpace(lang)
			if lang == "" {
				continue
			}
			t, err := batch.LanguageTarget(dir, lang, format, suffix)
			if err != nil {
				return batch.Plan{}, err
			}
			plan.Targets = append(plan.Targets, t)
		}
	}

	if len(plan.Targets) == 0 {
		return batch.Plan{}, &errors.ConfigError{
			Component: KeyTargets,
			Message:   "no targets configured (use --target, --languages or a targets list)",
		}
	}

	if err := plan.Validate(); err != nil {
		return batch.Plan{}, err
	}
	return plan, nil
}

// ParseTargetSpec parses "path" or "path:backup".
func ParseTargetSpec(spec, backupSuffix string) (batch.Target, error) {
	spec = strings.TrimSpace(spec)
	path, backup, _ := strings.Cut(spec, ":")
	if path == "" {
		return batch.Target{}, &errors.ValidationError{
			Field:   KeyTarget,
			Value:   spec,
			Message: "expected path or path:backup",
		}
	}
	t := batch.NewTarget(path, backupSuffix)
	if backup != "" {
		t.Backup = backup
	}
	return t, nil
}

// resolveFormat picks the explicit format, or the reference's own format.
func resolveFormat(explicit, reference string) (codec.Format, error) {
	if explicit != "" {
		return codec.ParseFormat(explicit)
	}
	c, err := codec.ForPath(reference)
	if err != nil {
		return "", err
	}
	return c.Format(), nil
}
