package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lingo/pkg/batch"
	"github.com/agentstation/lingo/pkg/errors"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadPlanFromLanguages(t *testing.T) {
	v := newViper()
	v.Set(KeyReference, "locales/en.json")
	v.Set(KeyLanguages, []string{"fr", "pt-BR"})

	plan, err := LoadPlan(v)
	require.NoError(t, err)
	assert.Equal(t, "locales/en.json", plan.Reference)
	assert.Equal(t, []batch.Target{
		{Language: "fr", Path: filepath.Join("locales", "fr.json"), Backup: filepath.Join("locales", "fr_old.json")},
		{Language: "pt-BR", Path: filepath.Join("locales", "pt-BR.json"), Backup: filepath.Join("locales", "pt-BR_old.json")},
	}, plan.Targets)
}

func TestLoadPlanLanguagesWithDirAndFormat(t *testing.T) {
	v := newViper()
	v.Set(KeyReference, "en.yaml")
	v.Set(KeyDir, "i18n")
	v.Set(KeyFormat, "json")
	v.Set(KeyBackupSuffix, ".bak")
	v.Set(KeyLanguages, []string{"de"})

	plan, err := LoadPlan(v)
	require.NoError(t, err)
	require.Len(t, plan.Targets, 1)
	assert.Equal(t, filepath.Join("i18n", "de.json"), plan.Targets[0].Path)
	assert.Equal(t, filepath.Join("i18n", "de.bak.json"), plan.Targets[0].Backup)
}

func TestLoadPlanFromTargetSpecs(t *testing.T) {
	v := newViper()
	v.Set(KeyReference, "en.json")
	v.Set(KeyTarget, []string{"fr.json", "de.json:backup/de.json"})

	plan, err := LoadPlan(v)
	require.NoError(t, err)
	assert.Equal(t, []batch.Target{
		{Language: "fr", Path: "fr.json", Backup: "fr_old.json"},
		{Language: "de", Path: "de.json", Backup: "backup/de.json"},
	}, plan.Targets)
}

func TestLoadPlanFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".lingo.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
reference: locales/en.json
strict: true
concurrency: 2
targets:
  - path: locales/fr.json
  - path: locales/legacy.json
    backup: archive/legacy.json
    language: es
`), 0o644))

	v := newViper()
	v.SetConfigFile(file)
	require.NoError(t, v.ReadInConfig())

	settings, err := Load(v)
	require.NoError(t, err)
	assert.True(t, settings.Strict)
	assert.Equal(t, 2, settings.Concurrency)
	assert.False(t, settings.DryRun)
	assert.Equal(t, []batch.Target{
		{Language: "fr", Path: "locales/fr.json", Backup: "locales/fr_old.json"},
		{Language: "es", Path: "locales/legacy.json", Backup: "archive/legacy.json"},
	}, settings.Plan.Targets)
}

func TestLoadPlanFromEnv(t *testing.T) {
	t.Setenv("LINGO_REFERENCE", "en.json")
	t.Setenv("LINGO_LANGUAGES", "fr de")

	v := newViper()
	v.SetEnvPrefix("LINGO")
	v.AutomaticEnv()

	plan, err := LoadPlan(v)
	require.NoError(t, err)
	require.Len(t, plan.Targets, 2)
	assert.Equal(t, "fr", plan.Targets[0].Language)
	assert.Equal(t, "de", plan.Targets[1].Language)
}

func TestLoadPlanErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(v *viper.Viper)
		check func(error) bool
	}{
		{
			name:  "no reference",
			setup: func(v *viper.Viper) { v.Set(KeyLanguages, []string{"fr"}) },
			check: isConfigError,
		},
		{
			name:  "no targets",
			setup: func(v *viper.Viper) { v.Set(KeyReference, "en.json") },
			check: isConfigError,
		},
		{
			name: "bad language",
			setup: func(v *viper.Viper) {
				v.Set(KeyReference, "en.json")
				v.Set(KeyLanguages, []string{"not a language"})
			},
			check: errors.IsValidationError,
		},
		{
			name: "bad format",
			setup: func(v *viper.Viper) {
				v.Set(KeyReference, "en.json")
				v.Set(KeyFormat, "toml")
				v.Set(KeyLanguages, []string{"fr"})
			},
			check: errors.IsValidationError,
		},
		{
			name: "target is reference",
			setup: func(v *viper.Viper) {
				v.Set(KeyReference, "en.json")
				v.Set(KeyTarget, []string{"en.json"})
			},
			check: errors.IsValidationError,
		},
		{
			name: "empty spec",
			setup: func(v *viper.Viper) {
				v.Set(KeyReference, "en.json")
				v.Set(KeyTarget, []string{":backup.json"})
			},
			check: errors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			tt.setup(v)
			_, err := LoadPlan(v)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %v", err)
		})
	}
}

func TestLoadRejectsConcurrency(t *testing.T) {
	v := newViper()
	v.Set(KeyReference, "en.json")
	v.Set(KeyTarget, []string{"fr.json"})
	v.Set(KeyConcurrency, 1000)

	_, err := Load(v)
	assert.True(t, errors.IsValidationError(err))
}

func TestGetString(t *testing.T) {
	t.Setenv("LINGO_TEST_ONLY_ENV", "from-env")
	v := viper.New()
	assert.Equal(t, "from-env", GetString(v, "LINGO_TEST_ONLY_ENV"))

	v.Set("LINGO_TEST_ONLY_ENV", "from-viper")
	assert.Equal(t, "from-viper", GetString(v, "LINGO_TEST_ONLY_ENV"))
}

func isConfigError(err error) bool {
	var ce *errors.ConfigError
	return errors.As(err, &ce)
}
