// Package batch runs a reconciliation batch: it loads a reference document
// and its localized targets, reconciles every target, backs up the old
// files and writes the new content.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"github.com/agentstation/lingo/pkg/codec"
	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
)

// Target is one localized document and the path its old content is moved to.
type Target struct {
	Language string `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
	Path     string `json:"path" yaml:"path" mapstructure:"path"`
	Backup   string `json:"backup" yaml:"backup" mapstructure:"backup"`
}

// Plan lists the documents of one batch.
type Plan struct {
	Reference string   `json:"reference" yaml:"reference" mapstructure:"reference"`
	Targets   []Target `json:"targets" yaml:"targets" mapstructure:"targets"`
}

// BackupPath returns the backup path for path, inserting suffix before the
// extension: "locales/fr.json" becomes "locales/fr_old.json".
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = constants.DefaultBackupSuffix
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// NewTarget returns a target for path with a backup next to it. The
// language is taken from the file name when it is a valid language tag.
func NewTarget(path, backupSuffix string) Target {
	t := Target{
		Path:   path,
		Backup: BackupPath(path, backupSuffix),
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if tag, err := language.Parse(base); err == nil {
		t.Language = tag.String()
	}
	return t
}

// LanguageTarget returns the target for a language stored as
// dir/<language><ext>.
func LanguageTarget(dir, lang string, format codec.Format, backupSuffix string) (Target, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return Target{}, &errors.ValidationError{
			Field:   "language",
			Value:   lang,
			Message: fmt.Sprintf("not a valid language tag: %v", err),
		}
	}
	path := filepath.Join(dir, lang+format.Extension())
	return Target{
		Language: tag.String(),
		Path:     path,
		Backup:   BackupPath(path, backupSuffix),
	}, nil
}

// Validate checks the target on its own.
func (t Target) Validate() error {
	if t.Path == "" {
		return &errors.ValidationError{Field: "path", Message: "target path is required"}
	}
	if t.Backup == "" {
		return &errors.ValidationError{Field: "backup", Value: t.Path, Message: "backup path is required"}
	}
	if filepath.Clean(t.Backup) == filepath.Clean(t.Path) {
		return &errors.ValidationError{Field: "backup", Value: t.Backup, Message: "backup path must differ from target path"}
	}
	if _, err := codec.ForPath(t.Path); err != nil {
		return err
	}
	if t.Language != "" {
		if _, err := language.Parse(t.Language); err != nil {
			return &errors.ValidationError{
				Field:   "language",
				Value:   t.Language,
				Message: fmt.Sprintf("not a valid language tag: %v", err),
			}
		}
	}
	return nil
}

// Name returns the language when set and the path otherwise.
func (t Target) Name() string {
	if t.Language != "" {
		return t.Language
	}
	return t.Path
}

// Validate checks that the plan can run without two steps touching the
// same file.
func (p Plan) Validate() error {
	if p.Reference == "" {
		return &errors.ValidationError{Field: "reference", Message: "reference path is required"}
	}
	if _, err := codec.ForPath(p.Reference); err != nil {
		return err
	}

	ref := filepath.Clean(p.Reference)
	seen := map[string]string{ref: "reference"}
	for i, t := range p.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
		for _, path := range []string{t.Path, t.Backup} {
			clean := filepath.Clean(path)
			if owner, ok := seen[clean]; ok {
				return &errors.ValidationError{
					Field:   fmt.Sprintf("targets[%d]", i),
					Value:   path,
					Message: fmt.Sprintf("path %s is already used by %s", path, owner),
				}
			}
			seen[clean] = t.Name()
		}
	}
	return nil
}
