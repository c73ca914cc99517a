package batch

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/lingo/pkg/codec"
	"github.com/agentstation/lingo/pkg/reconciler"
)

// Report describes a finished batch.
type Report struct {
	Reference  string         `json:"reference" yaml:"reference"`
	DryRun     bool           `json:"dry_run" yaml:"dry_run"`
	StartedAt  utc.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time       `json:"finished_at" yaml:"finished_at"`
	Targets    []TargetReport `json:"targets" yaml:"targets"`
}

// TargetReport describes one reconciled target.
type TargetReport struct {
	Language   string                `json:"language,omitempty" yaml:"language,omitempty"`
	Path       string                `json:"path" yaml:"path"`
	Backup     string                `json:"backup" yaml:"backup"`
	Format     codec.Format          `json:"format" yaml:"format"`
	Stats      reconciler.Stats      `json:"stats" yaml:"stats"`
	Mismatches []reconciler.Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	Changed    bool                  `json:"changed" yaml:"changed"`
	Written    bool                  `json:"written" yaml:"written"`
	Bytes      int                   `json:"bytes" yaml:"bytes"`
}

func newTargetReport(rec Record) TargetReport {
	tr := TargetReport{
		Language: rec.Target.Language,
		Path:     rec.Target.Path,
		Backup:   rec.Target.Backup,
		Format:   rec.Format,
		Changed:  rec.Changed,
		Bytes:    len(rec.Content),
	}
	if rec.Result != nil {
		tr.Stats = rec.Result.Stats
		tr.Mismatches = rec.Result.Mismatches
	}
	return tr
}

// Duration returns how long the batch took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Totals sums the stats of every target.
func (r *Report) Totals() reconciler.Stats {
	var total reconciler.Stats
	for _, t := range r.Targets {
		total.Keys += t.Stats.Keys
		total.Translated += t.Stats.Translated
		total.FellBack += t.Stats.FellBack
		total.Mismatches += t.Stats.Mismatches
	}
	return total
}

// ChangedCount returns the number of targets whose content changed.
func (r *Report) ChangedCount() int {
	n := 0
	for _, t := range r.Targets {
		if t.Changed {
			n++
		}
	}
	return n
}

// Summary returns a human-readable summary of the batch.
func (r *Report) Summary() string {
	if len(r.Targets) == 0 {
		return "No targets to reconcile"
	}

	totals := r.Totals()
	summary := fmt.Sprintf("%d targets reconciled against %s, %d changed, %d keys fell back",
		len(r.Targets), r.Reference, r.ChangedCount(), totals.FellBack)
	if totals.Mismatches > 0 {
		summary += fmt.Sprintf(", %d shape mismatches", totals.Mismatches)
	}
	if r.DryRun {
		summary += " (Dry run)"
	}
	return summary
}

// Summary returns a one-line description of the target.
func (tr TargetReport) Summary() string {
	var parts []string
	parts = append(parts, tr.Stats.Summary())
	if !tr.Changed {
		parts = append(parts, "unchanged")
	}
	name := tr.Path
	if tr.Language != "" {
		name = tr.Language + " (" + tr.Path + ")"
	}
	return name + ": " + strings.Join(parts, ", ")
}
