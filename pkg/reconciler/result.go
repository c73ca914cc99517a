package reconciler

import (
	"fmt"

	"github.com/agentstation/lingo/pkg/tree"
)

// Result is the outcome of reconciling one target against the reference.
type Result struct {
	// Tree has exactly the reference's keys, in the reference's order.
	Tree *tree.Node

	Stats Stats

	// Mismatches lists the keys where target and reference disagreed about
	// subtree versus leaf. Those keys fell back to the reference.
	Mismatches []Mismatch
}

// Stats counts reference leaves by where their value came from.
type Stats struct {
	Keys       int `json:"keys" yaml:"keys"`             // leaves in the reference
	Translated int `json:"translated" yaml:"translated"` // leaves taken from the target
	FellBack   int `json:"fell_back" yaml:"fell_back"`   // leaves taken from the reference
	Mismatches int `json:"mismatches" yaml:"mismatches"`
}

// Mismatch records a key whose shape differs between target and reference.
type Mismatch struct {
	Path     string    `json:"path" yaml:"path"`
	Expected tree.Kind `json:"expected" yaml:"expected"`
	Got      tree.Kind `json:"got" yaml:"got"`
}

// String returns a human-readable description of the mismatch.
func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", m.Path, m.Expected, m.Got)
}

// Coverage returns the share of reference leaves that came from the target,
// between 0 and 1. A reference without leaves is fully covered.
func (s Stats) Coverage() float64 {
	if s.Keys == 0 {
		return 1
	}
	return float64(s.Translated) / float64(s.Keys)
}

// Summary returns a one-line description of the stats.
func (s Stats) Summary() string {
	summary := fmt.Sprintf("%d/%d translated, %d fell back", s.Translated, s.Keys, s.FellBack)
	if s.Mismatches > 0 {
		summary += fmt.Sprintf(", %d shape mismatches", s.Mismatches)
	}
	return summary
}
