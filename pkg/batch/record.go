package batch

import (
	"github.com/agentstation/lingo/pkg/codec"
	"github.com/agentstation/lingo/pkg/reconciler"
	"github.com/agentstation/lingo/pkg/tree"
)

// document is a file loaded in the read stage.
type document struct {
	path   string
	format codec.Format
	raw    []byte
	tree   *tree.Node
}

// Record carries one reconciled target from the reconcile stage to the
// rename and write stages.
type Record struct {
	Target  Target
	Format  codec.Format
	Content []byte
	Result  *reconciler.Result

	// Changed reports whether Content differs from the file that was read.
	Changed bool
}

// Observer is notified as targets move through a batch. OnWritten may be
// called from several goroutines at once.
type Observer interface {
	OnReconciled(rec Record)
	OnWritten(rec Record)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Reconciled func(rec Record)
	Written    func(rec Record)
}

// OnReconciled implements Observer.
func (f ObserverFuncs) OnReconciled(rec Record) {
	if f.Reconciled != nil {
		f.Reconciled(rec)
	}
}

// OnWritten implements Observer.
func (f ObserverFuncs) OnWritten(rec Record) {
	if f.Written != nil {
		f.Written(rec)
	}
}
