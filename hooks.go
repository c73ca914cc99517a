package lingo

import (
	"sync"

	"github.com/agentstation/lingo/pkg/batch"
)

// Hook function types for batch events
type (
	// TargetReconciledHook is called after a target is reconciled and encoded
	TargetReconciledHook func(rec batch.Record)

	// TargetWrittenHook is called after a target's new content is written
	TargetWrittenHook func(rec batch.Record)
)

// Hooks provides event callback registration.
type Hooks interface {
	// OnTargetReconciled registers a callback for reconciled targets
	OnTargetReconciled(TargetReconciledHook)

	// OnTargetWritten registers a callback for written targets. It may be
	// called from several goroutines at once.
	OnTargetWritten(TargetWrittenHook)
}

// OnTargetReconciled registers a callback for reconciled targets.
func (c *client) OnTargetReconciled(fn TargetReconciledHook) {
	c.hooks.OnTargetReconciled(fn)
}

// OnTargetWritten registers a callback for written targets.
func (c *client) OnTargetWritten(fn TargetWrittenHook) {
	c.hooks.OnTargetWritten(fn)
}

// Compile-time check that hooks can observe a batch.
var _ batch.Observer = (*hooks)(nil)

// hooks manages event callbacks for batch progress
type hooks struct {
	mu           sync.RWMutex
	onReconciled []TargetReconciledHook
	onWritten    []TargetWrittenHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnTargetReconciled registers a callback for reconciled targets
func (h *hooks) OnTargetReconciled(fn TargetReconciledHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReconciled = append(h.onReconciled, fn)
}

// OnTargetWritten registers a callback for written targets
func (h *hooks) OnTargetWritten(fn TargetWrittenHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onWritten = append(h.onWritten, fn)
}

// OnReconciled implements batch.Observer
func (h *hooks) OnReconciled(rec batch.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onReconciled {
		hook(rec)
	}
}

// OnWritten implements batch.Observer
func (h *hooks) OnWritten(rec batch.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onWritten {
		hook(rec)
	}
}
