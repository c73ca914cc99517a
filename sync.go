package lingo

import (
	"context"
	"time"

	"github.com/agentstation/lingo/pkg/batch"
	"github.com/agentstation/lingo/pkg/logging"
)

// Syncer runs reconciliation batches.
type Syncer interface {
	// Sync reconciles every target of plan against its reference, backs up
	// the old targets and writes the new content.
	Sync(ctx context.Context, plan batch.Plan, opts ...SyncOption) (*batch.Report, error)
}

// SyncOptions controls a single Sync call.
type SyncOptions struct {
	DryRun  bool          // Reconcile and report without changing files
	Timeout time.Duration // Timeout for the batch (zero means none)
}

// SyncOption is a function that configures SyncOptions.
type SyncOption func(*SyncOptions)

// NewSyncOptions returns SyncOptions with opts applied.
func NewSyncOptions(opts ...SyncOption) *SyncOptions {
	o := &SyncOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) SyncOption {
	return func(o *SyncOptions) {
		o.DryRun = dryRun
	}
}

// WithTimeout configures the batch timeout.
func WithTimeout(timeout time.Duration) SyncOption {
	return func(o *SyncOptions) {
		o.Timeout = timeout
	}
}

// Sync implements Syncer.
func (c *client) Sync(ctx context.Context, plan batch.Plan, opts ...SyncOption) (*batch.Report, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.options.logger != nil {
		ctx = logging.WithLogger(ctx, c.options.logger)
	}

	// Step 1: Parse options
	options := NewSyncOptions(opts...)

	// Step 2: Build the runner for this batch
	runner, err := batch.NewRunner(c.options.storage,
		batch.WithReconciler(c.reconciler),
		batch.WithObserver(c.hooks),
		batch.WithConcurrency(c.options.concurrency),
		batch.WithDryRun(options.DryRun),
		batch.WithTimeout(options.Timeout),
	)
	if err != nil {
		return nil, err
	}

	// Step 3: Run the batch
	return runner.Run(ctx, plan)
}
