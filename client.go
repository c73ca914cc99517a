// Package lingo provides the main entry point for reconciling localized
// translation files against a reference file.
//
// A reference document (for example locales/en.json) decides which keys
// exist and in which order. Every target document is rebuilt in that shape:
// values the target translates are kept, missing or empty values fall back
// to the reference, and keys the reference does not know are dropped. The
// previous target file is kept as a backup next to the new one.
//
// Example usage:
//
//	// Create a client over the real filesystem
//	lc, err := lingo.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register event hooks
//	lc.OnTargetWritten(func(rec batch.Record) {
//	    log.Printf("wrote %s", rec.Target.Path)
//	})
//
//	// Reconcile French and German against English
//	report, err := lc.Sync(ctx, batch.Plan{
//	    Reference: "locales/en.json",
//	    Targets: []batch.Target{
//	        batch.NewTarget("locales/fr.json", ""),
//	        batch.NewTarget("locales/de.json", ""),
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
package lingo

import (
	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/logging"
	"github.com/agentstation/lingo/pkg/reconciler"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client reconciles translation files and reports progress through hooks.
type Client interface {

	// Reconciler reconciles single trees and files without writing
	Reconciler

	// Syncer runs whole batches
	Syncer

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// reconciler is shared by every operation of the client
	reconciler reconciler.Reconciler

	// hooks are the event callbacks for batch progress
	hooks *hooks
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	options, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	rcOpts := []reconciler.Option{reconciler.WithStrict(options.strict)}
	if options.logger != nil {
		rcOpts = append(rcOpts, reconciler.WithLogger(options.logger))
	}
	rc, err := reconciler.New(rcOpts...)
	if err != nil {
		return nil, errors.NewConfigError("client", "creating reconciler", err)
	}

	logging.Debug().
		Bool("strict", options.strict).
		Int("concurrency", options.concurrency).
		Msg("Created lingo client")

	return &client{
		options:    options,
		reconciler: rc,
		hooks:      newHooks(),
	}, nil
}
