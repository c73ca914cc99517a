package batch

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/reconciler"
)

// Options controls how a Runner executes a plan.
type Options struct {
	DryRun      bool          // Reconcile and report without renaming or writing
	Concurrency int           // Files handled at once in each I/O stage
	Timeout     time.Duration // Timeout for the entire batch (zero means none)

	Reconciler reconciler.Reconciler // Reconciler used for every target
	Observer   Observer              // Notified as targets progress
	Logger     *zerolog.Logger       // Falls back to the context logger
}

// Defaults returns the default runner options.
func Defaults() *Options {
	return &Options{
		DryRun:      false,
		Concurrency: constants.DefaultConcurrency,
		Timeout:     0,
	}
}

// Option is a function that configures runner Options.
type Option func(*Options)

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate checks that the options are usable.
func (o *Options) Validate() error {
	if o.Concurrency < 1 || o.Concurrency > constants.MaxConcurrency {
		return &errors.ValidationError{
			Field:   "Concurrency",
			Value:   o.Concurrency,
			Message: "concurrency must be between 1 and 64",
		}
	}
	if o.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   o.Timeout,
			Message: "timeout must be non-negative",
		}
	}
	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithConcurrency limits how many files each stage handles at once.
func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

// WithTimeout configures the batch timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithReconciler sets the reconciler used for every target.
func WithReconciler(r reconciler.Reconciler) Option {
	return func(o *Options) {
		o.Reconciler = r
	}
}

// WithObserver registers an observer for target events.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// WithLogger sets the logger for the batch.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
