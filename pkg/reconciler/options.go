package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/lingo/pkg/errors"
)

// options configures a reconciler.
type options struct {
	strict bool
	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithStrict makes the first shape mismatch fail the reconciliation with a
// *errors.ShapeMismatchError instead of falling back to the reference.
func WithStrict(strict bool) Option {
	return func(o *options) error {
		o.strict = strict
		return nil
	}
}

// WithLogger sets the logger used for mismatch warnings. Without it the
// logger carried by the context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}
