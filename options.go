package lingo

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/storage"
)

// options holds the client configuration.
type options struct {
	storage     storage.Storage
	logger      *zerolog.Logger
	strict      bool
	concurrency int
}

func defaults() *options {
	return &options{
		storage:     nil,
		logger:      nil,
		strict:      false,
		concurrency: constants.DefaultConcurrency,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.storage == nil {
		o.storage = storage.OS()
	}
	return o, nil
}

// Option is a function that configures a Client instance.
type Option func(*options) error

// WithFs runs every file operation against fs, for example an
// afero.NewMemMapFs in tests or an afero.NewBasePathFs rooted at a project.
func WithFs(fs afero.Fs) Option {
	return func(o *options) error {
		if fs == nil {
			return &errors.ValidationError{Field: "fs", Message: "cannot be nil"}
		}
		o.storage = storage.New(fs)
		return nil
	}
}

// WithStorage configures a custom storage for file operations.
func WithStorage(s storage.Storage) Option {
	return func(o *options) error {
		if s == nil {
			return &errors.ValidationError{Field: "storage", Message: "cannot be nil"}
		}
		o.storage = s
		return nil
	}
}

// WithLogger configures the logger. Without it the logger carried by each
// call's context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithStrict makes shape mismatches between target and reference fail the
// operation instead of falling back to the reference.
func WithStrict(strict bool) Option {
	return func(o *options) error {
		o.strict = strict
		return nil
	}
}

// WithConcurrency limits how many files a batch handles at once.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxConcurrency {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: "must be between 1 and 64",
			}
		}
		o.concurrency = n
		return nil
	}
}
