// Package application provides the application interface for lingo commands.
//
// Commands accept an Application instead of the concrete App type so they
// can be tested with Mock:
//
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...lingo.Option) (lingo.Client, error) {
//	        return lingo.New(append(opts, lingo.WithFs(afero.NewMemMapFs()))...)
//	    },
//	}
//	cmd := sync.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/lingo"
)

// Application provides the application interface that commands need.
// The App struct from cmd/lingo/app implements it.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns a lingo client. Without options the cached default
	// client is returned; with options a new client is created.
	Client(opts ...lingo.Option) (lingo.Client, error)

	// Viper returns the configuration commands bind their flags to.
	Viper() *viper.Viper

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format flag value, empty when unset.
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
