// Package app provides the application context and dependency management
// for the lingo CLI. It centralizes configuration, logging and the lingo
// client so commands only depend on the application.Application interface.
package app

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/lingo"
	"github.com/agentstation/lingo/internal/cmd/application"
	"github.com/agentstation/lingo/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the lingo application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	viper  *viper.Viper

	// Logger
	logger *zerolog.Logger

	// Default client (lazy-initialized, singleton)
	mu     sync.RWMutex
	client lingo.Client
	opts   []lingo.Option
}

// New creates a new App instance with the given version information.
// Configuration is loaded from .env files, LINGO_ environment variables and
// the .lingo config file unless WithConfig provides one.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Apply custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.viper == nil {
		app.viper = viper.New()
	}

	// Load configuration
	if app.config == nil {
		config, err := LoadConfig(app.viper)
		if err != nil {
			return nil, errors.NewConfigError("app", "loading configuration", err)
		}
		app.config = config
	}

	// Initialize logger
	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Viper returns the configuration source commands bind their flags to.
func (a *App) Viper() *viper.Viper {
	return a.viper
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Client returns a lingo client. Without options the default client is
// created lazily and cached; with options a new client is created each
// call. Options given with WithClientOptions apply to both.
func (a *App) Client(opts ...lingo.Option) (lingo.Client, error) {
	if len(opts) > 0 {
		return a.newClient(opts...)
	}

	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := a.newClient()
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

func (a *App) newClient(opts ...lingo.Option) (lingo.Client, error) {
	all := []lingo.Option{lingo.WithLogger(a.logger)}
	all = append(all, a.opts...)
	all = append(all, opts...)

	c, err := lingo.New(all...)
	if err != nil {
		return nil, errors.NewConfigError("app", "creating lingo client", err)
	}
	return c, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithViper sets the viper instance configuration is read from.
func WithViper(v *viper.Viper) Option {
	return func(a *App) error {
		a.viper = v
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClientOptions adds options to every client the app creates, for
// example lingo.WithFs in tests.
func WithClientOptions(opts ...lingo.Option) Option {
	return func(a *App) error {
		a.opts = append(a.opts, opts...)
		return nil
	}
}
