package application

import (
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/lingo"
	"github.com/agentstation/lingo/internal/config"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...lingo.Option) (lingo.Client, error) {
//	        return lingo.New(append(opts, lingo.WithFs(fs))...)
//	    },
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := sync.NewCommand(mock)
type Mock struct {
	ClientFunc       func(opts ...lingo.Option) (lingo.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string

	// V is returned by Viper. A fresh instance with defaults is created on
	// first use when it is nil.
	V *viper.Viper
}

// Client returns a client using the mock function or a default client.
func (m *Mock) Client(opts ...lingo.Option) (lingo.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	return lingo.New(opts...)
}

// Viper returns the mock's viper instance.
func (m *Mock) Viper() *viper.Viper {
	if m.V == nil {
		m.V = viper.New()
		config.SetDefaults(m.V)
	}
	return m.V
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor always disables color in tests.
func (m *Mock) NoColor() bool {
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
