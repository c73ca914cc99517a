// Package constants provides shared constants used throughout the lingo codebase.
// This includes timeouts, limits, file permissions, and naming defaults that
// should be consistent between the library and the CLI.
package constants

import "time"

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout is how long the CLI waits for cleanup after a failure
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// DefaultConcurrency is the number of files read, renamed or written at once
	DefaultConcurrency = 8

	// MaxConcurrency caps the user supplied concurrency
	MaxConcurrency = 64
)

// Naming defaults
const (
	// DefaultBackupSuffix is appended to a target's base name to form its backup
	// path, so locales/fr.json is backed up as locales/fr_old.json.
	DefaultBackupSuffix = "_old"

	// DefaultIndent is the indentation used when serializing documents
	DefaultIndent = "  "

	// KeyPathSeparator joins nested keys in reports and log fields
	KeyPathSeparator = "."
)

// Configuration constants
const (
	// ConfigName is the config file name searched in $HOME and the working directory
	ConfigName = ".lingo"

	// EnvPrefix prefixes every environment variable read by the CLI
	EnvPrefix = "LINGO"
)
