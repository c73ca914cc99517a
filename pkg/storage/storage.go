// Package storage provides the file operations a reconciliation batch needs,
// backed by an afero filesystem so batches can run against memory in tests.
package storage

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
)

// Storage reads, renames and writes documents.
type Storage interface {
	// ReadFile returns the full contents of path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Rename moves from to to, replacing any file already at to.
	Rename(ctx context.Context, from, to string) error

	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FS is a Storage over an afero filesystem.
type FS struct {
	fs afero.Fs
}

// New returns a Storage backed by fs.
func New(fs afero.Fs) *FS {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FS{fs: fs}
}

// OS returns a Storage backed by the real filesystem.
func OS() *FS {
	return New(afero.NewOsFs())
}

// Memory returns a Storage backed by an empty in-memory filesystem.
func Memory() *FS {
	return New(afero.NewMemMapFs())
}

// Fs returns the underlying filesystem.
func (s *FS) Fs() afero.Fs {
	return s.fs
}

// ReadFile implements Storage.
func (s *FS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, canceled(err)
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}

// Rename implements Storage.
func (s *FS) Rename(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	if err := s.fs.Rename(from, to); err != nil {
		return errors.WrapIO("rename", from, err)
	}
	return nil
}

// WriteFile implements Storage.
func (s *FS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return canceled(err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Exists reports whether path exists.
func (s *FS) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

func canceled(err error) error {
	return &errors.IOError{
		Operation: "cancel",
		Message:   err.Error(),
		Err:       errors.Join(errors.ErrCanceled, err),
	}
}
