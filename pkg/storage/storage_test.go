package storage

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
)

func TestReadFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "locales/en.json", []byte(`{"a":"A"}`), 0o644))

	s := New(mem)
	data, err := s.ReadFile(context.Background(), "locales/en.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":"A"}`, string(data))

	_, err = s.ReadFile(context.Background(), "locales/missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Operation)
	assert.Equal(t, "locales/missing.json", ioErr.Path)
}

func TestRename(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "fr.json", []byte("new"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "fr_old.json", []byte("stale backup"), 0o644))

	s := New(mem)
	require.NoError(t, s.Rename(context.Background(), "fr.json", "fr_old.json"))

	exists, err := s.Exists("fr.json")
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := afero.ReadFile(mem, "fr_old.json")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	err = s.Rename(context.Background(), "de.json", "de_old.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	s := Memory()
	require.NoError(t, s.WriteFile(context.Background(), "out/locales/fr.json", []byte("{}\n")))

	info, err := s.Fs().Stat("out/locales/fr.json")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.FilePermissions), info.Mode().Perm())

	data, err := s.ReadFile(context.Background(), "out/locales/fr.json")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestWriteFileReadOnly(t *testing.T) {
	s := New(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := s.WriteFile(context.Background(), "fr.json", []byte("{}"))
	require.Error(t, err)

	var ioErr *errors.IOError
	require.True(t, errors.As(err, &ioErr))
}

func TestCanceledContext(t *testing.T) {
	s := Memory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReadFile(ctx, "a.json")
	assert.True(t, errors.IsCanceled(err))
	assert.True(t, errors.Is(err, context.Canceled))

	assert.True(t, errors.IsCanceled(s.Rename(ctx, "a.json", "b.json")))
	assert.True(t, errors.IsCanceled(s.WriteFile(ctx, "a.json", nil)))

	exists, err := s.Exists("a.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNewDefaultsToOS(t *testing.T) {
	s := New(nil)
	_, ok := s.Fs().(*afero.OsFs)
	assert.True(t, ok)
}
