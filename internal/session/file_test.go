package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "nested", "credentials.toml"))
	require.NoError(t, err)

	_, ok := s.Get()
	assert.False(t, ok)
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "credentials.toml")
	creds := artfolio.Credentials{Username: "admin", Password: "p@ss \"quoted\""}

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(creds))

	reopened, err := Open(path)
	require.NoError(t, err)
	got, ok := reopened.Get()
	require.True(t, ok)
	assert.Equal(t, creds, got)
}

func TestFileStore_FileIsOwnerOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(artfolio.Credentials{Username: "u", Password: "p"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_ClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(artfolio.Credentials{Username: "u", Password: "p"}))

	require.NoError(t, s.Clear())
	_, ok := s.Get()
	assert.False(t, ok)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Clear(), "clearing twice is fine")

	reopened, err := Open(path)
	require.NoError(t, err)
	_, ok = reopened.Get()
	assert.False(t, ok)
}

func TestOpen_MalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("username = [broken"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestOpen_IncompletePairIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	require.NoError(t, os.WriteFile(path, []byte("username = \"admin\"\n"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	_, ok := s.Get()
	assert.False(t, ok)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/creds.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "creds.toml"), got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "artfolio", "credentials.toml"), got)
}
