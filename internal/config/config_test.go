package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8001", c.BackendURL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, "info", c.LogLevel)
	require.NotNil(t, c.Session)
	assert.Equal(t, "~/.config/artfolio/credentials.toml", c.Session.Path)
	require.NotNil(t, c.Upload)
	assert.False(t, c.Upload.Resize)
	assert.Equal(t, 1200, c.Upload.MaxWidth)
	assert.Equal(t, 800, c.Upload.MaxHeight)
	assert.Equal(t, 85, c.Upload.Quality)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
backend_url: " https://api.example.com/ "
timeout: 3s
log_level: DEBUG
session:
  path: /tmp/creds.toml
upload:
  resize: true
  max_width: 640
  max_height: 480
  quality: 70
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", c.BackendURL)
	assert.Equal(t, 3*time.Second, c.Timeout)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "/tmp/creds.toml", c.Session.Path)
	assert.True(t, c.Upload.Resize)
	assert.Equal(t, 640, c.Upload.MaxWidth)
	assert.Equal(t, 480, c.Upload.MaxHeight)
	assert.Equal(t, 70, c.Upload.Quality)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "backend_url: http://file:8001\n")

	t.Run("prefixed", func(t *testing.T) {
		t.Setenv("ARTFOLIO_BACKEND_URL", "http://env:9000/")
		t.Setenv("ARTFOLIO_UPLOAD_QUALITY", "60")
		t.Setenv("ARTFOLIO_SESSION_PATH", "/var/lib/artfolio/creds.toml")

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://env:9000", c.BackendURL)
		assert.Equal(t, 60, c.Upload.Quality)
		assert.Equal(t, "/var/lib/artfolio/creds.toml", c.Session.Path)
	})

	t.Run("legacy alias", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "backend.local:8001")

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://backend.local:8001", c.BackendURL)
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad scheme", content: "backend_url: ftp://example.com\n", wantErr: "http or https"},
		{name: "zero timeout", content: "timeout: 0s\n", wantErr: "timeout"},
		{name: "quality too high", content: "upload:\n  quality: 101\n", wantErr: "upload.quality"},
		{name: "negative width", content: "upload:\n  max_width: -1\n", wantErr: "dimensions"},
		{name: "empty session path", content: "session:\n  path: \" \"\n", wantErr: "session.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
