package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, time.Hour, cfg.JWT.ExpiryDuration())
	assert.True(t, cfg.UsingDefaultSecret())
	assert.Equal(t, DefaultJWTSecret, cfg.JWT.SigningKey())
	assert.Equal(t, "http://localhost:8080", cfg.Client.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Client.TimeoutDuration())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "uploads", cfg.Files.UploadDir)
	assert.Equal(t, int64(5<<20), cfg.Files.MaxBytes)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "siack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
jwt:
  secret: from-file
client:
  token_ttl: 600
`), 0600))
	t.Setenv("SIACK_JWT_SECRET", "from-env")
	t.Setenv("SIACK_DATABASE_PATH", "/tmp/x.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.SigningKey())
	assert.False(t, cfg.UsingDefaultSecret())
	assert.Equal(t, "/tmp/x.db", cfg.Database.Path)
	assert.Equal(t, 10*time.Minute, cfg.Client.TokenTTLDuration())
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SIACK_SERVER_PORT", "70000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_InvalidUploadLimit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SIACK_FILES_MAX_BYTES", "0")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
