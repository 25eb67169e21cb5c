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
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "admin@insurance.com", cfg.Admin.Email)
	assert.Equal(t, 24*time.Hour, Duration(cfg.Admin.SessionTTL))
	assert.Equal(t, 10*time.Minute, Duration(cfg.Storage.QuoteCacheTTL))
	assert.Equal(t, 5, cfg.Limits.RateLimit)
	assert.Empty(t, cfg.Storage.RedisAddr)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "quotedesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
storage:
  redis_addr: localhost:6379
limits:
  rate_limit: 10
`), 0o600))
	t.Setenv("RATE_LIMIT", "3")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 3, cfg.Limits.RateLimit)
	assert.Equal(t, 2*time.Hour, Duration(cfg.Admin.SessionTTL))
	// untouched defaults survive a partial file
	assert.Equal(t, "15s", cfg.Server.ReadTimeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ADMIN_EMAIL=ops@insurance.com\nPORT=7070\n"), 0o600))
	t.Setenv("PORT", "6060")
	// t.Setenv restores PORT; ADMIN_EMAIL is set by godotenv and must be cleaned up here
	t.Cleanup(func() { os.Unsetenv("ADMIN_EMAIL") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ops@insurance.com", cfg.Admin.Email)
	assert.Equal(t, ":6060", cfg.Addr())
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("SESSION_TTL", "forever")
	_, err := Load("")
	assert.ErrorContains(t, err, "admin.session_ttl")

	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("RATE_LIMIT", "many")
	_, err = Load("")
	assert.ErrorContains(t, err, "RATE_LIMIT")

	t.Setenv("RATE_LIMIT", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "rate_limit")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}
