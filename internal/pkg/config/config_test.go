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
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 2*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 9001
cache:
  backend: redis
lookup:
  timeout: 500ms
peers:
  user_service_url: http://users:8081
`), 0o644))

	t.Setenv("HTTP_PORT", "9002")
	t.Setenv("USER_SERVICE_URL", "http://users-override:8081")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Env wins over file, file wins over defaults.
	assert.Equal(t, 9002, cfg.HTTP.Port)
	assert.Equal(t, "http://users-override:8081", cfg.Peers.UserServiceURL)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Lookup.Timeout)
}

func TestLoad_UnknownCacheBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
}
