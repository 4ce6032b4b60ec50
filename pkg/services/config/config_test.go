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
	path := filepath.Join(t.TempDir(), "costguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
vendor:
  base_url: https://api.vendor.example
server:
  port: "9090"
rate_limit:
  requests: 10
  window_minutes: 5
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.vendor.example", cfg.Vendor.BaseURL)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host) // default
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, 5*time.Minute, cfg.RateLimit.Window())
	assert.Equal(t, "costguard.db", cfg.DBPath)
}

func TestLoad_MissingVendorURL(t *testing.T) {
	path := writeConfig(t, `server: {port: "9090"}`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "vendor.base_url")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
