package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/api", cfg.Routes.APIPrefix)
	assert.Equal(t, "/_site", cfg.Routes.InternalPrefix)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.IsProd())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	yaml := []byte(`
env: prod
log:
  level: debug
server:
  addr: ":9000"
  read_timeout: 5s
site:
  name: 十二原则
  base_url: https://example.org
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))
	t.Setenv("SITE_SERVER__ADDR", ":9100")
	t.Setenv("SITE_ROUTES__API_PREFIX", "/v1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9100", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "十二原则", cfg.Site.Name)
	assert.Equal(t, "https://example.org", cfg.Site.BaseURL)
	assert.Equal(t, "/v1", cfg.Routes.APIPrefix)
}

func TestLoadRejectsInvalidPrefixes(t *testing.T) {
	t.Setenv("SITE_ROUTES__INTERNAL_PREFIX", "/zh")
	t.Setenv("SITE_ROUTES__API_PREFIX", "/")

	_, err := Load("")
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"routes.api_prefix", "routes.internal_prefix"}, verr.Fields())
}

func TestValidateFlagsNonPositiveTimeouts(t *testing.T) {
	cfg := Default()
	cfg.Server.ShutdownTimeout = 0
	err := cfg.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields(), "server.shutdown_timeout")
}
