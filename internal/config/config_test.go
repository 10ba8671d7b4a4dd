package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viteurl/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "viteurl", cfg.AppName)
	assert.Equal(t, "3000", cfg.GetPort())
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.ViteURL.PublicDir)
	assert.Empty(t, cfg.ViteURL.BuildDir)
	assert.Equal(t, "hot", cfg.ViteURL.HotFile)
	assert.Empty(t, cfg.ViteURL.DevServer)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("VITEURL_ENV", "production")
	t.Setenv("VITEURL_PUBLIC_DIR", "/srv/app/public")
	t.Setenv("VITEURL_BUILD_DIR", "dist")
	t.Setenv("VITEURL_DEV_SERVER", "http://localhost:5173")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "/srv/app/public", cfg.GetPublicDirectory())
	assert.Equal(t, "dist", cfg.ViteURL.BuildDir)
	assert.Equal(t, "http://localhost:5173", cfg.ViteURL.DevServer)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viteurl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
appport: "8080"
loglevel: debug
vite-url:
  public-dir: web/public
  build-dir: assets
`), 0o644))

	t.Run("explicit path", func(t *testing.T) {
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "debug", cfg.GetLogLevel())
		assert.Equal(t, "web/public", cfg.ViteURL.PublicDir)
		assert.Equal(t, "assets", cfg.ViteURL.BuildDir)
		assert.Equal(t, "hot", cfg.ViteURL.HotFile)
		assert.Equal(t, path, cfg.ConfigFile)
	})

	t.Run("working directory", func(t *testing.T) {
		t.Chdir(dir)

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "assets", cfg.ViteURL.BuildDir)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("VITEURL_BUILD_DIR", "from-env")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.ViteURL.BuildDir)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("VITEURL_ENV", "staging")

		_, err := config.Load("")
		assert.ErrorContains(t, err, "invalid environment: staging")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("VITEURL_LOG_LEVEL", "verbose")

		_, err := config.Load("")
		assert.ErrorContains(t, err, "invalid log level: verbose")
	})
}

func TestGetConfigIsCached(t *testing.T) {
	t.Chdir(t.TempDir())
	config.Reset()
	t.Cleanup(config.Reset)

	first := config.GetConfig()
	t.Setenv("VITEURL_APP_PORT", "9999")
	assert.Same(t, first, config.GetConfig())

	config.Reset()
	assert.Equal(t, "9999", config.GetConfig().AppPort)
}
