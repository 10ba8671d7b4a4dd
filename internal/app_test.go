package internal_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viteurl/internal"
	"viteurl/internal/config"
	"viteurl/internal/testsupport"
	"viteurl/web"
)

func TestNewAppWithConfig(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteManifest(t, root, `{"src/main.js":{"file":"assets/main-abc.js"}}`)
	cfg := testsupport.NewConfig(t, root)

	app, err := internal.NewAppWithConfig(cfg, internal.WithViews(web.Views()))
	require.NoError(t, err)

	assert.Equal(t, root, app.Helper.PublicDir())
	assert.False(t, app.Helper.IsDev())

	req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
	resp, err := app.Server.App().Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `src="http://localhost/build/assets/main-abc.js"`)

	req = httptest.NewRequest(http.MethodGet, "http://localhost/_vite/resolve?entry=src/main.js", nil)
	resp, err = app.Server.App().Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	families, err := app.Registry.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "viteurl_resolutions_total" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewAppWithoutViews(t *testing.T) {
	cfg := &config.Config{Environment: config.Test, LogLevel: config.LogLevelInfo}

	_, err := internal.NewAppWithConfig(cfg)
	assert.Error(t, err)
}

func TestNewAppFromEnvironment(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteManifest(t, root, `{"src/main.js":{"file":"assets/main-abc.js"}}`)

	t.Chdir(t.TempDir())
	t.Setenv("VITEURL_ENV", config.Test)
	t.Setenv("VITEURL_PUBLIC_DIR", root)
	t.Setenv("VITEURL_BUILD_DIR", testsupport.BuildDir)
	config.Reset()
	t.Cleanup(config.Reset)

	app, err := internal.NewApp(internal.WithViews(web.Views()))
	require.NoError(t, err)

	manifest, err := app.Helper.Manifest()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/main.js"}, manifest.Entries())
}
