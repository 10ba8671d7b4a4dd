// Package testsupport builds public directories, manifests and configs for tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"viteurl/internal/config"
)

// BuildDir is the build directory used by fixtures.
const BuildDir = "build"

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// WriteManifest writes a Vite 5+ manifest under publicDir/BuildDir/.vite and
// returns its path.
func WriteManifest(t *testing.T, publicDir, content string) string {
	t.Helper()
	path := filepath.Join(publicDir, BuildDir, ".vite", "manifest.json")
	WriteFile(t, path, content)
	return path
}

// WriteLegacyManifest writes a Vite 4 manifest directly under publicDir/BuildDir.
func WriteLegacyManifest(t *testing.T, publicDir, content string) string {
	t.Helper()
	path := filepath.Join(publicDir, BuildDir, "manifest.json")
	WriteFile(t, path, content)
	return path
}

// WriteHotFile marks publicDir as served by the dev server at url.
func WriteHotFile(t *testing.T, publicDir, url string) {
	t.Helper()
	WriteFile(t, filepath.Join(publicDir, "hot"), url)
}

// NewConfig returns a test-environment config pointing at publicDir.
func NewConfig(t *testing.T, publicDir string) *config.Config {
	t.Helper()

	cfg := &config.Config{
		AppName:               "viteurl",
		AppPort:               "0",
		Environment:           config.Test,
		LogLevel:              config.LogLevelInfo,
		PublicAssetsUrlPrefix: "/",
		ViteURL: config.ViteURL{
			PublicDir: publicDir,
			BuildDir:  BuildDir,
			HotFile:   "hot",
			Entry:     "src/main.js",
		},
	}

	return cfg
}
