package viteurl_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viteurl/internal/testsupport"
	"viteurl/pkg/viteurl"
)

func TestLocateManifest(t *testing.T) {
	t.Run("prefers the .vite location", func(t *testing.T) {
		root := t.TempDir()
		v5, v4 := viteurl.ManifestPaths(root, "build")
		testsupport.WriteFile(t, v5, `{}`)
		testsupport.WriteFile(t, v4, `{}`)

		got, err := viteurl.LocateManifest(root, "build")
		require.NoError(t, err)
		assert.Equal(t, v5, got)
	})

	t.Run("falls back to the legacy location", func(t *testing.T) {
		root := t.TempDir()
		_, v4 := viteurl.ManifestPaths(root, "build")
		testsupport.WriteFile(t, v4, `{}`)

		got, err := viteurl.LocateManifest(root, "build")
		require.NoError(t, err)
		assert.Equal(t, v4, got)
	})

	t.Run("ignores directories", func(t *testing.T) {
		root := t.TempDir()
		v5, _ := viteurl.ManifestPaths(root, "build")
		testsupport.WriteFile(t, filepath.Join(v5, "nested"), `{}`)

		_, err := viteurl.LocateManifest(root, "build")
		assert.ErrorIs(t, err, viteurl.ErrManifestNotFound)
	})
}

func TestReadManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "manifest.json")
	testsupport.WriteFile(t, path, `{
		"resources/js/app.js": {
			"file": "assets/app-4ed993c7.js",
			"src": "resources/js/app.js",
			"isEntry": true,
			"imports": ["_shared-B7PI925R.js"],
			"css": ["assets/app-5b1f2c1d.css"]
		},
		"_shared-B7PI925R.js": {
			"file": "assets/shared-B7PI925R.js",
			"name": "shared"
		}
	}`)

	manifest, err := viteurl.ReadManifest(path)
	require.NoError(t, err)

	chunk, ok := manifest.Lookup("resources/js/app.js")
	require.True(t, ok)
	assert.Equal(t, "assets/app-4ed993c7.js", chunk.File)
	assert.True(t, chunk.IsEntry)
	assert.Equal(t, []string{"assets/app-5b1f2c1d.css"}, chunk.CSS)
	assert.Equal(t, []string{"_shared-B7PI925R.js"}, chunk.Imports)

	assert.Equal(t, []string{"_shared-B7PI925R.js", "resources/js/app.js"}, manifest.Entries())

	_, ok = manifest.Lookup("missing.js")
	assert.False(t, ok)
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := viteurl.ReadManifest(filepath.Join(t.TempDir(), "manifest.json"))
	assert.ErrorIs(t, err, viteurl.ErrManifestUnreadable)
}
