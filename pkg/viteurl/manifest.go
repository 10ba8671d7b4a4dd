package viteurl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	manifestFile = "manifest.json"
	manifestDir  = ".vite"
)

// Chunk is a single manifest entry as emitted by Vite.
type Chunk struct {
	File           string   `json:"file"`
	Name           string   `json:"name,omitempty"`
	Src            string   `json:"src,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty"`
	IsDynamicEntry bool     `json:"isDynamicEntry,omitempty"`
	CSS            []string `json:"css,omitempty"`
	Imports        []string `json:"imports,omitempty"`
	DynamicImports []string `json:"dynamicImports,omitempty"`
	Assets         []string `json:"assets,omitempty"`
}

// Manifest maps entry names (source paths relative to the Vite root) to their
// build output.
type Manifest map[string]Chunk

// Lookup returns the chunk for name. Entries without an output file are
// treated as unknown.
func (m Manifest) Lookup(name string) (Chunk, bool) {
	chunk, ok := m[name]
	if !ok || chunk.File == "" {
		return Chunk{}, false
	}
	return chunk, true
}

// Entries returns the manifest keys in sorted order.
func (m Manifest) Entries() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ManifestPaths returns the Vite 5+ location and the legacy Vite 4 location
// of the manifest inside buildDir.
func ManifestPaths(publicDir, buildDir string) (v5, v4 string) {
	base := filepath.Join(publicDir, buildDir)
	return filepath.Join(base, manifestDir, manifestFile), filepath.Join(base, manifestFile)
}

// LocateManifest returns the manifest path that exists on disk, preferring
// the Vite 5+ location.
func LocateManifest(publicDir, buildDir string) (string, error) {
	v5, v4 := ManifestPaths(publicDir, buildDir)

	if isFile(v5) {
		return v5, nil
	}
	if isFile(v4) {
		return v4, nil
	}

	return "", fmt.Errorf("%w at %s or at %s", ErrManifestNotFound, v4, v5)
}

// ReadManifest reads and decodes the manifest at path.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, fmt.Errorf("%w at: %s", ErrManifestUnreadable, path)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w at: %s: %w", ErrManifestInvalid, path, err)
	}

	return manifest, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
