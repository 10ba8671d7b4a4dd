// Package viteurl resolves Vite entry names to URLs for server-rendered HTML.
//
// In production the helper reads the manifest Vite writes into the build
// directory and maps an entry such as "resources/js/app.js" to its hashed
// output file. When a dev server is configured, or a hot marker file is
// present in the public directory, entries resolve to the dev server instead
// so that hot module reloading works.
package viteurl

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultHotFile is the marker file name looked up in the public directory.
const DefaultHotFile = "hot"

// URLBuilder turns an absolute path into the URL embedded in the page,
// typically by prefixing the scheme and host of the current request.
type URLBuilder interface {
	ServerURL(path string) string
}

// URLBuilderFunc adapts a function to URLBuilder.
type URLBuilderFunc func(path string) string

// ServerURL calls f(path).
func (f URLBuilderFunc) ServerURL(path string) string {
	return f(path)
}

// PathOnly returns paths unchanged, producing host-relative URLs.
var PathOnly URLBuilder = URLBuilderFunc(func(p string) string { return p })

// Observer is notified after every File and Tags resolution.
type Observer func(name string, dev bool, err error)

// Helper resolves entry names against a Vite build. It is safe for
// concurrent use; Bind returns a copy rather than mutating the receiver.
type Helper struct {
	publicDir string
	buildDir  string
	devServer string
	hotFile   string
	builder   URLBuilder
	logger    *slog.Logger
	observer  Observer
}

// Option configures a Helper.
type Option func(*Helper)

// WithDevServer forces dev mode against the given dev server URL.
func WithDevServer(url string) Option {
	return func(h *Helper) {
		h.devServer = strings.TrimRight(url, "/")
	}
}

// WithHotFile overrides the hot marker file name.
func WithHotFile(name string) Option {
	return func(h *Helper) {
		if name != "" {
			h.hotFile = name
		}
	}
}

// WithURLBuilder binds the helper to a URL builder at construction time.
func WithURLBuilder(b URLBuilder) Option {
	return func(h *Helper) {
		h.builder = b
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithObserver registers a callback invoked after each File call.
func WithObserver(o Observer) Option {
	return func(h *Helper) {
		h.observer = o
	}
}

// New creates a helper. An empty publicDir or buildDir means the value is not
// configured; File reports that as an error when it is needed.
func New(publicDir, buildDir string, opts ...Option) *Helper {
	h := &Helper{
		publicDir: publicDir,
		buildDir:  buildDir,
		hotFile:   DefaultHotFile,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PublicDir returns the configured public directory.
func (h *Helper) PublicDir() string {
	return h.publicDir
}

// BuildDir returns the configured build directory, relative to PublicDir.
func (h *Helper) BuildDir() string {
	return h.buildDir
}

// Bind returns a copy of h that builds URLs with b.
func (h *Helper) Bind(b URLBuilder) *Helper {
	bound := *h
	bound.builder = b
	return &bound
}

// IsDev reports whether entries resolve to a dev server.
func (h *Helper) IsDev() bool {
	return h.DevServerURL() != ""
}

// DevServerURL returns the configured dev server, or the URL stored in the
// hot file, or "" when neither is present.
func (h *Helper) DevServerURL() string {
	if h.devServer != "" {
		return h.devServer
	}
	if h.publicDir == "" {
		return ""
	}

	data, err := os.ReadFile(filepath.Join(h.publicDir, h.hotFile))
	if err != nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(string(data)), "/")
}

// File resolves name to a URL.
func (h *Helper) File(name string) (url string, err error) {
	dev := false
	defer func() {
		h.notify(name, dev, err)
	}()

	if h.publicDir == "" {
		return "", ErrPublicDirRequired
	}

	if devURL := h.DevServerURL(); devURL != "" {
		dev = true
		return devURL + "/" + strings.TrimLeft(name, "/"), nil
	}

	if h.builder == nil {
		return "", ErrURLBuilderRequired
	}

	manifest, err := h.Manifest()
	if err != nil {
		h.logger.Debug("vite manifest unavailable", slog.String("entry", name), slog.Any("error", err))
		return "", err
	}

	chunk, ok := manifest.Lookup(name)
	if !ok {
		return "", unknownEntrypoint(name)
	}

	url = h.builder.ServerURL(h.buildPath(chunk.File))
	h.logger.Debug("resolved vite entry", slog.String("entry", name), slog.String("url", url))
	return url, nil
}

// Manifest reads the manifest from disk. It is read on every call.
func (h *Helper) Manifest() (Manifest, error) {
	if h.buildDir == "" {
		return nil, ErrBuildDirRequired
	}

	manifestPath, err := LocateManifest(h.publicDir, h.buildDir)
	if err != nil {
		return nil, err
	}

	return ReadManifest(manifestPath)
}

func (h *Helper) notify(name string, dev bool, err error) {
	if h.observer != nil {
		h.observer(name, dev, err)
	}
}

func (h *Helper) buildPath(file string) string {
	return path.Join("/", h.buildDir, file)
}
