// Package view builds the Vite view helper from application configuration.
package view

import (
	"errors"
	"log/slog"

	"viteurl/internal/config"
	"viteurl/pkg/viteurl"
)

// ErrMissingConfig is returned when no configuration is available.
var ErrMissingConfig = errors.New("view: configuration is required")

// NewHelper creates the helper from the vite-url section of cfg. Unset
// directories stay unset; the helper reports them when they are needed.
func NewHelper(cfg *config.Config, logger *slog.Logger, opts ...viteurl.Option) (*viteurl.Helper, error) {
	if cfg == nil {
		return nil, ErrMissingConfig
	}

	vc := cfg.ViteURL
	base := []viteurl.Option{
		viteurl.WithHotFile(vc.HotFile),
		viteurl.WithLogger(logger),
	}
	if vc.DevServer != "" {
		base = append(base, viteurl.WithDevServer(vc.DevServer))
	}

	helper := viteurl.New(vc.PublicDir, vc.BuildDir, append(base, opts...)...)

	if logger != nil {
		logger.Debug("vite helper configured",
			slog.String("public_dir", vc.PublicDir),
			slog.String("build_dir", vc.BuildDir),
			slog.Bool("dev", helper.IsDev()),
		)
	}

	return helper, nil
}
