// Package server is the Fiber preview server: it renders templates through
// the Vite helper and serves the public directory.
package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/karloscodes/cartridge"
	cartridgemiddleware "github.com/karloscodes/cartridge/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"viteurl/internal/config"
	"viteurl/pkg/viteurl"
)

// Options configures a Server.
type Options struct {
	Config   *config.Config
	Logger   *slog.Logger
	Helper   *viteurl.Helper
	Gatherer prometheus.Gatherer
	// Views overrides the template source; nil falls back to Config.ViewsDirectory.
	Views fs.FS
}

// Server wraps the Fiber application.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	logger *slog.Logger
	helper *viteurl.Helper
}

// New creates the server and mounts its routes.
func New(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Helper == nil {
		return nil, errors.New("server: config and helper are required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		cfg:    opts.Config,
		logger: logger,
		helper: opts.Helper,
	}

	engine, err := s.newEngine(opts.Views)
	if err != nil {
		return nil, err
	}

	s.app = fiber.New(fiber.Config{
		AppName:               opts.Config.AppName,
		Views:                 engine,
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
	})

	s.app.Use(requestid.New())
	s.app.Use(cartridgemiddleware.Recover())
	// Dev mode pages load scripts from the Vite dev server, another origin.
	s.app.Use(cartridgemiddleware.HelmetWithConfig(helmet.Config{
		ReferrerPolicy:            "same-origin",
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	s.app.Use(cartridgemiddleware.RequestLogger(logger))

	s.app.Get("/_health", s.HealthAction)
	s.app.Get("/_vite/resolve", s.ResolveAction)
	s.app.Get("/_vite/manifest", s.ManifestAction)

	if opts.Gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	s.app.Get("/", s.IndexAction)

	if dir := opts.Config.GetPublicDirectory(); dir != "" {
		s.app.Static(opts.Config.GetAssetsPrefix(), dir)
	}

	return s, nil
}

// newEngine prefers explicit views, then the configured directory.
func (s *Server) newEngine(views fs.FS) (*html.Engine, error) {
	var engine *html.Engine
	switch {
	case views != nil:
		engine = html.NewFileSystem(http.FS(views), ".html")
	case s.cfg.ViewsDirectory != "":
		engine = html.New(s.cfg.ViewsDirectory, ".html")
	default:
		return nil, errors.New("server: no views configured")
	}

	// Custom templates may use the helper directly; URLs are host-relative there.
	engine.AddFuncMap(viteurl.FuncMap(s.helper.Bind(viteurl.PathOnly)))
	engine.Reload(s.cfg.IsDevelopment())

	return engine, nil
}

// App exposes the Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on the configured port.
func (s *Server) Listen() error {
	addr := ":" + s.cfg.GetPort()
	s.logger.Info("Starting preview server", slog.String("addr", addr), slog.Bool("dev", s.helper.IsDev()))
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// bind returns the helper building absolute URLs for the current request.
func (s *Server) bind(c *fiber.Ctx) *viteurl.Helper {
	base := c.BaseURL()
	return s.helper.Bind(viteurl.URLBuilderFunc(func(path string) string {
		return base + path
	}))
}

// handleError renders the error view for pages. Internal endpoints, and pages
// whose error view fails to render, get cartridge's default error response.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	fallback := cartridge.DefaultErrorHandler(s.logger, s.cfg.IsDevelopment())
	if strings.HasPrefix(c.Path(), "/_") {
		return fallback(c, err)
	}

	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed", slog.String("path", c.Path()), slog.Any("error", err))
	}

	if rerr := c.Status(code).Render("error", fiber.Map{
		"Status":  code,
		"Title":   cartridge.ErrorCodeName(code),
		"Message": err.Error(),
	}); rerr != nil {
		return fallback(c, err)
	}
	return nil
}
