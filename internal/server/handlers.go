package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"viteurl/pkg/viteurl"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Mode           string    `json:"mode"`
	ManifestStatus string    `json:"manifest_status"`
	Entries        int       `json:"entries"`
	Error          string    `json:"error,omitempty"`
}

// ResolveResponse is returned by the resolve endpoint.
type ResolveResponse struct {
	Entry    string   `json:"entry"`
	URL      string   `json:"url"`
	Dev      bool     `json:"dev"`
	CSS      []string `json:"css,omitempty"`
	Preloads []string `json:"preloads,omitempty"`
}

// HealthAction reports whether the manifest can be resolved.
func (s *Server) HealthAction(c *fiber.Ctx) error {
	status := HealthStatus{
		Status:         "ok",
		Timestamp:      time.Now().UTC(),
		Mode:           "build",
		ManifestStatus: "ok",
	}

	if s.helper.IsDev() {
		status.Mode = "dev"
		status.ManifestStatus = "skipped"
		return c.JSON(status)
	}

	manifest, err := s.helper.Manifest()
	if err != nil {
		s.logger.Warn("Vite manifest unavailable", slog.Any("error", err))
		status.Status = "degraded"
		status.ManifestStatus = "error"
		status.Error = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}

	status.Entries = len(manifest)
	return c.JSON(status)
}

// ResolveAction resolves ?entry= to its URL and dependencies.
func (s *Server) ResolveAction(c *fiber.Ctx) error {
	entry := c.Query("entry")
	if entry == "" {
		return fiber.NewError(fiber.StatusBadRequest, "entry is required")
	}

	helper := s.bind(c)

	url, err := helper.File(entry)
	if err != nil {
		return resolveError(err)
	}

	css, err := helper.CSS(entry)
	if err != nil {
		return resolveError(err)
	}
	preloads, err := helper.Preloads(entry)
	if err != nil {
		return resolveError(err)
	}

	return c.JSON(ResolveResponse{
		Entry:    entry,
		URL:      url,
		Dev:      helper.IsDev(),
		CSS:      css,
		Preloads: preloads,
	})
}

// ManifestAction lists the entries of the current manifest.
func (s *Server) ManifestAction(c *fiber.Ctx) error {
	if s.helper.IsDev() {
		return c.JSON(fiber.Map{"dev": true, "entries": []string{}})
	}

	manifest, err := s.helper.Manifest()
	if err != nil {
		return resolveError(err)
	}

	return c.JSON(fiber.Map{"dev": false, "entries": manifest.Entries()})
}

// IndexAction renders the index view for the configured entry, or ?entry=.
func (s *Server) IndexAction(c *fiber.Ctx) error {
	entry := c.Query("entry", s.cfg.ViteURL.Entry)

	return c.Render("index", fiber.Map{
		"Title": s.cfg.AppName,
		"Entry": entry,
		"Vite":  s.bind(c),
	})
}

func resolveError(err error) error {
	if errors.Is(err, viteurl.ErrUnknownEntrypoint) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}
