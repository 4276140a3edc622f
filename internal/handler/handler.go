// Package handler binds the sitemap pipeline to HTTP routes.
package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"geositemap/internal/site"
	"geositemap/internal/sitemap"
	"geositemap/pkg/logger"
)

const cacheControl = "public, max-age=3600"

type Handler struct {
	site      *site.Site
	source    sitemap.DataSource
	estimator *sitemap.Estimator
	pager     *sitemap.CityPager
	renderer  *sitemap.Renderer

	pageCapacity int
	maxFiles     int

	log *logger.Logger
}

func New(
	s *site.Site,
	source sitemap.DataSource,
	estimator *sitemap.Estimator,
	pager *sitemap.CityPager,
	renderer *sitemap.Renderer,
	pageCapacity, maxFiles int,
) *Handler {
	return &Handler{
		site:         s,
		source:       source,
		estimator:    estimator,
		pager:        pager,
		renderer:     renderer,
		pageCapacity: pageCapacity,
		maxFiles:     maxFiles,
		log:          logger.GetLogger().WithField("component", "handler"),
	}
}

// Register mounts all routes on the app. The chunk route must come after
// the main route so /sitemap-main.xml is not captured as a parameter.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/sitemap.xml", h.Index)
	app.Get("/sitemap-main.xml", h.Main)
	app.Get("/sitemap-:n.xml", h.Chunk)
	app.Get("/robots.txt", h.Robots)
	app.Get("/theme.css", h.Theme)
	app.Get("/healthz", h.Health)
}

func (h *Handler) Index(c *fiber.Ctx) error {
	fileCount := h.estimator.FileCount(c.Context())

	out, err := h.renderer.RenderIndex(fileCount, time.Now())
	if err != nil {
		return h.serverError(c, err)
	}
	return h.sendXML(c, out)
}

func (h *Handler) Main(c *fiber.Ctx) error {
	// A failing state query degrades to a static-pages-only document.
	states, err := h.source.ListStates(c.Context())
	if err != nil {
		h.log.WithError(err).Warn("state listing unavailable, emitting static pages only")
		states = nil
	}

	out, err := h.renderer.RenderMain(states, time.Now())
	if err != nil {
		return h.serverError(c, err)
	}
	return h.sendXML(c, out)
}

func (h *Handler) Chunk(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Params("n"))
	if err != nil || n < 2 || n > h.maxFiles+1 {
		return c.Status(fiber.StatusNotFound).SendString("sitemap not found")
	}

	offset := (n - 2) * h.pageCapacity
	cities := h.pager.FetchPage(c.Context(), offset, h.pageCapacity)

	out, err := h.renderer.RenderCityChunk(cities, time.Now())
	if err != nil {
		return h.serverError(c, err)
	}
	return h.sendXML(c, out)
}

func (h *Handler) Robots(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.SendString("User-agent: *\nAllow: /\n\nSitemap: " + h.site.SiteRoot + "/sitemap.xml\n")
}

func (h *Handler) Theme(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.SendString(h.site.Palette.CSS())
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"domain": h.site.Domain,
	})
}

func (h *Handler) sendXML(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderCacheControl, cacheControl)
	return c.Send(body)
}

func (h *Handler) serverError(c *fiber.Ctx, err error) error {
	h.log.WithError(err).WithField("path", c.Path()).Error("sitemap generation failed")
	return c.Status(fiber.StatusInternalServerError).SendString("sitemap generation failed")
}
