package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/orion/backend/pkg/media"
)

// MediaHandler uploads files and serves the local fallback blobs
type MediaHandler struct {
	media *media.Service
}

func NewMediaHandler(m *media.Service) *MediaHandler {
	return &MediaHandler{media: m}
}

func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.Upload)
}

// RegisterPublicMediaRoutes serves local blobs without a session so that
// returned URLs resolve from anywhere.
func (h *MediaHandler) RegisterPublicMediaRoutes(g *echo.Group) {
	g.GET("/media/local/:id", h.ServeLocal)
}

// Upload stores a "file" part and returns its URL. Remote failures fall back
// to a local reference, so this only fails on a bad request.
func (h *MediaHandler) Upload(c echo.Context) error {
	file, err := readFile(c, "file")
	if err != nil {
		return err
	}

	url := h.media.Upload(c.Request().Context(), file)
	return ok(c, http.StatusCreated, echo.Map{"url": url, "isVideo": file.IsVideo()})
}

func (h *MediaHandler) ServeLocal(c echo.Context) error {
	file, found := h.media.Local().Get(c.Param("id"))
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
