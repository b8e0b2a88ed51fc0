package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/anonto42/orion/backend/internal/services"
	"github.com/anonto42/orion/backend/internal/state"
	"github.com/anonto42/orion/backend/pkg/ai"
	"github.com/anonto42/orion/backend/pkg/media"
)

// MaxUploadBytes caps a single uploaded file.
const MaxUploadBytes = 64 << 20

func ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// httpError maps domain errors to a status and a human-readable message.
func httpError(err error) error {
	var svcErr *ai.ServiceError
	switch {
	case errors.Is(err, state.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Sign in to continue")
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, services.ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusConflict, "Email already exists")
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, state.ErrEmptyComment), errors.Is(err, state.ErrInvalidShareKind):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ai.ErrServiceUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "AI features are not configured")
	case errors.As(err, &svcErr):
		log.Error().Err(err).Msg("AI request failed")
		return echo.NewHTTPError(http.StatusBadGateway, "The AI service could not complete the request")
	}

	log.Error().Err(err).Msg("Request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Something went wrong, please try again")
}

// readFile loads a multipart file field into memory.
func readFile(c echo.Context, field string) (media.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return media.File{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s file is required", field))
	}
	if fh.Size > MaxUploadBytes {
		return media.File{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File is too large")
	}

	src, err := fh.Open()
	if err != nil {
		return media.File{}, echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes))
	if err != nil {
		return media.File{}, echo.NewHTTPError(http.StatusBadRequest, "Could not read uploaded file")
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = mime.TypeByExtension(strings.ToLower(path.Ext(fh.Filename)))
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return media.File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
