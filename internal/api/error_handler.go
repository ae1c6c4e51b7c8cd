package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/gesture-portal/internal/api/web"
	"github.com/99minutos/gesture-portal/internal/core/domain"
)

const apiPrefix = "/api/"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders {"error": "<message>"} under /api/ and HTML pages elsewhere;
//     an unauthorized browser is sent to the login form.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if strings.HasPrefix(c.Request().URL.Path, apiPrefix) {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		switch code {
		case http.StatusUnauthorized:
			_ = c.Redirect(http.StatusSeeOther, "/login")
		case http.StatusNotFound:
			_ = c.Render(code, "404.html", web.Page{})
		default:
			_ = c.Render(code, "error.html", web.Page{Error: msg})
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusConflict, "email already exists"
	case errors.Is(err, domain.ErrInvalidSignup):
		return http.StatusUnprocessableEntity, domain.ErrInvalidSignup.Error()
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
