package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/gesture-portal/internal/api/metrics"
	"github.com/99minutos/gesture-portal/internal/api/sessioncookie"
	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// Context keys set by RequireSession.
const (
	AccountKey = "account"
	TokenKey   = "session_token"
)

// RequireSession runs the access gate before the next handler. The token is
// read from an "Authorization: Bearer" header, then from the session cookie.
// On rejection it returns domain.ErrUnauthorized for the error handler to map.
func RequireSession(gate ports.AccessGate, cookie sessioncookie.Cookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c, cookie)

			account, err := gate.Authorize(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					metrics.GateDecisionsTotal.WithLabelValues("denied").Inc()
					return domain.ErrUnauthorized
				}
				metrics.GateDecisionsTotal.WithLabelValues("error").Inc()
				return err
			}

			metrics.GateDecisionsTotal.WithLabelValues("allowed").Inc()
			c.Set(AccountKey, account)
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}

// TokenFromRequest extracts the session token the transport carries, or "".
// An explicit bearer token wins over the cookie: browsers never send the
// header, and API clients may still hold a stale cookie.
func TokenFromRequest(c echo.Context, cookie sessioncookie.Cookie) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token
		}
	}

	if token, ok := cookie.Read(c.Request()); ok {
		return token
	}
	return ""
}

// LoadSession attaches the account to the context when the request carries a
// valid session and passes anonymous requests through unchanged. Public pages
// use it to render the navigation for the current visitor.
func LoadSession(gate ports.AccessGate, cookie sessioncookie.Cookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c, cookie)
			if token == "" {
				return next(c)
			}
			account, err := gate.Authorize(c.Request().Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					return err
				}
				return next(c)
			}
			c.Set(AccountKey, account)
			c.Set(TokenKey, token)
			return next(c)
		}
	}
}
