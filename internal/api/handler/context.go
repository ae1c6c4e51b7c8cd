package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/gesture-portal/internal/api/middleware"
	"github.com/99minutos/gesture-portal/internal/core/domain"
)

// ctxAccount returns the account injected by the session middleware. A
// missing account means the route was mounted outside the gated group;
// reject it rather than serve it anonymously.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, _ := c.Get(middleware.AccountKey).(*domain.Account)
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

// ctxToken returns the raw session token the middleware authorized.
func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.TokenKey).(string)
	return token
}

// optionalAccount returns the account when the request carries a valid
// session, or nil.
func optionalAccount(c echo.Context) *domain.Account {
	account, _ := c.Get(middleware.AccountKey).(*domain.Account)
	return account
}
