package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/gesture-portal/internal/api/metrics"
	"github.com/99minutos/gesture-portal/internal/api/sessioncookie"
	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// AuthHandler serves the JSON API under /api/v1.
type AuthHandler struct {
	authService ports.AuthService
	cookie      sessioncookie.Cookie
}

func NewAuthHandler(authService ports.AuthService, cookie sessioncookie.Cookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

type accountResponse struct {
	Account *domain.Account `json:"account"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Signup creates a new account.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupForm  true  "Account details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupForm
	if err := c.Bind(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			metrics.SignupsTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusUnprocessableEntity, errorBody{Error: ve.Error()})
	}

	account, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateIdentity):
			metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		case errors.Is(err, domain.ErrInvalidSignup):
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.SignupsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, accountResponse{Account: account})
}

// Login authenticates an account and opens a session. The token is returned
// in the body for bearer use and also set as the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginForm  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginForm
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}

	token, account, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.cookie.Write(c.Response(), token)
	return c.JSON(http.StatusOK, authResponse{Token: token, Account: account})
}

// Logout ends the current session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorBody
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	h.cookie.Clear(c.Response())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the account behind the current session.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorBody
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	account, err := ctxAccount(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accountResponse{Account: account})
}
