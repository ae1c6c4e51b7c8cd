package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/gesture-portal/internal/api/flash"
	"github.com/99minutos/gesture-portal/internal/api/metrics"
	"github.com/99minutos/gesture-portal/internal/api/sessioncookie"
	"github.com/99minutos/gesture-portal/internal/api/web"
	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

// User-facing notices.
const (
	msgAccountCreated = "Account created successfully!"
	msgEmailTaken     = "Email already exists."
	msgLoginFailed    = "Login unsuccessful. Check email and password."
	msgInvalidForm    = "The form could not be read."
)

// WebHandler serves the HTML pages and form posts.
type WebHandler struct {
	auth   ports.AuthService
	cookie sessioncookie.Cookie
}

func NewWebHandler(auth ports.AuthService, cookie sessioncookie.Cookie) *WebHandler {
	return &WebHandler{auth: auth, cookie: cookie}
}

// page builds the view data shared by every render and consumes any pending
// flash notice.
func (h *WebHandler) page(c echo.Context) web.Page {
	p := web.Page{Account: optionalAccount(c)}
	if notice, ok := flash.ReadAndClear(c.Response(), c.Request()); ok {
		p.Flash = &notice
	}
	return p
}

func withDanger(p web.Page, message string) web.Page {
	notice := flash.Danger(message)
	p.Flash = &notice
	return p
}

// Home handles GET /.
func (h *WebHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", h.page(c))
}

// SignupForm handles GET /signup.
func (h *WebHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", h.page(c))
}

// Signup handles POST /signup.
func (h *WebHandler) Signup(c echo.Context) error {
	p := h.page(c)

	var form signupForm
	if err := c.Bind(&form); err != nil {
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.Render(http.StatusBadRequest, "signup.html", withDanger(p, msgInvalidForm))
	}
	p.Username, p.Email = form.Username, form.Email

	if err := c.Validate(&form); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			metrics.SignupsTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.Render(http.StatusUnprocessableEntity, "signup.html", withDanger(p, ve.Error()))
	}

	_, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	switch {
	case err == nil:
		metrics.SignupsTotal.WithLabelValues("created").Inc()
		flash.Write(c.Response(), flash.Success(msgAccountCreated))
		return c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, domain.ErrDuplicateIdentity):
		metrics.SignupsTotal.WithLabelValues("duplicate").Inc()
		return c.Render(http.StatusConflict, "signup.html", withDanger(p, msgEmailTaken))
	case errors.Is(err, domain.ErrInvalidSignup):
		metrics.SignupsTotal.WithLabelValues("invalid").Inc()
		return c.Render(http.StatusUnprocessableEntity, "signup.html", withDanger(p, domain.ErrInvalidSignup.Error()))
	default:
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}
}

// LoginForm handles GET /login.
func (h *WebHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", h.page(c))
}

// Login handles POST /login.
func (h *WebHandler) Login(c echo.Context) error {
	p := h.page(c)

	var form loginForm
	if err := c.Bind(&form); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.Render(http.StatusBadRequest, "login.html", withDanger(p, msgInvalidForm))
	}
	p.Email = form.Email

	token, _, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.Render(http.StatusUnauthorized, "login.html", withDanger(p, msgLoginFailed))
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.cookie.Write(c.Response(), token)
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// Profile handles GET /profile.
func (h *WebHandler) Profile(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "profile.html", h.page(c))
}

// Gesture handles GET /gesture.
func (h *WebHandler) Gesture(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}
	return c.Render(http.StatusOK, "gesture.html", h.page(c))
}

// Logout handles GET and POST /logout.
func (h *WebHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	h.cookie.Clear(c.Response())
	return c.Redirect(http.StatusSeeOther, "/")
}
