package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/gesture-portal/internal/api/flash"
	"github.com/99minutos/gesture-portal/internal/api/middleware"
	"github.com/99minutos/gesture-portal/internal/api/sessioncookie"
	"github.com/99minutos/gesture-portal/internal/api/web"
	"github.com/99minutos/gesture-portal/internal/core/domain"
	"github.com/99minutos/gesture-portal/internal/core/ports"
)

func newFormContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Validator = NewValidator()
	e.Renderer = renderer

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func signupValues(email, password string) url.Values {
	return url.Values{"username": {"alice"}, "email": {email}, "password": {password}}
}

func TestWebHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
			return &domain.Account{ID: 1, Email: in.Email}, nil
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodPost, "/signup", signupValues("a@x.com", "pw1"))
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if !strings.Contains(strings.Join(rec.Header().Values("Set-Cookie"), "\n"), flash.CookieName+"=") {
		t.Fatalf("expected flash cookie")
	}
}

func TestWebHandler_Signup_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateIdentity
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodPost, "/signup", signupValues("a@x.com", "pw1"))
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, msgEmailTaken) || !strings.Contains(body, `value="a@x.com"`) {
		t.Fatalf("expected notice and echoed email, got %s", body)
	}
}

func TestWebHandler_Signup_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodPost, "/signup", signupValues("", ""))
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "email is required") {
		t.Fatalf("expected validation message, got %s", rec.Body.String())
	}
}

func TestWebHandler_Signup_StoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
			return nil, boom
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, _ := newFormContext(t, http.MethodPost, "/signup", signupValues("a@x.com", "pw1"))
	if err := h.Signup(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestWebHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Account, error) {
			return "tok", &domain.Account{ID: 1, Email: email}, nil
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{Name: "gp_session"})

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{"email": {"a@x.com"}, "password": {"pw1"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/profile" {
		t.Fatalf("expected 303 to /profile, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "gp_session=tok") {
		t.Fatalf("expected session cookie, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestWebHandler_Login_Failure(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Account, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodPost, "/login", url.Values{"email": {"a@x.com"}, "password": {"wrong"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), msgLoginFailed) {
		t.Fatalf("expected login failure notice")
	}
	if strings.Contains(rec.Header().Get("Set-Cookie"), sessioncookie.DefaultName) {
		t.Fatalf("no session cookie expected")
	}
}

func TestWebHandler_Profile(t *testing.T) {
	h := NewWebHandler(&stubAuthService{}, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodGet, "/profile", nil)
	c.Set(middleware.AccountKey, &domain.Account{ID: 1, Username: "alice", Email: "a@x.com"})

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "a@x.com") {
		t.Fatalf("unexpected profile response %d", rec.Code)
	}
}

func TestWebHandler_GatedPagesRequireAccount(t *testing.T) {
	h := NewWebHandler(&stubAuthService{}, sessioncookie.Cookie{})

	for name, fn := range map[string]echo.HandlerFunc{"profile": h.Profile, "gesture": h.Gesture} {
		c, _ := newFormContext(t, http.MethodGet, "/"+name, nil)
		if err := fn(c); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestWebHandler_Logout(t *testing.T) {
	var got string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, token string) error {
			got = token
			return nil
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodGet, "/logout", nil)
	c.Set(middleware.TokenKey, "tok")

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "tok" {
		t.Fatalf("expected session invalidated, got %q", got)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected 303 to /, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "Max-Age=0") {
		t.Fatalf("expected cookie to be cleared, got %q", rec.Header().Get("Set-Cookie"))
	}
}

func TestWebHandler_HomeShowsFlash(t *testing.T) {
	h := NewWebHandler(&stubAuthService{}, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	flash.Write(w, flash.Success(msgAccountCreated))
	for _, ck := range w.Result().Cookies() {
		c.Request().AddCookie(ck)
	}

	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), msgAccountCreated) {
		t.Fatalf("expected flash notice in page")
	}
}

func TestWebHandler_Signup_PasswordTooLong(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewWebHandler(stub, sessioncookie.Cookie{})

	c, rec := newFormContext(t, http.MethodPost, "/signup", signupValues("a@x.com", strings.Repeat("a", 73)))
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password must be at most 72 bytes") {
		t.Fatalf("expected length message, got %s", rec.Body.String())
	}
}

func TestWebHandler_Signup_ValidatorFailurePropagates(t *testing.T) {
	boom := errors.New("validator misconfigured")
	h := NewWebHandler(&stubAuthService{}, sessioncookie.Cookie{})

	c, _ := newFormContext(t, http.MethodPost, "/signup", signupValues("a@x.com", "pw1"))
	c.Echo().Validator = failingValidator{err: boom}

	if err := h.Signup(c); !errors.Is(err, boom) {
		t.Fatalf("expected validator error to propagate, got %v", err)
	}
}
