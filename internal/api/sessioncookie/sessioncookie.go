// Package sessioncookie centralizes how the session token travels in a browser cookie.
package sessioncookie

import (
	"net/http"
	"strings"
)

// DefaultName is used when Cookie.Name is empty.
const DefaultName = "gp_session"

// Cookie describes the session cookie. Secure should be true behind TLS.
type Cookie struct {
	Name   string
	Secure bool
}

func (k Cookie) name() string {
	if k.Name == "" {
		return DefaultName
	}
	return k.Name
}

// Read returns the trimmed session token when the cookie is present.
func (k Cookie) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(k.name())
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the session cookie. It is a browser-session cookie: no Max-Age.
func (k Cookie) Write(w http.ResponseWriter, token string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     k.name(),
		Value:    strings.TrimSpace(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (k Cookie) Clear(w http.ResponseWriter) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     k.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
