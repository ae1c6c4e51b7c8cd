package web

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/99minutos/gesture-portal/internal/api/flash"
	"github.com/99minutos/gesture-portal/internal/core/domain"
)

func TestRenderer_RendersEveryPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	for _, name := range []string{"home.html", "signup.html", "login.html", "profile.html", "gesture.html", "404.html", "error.html"} {
		var buf bytes.Buffer
		if err := r.Render(&buf, name, Page{}, nil); err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if !strings.Contains(buf.String(), "<nav>") {
			t.Fatalf("%s: expected layout to wrap the page", name)
		}
	}
}

func TestRenderer_ProfileShowsAccount(t *testing.T) {
	r, _ := NewRenderer()

	var buf bytes.Buffer
	err := r.Render(&buf, "profile.html", Page{
		Account: &domain.Account{Username: "alice", Email: "a@x.com", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"alice", "a@x.com", "2024-03-01", `href="/logout"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestRenderer_FlashAndEscaping(t *testing.T) {
	r, _ := NewRenderer()
	notice := flash.Danger("Email already exists.")

	var buf bytes.Buffer
	if err := r.Render(&buf, "signup.html", Page{Flash: &notice, Email: `"><script>`}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "alert-danger") || !strings.Contains(out, "Email already exists.") {
		t.Fatalf("expected flash in output")
	}
	if strings.Contains(out, `"><script>`) {
		t.Fatalf("expected form value to be escaped")
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, _ := NewRenderer()
	if err := r.Render(&bytes.Buffer{}, "missing.html", nil, nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestStatic_ContainsAssets(t *testing.T) {
	for _, name := range []string{"gesture.js", "site.css"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Fatalf("expected %s in static assets: %v", name, err)
		}
	}
}
