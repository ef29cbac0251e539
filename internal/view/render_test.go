package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yanizio/sitekit/internal/head"
)

func TestRender_PreviewShell(t *testing.T) {
	h := head.New()
	h.SetTitle("Aperçu")
	rec := httptest.NewRecorder()
	err := Render(rec, "preview", Page{Head: h, Data: map[string]string{"SessionID": "s-1"}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `data-socket="/preview/s-1/ws"`) || !strings.Contains(body, "<title>Aperçu</title>") {
		t.Fatalf("body = %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("Content-Type = %q", ct)
	}
}

func TestRender_Unknown(t *testing.T) {
	if err := Render(httptest.NewRecorder(), "nope", Page{}); err == nil {
		t.Fatalf("want error for unknown shell")
	}
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview.js", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "WebSocket") {
		t.Fatalf("static preview.js: %d", rec.Code)
	}
}
