package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yanizio/sitekit/internal/store"
	"github.com/yanizio/sitekit/internal/tenant"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
})

func TestSecurity_DeniesFramingByDefault(t *testing.T) {
	rec := httptest.NewRecorder()
	Security(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/editor/pages", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q, want DENY", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
}

func TestSameOriginFrames(t *testing.T) {
	rec := httptest.NewRecorder()
	Security(SameOriginFrames(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/preview/x", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("X-Frame-Options = %q, want SAMEORIGIN", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got != cspSelf {
		t.Fatalf("CSP = %q, want frame-ancestors 'self'", got)
	}
}

func TestForceHTTPS(t *testing.T) {
	c := tenant.New(func(ctx context.Context, host string) (*tenant.Tenant, error) {
		if host != "atelier.example" {
			return nil, tenant.ErrNotFound
		}
		return tenant.MemoryLoader(store.NewMemory())(ctx, host)
	}, time.Minute, 0)
	defer c.Close()
	h := ForceHTTPS(c, ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://atelier.example:80/editor/pages?x=1", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("code = %d, want 308", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://atelier.example/editor/pages?x=1" {
		t.Fatalf("Location = %q", loc)
	}

	for _, url := range []string{"http://localhost/", "http://nobody.example/"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: code = %d, want pass-through", url, rec.Code)
		}
	}
}
