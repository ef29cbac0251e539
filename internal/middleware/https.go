// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/yanizio/sitekit/internal/tenant"
)

// ForceHTTPS wraps h.  If the request is plain HTTP, the host is not
// “localhost”, and the cache confirms the site exists, the wrapper issues a
// 308 Permanent Redirect to the HTTPS version of the same URL.  Otherwise it
// calls the next handler unchanged.
func ForceHTTPS(cache *tenant.Cache, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" ||
			stripPort(r.Host) == "localhost" {
			h.ServeHTTP(w, r)
			return
		}

		if _, err := cache.Get(r.Context(), r.Host); err == nil {
			target := "https://" + stripPort(r.Host) + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
			return
		}

		// Unknown host: let the tenant resolver answer 404.
		h.ServeHTTP(w, r)
	})
}

func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
