// internal/middleware/security.go
//
// Security-header middleware.
//
// Sets these headers on every response:
//
//   • Strict-Transport-Security  –  forces HTTPS (2 years + preload)
//   • Content-Security-Policy   –  self-only policy, no framing
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path/query from Referer
//   • Permissions-Policy        –  disables powerful features by default
//
// Notes
// -----
// • Headers are written *before* next.ServeHTTP because anything added
//   after the first Write never reaches the client.  Handlers, and inner
//   middleware such as SameOriginFrames, override them with Header().Set.
// • Oxford commas, two spaces after periods.

package middleware

import "net/http"

const (
	hsts       = "max-age=63072000; includeSubDomains; preload"
	cspPrefix  = "default-src 'self'; img-src 'self' data: https:; media-src 'self' https:; " +
		"style-src 'self' 'unsafe-inline'; connect-src 'self'; object-src 'none'; base-uri 'self'; "
	cspNoFrame = cspPrefix + "frame-ancestors 'none'"
	cspSelf    = cspPrefix + "frame-ancestors 'self'"
)

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Strict-Transport-Security", hsts)
		h.Set("Content-Security-Policy", cspNoFrame)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		next.ServeHTTP(w, r)
	})
}

// SameOriginFrames relaxes Security for routes that the editor embeds in
// an iframe on its own origin, i.e. the preview frame.
func SameOriginFrames(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", cspSelf)
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		next.ServeHTTP(w, r)
	})
}
