// context.go carries the resolved Tenant on the request context.  Resolve
// is mounted once on the root router; components read the tenant back
// with FromContext.
package tenant

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithTenant returns a copy of ctx carrying t.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext returns the tenant stored by Resolve, or nil.
func FromContext(ctx context.Context) *Tenant {
	t, _ := ctx.Value(ctxKey{}).(*Tenant)
	return t
}

// Resolve looks the request host up in c.  Unknown hosts get 404, load
// failures 503.
func Resolve(c *Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t, err := c.Get(r.Context(), r.Host)
			switch {
			case errors.Is(err, ErrNotFound):
				http.NotFound(w, r)
				return
			case err != nil:
				zap.L().Error("tenant load failed", zap.String("host", r.Host), zap.Error(err))
				http.Error(w, "site temporarily unavailable", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}
