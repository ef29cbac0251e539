// internal/tenant/helpers.go
//
// Host helpers shared by the cache and the request middleware.
//
//   • `stripPort`:         drops the :port suffix of a Host header.
//   • `resolveLookupHost`: maps the literal host “localhost” to an alias
//     from `SITEKIT_LOCALHOST_ALIAS` or `tenant.localhost_alias`, so a dev
//     instance can masquerade as any real site row.
//
// Notes
// -----
// • No logging here; callers decide what to log.
package tenant

import (
	"os"
	"strings"

	"github.com/yanizio/sitekit/internal/config"
)

func stripPort(h string) string {
	if i := strings.LastIndexByte(h, ':'); i != -1 && !strings.Contains(h[i:], "]") {
		return h[:i]
	}
	return h
}

func resolveLookupHost(h string) string {
	if h != "localhost" {
		return h
	}
	if alias := os.Getenv("SITEKIT_LOCALHOST_ALIAS"); alias != "" {
		return alias
	}
	if cfg := config.Get(); cfg != nil && cfg.Tenant.LocalhostAlias != "" {
		return cfg.Tenant.LocalhostAlias
	}
	return h
}
