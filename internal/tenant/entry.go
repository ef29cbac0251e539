// internal/tenant/entry.go
//
// Tenant cache entry and aggregate.
//
// Context
// -------
// A live Tenant carries what the editor and preview components need to
// serve one site: its `site` row, the `site_config` map, and the page
// store.  In MySQL mode the store sits on a per-site pool that the
// tenant owns.  In memory mode DB is nil and the store is shared.
//
// Notes
// -----
//   - Close is invoked only by the cache evictor and Cache.Close.
//   - Oxford commas, two spaces after periods.
package tenant

import (
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/sitekit/internal/site"
	"github.com/yanizio/sitekit/internal/store"
)

type entry struct {
	tenant   *Tenant
	lastSeen int64 // UnixNano
}

// Tenant groups the per-site runtime assets used by request handlers.
type Tenant struct {
	Meta   site.Record       // row from `site`
	Config map[string]string // pairs from `site_config`
	DB     *sqlx.DB          // per-site pool, nil in memory mode
	Store  store.Store
}

// ID is the tenant key used by the store.  It is the site host.
func (t *Tenant) ID() string { return t.Meta.Host }

// Close releases the per-site pool, if any.
func (t *Tenant) Close() error {
	if t.DB == nil {
		return nil
	}
	return t.DB.Close()
}
