// internal/site/config.go
//
// Key-value settings from the `site_config` table.  The query runs once
// when the tenant is loaded and the map is cached alongside the Tenant.
package site

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Well-known site_config keys.
const (
	KeyDBPassword = "db_password" // fills the %s verb of Record.DSN
	KeyHomeTitle  = "home_title"  // name given to a freshly seeded root page
)

// ConfigBySite returns a map[key]value for one site_id.
func ConfigBySite(ctx context.Context, db *sqlx.DB, siteID uint64) (map[string]string, error) {
	const q = `
	    SELECT  ` + "`key`, value" + `
	    FROM    site_config
	    WHERE   site_id = ?`
	rows := make([]struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}, 0, 8)

	if err := db.SelectContext(ctx, &rows, q, siteID); err != nil {
		return nil, fmt.Errorf("site_config %d: %w", siteID, err)
	}

	cfg := make(map[string]string, len(rows))
	for _, r := range rows {
		cfg[r.Key] = r.Value
	}
	return cfg, nil
}
