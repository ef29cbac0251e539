package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/sitekit/internal/database"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/site"
	"github.com/yanizio/sitekit/internal/store"
)

// openDB is swapped in tests.
var openDB = database.Open

// SQLLoader turns host → *Tenant from the global `site` schema.  Steps:
//
//  1. Fetch the site row.
//  2. Fetch key-value config rows.
//  3. Open a small pool on the site's DSN.
//  4. Make sure the root page exists.
func SQLLoader(global *sqlx.DB) Loader {
	return func(ctx context.Context, host string) (*Tenant, error) {
		rec, err := site.ByHost(ctx, global, host)
		if errors.Is(err, site.ErrNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}

		cfg, err := site.ConfigBySite(ctx, global, rec.ID)
		if err != nil {
			return nil, err
		}

		db, err := openDB(ctx, buildTenantDSN(rec.DSN, cfg[site.KeyDBPassword]), database.TenantOptions())
		if err != nil {
			return nil, fmt.Errorf("tenant %s: %w", host, err)
		}

		t := &Tenant{Meta: *rec, Config: cfg, DB: db, Store: store.NewSQL(db)}
		if err := ensureRoot(ctx, t); err != nil {
			_ = db.Close()
			return nil, err
		}
		return t, nil
	}
}

// MemoryLoader serves every host from one shared in-memory store.  Each
// host becomes a tenant with a seeded root page on first sight.
func MemoryLoader(st *store.Memory) Loader {
	return func(ctx context.Context, host string) (*Tenant, error) {
		if host == "" {
			return nil, ErrNotFound
		}
		t := &Tenant{
			Meta:   site.Record{Host: host, Title: host, Locale: "fr_FR"},
			Config: map[string]string{},
			Store:  st,
		}
		if err := ensureRoot(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	}
}

// ensureRoot creates the undeletable root page when the tenant has none.
func ensureRoot(ctx context.Context, t *Tenant) error {
	_, err := t.Store.PageBySlug(ctx, t.ID(), section.RootSlug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	name := t.Config[site.KeyHomeTitle]
	if name == "" {
		name = "Accueil"
	}
	_, err = t.Store.CreatePage(ctx, section.Page{
		TenantID:  t.ID(),
		Slug:      section.RootSlug,
		Name:      name,
		Published: true,
	})
	if errors.Is(err, store.ErrDuplicateSlug) {
		return nil
	}
	return err
}

// buildTenantDSN fills the DSN's %s verb with the site's password.  A DSN
// with no verb carries its own credentials and is used as is.
func buildTenantDSN(dsn, password string) string {
	if !strings.Contains(dsn, "%s") {
		return dsn
	}
	return fmt.Sprintf(dsn, password)
}
