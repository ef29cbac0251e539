// internal/site/model.go
//
// `site` table row model.
//
// Context
// -------
// One row per tenant in the global schema.  The tenant loader reads it by
// host, opens a pool on DSN, and uses Host as the tenant id for every
// page and section the tenant owns.
//
// Schema reference
//
//	CREATE TABLE site (
//	    id            INT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
//	    host          VARCHAR(256)  NOT NULL UNIQUE,
//	    dsn           VARCHAR(512)  NOT NULL,
//	    title         VARCHAR(256)  NOT NULL DEFAULT '',
//	    locale        VARCHAR(16)   NOT NULL DEFAULT 'fr_FR',
//	    suspended_at  TIMESTAMP NULL,
//	    deleted_at    TIMESTAMP NULL
//	);
//
// Notes
// -----
// • Either nullable timestamp being set keeps the site from loading.
// • DSN may carry one `%s` verb; the loader fills it with the tenant's
//   secret from `site_config.db_password`.
package site

import "time"

// Record mirrors one row in the `site` table.
type Record struct {
	ID          uint64     `db:"id"`
	Host        string     `db:"host"`
	DSN         string     `db:"dsn"`
	Title       string     `db:"title"`
	Locale      string     `db:"locale"`
	SuspendedAt *time.Time `db:"suspended_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

// Active reports whether the site may be served.
func (r Record) Active() bool { return r.SuspendedAt == nil && r.DeletedAt == nil }
