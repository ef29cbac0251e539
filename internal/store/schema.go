package store

// Schema is the DDL for the two tables SQL reads and writes.  Each tenant
// schema carries its own copy; tenant_id is kept on every row so one
// database can also host several tenants.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS pages (
    id              CHAR(36)      NOT NULL PRIMARY KEY,
    tenant_id       VARCHAR(256)  NOT NULL,
    slug            VARCHAR(191)  NOT NULL,
    name            VARCHAR(256)  NOT NULL,
    published       TINYINT(1)    NOT NULL DEFAULT 0,
    seo_title       VARCHAR(256)  NOT NULL DEFAULT '',
    seo_description VARCHAR(512)  NOT NULL DEFAULT '',
    sort_order      INT           NOT NULL DEFAULT 0,
    created_at      TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at      TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE KEY uq_pages_slug (tenant_id, slug)
)`,
	`CREATE TABLE IF NOT EXISTS sections (
    id            CHAR(36)      NOT NULL PRIMARY KEY,
    tenant_id     VARCHAR(256)  NOT NULL,
    page_id       CHAR(36)      NULL,
    type          VARCHAR(64)   NOT NULL,
    name          VARCHAR(256)  NOT NULL DEFAULT '',
    sort_order    DOUBLE        NOT NULL DEFAULT 0,
    active        TINYINT(1)    NOT NULL DEFAULT 1,
    content       JSON          NULL,
    design        JSON          NULL,
    effects       JSON          NULL,
    text_settings JSON          NULL,
    created_at    TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at    TIMESTAMP     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    KEY ix_sections_page (tenant_id, page_id)
)`,
}
