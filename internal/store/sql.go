// internal/store/sql.go
//
// MySQL-backed Store.
//
// Context
// -------
// One row per section in `sections`, one per page in `pages`.  The four
// payload maps are JSON columns; they are encoded on write and decoded on
// read with encoding/json, so numbers come back as float64 exactly like
// the editor sent them.  Global sections have page_id NULL.
//
// Workflow
// --------
//   - Reads run one parameterised SELECT and sort in Go with section.Sort,
//     so ties break the same way as in the memory store.
//   - SaveSection checks the stored tenant and type first, then upserts with
//     ON DUPLICATE KEY UPDATE.  The type column is never updated.
//   - Reorder and DeletePage run inside one transaction.
//
// Notes
// -----
//   - Duplicate slugs surface as MySQL error 1062 and map to
//     ErrDuplicateSlug.
//   - Oxford commas, two spaces after periods.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/sitekit/internal/routing"
	"github.com/yanizio/sitekit/internal/section"
)

// SQL implements Store over a *sqlx.DB.
type SQL struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQL wraps db.  The caller owns the pool and closes it.
func NewSQL(db *sqlx.DB) *SQL { return &SQL{db: db, now: time.Now} }

var _ Store = (*SQL)(nil)

// sectionRow mirrors one row of `sections`.
type sectionRow struct {
	ID           string         `db:"id"`
	TenantID     string         `db:"tenant_id"`
	PageID       sql.NullString `db:"page_id"`
	Type         string         `db:"type"`
	Name         string         `db:"name"`
	Order        float64        `db:"sort_order"`
	Active       bool           `db:"active"`
	Content      []byte         `db:"content"`
	Design       []byte         `db:"design"`
	Effects      []byte         `db:"effects"`
	TextSettings []byte         `db:"text_settings"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

const sectionCols = `id, tenant_id, page_id, type, name, sort_order, active,
        content, design, effects, text_settings, created_at, updated_at`

const pageCols = `id, tenant_id, slug, name, published, seo_title, seo_description,
        sort_order, created_at, updated_at`

func decodeMap(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeMap(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	return json.Marshal(m)
}

func (r sectionRow) section() (section.Section, error) {
	s := section.Section{
		ID:        r.ID,
		TenantID:  r.TenantID,
		PageID:    r.PageID.String,
		Type:      section.Type(r.Type),
		Name:      r.Name,
		Order:     r.Order,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	var err error
	if s.Content, err = decodeMap(r.Content); err != nil {
		return s, fmt.Errorf("section %s content: %w", r.ID, err)
	}
	if s.Design, err = decodeMap(r.Design); err != nil {
		return s, fmt.Errorf("section %s design: %w", r.ID, err)
	}
	if s.Effects, err = decodeMap(r.Effects); err != nil {
		return s, fmt.Errorf("section %s effects: %w", r.ID, err)
	}
	if s.TextSettings, err = decodeMap(r.TextSettings); err != nil {
		return s, fmt.Errorf("section %s textSettings: %w", r.ID, err)
	}
	return s, nil
}

func (st *SQL) selectSections(ctx context.Context, q string, args ...any) ([]section.Section, error) {
	var rows []sectionRow
	if err := st.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("select sections: %w", err)
	}
	out := make([]section.Section, 0, len(rows))
	for _, r := range rows {
		s, err := r.section()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	section.Sort(out)
	return out, nil
}

func (st *SQL) LoadSections(ctx context.Context, tenantID, pageID string) ([]section.Section, error) {
	return st.selectSections(ctx, `SELECT `+sectionCols+`
        FROM   sections
        WHERE  tenant_id = ? AND (page_id = ? OR page_id IS NULL)`, tenantID, pageID)
}

func (st *SQL) GlobalSections(ctx context.Context, tenantID string) ([]section.Section, error) {
	return st.selectSections(ctx, `SELECT `+sectionCols+`
        FROM   sections
        WHERE  tenant_id = ? AND page_id IS NULL`, tenantID)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (st *SQL) SaveSection(ctx context.Context, s section.Section) error {
	// ids are globally unique, so the lookup is by id alone; a row owned
	// by another tenant must never reach the upsert.
	var stored struct {
		TenantID string `db:"tenant_id"`
		Type     string `db:"type"`
	}
	err := st.db.GetContext(ctx, &stored,
		`SELECT tenant_id, type FROM sections WHERE id = ? LIMIT 1`, s.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if s.CreatedAt.IsZero() {
			s.CreatedAt = st.now()
		}
	case err != nil:
		return fmt.Errorf("save section %s: %w", s.ID, err)
	case stored.TenantID != s.TenantID:
		return fmt.Errorf("save section %s: %w", s.ID, ErrNotFound)
	case stored.Type != string(s.Type):
		return fmt.Errorf("save section %s: %w", s.ID, ErrTypeImmutable)
	}
	s.UpdatedAt = st.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.UpdatedAt
	}
	return st.upsert(ctx, s)
}

func (st *SQL) upsert(ctx context.Context, s section.Section) error {
	content, err := encodeMap(s.Content)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	design, err := encodeMap(s.Design)
	if err != nil {
		return fmt.Errorf("encode design: %w", err)
	}
	effects, err := encodeMap(s.Effects)
	if err != nil {
		return fmt.Errorf("encode effects: %w", err)
	}
	text, err := encodeMap(s.TextSettings)
	if err != nil {
		return fmt.Errorf("encode textSettings: %w", err)
	}

	const q = `
        INSERT INTO sections (` + sectionCols + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE
               name = VALUES(name), sort_order = VALUES(sort_order),
               active = VALUES(active), content = VALUES(content),
               design = VALUES(design), effects = VALUES(effects),
               text_settings = VALUES(text_settings), updated_at = VALUES(updated_at)`
	_, err = st.db.ExecContext(ctx, q,
		s.ID, s.TenantID, nullable(s.PageID), string(s.Type), s.Name, s.Order, s.Active,
		content, design, effects, text, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert section %s: %w", s.ID, err)
	}
	return nil
}

func (st *SQL) CreateSection(ctx context.Context, s section.Section) (section.Section, error) {
	var maxOrder sql.NullFloat64
	err := st.db.GetContext(ctx, &maxOrder,
		`SELECT MAX(sort_order) FROM sections WHERE tenant_id = ? AND page_id <=> ?`,
		s.TenantID, nullable(s.PageID))
	if err != nil {
		return section.Section{}, fmt.Errorf("create section: %w", err)
	}
	var siblings []section.Section
	if maxOrder.Valid {
		siblings = []section.Section{{Order: maxOrder.Float64}}
	}
	s = prepareNew(s, siblings, st.now())
	if err := st.upsert(ctx, s); err != nil {
		return section.Section{}, err
	}
	return s, nil
}

func (st *SQL) DeleteSection(ctx context.Context, tenantID, id string) error {
	res, err := st.db.ExecContext(ctx,
		`DELETE FROM sections WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete section %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (st *SQL) Reorder(ctx context.Context, tenantID, pageID string, ids []string) error {
	tx, err := st.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	now := st.now()
	for i, id := range ids {
		_, err := tx.ExecContext(ctx,
			`UPDATE sections SET sort_order = ?, updated_at = ? WHERE tenant_id = ? AND page_id = ? AND id = ?`,
			float64(i), now, tenantID, pageID, id)
		if err != nil {
			return fmt.Errorf("reorder %s: %w", id, err)
		}
	}
	return tx.Commit()
}

/*──────────────────────────── pages ────────────────────────────────────────*/

func (st *SQL) Pages(ctx context.Context, tenantID string) ([]section.Page, error) {
	var out []section.Page
	err := st.db.SelectContext(ctx, &out, `SELECT `+pageCols+`
        FROM   pages
        WHERE  tenant_id = ?
        ORDER  BY sort_order, slug`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("select pages: %w", err)
	}
	return out, nil
}

func (st *SQL) PageBySlug(ctx context.Context, tenantID, slug string) (section.Page, error) {
	var p section.Page
	err := st.db.GetContext(ctx, &p, `SELECT `+pageCols+`
        FROM   pages
        WHERE  tenant_id = ? AND slug = ?
        LIMIT  1`, tenantID, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, fmt.Errorf("page %q: %w", slug, err)
	}
	return p, nil
}

func (st *SQL) CreatePage(ctx context.Context, p section.Page) (section.Page, error) {
	if p.Slug == "" {
		p.Slug = routing.MakeSlug(p.Name)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = st.now()
	p.UpdatedAt = p.CreatedAt

	_, err := st.db.ExecContext(ctx, `
        INSERT INTO pages (`+pageCols+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TenantID, p.Slug, p.Name, p.Published, p.SEOTitle, p.SEODescription,
		p.Order, p.CreatedAt, p.UpdatedAt)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return section.Page{}, fmt.Errorf("create page %q: %w", p.Slug, ErrDuplicateSlug)
	}
	if err != nil {
		return section.Page{}, fmt.Errorf("create page %q: %w", p.Slug, err)
	}
	return p, nil
}

func (st *SQL) DeletePage(ctx context.Context, tenantID, id string) error {
	var slug string
	err := st.db.GetContext(ctx, &slug,
		`SELECT slug FROM pages WHERE tenant_id = ? AND id = ? LIMIT 1`, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	if slug == section.RootSlug {
		return ErrRootPage
	}

	tx, err := st.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sections WHERE tenant_id = ? AND page_id = ?`, tenantID, id); err != nil {
		return fmt.Errorf("delete page %s sections: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM pages WHERE tenant_id = ? AND id = ?`, tenantID, id); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	return tx.Commit()
}
