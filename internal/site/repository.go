package site

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no active site matches.
var ErrNotFound = errors.New("site not found")

const recordCols = `id, host, dsn, title, locale, suspended_at, deleted_at`

// AllActive returns every site that is neither suspended nor deleted,
// ordered by host.  Used by sectionctl and batch tooling, not by the HTTP
// bootstrap path.
func AllActive(ctx context.Context, db *sqlx.DB) ([]Record, error) {
	q := `
        SELECT ` + recordCols + `
        FROM   site
        WHERE  suspended_at IS NULL
          AND  deleted_at   IS NULL
        ORDER  BY host`
	var rows []Record
	if err := db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return rows, nil
}

// ByHost fetches a single active site row.
func ByHost(ctx context.Context, db *sqlx.DB, host string) (*Record, error) {
	q := `
        SELECT ` + recordCols + `
        FROM   site
        WHERE  host = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	var rec Record
	if err := db.GetContext(ctx, &rec, q, host); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("site %q: %w", host, err)
	}
	return &rec, nil
}
