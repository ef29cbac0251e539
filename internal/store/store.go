// internal/store/store.go
//
// Persistence contract for pages and sections.
//
// Context
// -------
// The editor session loads a page's sections, keeps a draft, and writes
// it back.  Everything it needs from storage sits behind Store so the
// preview hub, the HTTP editor, and tests can swap MySQL (sql.go) for the
// in-memory map (memory.go).
//
// Notes
// -----
//   - LoadSections returns the page's sections plus the tenant's global
//     sections, sorted by section.Sort.
//   - A section's Type never changes once stored; SaveSection refuses.
//   - The root page (slug "home") cannot be deleted.
//   - Deleting a page deletes its own sections only.  Global sections stay.
//   - Asset URLs inside payloads are opaque strings.  Nothing here parses
//     or rewrites them.
package store

import (
	"context"
	"errors"

	"github.com/yanizio/sitekit/internal/section"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrRootPage      = errors.New("store: the root page cannot be deleted")
	ErrTypeImmutable = errors.New("store: section type cannot change")
	ErrDuplicateSlug = errors.New("store: slug already in use")
)

// Store is implemented by *SQL and *Memory.
type Store interface {
	LoadSections(ctx context.Context, tenantID, pageID string) ([]section.Section, error)
	GlobalSections(ctx context.Context, tenantID string) ([]section.Section, error)
	SaveSection(ctx context.Context, s section.Section) error
	CreateSection(ctx context.Context, s section.Section) (section.Section, error)
	DeleteSection(ctx context.Context, tenantID, id string) error
	Reorder(ctx context.Context, tenantID, pageID string, ids []string) error

	Pages(ctx context.Context, tenantID string) ([]section.Page, error)
	PageBySlug(ctx context.Context, tenantID, slug string) (section.Page, error)
	CreatePage(ctx context.Context, p section.Page) (section.Page, error)
	DeletePage(ctx context.Context, tenantID, id string) error
}
