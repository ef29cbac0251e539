// internal/section/model.go
//
// Section and Page records.
//
// Context
// -------
// A Page belongs to one tenant and owns an ordered list of Sections.  A
// Section with an empty PageID is *global* (headers, footers) and belongs
// to the tenant instead.  Each Section carries four independent payload
// maps:
//
//   • Content      – subject-matter data, schema-drifted across producers.
//   • Design       – variant name and per-variant layout options.
//   • Effects      – visual effect toggles, orthogonal to the variant.
//   • TextSettings – typography overrides, orthogonal to the variant.
//
// The maps stay untyped here because they are stored as JSON blobs and
// may hold anything an older editor wrote.  Normalize (adapter.go) turns
// them into the typed Canonical view used by renderers.
//
// Notes
// -----
//   • Type is immutable after creation; stores enforce it.
//   • Oxford commas, two spaces after periods.
package section

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type is the closed set of section kinds.  Unknown tags are preserved
// verbatim so nothing stored is ever lost.
type Type string

const (
	TypeHero         Type = "hero"
	TypeServices     Type = "services"
	TypeAdvantages   Type = "advantages"
	TypeGallery      Type = "gallery"
	TypePortfolio    Type = "portfolio"
	TypeTestimonials Type = "testimonials"
	TypeTrust        Type = "trust"
	TypeFAQ          Type = "faq"
	TypeContact      Type = "contact"
	TypeBlog         Type = "blog"
	TypeHeader       Type = "header"
	TypeFooter       Type = "footer"
	TypeInfiniteZoom Type = "infinite-zoom"
	TypeCustom       Type = "custom"
)

// Types lists every known type in catalog order.
var Types = []Type{
	TypeHero, TypeServices, TypeAdvantages, TypeGallery, TypePortfolio,
	TypeTestimonials, TypeTrust, TypeFAQ, TypeContact, TypeBlog,
	TypeHeader, TypeFooter, TypeInfiniteZoom, TypeCustom,
}

// ParseType folds case and underscores so "INFINITE_ZOOM" and
// "infinite-zoom" name the same type.  Unrecognised tags come back
// unchanged apart from trimming and case folding.
func ParseType(s string) Type {
	return Type(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
}

// Known reports whether t is part of the closed set.
func (t Type) Known() bool {
	for _, k := range Types {
		if k == t {
			return true
		}
	}
	return false
}

// Zone is the editor area a section lives in.
type Zone string

const (
	ZoneHeader Zone = "HEADER"
	ZoneBody   Zone = "BODY"
	ZoneFooter Zone = "FOOTER"
)

// ZoneOf maps a type to its editor zone.
func ZoneOf(t Type) Zone {
	switch t {
	case TypeHeader:
		return ZoneHeader
	case TypeFooter:
		return ZoneFooter
	default:
		return ZoneBody
	}
}

// Section is one typed, orderable content unit on a page (or global).
type Section struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenantId"`
	PageID       string         `json:"pageId,omitempty"` // "" → global
	Type         Type           `json:"type"`
	Name         string         `json:"name,omitempty"`
	Order        float64        `json:"order"`
	Active       bool           `json:"isActive"`
	Content      map[string]any `json:"content"`
	Design       map[string]any `json:"design"`
	Effects      map[string]any `json:"effects"`
	TextSettings map[string]any `json:"textSettings"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Global reports whether the section is owned by the tenant rather than
// a page.
func (s Section) Global() bool { return s.PageID == "" }

// RootSlug marks the site root page, which can never be deleted.
const RootSlug = "home"

// Page belongs to one tenant and orders its sections.
type Page struct {
	ID             string    `json:"id"              db:"id"`
	TenantID       string    `json:"tenantId"        db:"tenant_id"`
	Slug           string    `json:"slug"            db:"slug"`
	Name           string    `json:"name"            db:"name"`
	Published      bool      `json:"isPublished"     db:"published"`
	SEOTitle       string    `json:"seoTitle"        db:"seo_title"`
	SEODescription string    `json:"seoDescription"  db:"seo_description"`
	Order          int       `json:"order"           db:"sort_order"`
	CreatedAt      time.Time `json:"createdAt"       db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt"       db:"updated_at"`
}

// Root reports whether p is the undeletable site root.
func (p Page) Root() bool { return p.Slug == RootSlug }

// DefaultContent is the payload a freshly created section starts with.
func DefaultContent() map[string]any {
	return map[string]any{
		"blocks": []any{},
		"layout": map[string]any{},
		"sizing": map[string]any{},
	}
}

// New returns a fresh section of type t with the default payload.  The
// caller places it; order is usually NextOrder of the page's list.
func New(tenantID, pageID string, t Type, order float64, now time.Time) Section {
	return Section{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		PageID:       pageID,
		Type:         t,
		Order:        order,
		Active:       true,
		Content:      DefaultContent(),
		Design:       map[string]any{},
		Effects:      map[string]any{},
		TextSettings: map[string]any{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
