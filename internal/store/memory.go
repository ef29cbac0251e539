package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanizio/sitekit/internal/routing"
	"github.com/yanizio/sitekit/internal/section"
)

// Memory is a process-local Store.  It backs tests, the sectionctl tool,
// and dev instances started without a database.  Values are deep-copied
// on the way in and out, so callers never share maps with the store.
type Memory struct {
	mu       sync.RWMutex
	sections map[string]section.Section // id → section
	pages    map[string]section.Page    // id → page
	now      func() time.Time
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		sections: map[string]section.Section{},
		pages:    map[string]section.Page{},
		now:      time.Now,
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) LoadSections(_ context.Context, tenantID, pageID string) ([]section.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []section.Section
	for _, s := range m.sections {
		if s.TenantID == tenantID && (s.PageID == pageID || s.Global()) {
			out = append(out, section.Clone(s))
		}
	}
	section.Sort(out)
	return out, nil
}

func (m *Memory) GlobalSections(_ context.Context, tenantID string) ([]section.Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []section.Section
	for _, s := range m.sections {
		if s.TenantID == tenantID && s.Global() {
			out = append(out, section.Clone(s))
		}
	}
	section.Sort(out)
	return out, nil
}

func (m *Memory) SaveSection(_ context.Context, s section.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.sections[s.ID]; ok {
		if prev.TenantID != s.TenantID {
			return ErrNotFound
		}
		if prev.Type != s.Type {
			return fmt.Errorf("save section %s: %w", s.ID, ErrTypeImmutable)
		}
		s.CreatedAt = prev.CreatedAt
	} else if s.CreatedAt.IsZero() {
		s.CreatedAt = m.now()
	}
	s.UpdatedAt = m.now()
	m.sections[s.ID] = section.Clone(s)
	return nil
}

func (m *Memory) CreateSection(_ context.Context, s section.Section) (section.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var siblings []section.Section
	for _, x := range m.sections {
		if x.TenantID == s.TenantID && x.PageID == s.PageID {
			siblings = append(siblings, x)
		}
	}
	s = prepareNew(s, siblings, m.now())
	m.sections[s.ID] = section.Clone(s)
	return section.Clone(s), nil
}

func (m *Memory) DeleteSection(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sections[id]
	if !ok || s.TenantID != tenantID {
		return ErrNotFound
	}
	delete(m.sections, id)
	return nil
}

func (m *Memory) Reorder(_ context.Context, tenantID, pageID string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for i, id := range ids {
		s, ok := m.sections[id]
		if !ok || s.TenantID != tenantID || s.PageID != pageID {
			continue
		}
		s.Order = float64(i)
		s.UpdatedAt = now
		m.sections[id] = s
	}
	return nil
}

func (m *Memory) Pages(_ context.Context, tenantID string) ([]section.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []section.Page
	for _, p := range m.pages {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (m *Memory) PageBySlug(_ context.Context, tenantID, slug string) (section.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.pages {
		if p.TenantID == tenantID && p.Slug == slug {
			return p, nil
		}
	}
	return section.Page{}, ErrNotFound
}

func (m *Memory) CreatePage(_ context.Context, p section.Page) (section.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.Slug == "" {
		p.Slug = routing.MakeSlug(p.Name)
	}
	for _, x := range m.pages {
		if x.TenantID == p.TenantID && x.Slug == p.Slug {
			return section.Page{}, fmt.Errorf("create page %q: %w", p.Slug, ErrDuplicateSlug)
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	m.pages[p.ID] = p
	return p, nil
}

func (m *Memory) DeletePage(_ context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[id]
	if !ok || p.TenantID != tenantID {
		return ErrNotFound
	}
	if p.Root() {
		return ErrRootPage
	}
	for sid, s := range m.sections {
		if s.TenantID == tenantID && s.PageID == id {
			delete(m.sections, sid)
		}
	}
	delete(m.pages, id)
	return nil
}

// prepareNew fills what a caller may leave blank on a new section: id,
// default payload, order after its siblings, and timestamps.
func prepareNew(s section.Section, siblings []section.Section, now time.Time) section.Section {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Type = section.ParseType(string(s.Type))
	if s.Content == nil {
		s.Content = section.DefaultContent()
	}
	if s.Design == nil {
		s.Design = map[string]any{}
	}
	if s.Effects == nil {
		s.Effects = map[string]any{}
	}
	if s.TextSettings == nil {
		s.TextSettings = map[string]any{}
	}
	s.Order = section.NextOrder(siblings)
	s.Active = true
	s.CreatedAt = now
	s.UpdatedAt = now
	return s
}
