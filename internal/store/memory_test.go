package store

import (
	"context"
	"errors"
	"testing"

	"github.com/yanizio/sitekit/internal/section"
)

func seed(t *testing.T) (*Memory, section.Page, section.Page) {
	t.Helper()
	ctx := context.Background()
	m := NewMemory()
	home, err := m.CreatePage(ctx, section.Page{TenantID: "t1", Slug: section.RootSlug, Name: "Accueil"})
	if err != nil {
		t.Fatalf("CreatePage home: %v", err)
	}
	about, err := m.CreatePage(ctx, section.Page{TenantID: "t1", Name: "À propos"})
	if err != nil {
		t.Fatalf("CreatePage about: %v", err)
	}
	return m, home, about
}

func TestMemory_CreatePage_Slug(t *testing.T) {
	m, _, about := seed(t)
	if about.Slug != "a-propos" {
		t.Fatalf("slug = %q, want a-propos", about.Slug)
	}
	_, err := m.CreatePage(context.Background(), section.Page{TenantID: "t1", Name: "A propos"})
	if !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("err = %v, want ErrDuplicateSlug", err)
	}
	// Same slug under another tenant is fine.
	if _, err := m.CreatePage(context.Background(), section.Page{TenantID: "t2", Name: "A propos"}); err != nil {
		t.Fatalf("other tenant: %v", err)
	}
}

func TestMemory_CreateSection_Defaults(t *testing.T) {
	m, home, _ := seed(t)
	ctx := context.Background()

	a, _ := m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: section.TypeHero})
	b, _ := m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: "bogus"})

	if a.ID == "" || !a.Active || a.Content == nil {
		t.Fatalf("defaults not filled: %#v", a)
	}
	if b.Order != a.Order+1 {
		t.Fatalf("order = %v, want %v", b.Order, a.Order+1)
	}
	if b.Type != section.ParseType("bogus") {
		t.Fatalf("type = %q", b.Type)
	}
}

func TestMemory_LoadSections_IncludesGlobals(t *testing.T) {
	m, home, about := seed(t)
	ctx := context.Background()

	m.CreateSection(ctx, section.Section{TenantID: "t1", Type: section.TypeHeader})
	m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: section.TypeHero})
	m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: about.ID, Type: section.TypeFAQ})
	m.CreateSection(ctx, section.Section{TenantID: "t2", Type: section.TypeFooter})

	got, err := m.LoadSections(ctx, "t1", home.ID)
	if err != nil {
		t.Fatalf("LoadSections: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (hero + global header)", len(got))
	}
	globals, _ := m.GlobalSections(ctx, "t1")
	if len(globals) != 1 || globals[0].Type != section.TypeHeader {
		t.Fatalf("globals = %#v", globals)
	}
}

func TestMemory_SaveSection_TypeImmutable(t *testing.T) {
	m, home, _ := seed(t)
	ctx := context.Background()

	s, _ := m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: section.TypeHero})
	s.Content["titre"] = "Bonjour"
	if err := m.SaveSection(ctx, s); err != nil {
		t.Fatalf("SaveSection: %v", err)
	}
	s.Type = section.TypeFAQ
	if err := m.SaveSection(ctx, s); !errors.Is(err, ErrTypeImmutable) {
		t.Fatalf("err = %v, want ErrTypeImmutable", err)
	}

	got, _ := m.LoadSections(ctx, "t1", home.ID)
	if got[0].Type != section.TypeHero || got[0].Content["titre"] != "Bonjour" {
		t.Fatalf("stored = %#v", got[0])
	}
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	m, home, _ := seed(t)
	ctx := context.Background()

	s, _ := m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: section.TypeHero})
	s.Content["titre"] = "changed outside"

	got, _ := m.LoadSections(ctx, "t1", home.ID)
	if _, ok := got[0].Content["titre"]; ok {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestMemory_DeletePage(t *testing.T) {
	m, home, about := seed(t)
	ctx := context.Background()

	if err := m.DeletePage(ctx, "t1", home.ID); !errors.Is(err, ErrRootPage) {
		t.Fatalf("err = %v, want ErrRootPage", err)
	}

	m.CreateSection(ctx, section.Section{TenantID: "t1", Type: section.TypeFooter})
	m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: about.ID, Type: section.TypeFAQ})

	if err := m.DeletePage(ctx, "t1", about.ID); err != nil {
		t.Fatalf("DeletePage: %v", err)
	}
	if _, err := m.PageBySlug(ctx, "t1", about.Slug); !errors.Is(err, ErrNotFound) {
		t.Fatalf("page still present: %v", err)
	}
	globals, _ := m.GlobalSections(ctx, "t1")
	if len(globals) != 1 {
		t.Fatalf("global sections = %d, want 1", len(globals))
	}
	if err := m.DeletePage(ctx, "t1", about.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestMemory_Reorder(t *testing.T) {
	m, home, _ := seed(t)
	ctx := context.Background()

	a, _ := m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: section.TypeHero})
	b, _ := m.CreateSection(ctx, section.Section{TenantID: "t1", PageID: home.ID, Type: section.TypeFAQ})

	if err := m.Reorder(ctx, "t1", home.ID, []string{b.ID, a.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	got, _ := m.LoadSections(ctx, "t1", home.ID)
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Fatalf("order = %s, %s", got[0].ID, got[1].ID)
	}
}
