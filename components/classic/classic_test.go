package classic

import (
	"strings"
	"testing"

	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/variant"
)

func TestCatalog_AllRegisteredAndRender(t *testing.T) {
	for typ, variants := range catalog {
		for _, v := range variants {
			if variant.Lookup(typ, v) == nil {
				t.Errorf("%s/%s not registered", typ, v)
				continue
			}
			s := section.Section{ID: "s", Type: typ, Active: true, Design: map[string]any{"variant": v}}
			out := string(variant.RenderSection(s))
			if !strings.Contains(out, `data-renderer="classic/`+string(typ)+"/"+v+`"`) {
				t.Errorf("%s/%s: wrong renderer: %s", typ, v, out)
			}
			if strings.Contains(out, "section-error") {
				t.Errorf("%s/%s: render failed: %s", typ, v, out)
			}
		}
	}
}

func TestServicesGrid_LegacyContent(t *testing.T) {
	s := section.Section{
		ID:      "svc",
		Type:    section.TypeServices,
		Design:  map[string]any{"variant": "grid"},
		Content: map[string]any{"services": []any{map[string]any{"titre": "Audit", "description": "Full review"}}},
	}
	out := string(variant.RenderSection(s))
	for _, want := range []string{"<h2 class=\"section-title\">Nos Services</h2>", "<h3>Audit</h3>", `data-icon="settings"`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestHeader_LegacyStyleKey(t *testing.T) {
	s := section.Section{
		ID:     "hdr",
		Type:   section.TypeHeader,
		Design: map[string]any{"headerStyle": "Centered"},
		Content: map[string]any{
			"siteTitle":       "Acme",
			"headerMenuLinks": `[{"label":"Accueil","url":"#home"}]`,
		},
	}
	out := string(variant.RenderSection(s))
	if !strings.Contains(out, "header-centered") || !strings.Contains(out, `href="#home"`) {
		t.Fatalf("header = %s", out)
	}
}

func TestGalleryGrid_EmptyMessage(t *testing.T) {
	s := section.Section{ID: "g", Type: section.TypeGallery, Design: map[string]any{"variant": "grid"}}
	if out := string(variant.RenderSection(s)); !strings.Contains(out, "Aucune image dans la galerie") {
		t.Fatalf("gallery = %s", out)
	}
}

func TestContactForm_Fields(t *testing.T) {
	s := section.Section{
		ID:      "c",
		Type:    section.TypeContact,
		Design:  map[string]any{"variant": "form"},
		Content: map[string]any{"formFields": []any{map[string]any{"name": "email", "type": "email", "required": true}}},
	}
	out := string(variant.RenderSection(s))
	if !strings.Contains(out, `<input id="fld-email" name="email" type="email" required>`) {
		t.Fatalf("contact = %s", out)
	}
	if !strings.Contains(out, "Envoyer") {
		t.Fatalf("default submit text missing: %s", out)
	}
}
