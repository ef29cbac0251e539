package electric

import (
	"strings"
	"testing"

	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/variant"
)

func TestElectric_Registered(t *testing.T) {
	for _, typ := range []section.Type{section.TypeHero, section.TypeHeader, section.TypeFooter} {
		s := section.Section{ID: "e", Type: typ, Design: map[string]any{"variant": "electric"}}
		out := string(variant.RenderSection(s))
		if !strings.Contains(out, `data-renderer="electric/`+string(typ)+`"`) {
			t.Errorf("%s: %s", typ, out)
		}
		if strings.Contains(out, "section-error") {
			t.Errorf("%s: render failed: %s", typ, out)
		}
	}
}

func TestElectric_FooterStyleAlias(t *testing.T) {
	s := section.Section{
		ID:      "f",
		Type:    section.TypeFooter,
		Design:  map[string]any{"footerStyle": "ELECTRIC"},
		Content: map[string]any{"nomSite": "Acme", "lienGithub": "https://github.com/acme"},
	}
	out := string(variant.RenderSection(s))
	if !strings.Contains(out, "footer-electric") || !strings.Contains(out, "https://github.com/acme") {
		t.Fatalf("footer = %s", out)
	}
	if !strings.Contains(out, "© Acme") {
		t.Fatalf("default copyright missing: %s", out)
	}
}
