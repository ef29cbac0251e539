package variant

import (
	"errors"
	"html/template"
	"strings"
	"testing"

	"github.com/yanizio/sitekit/internal/section"
)

type stub struct {
	id  string
	err error
}

func (s stub) ID() string { return s.id }
func (s stub) Render(*section.Canonical) (template.HTML, error) {
	if s.err != nil {
		return "", s.err
	}
	return template.HTML("<p>" + s.id + "</p>"), nil
}

func canon(s section.Section) *section.Canonical {
	c := section.Normalize(s)
	return &c
}

func TestResolve_RegisteredVariant(t *testing.T) {
	Register(section.TypeHero, "zz-test", stub{id: "hero-zz"})

	s := section.Section{ID: "h", Type: section.TypeHero, Design: map[string]any{"variant": "ZZ-Test"}}
	if got := Resolve(canon(s)).ID(); got != "hero-zz" {
		t.Fatalf("renderer = %s, want hero-zz", got)
	}
}

func TestResolve_Tiers(t *testing.T) {
	cases := []struct {
		name string
		in   section.Section
		want string
	}{
		{"unregistered variant", section.Section{Type: section.TypeFAQ, Design: map[string]any{"variant": "nope"}}, "passthrough"},
		{"blocks win over content", section.Section{Type: section.TypeServices, Content: map[string]any{"blocks": []any{}}}, "blocks"},
		{"empty gallery", section.Section{Type: section.TypeGallery}, "empty"},
		{"unknown type with data", section.Section{Type: "quiz", Content: map[string]any{"q": "1"}}, "passthrough"},
		{"unknown type empty", section.Section{Type: "quiz"}, "empty"},
	}
	for _, tc := range cases {
		if got := Resolve(canon(tc.in)).ID(); got != tc.want {
			t.Errorf("%s: renderer = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestResolve_NeverNil(t *testing.T) {
	types := append(append([]section.Type{}, section.Types...), "quiz", "")
	variants := []string{"", "minimal", "grid", "electric", "garbage"}
	for _, typ := range types {
		for _, v := range variants {
			c := canon(section.Section{Type: typ, Design: map[string]any{"variant": v}})
			if Resolve(c) == nil {
				t.Fatalf("Resolve(%s,%s) = nil", typ, v)
			}
			if out := Render(c); !strings.HasPrefix(string(out), "<section ") {
				t.Fatalf("Render(%s,%s) = %s", typ, v, out)
			}
		}
	}
}

func TestRender_LegacyServicesPassThrough(t *testing.T) {
	s := section.Section{ID: "svc", Type: section.TypeServices, Active: true,
		Content: map[string]any{"services": []any{map[string]any{"titre": "A", "description": "d"}}}}
	out := string(RenderSection(s))

	for _, want := range []string{`data-renderer="passthrough"`, `data-section-id="svc"`, "<dd>A</dd>", "<dd>d</dd>", "<dd>settings</dd>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}

func TestRender_EmptyGalleryMessage(t *testing.T) {
	out := string(RenderSection(section.Section{ID: "g", Type: section.TypeGallery}))
	if !strings.Contains(out, "Aucune image dans la galerie") {
		t.Fatalf("empty gallery = %s", out)
	}
}

func TestRender_ErrorBecomesPlaceholder(t *testing.T) {
	Register(section.Type("test-kind"), "broken", stub{id: "broken", err: errors.New("boom")})
	out := string(RenderSection(section.Section{ID: "x", Type: "test-kind", Design: map[string]any{"variant": "broken"}}))
	if !strings.Contains(out, `class="section-error"`) || !strings.Contains(out, `data-renderer="broken"`) {
		t.Fatalf("error output = %s", out)
	}
}

func TestRenderPage_OrderAndInactive(t *testing.T) {
	list := []section.Section{
		{ID: "foot", Type: section.TypeFooter, Active: true},
		{ID: "b2", Type: section.TypeFAQ, Order: 2, Active: true},
		{ID: "off", Type: section.TypeFAQ, Order: 1, Active: false},
		{ID: "b1", Type: section.TypeFAQ, Order: 1, Active: true},
		{ID: "head", Type: section.TypeHeader, Order: 5, Active: true},
	}
	out := string(RenderPage(list))
	if strings.Contains(out, `data-section-id="off"`) {
		t.Fatalf("inactive section rendered")
	}
	order := []string{"head", "b1", "b2", "foot"}
	last := -1
	for _, id := range order {
		i := strings.Index(out, `data-section-id="`+id+`"`)
		if i < 0 || i < last {
			t.Fatalf("section %s out of order in %s", id, out)
		}
		last = i
	}
}

func TestKeys_Sorted(t *testing.T) {
	Register(section.Type("test-kind"), "a", stub{id: "a"})
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		p, k := keys[i-1], keys[i]
		if p.Type > k.Type || (p.Type == k.Type && p.Variant > k.Variant) {
			t.Fatalf("keys not sorted: %v before %v", p, k)
		}
	}
}
