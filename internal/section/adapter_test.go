// internal/section/adapter_test.go
//
// Unit-tests for Normalize.
//
// Context
// -------
// The adapter is the only thing standing between untrusted stored JSON and
// the renderers, so these tests pin down three behaviours:
//
//   • Normalizing twice equals normalizing once.
//   • Legacy alias keys and `items` produce identical output.
//   • Garbage input degrades to defaults instead of failing.
//
// Run: go test ./internal/section -v

package section

import (
	"encoding/json"
	"reflect"
	"testing"
)

// decode mimics what the stores hand us: JSON-decoded maps.
func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func raw(typ Type, content map[string]any) Section {
	return Section{ID: "s1", TenantID: "t1", PageID: "p1", Type: typ, Active: true, Content: content}
}

func TestNormalize_LegacyServices(t *testing.T) {
	s := raw(TypeServices, decode(t, `{"services":[{"titre":"A","description":"d"}]}`))

	c := Normalize(s)
	if c.Variant != "" {
		t.Fatalf("variant = %q, want empty", c.Variant)
	}
	if c.HasBlocks {
		t.Fatalf("legacy content must not report blocks")
	}

	items, _ := c.ContentMap()["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %#v, want one entry", items)
	}
	want := map[string]any{"titre": "A", "description": "d", "icone": "settings"}
	if !reflect.DeepEqual(items[0], want) {
		t.Fatalf("items[0] = %#v, want %#v", items[0], want)
	}
	if got := c.Content.(Services).Titre; got != "Nos Services" {
		t.Fatalf("default title = %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	fixtures := []Section{
		raw(TypeServices, decode(t, `{"services":[{"titre":"A","pointsCles":["x",3],"tarif":120}]}`)),
		raw(TypeAdvantages, decode(t, `{"avantages":[{"titre":"Fast","badge":"new"}, 4]}`)),
		raw(TypeGallery, decode(t, `{"items":[]}`)),
		raw(TypeGallery, decode(t, `{"images":[{"url":"/a.jpg"}]}`)),
		raw(TypePortfolio, decode(t, `{"projets":[{"titre":"Site","tags":["go"],"lien":"https://x"}]}`)),
		raw(TypeTestimonials, decode(t, `{"temoignages":[{"auteur":"Ana","note":9},{"note":"3"}]}`)),
		raw(TypeTrust, decode(t, `{"points":[{"titre":"Certified"}]}`)),
		raw(TypeFAQ, decode(t, `{"questions":[{"question":"Q","answer":"A"}]}`)),
		raw(TypeContact, decode(t, `{"formFields":[{"name":"email","type":"email","required":"true"},{}]}`)),
		raw(TypeBlog, decode(t, `{"postsPerPage":-2,"showCategories":false}`)),
		raw(TypeInfiniteZoom, decode(t, `{"layers":[{"imageUrl":"/l.png","focalPointX":"20"}]}`)),
		raw(TypeHero, decode(t, `{"badgeHero":"Top","trustStat1Value":"10","trustStat1Label":"ans","ctaSecondaire":{"texte":"Voir"}}`)),
		raw(TypeHeader, decode(t, `{"headerMenuLinks":"[{\"label\":\"Accueil\",\"url\":\"#home\"}]","headerCtaText":"Go"}`)),
		raw(TypeFooter, decode(t, `{"nomSite":"Acme","lienGithub":"https://gh","links":[{"name":"CGV","href":"/cgv"}]}`)),
		raw(TypeCustom, decode(t, `{"html":"<b>x</b>","data":{"k":[1,2]}}`)),
		raw(Type("pricing-table"), decode(t, `{"plans":[{"name":"pro"}],"blocks":[]}`)),
		raw(TypeServices, decode(t, `{"blocks":[{"type":"heading","content":{"text":"Hi"},"animation":{"type":"fade-up"}},"junk"],"layout":{"cols":2}}`)),
		{ID: "nil-everything", Type: TypeFAQ},
	}
	for _, in := range fixtures {
		once := Normalize(in)
		twice := Normalize(once.Section())
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("%s not idempotent:\n once  %#v\n twice %#v", in.Type, once, twice)
		}
	}
}

func TestNormalize_AliasEquivalence(t *testing.T) {
	pairs := []struct {
		typ          Type
		legacy, next string
	}{
		{TypeAdvantages, `{"avantages":[{"titre":"A","icone":"zap"}]}`, `{"items":[{"titre":"A","icone":"zap"}]}`},
		{TypeServices, `{"services":[{"titre":"S"}]}`, `{"items":[{"titre":"S"}]}`},
		{TypeTrust, `{"trustPoints":[{"titre":"T"}]}`, `{"items":[{"titre":"T"}]}`},
		{TypeTestimonials, `{"temoignages":[{"nom":"N"}]}`, `{"items":[{"nom":"N"}]}`},
		{TypeFAQ, `{"questions":[{"question":"Q"}]}`, `{"items":[{"question":"Q"}]}`},
		{TypePortfolio, `{"projets":[{"nom":"P"}]}`, `{"items":[{"nom":"P"}]}`},
	}
	for _, p := range pairs {
		a := Normalize(raw(p.typ, decode(t, p.legacy)))
		b := Normalize(raw(p.typ, decode(t, p.next)))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: alias and items differ:\n%#v\n%#v", p.typ, a.Content, b.Content)
		}
	}
}

func TestNormalize_AliasPriority(t *testing.T) {
	// An empty legacy list must not shadow a populated items list.
	c := Normalize(raw(TypeAdvantages, decode(t, `{"avantages":[],"items":[{"titre":"kept"}]}`)))
	adv := c.Content.(Advantages)
	if len(adv.Items) != 1 || adv.Items[0].Titre != "kept" {
		t.Fatalf("items = %#v", adv.Items)
	}
	if adv.Items[0].Icone != "star" {
		t.Fatalf("default icon = %q, want star", adv.Items[0].Icone)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	c := Normalize(raw(TypeTestimonials, decode(t, `{"items":[{"message":"ok"}]}`)))
	it := c.Content.(Testimonials).Items[0]
	if it.Note != 5 || it.Nom != "Client 1" {
		t.Fatalf("defaults not applied: %#v", it)
	}

	c = Normalize(raw(TypeContact, nil))
	ct := c.Content.(Contact)
	if ct.SubmitText != "Envoyer" || ct.SuccessMessage != "Message envoyé avec succès !" {
		t.Fatalf("contact defaults: %#v", ct)
	}

	c = Normalize(raw(TypeHero, nil))
	h := c.Content.(Hero)
	if h.Titre != "Titre Principal" || h.CTAPrincipal != (CTA{Text: "Action", URL: "#contact"}) {
		t.Fatalf("hero defaults: %#v", h)
	}
	if c.Design == nil || c.Effects == nil || c.TextSettings == nil {
		t.Fatalf("nil payloads must be coerced to {}")
	}
}

func TestNormalize_HeroLegacyStats(t *testing.T) {
	c := Normalize(raw(TypeHero, decode(t,
		`{"trustStat1Value":"98%","trustStat1Label":"satisfaits","trustStat3Value":"24/7"}`)))
	stats := c.Content.(Hero).TrustStats
	want := []Stat{{"98%", "satisfaits"}, {"24/7", ""}}
	if !reflect.DeepEqual(stats, want) {
		t.Fatalf("stats = %#v, want %#v", stats, want)
	}
}

func TestNormalize_Variant(t *testing.T) {
	cases := []struct {
		typ    Type
		design string
		want   string
	}{
		{TypeHero, `{"variant":" Electric "}`, "electric"},
		{TypeHeader, `{"headerStyle":"electric"}`, "electric"},
		{TypeFooter, `{"footerStyle":"Mega"}`, "mega"},
		{TypeHero, `{"headerStyle":"electric"}`, ""},
		{TypeFooter, `{"variant":"bold","footerStyle":"mega"}`, "bold"},
	}
	for _, tc := range cases {
		s := raw(tc.typ, nil)
		s.Design = decode(t, tc.design)
		if got := Normalize(s).Variant; got != tc.want {
			t.Errorf("%s %s: variant = %q, want %q", tc.typ, tc.design, got, tc.want)
		}
	}
}

func TestNormalize_TypeFolding(t *testing.T) {
	c := Normalize(Section{Type: "INFINITE_ZOOM"})
	if c.Type != TypeInfiniteZoom {
		t.Fatalf("type = %q", c.Type)
	}
	if _, ok := c.Content.(InfiniteZoom); !ok {
		t.Fatalf("content = %T, want InfiniteZoom", c.Content)
	}
}

func TestNormalize_UnknownTypeKeepsContent(t *testing.T) {
	c := Normalize(raw(Type("quiz"), decode(t, `{"q":"2+2"}`)))
	u, ok := c.Content.(Unknown)
	if !ok {
		t.Fatalf("content = %T, want Unknown", c.Content)
	}
	if u.Kind() != "quiz" || u.Raw["q"] != "2+2" {
		t.Fatalf("unknown = %#v", u)
	}
}

func TestNormalize_DoesNotAliasInput(t *testing.T) {
	in := raw(TypeCustom, decode(t, `{"data":{"k":"v"}}`))
	in.Design = map[string]any{"variant": "x"}
	c := Normalize(in)

	c.Design["variant"] = "changed"
	c.Content.(Custom).Data["k"] = "changed"

	if in.Design["variant"] != "x" || in.Content["data"].(map[string]any)["k"] != "v" {
		t.Fatalf("Normalize leaked references into its input")
	}
}
