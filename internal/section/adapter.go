// internal/section/adapter.go
//
// Schema adapter: raw Section → Canonical.
//
/*
Context
--------
Two historical editors wrote section content under different keys.  The
older one used flat, type-specific names (`services`, `avantages`,
`trustPoints`, `temoignages`, `questions`, `projets`), the newer one a
generic `items`.  Normalize reads either and returns one typed view.

Workflow
--------
  1. Pick the alias chain for the section type and take the first key
     that holds a non-empty array.
  2. Map each raw item onto the canonical item, filling defaults.
  3. Copy design, effects, and textSettings, coercing nil to {}.
  4. Pick up `blocks`, `layout`, and `sizing` when present.
  5. Resolve the variant name from design.

Notes
-----
  • Normalize never fails and never panics.  Garbage reads as defaults.
  • It is a read-time view.  Nothing is written back to storage.
  • Normalize(Normalize(x).Section()) == Normalize(x).
*/
package section

import (
	"fmt"
	"strings"
	"time"
)

// Canonical is the single normalized representation renderers consume.
type Canonical struct {
	ID        string
	TenantID  string
	PageID    string
	Type      Type
	Name      string
	Order     float64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Variant is lower-cased and trimmed; "" means none selected.
	Variant string
	Content Content

	HasBlocks bool
	Blocks    []Block
	Layout    map[string]any
	Sizing    map[string]any

	Design       map[string]any
	Effects      map[string]any
	TextSettings map[string]any
}

// reserved keys live beside the typed content, not inside it.
var reserved = []string{"blocks", "layout", "sizing"}

// Normalize builds the canonical view of raw.
func Normalize(raw Section) Canonical {
	t := ParseType(string(raw.Type))
	content := raw.Content
	if content == nil {
		content = map[string]any{}
	}

	c := Canonical{
		ID:           raw.ID,
		TenantID:     raw.TenantID,
		PageID:       raw.PageID,
		Type:         t,
		Name:         raw.Name,
		Order:        raw.Order,
		Active:       raw.Active,
		CreatedAt:    raw.CreatedAt,
		UpdatedAt:    raw.UpdatedAt,
		Content:      parseContent(t, content),
		Design:       orEmpty(raw.Design),
		Effects:      orEmpty(raw.Effects),
		TextSettings: orEmpty(raw.TextSettings),
	}

	if list := asList(content["blocks"]); list != nil {
		c.HasBlocks = true
		c.Blocks = parseBlocks(list)
	}
	if m := asMap(content["layout"]); m != nil {
		c.Layout = CloneMap(m)
	}
	if m := asMap(content["sizing"]); m != nil {
		c.Sizing = CloneMap(m)
	}
	c.Variant = variantOf(t, c.Design)
	return c
}

// Section rebuilds a raw Section whose content uses canonical keys only.
func (c Canonical) Section() Section {
	return Section{
		ID:           c.ID,
		TenantID:     c.TenantID,
		PageID:       c.PageID,
		Type:         c.Type,
		Name:         c.Name,
		Order:        c.Order,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Content:      c.ContentMap(),
		Design:       CloneMap(c.Design),
		Effects:      CloneMap(c.Effects),
		TextSettings: CloneMap(c.TextSettings),
	}
}

// ContentMap is the canonical content plus blocks, layout, and sizing.
func (c Canonical) ContentMap() map[string]any {
	var m map[string]any
	if c.Content != nil {
		m = c.Content.Map()
	} else {
		m = map[string]any{}
	}
	if c.HasBlocks {
		blocks := make([]any, len(c.Blocks))
		for i, b := range c.Blocks {
			blocks[i] = b.Map()
		}
		m["blocks"] = blocks
	}
	if c.Layout != nil {
		m["layout"] = CloneMap(c.Layout)
	}
	if c.Sizing != nil {
		m["sizing"] = CloneMap(c.Sizing)
	}
	return m
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return CloneMap(m)
}

// variantOf reads design.variant, then the legacy header/footer style keys.
func variantOf(t Type, design map[string]any) string {
	v := str(design, "variant")
	if v == "" {
		switch t {
		case TypeHeader:
			v = str(design, "headerStyle")
		case TypeFooter:
			v = str(design, "footerStyle")
		}
	}
	return strings.ToLower(strings.TrimSpace(v))
}

/*──────────────────────────── per-type parsing ─────────────────────────────*/

func heading(m map[string]any, def string) Heading {
	return Heading{
		Titre:     strOr(m, def, "titre", "title"),
		SousTitre: str(m, "sousTitre", "subtitle", "description"),
	}
}

// items returns each aliased entry as a map; non-objects become {}.
func items(m map[string]any, aliases ...string) []map[string]any {
	list := firstList(m, aliases...)
	out := make([]map[string]any, len(list))
	for i, v := range list {
		if im := asMap(v); im != nil {
			out[i] = im
		} else {
			out[i] = map[string]any{}
		}
	}
	return out
}

func parseContent(t Type, m map[string]any) Content {
	switch t {
	case TypeHero:
		return parseHero(m)
	case TypeServices:
		return parseServices(m)
	case TypeAdvantages:
		return Advantages{
			Heading: heading(m, "Pourquoi nous choisir"),
			Items:   parseFeatures(items(m, "avantages", "items"), "star"),
		}
	case TypeTrust:
		return Trust{
			Heading: heading(m, "Pourquoi nous faire confiance"),
			Items:   parseFeatures(items(m, "trustPoints", "points", "items"), "shield"),
		}
	case TypeGallery:
		return parseGallery(m)
	case TypePortfolio:
		return parsePortfolio(m)
	case TypeTestimonials:
		return parseTestimonials(m)
	case TypeFAQ:
		return parseFAQ(m)
	case TypeContact:
		return parseContact(m)
	case TypeBlog:
		return parseBlog(m)
	case TypeInfiniteZoom:
		return parseZoom(m)
	case TypeHeader:
		return parseHeader(m)
	case TypeFooter:
		return parseFooter(m)
	case TypeCustom:
		c := Custom{HTML: str(m, "html")}
		if d := asMap(m["data"]); d != nil {
			c.Data = CloneMap(d)
		}
		return c
	default:
		raw := CloneMap(m)
		for _, k := range reserved {
			delete(raw, k)
		}
		return Unknown{Tag: t, Raw: raw}
	}
}

func parseCTA(v any, defText, defURL string) CTA {
	m := asMap(v)
	return CTA{
		Text: strOr(m, defText, "text", "texte"),
		URL:  strOr(m, defURL, "url"),
	}
}

func parseHero(m map[string]any) Hero {
	h := Hero{
		Heading:       heading(m, "Titre Principal"),
		Badge:         str(m, "badge", "badgeHero"),
		CTAPrincipal:  parseCTA(m["ctaPrincipal"], "Action", "#contact"),
		BackgroundURL: str(m, "backgroundUrl", "backgroundImageUrl"),
		VideoURL:      str(m, "videoUrl", "backgroundVideoUrl"),
	}
	if asMap(m["ctaSecondaire"]) != nil {
		cta := parseCTA(m["ctaSecondaire"], "", "")
		h.CTASecondaire = &cta
	}

	if stats := items(m, "trustStats"); len(stats) > 0 {
		for _, s := range stats {
			h.TrustStats = append(h.TrustStats, Stat{Value: str(s, "value"), Label: str(s, "label")})
		}
		return h
	}
	// V4 flat fields: trustStat1Value / trustStat1Label …
	for i := 1; i <= 3; i++ {
		v := str(m, fmt.Sprintf("trustStat%dValue", i))
		if v == "" {
			continue
		}
		h.TrustStats = append(h.TrustStats, Stat{Value: v, Label: str(m, fmt.Sprintf("trustStat%dLabel", i))})
	}
	return h
}

func parseServices(m map[string]any) Services {
	s := Services{Heading: heading(m, "Nos Services")}
	for _, it := range items(m, "services", "items") {
		s.Items = append(s.Items, ServiceItem{
			Titre:       str(it, "titre", "title", "name"),
			Description: str(it, "description"),
			Icone:       strOr(it, "settings", "icone", "icon"),
			Tagline:     str(it, "tagline"),
			PointsCles:  strList(it["pointsCles"]),
			Tarif:       str(it, "tarif", "price"),
		})
	}
	return s
}

func parseFeatures(list []map[string]any, defIcon string) []Feature {
	var out []Feature
	for _, it := range list {
		out = append(out, Feature{
			Titre:       str(it, "titre", "title"),
			Description: str(it, "description"),
			Icone:       strOr(it, defIcon, "icone", "icon"),
			Badge:       str(it, "badge"),
		})
	}
	return out
}

func parseGallery(m map[string]any) Gallery {
	g := Gallery{Heading: heading(m, "Galerie")}
	for i, it := range items(m, "items", "images") {
		g.Items = append(g.Items, GalleryItem{
			ID:       strOr(it, fmt.Sprintf("image-%d", i+1), "id"),
			Titre:    str(it, "titre", "title", "alt"),
			ImageURL: str(it, "imageUrl", "url", "image"),
			Type:     strOr(it, "Grille", "type"),
		})
	}
	return g
}

func parsePortfolio(m map[string]any) Portfolio {
	p := Portfolio{Heading: heading(m, "Nos Projets")}
	for i, it := range items(m, "projets", "items") {
		p.Items = append(p.Items, Project{
			Nom:               strOr(it, fmt.Sprintf("Projet %d", i+1), "nom", "titre", "title"),
			Slug:              strOr(it, fmt.Sprintf("projet-%d", i+1), "slug"),
			Tags:              strList(it["tags"]),
			DescriptionCourte: str(it, "descriptionCourte", "description"),
			ImageURL:          str(it, "imageUrl", "image"),
			LienSite:          str(it, "lienSite", "lien", "url"),
		})
	}
	return p
}

func parseTestimonials(m map[string]any) Testimonials {
	t := Testimonials{Heading: heading(m, "Témoignages")}
	for i, it := range items(m, "temoignages", "items") {
		note := intOr(it, 5, "note", "rating")
		if note < 1 {
			note = 1
		} else if note > 5 {
			note = 5
		}
		t.Items = append(t.Items, Testimonial{
			Nom:      strOr(it, fmt.Sprintf("Client %d", i+1), "nom", "auteur", "author"),
			Poste:    str(it, "poste", "role"),
			Message:  str(it, "message", "quote", "texte"),
			Note:     note,
			PhotoURL: str(it, "photoUrl", "photo"),
		})
	}
	return t
}

func parseFAQ(m map[string]any) FAQ {
	f := FAQ{Heading: heading(m, "Questions Fréquentes")}
	for _, it := range items(m, "questions", "items") {
		f.Items = append(f.Items, QA{
			Question: str(it, "question"),
			Reponse:  str(it, "reponse", "answer"),
		})
	}
	return f
}

func parseContact(m map[string]any) Contact {
	c := Contact{
		Heading:        heading(m, "Contactez-nous"),
		SubmitText:     strOr(m, "Envoyer", "submitText"),
		SuccessMessage: strOr(m, "Message envoyé avec succès !", "successMessage"),
	}
	for i, it := range items(m, "formFields", "fields", "items") {
		name := strOr(it, fmt.Sprintf("field-%d", i+1), "name")
		c.Fields = append(c.Fields, FormField{
			Name:     name,
			Type:     strOr(it, "text", "type"),
			Label:    strOr(it, name, "label"),
			Required: boolOr(it, false, "required"),
			Options:  strList(it["options"]),
		})
	}
	return c
}

func parseBlog(m map[string]any) Blog {
	b := Blog{
		Heading:        heading(m, "Blog"),
		PostsPerPage:   intOr(m, 6, "postsPerPage"),
		ShowCategories: boolOr(m, true, "showCategories"),
	}
	if b.PostsPerPage <= 0 {
		b.PostsPerPage = 6
	}
	return b
}

func parseZoom(m map[string]any) InfiniteZoom {
	z := InfiniteZoom{
		Heading:         heading(m, "Explorez"),
		InstructionText: strOr(m, "Scrollez pour explorer", "instructionText"),
	}
	for i, it := range items(m, "layers", "items") {
		z.Layers = append(z.Layers, ZoomLayer{
			ID:          strOr(it, fmt.Sprintf("layer-%d", i+1), "id"),
			ImageURL:    str(it, "imageUrl", "url"),
			Title:       str(it, "title", "titre"),
			Description: str(it, "description"),
			FocalPointX: numOr(it, 50, "focalPointX"),
			FocalPointY: numOr(it, 50, "focalPointY"),
		})
	}
	return z
}

func parseLinks(list []any) []Link {
	var out []Link
	for i, v := range list {
		it := asMap(v)
		l := Link{Label: str(it, "label", "name"), URL: str(it, "url", "href")}
		l.ID = str(it, "id")
		if l.ID == "" {
			l.ID = strings.Replace(l.URL, "#", "", 1)
		}
		if l.ID == "" {
			l.ID = strings.ToLower(l.Label)
		}
		if l.ID == "" {
			l.ID = fmt.Sprintf("link-%d", i+1)
		}
		out = append(out, l)
	}
	return out
}

func parseHeader(m map[string]any) Header {
	h := Header{
		SiteTitle: str(m, "headerSiteTitle", "siteTitle", "nomSite"),
		LogoURL:   str(m, "headerLogoUrl", "logoUrl"),
		CTA: CTA{
			Text: str(m, "headerCtaText", "ctaText"),
			URL:  str(m, "headerCtaUrl", "ctaUrl"),
		},
	}
	list := jsonList(m["headerMenuLinks"])
	if len(list) == 0 {
		list = firstList(m, "navItems", "links", "items")
	}
	h.Links = parseLinks(list)
	h.ShowCTA = boolOr(m, true, "showCta", "showHeaderCta") && h.CTA.Text != ""
	return h
}

func parseFooter(m map[string]any) Footer {
	f := Footer{
		SiteName:  str(m, "nomSite", "siteName"),
		Slogan:    str(m, "slogan"),
		Email:     str(m, "email"),
		Adresse:   str(m, "adresse", "address"),
		LogoURL:   str(m, "footerLogoUrl", "logoUrl"),
		Copyright: str(m, "copyrightTexte", "copyright"),
		PoweredBy: str(m, "footerPoweredByText", "poweredBy"),
		CTA: CTA{
			Text: str(m, "footerCtaText", "ctaText"),
			URL:  str(m, "footerCtaUrl", "ctaUrl"),
		},
		Links: parseLinks(firstList(m, "links", "items")),
	}
	social := asMap(m["social"])
	for _, net := range []string{"linkedin", "instagram", "github"} {
		legacy := "lien" + strings.ToUpper(net[:1]) + net[1:]
		if v := str(social, net); v != "" {
			setSocial(&f, net, v)
		} else if v := str(m, legacy); v != "" {
			setSocial(&f, net, v)
		}
	}
	return f
}

func setSocial(f *Footer, net, url string) {
	if f.Social == nil {
		f.Social = map[string]string{}
	}
	f.Social[net] = url
}

/*──────────────────────────── blocks ───────────────────────────────────────*/

var blockKeys = map[string]bool{"id": true, "type": true, "order": true, "content": true, "style": true, "link": true}

func parseBlocks(list []any) []Block {
	out := make([]Block, 0, len(list))
	for i, v := range list {
		m := asMap(v)
		b := Block{
			ID:    strOr(m, fmt.Sprintf("block-%d", i+1), "id"),
			Type:  str(m, "type"),
			Order: numOr(m, float64(i), "order"),
		}
		if c := asMap(m["content"]); c != nil {
			b.Content = CloneMap(c)
		}
		if s := asMap(m["style"]); s != nil {
			b.Style = CloneMap(s)
		}
		if l := asMap(m["link"]); l != nil {
			b.Link = CloneMap(l)
		}
		for k, x := range m {
			if blockKeys[k] {
				continue
			}
			if b.Extra == nil {
				b.Extra = map[string]any{}
			}
			b.Extra[k] = cloneValue(x)
		}
		out = append(out, b)
	}
	return out
}
