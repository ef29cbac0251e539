// internal/section/content.go
//
// Canonical content shapes.
//
// Context
// -------
// Content is a tagged union: Kind() is the discriminant and each concrete
// struct is the matching payload.  The interface is sealed (isContent) so
// a type switch over Content is exhaustive within this package's list.
//
// Every shape can render itself back to a plain map (Map) using only the
// canonical key names.  Feeding that map back through Normalize yields
// the same value, which is what makes the adapter idempotent.
//
// Notes
// -----
//   • Item lists always live under "items" in canonical form.
//   • Optional item fields are omitted from Map when empty.
package section

import "fmt"

// Content is implemented by every canonical payload.
type Content interface {
	Kind() Type
	Map() map[string]any
	// Empty reports that there is nothing meaningful to display.
	Empty() bool
	isContent()
}

/*──────────────────────────── shared pieces ────────────────────────────────*/

// CTA is a call-to-action link.
type CTA struct {
	Text string
	URL  string
}

func (c CTA) toMap() map[string]any { return map[string]any{"text": c.Text, "url": c.URL} }

// Stat is one value/label pair.
type Stat struct {
	Value string
	Label string
}

// Link is one navigation entry.
type Link struct {
	ID    string
	Label string
	URL   string
}

func linksMap(ls []Link) []any {
	out := make([]any, len(ls))
	for i, l := range ls {
		out[i] = map[string]any{"id": l.ID, "label": l.Label, "url": l.URL}
	}
	return out
}

// Heading is the title pair most section types carry.
type Heading struct {
	Titre     string
	SousTitre string
}

func (h Heading) put(m map[string]any) {
	m["titre"] = h.Titre
	m["sousTitre"] = h.SousTitre
}

/*──────────────────────────── hero ─────────────────────────────────────────*/

type Hero struct {
	Heading
	Badge         string
	CTAPrincipal  CTA
	CTASecondaire *CTA
	TrustStats    []Stat
	BackgroundURL string
	VideoURL      string
}

func (Hero) Kind() Type { return TypeHero }
func (Hero) Empty() bool { return false }
func (Hero) isContent() {}
func (h Hero) Map() map[string]any {
	m := map[string]any{}
	h.Heading.put(m)
	m["badge"] = h.Badge
	m["ctaPrincipal"] = h.CTAPrincipal.toMap()
	if h.CTASecondaire != nil {
		m["ctaSecondaire"] = h.CTASecondaire.toMap()
	}
	stats := make([]any, len(h.TrustStats))
	for i, s := range h.TrustStats {
		stats[i] = map[string]any{"value": s.Value, "label": s.Label}
	}
	m["trustStats"] = stats
	m["backgroundUrl"] = h.BackgroundURL
	m["videoUrl"] = h.VideoURL
	return m
}

/*──────────────────────────── list sections ────────────────────────────────*/

type ServiceItem struct {
	Titre       string
	Description string
	Icone       string
	Tagline     string
	PointsCles  []string
	Tarif       string
}

type Services struct {
	Heading
	Items []ServiceItem
}

func (Services) Kind() Type { return TypeServices }
func (Services) Empty() bool { return false }
func (Services) isContent() {}
func (s Services) Map() map[string]any {
	m := map[string]any{}
	s.Heading.put(m)
	items := make([]any, len(s.Items))
	for i, it := range s.Items {
		im := map[string]any{"titre": it.Titre, "description": it.Description, "icone": it.Icone}
		putIf(im, "tagline", it.Tagline)
		if len(it.PointsCles) > 0 {
			im["pointsCles"] = anyList(it.PointsCles)
		}
		putIf(im, "tarif", it.Tarif)
		items[i] = im
	}
	m["items"] = items
	return m
}

// Feature is the item shape shared by advantages and trust.
type Feature struct {
	Titre       string
	Description string
	Icone       string
	Badge       string
}

func featuresMap(fs []Feature) []any {
	out := make([]any, len(fs))
	for i, f := range fs {
		im := map[string]any{"titre": f.Titre, "description": f.Description, "icone": f.Icone}
		putIf(im, "badge", f.Badge)
		out[i] = im
	}
	return out
}

type Advantages struct {
	Heading
	Items []Feature
}

func (Advantages) Kind() Type { return TypeAdvantages }
func (Advantages) Empty() bool { return false }
func (Advantages) isContent() {}
func (a Advantages) Map() map[string]any {
	m := map[string]any{}
	a.Heading.put(m)
	m["items"] = featuresMap(a.Items)
	return m
}

type Trust struct {
	Heading
	Items []Feature
}

func (Trust) Kind() Type { return TypeTrust }
func (Trust) Empty() bool { return false }
func (Trust) isContent() {}
func (t Trust) Map() map[string]any {
	m := map[string]any{}
	t.Heading.put(m)
	m["items"] = featuresMap(t.Items)
	return m
}

type GalleryItem struct {
	ID       string
	Titre    string
	ImageURL string
	Type     string
}

type Gallery struct {
	Heading
	Items []GalleryItem
}

func (Gallery) Kind() Type { return TypeGallery }
func (g Gallery) Empty() bool { return len(g.Items) == 0 }
func (Gallery) isContent() {}
func (g Gallery) Map() map[string]any {
	m := map[string]any{}
	g.Heading.put(m)
	items := make([]any, len(g.Items))
	for i, it := range g.Items {
		items[i] = map[string]any{"id": it.ID, "titre": it.Titre, "imageUrl": it.ImageURL, "type": it.Type}
	}
	m["items"] = items
	return m
}

type Project struct {
	Nom               string
	Slug              string
	Tags              []string
	DescriptionCourte string
	ImageURL          string
	LienSite          string
}

type Portfolio struct {
	Heading
	Items []Project
}

func (Portfolio) Kind() Type { return TypePortfolio }
func (Portfolio) Empty() bool { return false }
func (Portfolio) isContent() {}
func (p Portfolio) Map() map[string]any {
	m := map[string]any{}
	p.Heading.put(m)
	items := make([]any, len(p.Items))
	for i, it := range p.Items {
		im := map[string]any{
			"nom":               it.Nom,
			"slug":              it.Slug,
			"descriptionCourte": it.DescriptionCourte,
			"imageUrl":          it.ImageURL,
		}
		if len(it.Tags) > 0 {
			im["tags"] = anyList(it.Tags)
		}
		putIf(im, "lienSite", it.LienSite)
		items[i] = im
	}
	m["items"] = items
	return m
}

type Testimonial struct {
	Nom      string
	Poste    string
	Message  string
	Note     int
	PhotoURL string
}

type Testimonials struct {
	Heading
	Items []Testimonial
}

func (Testimonials) Kind() Type { return TypeTestimonials }
func (Testimonials) Empty() bool { return false }
func (Testimonials) isContent() {}
func (t Testimonials) Map() map[string]any {
	m := map[string]any{}
	t.Heading.put(m)
	items := make([]any, len(t.Items))
	for i, it := range t.Items {
		im := map[string]any{"nom": it.Nom, "poste": it.Poste, "message": it.Message, "note": it.Note}
		putIf(im, "photoUrl", it.PhotoURL)
		items[i] = im
	}
	m["items"] = items
	return m
}

type QA struct {
	Question string
	Reponse  string
}

type FAQ struct {
	Heading
	Items []QA
}

func (FAQ) Kind() Type { return TypeFAQ }
func (FAQ) Empty() bool { return false }
func (FAQ) isContent() {}
func (f FAQ) Map() map[string]any {
	m := map[string]any{}
	f.Heading.put(m)
	items := make([]any, len(f.Items))
	for i, it := range f.Items {
		items[i] = map[string]any{"question": it.Question, "reponse": it.Reponse}
	}
	m["items"] = items
	return m
}

/*──────────────────────────── forms, blog, zoom ────────────────────────────*/

type FormField struct {
	Name     string
	Type     string
	Label    string
	Required bool
	Options  []string
}

type Contact struct {
	Heading
	Fields         []FormField
	SubmitText     string
	SuccessMessage string
}

func (Contact) Kind() Type { return TypeContact }
func (Contact) Empty() bool { return false }
func (Contact) isContent() {}
func (c Contact) Map() map[string]any {
	m := map[string]any{}
	c.Heading.put(m)
	fields := make([]any, len(c.Fields))
	for i, f := range c.Fields {
		fm := map[string]any{"name": f.Name, "type": f.Type, "label": f.Label, "required": f.Required}
		if len(f.Options) > 0 {
			fm["options"] = anyList(f.Options)
		}
		fields[i] = fm
	}
	m["items"] = fields
	m["submitText"] = c.SubmitText
	m["successMessage"] = c.SuccessMessage
	return m
}

type Blog struct {
	Heading
	PostsPerPage   int
	ShowCategories bool
}

func (Blog) Kind() Type { return TypeBlog }
func (Blog) Empty() bool { return false }
func (Blog) isContent() {}
func (b Blog) Map() map[string]any {
	m := map[string]any{}
	b.Heading.put(m)
	m["postsPerPage"] = b.PostsPerPage
	m["showCategories"] = b.ShowCategories
	return m
}

type ZoomLayer struct {
	ID          string
	ImageURL    string
	Title       string
	Description string
	FocalPointX float64
	FocalPointY float64
}

type InfiniteZoom struct {
	Heading
	InstructionText string
	Layers          []ZoomLayer
}

func (InfiniteZoom) Kind() Type { return TypeInfiniteZoom }
func (z InfiniteZoom) Empty() bool { return len(z.Layers) == 0 }
func (InfiniteZoom) isContent() {}
func (z InfiniteZoom) Map() map[string]any {
	m := map[string]any{}
	z.Heading.put(m)
	m["instructionText"] = z.InstructionText
	layers := make([]any, len(z.Layers))
	for i, l := range z.Layers {
		layers[i] = map[string]any{
			"id":          l.ID,
			"imageUrl":    l.ImageURL,
			"title":       l.Title,
			"description": l.Description,
			"focalPointX": l.FocalPointX,
			"focalPointY": l.FocalPointY,
		}
	}
	m["items"] = layers
	return m
}

/*──────────────────────────── chrome ───────────────────────────────────────*/

type Header struct {
	SiteTitle string
	LogoURL   string
	Links     []Link
	CTA       CTA
	ShowCTA   bool
}

func (Header) Kind() Type { return TypeHeader }
func (Header) Empty() bool { return false }
func (Header) isContent() {}
func (h Header) Map() map[string]any {
	return map[string]any{
		"siteTitle": h.SiteTitle,
		"logoUrl":   h.LogoURL,
		"items":     linksMap(h.Links),
		"ctaText":   h.CTA.Text,
		"ctaUrl":    h.CTA.URL,
		"showCta":   h.ShowCTA,
	}
}

type Footer struct {
	SiteName  string
	Slogan    string
	Email     string
	Adresse   string
	LogoURL   string
	Copyright string
	PoweredBy string
	CTA       CTA
	Links     []Link
	Social    map[string]string
}

func (Footer) Kind() Type { return TypeFooter }
func (Footer) Empty() bool { return false }
func (Footer) isContent() {}
func (f Footer) Map() map[string]any {
	m := map[string]any{
		"siteName":  f.SiteName,
		"slogan":    f.Slogan,
		"email":     f.Email,
		"adresse":   f.Adresse,
		"logoUrl":   f.LogoURL,
		"copyright": f.Copyright,
		"poweredBy": f.PoweredBy,
		"ctaText":   f.CTA.Text,
		"ctaUrl":    f.CTA.URL,
		"items":     linksMap(f.Links),
	}
	if len(f.Social) > 0 {
		s := make(map[string]any, len(f.Social))
		for k, v := range f.Social {
			s[k] = v
		}
		m["social"] = s
	}
	return m
}

/*──────────────────────────── escape hatches ───────────────────────────────*/

type Custom struct {
	HTML string
	Data map[string]any
}

func (Custom) Kind() Type { return TypeCustom }
func (c Custom) Empty() bool { return c.HTML == "" && len(c.Data) == 0 }
func (Custom) isContent() {}
func (c Custom) Map() map[string]any {
	m := map[string]any{"html": c.HTML}
	if c.Data != nil {
		m["data"] = CloneMap(c.Data)
	}
	return m
}

// Unknown carries content for a type outside the closed set.  Tag keeps
// the stored type so dispatch can still key on it.
type Unknown struct {
	Tag Type
	Raw map[string]any
}

func (u Unknown) Kind() Type { return u.Tag }
func (u Unknown) Empty() bool { return len(u.Raw) == 0 }
func (Unknown) isContent() {}
func (u Unknown) Map() map[string]any {
	if u.Raw == nil {
		return map[string]any{}
	}
	return CloneMap(u.Raw)
}

/*──────────────────────────── blocks ───────────────────────────────────────*/

// Block is one atomic unit inside a generic section's block list.
type Block struct {
	ID      string
	Type    string
	Order   float64
	Content map[string]any
	Style   map[string]any
	Link    map[string]any
	// Extra keeps keys such as animation or positioning verbatim.
	Extra map[string]any
}

// Map renders the block back to its stored form.
func (b Block) Map() map[string]any {
	m := make(map[string]any, 6+len(b.Extra))
	for k, v := range b.Extra {
		m[k] = cloneValue(v)
	}
	m["id"] = b.ID
	m["type"] = b.Type
	m["order"] = b.Order
	if b.Content != nil {
		m["content"] = CloneMap(b.Content)
	}
	if b.Style != nil {
		m["style"] = CloneMap(b.Style)
	}
	if b.Link != nil {
		m["link"] = CloneMap(b.Link)
	}
	return m
}

// String is used in placeholder markup and logs.
func (b Block) String() string { return fmt.Sprintf("%s#%s", b.Type, b.ID) }
