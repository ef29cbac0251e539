// internal/head/builder.go
//
// The Builder collects everything that goes inside a shell page's <head>:
// the title, meta tags, stylesheets, scripts, and JSON-LD.  It is scoped
// to one render.  Handlers push into it and the view layout emits it with
// a single {{ .Head.HTML }}.
//
// Features
// --------
//   - SetTitle          – single <title> (last call wins).
//   - Meta, Property    – name= and property= meta tags, escaped.
//   - Stylesheet, Script – deduplicated by URL.
//   - JSONLD            – any value marshalled into ld+json.
package head

import (
	"encoding/json"
	"html/template"
	"strings"
	"sync"
)

// Builder is safe for concurrent use.
type Builder struct {
	mu      sync.Mutex
	title   string
	tags    []string
	scripts []string
	seen    map[string]struct{}
}

func New() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// SetTitle overrides the page <title>.  The last caller wins.
func (b *Builder) SetTitle(t string) {
	b.mu.Lock()
	b.title = t
	b.mu.Unlock()
}

// Meta adds <meta name=… content=…>.  Empty content is skipped.
func (b *Builder) Meta(name, content string) {
	if content == "" {
		return
	}
	b.add(&b.tags, "meta:"+name, `<meta name="`+esc(name)+`" content="`+esc(content)+`">`)
}

// Property adds an Open Graph style <meta property=… content=…>.
func (b *Builder) Property(prop, content string) {
	if content == "" {
		return
	}
	b.add(&b.tags, "prop:"+prop, `<meta property="`+esc(prop)+`" content="`+esc(content)+`">`)
}

func (b *Builder) Stylesheet(href string) {
	b.add(&b.tags, "css:"+href, `<link rel="stylesheet" href="`+esc(href)+`">`)
}

// Script adds a deferred external script.
func (b *Builder) Script(src string) {
	b.add(&b.scripts, "js:"+src, `<script defer src="`+esc(src)+`"></script>`)
}

// JSONLD marshals v into a structured-data block.  Values that fail to
// marshal are dropped.
func (b *Builder) JSONLD(v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	// json.Marshal escapes <, >, and & so the payload cannot close the tag.
	b.add(&b.scripts, "ld:"+string(raw), `<script type="application/ld+json">`+string(raw)+`</script>`)
}

func (b *Builder) add(tgt *[]string, key, tag string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, dup := b.seen[key]; dup {
		return
	}
	b.seen[key] = struct{}{}
	*tgt = append(*tgt, tag)
}

// HTML returns the whole head body: charset, viewport, title, tags, then
// scripts.
func (b *Builder) HTML() template.HTML {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	sb.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
	if b.title != "" {
		sb.WriteString("<title>" + esc(b.title) + "</title>")
	}
	for _, t := range b.tags {
		sb.WriteString(t)
	}
	for _, s := range b.scripts {
		sb.WriteString(s)
	}
	return template.HTML(sb.String())
}

func esc(s string) string { return template.HTMLEscapeString(s) }
