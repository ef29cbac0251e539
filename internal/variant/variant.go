// internal/variant/variant.go
//
// Variant dispatcher: (section type, variant name) → Renderer.
//
/*
Context
--------
Sections pick a look through design.variant.  Catalog packages under
components/ register one Renderer per (type, variant) from init().
Stored data can name a variant nobody registered, or carry no variant at
all, so Resolve walks four tiers and always returns something:

  1. the registered (type, variant) renderer;
  2. the generic block renderer when the content carries `blocks`;
  3. the empty placeholder when the typed content has nothing to show;
  4. the pass-through renderer, a plain dump of the canonical content.

Notes
-----
  • Resolve is pure: same input, same renderer.  It never returns nil.
  • Render never fails.  Renderer errors become an inert placeholder.
*/
package variant

import (
	"bytes"
	"html/template"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/metrics"
	"github.com/yanizio/sitekit/internal/section"
)

// Renderer draws one canonical section.  Implementations MUST be safe for
// concurrent use.
type Renderer interface {
	ID() string
	Render(c *section.Canonical) (template.HTML, error)
}

// Key identifies a registered variant.
type Key struct {
	Type    section.Type
	Variant string
}

func (k Key) String() string { return string(k.Type) + "/" + k.Variant }

var (
	mu       sync.RWMutex
	registry = map[Key]Renderer{}
)

// Register is called from catalog init() functions.  A later call for
// the same key replaces the earlier renderer.
func Register(t section.Type, variant string, r Renderer) {
	mu.Lock()
	registry[Key{Type: t, Variant: variant}] = r
	mu.Unlock()
}

// Lookup returns the registered renderer or nil.
func Lookup(t section.Type, variant string) Renderer {
	mu.RLock()
	defer mu.RUnlock()
	return registry[Key{Type: t, Variant: variant}]
}

// Keys lists every registered key, sorted by type then variant.
func Keys() []Key {
	mu.RLock()
	out := make([]Key, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Variant < out[j].Variant
	})
	return out
}

// Resolve picks the renderer for c.
func Resolve(c *section.Canonical) Renderer {
	if c.Variant != "" {
		if r := Lookup(c.Type, c.Variant); r != nil {
			return r
		}
	}
	switch {
	case c.HasBlocks:
		return blocksRenderer
	case c.Content == nil || c.Content.Empty():
		return emptyRenderer
	default:
		return passThroughRenderer
	}
}

// Render resolves and runs the renderer for c and wraps the result in the
// section element the preview frame targets for focus and scroll.
func Render(c *section.Canonical) template.HTML {
	r := Resolve(c)
	if f, ok := r.(fallback); ok {
		metrics.RenderFallback.WithLabelValues(f.ID()).Inc()
	}
	body, err := r.Render(c)
	if err != nil {
		zap.S().Warnw("section render failed",
			"section", c.ID, "type", c.Type, "renderer", r.ID(), "err", err)
		metrics.RenderFallback.WithLabelValues("error").Inc()
		body = template.HTML(`<div class="section-error" data-error="render"></div>`)
	}
	return wrap(c, r.ID(), body)
}

// RenderSection normalizes raw and renders it.
func RenderSection(raw section.Section) template.HTML {
	c := section.Normalize(raw)
	return Render(&c)
}

// RenderPage renders sections in display order, skipping inactive ones.
func RenderPage(list []section.Section) template.HTML {
	var buf bytes.Buffer
	for _, s := range section.DisplayOrder(list) {
		if !s.Active {
			continue
		}
		buf.WriteString(string(RenderSection(s)))
		buf.WriteByte('\n')
	}
	return template.HTML(buf.String())
}

func wrap(c *section.Canonical, rid string, body template.HTML) template.HTML {
	esc := template.HTMLEscapeString
	return template.HTML(`<section id="section-` + esc(c.ID) +
		`" data-section-id="` + esc(c.ID) +
		`" data-section-type="` + esc(string(c.Type)) +
		`" data-zone="` + string(section.ZoneOf(c.Type)) +
		`" data-renderer="` + esc(rid) + `">` + string(body) + `</section>`)
}
