// internal/block/registry.go
//
// Block registry and lookup helpers.
//
// A **Block** is the atomic unit inside a generic section's `blocks`
// array: a heading, an image, a pricing table, and so on.  Each block
// type has one Renderer, registered from an init() func with
// `block.Register(r)`.  The key is the stored `type` string and must be
// returned by the renderer's Type method.
//
// Section renderers never look renderers up themselves.  They call
// RenderAll with the parsed block list; unknown types come back as an
// inert placeholder so one bad block never hides its neighbours.
package block

import (
	"bytes"
	"html/template"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/metrics"
	"github.com/yanizio/sitekit/internal/section"
)

// Renderer turns one block into markup.
//
// Render MUST be concurrency-safe; the preview frame and the CLI may call
// it from several goroutines.  Errors are returned, not written, so the
// caller can substitute a placeholder.
type Renderer interface {
	Type() string
	Render(b section.Block) (template.HTML, error)
}

var (
	mu       sync.RWMutex
	registry = map[string]Renderer{}
)

// Register a renderer during init().  A duplicate key overwrites the
// earlier entry.
func Register(r Renderer) {
	mu.Lock()
	registry[r.Type()] = r
	mu.Unlock()
}

// Lookup returns the renderer or nil.
func Lookup(typ string) Renderer {
	mu.RLock()
	defer mu.RUnlock()
	return registry[typ]
}

// Types returns the registered block types, sorted.
func Types() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Render dispatches b to its renderer.  Unregistered types and renderer
// errors produce a placeholder div instead of failing.
func Render(b section.Block) template.HTML {
	r := Lookup(b.Type)
	if r == nil {
		metrics.RenderFallback.WithLabelValues("block-unknown").Inc()
		return placeholder("block-unknown", b)
	}
	out, err := r.Render(b)
	if err != nil {
		zap.S().Warnw("block render failed", "block", b.String(), "err", err)
		metrics.RenderFallback.WithLabelValues("block-error").Inc()
		return placeholder("block-error", b)
	}
	return out
}

// RenderAll renders blocks in slice order.  Nothing is skipped or
// re-sorted; the stored array order is the display order.
func RenderAll(blocks []section.Block) template.HTML {
	var buf bytes.Buffer
	for _, b := range blocks {
		buf.WriteString(string(Render(b)))
		buf.WriteByte('\n')
	}
	return template.HTML(buf.String())
}

func placeholder(class string, b section.Block) template.HTML {
	return template.HTML(`<div class="` + class + `" data-block-type="` +
		template.HTMLEscapeString(b.Type) + `" data-block-id="` +
		template.HTMLEscapeString(b.ID) + `"></div>`)
}
