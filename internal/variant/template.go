package variant

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yanizio/sitekit/internal/block"
	"github.com/yanizio/sitekit/internal/section"
)

// View is the data a catalog template receives.
//
//	.S       the canonical section (typed content under .S.Content)
//	.M       the canonical content map
//	.Blocks  rendered blocks, empty unless the section carries blocks
type View struct {
	S      *section.Canonical
	M      map[string]any
	Blocks template.HTML
}

// NewTemplates parses a catalog's template source with the shared helper
// functions (see block.Funcs).
func NewTemplates(name, src string) *template.Template {
	return template.Must(template.New(name).Funcs(block.Funcs).Parse(src))
}

type tmplRenderer struct {
	id   string
	t    *template.Template
	name string
}

// Template returns a Renderer executing the named template from t.  id
// shows up in data-renderer and logs.
func Template(id string, t *template.Template, name string) Renderer {
	if t.Lookup(name) == nil {
		panic(fmt.Sprintf("variant: template %q not defined", name))
	}
	return tmplRenderer{id: id, t: t, name: name}
}

func (r tmplRenderer) ID() string { return r.id }

func (r tmplRenderer) Render(c *section.Canonical) (template.HTML, error) {
	v := View{S: c, M: c.ContentMap()}
	if c.HasBlocks {
		v.Blocks = block.RenderAll(c.Blocks)
	}
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, r.name, v); err != nil {
		return "", fmt.Errorf("%s: %w", r.id, err)
	}
	return template.HTML(buf.String()), nil
}
