package variant

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"github.com/yanizio/sitekit/internal/block"
	"github.com/yanizio/sitekit/internal/section"
)

// fallback marks the built-in tiers so Render can count them.
type fallback interface {
	Renderer
	fallback()
}

var (
	blocksRenderer      Renderer = blocksR{}
	emptyRenderer       Renderer = emptyR{}
	passThroughRenderer Renderer = passThroughR{}
)

/*──────────────────────────── blocks ───────────────────────────────────────*/

type blocksR struct{}

func (blocksR) ID() string { return "blocks" }
func (blocksR) fallback()  {}

func (blocksR) Render(c *section.Canonical) (template.HTML, error) {
	kind := block.Str(c.Layout, "type")
	if kind == "" {
		kind = "single-column"
	}
	cls := "section-blocks layout-" + kind
	if n := block.Int(c.Layout, "columns", 0); n > 0 {
		cls += fmt.Sprintf(" cols-%d", n)
	}
	if g := block.Str(c.Layout, "gap"); g != "" {
		cls += " gap-" + g
	}
	return template.HTML(`<div class="` + template.HTMLEscapeString(cls) + `">` +
		string(block.RenderAll(c.Blocks)) + `</div>`), nil
}

/*──────────────────────────── empty ────────────────────────────────────────*/

var emptyMessages = map[section.Type]string{
	section.TypeGallery:      "Aucune image dans la galerie",
	section.TypeInfiniteZoom: "Aucune couche à explorer",
	section.TypeCustom:       "Aucun contenu personnalisé",
}

// EmptyMessage is the placeholder text for an empty section of type t.
func EmptyMessage(t section.Type) string {
	if m, ok := emptyMessages[t]; ok {
		return m
	}
	return "Section vide"
}

type emptyR struct{}

func (emptyR) ID() string { return "empty" }
func (emptyR) fallback()  {}

func (emptyR) Render(c *section.Canonical) (template.HTML, error) {
	return template.HTML(`<div class="section-empty"><p>` +
		template.HTMLEscapeString(EmptyMessage(c.Type)) + `</p></div>`), nil
}

/*──────────────────────────── pass-through ─────────────────────────────────*/

// scalars flattens the scalar fields of m into sorted key/value pairs.
func scalars(m map[string]any) [][2]string {
	var out [][2]string
	for k := range m {
		if s := block.Str(m, k); s != "" {
			out = append(out, [2]string{k, s})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

var passTmpl = template.Must(template.New("pass").Funcs(block.Funcs).Funcs(template.FuncMap{
	"scalars": scalars,
}).Parse(`<div class="section-generic">
{{- with str . "titre"}}<h2>{{.}}</h2>{{end}}
{{- with str . "sousTitre"}}<p class="subtitle">{{.}}</p>{{end}}
{{- with list . "items"}}<ul class="generic-items">{{range .}}<li><dl>
{{- range scalars .}}<dt>{{index . 0}}</dt><dd>{{index . 1}}</dd>{{end}}</dl>
{{- with strs . "pointsCles"}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}</li>{{end}}</ul>{{end}}
<dl class="generic-fields">{{range scalars .}}{{if and (ne (index . 0) "titre") (ne (index . 0) "sousTitre")}}<dt>{{index . 0}}</dt><dd>{{index . 1}}</dd>{{end}}{{end}}</dl></div>`))

type passThroughR struct{}

func (passThroughR) ID() string { return "passthrough" }
func (passThroughR) fallback()  {}

func (passThroughR) Render(c *section.Canonical) (template.HTML, error) {
	var buf bytes.Buffer
	if err := passTmpl.Execute(&buf, c.Content.Map()); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
