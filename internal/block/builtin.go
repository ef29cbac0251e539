package block

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/yanizio/sitekit/internal/section"
)

// Vocabulary is the full set of block types the builder can produce.
var Vocabulary = []string{
	"heading", "text", "image", "video", "button", "icon", "spacer",
	"divider", "form", "infinite-zoom", "carousel", "gallery", "logo-cloud",
	"testimonial", "faq", "stats-counter", "pricing", "timeline", "team",
	"marquee", "feature-grid", "cta-section", "countdown", "newsletter",
	"whatsapp-button", "bento-grid", "before-after",
}

var tmpl = template.Must(template.New("blocks").Funcs(Funcs).Parse(blockTemplates))

// view is what block templates see.
type view struct {
	ID   string
	Type string
	C    map[string]any
	S    map[string]any
	L    map[string]any
}

// tmplRenderer renders a block through the template of the same name.
type tmplRenderer struct{ typ string }

func (r tmplRenderer) Type() string { return r.typ }

func (r tmplRenderer) Render(b section.Block) (template.HTML, error) {
	var buf bytes.Buffer
	v := view{ID: b.ID, Type: b.Type, C: b.Content, S: b.Style, L: b.Link}
	if err := tmpl.ExecuteTemplate(&buf, r.typ, v); err != nil {
		return "", fmt.Errorf("block %s: %w", b, err)
	}
	return template.HTML(buf.String()), nil
}

// heading picks its element from content.level, which a template cannot
// do safely, so it is written by hand.
type heading struct{}

func (heading) Type() string { return "heading" }

func (heading) Render(b section.Block) (template.HTML, error) {
	level := Int(b.Content, "level", 2)
	if level < 1 || level > 6 {
		level = 2
	}
	tag := "h" + strconv.Itoa(level)
	return template.HTML(fmt.Sprintf(`<%s class="block block-heading" style="%s">%s</%s>`,
		tag, template.HTMLEscapeString(string(CSS(b.Style))),
		template.HTMLEscapeString(Str(b.Content, "text")), tag)), nil
}

// text renders content.markdown through goldmark when present, else the
// plain text with line breaks kept.
type text struct{}

func (text) Type() string { return "text" }

func (text) Render(b section.Block) (template.HTML, error) {
	style := template.HTMLEscapeString(string(CSS(b.Style)))
	if src := Str(b.Content, "markdown"); src != "" {
		body, err := Markdown(src)
		if err != nil {
			return "", fmt.Errorf("block %s: markdown: %w", b, err)
		}
		return template.HTML(`<div class="block block-text markdown" style="` + style + `">` + string(body) + `</div>`), nil
	}
	return template.HTML(`<p class="block block-text" style="` + style + `">` +
		template.HTMLEscapeString(Str(b.Content, "text")) + `</p>`), nil
}

func init() {
	Register(heading{})
	Register(text{})
	for _, typ := range Vocabulary {
		if typ == "heading" || typ == "text" {
			continue
		}
		Register(tmplRenderer{typ: typ})
	}
}
