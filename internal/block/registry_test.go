package block

import (
	"strings"
	"testing"

	"github.com/yanizio/sitekit/internal/section"
)

func TestVocabularyRegistered(t *testing.T) {
	for _, typ := range Vocabulary {
		if Lookup(typ) == nil {
			t.Errorf("block type %q has no renderer", typ)
		}
	}
	if len(Types()) != len(Vocabulary) {
		t.Fatalf("Types() = %d entries, want %d", len(Types()), len(Vocabulary))
	}
}

func TestEveryTemplateRendersEmptyContent(t *testing.T) {
	for _, typ := range Vocabulary {
		out := Render(section.Block{ID: "b", Type: typ})
		if strings.Contains(string(out), "block-error") {
			t.Errorf("%s: empty content produced an error placeholder", typ)
		}
	}
}

func TestRender_UnknownPlaceholder(t *testing.T) {
	out := string(Render(section.Block{ID: "x1", Type: `quiz"><script>`}))
	if !strings.HasPrefix(out, `<div class="block-unknown" data-block-type="`) {
		t.Fatalf("placeholder = %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("type not escaped: %s", out)
	}
}

func TestRenderAll_PreservesOrder(t *testing.T) {
	blocks := []section.Block{
		{ID: "1", Type: "heading", Order: 9, Content: map[string]any{"text": "first"}},
		{ID: "2", Type: "nope"},
		{ID: "3", Type: "text", Order: 0, Content: map[string]any{"text": "third"}},
	}
	out := string(RenderAll(blocks))

	a := strings.Index(out, "first")
	b := strings.Index(out, `data-block-id="2"`)
	c := strings.Index(out, "third")
	if a < 0 || b < 0 || c < 0 {
		t.Fatalf("missing output: %s", out)
	}
	if !(a < b && b < c) {
		t.Fatalf("blocks out of order: %s", out)
	}
}

func TestHeading_Level(t *testing.T) {
	out := string(Render(section.Block{Type: "heading", Content: map[string]any{"text": "Hi <b>", "level": 1.0}}))
	if !strings.HasPrefix(out, "<h1 ") || !strings.Contains(out, "Hi &lt;b&gt;") {
		t.Fatalf("heading = %s", out)
	}
	out = string(Render(section.Block{Type: "heading", Content: map[string]any{"level": "9"}}))
	if !strings.HasPrefix(out, "<h2 ") {
		t.Fatalf("out-of-range level should fall back to h2: %s", out)
	}
}

func TestText_Markdown(t *testing.T) {
	out := string(Render(section.Block{Type: "text", Content: map[string]any{"markdown": "**bold** <script>x</script>"}}))
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("markdown not rendered: %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw HTML leaked through markdown: %s", out)
	}
}

func TestButton_LinkResolution(t *testing.T) {
	cases := []struct {
		link map[string]any
		want string
	}{
		{map[string]any{"type": "section", "target": "contact"}, `href="#contact"`},
		{map[string]any{"type": "page", "target": "about"}, `href="/about"`},
		{map[string]any{"type": "url", "target": "javascript:alert(1)"}, `href="#ZgotmplZ"`},
	}
	for _, tc := range cases {
		out := string(Render(section.Block{Type: "button", Content: map[string]any{"text": "Go"}, Link: tc.link}))
		if !strings.Contains(out, tc.want) {
			t.Errorf("link %v: got %s, want %s", tc.link, out, tc.want)
		}
	}
}

func TestCSS_DropsUnsafeValues(t *testing.T) {
	got := string(CSS(map[string]any{
		"color":           "red",
		"backgroundColor": "url(evil)",
		"padding":         "1px; position:fixed",
		"unknownProp":     "x",
	}))
	if got != "color:red;" {
		t.Fatalf("CSS = %q, want color:red;", got)
	}
}
