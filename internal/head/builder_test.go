package head

import (
	"strings"
	"testing"
)

func TestBuilder(t *testing.T) {
	b := New()
	b.SetTitle("Draft")
	b.SetTitle(`Accueil <L'Atelier>`)
	b.Meta("description", `Menuiserie "sur mesure"`)
	b.Meta("robots", "")
	b.Script("/editor/static/preview.js")
	b.Script("/editor/static/preview.js")
	b.JSONLD(map[string]string{"name": "</script>"})

	got := string(b.HTML())
	if strings.Count(got, "<title>") != 1 || !strings.Contains(got, "Accueil &lt;L&#39;Atelier&gt;") {
		t.Fatalf("title not escaped once: %s", got)
	}
	if !strings.Contains(got, `content="Menuiserie &#34;sur mesure&#34;"`) {
		t.Fatalf("meta not escaped: %s", got)
	}
	if strings.Contains(got, `name="robots"`) {
		t.Fatalf("empty meta emitted: %s", got)
	}
	if strings.Count(got, "preview.js") != 1 {
		t.Fatalf("script not deduplicated: %s", got)
	}
	if strings.Contains(got, `"</script>"`) {
		t.Fatalf("JSON-LD payload can close its tag: %s", got)
	}
}
