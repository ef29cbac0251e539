package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const heroDump = `{
  "id": "s1",
  "tenantId": "t1",
  "pageId": "p1",
  "type": "hero",
  "order": 0,
  "isActive": true,
  "content": {"titre": "Bienvenue", "badgeHero": "Nouveau"},
  "design": {}
}`

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("sectionctl %v: %v", args, err)
	}
	return out.String()
}

func TestDecodeSections(t *testing.T) {
	one, err := decodeSections([]byte(heroDump))
	if err != nil || len(one) != 1 || one[0].ID != "s1" {
		t.Fatalf("single = %+v, %v", one, err)
	}
	list, err := decodeSections([]byte("[" + heroDump + "," + heroDump + "]"))
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %d, %v", len(list), err)
	}
	if _, err := decodeSections([]byte("   ")); err == nil {
		t.Fatalf("empty input should fail")
	}
}

func TestNormalizeAndRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(path, []byte(heroDump), 0o644); err != nil {
		t.Fatal(err)
	}

	norm := run(t, "normalize", path)
	if !strings.Contains(norm, `"badge": "Nouveau"`) {
		t.Fatalf("normalize did not fold badgeHero:\n%s", norm)
	}

	html := run(t, "render", path)
	if !strings.Contains(html, `data-section-id="s1"`) || !strings.Contains(html, "Bienvenue") {
		t.Fatalf("render = %s", html)
	}
}

func TestVariantsAndSchema(t *testing.T) {
	if out := run(t, "variants"); !strings.Contains(out, "hero/minimal") {
		t.Fatalf("variants = %s", out)
	}
	if out := run(t, "schema"); !strings.Contains(out, "CREATE TABLE IF NOT EXISTS") {
		t.Fatalf("schema = %s", out)
	}
}
