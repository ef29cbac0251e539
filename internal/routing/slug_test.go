package routing

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"À propos de nous":   "a-propos-de-nous",
		"  Nos Services!! ":  "nos-services",
		"Café & Crème":       "cafe-creme",
		"---":                "page",
		"Étude 2025 / Bilan": "etude-2025-bilan",
	}
	for in, want := range cases {
		if got := MakeSlug(in); got != want {
			t.Errorf("MakeSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeSlug_Truncates(t *testing.T) {
	got := MakeSlug(strings.Repeat("ab ", 60))
	if len(got) > 100 || strings.HasSuffix(got, "-") {
		t.Fatalf("slug = %q (len %d)", got, len(got))
	}
}

func TestPagePath(t *testing.T) {
	if PagePath("home") != "/" || PagePath("") != "/" {
		t.Fatalf("root page must map to /")
	}
	if PagePath("/contact/") != "/contact" {
		t.Fatalf("PagePath = %q", PagePath("/contact/"))
	}
}
