// internal/routing/slug.go
//
// Slug and path helpers for pages.
//
// • MakeSlug(name) ─ converts a page name into a URL-safe slug restricted
//   to ASCII a-z, 0-9 and “-”.
// • PagePath(slug) ─ the public path of a page; the root slug maps to "/".
//
// Rules (MakeSlug)
// ----------------
// 1. Decompose and drop combining marks, so “À propos” → “a propos”.
// 2. Lower-case everything.
// 3. Convert any run of non-[a-z0-9] characters to one “-”.
// 4. Trim leading / trailing “-”.
// 5. If the result is empty, return "page".
//
// Notes
// -----
// • Slugs are max 100 bytes; the cut never leaves a trailing dash.

package routing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const rootSlug = "home"

// MakeSlug converts name → lower-kebab ASCII.
func MakeSlug(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))

	lastWasDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "page"
	}
	if len(slug) > 100 {
		slug = strings.TrimRight(slug[:100], "-")
	}
	return slug
}

// PagePath returns "/" for the root page and "/<slug>" otherwise.
func PagePath(slug string) string {
	slug = strings.Trim(slug, "/")
	if slug == "" || slug == rootSlug {
		return "/"
	}
	return "/" + slug
}
