package block

import (
	"bytes"
	"encoding/json"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Template helpers.  Block content is untyped JSON, so every accessor
// tolerates missing keys and wrong shapes and returns a zero value.

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown converts src with goldmark.  Raw HTML inside src is not
// passed through (goldmark's default), so the result is safe to embed.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Str returns the first non-empty scalar under keys, as a string.
func Str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case json.Number:
			return v.String()
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

// List returns the objects stored under key.  Bare strings are wrapped
// as {"text": s} so a list of labels still renders.
func List(m map[string]any, key string) []map[string]any {
	var out []map[string]any
	switch raw := m[key].(type) {
	case []any:
		for _, v := range raw {
			switch t := v.(type) {
			case map[string]any:
				out = append(out, t)
			case string:
				out = append(out, map[string]any{"text": t})
			}
		}
	case []map[string]any:
		out = append(out, raw...)
	}
	return out
}

// Strs returns the scalar strings stored under key.
func Strs(m map[string]any, key string) []string {
	var out []string
	switch raw := m[key].(type) {
	case []any:
		for _, v := range raw {
			if s := Str(map[string]any{"v": v}, "v"); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, raw...)
	}
	return out
}

// Flag reads a boolean, accepting "true"/"false" strings.
func Flag(m map[string]any, key string, def bool) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Int reads a number, accepting numeric strings.
func Int(m map[string]any, key string, def int) int {
	s := Str(m, key)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return int(f)
}

// styleProps maps the style keys we honour onto CSS properties.
var styleProps = []struct{ key, prop string }{
	{"color", "color"},
	{"backgroundColor", "background-color"},
	{"textAlign", "text-align"},
	{"fontSize", "font-size"},
	{"fontWeight", "font-weight"},
	{"padding", "padding"},
	{"margin", "margin"},
	{"borderRadius", "border-radius"},
	{"width", "width"},
	{"maxWidth", "max-width"},
	{"height", "height"},
	{"gap", "gap"},
}

var cssValue = regexp.MustCompile(`^[a-zA-Z0-9#%., ()-]+$`)

// CSS builds an inline style from the whitelisted keys of style.  Values
// outside a conservative charset are dropped.
func CSS(style map[string]any) template.CSS {
	var b strings.Builder
	for _, p := range styleProps {
		v := Str(style, p.key)
		if v == "" || !cssValue.MatchString(v) {
			continue
		}
		low := strings.ToLower(v)
		if strings.Contains(low, "url") || strings.Contains(low, "expression") {
			continue
		}
		b.WriteString(p.prop)
		b.WriteByte(':')
		b.WriteString(v)
		b.WriteByte(';')
	}
	return template.CSS(b.String())
}

// Href resolves a block link {type, target} to a URL.  html/template
// still filters the result, so a javascript: target renders as #ZgotmplZ.
func Href(link map[string]any) string {
	target := Str(link, "target", "url", "href")
	if target == "" {
		return ""
	}
	switch Str(link, "type") {
	case "page":
		return "/" + strings.TrimPrefix(target, "/")
	case "section":
		return "#" + strings.TrimPrefix(target, "#")
	case "email":
		return "mailto:" + target
	case "phone":
		return "tel:" + strings.ReplaceAll(target, " ", "")
	default:
		return target
	}
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// Funcs is the helper set shared by block and section templates.
var Funcs = template.FuncMap{
	"str":   Str,
	"list":  List,
	"strs":  Strs,
	"flag":  Flag,
	"int":   Int,
	"css":   CSS,
	"href":  Href,
	"stars": stars,
	"add":   func(a, b int) int { return a + b },
	"one":   func(m map[string]any) []map[string]any { return []map[string]any{m} },
	"md": func(s string) template.HTML {
		h, err := Markdown(s)
		if err != nil {
			return template.HTML(template.HTMLEscapeString(s))
		}
		return h
	},
	"wa": func(phone string) string {
		return strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, phone)
	},
}
