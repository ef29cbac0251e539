// internal/view/render.go
//
// Shell pages for the editor and the preview frame.
//
// Context
// -------
// Both shells are thin: a layout, a <head> filled by head.Builder, and a
// script that does the rest over HTTP or the preview socket.  Templates
// and static assets are embedded so the binary runs from any directory.
//
// Public helpers
// --------------
//   - Render  – execute one shell into an http.ResponseWriter.
//   - Static  – http.Handler for the embedded /static tree.
//
// Notes
// -----
//   - Every shell is parsed together with layout.html at init; a parse
//     error is a programming error and panics at boot.
//   - Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/yanizio/sitekit/internal/head"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page is the data every shell receives.
type Page struct {
	Head *head.Builder
	Lang string
	Data any
}

var shells = map[string]*template.Template{}

func init() {
	for _, name := range []string{"editor", "preview"} {
		shells[name] = template.Must(template.New("layout.html").
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
}

// Render executes shell name into w.  The page is buffered so a template
// error still yields a clean 500.
func Render(w http.ResponseWriter, name string, p Page) error {
	t, ok := shells[name]
	if !ok {
		return fs.ErrNotExist
	}
	if p.Head == nil {
		p.Head = head.New()
	}
	if p.Lang == "" {
		p.Lang = "fr"
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets.  Mount it with http.StripPrefix.
func Static() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.FileServer(http.FS(sub))
}
