// components/classic/classic.go
//
// Classic variant catalog: the plain, corporate, and bold looks for every
// typed section.  Importing the package registers the renderers.
package classic

import (
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/variant"
)

var tpl = variant.NewTemplates("classic", templates)

// catalog is the set of (type, variant) pairs this package draws.  Each
// entry is rendered by the template named "<type>/<variant>".
var catalog = map[section.Type][]string{
	section.TypeHero:         {"minimal", "corporate", "bold"},
	section.TypeHeader:       {"minimal", "corporate", "bold", "centered"},
	section.TypeFooter:       {"minimal", "corporate", "bold", "mega"},
	section.TypeServices:     {"grid", "list"},
	section.TypeAdvantages:   {"grid", "list"},
	section.TypeTrust:        {"grid", "list"},
	section.TypePortfolio:    {"grid", "list"},
	section.TypeTestimonials: {"grid", "list"},
	section.TypeFAQ:          {"accordion"},
	section.TypeGallery:      {"grid", "masonry"},
	section.TypeContact:      {"form"},
}

func init() {
	for typ, variants := range catalog {
		for _, v := range variants {
			name := string(typ) + "/" + v
			variant.Register(typ, v, variant.Template("classic/"+name, tpl, name))
		}
	}
}
