// components/electric/electric.go
//
// Electric variant catalog: the neon hero, header, and footer.  Kept in
// its own package so a deployment can drop the look by not importing it.
package electric

import (
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/variant"
)

const name = "electric"

var tpl = variant.NewTemplates(name, `
{{define "hero"}}<div class="hero hero-electric">
<div class="electric-grid" aria-hidden="true"></div>
{{- with .S.Content}}{{with .Badge}}<span class="badge badge-glow">{{.}}</span>{{end}}
<h1 class="glow">{{.Titre}}</h1>{{with .SousTitre}}<p class="lead">{{.}}</p>{{end}}
<div class="hero-actions">{{with .CTAPrincipal}}<a class="btn btn-neon" href="{{or .URL "#"}}">{{.Text}}</a>{{end}}
{{- with .CTASecondaire}}<a class="btn btn-ghost" href="{{or .URL "#"}}">{{.Text}}</a>{{end}}</div>
{{- with .TrustStats}}<ul class="hero-stats">{{range .}}<li><strong>{{.Value}}</strong> {{.Label}}</li>{{end}}</ul>{{end}}{{end}}
{{- .Blocks}}</div>{{end}}

{{define "header"}}{{with .S.Content}}<header class="site-header header-electric">
<a class="brand glow" href="/">{{with .LogoURL}}<img src="{{.}}" alt="">{{end}}<span>{{.SiteTitle}}</span></a>
<nav><ul>{{range .Links}}<li><a href="{{.URL}}" data-link-id="{{.ID}}">{{.Label}}</a></li>{{end}}</ul></nav>
{{- if .ShowCTA}}<a class="btn btn-neon" href="{{or .CTA.URL "#"}}">{{.CTA.Text}}</a>{{end}}</header>{{end}}{{end}}

{{define "footer"}}{{with .S.Content}}<footer class="site-footer footer-electric">
<div class="footer-brand"><strong class="glow">{{.SiteName}}</strong>{{with .Slogan}}<p>{{.}}</p>{{end}}</div>
{{- with .Links}}<ul class="footer-links">{{range .}}<li><a href="{{.URL}}">{{.Label}}</a></li>{{end}}</ul>{{end}}
{{- with .Social}}<ul class="footer-social">{{range $net, $url := .}}<li><a href="{{$url}}" rel="noopener" data-network="{{$net}}">{{$net}}</a></li>{{end}}</ul>{{end}}
<p class="footer-legal">{{or .Copyright (printf "© %s" .SiteName)}}</p></footer>{{end}}{{end}}
`)

func init() {
	for _, t := range []section.Type{section.TypeHero, section.TypeHeader, section.TypeFooter} {
		variant.Register(t, name, variant.Template(name+"/"+string(t), tpl, string(t)))
	}
}
