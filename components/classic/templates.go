package classic

const templates = `
{{define "heading"}}{{with .Titre}}<h2 class="section-title">{{.}}</h2>{{end}}{{with .SousTitre}}<p class="section-subtitle">{{.}}</p>{{end}}{{end}}

{{define "cta"}}{{if .Text}}<a class="btn" href="{{or .URL "#"}}">{{.Text}}</a>{{end}}{{end}}

{{/*──────────────────────── hero ────────────────────────*/}}

{{define "hero-body"}}{{with .Badge}}<span class="badge">{{.}}</span>{{end}}
<h1>{{.Titre}}</h1>{{with .SousTitre}}<p class="lead">{{.}}</p>{{end}}
<div class="hero-actions">{{template "cta" .CTAPrincipal}}{{with .CTASecondaire}}<a class="btn btn-secondary" href="{{or .URL "#"}}">{{.Text}}</a>{{end}}</div>
{{- with .TrustStats}}<ul class="hero-stats">{{range .}}<li><strong>{{.Value}}</strong> {{.Label}}</li>{{end}}</ul>{{end}}{{end}}

{{define "hero/minimal"}}<div class="hero hero-minimal">{{template "hero-body" .S.Content}}{{.Blocks}}</div>{{end}}

{{define "hero/corporate"}}<div class="hero hero-corporate"{{with .S.Content.BackgroundURL}} style="background-image:url('{{.}}')"{{end}}>
<div class="hero-overlay"></div><div class="container">{{template "hero-body" .S.Content}}</div>{{.Blocks}}</div>{{end}}

{{define "hero/bold"}}<div class="hero hero-bold">
{{- with .S.Content.VideoURL}}<video class="hero-video" src="{{.}}" autoplay muted loop playsinline></video>{{end}}
<div class="container">{{template "hero-body" .S.Content}}</div>{{.Blocks}}</div>{{end}}

{{/*──────────────────────── header ──────────────────────*/}}

{{define "brand"}}<a class="brand" href="/">{{with .LogoURL}}<img src="{{.}}" alt="">{{end}}<span>{{.SiteTitle}}</span></a>{{end}}
{{define "nav"}}<nav><ul>{{range .Links}}<li><a href="{{.URL}}" data-link-id="{{.ID}}">{{.Label}}</a></li>{{end}}</ul></nav>{{end}}
{{define "header-cta"}}{{if .ShowCTA}}{{template "cta" .CTA}}{{end}}{{end}}

{{define "header/minimal"}}<header class="site-header header-minimal">{{template "brand" .S.Content}}{{template "nav" .S.Content}}</header>{{end}}
{{define "header/corporate"}}<header class="site-header header-corporate"><div class="container">{{template "brand" .S.Content}}{{template "nav" .S.Content}}{{template "header-cta" .S.Content}}</div></header>{{end}}
{{define "header/bold"}}<header class="site-header header-bold">{{template "brand" .S.Content}}{{template "nav" .S.Content}}{{template "header-cta" .S.Content}}</header>{{end}}
{{define "header/centered"}}<header class="site-header header-centered">{{template "brand" .S.Content}}<div class="header-row">{{template "nav" .S.Content}}{{template "header-cta" .S.Content}}</div></header>{{end}}

{{/*──────────────────────── footer ──────────────────────*/}}

{{define "footer-links"}}{{with .Links}}<ul class="footer-links">{{range .}}<li><a href="{{.URL}}">{{.Label}}</a></li>{{end}}</ul>{{end}}{{end}}
{{define "footer-social"}}{{with .Social}}<ul class="footer-social">{{range $net, $url := .}}<li><a href="{{$url}}" rel="noopener" data-network="{{$net}}">{{$net}}</a></li>{{end}}</ul>{{end}}{{end}}
{{define "footer-legal"}}<p class="footer-legal">{{or .Copyright (printf "© %s" .SiteName)}}{{with .PoweredBy}} · {{.}}{{end}}</p>{{end}}

{{define "footer/minimal"}}<footer class="site-footer footer-minimal">{{template "footer-links" .S.Content}}{{template "footer-legal" .S.Content}}</footer>{{end}}
{{define "footer/corporate"}}<footer class="site-footer footer-corporate"><div class="container">
<div class="footer-brand">{{with .S.Content.LogoURL}}<img src="{{.}}" alt="">{{end}}<strong>{{.S.Content.SiteName}}</strong>{{with .S.Content.Slogan}}<p>{{.}}</p>{{end}}</div>
{{- template "footer-links" .S.Content}}{{template "footer-social" .S.Content}}</div>{{template "footer-legal" .S.Content}}</footer>{{end}}
{{define "footer/bold"}}<footer class="site-footer footer-bold">{{with .S.Content.CTA.Text}}<div class="footer-cta">{{template "cta" $.S.Content.CTA}}</div>{{end}}
{{- template "footer-links" .S.Content}}{{template "footer-social" .S.Content}}{{template "footer-legal" .S.Content}}</footer>{{end}}
{{define "footer/mega"}}<footer class="site-footer footer-mega"><div class="footer-columns">
<div class="footer-col"><strong>{{.S.Content.SiteName}}</strong>{{with .S.Content.Slogan}}<p>{{.}}</p>{{end}}</div>
<div class="footer-col">{{template "footer-links" .S.Content}}</div>
<div class="footer-col"><address>{{with .S.Content.Email}}<a href="mailto:{{.}}">{{.}}</a><br>{{end}}{{.S.Content.Adresse}}</address>{{template "footer-social" .S.Content}}</div>
</div>{{template "footer-legal" .S.Content}}</footer>{{end}}

{{/*──────────────────────── list sections ───────────────*/}}

{{define "service-card"}}<article class="card">{{with .Icone}}<i class="icon" data-icon="{{.}}"></i>{{end}}<h3>{{.Titre}}</h3>
{{- with .Tagline}}<p class="tagline">{{.}}</p>{{end}}<p>{{.Description}}</p>
{{- with .PointsCles}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}{{with .Tarif}}<p class="price">{{.}}</p>{{end}}</article>{{end}}

{{define "feature-card"}}<article class="card">{{with .Icone}}<i class="icon" data-icon="{{.}}"></i>{{end}}{{with .Badge}}<span class="badge">{{.}}</span>{{end}}<h3>{{.Titre}}</h3><p>{{.Description}}</p></article>{{end}}

{{define "project-card"}}<article class="card project" data-slug="{{.Slug}}">{{with .ImageURL}}<img src="{{.}}" alt="">{{end}}<h3>{{.Nom}}</h3>
{{- with .DescriptionCourte}}<p>{{.}}</p>{{end}}{{with .Tags}}<ul class="tags">{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{- with .LienSite}}<a href="{{.}}" rel="noopener">Voir le site</a>{{end}}</article>{{end}}

{{define "testimonial-card"}}<blockquote class="card testimonial"><p>{{.Message}}</p><span class="rating">{{stars .Note}}</span>
<footer>{{with .PhotoURL}}<img src="{{.}}" alt="">{{end}}<cite>{{.Nom}}</cite>{{with .Poste}} <span>{{.}}</span>{{end}}</footer></blockquote>{{end}}

{{define "services/grid"}}<div class="services layout-grid">{{template "heading" .S.Content}}<div class="grid">{{range .S.Content.Items}}{{template "service-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "services/list"}}<div class="services layout-list">{{template "heading" .S.Content}}<div class="list">{{range .S.Content.Items}}{{template "service-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "advantages/grid"}}<div class="advantages layout-grid">{{template "heading" .S.Content}}<div class="grid">{{range .S.Content.Items}}{{template "feature-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "advantages/list"}}<div class="advantages layout-list">{{template "heading" .S.Content}}<div class="list">{{range .S.Content.Items}}{{template "feature-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "trust/grid"}}<div class="trust layout-grid">{{template "heading" .S.Content}}<div class="grid">{{range .S.Content.Items}}{{template "feature-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "trust/list"}}<div class="trust layout-list">{{template "heading" .S.Content}}<div class="list">{{range .S.Content.Items}}{{template "feature-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "portfolio/grid"}}<div class="portfolio layout-grid">{{template "heading" .S.Content}}<div class="grid">{{range .S.Content.Items}}{{template "project-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "portfolio/list"}}<div class="portfolio layout-list">{{template "heading" .S.Content}}<div class="list">{{range .S.Content.Items}}{{template "project-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "testimonials/grid"}}<div class="testimonials layout-grid">{{template "heading" .S.Content}}<div class="grid">{{range .S.Content.Items}}{{template "testimonial-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}
{{define "testimonials/list"}}<div class="testimonials layout-list">{{template "heading" .S.Content}}<div class="list">{{range .S.Content.Items}}{{template "testimonial-card" .}}{{end}}</div>{{.Blocks}}</div>{{end}}

{{/*──────────────────────── faq / gallery / contact ─────*/}}

{{define "faq/accordion"}}<div class="faq faq-accordion">{{template "heading" .S.Content}}
{{- range .S.Content.Items}}<details><summary>{{.Question}}</summary><div class="answer">{{.Reponse}}</div></details>{{end}}{{.Blocks}}</div>{{end}}

{{define "gallery-empty"}}<p class="section-empty">Aucune image dans la galerie</p>{{end}}
{{define "gallery/grid"}}<div class="gallery gallery-grid">{{template "heading" .S.Content}}
{{- range .S.Content.Items}}<figure id="{{.ID}}"><img src="{{.ImageURL}}" alt="{{.Titre}}" loading="lazy">{{with .Titre}}<figcaption>{{.}}</figcaption>{{end}}</figure>{{else}}{{template "gallery-empty"}}{{end}}{{.Blocks}}</div>{{end}}
{{define "gallery/masonry"}}<div class="gallery gallery-masonry">{{template "heading" .S.Content}}<div class="masonry">
{{- range .S.Content.Items}}<img id="{{.ID}}" src="{{.ImageURL}}" alt="{{.Titre}}" loading="lazy">{{else}}{{template "gallery-empty"}}{{end}}</div>{{.Blocks}}</div>{{end}}

{{define "contact/form"}}<div class="contact">{{template "heading" .S.Content}}<form method="post" class="contact-form">
{{- range .S.Content.Fields}}<div class="form-field"><label for="fld-{{.Name}}">{{.Label}}</label>
{{- if eq .Type "textarea"}}<textarea id="fld-{{.Name}}" name="{{.Name}}"{{if .Required}} required{{end}}></textarea>
{{- else if eq .Type "select"}}<select id="fld-{{.Name}}" name="{{.Name}}"{{if .Required}} required{{end}}>{{range .Options}}<option>{{.}}</option>{{end}}</select>
{{- else}}<input id="fld-{{.Name}}" name="{{.Name}}" type="{{.Type}}"{{if .Required}} required{{end}}>{{end}}</div>{{end}}
<button type="submit">{{.S.Content.SubmitText}}</button><p class="form-success" hidden>{{.S.Content.SuccessMessage}}</p></form>{{.Blocks}}</div>{{end}}
`
