package block

// blockTemplates holds one named template per block type.  Each receives
// a view (see builtin.go): .ID, .Type, .C (content), .S (style), and .L
// (link).  The markup is plain and class-hooked; themes style it.
const blockTemplates = `
{{define "image"}}<figure class="block block-image" style="{{css .S}}">
{{- with str .C "url" "src"}}{{if href $.L}}<a href="{{href $.L}}">{{end}}<img src="{{.}}" alt="{{str $.C "alt"}}" loading="lazy">{{if href $.L}}</a>{{end}}{{end}}
{{- with str .C "caption"}}<figcaption>{{.}}</figcaption>{{end}}</figure>{{end}}

{{define "video"}}<div class="block block-video" style="{{css .S}}">
{{- with str .C "url"}}<video src="{{.}}" controls preload="metadata" title="{{str $.C "title"}}"></video>{{end}}</div>{{end}}

{{define "button"}}<a class="block block-button btn-{{or (str .S "variant") "solid"}}" href="{{or (href .L) "#"}}" style="{{css .S}}"
{{- if flag .L "openInNewTab" false}} target="_blank" rel="noopener"{{end}}>
{{- with str .C "icon"}}<i class="icon" data-icon="{{.}}"></i>{{end}}{{or (str .C "text") "Bouton"}}</a>{{end}}

{{define "icon"}}<span class="block block-icon icon-{{or (str .S "size") "md"}}" style="{{css .S}}"><i class="icon" data-icon="{{str .C "name"}}"></i>
{{- with str .C "label"}}<span class="icon-label">{{.}}</span>{{end}}</span>{{end}}

{{define "spacer"}}<div class="block block-spacer" style="height:{{int .C "height" 32}}px" aria-hidden="true"></div>{{end}}

{{define "divider"}}<hr class="block block-divider divider-{{or (str .S "variant") "solid"}}" style="{{css .S}}">{{end}}

{{define "form"}}<form class="block block-form" method="post" data-webhook="{{str .C "webhookUrl"}}" style="{{css .S}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}
{{- with str .C "description"}}<p>{{.}}</p>{{end}}
{{- range $i, $f := list .C "fields"}}{{$id := or (str $f "id" "name") (printf "field-%d" (add $i 1))}}<div class="form-field">
<label for="fld-{{$id}}">{{or (str $f "label") $id}}</label>
{{- if eq (str $f "type") "textarea"}}<textarea id="fld-{{$id}}" name="{{$id}}" placeholder="{{str $f "placeholder"}}"{{if flag $f "required" false}} required{{end}}></textarea>
{{- else if eq (str $f "type") "select"}}<select id="fld-{{$id}}" name="{{$id}}"{{if flag $f "required" false}} required{{end}}>{{range strs $f "options"}}<option value="{{.}}">{{.}}</option>{{end}}</select>
{{- else}}<input id="fld-{{$id}}" name="{{$id}}" type="{{or (str $f "type") "text"}}" placeholder="{{str $f "placeholder"}}"{{if flag $f "required" false}} required{{end}}>{{end}}
</div>{{end}}
<button type="submit">{{or (str .C "submitText") "Envoyer"}}</button>
<p class="form-success" hidden>{{or (str .C "successMessage") "Message envoyé avec succès !"}}</p></form>{{end}}

{{define "infinite-zoom"}}<div class="block block-infinite-zoom zoom-{{or (str .S "variant") "contained"}}">
{{- range $i, $l := list .C "layers"}}<div class="zoom-layer" data-layer="{{$i}}" data-focal-x="{{int $l "focalPointX" 50}}" data-focal-y="{{int $l "focalPointY" 50}}">
<img src="{{str $l "imageUrl"}}" alt="{{str $l "title"}}">{{with str $l "title"}}<span>{{.}}</span>{{end}}</div>{{end}}</div>{{end}}

{{define "carousel"}}<div class="block block-carousel" data-autoplay="{{flag .C "autoplay" false}}" data-interval="{{int .C "autoplayInterval" 5000}}">
{{- range list .C "images"}}<figure class="slide"><img src="{{str . "url"}}" alt="{{str . "alt"}}">{{with str . "caption"}}<figcaption>{{.}}</figcaption>{{end}}</figure>{{end}}</div>{{end}}

{{define "gallery"}}<div class="block block-gallery gallery-{{or (str .S "mode") "grid"}} cols-{{int .S "columns" 3}}">
{{- range list .C "images"}}<figure>{{$src := str . "url" "src"}}{{$alt := str . "alt" "title"}}{{with str . "link"}}<a href="{{.}}"><img src="{{$src}}" alt="{{$alt}}"></a>{{else}}<img src="{{$src}}" alt="{{$alt}}">{{end}}
{{- with str . "caption" "title"}}<figcaption>{{.}}</figcaption>{{end}}</figure>{{end}}</div>{{end}}

{{define "logo-cloud"}}<div class="block block-logo-cloud cols-{{int .S "columns" 5}}{{if flag .S "grayscale" false}} grayscale{{end}}">
{{- with str .C "title"}}<p class="logo-cloud-title">{{.}}</p>{{end}}
{{- range list .C "logos"}}{{with str . "link"}}<a href="{{.}}">{{end}}<img src="{{str . "url"}}" alt="{{str . "alt"}}">{{with str . "link"}}</a>{{end}}{{end}}</div>{{end}}

{{define "testimonial"}}<div class="block block-testimonial">
{{- $items := list .C "items"}}{{if not $items}}{{if str .C "author"}}{{$items = one .C}}{{end}}{{end}}
{{- range $items}}<blockquote class="testimonial">
<p>{{str . "quote"}}</p>{{with int . "rating" 0}}<span class="rating">{{stars .}}</span>{{end}}
<footer>{{with str . "avatarUrl"}}<img src="{{.}}" alt="">{{end}}<cite>{{str . "author"}}</cite>
{{- with str . "role"}} <span class="role">{{.}}</span>{{end}}{{with str . "company"}} <span class="company">{{.}}</span>{{end}}</footer></blockquote>{{end}}</div>{{end}}

{{define "faq"}}<div class="block block-faq faq-{{or (str .S "variant") "simple"}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}
{{- range list .C "items"}}<details><summary>{{str . "question"}}</summary><div>{{str . "answer" "reponse"}}</div></details>{{end}}</div>{{end}}

{{define "stats-counter"}}<div class="block block-stats-counter cols-{{int .S "columns" 3}}">
{{- range list .C "stats"}}<div class="stat"><span class="stat-value">{{str . "prefix"}}{{str . "value"}}{{str . "suffix"}}</span><span class="stat-label">{{str . "label"}}</span></div>{{end}}</div>{{end}}

{{define "pricing"}}<div class="block block-pricing cols-{{int .S "columns" 3}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}{{with str .C "subtitle"}}<p>{{.}}</p>{{end}}
{{- range list .C "plans"}}<div class="plan{{if flag . "highlighted" false}} highlighted{{end}}">
<h4>{{str . "name"}}</h4><p class="price">{{str . "price"}}{{with str . "period"}}<span>/{{.}}</span>{{end}}</p>
{{- with str . "description"}}<p>{{.}}</p>{{end}}<ul>{{range strs . "features"}}<li>{{.}}</li>{{end}}</ul>
<a class="btn" href="{{or (str . "ctaUrl") "#"}}">{{or (str . "ctaText") "Choisir"}}</a></div>{{end}}</div>{{end}}

{{define "timeline"}}<div class="block block-timeline timeline-{{or (str .S "variant") "vertical"}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}<ol>
{{- range list .C "items"}}<li><time>{{str . "date"}}</time><h4>{{str . "title"}}</h4>{{with str . "description"}}<p>{{.}}</p>{{end}}</li>{{end}}</ol></div>{{end}}

{{define "team"}}<div class="block block-team cols-{{int .S "columns" 3}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}
{{- range list .C "members"}}<div class="member">{{with str . "imageUrl"}}<img src="{{.}}" alt="">{{end}}
<h4>{{str . "name"}}</h4><p class="role">{{str . "role"}}</p>{{with str . "bio"}}<p>{{.}}</p>{{end}}</div>{{end}}</div>{{end}}

{{define "marquee"}}<div class="block block-marquee marquee-{{or (str .S "direction") "left"}} speed-{{or (str .S "speed") "normal"}}"><div class="marquee-track">
{{- range list .C "items"}}{{with str . "imageUrl"}}<img src="{{.}}" alt="">{{else}}<span>{{str . "text"}}</span>{{end}}{{end}}</div></div>{{end}}

{{define "feature-grid"}}<div class="block block-feature-grid cols-{{int .S "columns" 3}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}{{with str .C "subtitle"}}<p>{{.}}</p>{{end}}
{{- range list .C "features"}}<div class="feature"><i class="icon" data-icon="{{str . "icon"}}"></i><h4>{{str . "title"}}</h4><p>{{str . "description"}}</p></div>{{end}}</div>{{end}}

{{define "cta-section"}}<div class="block block-cta-section cta-{{or (str .S "variant") "centered"}}">
<h2>{{str .C "headline"}}</h2>{{with str .C "subheadline"}}<p>{{.}}</p>{{end}}
{{- with str .C "primaryButtonText"}}<a class="btn btn-primary" href="{{or (str $.C "primaryButtonUrl") "#"}}">{{.}}</a>{{end}}
{{- with str .C "secondaryButtonText"}}<a class="btn btn-secondary" href="{{or (str $.C "secondaryButtonUrl") "#"}}">{{.}}</a>{{end}}</div>{{end}}

{{define "countdown"}}<div class="block block-countdown countdown-{{or (str .S "variant") "boxes"}}" data-target="{{str .C "targetDate"}}">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}<p class="countdown-expired" hidden>{{or (str .C "expiredMessage") "L'événement a commencé !"}}</p></div>{{end}}

{{define "newsletter"}}<form class="block block-newsletter newsletter-{{or (str .S "variant") "inline"}}" method="post">
{{- with str .C "title"}}<h3>{{.}}</h3>{{end}}{{with str .C "subtitle"}}<p>{{.}}</p>{{end}}
<input type="email" name="email" required placeholder="{{or (str .C "placeholder") "Votre email"}}">
<button type="submit">{{or (str .C "buttonText") "S'inscrire"}}</button>
<p class="form-success" hidden>{{or (str .C "successMessage") "Merci pour votre inscription !"}}</p></form>{{end}}

{{define "whatsapp-button"}}<a class="block block-whatsapp-button wa-{{or (str .S "variant") "floating"}}" href="https://wa.me/{{wa (str .C "phoneNumber")}}?text={{str .C "message"}}" target="_blank" rel="noopener">
{{- or (str .C "buttonText") "WhatsApp"}}</a>{{end}}

{{define "bento-grid"}}<div class="block block-bento-grid">
{{- range list .C "items"}}<div class="bento-item span-{{or (str . "span") "md"}}">
{{- with str . "imageUrl"}}<img src="{{.}}" alt="">{{end}}{{with str . "title"}}<h4>{{.}}</h4>{{end}}{{with str . "description"}}<p>{{.}}</p>{{end}}
{{- with str . "url"}}<a href="{{.}}" class="stretched"></a>{{end}}</div>{{end}}</div>{{end}}

{{define "before-after"}}<div class="block block-before-after ba-{{or (str .S "variant") "slider"}}" data-position="{{int .S "sliderPosition" 50}}">
<figure><img src="{{str .C "beforeImage"}}" alt="{{or (str .C "beforeLabel") "Avant"}}"><figcaption>{{or (str .C "beforeLabel") "Avant"}}</figcaption></figure>
<figure><img src="{{str .C "afterImage"}}" alt="{{or (str .C "afterLabel") "Après"}}"><figcaption>{{or (str .C "afterLabel") "Après"}}</figcaption></figure></div>{{end}}
`
