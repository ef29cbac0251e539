//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata: a request id, the client address, the preferred
//  UI language, and the arrival time.  The struct is inert, so it is safe
//  to log or JSON-encode.
//
//  Dependencies
//  • github.com/google/uuid      (request ids)
//  • golang.org/x/text/language  (Accept-Language matching)
//

package requestinfo

import (
	"context"
	"net"
	"time"

	"golang.org/x/text/language"
)

// RequestInfo is stored in the request context by Enrich.
type RequestInfo struct {
	ID        string    // X-Request-Id from upstream, or a fresh uuid
	IP        net.IP    // left-most forwarded address, else RemoteAddr
	Lang      string    // "fr" or "en", the editor's UI languages
	Timestamp time.Time // UTC
}

// FallbackLang is used when the request carries no usable preference.
const FallbackLang = "fr"

// supported lists the UI languages, fallback first.
var supported = language.NewMatcher([]language.Tag{language.French, language.English})

type ctxKey struct{}

// FromContext returns the value stored by Enrich, or nil when the
// middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

// LangOf is FromContext(ctx).Lang with the fallback applied.
func LangOf(ctx context.Context) string {
	if info := FromContext(ctx); info != nil && info.Lang != "" {
		return info.Lang
	}
	return FallbackLang
}

// preferredLang matches an Accept-Language header against the supported
// UI languages.
func preferredLang(header string) string {
	if header == "" {
		return FallbackLang
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return FallbackLang
	}
	tag, _, _ := supported.Match(tags...)
	base, _ := tag.Base()
	return base.String()
}
