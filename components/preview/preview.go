// components/preview/preview.go
//
// Preview component: the frame shell and its socket.
//
// Context
// -------
// The editor embeds GET /preview/{sid} in an iframe.  The shell carries no
// section data; everything arrives over GET /preview/{sid}/ws.
//
// Workflow
// --------
//  1. The socket handler upgrades, wraps the socket in preview.WSConn
//     (origin check, rate limit), and calls relay.
//  2. relay mounts one end of an in-process pipe on the session and runs a
//     preview.Frame on the other.  The frame renders every list it applies
//     and the render hook pushes the markup to the browser.
//  3. Browser clicks and inline edits come back as small JSON messages and
//     go through Frame.Focus and Frame.EditContent, so the host sees the
//     same PREVIEW_* traffic whatever the transport.
//
// Notes
// -----
//   - Both routes allow same-origin framing and nothing else.
package preview

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/component"
	"github.com/yanizio/sitekit/internal/head"
	"github.com/yanizio/sitekit/internal/middleware"
	"github.com/yanizio/sitekit/internal/preview"
	"github.com/yanizio/sitekit/internal/requestinfo"
	"github.com/yanizio/sitekit/internal/tenant"
	"github.com/yanizio/sitekit/internal/view"
)

// Component implements component.Component.
type Component struct {
	env      component.Env
	upgrader *websocket.Upgrader

	rate        float64
	burst       int
	renderCache int
}

func init() { component.Register(&Component{}) }

func (c *Component) Name() string         { return "preview" }
func (c *Component) Migrations() []string { return nil }

func (c *Component) Init(env component.Env) error {
	c.env = env
	var origins []string
	if cfg := env.Config; cfg != nil {
		origins = cfg.Preview.AllowedOrigins
		c.rate, c.burst, c.renderCache = cfg.Preview.RatePerSecond, cfg.Preview.Burst, cfg.Preview.RenderCache
	}
	c.upgrader = preview.NewUpgrader(origins)
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.SameOriginFrames)
	r.Get("/{sid}", c.shell)
	r.Get("/{sid}/ws", c.socket)
	return r
}

func (c *Component) session(r *http.Request) (*preview.Session, bool) {
	t := tenant.FromContext(r.Context())
	s, ok := c.env.Hub.Get(chi.URLParam(r, "sid"))
	if !ok || t == nil || s.TenantID != t.ID() {
		return nil, false
	}
	return s, true
}

func (c *Component) shell(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h := head.New()
	h.SetTitle("Aperçu")
	h.Meta("robots", "noindex")
	h.Stylesheet("/static/sitekit.css")
	h.Script("/static/preview.js")
	err := view.Render(w, "preview", view.Page{
		Head: h,
		Lang: requestinfo.LangOf(r.Context()),
		Data: map[string]string{"SessionID": s.ID},
	})
	if err != nil {
		zap.L().Error("preview shell render failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (c *Component) socket(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		zap.S().Debugw("preview upgrade failed", "session", s.ID, "err", err)
		return
	}
	browser := preview.NewWSConn(ws, c.rate, c.burst)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-ctx.Done()
		_ = browser.Close()
	}()
	relay(ctx, s, browser, c.renderCache)
}
