package preview

import (
	"context"
	"encoding/json"
	"html/template"

	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/metrics"
	"github.com/yanizio/sitekit/internal/preview"
)

// browserMsg is the socket's own envelope.  The server sends "render";
// the page sends "focus", "edit", and "sync".
type browserMsg struct {
	Type      string         `json:"type"`
	HTML      string         `json:"html,omitempty"`
	SectionID string         `json:"sectionId,omitempty"`
	Content   map[string]any `json:"content,omitempty"`
}

// relay bridges one browser connection to session s through a server-side
// Frame.  It returns when the browser goes away or ctx ends, and leaves
// the session with one fewer mounted frame.
func relay(ctx context.Context, s *preview.Session, browser preview.Conn, renderCache int) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hostEnd, frameEnd := preview.Pipe()
	h := s.MountPreview(hostEnd)
	defer h.Close()
	defer frameEnd.Close()

	f := preview.NewFrame(frameEnd,
		preview.WithRenderCache(renderCache),
		preview.WithRenderHook(func(html template.HTML) {
			b, err := json.Marshal(browserMsg{Type: "render", HTML: string(html)})
			if err != nil {
				return
			}
			if err := browser.WriteMessage(ctx, b); err != nil {
				cancel()
			}
		}),
	)
	if err := f.Start(ctx); err != nil {
		return
	}
	go func() {
		_ = f.Serve(ctx)
		cancel()
	}()

	for {
		b, err := browser.ReadMessage(ctx)
		if err != nil {
			return
		}
		var m browserMsg
		if err := json.Unmarshal(b, &m); err != nil {
			metrics.PreviewDropped.WithLabelValues("malformed").Inc()
			continue
		}
		switch m.Type {
		case "focus":
			err = f.Focus(ctx, m.SectionID)
		case "edit":
			err = f.EditContent(ctx, m.SectionID, m.Content)
		case "sync":
			err = f.RequestSync(ctx)
		default:
			metrics.PreviewDropped.WithLabelValues("unknown-type").Inc()
			continue
		}
		if err != nil {
			zap.S().Debugw("browser event rejected", "session", s.ID, "type", m.Type, "err", err)
		}
	}
}
