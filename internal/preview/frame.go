// internal/preview/frame.go
//
// Frame side of the preview channel.
//
// Context
// -------
// A Frame mirrors the host's draft and renders it.  It never decides
// structure: lists arrive whole from the host and replace what the frame
// had.  The only things a frame originates are focus requests and inline
// content edits, and those go to the host rather than into local state.
//
// Workflow
// --------
//  1. NewFrame → Booting.  HTML() is the loading placeholder and host
//     messages are dropped, like a page whose listener is not attached.
//  2. Start → Ready.  PREVIEW_READY is sent exactly once.
//  3. PREVIEW_LOAD_PAGE / PREVIEW_UPDATE_LIST → Synced.  The list is
//     replaced and the frame answers PREVIEW_ACK{seq}.
//  4. PREVIEW_UPDATE swaps one section's content while Synced.
//
// Notes
// -----
//   - Rendered section HTML is cached by the section's JSON encoding, so
//     an UPDATE_LIST that touches one section re-renders one section.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/cache"
	"github.com/yanizio/sitekit/internal/metrics"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/variant"
)

// State is the frame lifecycle.
type State int32

const (
	Booting State = iota
	Ready
	Synced
)

func (s State) String() string {
	switch s {
	case Booting:
		return "BOOTING"
	case Ready:
		return "READY"
	case Synced:
		return "SYNCED"
	}
	return "UNKNOWN"
}

// LoadingPlaceholder is what a frame shows until its first list lands.
const LoadingPlaceholder = template.HTML(`<div class="preview-loading">Chargement de la page...</div>`)

const defaultRenderCache = 256

// Frame is the preview-side endpoint.
type Frame struct {
	conn     Conn
	cache    *cache.LRU[string, template.HTML]
	onRender func(template.HTML)

	mu       sync.Mutex
	state    State
	sections []section.Section
	seq      uint64

	ready sync.Once
}

// FrameOption configures a Frame.
type FrameOption func(*Frame)

// WithRenderHook is called with the full page HTML after every applied
// host message.  The preview socket uses it to push markup to the browser.
func WithRenderHook(fn func(template.HTML)) FrameOption {
	return func(f *Frame) { f.onRender = fn }
}

// WithRenderCache sets the number of rendered sections kept.
func WithRenderCache(n int) FrameOption {
	return func(f *Frame) {
		if n > 0 {
			f.cache = cache.New[string, template.HTML](n)
		}
	}
}

// NewFrame returns a Booting frame talking to the host over conn.
func NewFrame(conn Conn, opts ...FrameOption) *Frame {
	f := &Frame{conn: conn, cache: cache.New[string, template.HTML](defaultRenderCache)}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Start marks the frame Ready and announces it.  Later calls do nothing.
func (f *Frame) Start(ctx context.Context) error {
	var err error
	f.ready.Do(func() {
		f.mu.Lock()
		f.state = Ready
		f.mu.Unlock()
		err = f.send(ctx, Message{Type: TypeReady})
	})
	return err
}

// Serve applies host messages until ctx ends or the connection closes.
func (f *Frame) Serve(ctx context.Context) error {
	for {
		b, err := f.conn.ReadMessage(ctx)
		if err != nil {
			return err
		}
		m, err := Decode(b)
		if err != nil {
			metrics.PreviewDropped.WithLabelValues(dropReason(err)).Inc()
			zap.S().Warnw("frame dropped message", "err", err)
			continue
		}
		f.apply(ctx, m)
	}
}

func (f *Frame) apply(ctx context.Context, m Message) {
	f.mu.Lock()
	if f.state == Booting {
		f.mu.Unlock()
		metrics.PreviewDropped.WithLabelValues("not-ready").Inc()
		return
	}

	var ack bool
	switch m.Type {
	case TypeLoadPage, TypeUpdateList:
		f.sections = section.CloneList(m.Sections)
		f.seq = m.Seq
		f.state = Synced
		ack = true
	case TypeUpdate:
		i := section.Index(f.sections, m.SectionID)
		if f.state != Synced || i < 0 {
			f.mu.Unlock()
			metrics.PreviewDropped.WithLabelValues("unknown-section").Inc()
			return
		}
		f.sections[i].Content = section.CloneMap(m.Content)
	default:
		f.mu.Unlock()
		metrics.PreviewDropped.WithLabelValues("direction").Inc()
		zap.S().Warnw("frame got a frame-bound message type", "type", m.Type)
		return
	}
	seq := f.seq
	f.mu.Unlock()

	if ack {
		if err := f.send(ctx, Message{Type: TypeAck, Seq: seq}); err != nil {
			zap.S().Debugw("frame ack failed", "seq", seq, "err", err)
		}
	}
	if f.onRender != nil {
		f.onRender(f.HTML())
	}
}

// RequestSync asks the host to resend its current list.
func (f *Frame) RequestSync(ctx context.Context) error {
	return f.send(ctx, Message{Type: TypeRequestSync})
}

// Focus tells the host the user picked section id.
func (f *Frame) Focus(ctx context.Context, id string) error {
	if !f.has(id) {
		return ErrUnknownSection
	}
	return f.send(ctx, Message{Type: TypeFocus, SectionID: id})
}

// EditContent forwards an inline edit.  Local state is left alone; the
// change comes back from the host like any other.
func (f *Frame) EditContent(ctx context.Context, id string, content map[string]any) error {
	if !f.has(id) {
		return ErrUnknownSection
	}
	return f.send(ctx, Message{Type: TypeUpdateContent, SectionID: id, Content: section.CloneMap(content)})
}

func (f *Frame) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return section.Index(f.sections, id) >= 0
}

func (f *Frame) send(ctx context.Context, m Message) error {
	b, err := Encode(m)
	if err != nil {
		return err
	}
	return f.conn.WriteMessage(ctx, b)
}

// State reports the lifecycle state.
func (f *Frame) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Seq is the sequence number of the last applied list.
func (f *Frame) Seq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// Sections returns a copy of the mirrored list.
func (f *Frame) Sections() []section.Section {
	f.mu.Lock()
	defer f.mu.Unlock()
	return section.CloneList(f.sections)
}

// HTML renders the mirrored page, or the loading placeholder before the
// first list.
func (f *Frame) HTML() template.HTML {
	f.mu.Lock()
	if f.state != Synced {
		f.mu.Unlock()
		return LoadingPlaceholder
	}
	list := section.CloneList(f.sections)
	f.mu.Unlock()

	var buf bytes.Buffer
	for _, s := range section.DisplayOrder(list) {
		if !s.Active {
			continue
		}
		buf.WriteString(string(f.renderSection(s)))
		buf.WriteByte('\n')
	}
	return template.HTML(buf.String())
}

func (f *Frame) renderSection(s section.Section) template.HTML {
	key, err := json.Marshal(s)
	if err != nil {
		return variant.RenderSection(s)
	}
	if h, ok := f.cache.Get(string(key)); ok {
		return h
	}
	h := variant.RenderSection(s)
	f.cache.Add(string(key), h)
	return h
}
