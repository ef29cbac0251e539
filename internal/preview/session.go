// internal/preview/session.go
//
// Host side of the preview channel: one editing session over one page.
//
// Context
// -------
// A Session owns the authoritative draft for a page: the page's sections
// plus the tenant's global sections.  It is the only writer of structure.
// Frames are mounted as connections and receive full lists; they may send
// back focus requests and inline content edits, which are merged into a
// single section by id.
//
// Workflow
// --------
//   - MountPreview attaches a Conn and sends PREVIEW_LOAD_PAGE right away.
//   - Every structural change commits history and broadcasts
//     PREVIEW_UPDATE_LIST with a new seq.
//   - Frames answer each applied list with PREVIEW_ACK{seq}.  A ticker
//     resends the current list to any mounted frame whose ack lags, and
//     PREVIEW_READY or PREVIEW_REQUEST_SYNC trigger an immediate resend.
//   - PREVIEW_UPDATE_CONTENT merges top-level keys into one section's
//     content, commits a coalesced history entry, and arms the debounced
//     save.
//
// Notes
// -----
//   - Broadcasts never block: each connection has a bounded queue and a
//     writer goroutine.  A full queue drops the message; the resend ticker
//     catches the frame up.
//   - A section's type never changes.  SendUpdate keeps the stored type
//     when a list retags an existing id.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/history"
	"github.com/yanizio/sitekit/internal/metrics"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/store"
)

var (
	ErrUnknownSection = errors.New("preview: unknown section")
	ErrBadField       = errors.New("preview: unsupported field")
	ErrNoPresets      = errors.New("preview: no preset catalog")
)

// Presets fills a new section's content from a named preset.
type Presets interface {
	Apply(id string, content map[string]any) error
}

// Options tunes a Session.  Zero values take the defaults below.
type Options struct {
	MaxHistory     int
	CoalesceWindow time.Duration
	SaveDebounce   time.Duration // < 0 disables autosave
	ResendInterval time.Duration // < 0 disables the resend ticker
	Presets        Presets
	Clock          func() time.Time
}

const (
	DefaultSaveDebounce   = time.Second
	DefaultResendInterval = 2 * time.Second
	saveTimeout           = 10 * time.Second
)

func (o Options) withDefaults() Options {
	if o.MaxHistory <= 0 {
		o.MaxHistory = history.DefaultMax
	}
	if o.CoalesceWindow <= 0 {
		o.CoalesceWindow = history.DefaultWindow
	}
	if o.SaveDebounce == 0 {
		o.SaveDebounce = DefaultSaveDebounce
	}
	if o.ResendInterval == 0 {
		o.ResendInterval = DefaultResendInterval
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Session is one editor's live draft of a page.
type Session struct {
	ID       string
	TenantID string
	PageID   string

	store store.Store
	opt   Options
	hist  *history.Stack[[]section.Section]
	log   *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	saveMu sync.Mutex

	mu        sync.Mutex
	draft     []section.Section
	persisted map[string]bool
	selected  string
	zone      section.Zone
	seq       uint64
	handles   map[*Handle]struct{}
	saveTimer *time.Timer
	lastUsed  time.Time
	closed    bool
}

// NewSession builds a session over sections, which the caller loaded from
// st.  The loaded list becomes the first history entry.
func NewSession(id, tenantID, pageID string, st store.Store, sections []section.Section, opt Options) *Session {
	opt = opt.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:        id,
		TenantID:  tenantID,
		PageID:    pageID,
		store:     st,
		opt:       opt,
		hist:      history.New(opt.MaxHistory, section.CloneList, history.WithWindow(opt.CoalesceWindow), history.WithClock(opt.Clock)),
		log:       zap.S().With("session", id, "tenant", tenantID, "page", pageID),
		ctx:       ctx,
		cancel:    cancel,
		draft:     section.CloneList(sections),
		persisted: make(map[string]bool, len(sections)),
		zone:      section.ZoneBody,
		handles:   map[*Handle]struct{}{},
		lastUsed:  opt.Clock(),
	}
	section.Sort(s.draft)
	for _, x := range s.draft {
		s.persisted[x.ID] = true
	}
	s.hist.Commit(s.draft)
	if opt.ResendInterval > 0 {
		go s.resendLoop(opt.ResendInterval)
	}
	return s
}

/*──────────────────────────── mounting ─────────────────────────────────────*/

const handleQueue = 32

// Handle is one mounted frame connection.
type Handle struct {
	s     *Session
	conn  Conn
	out   chan []byte
	acked atomic.Uint64
	stale atomic.Bool // a live update was dropped since the last list
	done  chan struct{}
	once  sync.Once
}

// Acked is the highest list seq the frame acknowledged.
func (h *Handle) Acked() uint64 { return h.acked.Load() }

// Done is closed when the handle is detached.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Close detaches the frame and closes its connection.
func (h *Handle) Close() error {
	var err error
	h.once.Do(func() {
		close(h.done)
		err = h.conn.Close()
		h.s.detach(h)
	})
	return err
}

func (h *Handle) ack(seq uint64) {
	for {
		cur := h.acked.Load()
		if seq <= cur || h.acked.CompareAndSwap(cur, seq) {
			return
		}
	}
}

func (h *Handle) enqueue(b []byte, t Type) bool {
	if b == nil {
		return false
	}
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.out <- b:
		metrics.PreviewMessages.WithLabelValues("out", string(t)).Inc()
		return true
	default:
		metrics.PreviewDropped.WithLabelValues("backpressure").Inc()
		return false
	}
}

func (h *Handle) writeLoop() {
	for {
		select {
		case <-h.done:
			return
		case <-h.s.ctx.Done():
			h.Close()
			return
		case b := <-h.out:
			if err := h.conn.WriteMessage(h.s.ctx, b); err != nil {
				h.s.log.Debugw("preview write failed", "err", err)
				h.Close()
				return
			}
		}
	}
}

func (h *Handle) readLoop() {
	for {
		b, err := h.conn.ReadMessage(h.s.ctx)
		if err != nil {
			h.Close()
			return
		}
		m, err := Decode(b)
		if err != nil {
			metrics.PreviewDropped.WithLabelValues(dropReason(err)).Inc()
			h.s.log.Warnw("preview message dropped", "err", err)
			continue
		}
		metrics.PreviewMessages.WithLabelValues("in", string(m.Type)).Inc()
		h.s.handleFrame(h, m)
	}
}

// MountPreview attaches conn and sends it the current list without
// waiting for PREVIEW_READY.  If that first send lands before the frame
// listens, READY or the resend ticker deliver it again.
func (s *Session) MountPreview(conn Conn) *Handle {
	h := &Handle{s: s, conn: conn, out: make(chan []byte, handleQueue), done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		h.Close()
		return h
	}
	s.handles[h] = struct{}{}
	s.seq++
	h.enqueue(s.listLocked(TypeLoadPage), TypeLoadPage)
	s.touchLocked()
	n := len(s.handles)
	s.mu.Unlock()

	s.log.Debugw("preview mounted", "frames", n)
	go h.writeLoop()
	go h.readLoop()
	return h
}

func (s *Session) detach(h *Handle) {
	s.mu.Lock()
	delete(s.handles, h)
	s.mu.Unlock()
}

// Frames reports how many frames are mounted.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

/*──────────────────────────── frame messages ───────────────────────────────*/

func (s *Session) handleFrame(h *Handle, m Message) {
	var err error
	switch m.Type {
	case TypeReady, TypeRequestSync:
		s.mu.Lock()
		h.enqueue(s.listLocked(TypeLoadPage), TypeLoadPage)
		s.mu.Unlock()
	case TypeAck:
		h.ack(m.Seq)
	case TypeFocus:
		err = s.Focus(m.SectionID)
	case TypeUpdateContent:
		err = s.MergeContent(m.SectionID, m.Content)
	default:
		metrics.PreviewDropped.WithLabelValues("direction").Inc()
		s.log.Warnw("frame sent a host-only message", "type", m.Type)
		return
	}
	if err != nil {
		metrics.PreviewDropped.WithLabelValues("unknown-section").Inc()
		s.log.Warnw("frame message rejected", "type", m.Type, "section", m.SectionID, "err", err)
	}
}

// Focus selects section id and moves the editor to its zone.
func (s *Session) Focus(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := section.Index(s.draft, id)
	if i < 0 {
		return fmt.Errorf("focus %q: %w", id, ErrUnknownSection)
	}
	s.selected = id
	s.zone = section.ZoneOf(s.draft[i].Type)
	s.touchLocked()
	return nil
}

// MergeContent shallow-merges content into section id.  Incoming keys
// win and every other key, and every other section, is left as is.
func (s *Session) MergeContent(id string, content map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := section.Index(s.draft, id)
	if i < 0 {
		return fmt.Errorf("merge content %q: %w", id, ErrUnknownSection)
	}
	merged := section.CloneMap(s.draft[i].Content)
	if merged == nil {
		merged = map[string]any{}
	}
	for k, v := range content {
		merged[k] = section.CloneValue(v)
	}
	s.draft[i].Content = merged
	s.draft[i].UpdatedAt = s.opt.Clock()

	s.hist.CommitCoalesced(id+":content", s.draft)
	s.scheduleSaveLocked()
	s.broadcastLocked(TypeUpdateList)
	s.touchLocked()
	return nil
}

/*──────────────────────────── host operations ──────────────────────────────*/

// SendUpdate replaces the draft with sections, a host-originated change,
// and broadcasts it.  Existing ids keep their stored type.  Sections of
// another tenant are dropped; the rest are stamped with the session's
// tenant and, unless global, its page.
func (s *Session) SendUpdate(sections []section.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make(map[string]section.Type, len(s.draft))
	for _, x := range s.draft {
		types[x.ID] = x.Type
	}
	next := make([]section.Section, 0, len(sections))
	for _, x := range sections {
		if x.TenantID != "" && x.TenantID != s.TenantID {
			s.log.Warnw("foreign section dropped from update", "section", x.ID, "tenant", x.TenantID)
			continue
		}
		x = section.Clone(x)
		x.TenantID = s.TenantID
		if !x.Global() {
			x.PageID = s.PageID
		}
		next = append(next, x)
	}
	for i := range next {
		if t, ok := types[next[i].ID]; ok && t != next[i].Type {
			s.log.Warnw("section type change ignored", "section", next[i].ID, "type", t, "requested", next[i].Type)
			next[i].Type = t
		}
	}
	section.Sort(next)
	s.draft = next
	s.fixSelectionLocked()
	s.commitLocked()
}

// AddSection appends a new section of type t.  Header and footer types
// are created as global sections; everything else belongs to the page.
// presetID, when set, seeds the block list.
func (s *Session) AddSection(t section.Type, presetID string) (section.Section, error) {
	typ := section.ParseType(string(t))
	pageID := s.PageID
	if section.ZoneOf(typ) != section.ZoneBody {
		pageID = ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var siblings []section.Section
	for _, x := range s.draft {
		if x.PageID == pageID {
			siblings = append(siblings, x)
		}
	}
	ns := section.New(s.TenantID, pageID, typ, section.NextOrder(siblings), s.opt.Clock())
	if presetID != "" {
		if s.opt.Presets == nil {
			return section.Section{}, ErrNoPresets
		}
		if err := s.opt.Presets.Apply(presetID, ns.Content); err != nil {
			return section.Section{}, err
		}
	}
	s.draft = append(s.draft, ns)
	section.Sort(s.draft)
	s.selected, s.zone = ns.ID, section.ZoneOf(typ)
	s.commitLocked()
	return section.Clone(ns), nil
}

// RemoveSection drops id from the draft.  The store row goes on Save.
func (s *Session) RemoveSection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := section.Index(s.draft, id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrUnknownSection)
	}
	s.draft = append(s.draft[:i:i], s.draft[i+1:]...)
	s.fixSelectionLocked()
	s.commitLocked()
	return nil
}

// Reorder puts the page's own sections in ids order.  Page sections not
// named in ids follow in their current order; globals are untouched.
func (s *Session) Reorder(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var page []section.Section
	for _, x := range s.draft {
		if x.PageID == s.PageID && !x.Global() {
			page = append(page, x)
		}
	}
	section.Sort(page)

	seen := make(map[string]bool, len(ids))
	ordered := make([]section.Section, 0, len(page))
	for _, id := range ids {
		i := section.Index(page, id)
		if i < 0 || seen[id] {
			return fmt.Errorf("reorder %q: %w", id, ErrUnknownSection)
		}
		seen[id] = true
		ordered = append(ordered, page[i])
	}
	for _, x := range page {
		if !seen[x.ID] {
			ordered = append(ordered, x)
		}
	}

	now := s.opt.Clock()
	for pos, x := range ordered {
		i := section.Index(s.draft, x.ID)
		s.draft[i].Order = float64(pos)
		s.draft[i].UpdatedAt = now
	}
	section.Sort(s.draft)
	s.commitLocked()
	return nil
}

// EditField sets one field from the editor form.  field is "name",
// "isActive", or "<scope>.<key>" with scope content, design, effects, or
// textSettings; a bare key means content.  Consecutive edits of one field
// coalesce into one undo step until Blur.
func (s *Session) EditField(id, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := section.Index(s.draft, id)
	if i < 0 {
		return fmt.Errorf("edit %q: %w", id, ErrUnknownSection)
	}
	x := &s.draft[i]

	scope, key := "content", field
	if dot := strings.IndexByte(field, '.'); dot >= 0 {
		scope, key = field[:dot], field[dot+1:]
	} else if field == "name" || field == "isActive" {
		scope = field
	}
	if key == "" {
		return fmt.Errorf("edit %q: %w: %q", id, ErrBadField, field)
	}

	var target *map[string]any
	switch scope {
	case "name":
		name, _ := value.(string)
		x.Name = name
	case "isActive":
		active, ok := value.(bool)
		if !ok {
			return fmt.Errorf("edit %q: %w: isActive wants a bool", id, ErrBadField)
		}
		x.Active = active
	case "content":
		target = &x.Content
	case "design":
		target = &x.Design
	case "effects":
		target = &x.Effects
	case "textSettings":
		target = &x.TextSettings
	default:
		return fmt.Errorf("edit %q: %w: %q", id, ErrBadField, field)
	}
	if target != nil {
		m := section.CloneMap(*target)
		if m == nil {
			m = map[string]any{}
		}
		m[key] = section.CloneValue(value)
		*target = m
	}
	x.UpdatedAt = s.opt.Clock()
	s.hist.CommitCoalesced(id+":"+field, s.draft)
	s.touchLocked()

	if scope == "content" {
		// Live single-section update; the list seq does not move.
		b, err := Encode(Message{Type: TypeUpdate, SectionID: id, Content: x.Content})
		if err != nil {
			s.log.Errorw("encode update failed", "section", id, "err", err)
			return nil
		}
		for h := range s.handles {
			if !h.enqueue(b, TypeUpdate) {
				h.stale.Store(true)
			}
		}
		return nil
	}
	s.broadcastLocked(TypeUpdateList)
	return nil
}

// Blur ends the current coalescing group, so the next edit of the same
// field starts a new undo step.
func (s *Session) Blur() { s.hist.Boundary() }

// Undo restores the previous draft.  It reports false when there is
// nothing to undo.
func (s *Session) Undo() bool { return s.restore(s.hist.Undo) }

// Redo re-applies the last undone draft.
func (s *Session) Redo() bool { return s.restore(s.hist.Redo) }

func (s *Session) restore(step func() ([]section.Section, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := step()
	if !ok {
		return false
	}
	s.draft = snap
	s.fixSelectionLocked()
	s.broadcastLocked(TypeUpdateList)
	s.touchLocked()
	return true
}

func (s *Session) CanUndo() bool { return s.hist.CanUndo() }
func (s *Session) CanRedo() bool { return s.hist.CanRedo() }

// Draft returns a copy of the current list.
func (s *Session) Draft() []section.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return section.CloneList(s.draft)
}

// Selection returns the selected section id and its zone.
func (s *Session) Selection() (string, section.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.zone
}

// Seq is the sequence number of the latest list broadcast.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// LastUsed is the time of the last host or frame operation.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

/*──────────────────────────── persistence ──────────────────────────────────*/

// Save writes the draft to the store: sections removed since the last
// save are deleted, the rest are upserted.  Errors are joined; sections
// that saved stay saved.
func (s *Session) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	draft := section.CloneList(s.draft)
	prev := make(map[string]bool, len(s.persisted))
	for id := range s.persisted {
		prev[id] = true
	}
	s.mu.Unlock()

	var errs []error
	kept := make(map[string]bool, len(draft))
	inDraft := make(map[string]bool, len(draft))
	for _, x := range draft {
		inDraft[x.ID] = true
	}
	for id := range prev {
		if inDraft[id] {
			continue
		}
		err := s.store.DeleteSection(ctx, s.TenantID, id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			errs = append(errs, err)
			kept[id] = true
		}
	}
	for _, x := range draft {
		if err := s.store.SaveSection(ctx, x); err != nil {
			metrics.SectionSaveErrors.Inc()
			errs = append(errs, err)
			if prev[x.ID] {
				kept[x.ID] = true
			}
			continue
		}
		metrics.SectionSaves.Inc()
		kept[x.ID] = true
	}

	s.mu.Lock()
	s.persisted = kept
	s.mu.Unlock()

	if err := errors.Join(errs...); err != nil {
		s.log.Errorw("session save failed", "err", err)
		return err
	}
	s.log.Debugw("session saved", "sections", len(draft))
	return nil
}

func (s *Session) scheduleSaveLocked() {
	if s.opt.SaveDebounce < 0 || s.closed {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(s.opt.SaveDebounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		_ = s.Save(ctx) // logged inside
	})
}

// Close stops timers and detaches every frame.  It does not save; the
// hub flushes before closing.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	hs := make([]*Handle, 0, len(s.handles))
	for h := range s.handles {
		hs = append(hs, h)
	}
	s.mu.Unlock()

	s.cancel()
	for _, h := range hs {
		h.Close()
	}
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

// commitLocked records a structural change and broadcasts it.
func (s *Session) commitLocked() {
	s.hist.Commit(s.draft)
	s.broadcastLocked(TypeUpdateList)
	s.touchLocked()
}

func (s *Session) broadcastLocked(t Type) {
	s.seq++
	b := s.listLocked(t)
	for h := range s.handles {
		h.enqueue(b, t)
	}
}

// listLocked encodes the draft at the current seq.
func (s *Session) listLocked(t Type) []byte {
	b, err := Encode(Message{Type: t, Seq: s.seq, Sections: s.draft})
	if err != nil {
		s.log.Errorw("encode list failed", "err", err)
		return nil
	}
	return b
}

func (s *Session) fixSelectionLocked() {
	if s.selected != "" && section.Index(s.draft, s.selected) < 0 {
		s.selected = ""
		s.zone = section.ZoneBody
	}
}

func (s *Session) touchLocked() { s.lastUsed = s.opt.Clock() }

func (s *Session) resendLoop(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-t.C:
			s.resendUnacked()
		}
	}
}

// resendUnacked pushes the current list to frames whose ack lags or that
// missed a live update.
func (s *Session) resendUnacked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b []byte
	for h := range s.handles {
		if h.Acked() >= s.seq && !h.stale.Load() {
			continue
		}
		if b == nil {
			b = s.listLocked(TypeLoadPage)
		}
		if h.enqueue(b, TypeLoadPage) {
			h.stale.Store(false)
		}
	}
}
