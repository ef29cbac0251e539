package preview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/sitekit/internal/metrics"
	"github.com/yanizio/sitekit/internal/store"
)

// Static defaults for the session hub.
const (
	DefaultIdleTTL = 30 * time.Minute
	flushTimeout   = 15 * time.Second
)

// Hub tracks live sessions by id.  One page has at most one session, so
// two editor tabs on the same page share a draft and a single writer.
type Hub struct {
	opt     Options
	idleTTL time.Duration
	sfg     singleflight.Group

	mu       sync.RWMutex
	sessions map[string]*Session
	byPage   map[string]string // tenant/page → session id

	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewHub starts a hub and its idle evictor.  idleTTL <= 0 disables
// eviction.
func NewHub(opt Options, idleTTL time.Duration) *Hub {
	h := &Hub{
		opt:      opt,
		idleTTL:  idleTTL,
		sessions: map[string]*Session{},
		byPage:   map[string]string{},
		stop:     make(chan struct{}),
	}
	if idleTTL > 0 {
		every := idleTTL / 2
		if every < time.Second {
			every = time.Second
		}
		h.ticker = time.NewTicker(every)
		go h.evictLoop()
	}
	return h
}

func pageKey(tenantID, pageID string) string { return tenantID + "/" + pageID }

// Open returns the session editing pageID, loading the page from st the
// first time.  Concurrent opens of one page share a single load.
func (h *Hub) Open(ctx context.Context, tenantID, pageID string, st store.Store) (*Session, error) {
	key := pageKey(tenantID, pageID)
	if s := h.byKey(key); s != nil {
		return s, nil
	}

	v, err, _ := h.sfg.Do(key, func() (interface{}, error) {
		if s := h.byKey(key); s != nil {
			return s, nil
		}
		list, err := st.LoadSections(ctx, tenantID, pageID)
		if err != nil {
			return nil, err
		}
		s := NewSession(uuid.NewString(), tenantID, pageID, st, list, h.opt)

		h.mu.Lock()
		h.sessions[s.ID] = s
		h.byPage[key] = s.ID
		h.mu.Unlock()

		metrics.EditorSessionsActive.Inc()
		zap.S().Infow("editor session opened", "session", s.ID, "tenant", tenantID, "page", pageID, "sections", len(list))
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (h *Hub) byKey(key string) *Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if id, ok := h.byPage[key]; ok {
		return h.sessions[id]
	}
	return nil
}

// Get looks a session up by id.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Drop flushes and removes one session.  The session stays mapped until
// the save returns, so an Open racing the drop reuses it instead of
// loading pre-save rows into a second draft.
func (h *Hub) Drop(ctx context.Context, id string) error {
	s, ok := h.Get(id)
	if !ok {
		return nil
	}
	err := s.Save(ctx)
	if h.unmap(id) {
		s.Close()
		metrics.EditorSessionsActive.Dec()
	}
	return err
}

// Discard removes the session editing pageID without saving it.  Used
// when the page itself is deleted: flushing the draft would re-insert the
// page's sections.
func (h *Hub) Discard(tenantID, pageID string) {
	s := h.byKey(pageKey(tenantID, pageID))
	if s == nil || !h.unmap(s.ID) {
		return
	}
	s.Close()
	metrics.EditorSessionsActive.Dec()
	zap.S().Infow("editor session discarded", "session", s.ID, "tenant", tenantID, "page", pageID)
}

func (h *Hub) unmap(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	if !ok {
		return false
	}
	delete(h.sessions, id)
	delete(h.byPage, pageKey(s.TenantID, s.PageID))
	return true
}

func (h *Hub) evictLoop() {
	for {
		select {
		case <-h.ticker.C:
			h.evictIdle(time.Now())
		case <-h.stop:
			return
		}
	}
}

// evictIdle drops sessions with no mounted frame that have been idle past
// the TTL.  Each one is saved first.
func (h *Hub) evictIdle(now time.Time) {
	h.mu.RLock()
	var idle []string
	for id, s := range h.sessions {
		if s.Frames() == 0 && now.Sub(s.LastUsed()) > h.idleTTL {
			idle = append(idle, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range idle {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		if err := h.Drop(ctx, id); err != nil {
			zap.S().Warnw("evicted session failed to flush", "session", id, "err", err)
		} else {
			zap.S().Infow("editor session evicted", "session", id)
		}
		cancel()
	}
}

// Close flushes and closes every session and stops the evictor.
func (h *Hub) Close(ctx context.Context) error {
	h.once.Do(func() {
		close(h.stop)
		if h.ticker != nil {
			h.ticker.Stop()
		}
	})
	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if err := h.Drop(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
