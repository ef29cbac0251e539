package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/head"
	"github.com/yanizio/sitekit/internal/preset"
	"github.com/yanizio/sitekit/internal/preview"
	"github.com/yanizio/sitekit/internal/requestinfo"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/store"
	"github.com/yanizio/sitekit/internal/tenant"
	"github.com/yanizio/sitekit/internal/view"
)

const maxBody = 1 << 20

// errBadRequest wraps decode and validation failures.
var errBadRequest = errors.New("bad request")

/*──────────────────────────── request bodies ───────────────────────────────*/

type createPageReq struct {
	Name           string `json:"name"           validate:"required,max=120"`
	Slug           string `json:"slug"           validate:"omitempty,max=120,slug"`
	Published      bool   `json:"isPublished"`
	SEOTitle       string `json:"seoTitle"       validate:"max=256"`
	SEODescription string `json:"seoDescription" validate:"max=512"`
}

type openSessionReq struct {
	PageID string `json:"pageId" validate:"required"`
}

type addSectionReq struct {
	Type     string `json:"type"     validate:"required,section_type"`
	PresetID string `json:"presetId" validate:"omitempty,max=64"`
}

type editReq struct {
	Field string `json:"field" validate:"required,max=128"`
	Value any    `json:"value"`
	Blur  bool   `json:"blur"`
}

type orderReq struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// sessionState is what every session route answers with.
type sessionState struct {
	SessionID string            `json:"sessionId"`
	PageID    string            `json:"pageId"`
	Sections  []section.Section `json:"sections"`
	Selected  string            `json:"selected,omitempty"`
	Zone      section.Zone      `json:"zone"`
	Seq       uint64            `json:"seq"`
	CanUndo   bool              `json:"canUndo"`
	CanRedo   bool              `json:"canRedo"`
}

func stateOf(s *preview.Session) sessionState {
	sel, zone := s.Selection()
	return sessionState{
		SessionID: s.ID,
		PageID:    s.PageID,
		Sections:  s.Draft(),
		Selected:  sel,
		Zone:      zone,
		Seq:       s.Seq(),
		CanUndo:   s.CanUndo(),
		CanRedo:   s.CanRedo(),
	}
}

/*──────────────────────────── shell ────────────────────────────────────────*/

type shellData struct {
	Pages     []section.Page
	PageID    string
	SessionID string
}

func (c *Component) shell(w http.ResponseWriter, r *http.Request) {
	t := tenant.FromContext(r.Context())
	pages, err := t.Store.Pages(r.Context(), t.ID())
	if err != nil {
		writeError(w, err)
		return
	}
	data := shellData{Pages: pages}
	if id := r.URL.Query().Get("page"); id != "" && hasPage(pages, id) {
		s, err := c.env.Hub.Open(r.Context(), t.ID(), id, t.Store)
		if err != nil {
			writeError(w, err)
			return
		}
		data.PageID, data.SessionID = id, s.ID
	}

	h := head.New()
	h.SetTitle("Éditeur · " + t.Meta.Title)
	h.Meta("robots", "noindex")
	h.Stylesheet("/static/sitekit.css")
	h.Script("/static/editor.js")
	if err := view.Render(w, "editor", view.Page{Head: h, Lang: requestinfo.LangOf(r.Context()), Data: data}); err != nil {
		writeError(w, err)
	}
}

/*──────────────────────────── pages ────────────────────────────────────────*/

func (c *Component) listPages(w http.ResponseWriter, r *http.Request) {
	t := tenant.FromContext(r.Context())
	pages, err := t.Store.Pages(r.Context(), t.ID())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (c *Component) createPage(w http.ResponseWriter, r *http.Request) {
	var req createPageReq
	if err := c.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	t := tenant.FromContext(r.Context())
	pages, err := t.Store.Pages(r.Context(), t.ID())
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := t.Store.CreatePage(r.Context(), section.Page{
		TenantID:       t.ID(),
		Slug:           req.Slug,
		Name:           req.Name,
		Published:      req.Published,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Order:          len(pages),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	zap.S().Infow("page created", "tenant", t.ID(), "page", p.ID, "slug", p.Slug)
	writeJSON(w, http.StatusCreated, p)
}

func (c *Component) deletePage(w http.ResponseWriter, r *http.Request) {
	t := tenant.FromContext(r.Context())
	id := chi.URLParam(r, "id")
	if err := t.Store.DeletePage(r.Context(), t.ID(), id); err != nil {
		writeError(w, err)
		return
	}
	c.env.Hub.Discard(t.ID(), id)
	zap.S().Infow("page deleted", "tenant", t.ID(), "page", id)
	w.WriteHeader(http.StatusNoContent)
}

func (c *Component) listPresets(w http.ResponseWriter, _ *http.Request) {
	out := []preset.Preset{}
	if c.env.Presets != nil {
		for _, id := range c.env.Presets.IDs() {
			if p, ok := c.env.Presets.Lookup(id); ok {
				out = append(out, p)
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

/*──────────────────────────── sessions ─────────────────────────────────────*/

func (c *Component) openSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionReq
	if err := c.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	t := tenant.FromContext(r.Context())
	pages, err := t.Store.Pages(r.Context(), t.ID())
	if err != nil {
		writeError(w, err)
		return
	}
	if !hasPage(pages, req.PageID) {
		writeError(w, fmt.Errorf("page %q: %w", req.PageID, store.ErrNotFound))
		return
	}
	s, err := c.env.Hub.Open(r.Context(), t.ID(), req.PageID, t.Store)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": s.ID})
}

// session resolves {sid} for the request's tenant, answering 404 itself.
func (c *Component) session(w http.ResponseWriter, r *http.Request) (*preview.Session, bool) {
	t := tenant.FromContext(r.Context())
	s, ok := c.env.Hub.Get(chi.URLParam(r, "sid"))
	if !ok || s.TenantID != t.ID() {
		writeError(w, fmt.Errorf("session: %w", store.ErrNotFound))
		return nil, false
	}
	return s, true
}

func (c *Component) getSession(w http.ResponseWriter, r *http.Request) {
	if s, ok := c.session(w, r); ok {
		writeJSON(w, http.StatusOK, stateOf(s))
	}
}

func (c *Component) closeSession(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := c.env.Hub.Drop(r.Context(), s.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Component) addSection(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	var req addSectionReq
	if err := c.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.AddSection(section.ParseType(req.Type), req.PresetID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stateOf(s))
}

func (c *Component) removeSection(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := s.RemoveSection(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

func (c *Component) editSection(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	var req editReq
	if err := c.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.EditField(chi.URLParam(r, "id"), req.Field, req.Value); err != nil {
		writeError(w, err)
		return
	}
	if req.Blur {
		s.Blur()
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

func (c *Component) focusSection(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := s.Focus(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

func (c *Component) reorder(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	var req orderReq
	if err := c.decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := s.Reorder(req.IDs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

func (c *Component) undo(w http.ResponseWriter, r *http.Request) {
	if s, ok := c.session(w, r); ok {
		s.Undo()
		writeJSON(w, http.StatusOK, stateOf(s))
	}
}

func (c *Component) redo(w http.ResponseWriter, r *http.Request) {
	if s, ok := c.session(w, r); ok {
		s.Redo()
		writeJSON(w, http.StatusOK, stateOf(s))
	}
}

func (c *Component) save(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	if err := s.Save(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stateOf(s))
}

/*──────────────────────────── helpers ──────────────────────────────────────*/

func hasPage(pages []section.Page, id string) bool {
	for _, p := range pages {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (c *Component) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinels to status codes.  Anything unrecognised is a
// 500 and gets logged.
func writeError(w http.ResponseWriter, err error) {
	var verr validator.ValidationErrors
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest), errors.As(err, &verr),
		errors.Is(err, preview.ErrBadField), errors.Is(err, preview.ErrNoPresets),
		errors.Is(err, preset.ErrUnknown):
		code = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, preview.ErrUnknownSection):
		code = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateSlug), errors.Is(err, store.ErrRootPage),
		errors.Is(err, store.ErrTypeImmutable):
		code = http.StatusConflict
	default:
		zap.L().Error("editor request failed", zap.Error(err))
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
