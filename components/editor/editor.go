// components/editor/editor.go
//
// Editor component: page management and the live editing API.
//
// Context
// -------
// Every route runs behind tenant.Resolve, so the tenant (and its store)
// comes from the request context.  Session routes look the session up in
// the preview hub and refuse sessions that belong to another tenant.
//
// Routes (mounted under /editor)
// ------------------------------
//
//	GET    /                              editor shell (?page=<id>)
//	GET    /pages                         list pages
//	POST   /pages                         create page
//	DELETE /pages/{id}                    delete page (not the root)
//	GET    /presets                       section presets
//	POST   /sessions                      open a session {pageId}
//	GET    /sessions/{sid}                draft and history state
//	DELETE /sessions/{sid}                flush and close
//	POST   /sessions/{sid}/sections       add {type, presetId}
//	DELETE /sessions/{sid}/sections/{id}  remove
//	PATCH  /sessions/{sid}/sections/{id}  edit one field {field, value, blur}
//	POST   /sessions/{sid}/sections/{id}/focus
//	PUT    /sessions/{sid}/order          reorder {ids}
//	POST   /sessions/{sid}/undo|redo|save
//
// Notes
// -----
//   - Request bodies are validated with go-playground/validator.
//   - Sentinel errors map to status codes in writeError.
package editor

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/yanizio/sitekit/internal/component"
	"github.com/yanizio/sitekit/internal/routing"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/store"
)

// Component implements component.Component.
type Component struct {
	env      component.Env
	validate *validator.Validate
}

func init() { component.Register(New()) }

// New returns an uninitialised editor.  Init must run before Routes.
func New() *Component {
	v := validator.New()
	_ = v.RegisterValidation("section_type", func(fl validator.FieldLevel) bool {
		return section.ParseType(fl.Field().String()).Known()
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == routing.MakeSlug(s)
	})
	return &Component{validate: v}
}

func (c *Component) Name() string         { return "editor" }
func (c *Component) Migrations() []string { return store.Schema }

func (c *Component) Init(env component.Env) error {
	c.env = env
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.shell)

	r.Get("/pages", c.listPages)
	r.Post("/pages", c.createPage)
	r.Delete("/pages/{id}", c.deletePage)
	r.Get("/presets", c.listPresets)

	r.Post("/sessions", c.openSession)
	r.Route("/sessions/{sid}", func(s chi.Router) {
		s.Get("/", c.getSession)
		s.Delete("/", c.closeSession)
		s.Post("/sections", c.addSection)
		s.Delete("/sections/{id}", c.removeSection)
		s.Patch("/sections/{id}", c.editSection)
		s.Post("/sections/{id}/focus", c.focusSection)
		s.Put("/order", c.reorder)
		s.Post("/undo", c.undo)
		s.Post("/redo", c.redo)
		s.Post("/save", c.save)
	})
	return r
}
