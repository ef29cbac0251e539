package component

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fake struct {
	name   string
	inited bool
}

func (f *fake) Name() string         { return f.name }
func (f *fake) Migrations() []string { return []string{"CREATE TABLE " + f.name + " (id INT)"} }
func (f *fake) Init(Env) error       { f.inited = true; return nil }
func (f *fake) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(f.name)) })
	return r
}

func TestMount(t *testing.T) {
	mu.Lock()
	saved := registry
	registry = map[string]Component{}
	mu.Unlock()
	t.Cleanup(func() { mu.Lock(); registry = saved; mu.Unlock() })

	b, a := &fake{name: "beta"}, &fake{name: "alpha"}
	Register(b)
	Register(a)

	r := chi.NewRouter()
	if err := Mount(r, Env{}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if !a.inited || !b.inited {
		t.Fatalf("Init not called")
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/beta/ping", nil))
	if rec.Body.String() != "beta" {
		t.Fatalf("/beta/ping = %q", rec.Body.String())
	}

	ddl := Migrations()
	if len(ddl) != 2 || ddl[0] != "CREATE TABLE alpha (id INT)" {
		t.Fatalf("Migrations = %v, want alpha first", ddl)
	}
}
