package preview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/yanizio/sitekit/internal/component"
	"github.com/yanizio/sitekit/internal/preview"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/store"
	"github.com/yanizio/sitekit/internal/tenant"
)

// stack serves the preview routes for whatever host the request names.
// Sessions are opened for tenant "127.0.0.1", which is the host
// httptest.NewServer listens on.
type stack struct {
	mem  *store.Memory
	hub  *preview.Hub
	srv  http.Handler
	sess *preview.Session
	hero section.Section
}

func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()
	cache := tenant.New(tenant.MemoryLoader(mem), 0, 0)
	hub := preview.NewHub(preview.Options{SaveDebounce: -1, ResendInterval: -1}, 0)
	t.Cleanup(func() {
		_ = hub.Close(ctx)
		cache.Close()
	})

	ten, err := cache.Get(ctx, "127.0.0.1")
	if err != nil {
		t.Fatal(err)
	}
	home, err := mem.PageBySlug(ctx, ten.ID(), section.RootSlug)
	if err != nil {
		t.Fatal(err)
	}
	hero := section.New(ten.ID(), home.ID, section.TypeHero, 0, time.Now())
	hero.Content = map[string]any{"titre": "Bonjour atelier"}
	if err := mem.SaveSection(ctx, hero); err != nil {
		t.Fatal(err)
	}
	sess, err := hub.Open(ctx, ten.ID(), home.ID, mem)
	if err != nil {
		t.Fatal(err)
	}

	c := &Component{}
	if err := c.Init(component.Env{Hub: hub}); err != nil {
		t.Fatal(err)
	}
	r := chi.NewRouter()
	r.Use(tenant.Resolve(cache))
	r.Mount("/preview", c.Routes())
	return &stack{mem: mem, hub: hub, srv: r, sess: sess, hero: hero}
}

func TestShell_CarriesNoSectionData(t *testing.T) {
	st := newStack(t)

	rec := httptest.NewRecorder()
	st.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://127.0.0.1/preview/"+st.sess.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("shell = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/preview/"+st.sess.ID+"/ws") {
		t.Fatalf("shell has no socket url: %s", body)
	}
	if strings.Contains(body, "Bonjour atelier") || strings.Contains(body, st.hero.ID) {
		t.Fatalf("shell leaked section data: %s", body)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Fatalf("X-Frame-Options = %q, want SAMEORIGIN", got)
	}

	rec = httptest.NewRecorder()
	st.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://127.0.0.1/preview/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown session = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	st.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://autre.example/preview/"+st.sess.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign tenant = %d, want 404", rec.Code)
	}
}

// readRender reads socket messages until one renders want.
func readRender(t *testing.T, ws *websocket.Conn, want string) string {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, b, err := ws.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", want, err)
		}
		var m browserMsg
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("bad message %s: %v", b, err)
		}
		if m.Type == "render" && strings.Contains(m.HTML, want) {
			return m.HTML
		}
	}
}

func TestSocket_RendersAndRelaysEdits(t *testing.T) {
	st := newStack(t)
	srv := httptest.NewServer(st.srv)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/preview/" + st.sess.ID + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.Close()

	html := readRender(t, ws, `data-section-id="`+st.hero.ID+`"`)
	if !strings.Contains(html, "Bonjour atelier") {
		t.Fatalf("first render lacks content: %s", html)
	}

	edit, _ := json.Marshal(browserMsg{Type: "edit", SectionID: st.hero.ID, Content: map[string]any{"titre": "Salut"}})
	if err := ws.WriteMessage(websocket.TextMessage, edit); err != nil {
		t.Fatal(err)
	}
	readRender(t, ws, "Salut")

	draft := st.sess.Draft()
	if len(draft) != 1 || draft[0].Content["titre"] != "Salut" {
		t.Fatalf("draft = %+v", draft)
	}

	focus, _ := json.Marshal(browserMsg{Type: "focus", SectionID: st.hero.ID})
	if err := ws.WriteMessage(websocket.TextMessage, focus); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		if id, zone := st.sess.Selection(); id == st.hero.ID && zone == section.ZoneBody {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("focus never reached the session")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = ws.Close()
	deadline = time.Now().Add(2 * time.Second)
	for st.sess.Frames() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("frame still mounted after the socket closed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
