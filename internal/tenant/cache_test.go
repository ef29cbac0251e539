package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/sitekit/internal/database"
	"github.com/yanizio/sitekit/internal/section"
	"github.com/yanizio/sitekit/internal/store"
)

func newCache(t *testing.T, load Loader) *Cache {
	t.Helper()
	c := New(load, time.Minute, 0)
	t.Cleanup(c.Close)
	return c
}

func TestCache_SingleLoadPerHost(t *testing.T) {
	var loads atomic.Int32
	mem := store.NewMemory()
	inner := MemoryLoader(mem)
	c := newCache(t, func(ctx context.Context, host string) (*Tenant, error) {
		loads.Add(1)
		return inner(ctx, host)
	})

	var wg sync.WaitGroup
	got := make([]*Tenant, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = c.Get(context.Background(), "atelier.example:8080")
		}(i)
	}
	wg.Wait()

	for i, ten := range got {
		if ten == nil || ten != got[0] {
			t.Fatalf("tenant %d = %p, want shared %p", i, ten, got[0])
		}
	}
	if n := loads.Load(); n != 1 {
		t.Fatalf("loads = %d, want 1", n)
	}
	if got[0].ID() != "atelier.example" {
		t.Fatalf("ID = %q, want port stripped", got[0].ID())
	}
	if _, err := mem.PageBySlug(context.Background(), "atelier.example", section.RootSlug); err != nil {
		t.Fatalf("root page not seeded: %v", err)
	}
}

func TestCache_EvictsIdleAndLRU(t *testing.T) {
	c := newCache(t, MemoryLoader(store.NewMemory()))
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	c.maxEntries = 1

	ctx := context.Background()
	for _, h := range []string{"a.example", "b.example", "c.example"} {
		if _, err := c.Get(ctx, h); err != nil {
			t.Fatal(err)
		}
		now = now.Add(time.Second)
	}

	// LRU keeps only the most recent host.
	c.sweep()
	if _, ok := c.m.Load("a.example"); ok {
		t.Fatalf("a.example survived LRU pressure")
	}
	if _, ok := c.m.Load("c.example"); !ok {
		t.Fatalf("c.example evicted, want kept")
	}

	now = now.Add(2 * time.Minute)
	c.sweep()
	if _, ok := c.m.Load("c.example"); ok {
		t.Fatalf("c.example survived the idle TTL")
	}
}

func TestResolve(t *testing.T) {
	c := newCache(t, func(ctx context.Context, host string) (*Tenant, error) {
		if host != "atelier.example" {
			return nil, ErrNotFound
		}
		return MemoryLoader(store.NewMemory())(ctx, host)
	})
	h := Resolve(c)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(FromContext(r.Context()).ID()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://atelier.example/editor/pages", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "atelier.example" {
		t.Fatalf("known host: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://nobody.example/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown host: code = %d, want 404", rec.Code)
	}
}

func TestSQLLoader(t *testing.T) {
	gdb, global, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer gdb.Close()
	tdb, tenantDB, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer tdb.Close()

	var dsn string
	openDB = func(_ context.Context, d string, _ database.Options) (*sqlx.DB, error) {
		dsn = d
		return sqlx.NewDb(tdb, "mysql"), nil
	}
	t.Cleanup(func() { openDB = database.Open })

	global.ExpectQuery(regexp.QuoteMeta("FROM site")).
		WithArgs("atelier.example").
		WillReturnRows(sqlmock.NewRows([]string{"id", "host", "dsn", "title", "locale", "suspended_at", "deleted_at"}).
			AddRow(7, "atelier.example", "atelier:%s@tcp(db:3306)/atelier", "L'Atelier", "fr_FR", nil, nil))
	global.ExpectQuery(regexp.QuoteMeta("FROM site_config")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("db_password", "s3cret"))

	tenantDB.ExpectQuery(regexp.QuoteMeta("FROM pages")).
		WithArgs("atelier.example", section.RootSlug).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	tenantDB.ExpectExec(regexp.QuoteMeta("INSERT INTO pages")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ten, err := SQLLoader(sqlx.NewDb(gdb, "mysql"))(context.Background(), "atelier.example")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dsn != "atelier:s3cret@tcp(db:3306)/atelier" {
		t.Fatalf("dsn = %q", dsn)
	}
	if ten.Meta.Title != "L'Atelier" || ten.Store == nil {
		t.Fatalf("tenant = %+v", ten)
	}
	for _, m := range []sqlmock.Sqlmock{global, tenantDB} {
		if err := m.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSQLLoader_UnknownHost(t *testing.T) {
	gdb, global, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer gdb.Close()

	global.ExpectQuery(regexp.QuoteMeta("FROM site")).
		WithArgs("nobody.example").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = SQLLoader(sqlx.NewDb(gdb, "mysql"))(context.Background(), "nobody.example")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
