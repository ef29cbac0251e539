// cmd/web/main.go
//
// sitekit – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load configuration (conf/.env → conf/global.yaml → SITEKIT_* env,
//     with vault: references resolved when VAULT_ADDR is set).
//
//  2. Start the daily rotating logger (tees to console in a TTY).
//
//  3. Pick the tenant loader.  database.memory serves every host from one
//     in-process store; otherwise the global control-plane DB is opened
//     and each site gets its own pool on first hit.
//
//  4. Load the section preset catalog and watch it for edits.
//
//  5. Build the preview hub, which owns every live editing session.
//
//  6. Router:
//
//     • Request id and access log  – every request
//     • Security headers           – every response
//     • /metrics, /static/         – tenant-agnostic
//     • tenant.Resolve             – host → *tenant.Tenant
//     • component.Mount            – /editor, /preview
//
//  7. Wrap with ForceHTTPS when http.force_https is set, serve, and on
//     SIGINT/SIGTERM drain the server, the hub, and the tenant cache.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/component"
	"github.com/yanizio/sitekit/internal/config"
	"github.com/yanizio/sitekit/internal/database"
	"github.com/yanizio/sitekit/internal/logger"
	"github.com/yanizio/sitekit/internal/middleware"
	"github.com/yanizio/sitekit/internal/preset"
	"github.com/yanizio/sitekit/internal/preview"
	"github.com/yanizio/sitekit/internal/requestinfo"
	"github.com/yanizio/sitekit/internal/server"
	"github.com/yanizio/sitekit/internal/site"
	"github.com/yanizio/sitekit/internal/store"
	"github.com/yanizio/sitekit/internal/tenant"
	"github.com/yanizio/sitekit/internal/view"

	_ "github.com/yanizio/sitekit/components/classic"  // variant catalog
	_ "github.com/yanizio/sitekit/components/editor"   // /editor
	_ "github.com/yanizio/sitekit/components/electric" // variant catalog
	_ "github.com/yanizio/sitekit/components/preview"  // /preview
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Tenant loader ───────────────────────────────────────────────
	//
	var load tenant.Loader
	if cfg.Database.Memory {
		logOut.Warnw("database.memory is set; content is lost on restart")
		load = tenant.MemoryLoader(store.NewMemory())
	} else {
		dsn := cfg.Database.DSN
		if strings.Contains(dsn, "%s") {
			dsn = fmt.Sprintf(dsn, cfg.Database.Password)
		}
		opts := database.DefaultOptions()
		opts.MaxOpenConns, opts.MaxIdleConns = cfg.Database.MaxOpen, cfg.Database.MaxIdle

		logOut.Infow("connecting to global DB")
		globalDB, err := database.Open(ctx, dsn, opts)
		if err != nil {
			logOut.Fatalw("connect global DB", "err", err)
		}
		defer globalDB.Close()

		// Active-site count as an early sanity check.
		if sites, err := site.AllActive(ctx, globalDB); err == nil {
			logOut.Infow("global DB online", "active_sites", len(sites))
		}
		load = tenant.SQLLoader(globalDB)
	}
	cache := tenant.New(load, cfg.Tenant.IdleTTL, cfg.Tenant.MaxEntries)
	defer cache.Close()

	//
	// ── 2.  Presets and the preview hub ────────────────────────────────
	//
	presets, err := preset.Load(cfg.Paths.Presets)
	if err != nil {
		logOut.Warnw("preset catalog unavailable", "path", cfg.Paths.Presets, "err", err)
	} else if err := presets.Watch(ctx); err != nil {
		logOut.Warnw("preset watch disabled", "err", err)
	}

	opt := preview.Options{
		MaxHistory:     cfg.Editor.MaxHistory,
		CoalesceWindow: cfg.Editor.CoalesceWindow,
		SaveDebounce:   cfg.Editor.SaveDebounce,
		ResendInterval: cfg.Editor.ResendInterval,
	}
	if presets != nil {
		opt.Presets = presets
	}
	hub := preview.NewHub(opt, cfg.Editor.SessionIdleTTL)

	//
	// ── 3.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", view.Static()))
	r.Group(func(r chi.Router) {
		r.Use(tenant.Resolve(cache))
		env := component.Env{Config: cfg, Hub: hub, Presets: presets}
		if err := component.Mount(r, env); err != nil {
			logOut.Fatalw("mount components", "err", err)
		}
	})

	var root http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(cache, r)
	}

	//
	// ── 4.  Live config: level changes apply without a restart ─────────
	//
	go func() {
		secrets, err := config.Secrets(ctx)
		if err != nil {
			logOut.Warnw("config watch disabled", "err", err)
			return
		}
		err = config.Watch(ctx, cfg.Paths.Root, secrets, func(next *config.Config) {
			if err := logger.SetLevel(next.Log.Level); err != nil {
				logOut.Warnw("log level rejected", "level", next.Log.Level, "err", err)
				return
			}
			logOut.Infow("config reloaded", "level", next.Log.Level)
		})
		if err != nil {
			logOut.Warnw("config watch stopped", "err", err)
		}
	}()

	srv := server.New(cfg.HTTP.ListenAddr, root)
	if err := server.Run(ctx, srv); err != nil {
		logOut.Errorw("http server", "err", err)
	}

	sctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()
	if err := hub.Close(sctx); err != nil {
		logOut.Warnw("hub close", "err", err)
	}
	zap.L().Info("bye")
}
