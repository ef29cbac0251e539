// internal/config/loader.go
//
// Configuration loader and hot-reloader.
//
/*
Context
--------
`Load()` builds one immutable `Config` from three layers (highest
precedence last):

  1. Optional `<root>/conf/.env`.
  2. `<root>/conf/global.yaml`.
  3. Environment variables prefixed `SITEKIT_`, where `__` maps to “.”
     (e.g., `SITEKIT_EDITOR__SAVE_DEBOUNCE → editor.save_debounce`).

String leaves of the form `vault:<path>#<key>` are then resolved through
a SecretSource, defaults are filled, the tree is validated, and the
result is cached in an `atomic.Pointer` for lock-free reads.

Workflow
--------
  • main.go calls Load() once at boot, then Watch to pick up
    edits to global.yaml or .env without a restart.
  • Tests call LoadFrom(dir, fake) with a temp root.

Notes
-----
  • rootDir() climbs the cwd tree until it finds conf/global.yaml, so
    `go run ./cmd/web` works from any sub-directory.
  • Logs use zap.S() so early boot issues surface on the bootstrap
    console before the file logger is installed.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/vault"
)

const (
	envPrefix = "SITEKIT_"
	secretTTL = 10 * time.Minute
)

var current atomic.Pointer[Config]

// SecretSource resolves one key of a KV secret.  *vault.Client satisfies it.
type SecretSource interface {
	GetKV(ctx context.Context, path, key string, ttl time.Duration) (string, error)
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves SITEKIT_ROOT or climbs directories until
// conf/global.yaml is found.  Falls back to the executable layout.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load discovers the root, connects to Vault when VAULT_ADDR is set, and
// delegates to LoadFrom.
func Load() (*Config, error) {
	secrets, err := Secrets(context.Background())
	if err != nil {
		return nil, err
	}
	return LoadFrom(rootDir(), secrets)
}

// Root returns the directory Load reads from.
func Root() string { return rootDir() }

// Secrets returns a Vault-backed SecretSource, or nil when VAULT_ADDR is
// unset.
func Secrets(ctx context.Context) (SecretSource, error) {
	if os.Getenv("VAULT_ADDR") == "" {
		return nil, nil
	}
	cli, err := vault.New(ctx)
	if err != nil {
		return nil, err
	}
	return cli, nil
}

// LoadFrom reads .env, YAML, and env overrides under root, resolves vault:
// references through secrets (which may be nil), validates, and caches.
func LoadFrom(root string, secrets SecretSource) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(k, secrets); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	cfg.Paths.Presets = filepath.Join(root, "conf", "presets.yaml")
	applyDefaults(&cfg)

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"memory", cfg.Database.Memory,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// resolveSecrets swaps every `vault:path#key` leaf for its secret value.
func resolveSecrets(k *koanf.Koanf, secrets SecretSource) error {
	for key, val := range k.All() {
		s, ok := val.(string)
		if !ok || !vault.IsRef(s) {
			continue
		}
		if secrets == nil {
			return fmt.Errorf("%s references vault but VAULT_ADDR is unset", key)
		}
		ref, err := vault.ParseRef(s)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		secret, err := secrets.GetKV(context.Background(), ref.Mount+"/"+ref.Path, ref.Key, secretTTL)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := k.Set(key, secret); err != nil {
			return err
		}
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.Database.MaxOpen == 0 {
		c.Database.MaxOpen = 15
	}
	if c.Database.MaxIdle == 0 {
		c.Database.MaxIdle = 5
	}
	if c.Editor.MaxHistory == 0 {
		c.Editor.MaxHistory = 50
	}
	if c.Editor.CoalesceWindow == 0 {
		c.Editor.CoalesceWindow = time.Second
	}
	if c.Editor.SaveDebounce == 0 {
		c.Editor.SaveDebounce = time.Second
	}
	if c.Editor.ResendInterval == 0 {
		c.Editor.ResendInterval = 2 * time.Second
	}
	if c.Editor.SessionIdleTTL == 0 {
		c.Editor.SessionIdleTTL = 30 * time.Minute
	}
	if c.Preview.RatePerSecond == 0 {
		c.Preview.RatePerSecond = 50
	}
	if c.Preview.Burst == 0 {
		c.Preview.Burst = 100
	}
	if c.Preview.RenderCache == 0 {
		c.Preview.RenderCache = 256
	}
	if c.Tenant.IdleTTL == 0 {
		c.Tenant.IdleTTL = 30 * time.Minute
	}
	if c.Tenant.MaxEntries == 0 {
		c.Tenant.MaxEntries = 100
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }

// Watch reloads the configuration whenever global.yaml or .env under
// <root>/conf changes and hands the new tree to onChange.  A reload that
// fails validation keeps the previous Config.  Watch blocks until ctx is
// done.
func Watch(ctx context.Context, root string, secrets SecretSource, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Join(root, "conf")
	if err := w.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			base := filepath.Base(ev.Name)
			if base != "global.yaml" && base != ".env" {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadFrom(root, secrets)
			if err != nil {
				zap.S().Warnw("config reload rejected", "file", ev.Name, "err", err)
				continue
			}
			if onChange != nil {
				onChange(cfg)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			zap.S().Warnw("config watcher error", "err", err)
		}
	}
}
