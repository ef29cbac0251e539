// internal/vault/vault.go
//
// Secrets for the config loader.
//
// Config leaves of the form `vault:mount/path#key` are resolved through a
// KV-v2 mount at load time, so the database password and tenant DSNs
// never sit in YAML.  Values are cached per reference for the TTL the
// caller passes; the token is kept alive by a lifetime watcher for as
// long as the boot context lives.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
	"go.uber.org/zap"
)

// Prefix marks a config string as a secret reference.
const Prefix = "vault:"

// ErrEmptyRef is returned for a reference with a blank path or key.
var ErrEmptyRef = errors.New("vault: secret path and key must be non-empty")

// Ref names one key of a KV-v2 secret.
type Ref struct {
	Mount string // first path segment, e.g. "secret"
	Path  string // remainder, e.g. "sitekit/db"
	Key   string
}

func (r Ref) String() string { return Prefix + r.Mount + "/" + r.Path + "#" + r.Key }

// IsRef reports whether s should be resolved as a secret.
func IsRef(s string) bool { return strings.HasPrefix(s, Prefix) }

// ParseRef splits "vault:secret/sitekit/db#password".  The prefix is
// optional.
func ParseRef(s string) (Ref, error) {
	full, key, ok := strings.Cut(strings.TrimPrefix(s, Prefix), "#")
	if !ok {
		return Ref{}, fmt.Errorf("vault reference %q lacks #key", s)
	}
	mount, rel, _ := strings.Cut(full, "/")
	if mount == "" || rel == "" || key == "" {
		return Ref{}, fmt.Errorf("%q: %w", s, ErrEmptyRef)
	}
	return Ref{Mount: mount, Path: rel, Key: key}, nil
}

// Client reads KV-v2 secrets.  Safe for concurrent use.
type Client struct {
	api *vault.Client

	mu    sync.Mutex
	cache map[Ref]entry
	now   func() time.Time
}

type entry struct {
	val string
	exp time.Time
}

// New builds a client from VAULT_ADDR / VAULT_TOKEN and starts the token
// watcher, which stops with ctx.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}
	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	c := &Client{api: api, cache: map[Ref]entry{}, now: time.Now}
	go c.keepTokenAlive(ctx)
	return c, nil
}

// GetKV resolves path#key, serving from cache while younger than ttl.
// path includes the mount ("secret/sitekit/db").
func (c *Client) GetKV(ctx context.Context, path, key string, ttl time.Duration) (string, error) {
	ref, err := ParseRef(path + "#" + key)
	if err != nil {
		return "", err
	}
	return c.Get(ctx, ref, ttl)
}

// Get resolves one reference.
func (c *Client) Get(ctx context.Context, ref Ref, ttl time.Duration) (string, error) {
	if v, ok := c.cached(ref); ok {
		return v, nil
	}
	sec, err := c.api.KVv2(ref.Mount).Get(ctx, ref.Path)
	if err != nil {
		return "", fmt.Errorf("vault get %s/%s: %w", ref.Mount, ref.Path, err)
	}
	v, ok := sec.Data[ref.Key].(string)
	if !ok {
		return "", fmt.Errorf("%s: missing or not a string", ref)
	}
	if ttl > 0 {
		c.mu.Lock()
		c.cache[ref] = entry{val: v, exp: c.now().Add(ttl)}
		c.mu.Unlock()
	}
	return v, nil
}

func (c *Client) cached(ref Ref) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[ref]
	if !ok || !c.now().Before(e.exp) {
		return "", false
	}
	return e.val, true
}

// keepTokenAlive renews the client token until ctx ends.  A token that
// cannot be renewed is left alone; secrets are only read during boot and
// config reloads.
func (c *Client) keepTokenAlive(ctx context.Context) {
	for ctx.Err() == nil {
		sec, err := c.api.Auth().Token().RenewSelfWithContext(ctx, 0)
		if err != nil || sec == nil || sec.Auth == nil || !sec.Auth.Renewable {
			if err != nil {
				zap.S().Warnw("vault token renew failed", "err", err)
			}
			sleep(ctx, time.Hour)
			continue
		}
		w, err := c.api.NewLifetimeWatcher(&vault.LifetimeWatcherInput{Secret: sec})
		if err != nil {
			zap.S().Warnw("vault lifetime watcher failed", "err", err)
			sleep(ctx, 30*time.Second)
			continue
		}
		go w.Start()
		select {
		case <-ctx.Done():
		case err := <-w.DoneCh():
			if err != nil {
				zap.S().Warnw("vault token watcher stopped", "err", err)
			}
		}
		w.Stop()
		sleep(ctx, 15*time.Second)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
