package tenant

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/sitekit/internal/metrics"
)

// Static defaults, overridden by config.tenant.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 100
	EvictInterval = 5 * time.Minute
)

// ErrNotFound is returned when a host is not present in the site table.
var ErrNotFound = errors.New("tenant not found")

// Loader builds the Tenant for one host.  SQLLoader and MemoryLoader are
// the two production implementations.
type Loader func(ctx context.Context, host string) (*Tenant, error)

// Cache lazily loads tenants, stores them in a sync.Map, and evicts them on
// idle TTL or LRU pressure.
type Cache struct {
	load        Loader
	sfg         singleflight.Group
	m           sync.Map
	evictTicker *time.Ticker
	stop        chan struct{}
	once        sync.Once
	idleTTL     time.Duration
	maxEntries  int
	now         func() time.Time
}

// New constructs a Cache and starts the background evictor.
func New(load Loader, idleTTL time.Duration, maxEntries int) *Cache {
	if idleTTL <= 0 {
		idleTTL = IdleTTL
	}
	c := &Cache{
		load:       load,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
		stop:       make(chan struct{}),
		now:        time.Now,
	}
	c.evictTicker = time.NewTicker(EvictInterval)
	go c.evictLoop()
	return c
}

// Get returns the Tenant for host, loading it on demand.  Concurrent
// misses for one host share a single load.
func (c *Cache) Get(ctx context.Context, host string) (*Tenant, error) {
	host = resolveLookupHost(stripPort(host))
	if t, ok := c.touch(host); ok {
		return t, nil
	}

	v, err, _ := c.sfg.Do(host, func() (interface{}, error) {
		if t, ok := c.touch(host); ok {
			return t, nil
		}
		ten, err := c.load(ctx, host)
		if err != nil {
			metrics.TenantLoadErrorsTotal.Inc()
			return nil, err
		}
		c.m.Store(host, &entry{tenant: ten, lastSeen: c.now().UnixNano()})
		metrics.TenantLoadTotal.Inc()
		metrics.ActiveTenants.Inc()
		zap.L().Info("tenant loaded", zap.String("host", host))
		return ten, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tenant), nil
}

func (c *Cache) touch(host string) (*Tenant, bool) {
	v, ok := c.m.Load(host)
	if !ok {
		return nil, false
	}
	ent := v.(*entry)
	atomic.StoreInt64(&ent.lastSeen, c.now().UnixNano())
	return ent.tenant, true
}

// Close stops the evictor and closes every cached tenant.
func (c *Cache) Close() {
	c.once.Do(func() {
		close(c.stop)
		c.evictTicker.Stop()
	})
	c.m.Range(func(key, value any) bool {
		c.evict(key.(string), value.(*entry), "shutdown")
		return true
	})
}
