// evictor.go houses the eviction loop for Cache.  Every EvictInterval it
// scans the map and removes:
//
//   - tenants idle longer than idleTTL
//   - least-recently-used tenants when map size exceeds maxEntries
//
// Each eviction event is logged and updates Prometheus counters.
package tenant

import (
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/sitekit/internal/metrics"
)

func (c *Cache) evictLoop() {
	for {
		select {
		case <-c.evictTicker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

// sweep runs one idle pass followed by one LRU pass.
func (c *Cache) sweep() {
	now := c.now().UnixNano()
	var count int

	c.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		idle := time.Duration(now - atomic.LoadInt64(&ent.lastSeen))
		if idle > c.idleTTL {
			c.evict(key.(string), ent, "idle")
			return true
		}
		count++
		return true
	})

	if c.maxEntries <= 0 || count <= c.maxEntries {
		return
	}
	type kv struct {
		key string
		at  int64
	}
	all := make([]kv, 0, count)
	c.m.Range(func(key, value any) bool {
		all = append(all, kv{key: key.(string), at: atomic.LoadInt64(&value.(*entry).lastSeen)})
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
	for i := 0; i < len(all)-c.maxEntries; i++ {
		if v, ok := c.m.Load(all[i].key); ok {
			c.evict(all[i].key, v.(*entry), "lru")
		}
	}
}

func (c *Cache) evict(host string, ent *entry, reason string) {
	if _, loaded := c.m.LoadAndDelete(host); !loaded {
		return
	}
	if err := ent.tenant.Close(); err != nil {
		zap.L().Warn("tenant close failed", zap.String("host", host), zap.Error(err))
	}
	zap.L().Info("tenant evicted", zap.String("host", host), zap.String("reason", reason))
	metrics.TenantEvictTotal.Inc()
	metrics.ActiveTenants.Dec()
}
