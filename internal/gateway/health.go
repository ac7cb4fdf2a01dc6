package gateway

import (
	"context"
	"sync"
	"time"
)

// HealthChecker is an optional interface that gateways can implement
// to enable proactive health checking for failover decisions.
type HealthChecker interface {
	IsHealthy(ctx context.Context) bool
}

// healthCache remembers gateways that recently failed for reasons unrelated
// to the submitted address, so the failover chain can skip them for a while.
type healthCache struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.RWMutex
	downUntil map[string]time.Time
}

func newHealthCache(ttl time.Duration) *healthCache {
	return &healthCache{
		ttl:       ttl,
		now:       time.Now,
		downUntil: map[string]time.Time{},
	}
}

func (h *healthCache) isHealthy(name string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	until, ok := h.downUntil[name]
	return !ok || !h.now().Before(until)
}

func (h *healthCache) markFailed(name string) {
	if h.ttl <= 0 {
		return
	}
	h.mu.Lock()
	h.downUntil[name] = h.now().Add(h.ttl)
	h.mu.Unlock()
}

func (h *healthCache) markHealthy(name string) {
	h.mu.Lock()
	delete(h.downUntil, name)
	h.mu.Unlock()
}
