package avail

import (
	"sync"
	"time"

	"github.com/shelfline/avail/domain"
)

// productCache holds the last fetched product listing for a bounded time, sparing the
// database on repeated reads. A save through the editor invalidates it immediately.
type productCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	products  []*domain.Product
	fetchedAt time.Time
	now       func() time.Time // Overridable for tests
}

func newProductCache(ttl time.Duration) *productCache {
	return &productCache{
		ttl: ttl,
		now: time.Now,
	}
}

func (cache *productCache) setTTL(ttl time.Duration) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.ttl = ttl
}

// get returns the cached listing and whether it is still fresh.
func (cache *productCache) get() ([]*domain.Product, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	if cache.products == nil {
		return nil, false
	}
	if cache.now().Sub(cache.fetchedAt) >= cache.ttl {
		cache.products = nil
		return nil, false
	}
	return cache.products, true
}

func (cache *productCache) set(products []*domain.Product) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	cache.products = products
	cache.fetchedAt = cache.now()
}

func (cache *productCache) invalidate() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.products = nil
}
