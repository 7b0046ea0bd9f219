package pkglocal

import (
	"context"
	"net/http"
	"reflect"
	"sync"
)

type cacheContextKey struct{}

type slot struct {
	once  sync.Once
	mu    sync.RWMutex
	ready bool
	value any
}

// Cache holds at most one value per Go type. It is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	slots map[reflect.Type]*slot
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{slots: make(map[reflect.Type]*slot)}
}

func (c *Cache) slot(key reflect.Type, create bool) *slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.slots[key]
	if !ok && create {
		s = &slot{}
		c.slots[key] = s
	}
	return s
}

// GetOrInit returns the value of type T stored in c, running init to produce
// it if no value exists yet. Concurrent callers block until the single init
// call finishes and all observe the same value.
func GetOrInit[T any](c *Cache, init func() T) T {
	s := c.slot(reflect.TypeFor[T](), true)
	s.once.Do(func() {
		v := init()

		s.mu.Lock()
		s.value, s.ready = v, true
		s.mu.Unlock()
	})

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, _ := s.value.(T)
	return v
}

// Get returns the value of type T stored in c. It reports false when no value
// has been initialized, including while another goroutine is still running
// the initializer.
func Get[T any](c *Cache) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}

	s := c.slot(reflect.TypeFor[T](), false)
	if s == nil {
		return zero, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return zero, false
	}
	v, ok := s.value.(T)
	return v, ok
}

// WithCache attaches a new Cache to ctx. When ctx already carries a cache it
// is returned unchanged.
func WithCache(ctx context.Context) (context.Context, *Cache) {
	if c, ok := FromContext(ctx); ok {
		return ctx, c
	}

	c := New()
	return context.WithValue(ctx, cacheContextKey{}, c), c
}

// FromContext returns the Cache attached to ctx.
func FromContext(ctx context.Context) (*Cache, bool) {
	c, ok := ctx.Value(cacheContextKey{}).(*Cache)
	return c, ok && c != nil
}

// FromRequest returns the Cache attached to the request context.
func FromRequest(r *http.Request) (*Cache, bool) {
	return FromContext(r.Context())
}
