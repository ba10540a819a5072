// Package operation provides single-flight de-duplication and bounded LRU
// caching for expensive operations keyed by a canonical string key.
package operation

import (
	"container/list"
	"context"
	"sync"

	tally "github.com/uber-go/tally/v4"
	"golang.org/x/sync/singleflight"
)

// DefaultCapacity bounds the cache when no override is given.
const DefaultCapacity = 1000

// Manager wraps an arbitrary key -> result operation so that concurrent
// callers with the same key share one execution, and completed results are
// retained in a bounded LRU cache. Failed operations are never cached.
type Manager[V any] struct {
	mu       sync.Mutex
	entries  map[string]*entry[V]
	lru      *list.List
	inFlight map[string]struct{}
	flight   singleflight.Group
	capacity int
	stats    tally.Scope
}

type entry[V any] struct {
	value      V
	lruElement *list.Element
}

// Option customizes a Manager.
type Option func(*config)

type config struct {
	capacity int
}

// WithCapacity overrides the maximum number of cached results.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// New returns a Manager with the given metrics scope.
func New[V any](stats tally.Scope, opts ...Option) *Manager[V] {
	cfg := config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[V]{
		entries:  make(map[string]*entry[V]),
		lru:      list.New(),
		inFlight: make(map[string]struct{}),
		capacity: cfg.capacity,
		stats:    stats,
	}
}

// Perform returns the cached result for key, joins an in-flight execution if
// one exists, or invokes op and caches its result on success.
//
// A context that is already cancelled resolves to the zero value with a nil
// error, without invoking op.
func (m *Manager[V]) Perform(ctx context.Context, key string, op func(ctx context.Context) (V, error)) (V, error) {
	var zero V
	if ctx.Err() != nil {
		m.stats.Counter("cancelled").Inc(1)
		return zero, nil
	}

	if v, ok := m.lookup(key, true); ok {
		m.stats.Counter("hits").Inc(1)
		return v, nil
	}
	m.stats.Counter("misses").Inc(1)

	result, err, shared := m.flight.Do(key, func() (interface{}, error) {
		// A concurrent caller may have populated the cache between the
		// lookup above and entering the flight.
		if v, ok := m.lookup(key, false); ok {
			return v, nil
		}

		m.markInFlight(key)
		defer m.clearInFlight(key)

		v, err := op(ctx)
		if err != nil {
			return nil, err
		}
		m.store(key, v)
		return v, nil
	})
	if shared {
		m.stats.Counter("joined").Inc(1)
	}
	if err != nil {
		return zero, err
	}
	return result.(V), nil
}

// IsCachedOrInFlight reports whether key has a completed cached result or a
// currently executing operation. It is a pure query with no side effects on
// cache ordering.
func (m *Manager[V]) IsCachedOrInFlight(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		return true
	}
	_, ok := m.inFlight[key]
	return ok
}

// Len returns the number of completed cached results.
func (m *Manager[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Manager[V]) lookup(key string, touch bool) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if touch {
		m.lru.MoveToFront(e.lruElement)
	}
	return e.value, true
}

func (m *Manager[V]) store(key string, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[key]; ok {
		existing.value = v
		m.lru.MoveToFront(existing.lruElement)
		return
	}

	for len(m.entries) >= m.capacity {
		oldest := m.lru.Back()
		if oldest == nil {
			break
		}
		m.lru.Remove(oldest)
		delete(m.entries, oldest.Value.(string))
		m.stats.Counter("evictions").Inc(1)
	}

	m.entries[key] = &entry[V]{
		value:      v,
		lruElement: m.lru.PushFront(key),
	}
}

func (m *Manager[V]) markInFlight(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight[key] = struct{}{}
}

func (m *Manager[V]) clearInFlight(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, key)
}
