package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for one query key from the backend.
type FetchFunc func(ctx context.Context) (any, error)

// Snapshot is a synchronous view of one cache entry.
type Snapshot struct {
	Value      any
	Err        error
	Generation uint64
	Present    bool
	Loading    bool
	Stale      bool
}

type entry struct {
	value    any
	err      error
	gen      uint64
	present  bool
	stale    bool
	inflight int
}

// Cache is a query-key addressed store of fetched resource collections.
//
// Each entry carries a generation counter. A successful fetch or an
// invalidation advances the generation and notifies subscribers; a failed
// fetch leaves the previous value readable and only records the error.
// At most one fetch per key is in flight per generation: concurrent reads
// share the flight, and a completion that started before the entry's
// current generation is discarded rather than applied.
type Cache struct {
	mu      sync.Mutex
	entries map[QueryKey]*entry
	subs    map[QueryKey]map[int]func()
	nextSub int
	group   singleflight.Group
	logger  zerolog.Logger
}

type CacheOption func(*Cache)

func WithCacheLogger(logger zerolog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[QueryKey]*entry),
		subs:    make(map[QueryKey]map[int]func()),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) entryLocked(key QueryKey) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// Read returns a synchronous snapshot of the entry for key. A key that has
// never been fetched reads as absent.
func (c *Cache) Read(key QueryKey) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Value:      e.value,
		Err:        e.err,
		Generation: e.gen,
		Present:    e.present,
		Loading:    e.inflight > 0,
		Stale:      e.stale,
	}
}

// Ensure returns the cached value for key, fetching it first when the entry
// is absent or stale. Concurrent calls for the same key and generation share
// a single fetch. A fetch that completes after the entry moved on (an
// invalidation advanced the generation) is discarded: its result is returned
// to the caller but never stored.
func (c *Cache) Ensure(ctx context.Context, key QueryKey, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if e.present && !e.stale {
		value := e.value
		c.mu.Unlock()
		return value, nil
	}
	startGen := e.gen
	e.inflight++
	c.mu.Unlock()

	flightKey := fmt.Sprintf("%s#%d", key, startGen)
	value, err, _ := c.group.Do(flightKey, func() (any, error) {
		return fetch(ctx)
	})

	c.mu.Lock()
	e = c.entryLocked(key)
	e.inflight--

	if e.gen != startGen {
		// Superseded while in flight; leave the entry alone.
		c.mu.Unlock()
		c.logger.Debug().Str("key", string(key)).Uint64("startGen", startGen).Msg("discarding stale fetch completion")
		return value, err
	}

	if err != nil {
		e.err = err
		listeners := c.listenersLocked(key)
		c.mu.Unlock()
		notify(listeners)
		return nil, err
	}

	e.value = value
	e.present = true
	e.stale = false
	e.err = nil
	e.gen++
	listeners := c.listenersLocked(key)
	c.mu.Unlock()
	notify(listeners)
	return value, nil
}

// Invalidate marks one key stale and advances its generation. The cached
// value stays readable until the next successful fetch replaces it.
func (c *Cache) Invalidate(key QueryKey) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	e.gen++
	e.stale = true
	listeners := c.listenersLocked(key)
	c.mu.Unlock()
	notify(listeners)
}

// InvalidateKind invalidates every key belonging to a resource kind. This is
// deliberately coarse: one project mutation stales the whole projects family.
func (c *Cache) InvalidateKind(kind string) {
	c.mu.Lock()
	var listeners []func()
	for key, e := range c.entries {
		if key.Kind() != kind {
			continue
		}
		e.gen++
		e.stale = true
		listeners = append(listeners, c.listenersLocked(key)...)
	}
	c.mu.Unlock()
	notify(listeners)
}

// Subscribe registers a listener invoked whenever the entry for key changes
// (value stored, error recorded, or invalidation). The returned function
// removes the subscription and is safe to call more than once.
func (c *Cache) Subscribe(key QueryKey, listener func()) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	if c.subs[key] == nil {
		c.subs[key] = make(map[int]func())
	}
	c.subs[key][id] = listener
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs[key], id)
		c.mu.Unlock()
	}
}

func (c *Cache) listenersLocked(key QueryKey) []func() {
	listeners := make([]func(), 0, len(c.subs[key]))
	for _, fn := range c.subs[key] {
		listeners = append(listeners, fn)
	}
	return listeners
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
