package ephemeris

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cached memoizes another Provider. Instants are truncated to Resolution
// before lookup and computation, so every call inside one window returns the
// same positions. Entries expire after TTL. Misses are computed outside the
// lock, and concurrent misses for one window share a single computation.
type Cached struct {
	next       Provider
	resolution time.Duration
	ttl        time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	now     func() time.Time

	inflight singleflight.Group
}

type cacheKey struct {
	unix int64
	loc  Location
}

func (k cacheKey) String() string {
	return strconv.FormatInt(k.unix, 10) + "|" +
		strconv.FormatFloat(k.loc.Latitude, 'g', -1, 64) + "|" +
		strconv.FormatFloat(k.loc.Longitude, 'g', -1, 64)
}

type cacheEntry struct {
	readings []Reading
	storedAt time.Time
}

// NewCached wraps next. A zero resolution defaults to one minute and a zero
// ttl to five minutes.
func NewCached(next Provider, resolution, ttl time.Duration) *Cached {
	if resolution <= 0 {
		resolution = time.Minute
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{
		next:       next,
		resolution: resolution,
		ttl:        ttl,
		maxEntries: 4096,
		entries:    make(map[cacheKey]cacheEntry),
		now:        time.Now,
	}
}

// Positions returns cached readings for the window containing t.
func (c *Cached) Positions(t time.Time, loc Location) ([]Reading, error) {
	t = t.UTC().Truncate(c.resolution)
	key := cacheKey{unix: t.UnixNano(), loc: loc}

	if readings, ok := c.lookup(key); ok {
		slog.Debug("ephemeris cache hit", "instant", t)
		return readings, nil
	}

	v, err, _ := c.inflight.Do(key.String(), func() (any, error) {
		readings, err := c.next.Positions(t, loc)
		if err != nil {
			return nil, err
		}
		c.store(key, readings)
		return readings, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneReadings(v.([]Reading)), nil
}

func (c *Cached) lookup(key cacheKey) ([]Reading, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return cloneReadings(e.readings), true
}

func (c *Cached) store(key cacheKey, readings []Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = cacheEntry{readings: cloneReadings(readings), storedAt: now}
}

// evict drops expired entries, or everything if none have expired yet.
func (c *Cached) evict(now time.Time) {
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
	if len(c.entries) >= c.maxEntries {
		clear(c.entries)
	}
}

// Len reports the number of cached windows.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cloneReadings(in []Reading) []Reading {
	out := make([]Reading, len(in))
	copy(out, in)
	return out
}
