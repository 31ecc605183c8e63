package ephemeris

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	seen  []time.Time
	err   error
}

func (p *countingProvider) Positions(t time.Time, _ Location) ([]Reading, error) {
	p.calls++
	p.seen = append(p.seen, t)
	if p.err != nil {
		return nil, p.err
	}
	return []Reading{{Body: Sun, Longitude: float64(t.Minute())}}, nil
}

func TestCached_SameWindowHitsOnce(t *testing.T) {
	inner := &countingProvider{}
	c := NewCached(inner, time.Minute, time.Hour)

	base := time.Date(2024, 6, 1, 9, 15, 10, 0, time.UTC)
	a, err := c.Positions(base, Location{})
	require.NoError(t, err)
	b, err := c.Positions(base.Add(40*time.Second), Location{})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, a, b)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC), inner.seen[0], "computed at window start")

	_, err = c.Positions(base.Add(time.Minute), Location{})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	_, err = c.Positions(base, Location{Latitude: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls, "location is part of the key")
	assert.Equal(t, 3, c.Len())
}

func TestCached_Expires(t *testing.T) {
	inner := &countingProvider{}
	c := NewCached(inner, time.Minute, time.Minute)
	clock := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	_, _ = c.Positions(at, Location{})
	clock = clock.Add(2 * time.Minute)
	_, _ = c.Positions(at, Location{})
	assert.Equal(t, 2, inner.calls)
}

func TestCached_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	c := NewCached(inner, 0, 0)

	_, err := c.Positions(time.Now(), Location{})
	require.Error(t, err)
	_, err = c.Positions(time.Now(), Location{})
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 0, c.Len())
}

func TestCached_ReturnsCopies(t *testing.T) {
	c := NewCached(&countingProvider{}, time.Minute, time.Hour)
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	first, _ := c.Positions(at, Location{})
	first[0].Longitude = 999
	second, _ := c.Positions(at, Location{})
	assert.NotEqual(t, 999.0, second[0].Longitude)
}

// overlapProvider blocks each call until two calls are in flight at once, or
// gives up after a timeout and reports no overlap.
type overlapProvider struct {
	inflight atomic.Int32
	both     chan struct{}
	once     sync.Once
	overlap  atomic.Bool
}

func (p *overlapProvider) Positions(t time.Time, _ Location) ([]Reading, error) {
	if p.inflight.Add(1) == 2 {
		p.once.Do(func() { close(p.both) })
	}
	defer p.inflight.Add(-1)

	select {
	case <-p.both:
		p.overlap.Store(true)
	case <-time.After(2 * time.Second):
	}
	return []Reading{{Body: Sun, Longitude: float64(t.Minute())}}, nil
}

func TestCached_MissesComputeConcurrently(t *testing.T) {
	inner := &overlapProvider{both: make(chan struct{})}
	c := NewCached(inner, time.Minute, time.Hour)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := c.Positions(base.Add(time.Duration(i)*time.Minute), Location{})
			assert.NoError(t, err)
			assert.Len(t, r, 1)
		}()
	}
	wg.Wait()

	assert.True(t, inner.overlap.Load(), "misses for different windows ran one at a time")
	assert.Equal(t, 2, c.Len())
}
