package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesPinned(t *testing.T) {
	s := NewDefault()
	got := s.Lines(Seer, "leo", "u1", "2024-06-01", Day, time.Now())

	assert.Equal(t, "2024-06-01", got.DayKey)
	assert.Equal(t, Day, got.Cycle)
	assert.Equal(t, "A bird crosses left to right. Trust the first instinct today.", got.Omen)
	assert.Equal(t, "Venus leans close; small kindnesses land softly.", got.Transit)
}

func TestLinesDeterministic(t *testing.T) {
	s := NewDefault()
	now := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	first := s.Lines(Keeper, "virgo-sun|pisces-moon", "abc", "", Month, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Lines(Keeper, "virgo-sun|pisces-moon", "abc", "", Month, now))
	}
	assert.Equal(t, "2024-03-09", first.DayKey)
}

func TestLinesDayOverrideSurvivesRollover(t *testing.T) {
	s := NewDefault()
	beforeMidnight := time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)
	afterMidnight := beforeMidnight.Add(2 * time.Second)

	a := s.Lines(Trickster, "aries", "seed", "2024-06-01", Week, beforeMidnight)
	b := s.Lines(Trickster, "aries", "seed", "2024-06-01", Week, afterMidnight)
	assert.Equal(t, a, b)

	// Without the override the day key follows the clock.
	c := s.Lines(Trickster, "aries", "seed", "", Week, afterMidnight)
	assert.Equal(t, "2024-06-02", c.DayKey)
}

func TestLinesUsesUTCDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 6, 2, 7, 0, 0, 0, tokyo)
	got := NewDefault().Lines(Seer, "x", "", "", Day, now)
	assert.Equal(t, "2024-06-01", got.DayKey)
}

func TestLinesUnknownCycleMeansDay(t *testing.T) {
	s := NewDefault()
	a := s.Lines(Scribe, "p", "u", "2024-01-01", Cycle("fortnight"), time.Time{})
	b := s.Lines(Scribe, "p", "u", "2024-01-01", Day, time.Time{})
	assert.Equal(t, b, a)
	assert.Equal(t, Day, a.Cycle)
}

func TestLinesEmptyPoolsNeverFail(t *testing.T) {
	s := New(Pools{})
	got := s.Lines(Seer, "p", "u", "2024-01-01", Year, time.Now())
	assert.Empty(t, got.Omen)
	assert.Empty(t, got.Transit)
	assert.Equal(t, "2024-01-01", got.DayKey)

	unknownRole := NewDefault().Lines(Role("oracle"), "p", "u", "2024-01-01", Day, time.Now())
	assert.Empty(t, unknownRole.Omen)
	assert.NotEmpty(t, unknownRole.Transit)
}

func TestLinesComeFromPools(t *testing.T) {
	pools := DefaultPools()
	s := New(pools)
	for _, r := range Roles() {
		for _, c := range Cycles() {
			got := s.Lines(r, "cancer", "u9", "2025-12-31", c, time.Time{})
			assert.Contains(t, pools.Omen[r][c], got.Omen, "%s/%s", r, c)
			assert.Contains(t, pools.Transit[c], got.Transit, "%s/%s", r, c)
		}
	}
}

func TestBundle(t *testing.T) {
	s := NewDefault()
	b := s.Bundle("leo", "u1", "2024-06-01", "", time.Now())

	assert.Equal(t, "2024-06-01", b.DayKey)
	assert.Equal(t, Day, b.Cycle)
	require.Len(t, b.Lines, len(Roles()))

	seer := s.Lines(Seer, "leo", "u1", "2024-06-01", Day, time.Now())
	assert.Equal(t, Line{Omen: seer.Omen, Transit: seer.Transit}, b.Lines[Seer])
	assert.Equal(t, seer.Tone, b.Tone)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Seer ")
	require.True(t, ok)
	assert.Equal(t, Seer, r)

	_, ok = ParseRole("oracle")
	assert.False(t, ok)
}

func TestSeedComposition(t *testing.T) {
	assert.Equal(t, "2024-06-01|leo|u1|seer|day", Seed("2024-06-01", "leo", "u1", Seer, Day))
	assert.Equal(t, "2024-06-01|leo||seer|day", Seed("2024-06-01", "leo", "", Seer, Day))
}
