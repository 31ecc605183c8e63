// Package entropy is the engine's only source of variety. Content selection is
// driven by a pinned 53-bit string hash (cyrb53) over seeds composed from caller
// identity and calendar days, so identical inputs give identical picks on every
// platform and every release.
package entropy

import (
	"strings"
	"time"
	"unicode/utf16"
)

// Delimiter joins seed components.
const Delimiter = "|"

// DayKeyLayout is the UTC calendar-day format used for day keys.
const DayKeyLayout = "2006-01-02"

// Hash53 returns the cyrb53 hash of s with seed 0.
func Hash53(s string) uint64 {
	return Hash53Seeded(s, 0)
}

// Hash53Seeded is cyrb53: two interleaved 32-bit multiply-xor lanes over the
// UTF-16 code units of s, folded into a 53-bit result. The constants and the
// UTF-16 iteration are part of the output contract.
func Hash53Seeded(s string, seed uint32) uint64 {
	h1 := uint32(0xdeadbeef) ^ seed
	h2 := uint32(0x41c6ce57) ^ seed

	for _, ch := range utf16.Encode([]rune(s)) {
		h1 = (h1 ^ uint32(ch)) * 2654435761
		h2 = (h2 ^ uint32(ch)) * 1597334677
	}

	h1 = (h1 ^ (h1 >> 16)) * 2246822507
	h1 ^= (h2 ^ (h2 >> 13)) * 3266489909
	h2 = (h2 ^ (h2 >> 16)) * 2246822507
	h2 ^= (h1 ^ (h1 >> 13)) * 3266489909

	return uint64(h2&0x1fffff)<<32 | uint64(h1)
}

// Pick maps seed onto [0, n). Returns -1 when n <= 0.
func Pick(seed string, n int) int {
	if n <= 0 {
		return -1
	}
	return int(Hash53(seed) % uint64(n))
}

// DayKey returns the UTC calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// Compose joins seed components with Delimiter. Empty components are kept so
// that positions stay stable.
func Compose(parts ...string) string {
	return strings.Join(parts, Delimiter)
}
