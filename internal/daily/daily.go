// Package daily synthesizes the short per-agent lines shown once per day.
package daily

import (
	"strings"
	"time"

	"github.com/talgya/star-omens/internal/entropy"
)

// Role is an agent voice.
type Role string

// Roles.
const (
	Seer      Role = "seer"
	Scribe    Role = "scribe"
	Keeper    Role = "keeper"
	Trickster Role = "trickster"
)

// Roles returns every role in display order.
func Roles() []Role {
	return []Role{Seer, Scribe, Keeper, Trickster}
}

// ParseRole maps a case-insensitive name to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles() {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Cycle is the horizon a line speaks to.
type Cycle string

// Cycles.
const (
	Day   Cycle = "day"
	Week  Cycle = "week"
	Month Cycle = "month"
	Year  Cycle = "year"
)

// Cycles returns every cycle, shortest first.
func Cycles() []Cycle {
	return []Cycle{Day, Week, Month, Year}
}

// ParseCycle maps a name to a Cycle. Unknown or empty names mean Day.
func ParseCycle(s string) Cycle {
	c := Cycle(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Cycles() {
		if c == known {
			return c
		}
	}
	return Day
}

// Pools holds the static line tables.
type Pools struct {
	Omen    map[Role]map[Cycle][]string
	Transit map[Cycle][]string
}

func (p Pools) omen(r Role, c Cycle) []string {
	return p.Omen[r][c]
}

// Result is one role's lines for a day.
type Result struct {
	DayKey  string `json:"dayKey"`
	Cycle   Cycle  `json:"cycle"`
	Omen    string `json:"omen"`
	Transit string `json:"transit"`
	Tone    Tone   `json:"tone"`
}

// Line is the per-role part of a Bundle.
type Line struct {
	Omen    string `json:"omen"`
	Transit string `json:"transit"`
}

// Bundle is every role's lines for one profile and day.
type Bundle struct {
	DayKey string        `json:"dayKey"`
	Cycle  Cycle         `json:"cycle"`
	Tone   Tone          `json:"tone"`
	Lines  map[Role]Line `json:"lines"`
}

// Synthesizer draws lines from a fixed set of pools.
type Synthesizer struct {
	pools Pools
}

// New returns a Synthesizer over pools.
func New(pools Pools) *Synthesizer {
	return &Synthesizer{pools: pools}
}

// NewDefault returns a Synthesizer over the built-in pools.
func NewDefault() *Synthesizer {
	return New(DefaultPools())
}

// ResolveDayKey returns override verbatim when set, else the UTC date of now.
func ResolveDayKey(override string, now time.Time) string {
	if override != "" {
		return override
	}
	return entropy.DayKey(now)
}

// Seed composes the selection seed for one role.
func Seed(dayKey, astroProfile, userSeed string, role Role, cycle Cycle) string {
	return entropy.Compose(dayKey, astroProfile, userSeed, string(role), string(cycle))
}

// Lines returns the omen and transit lines for one role. An empty pool
// yields an empty string; Lines never fails.
func (s *Synthesizer) Lines(role Role, astroProfile, userSeed, dayKeyOverride string, cycle Cycle, now time.Time) Result {
	cycle = ParseCycle(string(cycle))
	dayKey := ResolveDayKey(dayKeyOverride, now)
	seed := Seed(dayKey, astroProfile, userSeed, role, cycle)

	return Result{
		DayKey:  dayKey,
		Cycle:   cycle,
		Omen:    pick(s.pools.omen(role, cycle), seed),
		Transit: pick(s.pools.Transit[cycle], seed),
		Tone:    ToneFor(astroProfile, dayKey),
	}
}

// Bundle returns lines for every role.
func (s *Synthesizer) Bundle(astroProfile, userSeed, dayKeyOverride string, cycle Cycle, now time.Time) Bundle {
	cycle = ParseCycle(string(cycle))
	dayKey := ResolveDayKey(dayKeyOverride, now)

	b := Bundle{
		DayKey: dayKey,
		Cycle:  cycle,
		Tone:   ToneFor(astroProfile, dayKey),
		Lines:  make(map[Role]Line, len(Roles())),
	}
	for _, r := range Roles() {
		res := s.Lines(r, astroProfile, userSeed, dayKey, cycle, now)
		b.Lines[r] = Line{Omen: res.Omen, Transit: res.Transit}
	}
	return b
}

func pick(pool []string, seed string) string {
	i := entropy.Pick(seed, len(pool))
	if i < 0 {
		return ""
	}
	return pool[i]
}
