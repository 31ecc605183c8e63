package engine

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/star-omens/internal/aspects"
	"github.com/talgya/star-omens/internal/astro"
	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/narrative"
)

// Trinity slots.
const (
	SlotSun    = "sun"
	SlotMoon   = "moon"
	SlotRising = "rising"

	// UnknownSign fills the rising slot when the birth time is unknown.
	UnknownSign = "unknown"
)

// Transit statuses.
const (
	StatusExact      = "exact"
	StatusApplying   = "applying"
	StatusSeparating = "separating"
)

// exactOrb is the orb under which a signal reads as exact.
const exactOrb = 0.5

// Reading is the response to a chart request.
type Reading struct {
	DayKey  string           `json:"dayKey"`
	UserKey string           `json:"userKey"`
	Trinity []TrinitySlot    `json:"trinity"`
	Planets []PlanetReading  `json:"planets"`
	Signals []aspects.Signal `json:"signals"`
	Omen    narrative.Omen   `json:"omen"`

	Natal   *astro.Chart `json:"-"`
	Transit *astro.Chart `json:"-"`
}

// TrinitySlot is one of sun, moon and rising.
type TrinitySlot struct {
	Slot   string   `json:"slot"`
	Sign   string   `json:"sign"`
	Degree *float64 `json:"degree,omitempty"`
}

// PlanetReading is a natal point with its strongest current transit.
type PlanetReading struct {
	Name       ephemeris.Body `json:"name"`
	Sign       astro.Sign     `json:"sign"`
	Degree     float64        `json:"degree"`
	Retrograde bool           `json:"retrograde,omitempty"`
	Transit    *TransitNote   `json:"transit,omitempty"`
}

// TransitNote summarizes the strongest signal touching a natal point.
type TransitNote struct {
	Status string         `json:"status"`
	Label  string         `json:"label"`
	Aspect aspects.Aspect `json:"aspectType"`
	By     ephemeris.Body `json:"by"`
}

// Profile is a compact sign summary usable as a daily astroProfile,
// e.g. "sun:leo|moon:aries|rising:virgo".
func (r *Reading) Profile() string {
	parts := make([]string, 0, len(r.Trinity))
	for _, s := range r.Trinity {
		parts = append(parts, s.Slot+":"+s.Sign)
	}
	return strings.Join(parts, "|")
}

func buildReading(natal, transit *astro.Chart, signals []aspects.Signal, omen narrative.Omen, dayKey, userKey string, now time.Time) *Reading {
	if signals == nil {
		signals = []aspects.Signal{}
	}
	r := &Reading{
		DayKey:  dayKey,
		UserKey: userKey,
		Trinity: trinity(natal),
		Signals: signals,
		Omen:    omen,
		Natal:   natal,
		Transit: transit,
	}

	// Signals are sorted, so the first hit per natal point is its strongest.
	strongest := make(map[ephemeris.Body]aspects.Signal)
	for _, s := range signals {
		if _, seen := strongest[s.NatalPlanet]; !seen {
			strongest[s.NatalPlanet] = s
		}
	}

	for _, p := range natal.Points() {
		pr := PlanetReading{
			Name:       p.Name,
			Sign:       p.Sign,
			Degree:     p.DegreeInSign(),
			Retrograde: p.Retrograde,
		}
		if s, ok := strongest[p.Name]; ok {
			var speed float64
			if tp, ok := transit.Position(s.TransitPlanet); ok {
				speed = tp.Speed
			}
			pr.Transit = transitNote(s, speed, now)
		}
		r.Planets = append(r.Planets, pr)
	}
	return r
}

func trinity(c *astro.Chart) []TrinitySlot {
	slot := func(name string, body ephemeris.Body) TrinitySlot {
		p, ok := c.Position(body)
		if !ok {
			return TrinitySlot{Slot: name, Sign: UnknownSign}
		}
		deg := p.DegreeInSign()
		return TrinitySlot{Slot: name, Sign: string(p.Sign), Degree: &deg}
	}

	rising := TrinitySlot{Slot: SlotRising, Sign: UnknownSign}
	if c.Ascendant != nil {
		rising = slot(SlotRising, ephemeris.Ascendant)
	}
	return []TrinitySlot{
		slot(SlotSun, ephemeris.Sun),
		slot(SlotMoon, ephemeris.Moon),
		rising,
	}
}

func transitNote(s aspects.Signal, transitSpeed float64, now time.Time) *TransitNote {
	n := &TransitNote{Aspect: s.Aspect, By: s.TransitPlanet}
	switch {
	case s.Orb < exactOrb:
		n.Status = StatusExact
	case s.Applying:
		n.Status = StatusApplying
	default:
		n.Status = StatusSeparating
	}

	label := narrative.Headline(s)
	if n.Status == StatusExact {
		label += ", exact now"
	} else if offset, ok := aspects.TimeToExact(s, transitSpeed); ok {
		label += ", exact " + humanize.RelTime(now.Add(offset), now, "ago", "from now")
	}
	n.Label = label
	return n
}
