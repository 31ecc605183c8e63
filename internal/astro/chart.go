package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/talgya/star-omens/internal/ephemeris"
)

var (
	// ErrInvalidInput marks caller mistakes: unparseable dates, coordinates
	// out of range. Always detected before any trigonometry runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputation marks failures inside the position source.
	ErrComputation = errors.New("position computation failed")
)

// Supported instants. The orbital element table is fitted to 1800–2050;
// the tail to 2100 degrades gracefully.
var (
	earliestInstant = time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)
	latestInstant   = time.Date(2100, 12, 31, 23, 59, 59, 0, time.UTC)
)

// PlanetPosition is one body (or the ascendant) within a chart snapshot.
type PlanetPosition struct {
	Name       ephemeris.Body `json:"name"`
	Longitude  float64        `json:"longitude"`
	Sign       Sign           `json:"sign"`
	Speed      float64        `json:"speed,omitempty"` // degrees/day; 0 when unknown
	Retrograde bool           `json:"retrograde,omitempty"`

	// Degenerate is set when the source produced a non-finite longitude.
	// Longitude is then 0 and Sign is DefaultSign.
	Degenerate bool `json:"degenerate,omitempty"`
}

// NewPosition builds a position from a raw longitude, normalizing it and
// deriving the sign. Non-finite longitudes degrade to DefaultSign.
func NewPosition(body ephemeris.Body, lon, speed float64) PlanetPosition {
	p := PlanetPosition{Name: body, Speed: speed}
	n := Normalize(lon)
	if math.IsNaN(n) {
		p.Sign = SignFor(lon)
		p.Degenerate = true
		p.Speed = 0
		return p
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		p.Speed = 0
	}
	p.Longitude = n
	p.Sign = SignFor(n)
	p.Retrograde = p.Speed < 0
	return p
}

// DegreeInSign returns the position's offset into its sign.
func (p PlanetPosition) DegreeInSign() float64 {
	return DegreeInSign(p.Longitude)
}

// Chart is a snapshot of positions at one instant.
type Chart struct {
	Instant   time.Time           `json:"instant"`
	Location  *ephemeris.Location `json:"location,omitempty"`
	Positions []PlanetPosition    `json:"positions"`
	Ascendant *PlanetPosition     `json:"ascendant,omitempty"`
}

// Position looks up a body in the chart, including the ascendant.
func (c *Chart) Position(body ephemeris.Body) (PlanetPosition, bool) {
	if body == ephemeris.Ascendant && c.Ascendant != nil {
		return *c.Ascendant, true
	}
	for _, p := range c.Positions {
		if p.Name == body {
			return p, true
		}
	}
	return PlanetPosition{}, false
}

// Points returns the bodies followed by the ascendant when present.
func (c *Chart) Points() []PlanetPosition {
	out := make([]PlanetPosition, 0, len(c.Positions)+1)
	out = append(out, c.Positions...)
	if c.Ascendant != nil {
		out = append(out, *c.Ascendant)
	}
	return out
}

// BirthData is the input for a natal chart.
type BirthData struct {
	Time      time.Time
	Latitude  float64
	Longitude float64

	// TimeUnknown suppresses the ascendant, which depends on the minute.
	TimeUnknown bool
}

// Validate rejects birth data the calculator must not compute from.
func (b BirthData) Validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("%w: birth time is missing", ErrInvalidInput)
	}
	if err := validateInstant(b.Time); err != nil {
		return err
	}
	if math.IsNaN(b.Latitude) || b.Latitude < -90 || b.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidInput, b.Latitude)
	}
	if math.IsNaN(b.Longitude) || b.Longitude < -180 || b.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidInput, b.Longitude)
	}
	return nil
}

func validateInstant(t time.Time) error {
	if t.Before(earliestInstant) || t.After(latestInstant) {
		return fmt.Errorf("%w: %s outside supported range %d–%d",
			ErrInvalidInput, t.UTC().Format(time.RFC3339), earliestInstant.Year(), latestInstant.Year())
	}
	return nil
}

// Calculator builds charts from a position provider.
type Calculator struct {
	provider ephemeris.Provider
}

// NewCalculator returns a calculator over p.
func NewCalculator(p ephemeris.Provider) *Calculator {
	return &Calculator{provider: p}
}

// Natal computes the birth chart, including the ascendant unless the birth
// time is unknown.
func (c *Calculator) Natal(b BirthData) (*Chart, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	loc := ephemeris.Location{Latitude: b.Latitude, Longitude: b.Longitude}
	chart, err := c.snapshot(b.Time, loc)
	if err != nil {
		return nil, err
	}
	chart.Location = &loc

	if !b.TimeUnknown {
		asc := NewPosition(ephemeris.Ascendant, Ascendant(b.Time, b.Latitude, b.Longitude), 0)
		chart.Ascendant = &asc
	}
	return chart, nil
}

// Transit computes the sky at t. Transit charts carry no ascendant.
func (c *Calculator) Transit(t time.Time) (*Chart, error) {
	if t.IsZero() {
		return nil, fmt.Errorf("%w: transit instant is missing", ErrInvalidInput)
	}
	if err := validateInstant(t); err != nil {
		return nil, err
	}
	return c.snapshot(t, ephemeris.Location{})
}

func (c *Calculator) snapshot(t time.Time, loc ephemeris.Location) (*Chart, error) {
	readings, err := c.provider.Positions(t, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	positions := make([]PlanetPosition, 0, len(readings))
	for _, r := range readings {
		positions = append(positions, NewPosition(r.Body, r.Longitude, r.Speed))
	}
	return &Chart{Instant: t.UTC(), Positions: positions}, nil
}
