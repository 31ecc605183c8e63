// Package engine turns chart and daily-line requests into readings. It owns
// no state of its own; history and chart caching are injected.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/star-omens/internal/aspects"
	"github.com/talgya/star-omens/internal/astro"
	"github.com/talgya/star-omens/internal/daily"
	"github.com/talgya/star-omens/internal/entropy"
	"github.com/talgya/star-omens/internal/ephemeris"
	"github.com/talgya/star-omens/internal/narrative"
)

// HistoryDepth is how many earlier days of templates count as recent.
const HistoryDepth = 7

// userNamespace scopes derived user keys.
var userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://star-omens/users"))

// History persists which template each user saw per day.
type History interface {
	// RecentTemplateIDs returns template IDs from days other than dayKey,
	// newest first.
	RecentTemplateIDs(userKey, dayKey string, limit int) ([]string, error)
	RecordOmen(userKey, dayKey, templateID string) error
}

// ChartStore caches natal charts by birth key.
type ChartStore interface {
	// NatalChart returns nil without error when the key is unknown.
	NatalChart(key string) (*astro.Chart, error)
	SaveNatalChart(key string, c *astro.Chart) error
}

// Observer receives notifications about selections.
type Observer interface {
	OmenSelected(p narrative.Provenance)
	DegeneratePosition(body ephemeris.Body)
}

// Engine wires the calculator, detector, selector and synthesizer.
type Engine struct {
	calc     *astro.Calculator
	selector *narrative.Selector
	lines    *daily.Synthesizer

	history  History
	charts   ChartStore
	observer Observer
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistory persists and consults per-user template history.
func WithHistory(h History) Option { return func(e *Engine) { e.history = h } }

// WithChartStore caches natal charts.
func WithChartStore(s ChartStore) Option { return func(e *Engine) { e.charts = s } }

// WithObserver reports selections, typically to metrics.
func WithObserver(o Observer) Option { return func(e *Engine) { e.observer = o } }

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New creates an Engine. A nil selector or synthesizer falls back to the
// built-in catalogs.
func New(calc *astro.Calculator, selector *narrative.Selector, lines *daily.Synthesizer, opts ...Option) *Engine {
	if selector == nil {
		selector = narrative.NewSelector(nil)
	}
	if lines == nil {
		lines = daily.NewDefault()
	}
	e := &Engine{
		calc:     calc,
		selector: selector,
		lines:    lines,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ChartRequest asks for a reading of a birth chart against the current sky.
type ChartRequest struct {
	BirthDateTime string
	Latitude      float64
	Longitude     float64

	// Optional.
	UserSeed          string
	DayKey            string
	RecentTemplateIDs []string
}

// DailyRequest asks for the per-role daily lines.
type DailyRequest struct {
	AstroProfile string
	UserSeed     string
	DayKey       string
	Cycle        string
}

// Chart computes a full reading. Only input and computation errors are
// returned; history and cache failures are logged and skipped.
func (e *Engine) Chart(req ChartRequest) (*Reading, error) {
	when, timeKnown, err := astro.ParseBirthDateTime(req.BirthDateTime)
	if err != nil {
		return nil, err
	}
	birth := astro.BirthData{
		Time:        when,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		TimeUnknown: !timeKnown,
	}
	if err := birth.Validate(); err != nil {
		return nil, err
	}

	natal, err := e.natal(birth)
	if err != nil {
		return nil, fmt.Errorf("natal chart: %w", err)
	}

	now := e.now()
	transit, err := e.calc.Transit(now)
	if err != nil {
		return nil, fmt.Errorf("transit chart: %w", err)
	}
	e.reportDegenerate(natal)
	e.reportDegenerate(transit)

	signals := aspects.Detect(natal.Points(), transit.Positions)

	dayKey := daily.ResolveDayKey(req.DayKey, now)
	userKey := req.UserSeed
	if userKey == "" {
		userKey = UserKey(birth)
	}

	recent := e.recent(userKey, dayKey, req.RecentTemplateIDs)
	omen := e.selector.Select(signals, entropy.Compose(dayKey, userKey), recent)
	if e.observer != nil {
		e.observer.OmenSelected(omen.Provenance)
	}
	if e.history != nil {
		if err := e.history.RecordOmen(userKey, dayKey, omen.Provenance.TemplateID); err != nil {
			slog.Warn("record omen history failed", "user", userKey, "error", err)
		}
	}

	return buildReading(natal, transit, signals, omen, dayKey, userKey, now), nil
}

// Daily returns every role's lines for one profile.
func (e *Engine) Daily(req DailyRequest) daily.Bundle {
	return e.lines.Bundle(req.AstroProfile, req.UserSeed, req.DayKey, daily.Cycle(req.Cycle), e.now())
}

// DailyRole returns one role's lines.
func (e *Engine) DailyRole(role daily.Role, req DailyRequest) daily.Result {
	return e.lines.Lines(role, req.AstroProfile, req.UserSeed, req.DayKey, daily.Cycle(req.Cycle), e.now())
}

func (e *Engine) natal(b astro.BirthData) (*astro.Chart, error) {
	if e.charts == nil {
		return e.calc.Natal(b)
	}

	key := BirthKey(b)
	cached, err := e.charts.NatalChart(key)
	if err != nil {
		slog.Warn("natal chart cache read failed", "key", key, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	c, err := e.calc.Natal(b)
	if err != nil {
		return nil, err
	}
	if err := e.charts.SaveNatalChart(key, c); err != nil {
		slog.Warn("natal chart cache write failed", "key", key, "error", err)
	}
	return c, nil
}

// recent merges caller-supplied IDs with stored history.
func (e *Engine) recent(userKey, dayKey string, supplied []string) []string {
	out := append([]string(nil), supplied...)
	if e.history == nil {
		return out
	}
	stored, err := e.history.RecentTemplateIDs(userKey, dayKey, HistoryDepth)
	if err != nil {
		slog.Warn("load omen history failed", "user", userKey, "error", err)
		return out
	}
	return append(out, stored...)
}

func (e *Engine) reportDegenerate(c *astro.Chart) {
	for _, p := range c.Points() {
		if p.Degenerate {
			slog.Warn("degenerate position", "body", p.Name, "instant", c.Instant)
			if e.observer != nil {
				e.observer.DegeneratePosition(p.Name)
			}
		}
	}
}

// BirthKey identifies birth data for caching. Coordinates are rounded to
// four decimals, about eleven metres.
func BirthKey(b astro.BirthData) string {
	return entropy.Compose(
		b.Time.UTC().Format(time.RFC3339),
		strconv.FormatFloat(roundTo(b.Latitude, 4), 'f', 4, 64),
		strconv.FormatFloat(roundTo(b.Longitude, 4), 'f', 4, 64),
		strconv.FormatBool(!b.TimeUnknown),
	)
}

// UserKey derives a stable anonymous user key from birth data.
func UserKey(b astro.BirthData) string {
	return uuid.NewSHA1(userNamespace, []byte(BirthKey(b))).String()
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
