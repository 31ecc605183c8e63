// Package narrative holds the omen template catalog and the deterministic
// selector that turns aspect signals into a short reading.
package narrative

import (
	"fmt"
	"slices"

	"github.com/talgya/star-omens/internal/aspects"
	"github.com/talgya/star-omens/internal/ephemeris"
)

// Any is the explicit wildcard for template constraints. An empty constraint
// matches anything as well.
const Any = "Any"

// Template is one catalog entry. Omen, Meaning and Practice may reference
// {transit} and {natal}, filled from the signal that selected the template.
type Template struct {
	ID            string         `json:"id" yaml:"id"`
	TransitPlanet ephemeris.Body `json:"transitPlanet,omitempty" yaml:"transit_planet,omitempty"`
	NatalPlanet   ephemeris.Body `json:"natalPlanet,omitempty" yaml:"natal_planet,omitempty"`
	Aspect        aspects.Aspect `json:"aspectType,omitempty" yaml:"aspect,omitempty"`
	Theme         aspects.Theme  `json:"theme,omitempty" yaml:"theme,omitempty"`
	Omen          string         `json:"omenText" yaml:"omen"`
	Meaning       string         `json:"meaningText" yaml:"meaning"`
	Practice      string         `json:"practiceText" yaml:"practice"`
}

func wildcard[T ~string](v T) bool {
	return v == "" || string(v) == Any
}

// General reports whether the template is a signal-independent fallback.
func (t Template) General() bool {
	return (wildcard(t.Theme) || t.Theme == aspects.ThemeGeneral) &&
		wildcard(t.TransitPlanet) &&
		wildcard(t.NatalPlanet) &&
		wildcard(t.Aspect)
}

// Matches reports whether every constraint on t admits s.
func (t Template) Matches(s aspects.Signal) bool {
	return (wildcard(t.TransitPlanet) || t.TransitPlanet == s.TransitPlanet) &&
		(wildcard(t.NatalPlanet) || t.NatalPlanet == s.NatalPlanet) &&
		(wildcard(t.Aspect) || t.Aspect == s.Aspect) &&
		(wildcard(t.Theme) || t.Theme == s.Theme)
}

// Bank is an immutable, ordered template catalog.
type Bank struct {
	templates []Template
	byID      map[string]int
}

// NewBank validates and copies templates. IDs must be present and unique;
// order is preserved and is part of selection.
func NewBank(templates []Template) (*Bank, error) {
	b := &Bank{
		templates: make([]Template, 0, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	for i, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %d: missing id", i)
		}
		if _, dup := b.byID[t.ID]; dup {
			return nil, fmt.Errorf("template %d: duplicate id %q", i, t.ID)
		}
		if t.Omen == "" {
			return nil, fmt.Errorf("template %q: empty omen text", t.ID)
		}
		if !wildcard(t.Aspect) {
			if _, ok := aspects.Lookup(t.Aspect); !ok {
				return nil, fmt.Errorf("template %q: unknown aspect %q", t.ID, t.Aspect)
			}
		}
		if !wildcard(t.Theme) && !slices.Contains(aspects.Themes(), t.Theme) {
			return nil, fmt.Errorf("template %q: unknown theme %q", t.ID, t.Theme)
		}
		b.byID[t.ID] = len(b.templates)
		b.templates = append(b.templates, t)
	}
	return b, nil
}

// DefaultBank returns the built-in catalog.
func DefaultBank() *Bank {
	b, err := NewBank(defaultTemplates())
	if err != nil {
		panic(fmt.Sprintf("narrative: built-in catalog: %v", err))
	}
	return b
}

// Len returns the number of templates.
func (b *Bank) Len() int { return len(b.templates) }

// Templates returns a copy of the catalog in order.
func (b *Bank) Templates() []Template {
	out := make([]Template, len(b.templates))
	copy(out, b.templates)
	return out
}

// Get looks up a template by ID.
func (b *Bank) Get(id string) (Template, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Template{}, false
	}
	return b.templates[i], true
}

// GeneralIDs returns the IDs of every fallback template, in order.
func (b *Bank) GeneralIDs() []string {
	var ids []string
	for _, t := range b.templates {
		if t.General() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
