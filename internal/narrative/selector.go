package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/star-omens/internal/aspects"
	"github.com/talgya/star-omens/internal/entropy"
)

// DefaultTopSignals is how many of the strongest signals may drive a pick.
const DefaultTopSignals = 3

// FallbackTemplateID marks an omen produced without any usable template.
const FallbackTemplateID = "fallback"

// Omen is a selected reading.
type Omen struct {
	Headline   string     `json:"headline"`
	Omen       string     `json:"omenText"`
	Meaning    string     `json:"meaningText"`
	Practice   string     `json:"practiceText"`
	Provenance Provenance `json:"provenance"`
}

// Provenance records how an omen was chosen.
type Provenance struct {
	SignalsUsed       []aspects.Signal `json:"signalsUsed"`
	TemplateID        string           `json:"templateId"`
	PoolSize          int              `json:"poolSize"`
	Fallback          bool             `json:"fallback"`
	RepetitionIgnored bool             `json:"repetitionIgnored,omitempty"`
}

// Selector picks templates from a bank.
type Selector struct {
	bank *Bank
	top  int
}

// NewSelector returns a Selector over bank. A nil bank uses DefaultBank.
func NewSelector(bank *Bank) *Selector {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Selector{bank: bank, top: DefaultTopSignals}
}

// Bank returns the catalog the selector draws from.
func (s *Selector) Bank() *Bank { return s.bank }

// Select deterministically chooses an omen. The same signals, seed and
// recent list always produce the same omen. recent is never modified.
func (s *Selector) Select(signals []aspects.Signal, seed string, recent []string) Omen {
	top := topSignals(signals, s.top)
	pool := s.pool(top)
	if len(pool) == 0 {
		return fallbackOmen(seed)
	}

	candidates, ignored := excludeRecent(pool, recent)
	chosen := candidates[entropy.Pick(seed, len(candidates))]

	used := []aspects.Signal{}
	if !chosen.General() {
		for _, sig := range top {
			if chosen.Matches(sig) {
				used = append(used, sig)
			}
		}
	}

	o := Omen{
		Omen:     chosen.Omen,
		Meaning:  chosen.Meaning,
		Practice: chosen.Practice,
		Provenance: Provenance{
			SignalsUsed:       used,
			TemplateID:        chosen.ID,
			PoolSize:          len(candidates),
			Fallback:          len(used) == 0,
			RepetitionIgnored: ignored,
		},
	}
	if len(used) > 0 {
		lead := used[0]
		o.Headline = Headline(lead)
		r := strings.NewReplacer("{transit}", string(lead.TransitPlanet), "{natal}", string(lead.NatalPlanet))
		o.Omen = r.Replace(o.Omen)
		o.Meaning = r.Replace(o.Meaning)
		o.Practice = r.Replace(o.Practice)
	} else {
		o.Headline = generalHeadline(seed)
	}
	return o
}

// pool collects matching and general templates in bank order.
func (s *Selector) pool(top []aspects.Signal) []Template {
	var pool []Template
	for _, t := range s.bank.templates {
		if t.General() {
			pool = append(pool, t)
			continue
		}
		for _, sig := range top {
			if t.Matches(sig) {
				pool = append(pool, t)
				break
			}
		}
	}
	return pool
}

func topSignals(signals []aspects.Signal, n int) []aspects.Signal {
	sorted := make([]aspects.Signal, len(signals))
	copy(sorted, signals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// excludeRecent drops recently used templates unless that would leave
// nothing, in which case the full pool comes back and ignored is true.
func excludeRecent(pool []Template, recent []string) (out []Template, ignored bool) {
	if len(recent) == 0 {
		return pool, false
	}
	skip := make(map[string]struct{}, len(recent))
	for _, id := range recent {
		skip[id] = struct{}{}
	}
	out = make([]Template, 0, len(pool))
	for _, t := range pool {
		if _, ok := skip[t.ID]; !ok {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return pool, true
	}
	return out, false
}

// Headline phrases a signal, e.g. "Saturn opposes your Sun".
func Headline(s aspects.Signal) string {
	verb := "meets"
	if def, ok := aspects.Lookup(s.Aspect); ok {
		verb = def.Verb
	}
	return fmt.Sprintf("%s %s your %s", s.TransitPlanet, verb, s.NatalPlanet)
}

func generalHeadline(seed string) string {
	return generalHeadlines[entropy.Pick(entropy.Compose(seed, "headline"), len(generalHeadlines))]
}

func fallbackOmen(seed string) Omen {
	return Omen{
		Headline: generalHeadline(seed),
		Omen:     "The sky is quiet and keeps its own counsel.",
		Meaning:  "No pattern stands out today.",
		Practice: "Tend to what is in front of you.",
		Provenance: Provenance{
			SignalsUsed: []aspects.Signal{},
			TemplateID:  FallbackTemplateID,
			Fallback:    true,
		},
	}
}

var defaultSelector = NewSelector(nil)

// Select chooses an omen from the built-in catalog.
func Select(signals []aspects.Signal, seed string, recent []string) Omen {
	return defaultSelector.Select(signals, seed, recent)
}
