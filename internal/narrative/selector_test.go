package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/star-omens/internal/aspects"
	"github.com/talgya/star-omens/internal/ephemeris"
)

func signal(transit, natal ephemeris.Body, a aspects.Aspect, score float64) aspects.Signal {
	return aspects.Signal{
		TransitPlanet: transit,
		NatalPlanet:   natal,
		Aspect:        a,
		Score:         score,
		Theme:         aspects.ThemeFor(transit, natal),
	}
}

func sampleSignals() []aspects.Signal {
	return []aspects.Signal{
		signal(ephemeris.Saturn, ephemeris.Sun, aspects.Opposition, 5.2),
		signal(ephemeris.Venus, ephemeris.Moon, aspects.Trine, 0.8),
		signal(ephemeris.Mercury, ephemeris.Mars, aspects.Sextile, 0.2),
	}
}

func ids(ts []Template) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

func TestDefaultBankValid(t *testing.T) {
	b := DefaultBank()
	require.NotZero(t, b.Len())
	assert.NotEmpty(t, b.GeneralIDs())

	for _, tmpl := range b.Templates() {
		assert.NotEmpty(t, tmpl.Omen, tmpl.ID)
		assert.NotEmpty(t, tmpl.Meaning, tmpl.ID)
		assert.NotEmpty(t, tmpl.Practice, tmpl.ID)
		if tmpl.General() {
			assert.NotContains(t, tmpl.Meaning, "{transit}", "general templates have no signal to fill from")
		}
	}
}

func TestNewBankRejectsBadIDs(t *testing.T) {
	_, err := NewBank([]Template{{Omen: "x"}})
	assert.Error(t, err)

	_, err = NewBank([]Template{{ID: "a", Omen: "x"}, {ID: "a", Omen: "y"}})
	assert.Error(t, err)

	_, err = NewBank([]Template{{ID: "a", Omen: "x", Aspect: "quincunx"}})
	assert.ErrorContains(t, err, "unknown aspect")

	_, err = NewBank([]Template{{ID: "a", Omen: "x", Theme: "weather"}})
	assert.ErrorContains(t, err, "unknown theme")

	_, err = NewBank([]Template{{ID: "a", Omen: "x", Aspect: Any, Theme: aspects.ThemeGeneral}})
	assert.NoError(t, err)

	b, err := NewBank([]Template{{ID: "a", Omen: "x"}, {ID: "b", Omen: "y"}})
	require.NoError(t, err)
	got, ok := b.Get("b")
	require.True(t, ok)
	assert.Equal(t, "y", got.Omen)
}

func TestTemplateMatching(t *testing.T) {
	sig := signal(ephemeris.Saturn, ephemeris.Sun, aspects.Opposition, 1)

	assert.True(t, Template{TransitPlanet: ephemeris.Saturn}.Matches(sig))
	assert.True(t, Template{TransitPlanet: Any, Theme: aspects.ThemeDiscipline}.Matches(sig))
	assert.True(t, Template{}.Matches(sig))
	assert.False(t, Template{TransitPlanet: ephemeris.Jupiter}.Matches(sig))
	assert.False(t, Template{Theme: aspects.ThemeLove}.Matches(sig))
	assert.False(t, Template{TransitPlanet: ephemeris.Saturn, Aspect: aspects.Square}.Matches(sig))

	assert.True(t, Template{}.General())
	assert.True(t, Template{Theme: Any}.General())
	assert.True(t, Template{Theme: aspects.ThemeGeneral}.General())
	assert.False(t, Template{Theme: aspects.ThemeLove}.General())
	assert.False(t, Template{NatalPlanet: ephemeris.Sun}.General())
}

func TestSelectDeterministic(t *testing.T) {
	s := NewSelector(nil)
	sigs := sampleSignals()

	first := s.Select(sigs, "2024-06-01|u1", nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, s.Select(sigs, "2024-06-01|u1", nil))
	}
	assert.Equal(t, first, Select(sigs, "2024-06-01|u1", nil))
}

func TestSelectPoolOrderAndTopN(t *testing.T) {
	bank, err := NewBank([]Template{
		{ID: "saturn", TransitPlanet: ephemeris.Saturn, Omen: "s"},
		{ID: "general-a", Omen: "g"},
		{ID: "venus", TransitPlanet: ephemeris.Venus, Omen: "v"},
		{ID: "mercury", TransitPlanet: ephemeris.Mercury, Omen: "m"},
		{ID: "pluto", TransitPlanet: ephemeris.Pluto, Omen: "p"},
	})
	require.NoError(t, err)
	s := NewSelector(bank)

	sigs := append(sampleSignals(), signal(ephemeris.Pluto, ephemeris.Sun, aspects.Sextile, 0.01))
	pool := s.pool(topSignals(sigs, DefaultTopSignals))
	assert.Equal(t, []string{"saturn", "general-a", "venus", "mercury"}, ids(pool))

	pool = s.pool(nil)
	assert.Equal(t, []string{"general-a"}, ids(pool))
}

func TestSelectSignalTemplateProvenance(t *testing.T) {
	bank, err := NewBank([]Template{
		{
			ID:            "saturn-opp",
			TransitPlanet: ephemeris.Saturn,
			Aspect:        aspects.Opposition,
			Omen:          "{transit} leans on your {natal}.",
			Meaning:       "m",
			Practice:      "p",
		},
	})
	require.NoError(t, err)

	o := NewSelector(bank).Select(sampleSignals(), "seed", nil)
	assert.Equal(t, "saturn-opp", o.Provenance.TemplateID)
	assert.Equal(t, "Saturn opposes your Sun", o.Headline)
	assert.Equal(t, "Saturn leans on your Sun.", o.Omen)
	require.Len(t, o.Provenance.SignalsUsed, 1)
	assert.Equal(t, ephemeris.Saturn, o.Provenance.SignalsUsed[0].TransitPlanet)
	assert.False(t, o.Provenance.Fallback)
	assert.Equal(t, 1, o.Provenance.PoolSize)
}

func TestSelectNoSignalsUsesGeneral(t *testing.T) {
	for _, seed := range []string{"a", "b", "c", "2024-01-01|x", ""} {
		o := Select(nil, seed, nil)
		tmpl, ok := DefaultBank().Get(o.Provenance.TemplateID)
		require.True(t, ok, seed)
		assert.True(t, tmpl.General(), seed)
		assert.True(t, o.Provenance.Fallback)
		assert.NotNil(t, o.Provenance.SignalsUsed)
		assert.Empty(t, o.Provenance.SignalsUsed)
		assert.NotEmpty(t, o.Headline)
	}
}

func TestSelectEmptyPoolFallsBack(t *testing.T) {
	bank, err := NewBank([]Template{{ID: "jupiter", TransitPlanet: ephemeris.Jupiter, Omen: "j"}})
	require.NoError(t, err)

	o := NewSelector(bank).Select(sampleSignals(), "seed", nil)
	assert.Equal(t, FallbackTemplateID, o.Provenance.TemplateID)
	assert.True(t, o.Provenance.Fallback)
	assert.NotEmpty(t, o.Omen)
	assert.NotNil(t, o.Provenance.SignalsUsed)
}

func TestSelectExcludesRecent(t *testing.T) {
	s := NewSelector(nil)
	sigs := sampleSignals()
	first := s.Select(sigs, "seed-1", nil)

	second := s.Select(sigs, "seed-1", []string{first.Provenance.TemplateID})
	assert.NotEqual(t, first.Provenance.TemplateID, second.Provenance.TemplateID)
	assert.False(t, second.Provenance.RepetitionIgnored)
}

func TestSelectRecentCoversWholePool(t *testing.T) {
	s := NewSelector(nil)
	sigs := sampleSignals()
	pool := s.pool(topSignals(sigs, DefaultTopSignals))
	recent := ids(pool)

	o := s.Select(sigs, "seed-2", recent)
	assert.Contains(t, recent, o.Provenance.TemplateID)
	assert.True(t, o.Provenance.RepetitionIgnored)
	assert.Equal(t, len(pool), o.Provenance.PoolSize)

	// Unfiltered pool means the same pick as with no history at all.
	plain := s.Select(sigs, "seed-2", nil)
	assert.Equal(t, plain.Provenance.TemplateID, o.Provenance.TemplateID)
}

func TestSelectDoesNotMutateInputs(t *testing.T) {
	sigs := []aspects.Signal{
		signal(ephemeris.Venus, ephemeris.Moon, aspects.Trine, 0.8),
		signal(ephemeris.Saturn, ephemeris.Sun, aspects.Opposition, 5.2),
	}
	recent := []string{"love-tide"}
	Select(sigs, "seed", recent)

	assert.Equal(t, ephemeris.Venus, sigs[0].TransitPlanet)
	assert.Equal(t, []string{"love-tide"}, recent)
}

func TestHeadline(t *testing.T) {
	assert.Equal(t, "Jupiter trines your Moon", Headline(signal(ephemeris.Jupiter, ephemeris.Moon, aspects.Trine, 1)))
	assert.Equal(t, "Mars meets your Ascendant", Headline(signal(ephemeris.Mars, ephemeris.Ascendant, aspects.Conjunction, 1)))
}
