package aspects

import "github.com/talgya/star-omens/internal/ephemeris"

// Theme is the archetypal subject a signal speaks to.
type Theme string

// Themes.
const (
	ThemeLove           Theme = "love"
	ThemeDesire         Theme = "desire"
	ThemeDiscipline     Theme = "discipline"
	ThemeGrowth         Theme = "growth"
	ThemeTransformation Theme = "transformation"
	ThemeDream          Theme = "dream"
	ThemeVoice          Theme = "voice"
	ThemeIdentity       Theme = "identity"
	ThemeHome           Theme = "home"

	// ThemeGeneral covers pairs with no tagged body (Uranus to Ascendant).
	ThemeGeneral Theme = "general"
)

var themePriority = [...]struct {
	body  ephemeris.Body
	theme Theme
}{
	{ephemeris.Venus, ThemeLove},
	{ephemeris.Mars, ThemeDesire},
	{ephemeris.Saturn, ThemeDiscipline},
	{ephemeris.Jupiter, ThemeGrowth},
	{ephemeris.Pluto, ThemeTransformation},
	{ephemeris.Neptune, ThemeDream},
	{ephemeris.Mercury, ThemeVoice},
	{ephemeris.Sun, ThemeIdentity},
	{ephemeris.Moon, ThemeHome},
}

// ThemeFor tags a pair. The transiting body decides when it carries a theme;
// otherwise the natal body does.
func ThemeFor(transit, natal ephemeris.Body) Theme {
	for _, b := range [2]ephemeris.Body{transit, natal} {
		for _, tp := range themePriority {
			if tp.body == b {
				return tp.theme
			}
		}
	}
	return ThemeGeneral
}

// Themes returns every theme, general last.
func Themes() []Theme {
	out := make([]Theme, 0, len(themePriority)+1)
	for _, tp := range themePriority {
		out = append(out, tp.theme)
	}
	return append(out, ThemeGeneral)
}
