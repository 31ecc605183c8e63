package narrative

import (
	"github.com/talgya/star-omens/internal/aspects"
	"github.com/talgya/star-omens/internal/ephemeris"
)

// defaultTemplates is the built-in catalog. Order matters: it is the pool
// order the selector indexes into, so append rather than reshuffle.
func defaultTemplates() []Template {
	return []Template{
		// Specific pairings.
		{
			ID: "saturn-opposition-sun", TransitPlanet: ephemeris.Saturn, NatalPlanet: ephemeris.Sun, Aspect: aspects.Opposition,
			Omen:     "A stone wall stands where your road used to bend.",
			Meaning:  "Saturn faces your Sun across the sky. What you built to be seen is being weighed.",
			Practice: "Name one commitment you keep out of habit. Keep it on purpose or set it down.",
		},
		{
			ID: "saturn-square-sun", TransitPlanet: ephemeris.Saturn, NatalPlanet: ephemeris.Sun, Aspect: aspects.Square,
			Omen:     "The clock ticks louder in the quiet rooms.",
			Meaning:  "Friction between duty and self-expression asks for structure, not surrender.",
			Practice: "Do the hardest small task first, before you check anything.",
		},
		{
			ID: "saturn-conjunction-moon", TransitPlanet: ephemeris.Saturn, NatalPlanet: ephemeris.Moon, Aspect: aspects.Conjunction,
			Omen:     "Cold hands knead the bread anyway.",
			Meaning:  "Feelings are asked to carry weight. Care becomes a practice rather than a mood.",
			Practice: "Cook or mend something slowly, with no audience.",
		},
		{
			ID: "jupiter-trine-sun", TransitPlanet: ephemeris.Jupiter, NatalPlanet: ephemeris.Sun, Aspect: aspects.Trine,
			Omen:     "A door you forgot about swings open in a warm draft.",
			Meaning:  "Jupiter flows to your Sun. Confidence finds easy footing today.",
			Practice: "Say yes to one invitation you would usually talk yourself out of.",
		},
		{
			ID: "jupiter-conjunction-sun", TransitPlanet: ephemeris.Jupiter, NatalPlanet: ephemeris.Sun, Aspect: aspects.Conjunction,
			Omen:     "The lantern you carry is suddenly brighter than the street.",
			Meaning:  "Expansion sits right on top of who you are. Take up room.",
			Practice: "Share a plan out loud before it feels finished.",
		},
		{
			ID: "pluto-square-moon", TransitPlanet: ephemeris.Pluto, NatalPlanet: ephemeris.Moon, Aspect: aspects.Square,
			Omen:     "Roots crack the floorboards of an old house.",
			Meaning:  "Something you thought was settled at home is still growing underneath.",
			Practice: "Write down the feeling you keep tidying away. Do not fix it yet.",
		},
		{
			ID: "pluto-conjunction-sun", TransitPlanet: ephemeris.Pluto, NatalPlanet: ephemeris.Sun, Aspect: aspects.Conjunction,
			Omen:     "A snake sheds its skin on a sunlit stone.",
			Meaning:  "Old identity is being composted. The new one is not yet dressed.",
			Practice: "Let one label you use about yourself go unspoken today.",
		},
		{
			ID: "venus-conjunction-venus", TransitPlanet: ephemeris.Venus, NatalPlanet: ephemeris.Venus, Aspect: aspects.Conjunction,
			Omen:     "The orchard you planted is in bloom again.",
			Meaning:  "Venus returns to her own place. What you love is loving you back.",
			Practice: "Buy or pick a flower for no one but yourself.",
		},
		{
			ID: "mars-square-mars", TransitPlanet: ephemeris.Mars, NatalPlanet: ephemeris.Mars, Aspect: aspects.Square,
			Omen:     "Two swords ring against each other in an empty hall.",
			Meaning:  "Your drive meets its own shadow. Impatience is information.",
			Practice: "Move your body hard before you answer anyone sharply.",
		},
		{
			ID: "mars-opposition-moon", TransitPlanet: ephemeris.Mars, NatalPlanet: ephemeris.Moon, Aspect: aspects.Opposition,
			Omen:     "A kettle whistles in a house where everyone is sleeping.",
			Meaning:  "Heat rises against tender places. Not every spark needs tending.",
			Practice: "Let the first reaction pass through. Answer the second.",
		},
		{
			ID: "neptune-square-sun", TransitPlanet: ephemeris.Neptune, NatalPlanet: ephemeris.Sun, Aspect: aspects.Square,
			Omen:     "Fog rolls over the mirror as you lean in.",
			Meaning:  "Self-image blurs. Some of that blur is grace; some is avoidance.",
			Practice: "Check one fact you have been assuming.",
		},
		{
			ID: "mercury-conjunction-mercury", TransitPlanet: ephemeris.Mercury, NatalPlanet: ephemeris.Mercury, Aspect: aspects.Conjunction,
			Omen:     "The messenger arrives carrying your own handwriting.",
			Meaning:  "Your thinking returns to its native rhythm. Words come easier.",
			Practice: "Send the message you drafted and never sent.",
		},
		{
			ID: "uranus-any-ascendant", TransitPlanet: ephemeris.Uranus, NatalPlanet: ephemeris.Ascendant,
			Omen:     "Lightning lights the horizon you wake up facing.",
			Meaning:  "The way you meet the world wants an abrupt update.",
			Practice: "Take a different route somewhere familiar.",
		},

		// Theme-level entries.
		{
			ID: "love-tide", Theme: aspects.ThemeLove,
			Omen:     "A tide of rose water laps at the doorstep.",
			Meaning:  "{transit} stirs your {natal}. Affection and value are being recalibrated.",
			Practice: "Tell someone specifically what you appreciate about them.",
		},
		{
			ID: "love-mirror", Theme: aspects.ThemeLove,
			Omen:     "Two cups are poured though only one guest is expected.",
			Meaning:  "Openness to pleasure brings its own visitors.",
			Practice: "Make one room you use more beautiful.",
		},
		{
			ID: "desire-ember", Theme: aspects.ThemeDesire,
			Omen:     "An ember glows under yesterday's ash.",
			Meaning:  "{transit} touches your {natal}. Want is rekindled; aim it.",
			Practice: "Pick one goal and take the first concrete step before noon.",
		},
		{
			ID: "desire-horse", Theme: aspects.ThemeDesire,
			Omen:     "A red horse paws at the gate.",
			Meaning:  "Restless energy looks for an opening.",
			Practice: "Channel the restlessness into something you can finish today.",
		},
		{
			ID: "discipline-mason", Theme: aspects.ThemeDiscipline,
			Omen:     "A mason sets each stone without looking up.",
			Meaning:  "{transit} presses on your {natal}. Patience is the shortcut.",
			Practice: "Break the task in front of you into three steps and do only the first.",
		},
		{
			ID: "discipline-winter", Theme: aspects.ThemeDiscipline,
			Omen:     "Frost outlines every branch so you can count them.",
			Meaning:  "Limits reveal the shape of what matters.",
			Practice: "Remove one obligation that no longer earns its place.",
		},
		{
			ID: "growth-harvest", Theme: aspects.ThemeGrowth,
			Omen:     "The granary door will not close for all the wheat.",
			Meaning:  "{transit} widens your {natal}. Abundance wants a plan.",
			Practice: "Give away something you have more than enough of.",
		},
		{
			ID: "growth-road", Theme: aspects.ThemeGrowth,
			Omen:     "A road unrolls farther than the map shows.",
			Meaning:  "Learning and travel, inner or outer, are favored.",
			Practice: "Read ten pages of something outside your field.",
		},
		{
			ID: "transformation-phoenix", Theme: aspects.ThemeTransformation,
			Omen:     "Ash rises and remembers it was once a wing.",
			Meaning:  "{transit} works deep beneath your {natal}. Endings are compost.",
			Practice: "Throw out, delete, or return one thing that belongs to an older you.",
		},
		{
			ID: "transformation-cave", Theme: aspects.ThemeTransformation,
			Omen:     "A cave breathes cold air from a deeper chamber.",
			Meaning:  "Power that was hidden asks to be acknowledged.",
			Practice: "Notice where you are giving control away and take one piece back.",
		},
		{
			ID: "dream-sea", Theme: aspects.ThemeDream,
			Omen:     "The sea forgets where the shore was drawn.",
			Meaning:  "{transit} dissolves the edges of your {natal}. Intuition is louder than logic.",
			Practice: "Write down last night's dream, or invent one.",
		},
		{
			ID: "dream-veil", Theme: aspects.ThemeDream,
			Omen:     "A veil moves though no window is open.",
			Meaning:  "Imagination and confusion share a doorway today.",
			Practice: "Make something with no purpose and no deadline.",
		},
		{
			ID: "voice-crossroads", Theme: aspects.ThemeVoice,
			Omen:     "A crow repeats a word you said last week.",
			Meaning:  "{transit} quickens your {natal}. Messages arrive and need sorting.",
			Practice: "Answer one letter fully instead of five partly.",
		},
		{
			ID: "voice-ink", Theme: aspects.ThemeVoice,
			Omen:     "Ink dries before the sentence ends.",
			Meaning:  "Think twice, speak once. The right word is worth the wait.",
			Practice: "Reread before you send.",
		},
		{
			ID: "identity-noon", Theme: aspects.ThemeIdentity,
			Omen:     "At noon your shadow stands directly under you.",
			Meaning:  "{transit} lights your {natal}. You are seen clearly; choose what to show.",
			Practice: "Do one thing today exactly the way you would if no one were grading it.",
		},
		{
			ID: "identity-crown", Theme: aspects.ThemeIdentity,
			Omen:     "A paper crown fits better than you expected.",
			Meaning:  "Leadership is available if you stop waiting to be asked.",
			Practice: "Make the first move in a stalled conversation.",
		},
		{
			ID: "home-hearth", Theme: aspects.ThemeHome,
			Omen:     "The hearth fire leans toward whoever is coldest.",
			Meaning:  "{transit} tends your {natal}. Roots and routines need care.",
			Practice: "Call someone who knew you as a child.",
		},
		{
			ID: "home-tide", Theme: aspects.ThemeHome,
			Omen:     "The moonlit tide carries a bottle back to you.",
			Meaning:  "Moods move quickly; let them pass like weather.",
			Practice: "Eat one meal slowly and at a table.",
		},

		// General fallbacks, drawn regardless of signals.
		{
			ID:       "general-compass",
			Omen:     "The compass needle steadies after a long spin.",
			Meaning:  "No single planet shouts today. Small choices set the course.",
			Practice: "Pick one thing to finish and one to ignore.",
		},
		{
			ID:       "general-well",
			Omen:     "A bucket comes up from the well full and cold.",
			Meaning:  "Ordinary days refill what dramatic ones spend.",
			Practice: "Drink water before coffee.",
		},
		{
			ID:       "general-thread",
			Omen:     "A single thread holds the hem in place.",
			Meaning:  "Consistency does the quiet work.",
			Practice: "Repeat a good habit from yesterday.",
		},
		{
			ID:       "general-starfield",
			Omen:     "Stars fill in one by one as your eyes adjust.",
			Meaning:  "Clarity is gradual. Give it a few minutes.",
			Practice: "Spend five minutes outside without your phone.",
		},
		{
			ID:       "general-ferry",
			Omen:     "The ferry leaves on time whether or not you run.",
			Meaning:  "Some rhythms are larger than you. Move with them.",
			Practice: "Let one thing be late without apologizing.",
		},
		{
			ID:       "general-seed",
			Omen:     "A seed sleeps in a drawer, waiting for spring.",
			Meaning:  "Not every idea is for today. Keep it safe.",
			Practice: "Write down an idea and schedule a date to revisit it.",
		},
	}
}

// generalHeadlines title omens drawn from the fallback templates.
var generalHeadlines = [...]string{
	"The sky keeps its own counsel",
	"A quiet day among the planets",
	"Nothing loud, everything moving",
	"Small weather overhead",
	"The stars hum rather than sing",
}
