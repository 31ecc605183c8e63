package daily

// DefaultPools returns the built-in line tables. Each call builds fresh maps
// so callers cannot alter another caller's tables.
func DefaultPools() Pools {
	return Pools{
		Omen: map[Role]map[Cycle][]string{
			Seer: {
				Day: {
					"A bird crosses left to right. Trust the first instinct today.",
					"The light through the window is the answer you asked for.",
					"Something small and bright is about to be noticed.",
				},
				Week: {
					"By the seventh dawn a hidden road shows its first stone.",
					"This week the river bends toward you.",
					"A face from before returns with a different question.",
				},
				Month: {
					"The moon will swell and shrink; let one plan do the same.",
					"This month the harvest is in the details.",
					"A threshold waits near the month's turning.",
				},
				Year: {
					"This year the mountain is climbed by switchbacks.",
					"Seeds planted in doubt will flower by the next equinox.",
					"The long road curves toward a house you have not seen yet.",
				},
			},
			Scribe: {
				Day: {
					"Write down the sentence you keep rehearsing.",
					"Today's entry: one clear fact, one honest feeling.",
					"A list made this morning saves an argument tonight.",
				},
				Week: {
					"Keep a ledger of small wins; read it on the seventh day.",
					"This week, draft before you decide.",
					"Note who answers quickly and who answers well.",
				},
				Month: {
					"Start a page that only gets one line a day.",
					"This month, archive what no longer needs a reply.",
					"A letter written now will be read at the right time.",
				},
				Year: {
					"The story of this year is being written in the margins.",
					"Keep this year's notes; they become next year's map.",
					"One chapter closes, and its last line is kinder than you expect.",
				},
			},
			Keeper: {
				Day: {
					"Guard your first hour. Everything else can wait.",
					"Water the plant, lock the door, call your mother.",
					"Keep the hearth warm; someone will need it.",
				},
				Week: {
					"This week, mend before you replace.",
					"Protect one evening from everyone, including yourself.",
					"Stock the shelves; a lean day is coming and will pass.",
				},
				Month: {
					"This month, tend the roots and ignore the leaves.",
					"A routine kept for thirty days becomes a wall that holds.",
					"Return what you borrowed before the month turns.",
				},
				Year: {
					"Build the fence this year that you wished for last year.",
					"This year the house gets quieter and steadier.",
					"Keep the old key; one door still fits it.",
				},
			},
			Trickster: {
				Day: {
					"Do the thing backwards and see who notices.",
					"Today the shortcut is the long way round.",
					"Laugh first. The serious answer will still be there.",
				},
				Week: {
					"This week, break one rule you made for yourself.",
					"Swap chairs, swap routes, swap opinions for a day.",
					"A mistake this week turns out to be the invention.",
				},
				Month: {
					"This month the joke is on whoever plans too hard.",
					"Wear the wrong color on purpose and call it a strategy.",
					"Turn the calendar upside down; the best day is hiding.",
				},
				Year: {
					"This year, the fool's errand pays.",
					"The crown fits better when you wear it crooked.",
					"Take the year less seriously and it will take you further.",
				},
			},
		},
		Transit: map[Cycle][]string{
			Day: {
				"The Moon changes rooms; moods follow.",
				"Mercury hums along the wires today.",
				"Venus leans close; small kindnesses land softly.",
				"Mars sharpens the morning and dulls by dusk.",
			},
			Week: {
				"The Sun edges a degree a day across your sky.",
				"Venus moves a sign's width this week.",
				"Mercury gathers speed; messages stack up.",
				"The Moon completes a quarter turn before Sunday.",
			},
			Month: {
				"The Sun crosses into a new sign this month.",
				"Mars spends the month testing one boundary.",
				"A full lunar cycle resets the tides.",
				"Venus walks through a full sign of your chart.",
			},
			Year: {
				"Jupiter moves house once this year.",
				"Saturn grinds slowly through a single sign.",
				"The outer planets barely move, and that is their lesson.",
				"Eclipses mark two turning points in the year.",
			},
		},
	}
}
