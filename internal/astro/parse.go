package astro

import (
	"fmt"
	"strings"
	"time"
)

// Layouts carrying a time of day. Zone-less layouts are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006, 3:04 PM",
	"January 2, 2006 15:04",
	"January 2, 2006 3:04 PM",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006 3:04 PM",
}

// Date-only layouts. The birth time is unknown and noon UTC stands in.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseBirthDateTime reads an ISO-8601 or common US-locale date string.
// timeKnown is false for date-only input. Slash dates are month-first.
func ParseBirthDateTime(s string) (t time.Time, timeKnown bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, fmt.Errorf("%w: empty birth date", ErrInvalidInput)
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true, nil
		}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Add(12 * time.Hour).UTC(), false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("%w: unrecognized birth date %q", ErrInvalidInput, s)
}
