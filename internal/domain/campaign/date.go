package campaign

import (
	"time"

	"github.com/go-faster/errors"
)

// dateLayout is the wire and storage format for civil dates.
const dateLayout = "2006-01-02"

// Date is a civil calendar date in "YYYY-MM-DD" form, with no time zone
// or clock component. The format orders lexicographically the same way it
// orders chronologically, so comparisons are plain string comparisons.
type Date string

// ParseDate validates s as a "YYYY-MM-DD" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", errors.Wrapf(err, "parse date %q", s)
	}
	// Round-trip to reject shorthand forms the layout tolerates.
	if t.Format(dateLayout) != s {
		return "", errors.Errorf("invalid date %q", s)
	}
	return Date(s), nil
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) String() string { return string(d) }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d > other }

// Window is an inclusive validity window. A nil bound leaves that side
// open: no start means active since forever, no end means active until
// turned off.
type Window struct {
	Start *Date
	End   *Date
}

// Contains reports whether day falls inside the window, bounds included.
func (w Window) Contains(day Date) bool {
	if w.Start != nil && day.Before(*w.Start) {
		return false
	}
	if w.End != nil && day.After(*w.End) {
		return false
	}
	return true
}

// Expired reports whether the window's end date has passed as of day.
func (w Window) Expired(day Date) bool {
	return w.End != nil && day.After(*w.End)
}
