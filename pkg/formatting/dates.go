package formatting

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used by the API and CLI.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date in DateLayout, anchored to UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", s, DateLayout)
	}
	return t, nil
}

// FormatDate renders a timestamp's calendar date in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
