package analytics

import "time"

// FilterRange returns the subset of rows whose approval date falls within
// the inclusive [start, end] calendar-date range. Rows without an approval
// timestamp are excluded, matching the original dataset semantics where
// unapproved orders never enter time-keyed views. Bounds are compared on
// calendar date; the time-of-day of both the bounds and the rows is
// ignored, but row timestamps are retained unchanged in the output.
//
// The filter itself is tolerant: an inverted or out-of-domain range yields
// an empty table, not an error. Run validates ranges before calling it.
func FilterRange(t Table, start, end time.Time) Table {
	startDate := DateOf(start)
	endDate := DateOf(end)

	filtered := make(Table, 0, len(t))
	for _, row := range t {
		if row.ApprovedAt == nil {
			continue
		}
		d := DateOf(*row.ApprovedAt)
		if d.Before(startDate) || d.After(endDate) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}
