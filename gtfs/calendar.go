package gtfs

import (
	"time"
)

const dateLayout = "20060102"

// parseDate parses a YYYYMMDD calendar date. The zero return with ok=false
// marks a malformed date; callers fail closed on it.
func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// isoWeekdayIndex returns 0 for Monday through 6 for Sunday.
func isoWeekdayIndex(d time.Time) int {
	wd := int(d.Weekday()) // Sunday = 0
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// ActiveServices computes the set of service IDs running on date.
//
// A Calendar contributes its service when the weekday flag for date is set
// and date falls within the closed [StartDate, EndDate] interval, compared
// as calendar values. CalendarDates for the exact date then override the
// base set: added inserts, removed deletes. Overrides are idempotent, so
// duplicate exceptions are harmless, and a removal always wins over an
// addition for the same service and date. Records whose dates fail to
// parse are excluded from consideration.
func ActiveServices(date time.Time, cals []Calendar, excs []CalendarDate) map[string]struct{} {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	weekday := isoWeekdayIndex(day)

	active := make(map[string]struct{})
	for _, c := range cals {
		if !c.Weekdays[weekday] {
			continue
		}
		start, ok := parseDate(c.StartDate)
		if !ok {
			continue
		}
		end, ok := parseDate(c.EndDate)
		if !ok {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		active[c.ServiceID] = struct{}{}
	}

	// Additions first, removals second: removal wins on a same-day conflict.
	target := day.Format(dateLayout)
	for _, e := range excs {
		if e.ExceptionType != ExceptionAdded || !sameDate(e.Date, target) {
			continue
		}
		active[e.ServiceID] = struct{}{}
	}
	for _, e := range excs {
		if e.ExceptionType != ExceptionRemoved || !sameDate(e.Date, target) {
			continue
		}
		delete(active, e.ServiceID)
	}
	return active
}

// sameDate compares an exception date against a normalized YYYYMMDD target.
// Malformed exception dates never match.
func sameDate(raw, target string) bool {
	d, ok := parseDate(raw)
	if !ok {
		return false
	}
	return d.Format(dateLayout) == target
}
