package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// AllRoutes is the sentinel route filter that passes every row. It is not
// a valid GTFS route_short_name.
const AllRoutes = "*"

// MinutesSinceMidnight converts an HH:mm or HH:mm:ss string to minutes
// since midnight. Seconds are ignored; hours may exceed 23, matching the
// raw GTFS encoding of past-midnight times.
func MinutesSinceMidnight(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	return hours*60 + minutes, nil
}

// FilterByService keeps rows whose service_id is in the active set.
func FilterByService(rows []Row, active map[string]struct{}) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if _, ok := active[r[FieldServiceID]]; ok {
			out = append(out, r)
		}
	}
	return out
}

// FilterByTimeWindow keeps rows whose arrival time falls in the half-open
// window [target, target+window) minutes. The window looks forward from
// the requested time only. Rows with unparseable arrival times are dropped.
func FilterByTimeWindow(rows []Row, targetMinutes, windowMinutes int) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		arr, err := MinutesSinceMidnight(r[FieldArrivalTime])
		if err != nil {
			continue
		}
		if arr >= targetMinutes && arr < targetMinutes+windowMinutes {
			out = append(out, r)
		}
	}
	return out
}

// FilterByRoute keeps rows matching the route short name exactly, or all
// rows when the AllRoutes sentinel is given.
func FilterByRoute(rows []Row, shortName string) []Row {
	if shortName == AllRoutes {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r[FieldRouteShort] == shortName {
			out = append(out, r)
		}
	}
	return out
}
