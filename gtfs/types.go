package gtfs

// Column positions within the raw GTFS tables. The loader consumes rows as
// ordered field arrays and converts them into the record types below once.
const (
	colStopID        = 0
	colStopName      = 2
	colParentStation = 9

	colStopTimeTripID   = 0
	colStopTimeArrival  = 1
	colStopTimeStopID   = 3
	colStopTimeSequence = 4

	colTripRouteID   = 0
	colTripServiceID = 1
	colTripID        = 2
	colTripHeadsign  = 3

	colRouteID        = 0
	colRouteShortName = 1
	colRouteLongName  = 2

	colCalServiceID = 0
	colCalStartDate = 8
	colCalEndDate   = 9

	colCalDateServiceID = 0
	colCalDateDate      = 1
	colCalDateException = 2
)

// Exception types from calendar_dates.
const (
	ExceptionAdded   = 1
	ExceptionRemoved = 2
)

// Stop is one row of stops.txt.
type Stop struct {
	StopID        string
	Name          string
	ParentStation string
}

// StopTime is one row of stop_times.txt: one (trip, stop) visit.
// ArrivalTime is a wall-clock HH:mm[:ss] string with no date attached.
type StopTime struct {
	TripID       string
	ArrivalTime  string
	StopID       string
	StopSequence string
}

// Trip is one scheduled run of a vehicle along a route.
type Trip struct {
	RouteID   string
	ServiceID string
	TripID    string
	Headsign  string
}

// Route is static route metadata.
type Route struct {
	RouteID   string
	ShortName string
	LongName  string
}

// Calendar is a weekly recurrence rule for a service, bounded by a closed
// [StartDate, EndDate] interval. Weekdays runs Monday..Sunday.
type Calendar struct {
	ServiceID string
	Weekdays  [7]bool
	StartDate string // YYYYMMDD
	EndDate   string // YYYYMMDD
}

// CalendarDate is a per-date override of a Calendar rule.
type CalendarDate struct {
	ServiceID     string
	Date          string // YYYYMMDD
	ExceptionType int
}

// Tables holds all static schedule tables for one run.
type Tables struct {
	Stops         []Stop
	StopTimes     []StopTime
	Trips         []Trip
	Routes        []Route
	Calendars     []Calendar
	CalendarDates []CalendarDate
}

// StopFromRow builds a Stop from a positional stops.txt row.
// Returns false when the row is too short to carry a stop_id.
func StopFromRow(row []string) (Stop, bool) {
	if len(row) <= colStopID {
		return Stop{}, false
	}
	s := Stop{StopID: row[colStopID]}
	if len(row) > colStopName {
		s.Name = row[colStopName]
	}
	if len(row) > colParentStation {
		s.ParentStation = row[colParentStation]
	}
	return s, true
}

// StopTimeFromRow builds a StopTime from a positional stop_times.txt row.
func StopTimeFromRow(row []string) (StopTime, bool) {
	if len(row) <= colStopTimeSequence {
		return StopTime{}, false
	}
	return StopTime{
		TripID:       row[colStopTimeTripID],
		ArrivalTime:  row[colStopTimeArrival],
		StopID:       row[colStopTimeStopID],
		StopSequence: row[colStopTimeSequence],
	}, true
}

// TripFromRow builds a Trip from a positional trips.txt row.
func TripFromRow(row []string) (Trip, bool) {
	if len(row) <= colTripID {
		return Trip{}, false
	}
	t := Trip{
		RouteID:   row[colTripRouteID],
		ServiceID: row[colTripServiceID],
		TripID:    row[colTripID],
	}
	if len(row) > colTripHeadsign {
		t.Headsign = row[colTripHeadsign]
	}
	return t, true
}

// RouteFromRow builds a Route from a positional routes.txt row.
func RouteFromRow(row []string) (Route, bool) {
	if len(row) <= colRouteID {
		return Route{}, false
	}
	r := Route{RouteID: row[colRouteID]}
	if len(row) > colRouteShortName {
		r.ShortName = row[colRouteShortName]
	}
	if len(row) > colRouteLongName {
		r.LongName = row[colRouteLongName]
	}
	return r, true
}

// CalendarFromRow builds a Calendar from a positional calendar.txt row.
func CalendarFromRow(row []string) (Calendar, bool) {
	if len(row) <= colCalEndDate {
		return Calendar{}, false
	}
	c := Calendar{
		ServiceID: row[colCalServiceID],
		StartDate: row[colCalStartDate],
		EndDate:   row[colCalEndDate],
	}
	for i := 0; i < 7; i++ {
		c.Weekdays[i] = row[colCalServiceID+1+i] == "1"
	}
	return c, true
}

// CalendarDateFromRow builds a CalendarDate from a positional
// calendar_dates.txt row. Rows with an unknown exception type are rejected.
func CalendarDateFromRow(row []string) (CalendarDate, bool) {
	if len(row) <= colCalDateException {
		return CalendarDate{}, false
	}
	cd := CalendarDate{
		ServiceID: row[colCalDateServiceID],
		Date:      row[colCalDateDate],
	}
	switch row[colCalDateException] {
	case "1":
		cd.ExceptionType = ExceptionAdded
	case "2":
		cd.ExceptionType = ExceptionRemoved
	default:
		return CalendarDate{}, false
	}
	return cd, true
}
