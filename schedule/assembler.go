package schedule

import (
	"github.com/theoremus-urban-solutions/stop-departures/gtfs"
)

// Field names used on assembled rows.
const (
	FieldTripID       = "trip_id"
	FieldArrivalTime  = "arrival_time"
	FieldStopID       = "stop_id"
	FieldStopSequence = "stop_sequence"
	FieldStopName     = "stop_name"
	FieldRouteID      = "route_id"
	FieldServiceID    = "service_id"
	FieldTripHeadsign = "trip_headsign"
	FieldRouteShort   = "route_short_name"
	FieldRouteLong    = "route_long_name"
)

// StopsForStation returns the IDs of all stops whose parent_station equals
// stationID. A stop whose own ID equals stationID is included too, so a
// caller may name either a parent station or a plain stop.
func StopsForStation(stops []gtfs.Stop, stationID string) []string {
	var ids []string
	for _, s := range stops {
		if s.ParentStation == stationID || s.StopID == stationID {
			ids = append(ids, s.StopID)
		}
	}
	return ids
}

// StopName looks up the display name for a stop ID, empty when unknown.
func StopName(stops []gtfs.Stop, stopID string) string {
	for _, s := range stops {
		if s.StopID == stopID {
			return s.Name
		}
	}
	return ""
}

// Assemble builds the working table for the given stop set: stop times at
// those stops, inner-joined with trips on trip_id and with routes on
// route_id. Rows unmatched at either stage are dropped; a stop time
// referencing an unknown trip or route never reaches the filters.
// Stop names are attached with a left join so a missing stops row costs
// only the name, not the schedule row.
func Assemble(t gtfs.Tables, stopIDs []string) []Row {
	stopSet := make(map[string]struct{}, len(stopIDs))
	for _, id := range stopIDs {
		stopSet[id] = struct{}{}
	}

	var stopTimeRows []Row
	for _, st := range t.StopTimes {
		if _, ok := stopSet[st.StopID]; !ok {
			continue
		}
		stopTimeRows = append(stopTimeRows, Row{
			FieldTripID:       st.TripID,
			FieldArrivalTime:  st.ArrivalTime,
			FieldStopID:       st.StopID,
			FieldStopSequence: st.StopSequence,
		})
	}

	tripRows := make([]Row, 0, len(t.Trips))
	for _, tr := range t.Trips {
		tripRows = append(tripRows, Row{
			FieldTripID:       tr.TripID,
			FieldRouteID:      tr.RouteID,
			FieldServiceID:    tr.ServiceID,
			FieldTripHeadsign: tr.Headsign,
		})
	}

	routeRows := make([]Row, 0, len(t.Routes))
	for _, r := range t.Routes {
		routeRows = append(routeRows, Row{
			FieldRouteID:    r.RouteID,
			FieldRouteShort: r.ShortName,
			FieldRouteLong:  r.LongName,
		})
	}

	stopRows := make([]Row, 0, len(t.Stops))
	for _, s := range t.Stops {
		row := Row{FieldStopID: s.StopID}
		if s.Name != "" {
			row[FieldStopName] = s.Name
		}
		stopRows = append(stopRows, row)
	}

	joined := Join(InnerJoin, FieldTripID, stopTimeRows, tripRows,
		[]string{FieldRouteID, FieldServiceID, FieldTripHeadsign})
	joined = Join(InnerJoin, FieldRouteID, joined, routeRows,
		[]string{FieldRouteShort, FieldRouteLong})
	joined = Join(LeftJoin, FieldStopID, joined, stopRows,
		[]string{FieldStopName})
	return joined
}
