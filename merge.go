package stopdepartures

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/stop-departures/gtfsrt"
	"github.com/theoremus-urban-solutions/stop-departures/schedule"
)

// NoLiveData marks a schedule row for which the live feeds had nothing.
const NoLiveData = "No Live Data"

// Departure is one fully resolved result row: a scheduled stop visit
// enriched with whatever live data was available.
type Departure struct {
	TripID         string  `json:"trip_id"`
	StopID         string  `json:"stop_id"`
	StopName       string  `json:"stop_name,omitempty"`
	RouteShortName string  `json:"route_short_name"`
	RouteLongName  string  `json:"route_long_name"`
	Headsign       string  `json:"headsign"`
	Scheduled      string  `json:"scheduled"`          // HH:mm
	Live           string  `json:"live"`               // HH:mm or NoLiveData
	Position       string  `json:"position"`           // "lat,lon" or NoLiveData
	VehicleID      string  `json:"vehicle_id,omitempty"`
	Latitude       float64 `json:"latitude,omitempty"`
	Longitude      float64 `json:"longitude,omitempty"`
	Bearing        float64 `json:"bearing,omitempty"`
}

// mergeLive joins the live feed onto the filtered schedule rows. Live data
// is strictly additive: every input row yields exactly one Departure, and
// any lookup miss degrades to the NoLiveData sentinel. A nil feed marks
// every row as having no live data.
func mergeLive(rows []schedule.Row, feed *gtfsrt.Feed, loc *time.Location) []Departure {
	out := make([]Departure, 0, len(rows))
	for _, r := range rows {
		d := Departure{
			TripID:         r[schedule.FieldTripID],
			StopID:         r[schedule.FieldStopID],
			StopName:       r[schedule.FieldStopName],
			RouteShortName: r[schedule.FieldRouteShort],
			RouteLongName:  r[schedule.FieldRouteLong],
			Headsign:       r[schedule.FieldTripHeadsign],
			Scheduled:      normalizeHHMM(r[schedule.FieldArrivalTime]),
			Live:           NoLiveData,
			Position:       NoLiveData,
		}
		if feed != nil {
			if ts, ok := feed.PredictedTimeAtStop(d.TripID, d.StopID); ok {
				d.Live = hhmmFromUnixSeconds(ts, loc)
			}
			if pos, ok := feed.PositionForTrip(d.TripID); ok {
				d.Position = fmt.Sprintf("%.5f,%.5f", pos.Latitude, pos.Longitude)
				d.VehicleID = pos.VehicleID
				d.Latitude = pos.Latitude
				d.Longitude = pos.Longitude
				d.Bearing = pos.Bearing
			}
		}
		out = append(out, d)
	}
	return out
}
