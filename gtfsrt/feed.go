package gtfsrt

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Position is one vehicle's last reported location.
type Position struct {
	Latitude   float64
	Longitude  float64
	Bearing    float64
	HasBearing bool
	VehicleID  string
	Timestamp  int64
}

// Feed indexes decoded trip-update and vehicle-position messages by trip.
// Either message may be nil; lookups against a nil side simply miss.
type Feed struct {
	arrivals   map[string]map[string]int64 // trip_id -> stop_id -> arrival epoch
	departures map[string]map[string]int64 // trip_id -> stop_id -> departure epoch
	positions  map[string]Position         // trip_id -> position
}

// NewFeed builds the lookup index from decoded feed messages.
func NewFeed(tripUpdates, vehiclePositions *gtfsrtpb.FeedMessage) *Feed {
	f := &Feed{
		arrivals:   map[string]map[string]int64{},
		departures: map[string]map[string]int64{},
		positions:  map[string]Position{},
	}
	if tripUpdates != nil {
		for _, e := range tripUpdates.Entity {
			tu := e.GetTripUpdate()
			if tu == nil || tu.GetTrip().GetTripId() == "" {
				continue
			}
			tripID := tu.GetTrip().GetTripId()
			for _, stu := range tu.GetStopTimeUpdate() {
				stopID := stu.GetStopId()
				if stopID == "" {
					continue
				}
				if stu.Arrival != nil && stu.Arrival.Time != nil {
					if f.arrivals[tripID] == nil {
						f.arrivals[tripID] = map[string]int64{}
					}
					f.arrivals[tripID][stopID] = stu.Arrival.GetTime()
				}
				if stu.Departure != nil && stu.Departure.Time != nil {
					if f.departures[tripID] == nil {
						f.departures[tripID] = map[string]int64{}
					}
					f.departures[tripID][stopID] = stu.Departure.GetTime()
				}
			}
		}
	}
	if vehiclePositions != nil {
		for _, e := range vehiclePositions.Entity {
			v := e.GetVehicle()
			if v == nil || v.GetTrip().GetTripId() == "" || v.Position == nil {
				continue
			}
			tripID := v.GetTrip().GetTripId()
			pos := Position{
				Latitude:  float64(v.Position.GetLatitude()),
				Longitude: float64(v.Position.GetLongitude()),
				VehicleID: v.GetVehicle().GetId(),
				Timestamp: int64(v.GetTimestamp()),
			}
			if v.Position.Bearing != nil {
				pos.Bearing = float64(v.Position.GetBearing())
				pos.HasBearing = true
			}
			f.positions[tripID] = pos
		}
	}
	return f
}

// PredictedTimeAtStop returns the live Unix timestamp for a trip at a stop,
// preferring the predicted arrival and falling back to the predicted
// departure when no arrival was reported.
func (f *Feed) PredictedTimeAtStop(tripID, stopID string) (int64, bool) {
	if ts, ok := f.arrivals[tripID][stopID]; ok {
		return ts, true
	}
	if ts, ok := f.departures[tripID][stopID]; ok {
		return ts, true
	}
	return 0, false
}

// PositionForTrip returns the vehicle position reported for a trip.
func (f *Feed) PositionForTrip(tripID string) (Position, bool) {
	p, ok := f.positions[tripID]
	return p, ok
}
