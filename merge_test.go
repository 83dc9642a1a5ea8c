package stopdepartures

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/stop-departures/gtfsrt"
	"github.com/theoremus-urban-solutions/stop-departures/schedule"
)

func scheduleRows() []schedule.Row {
	return []schedule.Row{
		{
			schedule.FieldTripID:       "T1",
			schedule.FieldStopID:       "S1",
			schedule.FieldArrivalTime:  "08:05:00",
			schedule.FieldRouteShort:   "66",
			schedule.FieldRouteLong:    "City Loop",
			schedule.FieldTripHeadsign: "City",
		},
		{
			schedule.FieldTripID:       "T2",
			schedule.FieldStopID:       "S1",
			schedule.FieldArrivalTime:  "08:09:00",
			schedule.FieldRouteShort:   "66",
			schedule.FieldRouteLong:    "City Loop",
			schedule.FieldTripHeadsign: "City",
		},
	}
}

func TestMergeLive_NilFeedKeepsAllRows(t *testing.T) {
	rows := scheduleRows()

	deps := mergeLive(rows, nil, time.UTC)

	if len(deps) != len(rows) {
		t.Fatalf("merge dropped rows: got %d, want %d", len(deps), len(rows))
	}
	for _, d := range deps {
		if d.Live != NoLiveData {
			t.Errorf("trip %s live = %q, want sentinel", d.TripID, d.Live)
		}
		if d.Position != NoLiveData {
			t.Errorf("trip %s position = %q, want sentinel", d.TripID, d.Position)
		}
	}
	if deps[0].Scheduled != "08:05" {
		t.Errorf("scheduled = %q, want 08:05", deps[0].Scheduled)
	}
}

func TestMergeLive_PartialLiveData(t *testing.T) {
	tuJSON := `{
	  "header": {"gtfsRealtimeVersion": "2.0"},
	  "entity": [{
	    "id": "1",
	    "tripUpdate": {
	      "trip": {"tripId": "T1"},
	      "stopTimeUpdate": [{"stopId": "S1", "arrival": {"time": "1704699000"}}]
	    }
	  }]
	}`
	vpJSON := `{
	  "header": {"gtfsRealtimeVersion": "2.0"},
	  "entity": [{
	    "id": "v1",
	    "vehicle": {
	      "trip": {"tripId": "T1"},
	      "vehicle": {"id": "BUS-7"},
	      "position": {"latitude": 42.5, "longitude": 23.25}
	    }
	  }]
	}`
	tu, err := gtfsrt.Decode([]byte(tuJSON))
	if err != nil {
		t.Fatal(err)
	}
	vp, err := gtfsrt.Decode([]byte(vpJSON))
	if err != nil {
		t.Fatal(err)
	}
	feed := gtfsrt.NewFeed(tu, vp)

	deps := mergeLive(scheduleRows(), feed, time.UTC)

	if len(deps) != 2 {
		t.Fatalf("got %d departures, want 2", len(deps))
	}
	// 1704699000 = 2024-01-08 07:30:00 UTC
	if deps[0].Live != "07:30" {
		t.Errorf("T1 live = %q, want 07:30", deps[0].Live)
	}
	if deps[0].Position != "42.50000,23.25000" || deps[0].VehicleID != "BUS-7" {
		t.Errorf("T1 position = %q vehicle = %q", deps[0].Position, deps[0].VehicleID)
	}
	// T2 has no live entity at all.
	if deps[1].Live != NoLiveData || deps[1].Position != NoLiveData {
		t.Errorf("T2 = %+v, want sentinels", deps[1])
	}
}
