package schedule

import (
	"testing"

	"github.com/theoremus-urban-solutions/stop-departures/gtfs"
)

func testTables() gtfs.Tables {
	return gtfs.Tables{
		Stops: []gtfs.Stop{
			{StopID: "S1", Name: "Central Platform 1", ParentStation: "STN1"},
			{StopID: "S2", Name: "Central Platform 2", ParentStation: "STN1"},
			{StopID: "S3", Name: "Elsewhere", ParentStation: "STN2"},
		},
		StopTimes: []gtfs.StopTime{
			{TripID: "T1", ArrivalTime: "08:05", StopID: "S1", StopSequence: "3"},
			{TripID: "T2", ArrivalTime: "08:20", StopID: "S2", StopSequence: "1"},
			{TripID: "T3", ArrivalTime: "08:30", StopID: "S3", StopSequence: "2"},
			{TripID: "GHOST", ArrivalTime: "08:40", StopID: "S1", StopSequence: "1"},
			{TripID: "T4", ArrivalTime: "08:50", StopID: "S1", StopSequence: "5"},
		},
		Trips: []gtfs.Trip{
			{RouteID: "R1", ServiceID: "SV1", TripID: "T1", Headsign: "City"},
			{RouteID: "R1", ServiceID: "SV1", TripID: "T2", Headsign: "City"},
			{RouteID: "R2", ServiceID: "SV2", TripID: "T3", Headsign: "Airport"},
			{RouteID: "NOROUTE", ServiceID: "SV1", TripID: "T4", Headsign: "Depot"},
		},
		Routes: []gtfs.Route{
			{RouteID: "R1", ShortName: "66", LongName: "City Loop"},
			{RouteID: "R2", ShortName: "91", LongName: "Airport Express"},
		},
	}
}

func TestStopsForStation(t *testing.T) {
	tables := testTables()

	ids := StopsForStation(tables.Stops, "STN1")
	if len(ids) != 2 || ids[0] != "S1" || ids[1] != "S2" {
		t.Errorf("StopsForStation(STN1) = %v", ids)
	}

	// A plain stop ID resolves to itself.
	ids = StopsForStation(tables.Stops, "S3")
	if len(ids) != 1 || ids[0] != "S3" {
		t.Errorf("StopsForStation(S3) = %v", ids)
	}

	if ids := StopsForStation(tables.Stops, "NOWHERE"); len(ids) != 0 {
		t.Errorf("StopsForStation(NOWHERE) = %v", ids)
	}
}

func TestAssemble_JoinChain(t *testing.T) {
	tables := testTables()

	rows := Assemble(tables, []string{"S1", "S2"})

	// T3 is at S3 (outside the stop set), GHOST has no trips row, T4's trip
	// references a missing route. Only T1 and T2 survive.
	if len(rows) != 2 {
		t.Fatalf("assembled %d rows, want 2: %v", len(rows), rows)
	}
	first := rows[0]
	if first[FieldTripID] != "T1" || first[FieldArrivalTime] != "08:05" {
		t.Errorf("first row = %v", first)
	}
	if first[FieldServiceID] != "SV1" || first[FieldTripHeadsign] != "City" {
		t.Errorf("trip fields not carried: %v", first)
	}
	if first[FieldRouteShort] != "66" || first[FieldRouteLong] != "City Loop" {
		t.Errorf("route fields not carried: %v", first)
	}
	if first[FieldStopName] != "Central Platform 1" {
		t.Errorf("stop name not carried: %v", first)
	}
}

func TestAssemble_UnknownStopSetIsEmpty(t *testing.T) {
	rows := Assemble(testTables(), nil)
	if len(rows) != 0 {
		t.Errorf("empty stop set should assemble no rows, got %v", rows)
	}
}
