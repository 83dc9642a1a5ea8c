package schedule

import (
	"reflect"
	"testing"
)

func TestJoin_Inner(t *testing.T) {
	left := []Row{
		{"trip_id": "T1", "arrival_time": "08:05"},
		{"trip_id": "T2", "arrival_time": "08:15"},
		{"trip_id": "T3", "arrival_time": "08:25"},
	}
	right := []Row{
		{"trip_id": "T1", "route_id": "R1", "service_id": "SV1"},
		{"trip_id": "T3", "route_id": "R2", "service_id": "SV2"},
	}

	got := Join(InnerJoin, "trip_id", left, right, []string{"route_id", "service_id"})

	want := []Row{
		{"trip_id": "T1", "arrival_time": "08:05", "route_id": "R1", "service_id": "SV1"},
		{"trip_id": "T3", "arrival_time": "08:25", "route_id": "R2", "service_id": "SV2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("inner join = %v, want %v", got, want)
	}
	if len(got) > len(left) || len(got) > len(right) {
		t.Errorf("inner join result larger than an input: %d", len(got))
	}
}

func TestJoin_LeftKeepsAllLeftRows(t *testing.T) {
	left := []Row{
		{"stop_id": "S1", "k": "a"},
		{"stop_id": "S2", "k": "b"},
	}
	right := []Row{
		{"stop_id": "S1", "stop_name": "Central"},
	}

	got := Join(LeftJoin, "stop_id", left, right, []string{"stop_name"})

	if len(got) != len(left) {
		t.Fatalf("left join lost rows: got %d, want %d", len(got), len(left))
	}
	if got[0]["stop_name"] != "Central" {
		t.Errorf("matched row missing carry field: %v", got[0])
	}
	if _, ok := got[1]["stop_name"]; ok {
		t.Errorf("unmatched row should have no carry fields: %v", got[1])
	}
}

func TestJoin_RightDelegatesToLeft(t *testing.T) {
	left := []Row{{"id": "A", "x": "1"}}
	right := []Row{
		{"id": "A", "y": "2"},
		{"id": "B", "y": "3"},
	}

	got := Join(RightJoin, "id", left, right, []string{"x"})

	want := []Row{
		{"id": "A", "y": "2", "x": "1"},
		{"id": "B", "y": "3"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("right join = %v, want %v", got, want)
	}
}

func TestJoin_FirstMatchWins(t *testing.T) {
	left := []Row{{"id": "A"}}
	right := []Row{
		{"id": "A", "v": "first"},
		{"id": "A", "v": "second"},
	}

	got := Join(InnerJoin, "id", left, right, []string{"v"})
	if len(got) != 1 || got[0]["v"] != "first" {
		t.Errorf("expected first right match, got %v", got)
	}
}

func TestJoin_AbsentCarryFieldOmitted(t *testing.T) {
	left := []Row{{"id": "A"}}
	right := []Row{{"id": "A"}} // no "v" field at all

	got := Join(InnerJoin, "id", left, right, []string{"v"})
	if len(got) != 1 {
		t.Fatalf("got %d rows", len(got))
	}
	if _, ok := got[0]["v"]; ok {
		t.Errorf("carry field absent on right must be omitted, got %v", got[0])
	}
}

func TestJoin_DoesNotMutateInputs(t *testing.T) {
	left := []Row{{"id": "A"}}
	right := []Row{{"id": "A", "v": "1"}}

	got := Join(InnerJoin, "id", left, right, []string{"v"})
	got[0]["extra"] = "x"

	if _, ok := left[0]["extra"]; ok {
		t.Error("join result must not alias input rows")
	}
}
