package stopdepartures

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status      string `json:"status"`
	StopsLoaded int    `json:"stops_loaded"`
	TripsLoaded int    `json:"trips_loaded"`
}

func (e *Engine) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := healthResponse{
		Status:      "ok",
		StopsLoaded: len(e.tables.Stops),
		TripsLoaded: len(e.tables.Trips),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
