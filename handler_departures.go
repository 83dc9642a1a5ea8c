package stopdepartures

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type departuresResponse struct {
	Station    string      `json:"station"`
	Date       string      `json:"date"`
	Time       string      `json:"time"`
	Window     int         `json:"window_minutes"`
	Route      string      `json:"route"`
	Departures []Departure `json:"departures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// handleDepartures serves GET /api/departures. Invalid caller input is
// rejected here with a 400; the engine itself never sees a malformed
// date, time or window.
func (e *Engine) handleDepartures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	p := QueryParams{
		Station: q.Get("station"),
		Route:   q.Get("route"),
	}

	now := time.Now().In(e.loc)
	p.Date = now
	if s := q.Get("date"); s != "" {
		d, err := parseQueryDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD or YYYYMMDD")
			return
		}
		p.Date = d
	}

	p.Time = now.Format("15:04")
	if s := q.Get("time"); s != "" {
		if _, err := time.Parse("15:04", s); err != nil {
			writeError(w, http.StatusBadRequest, "time must be HH:mm")
			return
		}
		p.Time = s
	}

	if s := q.Get("window"); s != "" {
		wmin, err := strconv.Atoi(s)
		if err != nil || wmin <= 0 {
			writeError(w, http.StatusBadRequest, "window must be a positive integer")
			return
		}
		p.WindowMinutes = wmin
	}

	deps, err := e.Departures(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(departuresResponse{
		Station:    firstNonEmpty(p.Station, e.cfg.GTFS.StationID),
		Date:       p.Date.Format("2006-01-02"),
		Time:       p.Time,
		Window:     firstPositive(p.WindowMinutes, e.cfg.Query.WindowMinutes),
		Route:      firstNonEmpty(p.Route, "*"),
		Departures: deps,
	})
}

func parseQueryDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	return time.Parse("20060102", s)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstPositive(a, b int) int {
	if a > 0 {
		return a
	}
	return b
}
