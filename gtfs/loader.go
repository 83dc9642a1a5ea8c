package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var tableFiles = []string{
	"stops.txt",
	"stop_times.txt",
	"trips.txt",
	"routes.txt",
	"calendar.txt",
	"calendar_dates.txt",
}

// LoadTables loads the static schedule tables from path, which may be a
// GTFS zip archive or an extracted directory. Missing optional tables
// (calendar_dates) simply yield empty slices; missing required tables are
// an error.
func LoadTables(path string) (Tables, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Tables{}, fmt.Errorf("gtfs static path: %w", err)
	}
	if info.IsDir() {
		return loadFromDir(path)
	}
	return loadFromZip(path)
}

func loadFromDir(dir string) (Tables, error) {
	var t Tables
	for _, name := range tableFiles {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			if isOptionalTable(name) && os.IsNotExist(err) {
				continue
			}
			return Tables{}, fmt.Errorf("open %s: %w", name, err)
		}
		err = consumeTable(&t, name, f)
		f.Close()
		if err != nil {
			return Tables{}, err
		}
	}
	return t, nil
}

func loadFromZip(path string) (Tables, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Tables{}, fmt.Errorf("open gtfs zip: %w", err)
	}
	defer zr.Close()

	var t Tables
	seen := map[string]bool{}
	for _, f := range zr.File {
		name := strings.ToLower(filepath.Base(f.Name))
		if !isTableFile(name) {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return Tables{}, fmt.Errorf("open %s in zip: %w", name, err)
		}
		err = consumeTable(&t, name, r)
		r.Close()
		if err != nil {
			return Tables{}, err
		}
		seen[name] = true
	}
	for _, name := range tableFiles {
		if !seen[name] && !isOptionalTable(name) {
			return Tables{}, fmt.Errorf("gtfs zip: missing %s: %w", name, fs.ErrNotExist)
		}
	}
	return t, nil
}

func isTableFile(name string) bool {
	for _, n := range tableFiles {
		if n == name {
			return true
		}
	}
	return false
}

func isOptionalTable(name string) bool {
	return name == "calendar_dates.txt"
}

// consumeTable reads one CSV table and appends its typed records.
// The first row is the header and is skipped; rows a record constructor
// rejects are dropped.
func consumeTable(t *Tables, name string, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(rows) < 2 {
		return nil
	}
	for _, row := range rows[1:] {
		switch name {
		case "stops.txt":
			if s, ok := StopFromRow(row); ok {
				t.Stops = append(t.Stops, s)
			}
		case "stop_times.txt":
			if st, ok := StopTimeFromRow(row); ok {
				t.StopTimes = append(t.StopTimes, st)
			}
		case "trips.txt":
			if tr, ok := TripFromRow(row); ok {
				t.Trips = append(t.Trips, tr)
			}
		case "routes.txt":
			if rt, ok := RouteFromRow(row); ok {
				t.Routes = append(t.Routes, rt)
			}
		case "calendar.txt":
			if c, ok := CalendarFromRow(row); ok {
				t.Calendars = append(t.Calendars, c)
			}
		case "calendar_dates.txt":
			if cd, ok := CalendarDateFromRow(row); ok {
				t.CalendarDates = append(t.CalendarDates, cd)
			}
		}
	}
	return nil
}
