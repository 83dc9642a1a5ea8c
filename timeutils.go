package stopdepartures

import (
	"time"
)

// hhmmFromUnixSeconds renders a live Unix timestamp as a wall-clock HH:mm
// string in the given location.
func hhmmFromUnixSeconds(sec int64, loc *time.Location) string {
	return time.Unix(sec, 0).In(loc).Format("15:04")
}

// normalizeHHMM trims an HH:mm[:ss] string to HH:mm for display.
func normalizeHHMM(s string) string {
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}
