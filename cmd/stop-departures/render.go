package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	lib "github.com/theoremus-urban-solutions/stop-departures"
)

func renderTable(w io.Writer, deps []lib.Departure) {
	if len(deps) == 0 {
		fmt.Fprintln(w, "No departures found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUTE\tHEADSIGN\tSTOP\tSCHEDULED\tLIVE\tPOSITION")
	for _, d := range deps {
		stop := d.StopName
		if stop == "" {
			stop = d.StopID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.RouteShortName, d.Headsign, stop, d.Scheduled, d.Live, d.Position)
	}
	_ = tw.Flush()
}
