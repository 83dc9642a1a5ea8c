package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	lib "github.com/theoremus-urban-solutions/stop-departures"
	"github.com/theoremus-urban-solutions/stop-departures/config"
	"github.com/theoremus-urban-solutions/stop-departures/metrics"
	"github.com/theoremus-urban-solutions/stop-departures/schedule"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	mode := flag.String("mode", "oneshot", "oneshot|interactive|serve")
	dateFlag := flag.String("date", "", "target date YYYY-MM-DD (default today)")
	timeFlag := flag.String("time", "", "target time HH:mm (default now)")
	window := flag.Int("window", 0, "time window in minutes (default from config)")
	route := flag.String("route", schedule.AllRoutes, "route short name, or * for all routes")
	station := flag.String("station", "", "station or stop ID (default from config)")
	flag.Parse()

	lib.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	coll := metrics.NewCollector()
	engine, err := lib.NewEngine(cfg, coll)
	if err != nil {
		slog.Error("initialize engine", "error", err)
		os.Exit(1)
	}

	switch *mode {
	case "serve":
		if err := lib.Serve(engine, cfg.Server.Port); err != nil {
			slog.Error("server", "error", err)
			os.Exit(1)
		}
	case "interactive":
		runInteractive(engine, cfg)
	case "oneshot":
		params, err := oneshotParams(*dateFlag, *timeFlag, *window, *route, *station)
		if err != nil {
			slog.Error("invalid query input", "error", err)
			os.Exit(1)
		}
		deps, err := engine.Departures(context.Background(), params)
		if err != nil {
			slog.Error("query failed", "error", err)
			os.Exit(1)
		}
		renderTable(os.Stdout, deps)
	default:
		slog.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}
}

func oneshotParams(dateStr, timeStr string, window int, route, station string) (lib.QueryParams, error) {
	p := lib.QueryParams{
		WindowMinutes: window,
		Route:         route,
		Station:       station,
	}

	now := time.Now()
	p.Date = now
	if dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return p, fmt.Errorf("date %q: want YYYY-MM-DD", dateStr)
		}
		p.Date = d
	}

	p.Time = now.Format("15:04")
	if timeStr != "" {
		if _, err := time.Parse("15:04", timeStr); err != nil {
			return p, fmt.Errorf("time %q: want HH:mm", timeStr)
		}
		p.Time = timeStr
	}
	return p, nil
}
