package stopdepartures

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/stop-departures/cache"
	"github.com/theoremus-urban-solutions/stop-departures/config"
	"github.com/theoremus-urban-solutions/stop-departures/gtfs"
	"github.com/theoremus-urban-solutions/stop-departures/gtfsrt"
	"github.com/theoremus-urban-solutions/stop-departures/metrics"
	"github.com/theoremus-urban-solutions/stop-departures/schedule"
)

// Feed cache entry names.
const (
	feedTripUpdates      = "trip-updates"
	feedVehiclePositions = "vehicle-positions"
)

// QueryParams are the caller-supplied inputs to one departures query.
// They are expected to be validated at the boundary (CLI prompt or HTTP
// handler) before reaching the engine.
type QueryParams struct {
	Date          time.Time
	Time          string // HH:mm
	WindowMinutes int
	Route         string // route_short_name or schedule.AllRoutes
	Station       string // parent station or plain stop ID
}

// Engine runs the departures pipeline: assemble the schedule for the stop
// set, resolve the service calendar for the date, filter, then enrich with
// the cached live feeds.
type Engine struct {
	cfg    config.AppConfig
	tables gtfs.Tables
	cache  *cache.FeedCache
	loc    *time.Location
	log    *slog.Logger
	coll   *metrics.Collector
}

// NewEngine loads the static tables and wires the live-feed cache.
func NewEngine(cfg config.AppConfig, coll *metrics.Collector) (*Engine, error) {
	tables, err := gtfs.LoadTables(cfg.GTFS.StaticPath)
	if err != nil {
		return nil, fmt.Errorf("load static tables: %w", err)
	}

	loc := time.Local
	if cfg.GTFS.Timezone != "" {
		loc, err = time.LoadLocation(cfg.GTFS.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", cfg.GTFS.Timezone, err)
		}
	}

	var store cache.Store
	switch cfg.Cache.Backend {
	case "sqlite":
		store, err = cache.NewSQLiteStore(cfg.Cache.SQLitePath)
	default:
		store, err = cache.NewDirStore(cfg.Cache.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("open feed cache: %w", err)
	}

	client := gtfsrt.NewClient(time.Duration(cfg.GTFSRT.TimeoutMS) * time.Millisecond)
	fc := cache.NewFeedCache(store, client.Fetch,
		cache.WithTTL(time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		cache.WithMetrics(coll),
	)

	return &Engine{
		cfg:    cfg,
		tables: tables,
		cache:  fc,
		loc:    loc,
		log:    slog.Default(),
		coll:   coll,
	}, nil
}

// Departures answers one query. The result is sorted by scheduled arrival;
// live-feed trouble of any kind degrades to NoLiveData sentinels rather
// than failing the query.
func (e *Engine) Departures(ctx context.Context, p QueryParams) ([]Departure, error) {
	started := time.Now()
	queryID := uuid.NewString()
	log := e.log.With("query", queryID)

	targetMinutes, err := schedule.MinutesSinceMidnight(p.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid query time: %w", err)
	}
	if p.WindowMinutes <= 0 {
		p.WindowMinutes = e.cfg.Query.WindowMinutes
	}
	station := p.Station
	if station == "" {
		station = e.cfg.GTFS.StationID
	}
	route := p.Route
	if route == "" {
		route = schedule.AllRoutes
	}

	stopIDs := schedule.StopsForStation(e.tables.Stops, station)
	rows := schedule.Assemble(e.tables, stopIDs)
	active := gtfs.ActiveServices(p.Date, e.tables.Calendars, e.tables.CalendarDates)
	rows = schedule.FilterByService(rows, active)
	rows = schedule.FilterByTimeWindow(rows, targetMinutes, p.WindowMinutes)
	rows = schedule.FilterByRoute(rows, route)

	feed := e.liveFeed(ctx)
	deps := mergeLive(rows, feed, e.loc)

	sort.SliceStable(deps, func(i, j int) bool {
		mi, erri := schedule.MinutesSinceMidnight(deps[i].Scheduled)
		mj, errj := schedule.MinutesSinceMidnight(deps[j].Scheduled)
		if erri != nil || errj != nil {
			return false
		}
		return mi < mj
	})

	if e.coll != nil {
		e.coll.QueriesTotal.Inc()
		e.coll.QueryDuration.Observe(time.Since(started).Seconds())
	}
	log.Debug("query served",
		"station", station, "route", route,
		"window", p.WindowMinutes, "results", len(deps),
		"duration", time.Since(started))
	return deps, nil
}

// liveFeed fetches both live feeds through the TTL cache, concurrently
// since they are independent, and decodes them. Any failure yields a nil
// side; a fully nil feed just means every row gets the sentinel.
func (e *Engine) liveFeed(ctx context.Context) *gtfsrt.Feed {
	var tuPayload, vpPayload []byte
	var wg sync.WaitGroup
	if e.cfg.GTFSRT.TripUpdatesURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tuPayload = e.cache.Get(ctx, e.cfg.GTFSRT.TripUpdatesURL, feedTripUpdates)
		}()
	}
	if e.cfg.GTFSRT.VehiclePositionsURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			vpPayload = e.cache.Get(ctx, e.cfg.GTFSRT.VehiclePositionsURL, feedVehiclePositions)
		}()
	}
	wg.Wait()

	tu, err := gtfsrt.Decode(tuPayload)
	if err != nil {
		e.log.Warn("trip updates feed undecodable", "error", err)
	}
	vp, err := gtfsrt.Decode(vpPayload)
	if err != nil {
		e.log.Warn("vehicle positions feed undecodable", "error", err)
	}
	return gtfsrt.NewFeed(tu, vp)
}
