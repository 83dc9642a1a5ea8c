package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	lib "github.com/theoremus-urban-solutions/stop-departures"
	"github.com/theoremus-urban-solutions/stop-departures/config"
	"github.com/theoremus-urban-solutions/stop-departures/schedule"
)

// runInteractive re-prompts for each query parameter until it validates,
// runs the query, and loops until the user quits. Validation happens
// entirely at this boundary; the engine only sees well-formed input.
func runInteractive(engine *lib.Engine, cfg config.AppConfig) {
	in := bufio.NewScanner(os.Stdin)

	for {
		date, ok := promptUntilValid(in, "Date (YYYY-MM-DD, empty = today)", func(s string) (time.Time, error) {
			if s == "" {
				return time.Now(), nil
			}
			return time.Parse("2006-01-02", s)
		})
		if !ok {
			return
		}

		target, ok := promptUntilValid(in, "Time (HH:mm, empty = now)", func(s string) (string, error) {
			if s == "" {
				return time.Now().Format("15:04"), nil
			}
			if _, err := time.Parse("15:04", s); err != nil {
				return "", err
			}
			return s, nil
		})
		if !ok {
			return
		}

		window, ok := promptUntilValid(in, fmt.Sprintf("Window minutes (empty = %d)", cfg.Query.WindowMinutes), func(s string) (int, error) {
			if s == "" {
				return cfg.Query.WindowMinutes, nil
			}
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return 0, fmt.Errorf("want a positive integer")
			}
			return n, nil
		})
		if !ok {
			return
		}

		route, ok := promptUntilValid(in, "Route short name (empty = all)", func(s string) (string, error) {
			if s == "" {
				return schedule.AllRoutes, nil
			}
			return s, nil
		})
		if !ok {
			return
		}

		deps, err := engine.Departures(context.Background(), lib.QueryParams{
			Date:          date,
			Time:          target,
			WindowMinutes: window,
			Route:         route,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		} else {
			renderTable(os.Stdout, deps)
		}

		fmt.Print("Another query? (y/n) ")
		if !in.Scan() || strings.ToLower(strings.TrimSpace(in.Text())) != "y" {
			return
		}
	}
}

// promptUntilValid loops until parse accepts the input or stdin closes.
func promptUntilValid[T any](in *bufio.Scanner, label string, parse func(string) (T, error)) (T, bool) {
	var zero T
	for {
		fmt.Printf("%s: ", label)
		if !in.Scan() {
			return zero, false
		}
		v, err := parse(strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid input: %v\n", err)
			continue
		}
		return v, true
	}
}
