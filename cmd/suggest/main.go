// Command suggest plans activity suggestions offline.
//
// It reads an activity catalog (YAML or JSON, optionally .zst-compressed) and
// a forecast file, runs the engine and prints the plan as JSON:
//
//	suggest -catalog catalog/activities.yaml -forecast week.json -interests running,surfing
//
// The forecast file is either a JSON array of forecast days or a full plan
// request object; "-" reads it from stdin.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fairweather/internal/bootstrap"
	"fairweather/internal/catalog"
	"fairweather/internal/recommend"
	"fairweather/internal/types"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "suggest: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	catalogPath  string
	forecastPath string
	interests    string
	moods        string
	at           string
	timezone     string
	maxResults   int
	eveningStart int
	pretty       bool
	logLevel     string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.catalogPath, "catalog", "catalog/activities.yaml", "activity catalog file (.yaml, .json, optionally .zst)")
	fs.StringVar(&o.forecastPath, "forecast", "-", "forecast file, or - for stdin")
	fs.StringVar(&o.interests, "interests", "", "comma-separated activity ids (overrides the request file)")
	fs.StringVar(&o.moods, "moods", "", "comma-separated moods (overrides the request file)")
	fs.StringVar(&o.at, "at", "", "evaluation time, RFC 3339 (default now)")
	fs.StringVar(&o.timezone, "tz", "", "IANA timezone for day phase and evening")
	fs.IntVar(&o.maxResults, "max", 0, "maximum suggestions per day (default 10)")
	fs.IntVar(&o.eveningStart, "evening-start", 0, "hour the evening starts (default 17)")
	fs.BoolVar(&o.pretty, "pretty", false, "indent the JSON output")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level for catalog diagnostics")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := bootstrap.NewLogger(stderr, o.logLevel)

	cat, err := catalog.Load(ctx, catalog.NewFileSource(o.catalogPath), logger)
	if err != nil {
		return err
	}

	req, err := readRequest(o.forecastPath, stdin)
	if err != nil {
		return err
	}
	if o.interests != "" {
		req.Interests = splitList(o.interests)
	}
	if o.moods != "" {
		req.Moods = splitList(o.moods)
	}
	if o.timezone != "" {
		req.Timezone = o.timezone
	}
	if o.at != "" {
		at, err := time.Parse(time.RFC3339, o.at)
		if err != nil {
			return fmt.Errorf("invalid -at %q: %w", o.at, err)
		}
		req.At = &at
	}

	planner := recommend.NewPlanner(cat, recommend.Config{
		MaxSuggestions:   o.maxResults,
		EveningStartHour: o.eveningStart,
	}, nil, nil, logger, types.RealClock{})

	plan, err := planner.Plan(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	if o.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(plan)
}

// readRequest accepts either a JSON array of forecast days or a plan request
// object.
func readRequest(path string, stdin io.Reader) (recommend.PlanRequest, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return recommend.PlanRequest{}, fmt.Errorf("reading forecast: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return recommend.PlanRequest{}, errors.New("forecast input is empty")
	}

	var req recommend.PlanRequest
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &req.Days); err != nil {
			return recommend.PlanRequest{}, fmt.Errorf("decoding forecast days: %w", err)
		}
		return req, nil
	}
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return recommend.PlanRequest{}, fmt.Errorf("decoding plan request: %w", err)
	}
	return req, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
