package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/spec-kit/ticket-insights/internal/config"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/internal/render"
	"github.com/spec-kit/ticket-insights/internal/report"
	"github.com/spec-kit/ticket-insights/internal/service"
)

type cliFlags struct {
	name         string
	color        string
	termStart    string
	termEnd      string
	weeks        int
	building     string
	diagnoses    []string
	matchAll     bool
	perWeek      bool
	perBuilding  bool
	perRoom      bool
	perRequestor bool
	filename     string
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*cliFlags, error) {
	flags := &cliFlags{}
	fs := pflag.NewFlagSet("insights", pflag.ContinueOnError)
	fs.StringVarP(&flags.name, "name", "n", "", "set the name of the chart")
	fs.StringVarP(&flags.color, "color", "c", "", "set the color of the chart ("+strings.Join(render.Colors, ", ")+")")
	fs.StringVarP(&flags.termStart, "termstart", "t", "", "exclude tickets before this date (term start for --perweek)")
	fs.StringVarP(&flags.termEnd, "termend", "e", "", "exclude tickets after this date (term end for --perweek)")
	fs.IntVarP(&flags.weeks, "weeks", "w", 0, "set number of weeks in the term for --perweek")
	fs.StringVarP(&flags.building, "building", "b", "", "specify building filter")
	fs.StringSliceVar(&flags.diagnoses, "diagnoses", nil, "only count tickets matching these problem types")
	fs.BoolVar(&flags.matchAll, "match-all", false, "require every --diagnoses value to match (default: any)")
	fs.BoolVar(&flags.perWeek, "perweek", false, "show tickets per week")
	fs.BoolVar(&flags.perBuilding, "perbuilding", false, "show tickets per building")
	fs.BoolVar(&flags.perRoom, "perroom", false, "show tickets per room in a specified building")
	fs.BoolVar(&flags.perRequestor, "perrequestor", false, "show tickets per requestor")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return nil, errors.New("pass exactly one report filename as the last argument")
	}
	flags.filename = strings.TrimSpace(rest[0])

	if err := checkFile(flags.filename); err != nil {
		return nil, err
	}
	if err := checkOptions(flags); err != nil {
		return nil, err
	}
	return flags, nil
}

func checkFile(filename string) error {
	if filename == "" {
		return errors.New("no file input provided")
	}
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file %s not found", filename)
	}
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return fmt.Errorf("file %s is not a CSV file", filename)
	}
	return nil
}

// checkOptions halts on conflicting or missing flag combinations. The
// aggregation queries themselves never see an invalid combination.
func checkOptions(flags *cliFlags) error {
	presets := 0
	for _, set := range []bool{flags.perWeek, flags.perBuilding, flags.perRoom, flags.perRequestor} {
		if set {
			presets++
		}
	}
	if presets == 0 {
		return errors.New("no query preset argument passed (e.g. --perweek)")
	}
	if presets > 1 {
		return errors.New("pass exactly one query preset argument (e.g. --perweek)")
	}
	if flags.perRoom && flags.building == "" {
		return errors.New("no building specified, pass --building [BUILDING_NAME] for --perroom")
	}
	if flags.perBuilding && flags.building != "" {
		return errors.New("cannot filter to a single building in a --perbuilding query")
	}
	if flags.weeks != 0 && !flags.perWeek {
		return errors.New("cannot pass --weeks without --perweek")
	}
	if flags.weeks != 0 && flags.termEnd != "" {
		return errors.New("cannot pass --weeks and --termend simultaneously")
	}
	if flags.color != "" {
		valid := false
		for _, c := range render.Colors {
			if c == flags.color {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("color %q not recognized", flags.color)
		}
	}
	return nil
}

func run(flags *cliFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	rep, err := report.NewReport(flags.filename, logger)
	if err != nil {
		return err
	}
	organization := org.NewOrganization()
	if err := rep.Populate(organization); err != nil {
		return err
	}

	analytics := service.NewAnalyticsService(service.AnalyticsDependencies{
		Report: rep,
		Org:    organization,
		Logger: logger,
	})

	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}

	chart, err := runQuery(analytics, flags, opts)
	if err != nil {
		return err
	}
	fmt.Print(chart)
	return nil
}

func buildOptions(flags *cliFlags) (service.QueryOptions, error) {
	opts := service.QueryOptions{
		Weeks:             flags.weeks,
		Building:          flags.building,
		Diagnoses:         flags.diagnoses,
		MatchAllDiagnoses: flags.matchAll,
		Name:              flags.name,
		Color:             flags.color,
	}
	if flags.termStart != "" {
		t, err := service.ParseDate(flags.termStart)
		if err != nil {
			return service.QueryOptions{}, err
		}
		opts.TermStart = &t
	}
	if flags.termEnd != "" {
		t, err := service.ParseDate(flags.termEnd)
		if err != nil {
			return service.QueryOptions{}, err
		}
		opts.TermEnd = &t
	}
	return opts, nil
}

func runQuery(analytics *service.AnalyticsService, flags *cliFlags, opts service.QueryOptions) (string, error) {
	display := render.Options{Title: opts.Name, Color: opts.Color}
	switch {
	case flags.perWeek:
		if display.Title == "" {
			display.Title = "Tickets per Week"
		}
		buckets, err := analytics.PerWeek(opts)
		if err != nil {
			return "", err
		}
		return render.BarChart(render.WeekBars(buckets), display), nil
	case flags.perBuilding:
		if display.Title == "" {
			display.Title = "Tickets per Building"
		}
		buckets, err := analytics.PerBuilding(opts)
		if err != nil {
			return "", err
		}
		return render.BarChart(render.CountBars(buckets), display), nil
	case flags.perRoom:
		if display.Title == "" {
			display.Title = "Tickets per Room in " + flags.building
		}
		buckets, err := analytics.PerRoom(opts)
		if err != nil {
			return "", err
		}
		return render.BarChart(render.CountBars(buckets), display), nil
	default:
		if display.Title == "" {
			display.Title = "Tickets per Requestor"
		}
		buckets, err := analytics.PerRequestor(opts)
		if err != nil {
			return "", err
		}
		return render.BarChart(render.CountBars(buckets), display), nil
	}
}
