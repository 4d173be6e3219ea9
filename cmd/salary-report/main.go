package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"salarylens/internal/config"
	"salarylens/internal/exporter"
	"salarylens/internal/infrastructure"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	"salarylens/internal/validation"
)

// options holds the parsed command line
type options struct {
	name        string
	company     string
	designation string
	experience  string
	location    string
	taxRegime   string
	annualLPA   float64
	takeHome    float64
	out         string
	year        int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "salary-report: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("salary-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.name, "name", "", "employee name (required)")
	fs.StringVar(&opts.company, "company", "", "company name")
	fs.StringVar(&opts.designation, "designation", "", "job title")
	fs.StringVar(&opts.experience, "experience", salary.Experiences()[0].String(), "experience band, e.g. \"3-5 yrs\"")
	fs.StringVar(&opts.location, "location", string(salary.Locations()[0]), "work location")
	fs.StringVar(&opts.taxRegime, "tax-regime", string(salary.TaxRegimes()[0]), "tax regime")
	fs.Float64Var(&opts.annualLPA, "lpa", 0, "annual CTC in lakhs per annum (required)")
	fs.Float64Var(&opts.takeHome, "take-home", 0, "monthly in-hand salary; 0 uses the estimate")
	fs.StringVar(&opts.out, "out", "reports", "output directory")
	fs.IntVar(&opts.year, "year", 0, "report year used in the file name (defaults to config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func (o *options) profile() (salary.Profile, error) {
	exp, err := salary.ParseExperience(o.experience)
	if err != nil {
		return salary.Profile{}, err
	}
	loc, err := salary.ParseLocation(o.location)
	if err != nil {
		return salary.Profile{}, err
	}
	regime, err := salary.ParseTaxRegime(o.taxRegime)
	if err != nil {
		return salary.Profile{}, err
	}
	if o.annualLPA < config.MinAnnualLPA {
		return salary.Profile{}, fmt.Errorf("-lpa must be at least %.1f", config.MinAnnualLPA)
	}

	p := salary.Profile{
		Name:        o.name,
		Company:     o.company,
		Designation: o.designation,
		Experience:  exp,
		Location:    loc,
		TaxRegime:   regime,
		AnnualLPA:   o.annualLPA,
	}
	if o.takeHome > 0 {
		th := o.takeHome
		p.TakeHome = &th
	}
	return p, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := infrastructure.NewLogger(cfg.Logging, stderr)
	slog.SetDefault(logger)
	ctx = infrastructure.EnsureTraceID(ctx)

	p, err := opts.profile()
	if err != nil {
		return err
	}

	tables, err := salary.NewTables(cfg.Rates)
	if err != nil {
		return fmt.Errorf("failed to build salary tables: %w", err)
	}
	year := cfg.Report.Year
	if opts.year > 0 {
		year = opts.year
	}
	exp := exporter.New(year, cfg.Report.ChartWidth, cfg.Report.ChartHeight)
	svc := services.NewAnalysisService(salary.NewEstimator(tables), exp, nil, logger)

	checker := validation.NewOutputValidator(logger)
	if err := checker.ValidateOutputDirectory(opts.out); err != nil {
		return err
	}

	bundle, err := svc.Bundle(ctx, p)
	if err != nil {
		return err
	}

	paths, err := bundle.WriteDir(opts.out)
	if err != nil {
		return err
	}
	if err := checker.ValidateBundle(paths); err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintln(stdout, path)
	}

	logger.InfoContext(ctx, "Salary report written",
		slog.String("dir", opts.out),
		slog.Int("files", len(paths)))
	return nil
}
