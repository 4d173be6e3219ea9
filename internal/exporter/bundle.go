package exporter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"salarylens/internal/salary"
)

const (
	// TakeHomeChartFile is the file name of the line chart in a bundle directory
	TakeHomeChartFile = "take_home.png"
	// PayoutChartFile is the file name of the bar chart in a bundle directory
	PayoutChartFile = "payout.png"
)

// Bundle holds every exported artifact of one analysis.
type Bundle struct {
	FileName      string
	Workbook      []byte
	TakeHomeChart []byte
	PayoutChart   []byte
}

// Exporter renders workbooks and charts for analyses.
type Exporter struct {
	year     int
	workbook *WorkbookWriter
	charts   *ChartRenderer
}

// New creates an exporter for the given report year and chart size
func New(year, chartWidth, chartHeight int) *Exporter {
	return &Exporter{
		year:     year,
		workbook: NewWorkbookWriter(),
		charts:   NewChartRenderer(chartWidth, chartHeight),
	}
}

// Year returns the report year used in file names
func (e *Exporter) Year() int {
	return e.year
}

// FileName returns the report file name for a user
func (e *Exporter) FileName(name string) string {
	return ReportFileName(name, e.year)
}

// Workbook returns the XLSX report for a
func (e *Exporter) Workbook(a *salary.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.workbook.Write(&buf, a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TakeHomeChart returns the take-home line chart as PNG
func (e *Exporter) TakeHomeChart(rows []salary.Projection) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.charts.TakeHome(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PayoutChart returns the combined payout bar chart as PNG
func (e *Exporter) PayoutChart(rows []salary.Projection) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.charts.Payout(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Bundle renders the workbook and both charts concurrently.
func (e *Exporter) Bundle(ctx context.Context, a *salary.Analysis) (*Bundle, error) {
	if a == nil {
		return nil, fmt.Errorf("no analysis to export")
	}

	b := &Bundle{FileName: e.FileName(a.Profile.Name)}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := e.Workbook(a)
		b.Workbook = data
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := e.TakeHomeChart(a.Projections)
		b.TakeHomeChart = data
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := e.PayoutChart(a.Projections)
		b.PayoutChart = data
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteDir writes the bundle's three files into dir and returns their paths.
func (b *Bundle) WriteDir(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{b.FileName, b.Workbook},
		{TakeHomeChartFile, b.TakeHomeChart},
		{PayoutChartFile, b.PayoutChart},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, filepath.Base(f.name))
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		slog.Info("Wrote report file",
			slog.String("file_path", path),
			slog.Int("bytes", len(f.data)))
		paths = append(paths, path)
	}
	return paths, nil
}
