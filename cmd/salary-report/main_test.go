package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salarylens/internal/config"
	"salarylens/internal/exporter"
	"salarylens/internal/salary"
	"salarylens/internal/services"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, o *options)
	}{
		{
			name: "defaults",
			args: []string{"-name", "Asha Rao", "-lpa", "12"},
			check: func(t *testing.T, o *options) {
				assert.Equal(t, "Asha Rao", o.name)
				assert.Equal(t, 12.0, o.annualLPA)
				assert.Equal(t, "Fresher", o.experience)
				assert.Equal(t, "reports", o.out)
			},
		},
		{
			name: "all flags",
			args: []string{"-name", "A", "-company", "Acme", "-designation", "Engineer",
				"-experience", "3-5 yrs", "-location", "Bangalore", "-tax-regime", "Old Tax Regime",
				"-lpa", "20", "-take-home", "120000", "-out", "x", "-year", "2026"},
			check: func(t *testing.T, o *options) {
				assert.Equal(t, "Old Tax Regime", o.taxRegime)
				assert.Equal(t, 120000.0, o.takeHome)
				assert.Equal(t, 2026, o.year)
			},
		},
		{name: "unknown flag", args: []string{"-bogus"}, wantErr: true},
		{name: "stray argument", args: []string{"-name", "A", "extra"}, wantErr: true},
		{name: "bad number", args: []string{"-lpa", "twelve"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseFlags(tt.args, io.Discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestOptionsProfile(t *testing.T) {
	base := options{
		name:       "Asha Rao",
		experience: "3-5 yrs",
		location:   "Bangalore",
		taxRegime:  "New Tax Regime",
		annualLPA:  12,
	}

	p, err := base.profile()
	require.NoError(t, err)
	assert.Equal(t, salary.Location("Bangalore"), p.Location)
	assert.Nil(t, p.TakeHome)

	withTakeHome := base
	withTakeHome.takeHome = 90000
	p, err = withTakeHome.profile()
	require.NoError(t, err)
	require.NotNil(t, p.TakeHome)
	assert.Equal(t, 90000.0, *p.TakeHome)

	for name, mutate := range map[string]func(*options){
		"experience": func(o *options) { o.experience = "20 yrs" },
		"location":   func(o *options) { o.location = "Paris" },
		"regime":     func(o *options) { o.taxRegime = "Flat" },
		"lpa":        func(o *options) { o.annualLPA = 0.5 },
	} {
		t.Run(name, func(t *testing.T) {
			o := base
			mutate(&o)
			_, err := o.profile()
			assert.Error(t, err)
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv("SALARYLENS_REPORT_CHART_WIDTH", "400")
	t.Setenv("SALARYLENS_REPORT_CHART_HEIGHT", "200")

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-name", "Asha Rao", "-lpa", "12", "-experience", "3-5 yrs",
		"-location", "Bangalore", "-out", dir, "-year", "2025",
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), `"msg":"Salary report written"`)
	assert.Contains(t, stderr.String(), `"trace_id":`)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)

	report := filepath.Join(dir, "Asha_Rao_Salary_Report_2025.xlsx")
	assert.Equal(t, report, lines[0])

	f, err := excelize.OpenFile(report)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{config.UserInfoSheet, config.SalaryAnalysisSheet}, f.GetSheetList())

	for _, name := range []string{exporter.TakeHomeChartFile, exporter.PayoutChartFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), name)
	}
}

func TestRun_EmptyName(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), []string{"-lpa", "12", "-out", dir}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, services.ErrEmptyName)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRun_DefaultExperience(t *testing.T) {
	t.Setenv("SALARYLENS_REPORT_CHART_WIDTH", "400")
	t.Setenv("SALARYLENS_REPORT_CHART_HEIGHT", "200")

	dir := t.TempDir()
	err := run(context.Background(), []string{"-name", "Asha Rao", "-lpa", "12", "-out", dir, "-year", "2025"},
		io.Discard, io.Discard)
	require.NoError(t, err)

	f, err := excelize.OpenFile(filepath.Join(dir, "Asha_Rao_Salary_Report_2025.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	experience, err := f.GetCellValue(config.UserInfoSheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Fresher", experience)
}

func TestRun_InvalidRatesFile(t *testing.T) {
	rates := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(rates, []byte("fair_pay:\n  rounding_unit: -5\n"), 0644))
	t.Setenv(config.RatesFileEnvKey, rates)

	dir := t.TempDir()
	err := run(context.Background(), []string{"-name", "Asha Rao", "-lpa", "12", "-out", dir}, io.Discard, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRun_NameCannotEscapeOutputDir(t *testing.T) {
	t.Setenv("SALARYLENS_REPORT_CHART_WIDTH", "400")
	t.Setenv("SALARYLENS_REPORT_CHART_HEIGHT", "200")

	root := t.TempDir()
	out := filepath.Join(root, "out")
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-name", "../escape", "-lpa", "12", "-out", out, "-year", "2025"},
		&stdout, io.Discard)
	require.NoError(t, err)

	for _, path := range strings.Fields(stdout.String()) {
		assert.Equal(t, out, filepath.Dir(path))
	}
	_, statErr := os.Stat(filepath.Join(root, "escape_Salary_Report_2025.xlsx"))
	assert.True(t, os.IsNotExist(statErr))
}
