package services

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"salarylens/internal/config"
	"salarylens/internal/exporter"
	"salarylens/internal/infrastructure"
	"salarylens/internal/salary"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestAnalysisService(t *testing.T, metrics *infrastructure.BusinessMetrics) *AnalysisService {
	t.Helper()
	return NewAnalysisService(
		salary.NewEstimator(salary.DefaultTables()),
		exporter.New(config.DefaultReportYear, 640, 320),
		metrics,
		testLogger(),
	)
}

func validProfile() salary.Profile {
	return salary.Profile{
		Name:        "Asha Rao",
		Company:     "Acme",
		Designation: "Engineer",
		Experience:  salary.ThreeToFiveYears,
		Location:    salary.Bangalore,
		TaxRegime:   salary.NewTaxRegime,
		AnnualLPA:   12,
	}
}

func TestAnalysisService_Analyze(t *testing.T) {
	svc := newTestAnalysisService(t, nil)
	ctx := context.Background()

	t.Run("default suggestion", func(t *testing.T) {
		res, err := svc.Analyze(ctx, validProfile())
		require.NoError(t, err)
		require.False(t, res.Suppressed)
		require.NotNil(t, res.Analysis)

		assert.Equal(t, 100000.0, res.Analysis.GrossMonthly)
		assert.Equal(t, 85000.0, res.Analysis.TakeHome)
		assert.Equal(t, salary.AboveMarket, res.Analysis.Assessment.Verdict)
		assert.Len(t, res.Analysis.Projections, 40)
	})

	t.Run("override within band", func(t *testing.T) {
		p := validProfile()
		takeHome := 57000.0
		p.TakeHome = &takeHome

		res, err := svc.Analyze(ctx, p)
		require.NoError(t, err)
		assert.True(t, res.Analysis.Overridden)
		assert.Equal(t, salary.Fair, res.Analysis.Assessment.Verdict)
	})

	t.Run("empty name is suppressed", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			p := validProfile()
			p.Name = name
			res, err := svc.Analyze(ctx, p)
			require.NoError(t, err)
			assert.True(t, res.Suppressed)
			assert.Nil(t, res.Analysis)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		a, err := svc.Analyze(ctx, validProfile())
		require.NoError(t, err)
		b, err := svc.Analyze(ctx, validProfile())
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestAnalysisService_AnalyzeErrors(t *testing.T) {
	svc := newTestAnalysisService(t, nil)

	tests := []struct {
		name    string
		mutate  func(*salary.Profile)
		ctx     func() context.Context
		wantErr error
	}{
		{
			name:    "compensation below minimum",
			mutate:  func(p *salary.Profile) { p.AnnualLPA = 0.5 },
			wantErr: ErrInvalidInput,
		},
		{
			name: "take-home below minimum",
			mutate: func(p *salary.Profile) {
				v := 999.0
				p.TakeHome = &v
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown experience",
			mutate:  func(p *salary.Profile) { p.Experience = salary.Experience(42) },
			wantErr: ErrInvalidInput,
		},
		{
			name:   "expired deadline",
			mutate: func(*salary.Profile) {},
			ctx: func() context.Context {
				ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
				t.Cleanup(cancel)
				return ctx
			},
			wantErr: ErrOperationTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}

			_, err := svc.Analyze(ctx, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAnalysisService_Suggest(t *testing.T) {
	svc := newTestAnalysisService(t, nil)

	s, err := svc.Suggest(context.Background(), 12, salary.ThreeToFiveYears)
	require.NoError(t, err)
	assert.Equal(t, 85000.0, s.TakeHome)
	assert.Equal(t, 100000.0, s.GrossMonthly)
	assert.InDelta(t, 0.85, s.SuggestedRatio, 1e-9)

	_, err = svc.Suggest(context.Background(), 0.9, salary.Fresher)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalysisService_Report(t *testing.T) {
	svc := newTestAnalysisService(t, nil)

	rep, err := svc.Report(context.Background(), validProfile())
	require.NoError(t, err)
	assert.Equal(t, "Asha_Rao_Salary_Report_2025.xlsx", rep.FileName)
	assert.Equal(t, config.XLSXContentType, rep.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(rep.Data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{config.UserInfoSheet, config.SalaryAnalysisSheet}, f.GetSheetList())

	p := validProfile()
	p.Name = " "
	_, err = svc.Report(context.Background(), p)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAnalysisService_Chart(t *testing.T) {
	svc := newTestAnalysisService(t, nil)
	p := validProfile()
	p.Name = ""

	for _, kind := range []ChartKind{ChartTakeHome, ChartPayout} {
		t.Run(string(kind), func(t *testing.T) {
			png, err := svc.Chart(context.Background(), p, kind)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
		})
	}

	_, err := svc.Chart(context.Background(), p, "pie")
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestAnalysisService_Bundle(t *testing.T) {
	svc := newTestAnalysisService(t, nil)

	b, err := svc.Bundle(context.Background(), validProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, b.Workbook)
	assert.NotEmpty(t, b.TakeHomeChart)
	assert.NotEmpty(t, b.PayoutChart)

	p := validProfile()
	p.Name = ""
	_, err = svc.Bundle(context.Background(), p)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestAnalysisService_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := infrastructure.CreateBusinessMetrics(mp.Meter("test"))
	require.NoError(t, err)
	svc := newTestAnalysisService(t, metrics)

	_, err = svc.Analyze(context.Background(), validProfile())
	require.NoError(t, err)
	_, err = svc.Report(context.Background(), validProfile())
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}
	assert.True(t, names["salary_analyses_total"])
	assert.True(t, names["salary_reports_total"])
}
