package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apierrors "salarylens/internal/errors"
	"salarylens/internal/middleware"
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	"salarylens/internal/shared/testutil"
)

// MockAnalysisService is a mock implementation of AnalysisServiceInterface
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, p salary.Profile) (*services.AnalysisResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) Suggest(ctx context.Context, annualLPA float64, exp salary.Experience) (*services.Suggestion, error) {
	args := m.Called(ctx, annualLPA, exp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Suggestion), args.Error(1)
}

func (m *MockAnalysisService) Report(ctx context.Context, p salary.Profile) (*services.Report, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Report), args.Error(1)
}

func (m *MockAnalysisService) Chart(ctx context.Context, p salary.Profile, kind services.ChartKind) ([]byte, error) {
	args := m.Called(ctx, p, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPredictorService is a mock implementation of PredictorServiceInterface
type MockPredictorService struct {
	mock.Mock
}

func (m *MockPredictorService) Predict(ctx context.Context, profile predictor.JobProfile) (*predictor.Estimate, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*predictor.Estimate), args.Error(1)
}

// MockHealthService is a mock implementation of HealthServiceInterface
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) HealthCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) ReadinessCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) LivenessCheck(ctx context.Context) services.HealthStatus {
	return m.Called(ctx).Get(0).(services.HealthStatus)
}

func (m *MockHealthService) Version() map[string]interface{} {
	return m.Called().Get(0).(map[string]interface{})
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

const sampleAnalysisJSON = `{
	"name": "Asha Rao",
	"company": "Acme Corp",
	"designation": "Senior Engineer",
	"experience": "3-5 yrs",
	"location": "Bangalore",
	"tax_regime": "New Tax Regime",
	"annual_lpa": 12
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDeps() (*middleware.ValidationMiddleware, *apierrors.ErrorHandler) {
	logger := testLogger()
	eh := apierrors.NewErrorHandler(logger, false, ErrorMappings()...)
	return middleware.NewValidationMiddleware(logger, eh), eh
}

// sampleAnalysis runs the real estimator over testutil.SampleProfile
func sampleAnalysis(t *testing.T) *salary.Analysis {
	t.Helper()
	a, err := salary.NewEstimator(salary.DefaultTables()).Analyze(testutil.SampleProfile())
	require.NoError(t, err)
	return a
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
