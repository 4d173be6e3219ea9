package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"salarylens/internal/config"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	"salarylens/internal/shared/testutil"
	api "salarylens/pkg/contracts/api/v1"
)

func newAnalysisRouter(svc AnalysisServiceInterface) chi.Router {
	validator, eh := testDeps()
	h := NewAnalysisHandler(svc, validator, eh, testLogger())

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	t.Run("returns summary, verdict and projections", func(t *testing.T) {
		svc := new(MockAnalysisService)
		svc.On("Analyze", mock.Anything, testutil.SampleProfile()).
			Return(&services.AnalysisResult{Analysis: sampleAnalysis(t)}, nil)

		w := httptest.NewRecorder()
		newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis", sampleAnalysisJSON))

		require.Equal(t, http.StatusOK, w.Code)
		var resp api.AnalysisResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.NotEmpty(t, resp.AnalysisID)
		assert.False(t, resp.Suppressed)
		assert.Equal(t, "Hello, Asha Rao!", resp.Greeting)
		assert.Len(t, resp.Summary, 8)
		assert.Equal(t, 100000.0, resp.GrossMonthly)
		assert.Equal(t, 85000.0, resp.TakeHome)
		assert.False(t, resp.Overridden)
		require.NotNil(t, resp.Assessment)
		assert.Equal(t, "above_market", resp.Assessment.Verdict)
		require.Len(t, resp.Projections, 40)
		assert.Equal(t, 5, resp.Projections[0].HikePercent)
		assert.Equal(t, 200, resp.Projections[39].HikePercent)
		svc.AssertExpectations(t)
	})

	t.Run("passes the take-home override through", func(t *testing.T) {
		want := testutil.SampleProfile()
		want.TakeHome = testutil.Float(57000)

		svc := new(MockAnalysisService)
		svc.On("Analyze", mock.Anything, want).
			Return(&services.AnalysisResult{Suppressed: true}, nil)

		body := `{"name":"Asha Rao","company":"Acme Corp","designation":"Senior Engineer",
			"experience":"3-5 yrs","location":"Bangalore","tax_regime":"New Tax Regime",
			"annual_lpa":12,"take_home":57000}`
		w := httptest.NewRecorder()
		newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis", body))

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("suppressed result has no data", func(t *testing.T) {
		svc := new(MockAnalysisService)
		svc.On("Analyze", mock.Anything, mock.AnythingOfType("salary.Profile")).
			Return(&services.AnalysisResult{Suppressed: true}, nil)

		w := httptest.NewRecorder()
		newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis", sampleAnalysisJSON))

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["suppressed"])
		assert.NotContains(t, resp, "projections")
		assert.NotContains(t, resp, "assessment")
	})
}

func TestAnalysisHandler_AnalyzeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockAnalysisService)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unknown experience label",
			body:       `{"name":"A","experience":"20 yrs","location":"Bangalore","tax_regime":"New Tax Regime","annual_lpa":12}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"field":"experience"`,
		},
		{
			name:       "compensation below minimum",
			body:       `{"name":"A","experience":"Fresher","location":"Bangalore","tax_regime":"New Tax Regime","annual_lpa":0.5}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "annual_lpa must be at least 1",
		},
		{
			name:       "take-home below minimum",
			body:       `{"name":"A","experience":"Fresher","location":"Bangalore","tax_regime":"New Tax Regime","annual_lpa":5,"take_home":999}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "take_home must be at least 1000",
		},
		{
			name:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
			wantBody:   "request body is empty",
		},
		{
			name: "service timeout",
			body: sampleAnalysisJSON,
			setupMock: func(m *MockAnalysisService) {
				m.On("Analyze", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: deadline", services.ErrOperationTimeout))
			},
			wantStatus: http.StatusGatewayTimeout,
			wantBody:   `"type":"/errors/timeout"`,
		},
		{
			name: "service rejects input",
			body: sampleAnalysisJSON,
			setupMock: func(m *MockAnalysisService) {
				m.On("Analyze", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: %w", services.ErrInvalidInput, salary.ErrInvalidTakeHome))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"type":"/errors/validation"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalysisService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := httptest.NewRecorder()
			newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.setupMock == nil {
				svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAnalysisHandler_Suggest(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockAnalysisService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "valid query",
			query: "?annual_lpa=12&experience=3-5+yrs",
			setupMock: func(m *MockAnalysisService) {
				m.On("Suggest", mock.Anything, 12.0, salary.ThreeToFiveYears).Return(&services.Suggestion{
					AnnualLPA:      12,
					Experience:     salary.ThreeToFiveYears,
					GrossMonthly:   100000,
					SuggestedRatio: 0.85,
					TakeHome:       85000,
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"hint":"Estimated: ₹85,000"`,
		},
		{
			name:       "missing compensation",
			query:      "?experience=Fresher",
			wantStatus: http.StatusBadRequest,
			wantBody:   "MISSING_PARAMETER",
		},
		{
			name:       "compensation not a number",
			query:      "?annual_lpa=lots&experience=Fresher",
			wantStatus: http.StatusBadRequest,
			wantBody:   "annual_lpa must be a number",
		},
		{
			name:       "compensation below minimum",
			query:      "?annual_lpa=0.9&experience=Fresher",
			wantStatus: http.StatusBadRequest,
			wantBody:   "annual_lpa must be at least 1",
		},
		{
			name:       "compensation above the request ceiling",
			query:      "?annual_lpa=20000&experience=Fresher",
			wantStatus: http.StatusBadRequest,
			wantBody:   "annual_lpa must be at most 10000",
		},
		{
			name:       "compensation too large to compute",
			query:      "?annual_lpa=1e308&experience=Fresher",
			wantStatus: http.StatusBadRequest,
			wantBody:   "annual_lpa must be at most 10000",
		},
		{
			name:       "compensation not finite",
			query:      "?annual_lpa=Inf&experience=Fresher",
			wantStatus: http.StatusBadRequest,
			wantBody:   "annual_lpa must be a number",
		},
		{
			name:       "unknown experience",
			query:      "?annual_lpa=12&experience=ancient",
			wantStatus: http.StatusBadRequest,
			wantBody:   "experience must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalysisService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			w := httptest.NewRecorder()
			newAnalysisRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/suggest"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalysisHandler_Report(t *testing.T) {
	t.Run("streams the workbook as an attachment", func(t *testing.T) {
		svc := new(MockAnalysisService)
		svc.On("Report", mock.Anything, testutil.SampleProfile()).Return(&services.Report{
			FileName:    "Asha_Rao_Salary_Report_2025.xlsx",
			ContentType: config.XLSXContentType,
			Data:        []byte("PK\x03\x04workbook"),
		}, nil)

		w := httptest.NewRecorder()
		newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis/report", sampleAnalysisJSON))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, config.XLSXContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=Asha_Rao_Salary_Report_2025.xlsx`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "12", w.Header().Get("Content-Length"))
		assert.Equal(t, "PK\x03\x04workbook", w.Body.String())
	})

	t.Run("empty name is unprocessable", func(t *testing.T) {
		svc := new(MockAnalysisService)
		svc.On("Report", mock.Anything, mock.Anything).Return(nil, services.ErrEmptyName)

		w := httptest.NewRecorder()
		newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis/report", sampleAnalysisJSON))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), services.ErrEmptyName.Error())
	})

	t.Run("render failure hides internals", func(t *testing.T) {
		svc := new(MockAnalysisService)
		svc.On("Report", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: disk on fire", services.ErrRenderFailed))

		w := httptest.NewRecorder()
		newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, "/api/analysis/report", sampleAnalysisJSON))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "disk on fire")
	})
}

func TestAnalysisHandler_Chart(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		kind       services.ChartKind
		err        error
		wantStatus int
	}{
		{"take-home line chart", "/api/analysis/charts/take-home.png", services.ChartTakeHome, nil, http.StatusOK},
		{"payout bar chart", "/api/analysis/charts/payout.png", services.ChartPayout, nil, http.StatusOK},
		{"unknown chart", "/api/analysis/charts/pie.png", "pie", services.ErrUnknownChart, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalysisService)
			if tt.err != nil {
				svc.On("Chart", mock.Anything, testutil.SampleProfile(), tt.kind).Return(nil, tt.err)
			} else {
				svc.On("Chart", mock.Anything, testutil.SampleProfile(), tt.kind).Return(pngBytes, nil)
			}

			w := httptest.NewRecorder()
			newAnalysisRouter(svc).ServeHTTP(w, jsonRequest(http.MethodPost, tt.path, sampleAnalysisJSON))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, pngBytes, w.Body.Bytes())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalysisHandler_DownloadMiddleware(t *testing.T) {
	validator, eh := testDeps()
	h := NewAnalysisHandler(new(MockAnalysisService), validator, eh, testLogger())

	var wrapped []string
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped = append(wrapped, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		})
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) { h.RegisterRoutes(r, mw) })

	for _, path := range []string{"/api/analysis/report", "/api/analysis/charts/payout.png"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest(http.MethodPost, path, sampleAnalysisJSON))
		assert.Equal(t, http.StatusTeapot, w.Code, path)
	}
	assert.Equal(t, []string{"/api/analysis/report", "/api/analysis/charts/payout.png"}, wrapped)
}
