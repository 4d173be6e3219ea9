package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarylens/internal/shared/testutil"
)

var (
	errBadInput  = errors.New("bad input")
	errNeedsName = errors.New("name required")
)

func testMappings() []Mapping {
	return []Mapping{
		{Target: errBadInput, Status: http.StatusBadRequest, Type: TypeValidation, Title: "Invalid Input", Expose: true},
		{Target: errNeedsName, Status: http.StatusUnprocessableEntity, Type: TypeUnprocessable, Title: "Name Required", Expose: true},
		{Target: context.DeadlineExceeded, Status: http.StatusGatewayTimeout, Type: TypeTimeout, Title: "Operation Timed Out"},
	}
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	require.NoError(t, json.NewDecoder(w.Body).Decode(&problem))
	return problem
}

func TestNewErrorHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	handler := NewErrorHandler(logger, true, testMappings()...)
	assert.True(t, handler.includeStack)
	assert.Len(t, handler.mappings, 3)
	assert.NotNil(t, handler.logger)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantTitle  string
		wantDetail string
		wantLevel  slog.Level
	}{
		{
			name:       "mapped sentinel exposes detail",
			err:        fmt.Errorf("%w: annual_lpa 0.5", errBadInput),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			wantTitle:  "Invalid Input",
			wantDetail: "bad input: annual_lpa 0.5",
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "unprocessable",
			err:        errNeedsName,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnprocessable,
			wantTitle:  "Name Required",
			wantDetail: "name required",
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "mapped sentinel hides detail",
			err:        fmt.Errorf("render: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantTitle:  "Operation Timed Out",
			wantDetail: http.StatusText(http.StatusGatewayTimeout),
			wantLevel:  slog.LevelError,
		},
		{
			name:       "api error",
			err:        ErrRateLimitExceeded,
			wantStatus: http.StatusTooManyRequests,
			wantType:   TypeRateLimit,
			wantTitle:  "Too Many Requests",
			wantDetail: "Rate limit exceeded",
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "unknown error is internal",
			err:        errors.New("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantTitle:  "Internal Server Error",
			wantDetail: "An unexpected error occurred while processing your request",
			wantLevel:  slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false, testMappings()...)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)

			handler.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			problem := decodeProblem(t, w)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, tt.wantTitle, problem.Title)
			assert.Equal(t, tt.wantDetail, problem.Detail)
			assert.Equal(t, "/api/analysis", problem.Instance)
			assert.Contains(t, problem.Extensions, "trace_id")
			assert.NotContains(t, problem.Extensions, "stack")

			require.Equal(t, 1, logs.Count())
			assert.Equal(t, tt.wantLevel, logs.GetRecords()[0].Level)
		})
	}
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	w := httptest.NewRecorder()
	handler.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Equal(t, 0, w.Body.Len())
	assert.Equal(t, 0, logs.Count())
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	r := httptest.NewRequest(http.MethodGet, "/api/analysis/suggest", nil)

	t.Run("context errors without mappings", func(t *testing.T) {
		for _, err := range []error{context.DeadlineExceeded, context.Canceled} {
			p := handler.ErrorToProblem(err, r)
			assert.Equal(t, http.StatusGatewayTimeout, p.Status)
			assert.Equal(t, TypeTimeout, p.Type)
		}
	})

	t.Run("validation errors are listed", func(t *testing.T) {
		err := NewValidationErrors([]ValidationError{{Field: "annual_lpa", Message: "required"}})
		p := handler.ErrorToProblem(err, r)

		assert.Equal(t, http.StatusBadRequest, p.Status)
		assert.Equal(t, TypeValidation, p.Type)
		assert.Equal(t, "VALIDATION_FAILED", p.Extensions["error_code"])
		assert.Equal(t, []ValidationError{{Field: "annual_lpa", Message: "required"}}, p.Extensions["errors"])
	})

	t.Run("missing parameter", func(t *testing.T) {
		p := handler.ErrorToProblem(MissingParameter("experience"), r)
		assert.Equal(t, TypeValidation, p.Type)
		assert.Equal(t, "experience", p.Extensions["details"])
	})

	t.Run("first mapping wins", func(t *testing.T) {
		h := NewErrorHandler(logger, false,
			Mapping{Target: errBadInput, Status: http.StatusBadRequest, Type: TypeValidation, Title: "first"},
			Mapping{Target: errBadInput, Status: http.StatusConflict, Type: TypeInternal, Title: "second"},
		)
		p := h.ErrorToProblem(errBadInput, r)
		assert.Equal(t, "first", p.Title)
	})
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	for _, includeStack := range []bool{false, true} {
		t.Run(fmt.Sprintf("stack=%v", includeStack), func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, includeStack)

			w := httptest.NewRecorder()
			handler.HandlePanic(w, httptest.NewRequest(http.MethodGet, "/boom", nil), "kaboom")

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			problem := decodeProblem(t, w)
			assert.Equal(t, TypeInternal, problem.Type)
			if includeStack {
				assert.Equal(t, "kaboom", problem.Extensions["panic"])
				assert.Contains(t, problem.Extensions, "stack")
			} else {
				assert.NotContains(t, problem.Extensions, "panic")
			}
			assert.True(t, logs.ContainsMessage("panic recovered"))
		})
	}
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	var reqID string
	capture := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID = middleware.GetReqID(r.Context())
		handler.NotFound(w, r)
	}))

	w := httptest.NewRecorder()
	capture.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	problem := decodeProblem(t, w)
	assert.Equal(t, TypeNotFound, problem.Type)
	assert.Equal(t, reqID, problem.Extensions["trace_id"])

	w = httptest.NewRecorder()
	handler.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/analysis", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	problem = decodeProblem(t, w)
	assert.Equal(t, TypeMethodNotAllowed, problem.Type)
	assert.Contains(t, problem.Detail, "DELETE")
}

func TestErrorHandlerConcurrency(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false, testMappings()...)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/analysis", nil)
			handler.HandleError(w, r, fmt.Errorf("%w: request %d", errBadInput, i))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, logs.Count())
}
