package errors

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const maxLoggedBody = 1 << 20

// redactedFields are replaced before a failing request body is logged.
// Names and employers identify a person; compensation fields are left in
// because they are what a failing request is usually about.
var redactedFields = []string{"name", "company", "designation"}

// ErrorMiddleware logs every request and recovers panics as problems
type ErrorMiddleware struct {
	handler *ErrorHandler
	logger  *slog.Logger
}

// NewErrorMiddleware creates a new request logging middleware
func NewErrorMiddleware(handler *ErrorHandler, logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		handler: handler,
		logger:  logger.With(slog.String("component", "error_middleware")),
	}
}

// Handler returns the middleware handler function
func (m *ErrorMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		var requestBody []byte
		if r.Body != nil && r.ContentLength > 0 && r.ContentLength < maxLoggedBody {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(requestBody))
		}

		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				m.handler.HandlePanic(ww, r, rec)
			}
			m.log(r, ww, requestBody, time.Since(start))
		}()

		next.ServeHTTP(ww, r)
	})
}

func (m *ErrorMiddleware) log(r *http.Request, ww middleware.WrapResponseWriter, body []byte, duration time.Duration) {
	status := ww.Status()
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Duration("duration", duration),
		slog.Int("bytes", ww.BytesWritten()),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("user_agent", r.UserAgent()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	}
	if r.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", r.URL.RawQuery))
	}
	if status >= 400 && len(body) > 0 {
		s := sanitizeRequestBody(string(body))
		if len(s) > 500 {
			s = s[:500] + "..."
		}
		attrs = append(attrs, slog.String("request_body", s))
	}

	m.logger.LogAttrs(r.Context(), level, "http request", attrs...)
}

// sanitizeRequestBody redacts identifying fields from a JSON body. Bodies
// that are not JSON objects are dropped entirely.
func sanitizeRequestBody(body string) string {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return "[non-JSON body omitted]"
	}

	for key := range data {
		for _, field := range redactedFields {
			if strings.EqualFold(key, field) {
				data[key] = "[REDACTED]"
			}
		}
	}

	sanitized, _ := json.Marshal(data)
	return string(sanitized)
}
