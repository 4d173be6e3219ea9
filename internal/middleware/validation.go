package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "salarylens/internal/errors"
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
)

// DefaultMaxBodySize caps JSON request bodies
const DefaultMaxBodySize = 64 * 1024

// ValidationMiddleware validates JSON bodies and request structs
type ValidationMiddleware struct {
	validator    *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	maxBodySize  int64
}

// NewValidationMiddleware creates a validator with the form label tags
// registered: experience, location, tax_regime, role, education,
// predictor_location, industry and skill.
func NewValidationMiddleware(logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ValidationMiddleware {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("experience", parses(salary.ParseExperience))
	v.RegisterValidation("location", parses(salary.ParseLocation))
	v.RegisterValidation("tax_regime", parses(salary.ParseTaxRegime))
	v.RegisterValidation("role", oneOf(predictor.Roles()))
	v.RegisterValidation("education", oneOf(predictor.EducationLevels()))
	v.RegisterValidation("predictor_location", oneOf(predictor.Cities()))
	v.RegisterValidation("industry", oneOf(predictor.Industries()))
	v.RegisterValidation("skill", parses(predictor.ParseSkill))

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ValidationMiddleware{
		validator:    v,
		logger:       logger.With(slog.String("component", "validation_middleware")),
		errorHandler: errorHandler,
		maxBodySize:  DefaultMaxBodySize,
	}
}

// ValidateRequest rejects oversized or malformed JSON bodies before they
// reach a handler
func (m *ValidationMiddleware) ValidateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if r.ContentLength > m.maxBodySize {
			m.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusRequestEntityTooLarge,
				"PAYLOAD_TOO_LARGE",
				"Request body exceeds maximum allowed size",
				map[string]interface{}{
					"max_size": m.maxBodySize,
					"size":     r.ContentLength,
				},
			))
			return
		}

		if r.Body != nil {
			body, err := io.ReadAll(io.LimitReader(r.Body, m.maxBodySize+1))
			if err != nil {
				m.logger.ErrorContext(r.Context(), "failed to read request body",
					slog.String("error", err.Error()),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				m.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
				return
			}
			if int64(len(body)) > m.maxBodySize {
				m.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
				return
			}
			if len(body) > 0 && !json.Valid(body) {
				m.errorHandler.HandleError(w, r, apierrors.New(
					http.StatusBadRequest,
					"INVALID_JSON",
					"Request body contains invalid JSON",
				))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		next.ServeHTTP(w, r)
	})
}

// Bind decodes the JSON body into v and validates it. The returned error is
// an *apierrors.APIError ready for the error handler.
func (m *ValidationMiddleware) Bind(r *http.Request, v interface{}) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return apierrors.InvalidRequestWithError(errors.New("request body is empty"))
		}
		return apierrors.InvalidRequestWithError(err)
	}
	return m.ValidateStruct(v)
}

// ValidateStruct validates a struct and returns validation errors
func (m *ValidationMiddleware) ValidateStruct(v interface{}) error {
	err := m.validator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	validationErrors := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		validationErrors = append(validationErrors, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: m.formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(validationErrors)
}

// ContentTypeValidator ensures bodies are sent with an allowed content type
func ContentTypeValidator(errorHandler *apierrors.ErrorHandler, contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" {
				errorHandler.HandleError(w, r, apierrors.New(
					http.StatusBadRequest,
					"MISSING_CONTENT_TYPE",
					"Content-Type header is required",
				))
				return
			}

			for _, allowed := range contentTypes {
				if strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			errorHandler.HandleError(w, r, apierrors.NewWithDetails(
				http.StatusUnsupportedMediaType,
				"UNSUPPORTED_MEDIA_TYPE",
				"Unsupported content type",
				map[string]interface{}{
					"content_type": contentType,
					"allowed":      contentTypes,
				},
			))
		})
	}
}

func (m *ValidationMiddleware) formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "experience":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(salary.Experiences()))
	case "location":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(salary.Locations()))
	case "tax_regime":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(salary.TaxRegimes()))
	case "role":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(predictor.Roles()))
	case "education":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(predictor.EducationLevels()))
	case "predictor_location":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(predictor.Cities()))
	case "industry":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(predictor.Industries()))
	case "skill":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(predictor.Skills()))
	case "unique":
		return fmt.Sprintf("%s must not repeat values", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// parses adapts a label parser to a validator tag
func parses[T any](parse func(string) (T, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := parse(fl.Field().String())
		return err == nil
	}
}

func oneOf[T ~string](values []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if string(v) == s {
				return true
			}
		}
		return false
	}
}

func joinLabels[T any](values []T) string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprint(v)
	}
	return strings.Join(labels, ", ")
}

// QueryParamValidator validates query parameters
type QueryParamValidator struct {
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewQueryParamValidator creates a new query parameter validator
func NewQueryParamValidator(logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *QueryParamValidator {
	return &QueryParamValidator{
		logger:       logger.With(slog.String("component", "query_validator")),
		errorHandler: errorHandler,
	}
}

// RequireFloat reads a required, finite float parameter in [min, max].
// On failure the problem has been written and ok is false.
func (v *QueryParamValidator) RequireFloat(w http.ResponseWriter, r *http.Request, param string, min, max float64) (float64, bool) {
	value := r.URL.Query().Get(param)
	if value == "" {
		v.errorHandler.HandleError(w, r, apierrors.MissingParameter(param))
		return 0, false
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v.errorHandler.HandleError(w, r, apierrors.ErrValidation(param, fmt.Sprintf("%s must be a number", param)))
		return 0, false
	}
	if f < min {
		v.errorHandler.HandleError(w, r, apierrors.ErrValidation(param, fmt.Sprintf("%s must be at least %g", param, min)))
		return 0, false
	}
	if f > max {
		v.errorHandler.HandleError(w, r, apierrors.ErrValidation(param, fmt.Sprintf("%s must be at most %g", param, max)))
		return 0, false
	}
	return f, true
}

// ValidateEnum reads an enum parameter. An empty defaultValue makes the
// parameter required.
func (v *QueryParamValidator) ValidateEnum(w http.ResponseWriter, r *http.Request, param string, allowed []string, defaultValue string) (string, bool) {
	value := r.URL.Query().Get(param)
	if value == "" {
		if defaultValue == "" {
			v.errorHandler.HandleError(w, r, apierrors.MissingParameter(param))
			return "", false
		}
		return defaultValue, true
	}

	for _, a := range allowed {
		if value == a {
			return value, true
		}
	}

	v.errorHandler.HandleError(w, r, apierrors.ErrValidation(param, fmt.Sprintf("%s must be one of: %s", param, strings.Join(allowed, ", "))))
	return "", false
}
