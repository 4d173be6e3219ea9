package http

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salarylens/internal/config"
	apierrors "salarylens/internal/errors"
	"salarylens/internal/middleware"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	api "salarylens/pkg/contracts/api/v1"
)

// AnalysisHandler handles the salary analyzer endpoints
type AnalysisHandler struct {
	service      AnalysisServiceInterface
	validator    *middleware.ValidationMiddleware
	query        *middleware.QueryParamValidator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
	now          func() time.Time
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	service AnalysisServiceInterface,
	validator *middleware.ValidationMiddleware,
	errorHandler *apierrors.ErrorHandler,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		service:      service,
		validator:    validator,
		query:        middleware.NewQueryParamValidator(logger, errorHandler),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "analysis")),
		now:          time.Now,
	}
}

// RegisterRoutes registers the analysis routes. downloads wraps the report
// and chart endpoints, which render binary files.
func (h *AnalysisHandler) RegisterRoutes(r chi.Router, downloads ...func(http.Handler) http.Handler) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/", h.Analyze)
		r.Get("/suggest", h.Suggest)

		r.Group(func(r chi.Router) {
			r.Use(downloads...)
			r.Post("/report", h.Report)
			r.Post("/charts/{kind}.png", h.Chart)
		})
	})
}

// Analyze handles POST /api/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.bindProfile(w, r)
	if !ok {
		return
	}

	res, err := h.service.Analyze(r.Context(), profile)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, toAnalysisResponse(res, h.now()))
}

// Suggest handles GET /api/analysis/suggest?annual_lpa=&experience=
func (h *AnalysisHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	lpa, ok := h.query.RequireFloat(w, r, "annual_lpa", config.MinAnnualLPA, config.MaxAnnualLPA)
	if !ok {
		return
	}
	label, ok := h.query.ValidateEnum(w, r, "experience", experienceLabels(), "")
	if !ok {
		return
	}

	exp, err := salary.ParseExperience(label)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("experience", err.Error()))
		return
	}

	s, err := h.service.Suggest(r.Context(), lpa, exp)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, toSuggestionResponse(s))
}

// Report handles POST /api/analysis/report and streams the XLSX workbook
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.bindProfile(w, r)
	if !ok {
		return
	}

	rep, err := h.service.Report(r.Context(), profile)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	writeAttachment(w, rep.ContentType, rep.FileName, rep.Data)
}

// Chart handles POST /api/analysis/charts/{kind}.png
func (h *AnalysisHandler) Chart(w http.ResponseWriter, r *http.Request) {
	kind := services.ChartKind(chi.URLParam(r, "kind"))

	profile, ok := h.bindProfile(w, r)
	if !ok {
		return
	}

	png, err := h.service.Chart(r.Context(), profile, kind)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write chart",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
	}
}

func (h *AnalysisHandler) bindProfile(w http.ResponseWriter, r *http.Request) (salary.Profile, bool) {
	var req api.AnalysisRequest
	if err := h.validator.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return salary.Profile{}, false
	}

	profile, err := toProfile(req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return salary.Profile{}, false
	}
	return profile, true
}

// writeAttachment sends data as a file download. The file name is encoded
// per RFC 6266 so names outside ASCII survive.
func writeAttachment(w http.ResponseWriter, contentType, fileName string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func experienceLabels() []string {
	exps := salary.Experiences()
	labels := make([]string, len(exps))
	for i, e := range exps {
		labels[i] = e.String()
	}
	return labels
}
