package http

import (
	"bytes"
	"embed"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"salarylens/internal/config"
	apierrors "salarylens/internal/errors"
	"salarylens/internal/exporter"
	"salarylens/internal/middleware"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	api "salarylens/pkg/contracts/api/v1"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultPredictorYears = 3

type page struct {
	Title  string
	Active string
	Errors []string
}

type analyzerPage struct {
	page
	Year      int
	Options   services.AnalyzerOptions
	Form      api.AnalysisRequest
	AnnualLPA string
	TakeHome  string
	Hint      string
	Result    *analyzerResult
}

type analyzerResult struct {
	Greeting      string
	Summary       []exporter.SummaryLine
	Projections   []salary.Projection
	TakeHomeChart template.URL
	PayoutChart   template.URL
}

type predictorPage struct {
	page
	Options services.PredictorOptions
	Form    api.PredictRequest
	Result  string
}

// PageHandler serves the server-rendered home, analyzer and predictor pages
type PageHandler struct {
	analysis     AnalysisServiceInterface
	predictor    PredictorServiceInterface
	options      services.Options
	reportYear   int
	validator    *middleware.ValidationMiddleware
	errorHandler *apierrors.ErrorHandler
	templates    map[string]*template.Template
	logger       *slog.Logger
}

// NewPageHandler parses the embedded templates and creates the page handler
func NewPageHandler(
	analysis AnalysisServiceInterface,
	predictor PredictorServiceInterface,
	options services.Options,
	reportYear int,
	validator *middleware.ValidationMiddleware,
	errorHandler *apierrors.ErrorHandler,
	logger *slog.Logger,
) (*PageHandler, error) {
	funcs := template.FuncMap{
		"amount": exporter.FormatAmount,
		"has":    slices.Contains[[]string],
	}

	templates := make(map[string]*template.Template, 3)
	for _, name := range []string{"home", "analyzer", "predictor"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		templates[name] = t
	}

	return &PageHandler{
		analysis:     analysis,
		predictor:    predictor,
		options:      options,
		reportYear:   reportYear,
		validator:    validator,
		errorHandler: errorHandler,
		templates:    templates,
		logger:       logger.With(slog.String("handler", "pages")),
	}, nil
}

// RegisterRoutes registers the page routes. downloads wraps the report
// download.
func (h *PageHandler) RegisterRoutes(r chi.Router, downloads ...func(http.Handler) http.Handler) {
	r.Get("/", h.Home)
	r.Get("/analyzer", h.AnalyzerForm)
	r.Post("/analyzer", h.AnalyzerSubmit)
	r.With(downloads...).Post("/analyzer/report", h.AnalyzerReport)
	r.Get("/predictor", h.PredictorForm)
	r.Post("/predictor", h.PredictorSubmit)
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", page{Title: "Home", Active: "home"})
}

// AnalyzerForm handles GET /analyzer
func (h *PageHandler) AnalyzerForm(w http.ResponseWriter, r *http.Request) {
	opts := h.options.Analyzer
	data := h.newAnalyzerPage()
	data.Form.Experience = opts.Experiences[0]
	data.Form.Location = opts.Locations[0]
	data.Form.TaxRegime = opts.TaxRegimes[0]
	data.AnnualLPA = strconv.FormatFloat(config.MinAnnualLPA, 'f', 1, 64)
	data.Hint = h.hint(r, salary.Experiences()[0], config.MinAnnualLPA)

	h.render(w, r, http.StatusOK, "analyzer", data)
}

// AnalyzerSubmit handles POST /analyzer
func (h *PageHandler) AnalyzerSubmit(w http.ResponseWriter, r *http.Request) {
	data, profile, err := h.bindAnalyzerForm(r)
	if err != nil {
		h.renderAnalyzerError(w, r, data, err)
		return
	}

	res, err := h.analysis.Analyze(r.Context(), profile)
	if err != nil {
		h.renderAnalyzerError(w, r, data, err)
		return
	}
	if res.Suppressed {
		h.render(w, r, http.StatusOK, "analyzer", data)
		return
	}

	summary := exporter.NewSummary(res.Analysis)
	result := &analyzerResult{
		Greeting:    summary.Greeting,
		Summary:     summary.Lines,
		Projections: res.Analysis.Projections,
	}
	result.TakeHomeChart = h.chartURL(r, profile, services.ChartTakeHome)
	result.PayoutChart = h.chartURL(r, profile, services.ChartPayout)
	data.Result = result

	h.render(w, r, http.StatusOK, "analyzer", data)
}

// AnalyzerReport handles POST /analyzer/report, the form's download button
func (h *PageHandler) AnalyzerReport(w http.ResponseWriter, r *http.Request) {
	data, profile, err := h.bindAnalyzerForm(r)
	if err != nil {
		h.renderAnalyzerError(w, r, data, err)
		return
	}

	rep, err := h.analysis.Report(r.Context(), profile)
	if err != nil {
		h.renderAnalyzerError(w, r, data, err)
		return
	}

	writeAttachment(w, rep.ContentType, rep.FileName, rep.Data)
}

// PredictorForm handles GET /predictor
func (h *PageHandler) PredictorForm(w http.ResponseWriter, r *http.Request) {
	opts := h.options.Predictor
	data := predictorPage{
		page:    page{Title: "Salary Predictor", Active: "predictor"},
		Options: opts,
		Form: api.PredictRequest{
			Role:      opts.Roles[0],
			Education: opts.Education[0],
			Years:     defaultPredictorYears,
			Location:  opts.Locations[0],
			Industry:  opts.Industries[0],
		},
	}
	h.render(w, r, http.StatusOK, "predictor", data)
}

// PredictorSubmit handles POST /predictor
func (h *PageHandler) PredictorSubmit(w http.ResponseWriter, r *http.Request) {
	data := predictorPage{
		page:    page{Title: "Salary Predictor", Active: "predictor"},
		Options: h.options.Predictor,
	}

	if err := r.ParseForm(); err != nil {
		h.renderPredictorError(w, r, data, apierrors.InvalidRequestWithError(err))
		return
	}
	data.Form = api.PredictRequest{
		Role:      r.PostForm.Get("role"),
		Education: r.PostForm.Get("education"),
		Location:  r.PostForm.Get("location"),
		Industry:  r.PostForm.Get("industry"),
		Skills:    r.PostForm["skills"],
	}
	years, err := strconv.Atoi(r.PostForm.Get("years"))
	if err != nil {
		h.renderPredictorError(w, r, data, apierrors.ErrValidation("years", "years must be a whole number"))
		return
	}
	data.Form.Years = years

	if err := h.validator.ValidateStruct(&data.Form); err != nil {
		h.renderPredictorError(w, r, data, err)
		return
	}
	profile, err := toJobProfile(data.Form)
	if err != nil {
		h.renderPredictorError(w, r, data, err)
		return
	}

	est, err := h.predictor.Predict(r.Context(), profile)
	if err != nil {
		h.renderPredictorError(w, r, data, err)
		return
	}
	data.Result = est.Summary()

	h.render(w, r, http.StatusOK, "predictor", data)
}

func (h *PageHandler) newAnalyzerPage() analyzerPage {
	return analyzerPage{
		page:    page{Title: "Salary Analyzer", Active: "analyzer"},
		Year:    h.reportYear,
		Options: h.options.Analyzer,
	}
}

// bindAnalyzerForm reads the analyzer form. The returned page echoes the
// submitted values even when err is set.
func (h *PageHandler) bindAnalyzerForm(r *http.Request) (analyzerPage, salary.Profile, error) {
	data := h.newAnalyzerPage()
	if err := r.ParseForm(); err != nil {
		return data, salary.Profile{}, apierrors.InvalidRequestWithError(err)
	}

	f := r.PostForm
	data.Form = api.AnalysisRequest{
		Name:        strings.TrimSpace(f.Get("name")),
		Company:     strings.TrimSpace(f.Get("company")),
		Designation: strings.TrimSpace(f.Get("designation")),
		Experience:  f.Get("experience"),
		Location:    f.Get("location"),
		TaxRegime:   f.Get("tax_regime"),
	}
	data.AnnualLPA = strings.TrimSpace(f.Get("annual_lpa"))
	data.TakeHome = strings.TrimSpace(f.Get("take_home"))

	lpa, err := strconv.ParseFloat(data.AnnualLPA, 64)
	if err != nil {
		return data, salary.Profile{}, apierrors.ErrValidation("annual_lpa", "annual_lpa must be a number")
	}
	data.Form.AnnualLPA = lpa

	if data.TakeHome != "" {
		takeHome, err := strconv.ParseFloat(data.TakeHome, 64)
		if err != nil {
			return data, salary.Profile{}, apierrors.ErrValidation("take_home", "take_home must be a number")
		}
		data.Form.TakeHome = &takeHome
	}

	if err := h.validator.ValidateStruct(&data.Form); err != nil {
		return data, salary.Profile{}, err
	}
	profile, err := toProfile(data.Form)
	if err != nil {
		return data, salary.Profile{}, err
	}

	data.Hint = h.hint(r, profile.Experience, profile.AnnualLPA)
	return data, profile, nil
}

// hint returns the estimated take-home label, or "" if it cannot be computed
func (h *PageHandler) hint(r *http.Request, exp salary.Experience, annualLPA float64) string {
	s, err := h.analysis.Suggest(r.Context(), annualLPA, exp)
	if err != nil {
		return ""
	}
	return exporter.TakeHomeHint(s.TakeHome)
}

// chartURL renders a chart as a data URL. Chart failures leave the page
// without that image.
func (h *PageHandler) chartURL(r *http.Request, p salary.Profile, kind services.ChartKind) template.URL {
	png, err := h.analysis.Chart(r.Context(), p, kind)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Chart unavailable",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

func (h *PageHandler) renderAnalyzerError(w http.ResponseWriter, r *http.Request, data analyzerPage, err error) {
	status, messages := h.describe(r, err)
	data.Errors = messages
	h.render(w, r, status, "analyzer", data)
}

func (h *PageHandler) renderPredictorError(w http.ResponseWriter, r *http.Request, data predictorPage, err error) {
	status, messages := h.describe(r, err)
	data.Errors = messages
	h.render(w, r, status, "predictor", data)
}

// describe turns err into a status and user-facing messages using the same
// rules as the JSON API
func (h *PageHandler) describe(r *http.Request, err error) (int, []string) {
	problem := h.errorHandler.ErrorToProblem(err, r)
	if problem.Status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Page request failed",
			slog.Int("status", problem.Status),
			slog.String("error", err.Error()))
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		if v, ok := apiErr.Details.(apierrors.ValidationErrors); ok {
			messages := make([]string, len(v.Errors))
			for i, fe := range v.Errors {
				messages[i] = fe.Message
			}
			return problem.Status, messages
		}
	}

	if problem.Detail != "" {
		return problem.Status, []string{problem.Detail}
	}
	return problem.Status, []string{problem.Title}
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates[name].ExecuteTemplate(&buf, "base", data); err != nil {
		h.logger.ErrorContext(r.Context(), "Template execution failed",
			slog.String("template", name),
			slog.String("error", err.Error()))
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
