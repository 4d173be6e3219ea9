package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salarylens/internal/errors"
	"salarylens/internal/middleware"
	"salarylens/internal/services"
	api "salarylens/pkg/contracts/api/v1"
)

// PredictorHandler handles the salary predictor and the form option catalog
type PredictorHandler struct {
	service      PredictorServiceInterface
	options      services.Options
	validator    *middleware.ValidationMiddleware
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewPredictorHandler creates a new predictor handler
func NewPredictorHandler(
	service PredictorServiceInterface,
	options services.Options,
	validator *middleware.ValidationMiddleware,
	errorHandler *apierrors.ErrorHandler,
	logger *slog.Logger,
) *PredictorHandler {
	return &PredictorHandler{
		service:      service,
		options:      options,
		validator:    validator,
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "predictor")),
	}
}

// RegisterRoutes registers the predictor and options routes
func (h *PredictorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/predict", h.Predict)
	r.Get("/options", h.Options)
}

// Predict handles POST /api/predict
func (h *PredictorHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req api.PredictRequest
	if err := h.validator.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	profile, err := toJobProfile(req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	est, err := h.service.Predict(r.Context(), profile)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, toPredictResponse(est))
}

// Options handles GET /api/options
func (h *PredictorHandler) Options(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.options)
}
