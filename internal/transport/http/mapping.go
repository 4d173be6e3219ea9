package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apierrors "salarylens/internal/errors"
	"salarylens/internal/exporter"
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
	"salarylens/internal/services"
	api "salarylens/pkg/contracts/api/v1"
)

// ErrorMappings binds the service sentinel errors to problem documents.
// Pass them to apierrors.NewErrorHandler.
func ErrorMappings() []apierrors.Mapping {
	return []apierrors.Mapping{
		{Target: services.ErrEmptyName, Status: http.StatusUnprocessableEntity, Type: apierrors.TypeUnprocessable, Title: "Name Required", Expose: true},
		{Target: services.ErrInvalidInput, Status: http.StatusBadRequest, Type: apierrors.TypeValidation, Title: "Invalid Input", Expose: true},
		{Target: services.ErrUnknownChart, Status: http.StatusBadRequest, Type: apierrors.TypeValidation, Title: "Unknown Chart", Expose: true},
		{Target: services.ErrOperationTimeout, Status: http.StatusGatewayTimeout, Type: apierrors.TypeTimeout, Title: "Request Timeout"},
		{Target: services.ErrRenderFailed, Status: http.StatusInternalServerError, Type: apierrors.TypeRenderFailed, Title: "Report Rendering Failed"},
		{Target: services.ErrServiceUnavailable, Status: http.StatusServiceUnavailable, Type: apierrors.TypeServiceDown, Title: "Service Unavailable"},
	}
}

func toProfile(req api.AnalysisRequest) (salary.Profile, error) {
	exp, err := salary.ParseExperience(req.Experience)
	if err != nil {
		return salary.Profile{}, fmt.Errorf("%w: %w", services.ErrInvalidInput, err)
	}
	loc, err := salary.ParseLocation(req.Location)
	if err != nil {
		return salary.Profile{}, fmt.Errorf("%w: %w", services.ErrInvalidInput, err)
	}
	regime, err := salary.ParseTaxRegime(req.TaxRegime)
	if err != nil {
		return salary.Profile{}, fmt.Errorf("%w: %w", services.ErrInvalidInput, err)
	}

	return salary.Profile{
		Name:        req.Name,
		Company:     req.Company,
		Designation: req.Designation,
		Experience:  exp,
		Location:    loc,
		TaxRegime:   regime,
		AnnualLPA:   req.AnnualLPA,
		TakeHome:    req.TakeHome,
	}, nil
}

func toJobProfile(req api.PredictRequest) (predictor.JobProfile, error) {
	skills := make([]predictor.Skill, 0, len(req.Skills))
	for _, label := range req.Skills {
		s, err := predictor.ParseSkill(label)
		if err != nil {
			return predictor.JobProfile{}, fmt.Errorf("%w: %w", services.ErrInvalidInput, err)
		}
		skills = append(skills, s)
	}

	return predictor.JobProfile{
		Role:      predictor.Role(req.Role),
		Education: predictor.Education(req.Education),
		Years:     req.Years,
		City:      predictor.City(req.Location),
		Industry:  predictor.Industry(req.Industry),
		Skills:    predictor.NewSkillSet(skills...),
	}, nil
}

func toAnalysisResponse(res *services.AnalysisResult, now time.Time) api.AnalysisResponse {
	resp := api.AnalysisResponse{
		AnalysisID:  uuid.NewString(),
		Suppressed:  res.Suppressed,
		GeneratedAt: now.UTC(),
	}
	a := res.Analysis
	if res.Suppressed || a == nil {
		return resp
	}

	summary := exporter.NewSummary(a)
	resp.Greeting = summary.Greeting
	resp.Summary = make([]api.SummaryLine, len(summary.Lines))
	for i, l := range summary.Lines {
		resp.Summary[i] = api.SummaryLine{Label: l.Label, Value: l.Value}
	}

	resp.GrossMonthly = a.GrossMonthly
	resp.SuggestedTakeHome = a.SuggestedTakeHome
	resp.TakeHome = a.TakeHome
	resp.Overridden = a.Overridden
	resp.Assessment = &api.AssessmentResponse{
		Ratio:   a.Assessment.Ratio,
		Band:    api.BandResponse{Min: a.Assessment.Band.Min, Max: a.Assessment.Band.Max},
		Verdict: a.Assessment.Verdict.String(),
		Comment: a.Assessment.Comment,
	}
	resp.Projections = make([]api.ProjectionRow, len(a.Projections))
	for i, p := range a.Projections {
		resp.Projections[i] = api.ProjectionRow{
			HikePercent:    p.HikePercent,
			NewGross:       p.NewGross,
			NewTakeHome:    p.NewTakeHome,
			Arrear:         p.Arrear,
			CombinedPayout: p.Combined,
		}
	}
	return resp
}

func toSuggestionResponse(s *services.Suggestion) api.SuggestionResponse {
	return api.SuggestionResponse{
		AnnualLPA:      s.AnnualLPA,
		Experience:     s.Experience.String(),
		GrossMonthly:   s.GrossMonthly,
		SuggestedRatio: s.SuggestedRatio,
		TakeHome:       s.TakeHome,
		Hint:           exporter.TakeHomeHint(s.TakeHome),
	}
}

func toPredictResponse(e *predictor.Estimate) api.PredictResponse {
	b := e.Breakdown
	return api.PredictResponse{
		AnnualLPA: e.AnnualLPA,
		Summary:   e.Summary(),
		Breakdown: api.PredictionBreakdown{
			Base:       b.Base,
			Role:       b.Role,
			Education:  b.Education,
			Location:   b.Location,
			Industry:   b.Industry,
			Experience: b.Experience,
			Skills:     b.Skills,
		},
	}
}
