package services

import (
	"fmt"

	"salarylens/internal/config"
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
)

// AnalyzerOptions lists the analyzer form choices and input limits
type AnalyzerOptions struct {
	Experiences   []string `json:"experiences"`
	Locations     []string `json:"locations"`
	TaxRegimes    []string `json:"tax_regimes"`
	MinAnnualLPA  float64  `json:"min_annual_lpa"`
	AnnualLPAStep float64  `json:"annual_lpa_step"`
	MinTakeHome   float64  `json:"min_take_home"`
	TakeHomeStep  float64  `json:"take_home_step"`
}

// PredictorOptions lists the predictor form choices and input limits
type PredictorOptions struct {
	Roles      []string `json:"roles"`
	Education  []string `json:"education"`
	Locations  []string `json:"locations"`
	Industries []string `json:"industries"`
	Skills     []string `json:"skills"`
	MaxYears   int      `json:"max_years"`
}

// Options is every enumeration label the forms need
type Options struct {
	Analyzer  AnalyzerOptions  `json:"analyzer"`
	Predictor PredictorOptions `json:"predictor"`
}

// FormOptions builds the option catalog; maxYears comes from the rate card
func FormOptions(maxYears int) Options {
	return Options{
		Analyzer: AnalyzerOptions{
			Experiences:   labels(salary.Experiences()),
			Locations:     labels(salary.Locations()),
			TaxRegimes:    labels(salary.TaxRegimes()),
			MinAnnualLPA:  config.MinAnnualLPA,
			AnnualLPAStep: config.AnnualLPAStep,
			MinTakeHome:   config.MinTakeHome,
			TakeHomeStep:  config.TakeHomeStep,
		},
		Predictor: PredictorOptions{
			Roles:      labels(predictor.Roles()),
			Education:  labels(predictor.EducationLevels()),
			Locations:  labels(predictor.Cities()),
			Industries: labels(predictor.Industries()),
			Skills:     labels(predictor.Skills()),
			MaxYears:   maxYears,
		},
	}
}

func labels[T any](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
