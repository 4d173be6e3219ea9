// Package api contains the request and response contracts of the SalaryLens
// HTTP API. Version v1 is the current API version.
package api

// Analyzer API Requests

// AnalysisRequest is the analyzer form. Enumerated fields carry the labels
// listed by GET /api/options. An empty take_home means "use the
// suggested value".
type AnalysisRequest struct {
	Name        string   `json:"name" validate:"max=100"`
	Company     string   `json:"company" validate:"max=100"`
	Designation string   `json:"designation" validate:"max=100"`
	Experience  string   `json:"experience" validate:"required,experience"`
	Location    string   `json:"location" validate:"required,location"`
	TaxRegime   string   `json:"tax_regime" validate:"required,tax_regime"`
	AnnualLPA   float64  `json:"annual_lpa" validate:"gte=1,lte=10000"`
	TakeHome    *float64 `json:"take_home,omitempty" validate:"omitempty,gte=1000"`
}

// Predictor API Requests

// PredictRequest is the predictor form. Duplicate skills are rejected.
// The upper bound on Years comes from the rate card, so only the lower
// bound is checked here.
type PredictRequest struct {
	Role      string   `json:"role" validate:"required,role"`
	Education string   `json:"education" validate:"required,education"`
	Years     int      `json:"years" validate:"gte=0"`
	Location  string   `json:"location" validate:"required,predictor_location"`
	Industry  string   `json:"industry" validate:"required,industry"`
	Skills    []string `json:"skills" validate:"unique,dive,skill"`
}
