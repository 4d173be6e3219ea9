package api

import "time"

// SummaryLine is one labelled value of the analysis summary
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BandResponse is the fair take-home ratio range of an experience band
type BandResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AssessmentResponse is the fairness verdict
type AssessmentResponse struct {
	Ratio   float64      `json:"ratio"`
	Band    BandResponse `json:"band"`
	Verdict string       `json:"verdict"`
	Comment string       `json:"comment"`
}

// ProjectionRow is one row of the hike projection table
type ProjectionRow struct {
	HikePercent    int     `json:"hike_percent"`
	NewGross       float64 `json:"new_gross_monthly"`
	NewTakeHome    float64 `json:"new_take_home"`
	Arrear         float64 `json:"arrear"`
	CombinedPayout float64 `json:"combined_payout"`
}

// AnalysisResponse is returned by POST /api/analysis. When Suppressed is
// true the name was empty and every other field except AnalysisID is empty.
type AnalysisResponse struct {
	AnalysisID        string              `json:"analysis_id"`
	Suppressed        bool                `json:"suppressed"`
	Greeting          string              `json:"greeting,omitempty"`
	Summary           []SummaryLine       `json:"summary,omitempty"`
	GrossMonthly      float64             `json:"gross_monthly,omitempty"`
	SuggestedTakeHome float64             `json:"suggested_take_home,omitempty"`
	TakeHome          float64             `json:"take_home,omitempty"`
	Overridden        bool                `json:"overridden"`
	Assessment        *AssessmentResponse `json:"assessment,omitempty"`
	Projections       []ProjectionRow     `json:"projections,omitempty"`
	GeneratedAt       time.Time           `json:"generated_at"`
}

// SuggestionResponse is returned by GET /api/analysis/suggest
type SuggestionResponse struct {
	AnnualLPA      float64 `json:"annual_lpa"`
	Experience     string  `json:"experience"`
	GrossMonthly   float64 `json:"gross_monthly"`
	SuggestedRatio float64 `json:"suggested_ratio"`
	TakeHome       float64 `json:"take_home"`
	Hint           string  `json:"hint"`
}

// PredictionBreakdown lists each additive term of a prediction, in LPA
type PredictionBreakdown struct {
	Base       float64 `json:"base"`
	Role       float64 `json:"role"`
	Education  float64 `json:"education"`
	Location   float64 `json:"location"`
	Industry   float64 `json:"industry"`
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
}

// PredictResponse is returned by POST /api/predict
type PredictResponse struct {
	AnnualLPA float64             `json:"annual_lpa"`
	Summary   string              `json:"summary"`
	Breakdown PredictionBreakdown `json:"breakdown"`
}
