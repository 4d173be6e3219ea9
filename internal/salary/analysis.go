package salary

import (
	"fmt"
	"math"

	"salarylens/internal/config"
)

// Profile is the request record for one analysis. TakeHome is the user's
// override; when nil the suggested default is used.
type Profile struct {
	Name        string     `json:"name"`
	Company     string     `json:"company"`
	Designation string     `json:"designation"`
	Experience  Experience `json:"experience"`
	Location    Location   `json:"location"`
	TaxRegime   TaxRegime  `json:"tax_regime"`
	AnnualLPA   float64    `json:"annual_lpa"`
	TakeHome    *float64   `json:"take_home,omitempty"`
}

// Analysis is everything derived from a Profile.
type Analysis struct {
	Profile           Profile      `json:"profile"`
	GrossMonthly      float64      `json:"gross_monthly"`
	SuggestedTakeHome float64      `json:"suggested_take_home"`
	TakeHome          float64      `json:"take_home"`
	Overridden        bool         `json:"overridden"`
	Assessment        Assessment   `json:"assessment"`
	Projections       []Projection `json:"projections"`
}

// Analyze runs the fair-pay estimate, the fairness assessment and the hike
// projection for p. It is deterministic: equal profiles give equal results.
func (e *Estimator) Analyze(p Profile) (*Analysis, error) {
	suggested, err := e.SuggestTakeHome(p.AnnualLPA, p.Experience)
	if err != nil {
		return nil, err
	}

	takeHome := suggested
	if p.TakeHome != nil {
		takeHome = *p.TakeHome
		if math.IsNaN(takeHome) || takeHome < config.MinTakeHome {
			return nil, fmt.Errorf("%w: %.2f is below the %d minimum", ErrInvalidTakeHome, takeHome, config.MinTakeHome)
		}
	}

	gross := grossMonthly(p.AnnualLPA).InexactFloat64()
	assessment, err := e.Assess(takeHome, gross, p.Experience)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Profile:           p,
		GrossMonthly:      gross,
		SuggestedTakeHome: suggested,
		TakeHome:          takeHome,
		Overridden:        p.TakeHome != nil,
		Assessment:        assessment,
		Projections:       e.Project(gross, takeHome/gross, takeHome),
	}, nil
}
