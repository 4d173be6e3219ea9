package testutil

import (
	"salarylens/internal/predictor"
	"salarylens/internal/salary"
)

// SampleProfile is a 12 LPA, 3-5 yrs analyzer profile. With the default rate
// card it suggests a take-home of 85000 and is rated above market.
func SampleProfile() salary.Profile {
	return salary.Profile{
		Name:        "Asha Rao",
		Company:     "Acme Corp",
		Designation: "Senior Engineer",
		Experience:  salary.ThreeToFiveYears,
		Location:    salary.Bangalore,
		TaxRegime:   salary.NewTaxRegime,
		AnnualLPA:   12,
	}
}

// SampleJobProfile predicts 10.85 LPA with the default weights.
func SampleJobProfile() predictor.JobProfile {
	return predictor.JobProfile{
		Role:      predictor.SoftwareEngineer,
		Education: predictor.Masters,
		Years:     5,
		City:      predictor.Bangalore,
		Industry:  predictor.IT,
		Skills:    predictor.NewSkillSet(predictor.Python, predictor.SQL),
	}
}

// Float returns a pointer to v, for optional take-home overrides
func Float(v float64) *float64 {
	return &v
}
