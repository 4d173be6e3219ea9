// Package salary implements the fair-pay estimator and the hike projection.
//
// # Components
//
//   - types.go: experience bands, locations, tax regimes and verdicts
//   - tables.go: enum-keyed rate tables built from config.RatesConfig
//   - estimator.go: gross monthly, suggested take-home and the fairness verdict
//   - projection.go: the hike table (5%..200% in 5% steps by default)
//   - analysis.go: the Profile request record and the combined Analysis
//
// # Suggested take-home
//
// The suggestion is the income bracket ratio plus the experience bonus,
// applied to gross monthly pay and rounded down to a multiple of the
// rounding unit (100 by default):
//
//	12 LPA, 3-5 yrs: (0.80 + 0.05) * 100000 = 85000
//
// # Fairness
//
// The take-home ratio is compared against an inclusive band for the
// experience level. Below the band is Underpaid, above is AboveMarket.
//
// # Usage
//
//	est := salary.NewEstimator(salary.DefaultTables())
//	analysis, err := est.Analyze(salary.Profile{
//	    Name:       "Asha Rao",
//	    Experience: salary.ThreeToFiveYears,
//	    AnnualLPA:  12,
//	})
//
// Money arithmetic goes through shopspring/decimal so that band edges and
// rounding boundaries behave exactly.
package salary
