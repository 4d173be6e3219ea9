package salary

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"salarylens/internal/config"
)

// ratioPlaces bounds the precision of computed take-home ratios so that a
// take-home sitting exactly on a band edge compares as equal.
const ratioPlaces = 12

var (
	rupeesPerLakh = decimal.NewFromInt(config.RupeesPerLakh)
	monthsPerYear = decimal.NewFromInt(config.MonthsPerYear)
)

// Assessment is the result of comparing a take-home ratio to a fair band.
type Assessment struct {
	Ratio   float64 `json:"ratio"`
	Band    Band    `json:"band"`
	Verdict Verdict `json:"verdict"`
	Comment string  `json:"comment"`
}

// Estimator computes fair-pay suggestions, verdicts and hike projections
// from a set of rate tables. It holds no mutable state.
type Estimator struct {
	tables *Tables
}

// NewEstimator creates an estimator over the given tables
func NewEstimator(tables *Tables) *Estimator {
	return &Estimator{tables: tables}
}

// Tables returns the tables the estimator works from
func (e *Estimator) Tables() *Tables {
	return e.tables
}

// GrossMonthly converts annual compensation in LPA to a monthly figure.
func GrossMonthly(annualLPA float64) float64 {
	return grossMonthly(annualLPA).InexactFloat64()
}

func grossMonthly(annualLPA float64) decimal.Decimal {
	return decimal.NewFromFloat(annualLPA).Mul(rupeesPerLakh).Div(monthsPerYear)
}

// SuggestedRatio returns the bracket ratio plus the experience bonus.
func (e *Estimator) SuggestedRatio(annualLPA float64, exp Experience) float64 {
	return e.suggestedRatio(annualLPA, exp).InexactFloat64()
}

func (e *Estimator) suggestedRatio(annualLPA float64, exp Experience) decimal.Decimal {
	base := decimal.NewFromFloat(e.tables.BaseRatio(annualLPA))
	return base.Add(decimal.NewFromFloat(e.tables.Bonus[exp]))
}

// SuggestTakeHome returns the default monthly take-home for a compensation
// and experience band, rounded down to the rate card's rounding unit.
func (e *Estimator) SuggestTakeHome(annualLPA float64, exp Experience) (float64, error) {
	if err := checkCompensation(annualLPA); err != nil {
		return 0, err
	}
	if !exp.Valid() {
		return 0, fmt.Errorf("%w: experience %d", ErrUnknownLabel, int(exp))
	}

	unit := decimal.NewFromFloat(e.tables.RoundingUnit)
	raw := grossMonthly(annualLPA).Mul(e.suggestedRatio(annualLPA, exp))
	return raw.Div(unit).Floor().Mul(unit).InexactFloat64(), nil
}

// Assess compares takeHome/gross against the fair band for exp.
func (e *Estimator) Assess(takeHome, gross float64, exp Experience) (Assessment, error) {
	if !exp.Valid() {
		return Assessment{}, fmt.Errorf("%w: experience %d", ErrUnknownLabel, int(exp))
	}
	if gross <= 0 || math.IsNaN(gross) || math.IsInf(gross, 0) {
		return Assessment{}, fmt.Errorf("%w: gross monthly %v", ErrInvalidCompensation, gross)
	}
	if takeHome <= 0 || math.IsNaN(takeHome) || math.IsInf(takeHome, 0) {
		return Assessment{}, fmt.Errorf("%w: %v", ErrInvalidTakeHome, takeHome)
	}

	ratio := decimal.NewFromFloat(takeHome).Div(decimal.NewFromFloat(gross)).Round(ratioPlaces)
	band := e.tables.Band(exp)

	var verdict Verdict
	switch {
	case band.Contains(ratio):
		verdict = Fair
	case ratio.LessThan(decimal.NewFromFloat(band.Min)):
		verdict = Underpaid
	default:
		verdict = AboveMarket
	}

	return Assessment{
		Ratio:   ratio.InexactFloat64(),
		Band:    band,
		Verdict: verdict,
		Comment: verdict.Message(),
	}, nil
}

func checkCompensation(annualLPA float64) error {
	if math.IsNaN(annualLPA) || math.IsInf(annualLPA, 0) || annualLPA < config.MinAnnualLPA {
		return fmt.Errorf("%w: %v LPA is below the %.1f LPA minimum", ErrInvalidCompensation, annualLPA, config.MinAnnualLPA)
	}
	return nil
}
