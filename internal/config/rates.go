package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// RatesConfig is the rate card: every constant the fair-pay estimator,
// the hike projection and the salary predictor work from.
type RatesConfig struct {
	FairPay   FairPayRates   `yaml:"fair_pay"`
	Hikes     HikeSchedule   `yaml:"hikes"`
	Predictor PredictorRates `yaml:"predictor"`
}

// IncomeBracket maps annual compensation up to and including UpToLPA to a
// base retention ratio.
type IncomeBracket struct {
	UpToLPA float64 `yaml:"up_to_lpa"`
	Ratio   float64 `yaml:"ratio"`
}

// FairBand is an inclusive take-home ratio band.
type FairBand struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// FairPayRates holds the suggestion and fairness tables, keyed by the
// experience band labels ("Fresher", "1-2 yrs", ...).
type FairPayRates struct {
	IncomeBrackets  []IncomeBracket     `yaml:"income_brackets"`
	TopRatio        float64             `yaml:"top_ratio"`
	ExperienceBonus map[string]float64  `yaml:"experience_bonus"`
	FairBands       map[string]FairBand `yaml:"fair_bands"`
	RoundingUnit    float64             `yaml:"rounding_unit"`
}

// HikeSchedule describes the hike percentages a projection walks through.
type HikeSchedule struct {
	StartPercent int `yaml:"start_percent"`
	StepPercent  int `yaml:"step_percent"`
	EndPercent   int `yaml:"end_percent"`
}

// Steps returns the number of rows the schedule produces.
func (h HikeSchedule) Steps() int {
	if h.StepPercent <= 0 || h.EndPercent < h.StartPercent {
		return 0
	}
	return (h.EndPercent-h.StartPercent)/h.StepPercent + 1
}

// PredictorRates holds the flat-rate predictor weights keyed by label.
type PredictorRates struct {
	BaseLPA    float64            `yaml:"base_lpa"`
	Roles      map[string]float64 `yaml:"roles"`
	Education  map[string]float64 `yaml:"education"`
	Locations  map[string]float64 `yaml:"locations"`
	Industries map[string]float64 `yaml:"industries"`
	PerYear    float64            `yaml:"per_year"`
	PerSkill   float64            `yaml:"per_skill"`
	MaxYears   int                `yaml:"max_years"`
}

// DefaultRates returns the stock rate card.
func DefaultRates() RatesConfig {
	return RatesConfig{
		FairPay: FairPayRates{
			IncomeBrackets: []IncomeBracket{
				{UpToLPA: 6, Ratio: 0.85},
				{UpToLPA: 12, Ratio: 0.80},
				{UpToLPA: 20, Ratio: 0.75},
			},
			TopRatio: 0.70,
			ExperienceBonus: map[string]float64{
				"Fresher":   0,
				"1-2 yrs":   0.02,
				"3-5 yrs":   0.05,
				"6-10 yrs":  0.07,
				"10-15 yrs": 0.10,
				"15+ yrs":   0.12,
			},
			FairBands: map[string]FairBand{
				"Fresher":   {Min: 0.50, Max: 0.55},
				"1-2 yrs":   {Min: 0.50, Max: 0.55},
				"3-5 yrs":   {Min: 0.55, Max: 0.60},
				"6-10 yrs":  {Min: 0.60, Max: 0.65},
				"10-15 yrs": {Min: 0.65, Max: 0.70},
				"15+ yrs":   {Min: 0.70, Max: 0.75},
			},
			RoundingUnit: DefaultRoundingUnit,
		},
		Hikes: HikeSchedule{
			StartPercent: DefaultHikeStartPercent,
			StepPercent:  DefaultHikeStepPercent,
			EndPercent:   DefaultHikeEndPercent,
		},
		Predictor: PredictorRates{
			BaseLPA: 4,
			Roles: map[string]float64{
				"Software Engineer": 2.0,
				"Data Analyst":      1.8,
				"Project Manager":   3.0,
				"DevOps":            2.5,
				"HR":                1.5,
				"Finance":           1.6,
			},
			Education: map[string]float64{
				"Bachelor's": 0,
				"Master's":   1,
				"PhD":        2,
			},
			Locations: map[string]float64{
				"Bangalore": 1,
				"Hyderabad": 0.8,
				"Mumbai":    0.6,
				"Delhi":     0.5,
				"Chennai":   0.7,
				"Other":     0.3,
			},
			Industries: map[string]float64{
				"IT":            1.0,
				"Finance":       0.8,
				"Healthcare":    0.6,
				"Manufacturing": 0.5,
				"Other":         0.3,
			},
			PerYear:  0.25,
			PerSkill: 0.3,
			MaxYears: MaxExperienceYears,
		},
	}
}

// LoadRates reads a YAML rate card. The file is decoded over DefaultRates,
// so keys it omits keep their default values and keys it sets (zero
// included) replace them. Income brackets are replaced as a whole list;
// map sections are merged key by key.
func LoadRates(path string) (RatesConfig, error) {
	rates := DefaultRates()
	if path == "" {
		return rates, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rates, fmt.Errorf("failed to read rates file: %w", err)
	}

	if err := yaml.Unmarshal(data, &rates); err != nil {
		return DefaultRates(), fmt.Errorf("failed to parse rates file %s: %w", path, err)
	}

	if err := rates.Validate(); err != nil {
		return rates, fmt.Errorf("invalid rates file %s: %w", path, err)
	}
	return rates, nil
}

// Validate checks the rate card for values the calculators cannot work with.
func (r RatesConfig) Validate() error {
	fp := r.FairPay
	if len(fp.IncomeBrackets) == 0 {
		return fmt.Errorf("at least one income bracket is required")
	}
	if !sort.SliceIsSorted(fp.IncomeBrackets, func(i, j int) bool {
		return fp.IncomeBrackets[i].UpToLPA < fp.IncomeBrackets[j].UpToLPA
	}) {
		return fmt.Errorf("income brackets must be in ascending order")
	}
	for _, b := range fp.IncomeBrackets {
		if b.Ratio <= 0 || b.Ratio >= 1 {
			return fmt.Errorf("bracket ratio %.2f for %.1f LPA must be in (0,1)", b.Ratio, b.UpToLPA)
		}
	}
	if fp.TopRatio <= 0 || fp.TopRatio >= 1 {
		return fmt.Errorf("top ratio %.2f must be in (0,1)", fp.TopRatio)
	}
	var maxBonus float64
	for _, bonus := range fp.ExperienceBonus {
		if bonus < 0 {
			return fmt.Errorf("experience bonus %.2f must not be negative", bonus)
		}
		if bonus > maxBonus {
			maxBonus = bonus
		}
	}
	for _, b := range fp.IncomeBrackets {
		if b.Ratio+maxBonus >= 1 {
			return fmt.Errorf("bracket ratio %.2f plus experience bonus %.2f reaches gross pay", b.Ratio, maxBonus)
		}
	}
	for label, band := range fp.FairBands {
		if band.Min > band.Max {
			return fmt.Errorf("fair band for %q has min %.2f above max %.2f", label, band.Min, band.Max)
		}
	}
	if fp.RoundingUnit <= 0 {
		return fmt.Errorf("rounding unit must be positive")
	}

	if r.Hikes.Steps() == 0 {
		return fmt.Errorf("hike schedule %d..%d step %d produces no rows",
			r.Hikes.StartPercent, r.Hikes.EndPercent, r.Hikes.StepPercent)
	}

	if r.Predictor.MaxYears <= 0 {
		return fmt.Errorf("predictor max years must be positive")
	}
	return nil
}
