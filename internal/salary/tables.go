package salary

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"salarylens/internal/config"
)

// Band is an inclusive range of acceptable take-home ratios.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether ratio lies within the band, edges included.
func (b Band) Contains(ratio decimal.Decimal) bool {
	return ratio.GreaterThanOrEqual(decimal.NewFromFloat(b.Min)) &&
		ratio.LessThanOrEqual(decimal.NewFromFloat(b.Max))
}

// Bracket maps compensation up to UpToLPA (inclusive) to a base ratio.
type Bracket struct {
	UpToLPA float64
	Ratio   float64
}

// Tables is the enum-keyed form of the fair-pay section of the rate card.
type Tables struct {
	Brackets     []Bracket
	TopRatio     float64
	Bonus        map[Experience]float64
	Bands        map[Experience]Band
	RoundingUnit float64
	Hikes        config.HikeSchedule
}

// NewTables converts the label-keyed rate card into enum-keyed tables.
// Every experience band must have both a bonus and a fair band.
func NewTables(rates config.RatesConfig) (*Tables, error) {
	fp := rates.FairPay
	t := &Tables{
		Brackets:     make([]Bracket, 0, len(fp.IncomeBrackets)),
		TopRatio:     fp.TopRatio,
		Bonus:        make(map[Experience]float64, len(experienceLabels)),
		Bands:        make(map[Experience]Band, len(experienceLabels)),
		RoundingUnit: fp.RoundingUnit,
		Hikes:        rates.Hikes,
	}

	for _, b := range fp.IncomeBrackets {
		t.Brackets = append(t.Brackets, Bracket{UpToLPA: b.UpToLPA, Ratio: b.Ratio})
	}
	sort.Slice(t.Brackets, func(i, j int) bool { return t.Brackets[i].UpToLPA < t.Brackets[j].UpToLPA })

	for _, e := range Experiences() {
		bonus, ok := fp.ExperienceBonus[e.String()]
		if !ok {
			return nil, fmt.Errorf("%w: no experience bonus for %q", ErrIncompleteRates, e)
		}
		band, ok := fp.FairBands[e.String()]
		if !ok {
			return nil, fmt.Errorf("%w: no fair band for %q", ErrIncompleteRates, e)
		}
		t.Bonus[e] = bonus
		t.Bands[e] = Band{Min: band.Min, Max: band.Max}
	}

	if t.RoundingUnit <= 0 {
		return nil, fmt.Errorf("%w: rounding unit must be positive", ErrIncompleteRates)
	}
	if t.Hikes.Steps() == 0 {
		return nil, fmt.Errorf("%w: empty hike schedule", ErrIncompleteRates)
	}
	return t, nil
}

// DefaultTables returns the tables built from config.DefaultRates.
func DefaultTables() *Tables {
	t, err := NewTables(config.DefaultRates())
	if err != nil {
		panic(fmt.Sprintf("default rate card is incomplete: %v", err))
	}
	return t
}

// BaseRatio returns the income bracket ratio for an annual compensation.
func (t *Tables) BaseRatio(annualLPA float64) float64 {
	for _, b := range t.Brackets {
		if annualLPA <= b.UpToLPA {
			return b.Ratio
		}
	}
	return t.TopRatio
}

// Band returns the fair band for an experience level.
func (t *Tables) Band(e Experience) Band {
	return t.Bands[e]
}
