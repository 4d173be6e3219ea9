package salary

import (
	"github.com/shopspring/decimal"
)

// moneyPlaces is the precision projection values are reported at.
const moneyPlaces = 2

// Projection is one row of the hike table.
type Projection struct {
	HikePercent int     `json:"hike_percent"`
	NewGross    float64 `json:"new_gross_monthly"`
	NewTakeHome float64 `json:"new_take_home"`
	Arrear      float64 `json:"arrear"`
	Combined    float64 `json:"combined_payout"`
}

// Project walks the hike schedule and returns one row per hike percentage,
// in increasing order. For hike h:
//
//	newGross    = gross * (1 + h/100)
//	newTakeHome = newGross * ratio
//	arrear      = newTakeHome - current
//	combined    = newTakeHome + arrear
//
// Each value is rounded to two decimals from the unrounded intermediate.
func (e *Estimator) Project(gross, ratio, current float64) []Projection {
	schedule := e.tables.Hikes
	rows := make([]Projection, 0, schedule.Steps())

	g := decimal.NewFromFloat(gross)
	r := decimal.NewFromFloat(ratio)
	c := decimal.NewFromFloat(current)
	hundred := decimal.NewFromInt(100)

	for h := schedule.StartPercent; h <= schedule.EndPercent; h += schedule.StepPercent {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(h)).Div(hundred))
		newGross := g.Mul(factor)
		newTakeHome := newGross.Mul(r)
		arrear := newTakeHome.Sub(c)
		combined := newTakeHome.Add(arrear)

		rows = append(rows, Projection{
			HikePercent: h,
			NewGross:    round2(newGross),
			NewTakeHome: round2(newTakeHome),
			Arrear:      round2(arrear),
			Combined:    round2(combined),
		})
	}
	return rows
}

func round2(d decimal.Decimal) float64 {
	return d.Round(moneyPlaces).InexactFloat64()
}
