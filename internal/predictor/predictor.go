package predictor

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JobProfile is the predictor's input.
type JobProfile struct {
	Role      Role      `json:"role"`
	Education Education `json:"education"`
	Years     int       `json:"years"`
	City      City      `json:"location"`
	Industry  Industry  `json:"industry"`
	Skills    SkillSet  `json:"-"`
}

// Breakdown lists each term of the prediction.
type Breakdown struct {
	Base       float64 `json:"base"`
	Role       float64 `json:"role"`
	Education  float64 `json:"education"`
	Location   float64 `json:"location"`
	Industry   float64 `json:"industry"`
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
}

// Estimate is the predicted annual compensation in LPA.
type Estimate struct {
	AnnualLPA float64   `json:"annual_lpa"`
	Breakdown Breakdown `json:"breakdown"`
}

// Predictor sums constant weights. Nothing is fitted or learned.
type Predictor struct {
	weights *Weights
}

// New creates a predictor over the given weights
func New(weights *Weights) *Predictor {
	return &Predictor{weights: weights}
}

// Weights returns the weight tables in use
func (p *Predictor) Weights() *Weights {
	return p.weights
}

// Predict returns base + role + education + location + industry +
// years*PerYear + len(skills)*PerSkill.
func (p *Predictor) Predict(profile JobProfile) (Estimate, error) {
	w := p.weights

	role, ok := w.Roles[profile.Role]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: role %q", ErrUnknownLabel, profile.Role)
	}
	edu, ok := w.Education[profile.Education]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: education %q", ErrUnknownLabel, profile.Education)
	}
	city, ok := w.Cities[profile.City]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: location %q", ErrUnknownLabel, profile.City)
	}
	industry, ok := w.Industries[profile.Industry]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: industry %q", ErrUnknownLabel, profile.Industry)
	}
	if profile.Years < 0 || profile.Years > w.MaxYears {
		return Estimate{}, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidYears, profile.Years, w.MaxYears)
	}
	for s := range profile.Skills {
		if _, err := ParseSkill(string(s)); err != nil {
			return Estimate{}, err
		}
	}

	b := Breakdown{
		Base:       w.BaseLPA,
		Role:       role,
		Education:  edu,
		Location:   city,
		Industry:   industry,
		Experience: mul(w.PerYear, profile.Years),
		Skills:     mul(w.PerSkill, profile.Skills.Len()),
	}

	total := decimal.Zero
	for _, term := range []float64{b.Base, b.Role, b.Education, b.Location, b.Industry, b.Experience, b.Skills} {
		total = total.Add(decimal.NewFromFloat(term))
	}

	return Estimate{AnnualLPA: total.InexactFloat64(), Breakdown: b}, nil
}

// Summary formats an estimate the way the predictor page shows it.
func (e Estimate) Summary() string {
	return fmt.Sprintf("Estimated Annual Salary: ₹%.2f LPA", e.AnnualLPA)
}

func mul(rate float64, n int) float64 {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(int64(n))).InexactFloat64()
}
