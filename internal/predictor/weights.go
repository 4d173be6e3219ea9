package predictor

import (
	"errors"
	"fmt"

	"salarylens/internal/config"
)

var (
	// ErrUnknownLabel is returned for a role, education, city, industry or
	// skill the weight tables have no entry for
	ErrUnknownLabel = errors.New("unknown label")

	// ErrInvalidYears is returned for years of experience outside 0..MaxYears
	ErrInvalidYears = errors.New("invalid years of experience")
)

// Weights holds the enum-keyed predictor tables.
type Weights struct {
	BaseLPA    float64
	Roles      map[Role]float64
	Education  map[Education]float64
	Cities     map[City]float64
	Industries map[Industry]float64
	PerYear    float64
	PerSkill   float64
	MaxYears   int
}

// NewWeights converts the label-keyed predictor rates into enum-keyed
// tables. Every enumerated value must have a weight.
func NewWeights(rates config.PredictorRates) (*Weights, error) {
	w := &Weights{
		BaseLPA:    rates.BaseLPA,
		Roles:      make(map[Role]float64, len(Roles())),
		Education:  make(map[Education]float64, len(EducationLevels())),
		Cities:     make(map[City]float64, len(Cities())),
		Industries: make(map[Industry]float64, len(Industries())),
		PerYear:    rates.PerYear,
		PerSkill:   rates.PerSkill,
		MaxYears:   rates.MaxYears,
	}

	for _, r := range Roles() {
		v, ok := rates.Roles[string(r)]
		if !ok {
			return nil, fmt.Errorf("%w: no weight for role %q", ErrUnknownLabel, r)
		}
		w.Roles[r] = v
	}
	for _, e := range EducationLevels() {
		v, ok := rates.Education[string(e)]
		if !ok {
			return nil, fmt.Errorf("%w: no weight for education %q", ErrUnknownLabel, e)
		}
		w.Education[e] = v
	}
	for _, c := range Cities() {
		v, ok := rates.Locations[string(c)]
		if !ok {
			return nil, fmt.Errorf("%w: no weight for location %q", ErrUnknownLabel, c)
		}
		w.Cities[c] = v
	}
	for _, i := range Industries() {
		v, ok := rates.Industries[string(i)]
		if !ok {
			return nil, fmt.Errorf("%w: no weight for industry %q", ErrUnknownLabel, i)
		}
		w.Industries[i] = v
	}
	return w, nil
}

// DefaultWeights returns the weights from config.DefaultRates
func DefaultWeights() *Weights {
	w, err := NewWeights(config.DefaultRates().Predictor)
	if err != nil {
		panic(fmt.Sprintf("default predictor weights are incomplete: %v", err))
	}
	return w
}
