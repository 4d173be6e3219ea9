package salary

import "fmt"

// Experience is the experience band a user selects.
type Experience int

const (
	Fresher Experience = iota
	OneToTwoYears
	ThreeToFiveYears
	SixToTenYears
	TenToFifteenYears
	FifteenPlusYears
)

var experienceLabels = [...]string{
	Fresher:           "Fresher",
	OneToTwoYears:     "1-2 yrs",
	ThreeToFiveYears:  "3-5 yrs",
	SixToTenYears:     "6-10 yrs",
	TenToFifteenYears: "10-15 yrs",
	FifteenPlusYears:  "15+ yrs",
}

// String returns the label shown to users
func (e Experience) String() string {
	if e.Valid() {
		return experienceLabels[e]
	}
	return "unknown"
}

// Valid reports whether e is one of the defined bands
func (e Experience) Valid() bool {
	return e >= Fresher && e <= FifteenPlusYears
}

// Experiences returns every band in ascending order
func Experiences() []Experience {
	return []Experience{Fresher, OneToTwoYears, ThreeToFiveYears, SixToTenYears, TenToFifteenYears, FifteenPlusYears}
}

// ParseExperience converts a band label such as "3-5 yrs" to an Experience.
func ParseExperience(label string) (Experience, error) {
	for _, e := range Experiences() {
		if experienceLabels[e] == label {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: experience %q", ErrUnknownLabel, label)
}

// MarshalText encodes the band as its label
func (e Experience) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: experience %d", ErrUnknownLabel, int(e))
	}
	return []byte(e.String()), nil
}

// UnmarshalText decodes a band label
func (e *Experience) UnmarshalText(text []byte) error {
	parsed, err := ParseExperience(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Location is the user's work location. It is carried through to the
// summary and report but does not change any calculation.
type Location string

const (
	Bangalore Location = "Bangalore"
	Hyderabad Location = "Hyderabad"
	Mumbai    Location = "Mumbai"
	Delhi     Location = "Delhi"
	Kolkata   Location = "Kolkata"
	Chennai   Location = "Chennai"
	Pune      Location = "Pune"
	Others    Location = "Others"
)

// Locations returns every work location in display order
func Locations() []Location {
	return []Location{Bangalore, Hyderabad, Mumbai, Delhi, Kolkata, Chennai, Pune, Others}
}

// ParseLocation validates a location label
func ParseLocation(label string) (Location, error) {
	for _, l := range Locations() {
		if string(l) == label {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: location %q", ErrUnknownLabel, label)
}

// TaxRegime is display-only.
type TaxRegime string

const (
	NewTaxRegime      TaxRegime = "New Tax Regime"
	OldTaxRegime      TaxRegime = "Old Tax Regime"
	NewRegimeBudget26 TaxRegime = "New Regime (post Budget 2025-26)"
)

// TaxRegimes returns every tax regime in display order
func TaxRegimes() []TaxRegime {
	return []TaxRegime{NewTaxRegime, OldTaxRegime, NewRegimeBudget26}
}

// ParseTaxRegime validates a tax regime label
func ParseTaxRegime(label string) (TaxRegime, error) {
	for _, r := range TaxRegimes() {
		if string(r) == label {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: tax regime %q", ErrUnknownLabel, label)
}

// Verdict is the outcome of a fairness assessment.
type Verdict int

const (
	Underpaid Verdict = iota
	Fair
	AboveMarket
)

// String returns the machine-readable verdict
func (v Verdict) String() string {
	switch v {
	case Underpaid:
		return "underpaid"
	case Fair:
		return "fair"
	case AboveMarket:
		return "above_market"
	default:
		return "unknown"
	}
}

// Message returns the user-facing comment for the verdict
func (v Verdict) Message() string {
	switch v {
	case Underpaid:
		return "You might be underpaid based on market standards."
	case Fair:
		return "You are fairly paid as per your experience level."
	case AboveMarket:
		return "You are earning above market expectations!"
	default:
		return ""
	}
}

// MarshalText lets verdicts appear as strings in JSON
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
