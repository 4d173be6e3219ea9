package salary

import "errors"

var (
	// ErrUnknownLabel is returned when a label is not part of an enumeration
	ErrUnknownLabel = errors.New("unknown label")

	// ErrInvalidCompensation is returned for annual compensation below the minimum
	ErrInvalidCompensation = errors.New("invalid annual compensation")

	// ErrInvalidTakeHome is returned for a take-home below the minimum
	ErrInvalidTakeHome = errors.New("invalid monthly take-home")

	// ErrIncompleteRates is returned when the rate card misses an entry
	ErrIncompleteRates = errors.New("incomplete rate card")
)
