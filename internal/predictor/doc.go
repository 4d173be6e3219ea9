// Package predictor estimates annual compensation from a job profile by
// summing fixed weights for role, education, location, industry, years of
// experience and the number of key skills.
//
// The weights come from the predictor section of the rate card
// (config.PredictorRates). The result is a rough indication, not a fitted
// model.
package predictor
