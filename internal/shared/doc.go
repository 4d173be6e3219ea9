// Package shared holds helpers used by more than one package.
//
// testutil provides the sample analyzer and predictor profiles the tests
// share, and a buffered slog handler for asserting on log output.
package shared
