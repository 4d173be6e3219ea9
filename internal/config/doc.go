// Package config loads SalaryLens configuration and the rate card.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml in the working directory or configs/
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables use the SALARYLENS_ prefix:
//
//	SALARYLENS_SERVER_PORT=8080
//	SALARYLENS_LOGGING_LEVEL=debug
//	SALARYLENS_REPORT_YEAR=2025
//	SALARYLENS_RATES_FILE=/etc/salarylens/rates.yaml
//
// # Rate Card
//
// Every constant the calculators use (income brackets, experience bonuses,
// fair bands, the hike schedule, predictor weights) lives in RatesConfig.
// DefaultRates returns the stock card; a YAML file named by RatesFile
// overrides every key it sets, zero values included.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests use Default, which needs no environment or files.
package config
