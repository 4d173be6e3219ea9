package config

import "time"

// Application constants - hardcoded values for the SalaryLens service
const (
	// Application Info
	AppName    = "SalaryLens"
	AppVersion = "1.0.0"

	// Environment
	EnvPrefix       = "SALARYLENS"
	ConfigFileName  = "config.yaml"
	RatesFileEnvKey = "SALARYLENS_RATES_FILE"

	// Compensation units
	RupeesPerLakh = 100000
	MonthsPerYear = 12
	MinAnnualLPA  = 1.0
	AnnualLPAStep = 0.1
	MinTakeHome   = 1000
	TakeHomeStep  = 100
	MaxAnnualLPA  = 10000 // sanity ceiling for request validation

	// Rate card defaults
	DefaultRoundingUnit     = 100
	DefaultHikeStartPercent = 5
	DefaultHikeStepPercent  = 5
	DefaultHikeEndPercent   = 200
	MaxExperienceYears      = 30

	// Report
	DefaultReportYear     = 2025
	UserInfoSheet         = "User Info"
	SalaryAnalysisSheet   = "Salary Analysis"
	ReportFileNamePattern = "%s_Salary_Report_%d.xlsx"
	XLSXContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	DefaultChartWidth     = 1024
	DefaultChartHeight    = 512

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Timeouts
	DefaultRequestTimeout = 15 * time.Second
	ReportTimeout         = 30 * time.Second

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
