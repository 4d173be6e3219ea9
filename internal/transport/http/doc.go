// Package http implements the SalaryLens HTTP handlers. Handlers stay thin:
// they decode and validate the request, call a service through one of the
// interfaces in service_interfaces.go, and format the response.
//
// # Routes
//
//	POST /api/analysis                     fair-pay analysis as JSON
//	GET  /api/analysis/suggest             suggested take-home for a CTC and band
//	POST /api/analysis/report              XLSX report download
//	POST /api/analysis/charts/{kind}.png   take-home or payout chart
//	POST /api/predict                      flat-rate salary prediction
//	GET  /api/options                      every form label
//	GET  /api/health[/ready|/live]         probes
//	GET  /api/version                      build information
//
// The home, analyzer and predictor pages are rendered server side from the
// embedded templates. They call the same services as the JSON API.
//
// # Error Handling
//
// Errors are rendered as RFC 7807 problem documents by
// internal/errors.ErrorHandler. ErrorMappings binds the service sentinel
// errors to their status codes:
//
//	{
//	    "type": "/errors/unprocessable",
//	    "title": "Name Required",
//	    "status": 422,
//	    "detail": "a name is required to build a report",
//	    "instance": "/api/analysis/report"
//	}
//
// The pages reuse the same mapping for their status code and show the
// messages inline.
package http
