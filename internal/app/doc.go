// Package app wires the salary analyzer together: configuration, logging,
// OpenTelemetry, the analysis and predictor services, the HTTP router and
// the server lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from the config file and SALARYLENS_* variables
//	2. Initialize the logger and OpenTelemetry providers
//	3. Build the rate tables, the predictor weights and the exporter
//	4. Create the services and the HTTP handlers
//	5. Assemble the middleware chain and the server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// Server.ShutdownTimeout, stops the system metrics collector and flushes the
// telemetry providers.
package app
