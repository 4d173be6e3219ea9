package services

import (
	"log/slog"

	"salarylens/internal/infrastructure"
)

// componentLogger returns logger tagged with the service component, falling
// back to the global logger
func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	return infrastructure.WithComponent(logger, component)
}
