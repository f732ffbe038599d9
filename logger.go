package affinity

import (
	"log/slog"

	"github.com/arloliu/affinity/internal/logging"
)

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
//
// Parameters:
//   - logger: slog logger (slog.Default() if nil)
//
// Returns:
//   - Logger: Logger writing through slog
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(logger)
}
