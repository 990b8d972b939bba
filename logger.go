package feather2d

import (
	"log/slog"

	"github.com/akmonengine/feather2d/internal/logger"
)

// SetLogger configures the logger for feather2d and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: GJK or EPA hitting their iteration cap, degenerate simplexes,
//     pairs dropped from the narrow phase
//
// Example:
//
//	feather2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the active logger
func Logger() *slog.Logger {
	return logger.Get()
}
