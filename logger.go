package cascade

import (
	"log/slog"
	"sync/atomic"
)

// logger is read on the frame thread and may be swapped from any goroutine.
var logger atomic.Pointer[slog.Logger]

var discardLogger = slog.New(slog.DiscardHandler)

func init() {
	logger.Store(discardLogger)
}

// SetLogger routes cascade's diagnostics to l. Cascade is silent until a
// logger is set; SetLogger(nil) silences it again. Debug records carry frame
// timing (with SetDebugMode) and skipped sprites, Info records finished
// resource batches, Warn records failed resources and frame drawing errors.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}
	logger.Store(l)
}

// Logger returns the logger set with SetLogger.
func Logger() *slog.Logger { return logger.Load() }
