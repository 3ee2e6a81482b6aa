package cascade

import "time"

// frameStats holds per-frame timing. Only reported when the world is in
// debug mode.
type frameStats struct {
	enterFrame time.Duration
	clear      time.Duration
	draw       time.Duration
	total      time.Duration
	elements   int
}

// debugLog reports frame timing through the package logger.
func (w *World) debugLog(stats frameStats) {
	if !w.debug {
		return
	}
	Logger().Debug("frame",
		"step", w.step,
		"enterframe", stats.enterFrame,
		"clear", stats.clear,
		"draw", stats.draw,
		"total", stats.total,
		"elements", stats.elements,
	)
	if n := w.Handlers(EventEnterFrame); n > debugMaxFrameHandlers {
		Logger().Warn("many enterframe handlers", "count", n, "threshold", debugMaxFrameHandlers)
	}
}

// debugMaxFrameHandlers is the enterframe handler count above which debug
// mode warns about watchers that are never unbound.
const debugMaxFrameHandlers = 1000
