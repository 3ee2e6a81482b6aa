package cascade

import (
	"context"
	"errors"
	"time"
)

// DefaultFrameInterval is the tick of the fixed-interval scheduler.
const DefaultFrameInterval = time.Second / 60

// Frame runs one tick of the world:
//
//  1. deliver finished resource batches (even while paused)
//  2. stop here if paused
//  3. advance the input script and apply one queued synthetic input
//  4. read the screen size from the surface
//  5. trigger "enterframe"
//  6. clear the surface
//  7. draw every element, highest z-order first
//  8. hand queued snapshot requests to the snapshot handler
//  9. advance the frame counter
//
// The returned error joins the drawing errors of every element; one bad
// element never keeps the others from drawing.
func (w *World) Frame() error {
	w.resources.flush()
	if !w.running {
		return nil
	}
	var stats frameStats
	t0 := time.Now()

	if w.script != nil {
		w.script.step(w)
	}
	w.processInjectedInput()

	g := w.graphics
	if g != nil {
		w.screen.Width, w.screen.Height = g.Size()
	}

	t1 := time.Now()
	w.Trigger(EventEnterFrame)
	stats.enterFrame = time.Since(t1)

	var errs []error
	if g != nil {
		t2 := time.Now()
		g.ClearRect(0, 0, w.screen.Width, w.screen.Height)
		stats.clear = time.Since(t2)

		t3 := time.Now()
		for _, e := range Sort(w.all(), "zIndex", true) {
			if err := e.Draw(g); err != nil {
				errs = append(errs, err)
			}
			stats.elements++
		}
		stats.draw = time.Since(t3)
	}
	w.flushSnapshots()
	w.step++

	stats.total = time.Since(t0)
	w.debugLog(stats)
	return errors.Join(errs...)
}

// Scheduler calls frame once per tick until ctx is done or the host stops.
type Scheduler interface {
	Run(ctx context.Context, frame func()) error
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(ctx context.Context, frame func()) error

// Run calls f.
func (f SchedulerFunc) Run(ctx context.Context, frame func()) error { return f(ctx, frame) }

// TickerScheduler is the fixed-interval fallback scheduler.
type TickerScheduler struct {
	Interval time.Duration // DefaultFrameInterval when zero
}

// Run ticks until ctx is done and returns ctx.Err().
func (s TickerScheduler) Run(ctx context.Context, frame func()) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			frame()
		}
	}
}

// LoopConfig configures a Loop.
type LoopConfig struct {
	// Scheduler drives the ticks. A TickerScheduler with FrameInterval is
	// used when nil.
	Scheduler     Scheduler
	FrameInterval time.Duration
	// OnError receives the error of every frame that reported one. Errors
	// are logged at Warn level when nil.
	OnError func(err error)
}

// Loop drives a world's frames from a scheduler.
type Loop struct {
	world     *World
	scheduler Scheduler
	onError   func(error)
}

// NewLoop creates a loop for w.
func NewLoop(w *World, cfg LoopConfig) *Loop {
	s := cfg.Scheduler
	if s == nil {
		s = TickerScheduler{Interval: cfg.FrameInterval}
	}
	return &Loop{world: w, scheduler: s, onError: cfg.OnError}
}

// Run blocks, running one Frame per scheduler tick, until ctx is done or the
// scheduler returns. A canceled context is not reported as an error.
func (l *Loop) Run(ctx context.Context) error {
	err := l.scheduler.Run(ctx, l.tick)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (l *Loop) tick() {
	err := l.world.Frame()
	if err == nil {
		return
	}
	if l.onError != nil {
		l.onError(err)
		return
	}
	Logger().Warn("frame drawing failed", "step", l.world.step, "err", err)
}
