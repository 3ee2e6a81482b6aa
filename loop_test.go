package cascade

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopRunsSchedulerFrames(t *testing.T) {
	w := NewWorld(nil)
	l := NewLoop(w, LoopConfig{Scheduler: SchedulerFunc(func(ctx context.Context, frame func()) error {
		for range 3 {
			frame()
		}
		return nil
	})})
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if w.Step() != 3 {
		t.Errorf("step = %d, want 3", w.Step())
	}
}

func TestLoopReportsFrameErrors(t *testing.T) {
	g := newRecordingGraphics(10, 10)
	w := NewWorld(g)
	e := newBoxElement(w, "#bad", 0, 0, 5, 5)
	e.SetDrawing("broken", &Drawing{Shape: Shape{Kind: ShapeKind(99)}})

	var got []error
	l := NewLoop(w, LoopConfig{
		Scheduler: SchedulerFunc(func(ctx context.Context, frame func()) error {
			frame()
			frame()
			return nil
		}),
		OnError: func(err error) { got = append(got, err) },
	})
	l.Run(context.Background())
	if len(got) != 2 {
		t.Fatalf("OnError called %d times, want 2", len(got))
	}
	if !errors.Is(got[0], ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", got[0])
	}
}

func TestLoopSchedulerError(t *testing.T) {
	boom := errors.New("host closed")
	l := NewLoop(NewWorld(nil), LoopConfig{Scheduler: SchedulerFunc(func(context.Context, func()) error {
		return boom
	})})
	if err := l.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestLoopCanceledIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewLoop(NewWorld(nil), LoopConfig{FrameInterval: time.Millisecond})
	if err := l.Run(ctx); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestTickerScheduler(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	ticks := 0
	err := TickerScheduler{Interval: 5 * time.Millisecond}.Run(ctx, func() { ticks++ })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
	if ticks == 0 {
		t.Error("ticker never fired")
	}
}

func TestLoopWithTicker(t *testing.T) {
	w := NewWorld(nil)
	ctx, cancel := context.WithCancel(context.Background())
	w.Bind(EventEnterFrame, func(Event) {
		if w.Step() >= 2 {
			cancel()
		}
	})
	l := NewLoop(w, LoopConfig{FrameInterval: time.Millisecond})
	if err := l.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if w.Step() < 3 {
		t.Errorf("step = %d, want at least 3", w.Step())
	}
}

func TestFramePausedSkipsWork(t *testing.T) {
	g := newRecordingGraphics(10, 10)
	w := NewWorld(g)
	frames := 0
	w.Bind(EventEnterFrame, func(Event) { frames++ })
	w.Pause()
	w.Frame()
	if frames != 0 || w.Step() != 0 || len(g.calls) != 0 {
		t.Error("paused frame should neither dispatch, draw nor count")
	}
	w.Play()
	w.Frame()
	if frames != 1 || w.Step() != 1 {
		t.Errorf("frames = %d, step = %d, want 1, 1", frames, w.Step())
	}
}

func TestFrameReadsSurfaceSize(t *testing.T) {
	g := newRecordingGraphics(10, 10)
	w := NewWorld(g)
	g.w, g.h = 40, 30
	w.Frame()
	if s := w.Screen(); s.Width != 40 || s.Height != 30 {
		t.Errorf("screen = %v, want 40x30", s)
	}
}
