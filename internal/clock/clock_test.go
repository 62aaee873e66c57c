package clock

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type recorder struct {
	calls  int
	deltas []time.Duration
}

func (r *recorder) update(_ time.Time, delta time.Duration) {
	r.calls++
	r.deltas = append(r.deltas, delta)
}

func TestFirstFrameOnlyRecordsTimestamp(t *testing.T) {
	r := &recorder{}
	c := New(r.update)
	c.SetRunning(true)

	c.Frame(t0)
	if r.calls != 0 {
		t.Fatalf("first frame ran update")
	}
	c.Frame(t0.Add(16 * time.Millisecond))
	if r.calls != 1 || r.deltas[0] != 16*time.Millisecond {
		t.Fatalf("calls=%d deltas=%v", r.calls, r.deltas)
	}
}

func TestUpdateRunsOnlyWhileRunning(t *testing.T) {
	r := &recorder{}
	c := New(r.update)

	c.Frame(t0)
	c.Frame(t0.Add(10 * time.Millisecond))
	if r.calls != 0 {
		t.Fatalf("update ran while not running")
	}

	c.SetRunning(true)
	c.Frame(t0.Add(20 * time.Millisecond))
	if r.calls != 1 || r.deltas[0] != 10*time.Millisecond {
		t.Fatalf("calls=%d deltas=%v", r.calls, r.deltas)
	}
}

func TestRateCapSkipsEarlyFrames(t *testing.T) {
	r := &recorder{}
	c := New(r.update, WithTargetFPS(50)) // 20ms
	c.SetRunning(true)

	c.Frame(t0)
	c.Frame(t0.Add(10 * time.Millisecond))
	if r.calls != 0 {
		t.Fatalf("frame inside interval accepted")
	}
	c.Frame(t0.Add(25 * time.Millisecond))
	if r.calls != 1 {
		t.Fatalf("calls = %d, want 1", r.calls)
	}
	// Delta spans the skipped frame.
	if r.deltas[0] != 25*time.Millisecond {
		t.Fatalf("delta = %v", r.deltas[0])
	}
	// Re-based to the 20ms grid, so 40ms is already accepted.
	c.Frame(t0.Add(40 * time.Millisecond))
	if r.calls != 2 {
		t.Fatalf("calls = %d, want 2 after re-basing", r.calls)
	}
}

func TestPanicIsRecoveredAndLoopContinues(t *testing.T) {
	calls := 0
	c := New(func(time.Time, time.Duration) {
		calls++
		if calls == 1 {
			panic("boom")
		}
	}, WithLogger(log.New(io.Discard)))
	c.SetRunning(true)

	c.Frame(t0)
	c.Frame(t0.Add(time.Millisecond))
	c.Frame(t0.Add(2 * time.Millisecond))
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
	if c.Panics() != 1 {
		t.Fatalf("panics = %d", c.Panics())
	}
}

func TestPauseResumeAndReset(t *testing.T) {
	r := &recorder{}
	c := New(r.update)
	c.SetRunning(true)
	c.Frame(t0)

	c.Pause()
	c.Frame(t0.Add(time.Millisecond))
	if r.calls != 0 || c.Scheduled() {
		t.Fatalf("paused clock handled a frame")
	}

	c.Resume()
	c.Reset()
	c.Frame(t0.Add(time.Second))
	if r.calls != 0 {
		t.Fatalf("first frame after reset ran update")
	}
	c.Frame(t0.Add(time.Second + 5*time.Millisecond))
	if r.calls != 1 || r.deltas[0] != 5*time.Millisecond {
		t.Fatalf("calls=%d deltas=%v", r.calls, r.deltas)
	}
}

func TestTimersFireInDeadlineOrder(t *testing.T) {
	var ts Timers
	var order []int
	ts.AfterFunc(t0, 30*time.Millisecond, func() { order = append(order, 3) })
	ts.AfterFunc(t0, 10*time.Millisecond, func() { order = append(order, 1) })
	ts.AfterFunc(t0, 10*time.Millisecond, func() { order = append(order, 2) })

	if n := ts.Fire(t0.Add(5 * time.Millisecond)); n != 0 {
		t.Fatalf("fired %d early", n)
	}
	if n := ts.Fire(t0.Add(time.Second)); n != 3 {
		t.Fatalf("fired %d, want 3", n)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("order = %v", order)
	}
	if ts.Len() != 0 {
		t.Fatalf("len = %d", ts.Len())
	}
}

func TestTimerStop(t *testing.T) {
	var ts Timers
	fired := false
	tm := ts.AfterFunc(t0, time.Millisecond, func() { fired = true })
	if !tm.Stop() {
		t.Fatal("Stop on pending timer returned false")
	}
	if tm.Stop() {
		t.Fatal("second Stop returned true")
	}
	ts.Fire(t0.Add(time.Second))
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestTimersScheduledFromCallbackWait(t *testing.T) {
	var ts Timers
	inner := false
	ts.AfterFunc(t0, 0, func() {
		ts.AfterFunc(t0, 0, func() { inner = true })
	})
	ts.Fire(t0)
	if inner {
		t.Fatal("nested timer fired in the same batch")
	}
	ts.Fire(t0)
	if !inner {
		t.Fatal("nested timer never fired")
	}
}

func TestStopAll(t *testing.T) {
	var ts Timers
	fired := 0
	a := ts.AfterFunc(t0, 0, func() { fired++ })
	ts.AfterFunc(t0, 0, func() { fired++ })
	ts.StopAll()
	if ts.Fire(t0) != 0 || fired != 0 {
		t.Fatal("timers fired after StopAll")
	}
	if a.Pending() {
		t.Fatal("timer still pending after StopAll")
	}
}
