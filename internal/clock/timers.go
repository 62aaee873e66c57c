package clock

import (
	"sort"
	"time"
)

// Timer is a deferred callback registered with Timers.
type Timer struct {
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. Reports whether it was still pending.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending reports whether the timer will still fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && !t.fired
}

// Timers is a queue of wall-clock callbacks fired from the simulation
// goroutine. It keeps running while the game is paused.
type Timers struct {
	pending []*Timer
	seq     uint64
}

// AfterFunc schedules fn to run on the first Fire at or after now+d.
func (ts *Timers) AfterFunc(now time.Time, d time.Duration, fn func()) *Timer {
	ts.seq++
	t := &Timer{at: now.Add(d), seq: ts.seq, fn: fn}
	ts.pending = append(ts.pending, t)
	return t
}

// Fire runs every due timer in deadline order (ties in scheduling order) and
// returns how many ran. Timers scheduled by a callback wait for the next Fire.
func (ts *Timers) Fire(now time.Time) int {
	var due []*Timer
	kept := ts.pending[:0]
	for _, t := range ts.pending {
		switch {
		case t.stopped:
		case !now.Before(t.at):
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	ts.pending = kept

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})

	ran := 0
	for _, t := range due {
		// An earlier callback in this batch may have stopped it.
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
		ran++
	}
	return ran
}

// StopAll cancels every pending timer.
func (ts *Timers) StopAll() {
	for _, t := range ts.pending {
		t.stopped = true
	}
	ts.pending = nil
}

// Len returns the number of timers still waiting to fire.
func (ts *Timers) Len() int {
	n := 0
	for _, t := range ts.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}
