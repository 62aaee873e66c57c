// Package clock drives the per-frame simulation update from a display
// refresh signal and runs deferred wall-clock callbacks.
package clock

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"
)

// UpdateFunc is the per-frame simulation callback. now is the absolute frame
// timestamp and delta the time since the previous accepted frame.
type UpdateFunc func(now time.Time, delta time.Duration)

// Clock is a single-threaded cooperative frame scheduler. Frame must be
// called once per display refresh; the clock decides whether the update
// callback runs for that refresh.
type Clock struct {
	update   UpdateFunc
	interval time.Duration // Minimum period between accepted frames; 0 = uncapped
	logger   *log.Logger

	origin       time.Time // First frame after (re)start, base for rate-cap re-basing
	prev         time.Time // Previous accepted frame
	lastAccepted time.Time // Rate-cap reference point

	running   bool
	scheduled bool
	panics    int
}

// Option configures a Clock.
type Option func(*Clock)

// WithTargetFPS caps the update rate. fps <= 0 leaves it uncapped.
func WithTargetFPS(fps int) Option {
	return func(c *Clock) {
		if fps > 0 {
			c.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithLogger sets the logger used to report recovered frame panics.
func WithLogger(l *log.Logger) Option {
	return func(c *Clock) {
		c.logger = l
	}
}

// New creates a scheduled clock that calls update while running.
func New(update UpdateFunc, opts ...Option) *Clock {
	c := &Clock{
		update:    update,
		scheduled: true,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Frame is the display refresh callback.
func (c *Clock) Frame(now time.Time) {
	if !c.scheduled {
		return
	}

	// First frame after (re)start only records the timestamp.
	if c.prev.IsZero() {
		c.origin = now
		c.prev = now
		c.lastAccepted = now
		return
	}

	delta := now.Sub(c.prev)

	if c.interval > 0 {
		since := now.Sub(c.lastAccepted)
		if since < c.interval {
			return
		}
		// Re-base on the interval grid so late frames don't accumulate drift.
		c.lastAccepted = now.Add(-(now.Sub(c.origin) % c.interval))
	}

	c.prev = now

	if c.running {
		c.safeUpdate(now, delta)
	}
}

// safeUpdate runs the update callback, recovering and logging any panic so
// that a single bad frame never ends the loop.
func (c *Clock) safeUpdate(now time.Time, delta time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			c.panics++
			c.logger.Error("frame update failed", "err", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()
	c.update(now, delta)
}

// SetRunning toggles whether accepted frames invoke the update callback.
func (c *Clock) SetRunning(running bool) {
	c.running = running
}

// Running reports whether the update callback is enabled.
func (c *Clock) Running() bool {
	return c.running
}

// Reset clears the timing reference; the next frame is treated as the first.
func (c *Clock) Reset() {
	c.origin = time.Time{}
	c.prev = time.Time{}
	c.lastAccepted = time.Time{}
}

// Pause cancels the scheduled frame callback.
func (c *Clock) Pause() {
	c.scheduled = false
}

// Resume re-schedules the frame callback if it was cancelled.
func (c *Clock) Resume() {
	c.scheduled = true
}

// Scheduled reports whether the next display refresh will be handled.
func (c *Clock) Scheduled() bool {
	return c.scheduled
}

// Panics returns how many frame updates have been recovered from a panic.
func (c *Clock) Panics() int {
	return c.panics
}
