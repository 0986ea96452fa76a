// Package clock provides a deterministic event loop: timers and animation
// frames that only fire when the owner advances time.
package clock

import (
	"sort"
	"time"
)

// DefaultFPS is the native frame rate of a Virtual clock.
const DefaultFPS = 60

type timer struct {
	id       uint64
	deadline time.Time
	fn       func()
}

type frameRequest struct {
	id uint64
	fn func(time.Time)
}

// Virtual is a single-threaded clock. Frame callbacks requested during a
// frame run on the following frame, as with requestAnimationFrame.
type Virtual struct {
	now      time.Time
	fps      int
	interval time.Duration
	// Frame n lands at origin + n/fps, so frame times never drift from
	// rounding the interval.
	origin   time.Time
	frame    int64
	seq      uint64
	timers   []timer
	frames   []frameRequest
	requests int
}

// NewVirtual returns a clock starting at start with frames every 1/fps.
func NewVirtual(start time.Time, fps int) *Virtual {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Virtual{
		now:      start,
		fps:      fps,
		interval: time.Second / time.Duration(fps),
		origin:   start,
	}
}

// nextFrame returns the time of the next frame tick. A clock moved off the
// frame grid by Tick or Advance restarts the grid at the current time.
func (v *Virtual) nextFrame() time.Time {
	at := func(n int64) time.Time {
		return v.origin.Add(time.Duration(n) * time.Second / time.Duration(v.fps))
	}
	if !at(v.frame).Equal(v.now) {
		v.origin, v.frame = v.now, 0
	}
	v.frame++
	return at(v.frame)
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Time { return v.now }

// Interval returns the frame spacing, truncated to whole nanoseconds.
func (v *Virtual) Interval() time.Duration { return v.interval }

// RequestFrame schedules fn for the next frame.
func (v *Virtual) RequestFrame(fn func(now time.Time)) (cancel func()) {
	v.seq++
	id := v.seq
	v.requests++
	v.frames = append(v.frames, frameRequest{id: id, fn: fn})
	return func() {
		for i, f := range v.frames {
			if f.id == id {
				v.frames = append(v.frames[:i:i], v.frames[i+1:]...)
				return
			}
		}
	}
}

// FrameRequests returns how many frames have ever been requested.
func (v *Virtual) FrameRequests() int { return v.requests }

// AfterFunc runs fn once when the clock reaches now+d.
func (v *Virtual) AfterFunc(d time.Duration, fn func()) (stop func()) {
	v.seq++
	id := v.seq
	v.timers = append(v.timers, timer{id: id, deadline: v.now.Add(d), fn: fn})
	sort.SliceStable(v.timers, func(i, j int) bool {
		return v.timers[i].deadline.Before(v.timers[j].deadline)
	})
	return func() {
		for i, t := range v.timers {
			if t.id == id {
				v.timers = append(v.timers[:i:i], v.timers[i+1:]...)
				return
			}
		}
	}
}

// Pending reports whether any frame or timer is waiting.
func (v *Virtual) Pending() bool {
	return len(v.frames) > 0 || len(v.timers) > 0
}

// FramePending reports whether a frame has been requested.
func (v *Virtual) FramePending() bool { return len(v.frames) > 0 }

// NextDeadline returns the earliest timer deadline.
func (v *Virtual) NextDeadline() (time.Time, bool) {
	if len(v.timers) == 0 {
		return time.Time{}, false
	}
	return v.timers[0].deadline, true
}

// Tick moves the clock to now (never backwards), fires due timers, then
// runs the frame callbacks requested before this tick.
func (v *Virtual) Tick(now time.Time) {
	if now.After(v.now) {
		v.now = now
	}
	v.fireTimers()

	frames := v.frames
	v.frames = nil
	for _, f := range frames {
		f.fn(v.now)
	}
}

// Advance steps the clock forward by d, one frame interval at a time.
func (v *Virtual) Advance(d time.Duration) {
	end := v.now.Add(d)
	for {
		next := v.nextFrame()
		if next.After(end) {
			v.frame--
			break
		}
		v.Tick(next)
	}
	if end.After(v.now) {
		v.now = end
		v.fireTimers()
	}
}

// AdvanceFrames runs n frame ticks.
func (v *Virtual) AdvanceFrames(n int) {
	for range n {
		v.Tick(v.nextFrame())
	}
}

func (v *Virtual) fireTimers() {
	for len(v.timers) > 0 && !v.timers[0].deadline.After(v.now) {
		t := v.timers[0]
		v.timers = v.timers[1:]
		t.fn()
	}
}
