// Package framepool multiplexes many per-frame callbacks onto a single
// animation-frame loop. The loop only runs while at least one callback is
// registered.
package framepool

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used to report recovered callback panics.
// Pass nil to silence it again.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }

// Driver is the native frame primitive: it calls fn once on the next frame.
type Driver interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// Callback runs once per frame.
type Callback func(now time.Time)

type entry struct {
	id uint64
	cb Callback
}

// Pool shares one Driver between any number of callbacks. It is not safe
// for concurrent use; all calls happen on the owner's event loop.
type Pool struct {
	driver  Driver
	entries []entry
	nextID  uint64
	cancel  func()
	frames  uint64
}

// New returns an idle pool.
func New(d Driver) *Pool {
	return &Pool{driver: d}
}

// Add registers cb. The returned function unregisters it; calling it again
// has no effect.
func (p *Pool) Add(cb Callback) (unregister func()) {
	p.nextID++
	id := p.nextID
	p.entries = append(p.entries, entry{id: id, cb: cb})
	if len(p.entries) == 1 && p.cancel == nil {
		p.schedule()
	}
	return func() { p.remove(id) }
}

// Len returns the number of registered callbacks.
func (p *Pool) Len() int { return len(p.entries) }

// Running reports whether a frame is pending.
func (p *Pool) Running() bool { return p.cancel != nil }

// Frames returns how many frames the pool has run.
func (p *Pool) Frames() uint64 { return p.frames }

func (p *Pool) remove(id uint64) {
	for i, e := range p.entries {
		if e.id == id {
			p.entries = append(p.entries[:i:i], p.entries[i+1:]...)
			break
		}
	}
	if len(p.entries) == 0 && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Pool) has(id uint64) bool {
	for _, e := range p.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (p *Pool) schedule() {
	p.cancel = p.driver.RequestFrame(p.tick)
}

func (p *Pool) tick(now time.Time) {
	p.cancel = nil
	p.frames++

	snapshot := make([]entry, len(p.entries))
	copy(snapshot, p.entries)
	for _, e := range snapshot {
		// Callbacks may unregister others mid-frame.
		if !p.has(e.id) {
			continue
		}
		p.invoke(e, now)
	}

	if len(p.entries) > 0 && p.cancel == nil {
		p.schedule()
	}
}

func (p *Pool) invoke(e entry, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			logger().Debug("framepool: callback panicked", "id", e.id, "panic", r)
		}
	}()
	e.cb(now)
}

// Interval returns the minimum spacing between frames for a callback
// limited to fps frames per second.
func Interval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
