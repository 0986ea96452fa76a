// Package siderun attaches animated flying borders to hosts and manages
// their lifecycle: initialisation, pausing while offscreen or hidden, and
// disposal.
//
// A Runtime owns the shared frame pool and every live instance. It is not
// safe for concurrent use: hosts, timers and frames must all be dispatched
// from the same event loop.
package siderun

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/framepool"
	"github.com/olivier-w/siderun/internal/surface"
)

// Timing and tolerance constants.
const (
	// ResizeDebounce is the quiet period after the last resize notification
	// before geometry is recomputed.
	ResizeDebounce = 300 * time.Millisecond
	// TouchReleaseDelay delays clearing hover after a touch ends.
	TouchReleaseDelay = 100 * time.Millisecond
	// TouchTolerance is how far outside the host a finger may stray and
	// still steer the runners.
	TouchTolerance = 20.0
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

// SetLogger configures logging for siderun and the frame pool. By default
// nothing is logged. Pass nil to silence logging again.
func SetLogger(l *slog.Logger) {
	framepool.SetLogger(l)
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

func logger() *slog.Logger { return loggerPtr.Load() }

// Disposer tears an instance down. It is safe to call more than once.
type Disposer func()

func noop() {}

// Runtime is the composition root for border instances.
type Runtime struct {
	env          surface.Environment
	pool         *framepool.Pool
	instances    map[string]*instance
	initializing map[string]bool
}

// New returns a Runtime using env for timers and document state, and d as
// the native frame primitive.
func New(env surface.Environment, d framepool.Driver) *Runtime {
	return &Runtime{
		env:          env,
		pool:         framepool.New(d),
		instances:    make(map[string]*instance),
		initializing: make(map[string]bool),
	}
}

// Pool exposes the shared frame pool.
func (rt *Runtime) Pool() *framepool.Pool { return rt.pool }

// Len returns the number of live instances.
func (rt *Runtime) Len() int { return len(rt.instances) }

// Init attaches a border to host and returns its disposer. A previous
// instance on the same stroke container is disposed first. A nil host, or a
// container that is already being initialised, yields a no-op disposer.
func (rt *Runtime) Init(host surface.Host, opts config.Options) Disposer {
	if host == nil {
		return noop
	}
	key := host.Key()
	if rt.initializing[key] {
		logger().Debug("siderun: init already in progress", "key", key)
		return noop
	}
	rt.initializing[key] = true
	defer delete(rt.initializing, key)

	if prev := rt.instances[key]; prev != nil {
		rt.disposeQuietly(prev)
	}

	in := newInstance(rt, host, config.Resolve(host.Style(), opts))
	in.start()
	rt.instances[key] = in

	logger().Debug("siderun: instance initialised",
		"id", in.id.String(),
		"key", key,
		"state", in.state.String())
	return in.dispose
}

func (rt *Runtime) disposeQuietly(in *instance) {
	defer func() {
		if r := recover(); r != nil {
			logger().Debug("siderun: previous cleanup failed", "key", in.key, "panic", r)
		}
		if rt.instances[in.key] == in {
			delete(rt.instances, in.key)
		}
	}()
	in.dispose()
}

// Snapshot returns the state of the instance bound to key.
func (rt *Runtime) Snapshot(key string) (Snapshot, bool) {
	in := rt.instances[key]
	if in == nil {
		return Snapshot{}, false
	}
	return in.snapshot(), true
}

// Recalc forces a geometry pass for the instance bound to key.
func (rt *Runtime) Recalc(key string) {
	if in := rt.instances[key]; in != nil {
		in.recalc()
	}
}

// Close disposes every instance.
func (rt *Runtime) Close() {
	for _, in := range rt.instances {
		rt.disposeQuietly(in)
	}
}
