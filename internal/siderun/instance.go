package siderun

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/dash"
	"github.com/olivier-w/siderun/internal/framepool"
	"github.com/olivier-w/siderun/internal/geometry"
	"github.com/olivier-w/siderun/internal/motion"
	"github.com/olivier-w/siderun/internal/surface"
)

// State is an instance's lifecycle state.
type State int

const (
	StateInitializing State = iota
	StateActive
	StatePaused
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Snapshot is a read-only view of an instance.
type Snapshot struct {
	ID         string
	Key        string
	State      State
	Config     config.Config
	Metrics    geometry.Metrics
	Primary    motion.Cursor
	Secondary  motion.Cursor
	Hover      motion.Hover
	Registered bool
	InViewport bool
}

type instance struct {
	id   uuid.UUID
	key  string
	rt   *Runtime
	host surface.Host
	cfg  config.Config

	overlay surface.Overlay
	writer  *dash.Writer
	engine  *motion.Engine
	metrics geometry.Metrics
	hover   motion.Hover

	state      State
	disposed   bool
	inViewport bool
	lastFrame  time.Time
	unregister func()

	offs        []func()
	resizeStop  func()
	releaseStop func()
}

func newInstance(rt *Runtime, host surface.Host, cfg config.Config) *instance {
	engine := motion.NewEngine(cfg.Ease, cfg.Easing, cfg.MaxFPS)
	engine.ReducedMotion = rt.env.PrefersReducedMotion()
	return &instance{
		id:         uuid.New(),
		key:        host.Key(),
		rt:         rt,
		host:       host,
		cfg:        cfg,
		engine:     engine,
		hover:      motion.Hover{X: 0.5, Y: 0.5},
		state:      StateInitializing,
		inViewport: true,
	}
}

func (in *instance) start() {
	in.overlay = in.host.Mount(in.cfg.Margin)
	in.writer = dash.NewWriter(in.overlay)

	in.wireInput()
	in.offs = append(in.offs, in.host.ObserveResize(in.scheduleRecalc))
	if in.cfg.PauseOffscreen {
		if disconnect, ok := in.host.ObserveIntersection(in.onIntersection); ok {
			in.offs = append(in.offs, disconnect)
		}
	}
	in.offs = append(in.offs, in.rt.env.OnVisibilityChange(in.onVisibility))

	in.recalc()
	if in.rt.env.Hidden() || !in.inViewport {
		in.state = StatePaused
		return
	}
	in.resume()
}

// scheduleRecalc restarts the resize debounce.
func (in *instance) scheduleRecalc() {
	if in.disposed {
		return
	}
	if in.resizeStop != nil {
		in.resizeStop()
	}
	in.resizeStop = in.rt.env.AfterFunc(ResizeDebounce, func() {
		in.resizeStop = nil
		in.recalc()
	})
}

func (in *instance) recalc() {
	if in.disposed {
		return
	}
	bounds := in.host.Bounds()
	style := in.host.Style()
	stroke := config.StrokeWidth(style)
	margin := in.cfg.Margin

	m := geometry.Compute(geometry.Input{
		Width:          math.Max(0, bounds.Width+margin*2),
		Height:         math.Max(0, bounds.Height+margin*2),
		StrokeWidth:    stroke,
		Tail:           in.cfg.Tail,
		Margin:         margin,
		BorderRadius:   config.BorderRadius(style),
		UseAppleRadius: in.cfg.UseAppleRadius,
		MaxRadius:      in.cfg.MaxRadius,
	})

	in.overlay.SetViewport(m.Width, m.Height)
	r := geometry.Layout(m, stroke)
	for _, l := range surface.Layers {
		in.overlay.SetRect(l, r.X, r.Y, r.Width, r.Height, r.RX)
	}

	in.metrics = m
	in.engine.Retarget(m.Bases, in.hover)
	in.applyDashes()
}

func (in *instance) applyDashes() {
	if in.metrics.Perimeter == 0 {
		return
	}
	in.writer.Apply(dash.Compute(dash.Input{
		Perimeter: in.metrics.Perimeter,
		Segment:   in.metrics.Segment,
		Gap:       in.cfg.Gap,
		Primary:   in.engine.Primary.Eased,
		Secondary: in.engine.Secondary.Eased,
	}))
}

func (in *instance) step(now time.Time) {
	if in.disposed || !in.inViewport {
		return
	}
	if !in.lastFrame.IsZero() && now.Sub(in.lastFrame) < framepool.Interval(in.cfg.MaxFPS) {
		return
	}
	in.lastFrame = now
	if in.metrics.Perimeter == 0 {
		return
	}
	in.engine.Step(in.metrics.Bases, in.hover)
	in.applyDashes()
}

func (in *instance) resume() {
	if in.disposed || in.unregister != nil {
		return
	}
	in.unregister = in.rt.pool.Add(in.step)
	in.state = StateActive
}

func (in *instance) pause() {
	if in.unregister != nil {
		in.unregister()
		in.unregister = nil
	}
	if !in.disposed {
		in.state = StatePaused
	}
}

func (in *instance) onIntersection(visible bool) {
	if in.disposed {
		return
	}
	in.inViewport = visible
	// start decides the first state once geometry is in place.
	if in.state == StateInitializing {
		return
	}
	if visible && !in.rt.env.Hidden() {
		in.resume()
	} else if !visible {
		in.pause()
	}
}

func (in *instance) onVisibility() {
	if in.disposed {
		return
	}
	if in.rt.env.Hidden() {
		in.pause()
	} else if in.inViewport {
		in.resume()
	}
}

func (in *instance) dispose() {
	if in.disposed {
		return
	}
	in.disposed = true
	if in.resizeStop != nil {
		in.resizeStop()
		in.resizeStop = nil
	}
	if in.releaseStop != nil {
		in.releaseStop()
		in.releaseStop = nil
	}
	in.pause()
	for _, off := range in.offs {
		off()
	}
	in.offs = nil
	in.state = StateDisposed
	if in.rt.instances[in.key] == in {
		delete(in.rt.instances, in.key)
	}
	if in.overlay != nil {
		in.overlay.Remove()
	}
	logger().Debug("siderun: instance disposed", "id", in.id.String(), "key", in.key)
}

func (in *instance) snapshot() Snapshot {
	return Snapshot{
		ID:         in.id.String(),
		Key:        in.key,
		State:      in.state,
		Config:     in.cfg,
		Metrics:    in.metrics,
		Primary:    in.engine.Primary,
		Secondary:  in.engine.Secondary,
		Hover:      in.hover,
		Registered: in.unregister != nil,
		InViewport: in.inViewport,
	}
}
