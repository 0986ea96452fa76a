package siderun_test

import (
	"math"
	"testing"
	"time"

	"github.com/olivier-w/siderun/internal/clock"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/motion"
	"github.com/olivier-w/siderun/internal/scene"
	"github.com/olivier-w/siderun/internal/siderun"
	"github.com/olivier-w/siderun/internal/surface"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	clock *clock.Virtual
	doc   *scene.Document
	rt    *siderun.Runtime
	el    *scene.Element
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := clock.NewVirtual(epoch, 60)
	d := scene.NewDocument(c)
	el := d.AddElement("host", surface.Rect{Width: 200, Height: 50}, config.MapStyle{config.PropBorderRadius: "12px"})
	return &fixture{clock: c, doc: d, rt: siderun.New(d, c), el: el}
}

func (f *fixture) snapshot(t *testing.T) siderun.Snapshot {
	t.Helper()
	s, ok := f.rt.Snapshot(f.el.Key())
	if !ok {
		t.Fatal("expected a live instance")
	}
	return s
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestInitActivates(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{})

	s := f.snapshot(t)
	if s.State != siderun.StateActive || !s.Registered {
		t.Fatalf("expected active registered instance, got %v registered=%v", s.State, s.Registered)
	}
	if s.ID == "" {
		t.Fatal("expected instance id")
	}
	if s.Metrics.Width != 222 || s.Metrics.Height != 72 || s.Metrics.Radius != 23 {
		t.Fatalf("unexpected metrics %+v", s.Metrics)
	}
	o := f.el.Overlay()
	if o == nil {
		t.Fatal("expected mounted overlay")
	}
	if o.Writes() != 8 {
		t.Fatalf("expected initial dash writes for every layer, got %d", o.Writes())
	}
	if w, h := o.Size(); w != 222 || h != 72 {
		t.Fatalf("expected overlay 222x72, got %vx%v", w, h)
	}
	if sh := o.Shape(surface.Runner1); sh.X != 1.5 || sh.Width != 219 || sh.RX != 23 {
		t.Fatalf("unexpected layer shape %+v", sh)
	}
	if !f.rt.Pool().Running() {
		t.Fatal("expected frame pool running")
	}
}

func TestHoverEasesTowardTarget(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{})
	start := f.snapshot(t)

	f.doc.PointerMove(100, 25)
	f.clock.AdvanceFrames(1)

	s := f.snapshot(t)
	if !s.Hover.Active || s.Hover.X != 0.5 {
		t.Fatalf("expected centred hover, got %+v", s.Hover)
	}
	target, _ := motion.Targets(s.Metrics.Bases, motion.Hover{Active: true, X: 0.5})
	want := start.Primary.Eased + (target-start.Primary.Eased)*config.DefaultEase
	if !near(s.Primary.Eased, want) {
		t.Fatalf("expected one ease step to %v, got %v", want, s.Primary.Eased)
	}

	f.clock.AdvanceFrames(400)
	s = f.snapshot(t)
	if math.Abs(s.Primary.Eased-target) > 0.01 {
		t.Fatalf("expected primary near %v, got %v", target, s.Primary.Eased)
	}

	f.doc.PointerLeave()
	f.clock.AdvanceFrames(400)
	s = f.snapshot(t)
	if s.Primary.Eased != s.Metrics.Bases.PrimaryStart || s.Secondary.Eased != s.Metrics.Bases.SecondaryStart {
		t.Fatalf("expected cursors to snap to rest, got %v %v", s.Primary.Eased, s.Secondary.Eased)
	}
}

func TestFrameThrottle(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{MaxFPS: config.Float(30)})
	start := f.snapshot(t)
	f.doc.PointerMove(100, 25)

	// Frames land every 1/60 s; at a 30 fps cap the first and third run.
	f.clock.AdvanceFrames(2)
	s := f.snapshot(t)
	target, _ := motion.Targets(s.Metrics.Bases, motion.Hover{Active: true, X: 0.5})
	want := start.Primary.Eased + (target-start.Primary.Eased)*config.DefaultEase
	if !near(s.Primary.Eased, want) {
		t.Fatalf("expected exactly one step (%v), got %v", want, s.Primary.Eased)
	}

	f.clock.AdvanceFrames(1)
	want += (target - want) * config.DefaultEase
	if s := f.snapshot(t); !near(s.Primary.Eased, want) {
		t.Fatalf("expected second step on the third frame (%v), got %v", want, s.Primary.Eased)
	}
}

func TestFrameRateMatchesCap(t *testing.T) {
	tests := []struct {
		maxFPS float64
		steps  int
	}{
		{60, 60},
		{30, 30},
		{20, 20},
	}
	for _, tt := range tests {
		f := newFixture(t)
		f.rt.Init(f.el, config.Options{MaxFPS: config.Float(tt.maxFPS), Ease: config.Float(0.01)})
		start := f.snapshot(t)
		f.doc.PointerMove(100, 25)

		f.clock.Advance(time.Second)
		s := f.snapshot(t)
		target, _ := motion.Targets(s.Metrics.Bases, motion.Hover{Active: true, X: 0.5})
		want := target - (target-start.Primary.Eased)*math.Pow(0.99, float64(tt.steps))
		if math.Abs(s.Primary.Eased-want) > 1e-6 {
			t.Fatalf("maxFps %v: expected %d steps in one second (%v), got %v", tt.maxFPS, tt.steps, want, s.Primary.Eased)
		}
	}
}

func TestTrackPointer(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{TrackPointer: config.Bool(true)})

	f.doc.PointerMove(150, 10)
	s := f.snapshot(t)
	if !s.Hover.Active || s.Hover.X != 0.75 || s.Hover.Y != 0.2 {
		t.Fatalf("unexpected hover %+v", s.Hover)
	}
	f.doc.PointerMove(500, 10)
	if s := f.snapshot(t); s.Hover.Active {
		t.Fatal("expected hover cleared on leave")
	}
}

func TestLinkHover(t *testing.T) {
	f := newFixture(t)
	f.el.AddLink("about", surface.Rect{Left: 140, Top: 10, Width: 40, Height: 20})
	f.rt.Init(f.el, config.Options{})

	f.doc.PointerMove(20, 20)
	if s := f.snapshot(t); s.Hover.Active {
		t.Fatal("expected no hover outside links")
	}
	f.doc.PointerMove(150, 20)
	s := f.snapshot(t)
	if !s.Hover.Active || s.Hover.X != 0.8 {
		t.Fatalf("expected hover at link centre 0.8, got %+v", s.Hover)
	}
	f.doc.PointerMove(20, 20)
	if s := f.snapshot(t); s.Hover.Active {
		t.Fatal("expected hover cleared when leaving the link")
	}
}

func TestTouch(t *testing.T) {
	f := newFixture(t)
	f.doc.SetTouch(true)
	f.rt.Init(f.el, config.Options{})

	f.doc.TouchStart(50, 25)
	if s := f.snapshot(t); !s.Hover.Active || s.Hover.X != 0.25 {
		t.Fatalf("expected touch hover at 0.25, got %+v", s.Hover)
	}

	f.doc.TouchMove(215, 25)
	if s := f.snapshot(t); !s.Hover.Active || s.Hover.X != 1 {
		t.Fatalf("expected hover kept within tolerance, got %+v", s.Hover)
	}
	f.doc.TouchMove(260, 25)
	if s := f.snapshot(t); s.Hover.Active {
		t.Fatal("expected hover cleared beyond tolerance")
	}

	f.doc.TouchStart(50, 25)
	f.doc.TouchEnd()
	if s := f.snapshot(t); !s.Hover.Active {
		t.Fatal("expected hover to outlive touch end briefly")
	}
	f.clock.Advance(siderun.TouchReleaseDelay)
	if s := f.snapshot(t); s.Hover.Active {
		t.Fatal("expected hover cleared after release delay")
	}

	f.doc.TouchStart(50, 25)
	f.doc.TouchCancel()
	if s := f.snapshot(t); s.Hover.Active {
		t.Fatal("expected cancel to clear hover immediately")
	}
}

func TestReducedMotionSnaps(t *testing.T) {
	f := newFixture(t)
	f.doc.SetReducedMotion(true)
	f.rt.Init(f.el, config.Options{})

	f.doc.PointerMove(100, 25)
	f.clock.AdvanceFrames(1)
	s := f.snapshot(t)
	if s.Primary.Eased != s.Primary.Target || s.Secondary.Eased != s.Secondary.Target {
		t.Fatalf("expected snap under reduced motion, got %+v %+v", s.Primary, s.Secondary)
	}
}

func TestReinitReplacesInstance(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{})
	first := f.el.Overlay()
	firstID := f.snapshot(t).ID

	f.rt.Init(f.el, config.Options{Tail: config.Float(20)})
	if !first.Removed() {
		t.Fatal("expected previous overlay removed")
	}
	if f.el.Mounts() != 2 || f.rt.Len() != 1 || f.rt.Pool().Len() != 1 {
		t.Fatalf("expected a single live instance, mounts=%d len=%d pool=%d",
			f.el.Mounts(), f.rt.Len(), f.rt.Pool().Len())
	}
	s := f.snapshot(t)
	if s.ID == firstID || s.Config.Tail != 20 {
		t.Fatalf("expected fresh instance with new config, got %+v", s)
	}
}

func TestDisposeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	dispose := f.rt.Init(f.el, config.Options{})
	o := f.el.Overlay()

	dispose()
	dispose()

	if !o.Removed() {
		t.Fatal("expected overlay removed")
	}
	if f.el.ListenerCount() != 0 || f.el.ResizeObservers() != 0 || f.el.IntersectionObservers() != 0 {
		t.Fatal("expected every listener and observer detached")
	}
	if f.doc.VisibilityListeners() != 0 {
		t.Fatal("expected visibility listener detached")
	}
	if f.rt.Pool().Running() || f.rt.Len() != 0 {
		t.Fatal("expected no registered callbacks")
	}
	if _, ok := f.rt.Snapshot(f.el.Key()); ok {
		t.Fatal("expected no snapshot after dispose")
	}
	f.clock.AdvanceFrames(3)
}

func TestDisposeCancelsPendingTimers(t *testing.T) {
	f := newFixture(t)
	f.doc.SetTouch(true)
	dispose := f.rt.Init(f.el, config.Options{})

	f.doc.TouchStart(50, 25)
	f.doc.TouchEnd()
	f.el.SetBounds(surface.Rect{Width: 220, Height: 50})
	if _, ok := f.clock.NextDeadline(); !ok {
		t.Fatal("expected release and resize timers pending")
	}

	dispose()
	if f.clock.Pending() {
		t.Fatal("expected no timers or frames left after dispose")
	}
	f.clock.Advance(time.Second)
	if f.rt.Len() != 0 {
		t.Fatalf("expected no instances, got %d", f.rt.Len())
	}
}

func TestDisposeDuringFrame(t *testing.T) {
	f := newFixture(t)
	var dispose siderun.Disposer
	var unregister func()
	unregister = f.rt.Pool().Add(func(time.Time) {
		dispose()
		unregister()
	})
	dispose = f.rt.Init(f.el, config.Options{})
	o := f.el.Overlay()
	f.doc.PointerMove(100, 25)
	writes := o.Writes()

	f.clock.AdvanceFrames(1)

	if o.Writes() != writes {
		t.Fatalf("expected disposed instance to skip the frame, got %d writes", o.Writes()-writes)
	}
	if !o.Removed() || f.rt.Len() != 0 {
		t.Fatal("expected instance torn down mid-frame")
	}
	if f.rt.Pool().Len() != 0 || f.rt.Pool().Running() {
		t.Fatal("expected frame loop stopped")
	}
	f.clock.AdvanceFrames(2)
}

func TestNilHost(t *testing.T) {
	f := newFixture(t)
	dispose := f.rt.Init(nil, config.Options{})
	if dispose == nil {
		t.Fatal("expected a callable disposer")
	}
	dispose()
	if f.rt.Len() != 0 {
		t.Fatal("expected no instance")
	}
}

type reentrantHost struct {
	*scene.Element
	rt    *siderun.Runtime
	calls int
}

func (h *reentrantHost) Mount(margin float64) surface.Overlay {
	h.calls++
	h.rt.Init(h, config.Options{})
	return h.Element.Mount(margin)
}

type observingHost struct {
	*scene.Element
	rt         *siderun.Runtime
	registered int
}

func (h *observingHost) ObserveIntersection(fn func(visible bool)) (func(), bool) {
	disconnect, ok := h.Element.ObserveIntersection(fn)
	h.registered = h.rt.Pool().Len()
	return disconnect, ok
}

func TestRegistersAfterFirstGeometryPass(t *testing.T) {
	f := newFixture(t)
	h := &observingHost{Element: f.el, rt: f.rt, registered: -1}
	f.rt.Init(h, config.Options{PauseOffscreen: config.Bool(true)})

	if h.registered != 0 {
		t.Fatalf("expected no pool registration while observing, got %d", h.registered)
	}
	if s := f.snapshot(t); s.State != siderun.StateActive || !s.Registered {
		t.Fatalf("expected active after init, got %v", s.State)
	}
}

func TestInitIgnoredWhileInProgress(t *testing.T) {
	f := newFixture(t)
	h := &reentrantHost{Element: f.el, rt: f.rt}
	f.rt.Init(h, config.Options{})

	if h.calls != 1 || f.el.Mounts() != 1 || f.rt.Len() != 1 {
		t.Fatalf("expected nested init ignored, calls=%d mounts=%d len=%d", h.calls, f.el.Mounts(), f.rt.Len())
	}
}

func TestPausesWhenHidden(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{})

	f.doc.SetHidden(true)
	if s := f.snapshot(t); s.State != siderun.StatePaused || s.Registered {
		t.Fatalf("expected paused, got %v", s.State)
	}
	if f.rt.Pool().Running() {
		t.Fatal("expected pool stopped while hidden")
	}

	f.doc.SetHidden(false)
	if s := f.snapshot(t); s.State != siderun.StateActive || !s.Registered {
		t.Fatalf("expected active, got %v", s.State)
	}
}

func TestStartsPausedWhenHidden(t *testing.T) {
	f := newFixture(t)
	f.doc.SetHidden(true)
	f.rt.Init(f.el, config.Options{})
	if s := f.snapshot(t); s.State != siderun.StatePaused {
		t.Fatalf("expected paused, got %v", s.State)
	}
}

func TestPausesOffscreen(t *testing.T) {
	f := newFixture(t)
	f.doc.SetViewport(400, 300)
	f.rt.Init(f.el, config.Options{})

	f.doc.ScrollTo(0, 1000)
	if s := f.snapshot(t); s.State != siderun.StatePaused || s.InViewport {
		t.Fatalf("expected paused offscreen, got %v", s.State)
	}
	f.doc.ScrollTo(0, 0)
	if s := f.snapshot(t); s.State != siderun.StateActive {
		t.Fatalf("expected active on screen, got %v", s.State)
	}
}

func TestPauseOffscreenDisabled(t *testing.T) {
	f := newFixture(t)
	f.doc.SetViewport(400, 300)
	f.rt.Init(f.el, config.Options{PauseOffscreen: config.Bool(false)})

	f.doc.ScrollTo(0, 1000)
	if s := f.snapshot(t); s.State != siderun.StateActive {
		t.Fatalf("expected active, got %v", s.State)
	}
	if f.el.IntersectionObservers() != 0 {
		t.Fatal("expected no intersection observer")
	}
}

func TestIntersectionUnsupported(t *testing.T) {
	f := newFixture(t)
	f.doc.DisableIntersection()
	f.rt.Init(f.el, config.Options{})
	if s := f.snapshot(t); s.State != siderun.StateActive {
		t.Fatalf("expected active, got %v", s.State)
	}
}

func TestResizeIsDebounced(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{})

	for _, w := range []float64{220, 240, 260} {
		f.el.SetBounds(surface.Rect{Width: w, Height: 50})
		f.clock.Advance(100 * time.Millisecond)
	}
	if s := f.snapshot(t); s.Metrics.Width != 222 {
		t.Fatalf("expected geometry unchanged during debounce, got %v", s.Metrics.Width)
	}

	f.clock.Advance(siderun.ResizeDebounce)
	if s := f.snapshot(t); s.Metrics.Width != 282 {
		t.Fatalf("expected geometry for the last size, got %v", s.Metrics.Width)
	}
}

func TestRecalcKeepsEasedPositions(t *testing.T) {
	f := newFixture(t)
	f.rt.Init(f.el, config.Options{})
	before := f.snapshot(t)

	f.el.SetBounds(surface.Rect{Width: 400, Height: 50})
	f.rt.Recalc(f.el.Key())

	s := f.snapshot(t)
	if s.Secondary.Eased != before.Secondary.Eased {
		t.Fatalf("expected eased value kept, got %v want %v", s.Secondary.Eased, before.Secondary.Eased)
	}
	if s.Secondary.Target == before.Secondary.Target {
		t.Fatal("expected new target")
	}
}

func TestZeroSizeHostIsInert(t *testing.T) {
	c := clock.NewVirtual(epoch, 60)
	d := scene.NewDocument(c)
	el := d.AddElement("empty", surface.Rect{}, nil)
	rt := siderun.New(d, c)
	rt.Init(el, config.Options{Margin: config.Float(0)})

	c.AdvanceFrames(5)
	s, _ := rt.Snapshot("empty")
	if s.Metrics.Perimeter != 0 {
		t.Fatalf("expected zero perimeter, got %v", s.Metrics.Perimeter)
	}
	if el.Overlay().Writes() != 0 {
		t.Fatalf("expected no dash writes, got %d", el.Overlay().Writes())
	}
}

func TestCloseDisposesEverything(t *testing.T) {
	f := newFixture(t)
	other := f.doc.AddElement("other", surface.Rect{Top: 100, Width: 100, Height: 40}, nil)
	f.rt.Init(f.el, config.Options{})
	f.rt.Init(other, config.Options{})

	f.rt.Close()
	if f.rt.Len() != 0 || f.rt.Pool().Running() {
		t.Fatal("expected runtime empty")
	}
	if f.el.Overlay() != nil || other.Overlay() != nil {
		t.Fatal("expected overlays removed")
	}
}

func TestStateString(t *testing.T) {
	if siderun.StateDisposed.String() != "disposed" || siderun.State(42).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
