// Package scene is an in-memory document for hosting flying borders without
// a browser: elements with bounds and styles, simulated pointer and touch
// input, viewport intersection, and overlays that record what the engine
// draws. It backs both the headless renderer and the terminal demo.
package scene

import (
	"slices"
	"time"

	"github.com/olivier-w/siderun/internal/clock"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/surface"
)

// Document implements surface.Environment on top of a virtual clock.
type Document struct {
	clock    *clock.Virtual
	elements []*Element

	width, height    float64
	scrollX, scrollY float64

	hidden        bool
	reducedMotion bool
	touch         bool
	noIntersect   bool

	seq     uint64
	visSubs map[uint64]func()

	touchTargets []*Element
}

// NewDocument returns an empty visible document driven by c.
func NewDocument(c *clock.Virtual) *Document {
	return &Document{clock: c, visSubs: make(map[uint64]func())}
}

// Clock returns the document's clock.
func (d *Document) Clock() *clock.Virtual { return d.clock }

func (d *Document) Now() time.Time { return d.clock.Now() }

func (d *Document) AfterFunc(dur time.Duration, fn func()) (stop func()) {
	return d.clock.AfterFunc(dur, fn)
}

func (d *Document) Hidden() bool               { return d.hidden }
func (d *Document) PrefersReducedMotion() bool { return d.reducedMotion }
func (d *Document) TouchCapable() bool         { return d.touch }

// SetReducedMotion sets the reduced-motion preference seen by instances
// created afterwards.
func (d *Document) SetReducedMotion(v bool) { d.reducedMotion = v }

// SetTouch marks the document as touch capable.
func (d *Document) SetTouch(v bool) { d.touch = v }

// DisableIntersection makes hosts report that intersections are
// unsupported.
func (d *Document) DisableIntersection() { d.noIntersect = true }

// SetHidden changes document visibility and notifies subscribers on change.
func (d *Document) SetHidden(v bool) {
	if d.hidden == v {
		return
	}
	d.hidden = v
	for _, fn := range d.visibilitySubscribers() {
		fn()
	}
}

func (d *Document) visibilitySubscribers() []func() {
	ids := make([]uint64, 0, len(d.visSubs))
	for id := range d.visSubs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, d.visSubs[id])
	}
	return fns
}

func (d *Document) OnVisibilityChange(fn func()) (off func()) {
	d.seq++
	id := d.seq
	d.visSubs[id] = fn
	return func() { delete(d.visSubs, id) }
}

// VisibilityListeners returns the number of visibility subscribers.
func (d *Document) VisibilityListeners() int { return len(d.visSubs) }

// SetViewport sizes the visible area. A zero viewport sees everything.
func (d *Document) SetViewport(width, height float64) {
	d.width, d.height = width, height
	d.updateIntersections()
}

// Viewport returns the visible area in document coordinates.
func (d *Document) Viewport() surface.Rect {
	return surface.Rect{Left: d.scrollX, Top: d.scrollY, Width: d.width, Height: d.height}
}

// ScrollTo moves the viewport origin.
func (d *Document) ScrollTo(x, y float64) {
	d.scrollX, d.scrollY = x, y
	d.updateIntersections()
}

func (d *Document) intersects(r surface.Rect) bool {
	if d.width <= 0 || d.height <= 0 {
		return true
	}
	v := d.Viewport()
	return r.Left < v.Right() && r.Right() > v.Left && r.Top < v.Bottom() && r.Bottom() > v.Top
}

func (d *Document) updateIntersections() {
	for _, el := range d.elements {
		el.updateIntersection()
	}
}

// AddElement creates an element with the given key and bounds.
func (d *Document) AddElement(key string, bounds surface.Rect, style config.MapStyle) *Element {
	if style == nil {
		style = config.MapStyle{}
	}
	el := &Element{
		doc:       d,
		key:       key,
		bounds:    bounds,
		style:     style,
		link:      -1,
		listeners: make(map[surface.EventKind]map[uint64]func(surface.Event)),
		resizeObs: make(map[uint64]func()),
		interObs:  make(map[uint64]func(bool)),
	}
	el.visible = d.intersects(bounds)
	d.elements = append(d.elements, el)
	return el
}

// Elements returns every element in insertion order.
func (d *Document) Elements() []*Element { return d.elements }

// Element returns the element with key.
func (d *Document) Element(key string) *Element {
	for _, el := range d.elements {
		if el.key == key {
			return el
		}
	}
	return nil
}

// PointerMove moves the pointer to (x, y), firing enter, move, leave and link
// events on every element it crosses.
func (d *Document) PointerMove(x, y float64) {
	for _, el := range d.elements {
		el.pointerAt(x, y, true)
	}
}

// PointerLeave moves the pointer out of the document.
func (d *Document) PointerLeave() {
	for _, el := range d.elements {
		el.pointerAt(0, 0, false)
	}
}

// TouchStart puts a finger down at (x, y). Elements under the finger become
// the targets of the following move, end and cancel.
func (d *Document) TouchStart(x, y float64) {
	d.touchTargets = d.touchTargets[:0]
	touches := []surface.Point{{X: x, Y: y}}
	for _, el := range d.elements {
		if el.bounds.Contains(x, y) {
			d.touchTargets = append(d.touchTargets, el)
			el.Dispatch(surface.Event{Kind: surface.TouchStart, X: x, Y: y, Touches: touches})
		}
	}
}

// TouchMove drags the finger to (x, y).
func (d *Document) TouchMove(x, y float64) {
	touches := []surface.Point{{X: x, Y: y}}
	for _, el := range d.touchTargets {
		el.Dispatch(surface.Event{Kind: surface.TouchMove, X: x, Y: y, Touches: touches})
	}
}

// TouchEnd lifts the finger.
func (d *Document) TouchEnd() { d.endTouch(surface.TouchEnd) }

// TouchCancel aborts the touch.
func (d *Document) TouchCancel() { d.endTouch(surface.TouchCancel) }

func (d *Document) endTouch(kind surface.EventKind) {
	targets := d.touchTargets
	d.touchTargets = nil
	for _, el := range targets {
		el.Dispatch(surface.Event{Kind: kind})
	}
}
