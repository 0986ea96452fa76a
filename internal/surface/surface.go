// Package surface describes what the border engine needs from the display
// system hosting it. Front ends (the headless scene, the terminal UI)
// implement these interfaces; the engine depends on nothing else.
package surface

import "time"

// Rect is an axis-aligned box in host coordinates.
type Rect struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the middle of r.
func (r Rect) Center() (x, y float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Expand grows r by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Layer identifies one of the four stroked outlines.
type Layer int

// Layers in paint order.
const (
	BorderTop Layer = iota
	Runner1
	Runner2
	BorderBottom
)

// Layers lists every layer in paint order.
var Layers = [...]Layer{BorderTop, Runner1, Runner2, BorderBottom}

// Class returns the layer's class name in exported markup.
func (l Layer) Class() string {
	switch l {
	case BorderTop:
		return "sr-border-top"
	case Runner1:
		return "sr-runner-1"
	case Runner2:
		return "sr-runner-2"
	case BorderBottom:
		return "sr-border-bottom"
	}
	return ""
}

// Attribute names written to layers.
const (
	AttrDashArray  = "stroke-dasharray"
	AttrDashOffset = "stroke-dashoffset"
)

// Style answers computed-style queries such as "border-radius" or
// "--sr-tail". Missing properties return "".
type Style interface {
	Property(name string) string
}

// Overlay is the injected drawing surface: an outer box extending the host
// by the margin on every side, holding the four layers.
type Overlay interface {
	// SetViewport sizes the outer box.
	SetViewport(width, height float64)
	// SetRect sets the rounded rectangle stroked by a layer.
	SetRect(l Layer, x, y, width, height, rx float64)
	// SetAttr sets a presentation attribute on a layer.
	SetAttr(l Layer, name, value string)
	// Remove detaches the overlay from its host.
	Remove()
}

// EventKind names an input event.
type EventKind int

const (
	PointerEnter EventKind = iota
	PointerMove
	PointerLeave
	MouseEnter
	MouseLeave
	LinkEnter
	LinkLeave
	TouchStart
	TouchMove
	TouchEnd
	TouchCancel
)

// Point is a position in host coordinates.
type Point struct {
	X, Y float64
}

// Event is delivered to input listeners.
type Event struct {
	Kind EventKind
	X, Y float64
	// Target is the bounds of the element the listener is attached to, set
	// for link events.
	Target  Rect
	Touches []Point
}

// Host is an element the border is drawn around.
type Host interface {
	// Key identifies the stroke container. Two hosts with the same key
	// share a single border instance.
	Key() string
	Bounds() Rect
	Style() Style
	// Links returns the bounds of hover zones inside the host.
	Links() []Rect
	// Mount injects an overlay extending margin beyond the host.
	Mount(margin float64) Overlay
	// Listen attaches fn for events of kind. Link events fire for any link.
	Listen(kind EventKind, fn func(Event)) (off func())
	// ObserveResize calls fn whenever the host's size or style changes.
	ObserveResize(fn func()) (disconnect func())
	// ObserveIntersection calls fn with the host's viewport visibility. ok is
	// false when the environment cannot report intersections.
	ObserveIntersection(fn func(visible bool)) (disconnect func(), ok bool)
}

// Environment is document-level state shared by all hosts.
type Environment interface {
	Now() time.Time
	// AfterFunc runs fn once after d. stop cancels it if it has not run.
	AfterFunc(d time.Duration, fn func()) (stop func())
	Hidden() bool
	OnVisibilityChange(fn func()) (off func())
	PrefersReducedMotion() bool
	TouchCapable() bool
}
