package scene

import (
	"slices"

	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/surface"
)

// Element is a host in a Document. It implements surface.Host.
type Element struct {
	doc    *Document
	key    string
	label  string
	bounds surface.Rect
	style  config.MapStyle

	links      []surface.Rect
	linkLabels []string

	seq       uint64
	listeners map[surface.EventKind]map[uint64]func(surface.Event)
	resizeObs map[uint64]func()
	interObs  map[uint64]func(bool)

	overlay *Overlay
	mounts  int

	pointerInside bool
	link          int
	visible       bool
}

func (el *Element) Key() string           { return el.key }
func (el *Element) Bounds() surface.Rect  { return el.bounds }
func (el *Element) Style() surface.Style  { return el.style }
func (el *Element) Links() []surface.Rect { return el.links }

// Label returns the element's display label.
func (el *Element) Label() string { return el.label }

// SetLabel sets the element's display label.
func (el *Element) SetLabel(s string) { el.label = s }

// LinkLabel returns the label of link i.
func (el *Element) LinkLabel(i int) string {
	if i < 0 || i >= len(el.linkLabels) {
		return ""
	}
	return el.linkLabels[i]
}

// HoveredLink returns the index of the link under the pointer, or -1.
func (el *Element) HoveredLink() int { return el.link }

// AddLink adds a hover zone in document coordinates.
func (el *Element) AddLink(label string, r surface.Rect) {
	el.links = append(el.links, r)
	el.linkLabels = append(el.linkLabels, label)
}

// Overlay returns the currently mounted overlay, or nil.
func (el *Element) Overlay() *Overlay { return el.overlay }

// Mounts returns how many overlays have ever been mounted on el.
func (el *Element) Mounts() int { return el.mounts }

// Visible reports whether el intersects the viewport.
func (el *Element) Visible() bool { return el.visible }

// Mount injects a fresh overlay.
func (el *Element) Mount(margin float64) surface.Overlay {
	el.overlay = &Overlay{el: el, margin: margin}
	el.mounts++
	return el.overlay
}

func (el *Element) nextID() uint64 {
	el.seq++
	return el.seq
}

func (el *Element) Listen(kind surface.EventKind, fn func(surface.Event)) (off func()) {
	id := el.nextID()
	m := el.listeners[kind]
	if m == nil {
		m = make(map[uint64]func(surface.Event))
		el.listeners[kind] = m
	}
	m[id] = fn
	return func() { delete(m, id) }
}

// Listeners returns the number of listeners attached for kind.
func (el *Element) Listeners(kind surface.EventKind) int { return len(el.listeners[kind]) }

// ListenerCount returns the number of listeners across all kinds.
func (el *Element) ListenerCount() int {
	n := 0
	for _, m := range el.listeners {
		n += len(m)
	}
	return n
}

// Dispatch delivers e to the listeners for e.Kind in registration order.
func (el *Element) Dispatch(e surface.Event) {
	m := el.listeners[e.Kind]
	ids := make([]uint64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := m[id]; ok {
			fn(e)
		}
	}
}

func (el *Element) ObserveResize(fn func()) (disconnect func()) {
	id := el.nextID()
	el.resizeObs[id] = fn
	return func() { delete(el.resizeObs, id) }
}

// ResizeObservers returns the number of connected resize observers.
func (el *Element) ResizeObservers() int { return len(el.resizeObs) }

func (el *Element) ObserveIntersection(fn func(visible bool)) (disconnect func(), ok bool) {
	if el.doc.noIntersect {
		return func() {}, false
	}
	id := el.nextID()
	el.interObs[id] = fn
	fn(el.visible)
	return func() { delete(el.interObs, id) }, true
}

// IntersectionObservers returns the number of connected intersection
// observers.
func (el *Element) IntersectionObservers() int { return len(el.interObs) }

// SetBounds moves or resizes el and notifies observers.
func (el *Element) SetBounds(r surface.Rect) {
	el.bounds = r
	el.notifyResize()
	el.updateIntersection()
}

// SetStyle sets a computed-style property and notifies resize observers.
func (el *Element) SetStyle(name, value string) {
	el.style[name] = value
	el.notifyResize()
}

func (el *Element) notifyResize() {
	ids := make([]uint64, 0, len(el.resizeObs))
	for id := range el.resizeObs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := el.resizeObs[id]; ok {
			fn()
		}
	}
}

func (el *Element) updateIntersection() {
	v := el.doc.intersects(el.bounds)
	if v == el.visible {
		return
	}
	el.visible = v
	for _, fn := range el.interObs {
		fn(v)
	}
}

func (el *Element) linkAt(x, y float64) int {
	for i, r := range el.links {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

func (el *Element) setLink(i int, x, y float64) {
	if i == el.link {
		return
	}
	if el.link >= 0 {
		el.Dispatch(surface.Event{Kind: surface.LinkLeave, X: x, Y: y, Target: el.links[el.link]})
	}
	el.link = i
	if i >= 0 {
		el.Dispatch(surface.Event{Kind: surface.LinkEnter, X: x, Y: y, Target: el.links[i]})
	}
}

func (el *Element) pointerAt(x, y float64, present bool) {
	inside := present && el.bounds.Contains(x, y)
	switch {
	case inside && !el.pointerInside:
		el.pointerInside = true
		el.Dispatch(surface.Event{Kind: surface.PointerEnter, X: x, Y: y})
		el.Dispatch(surface.Event{Kind: surface.MouseEnter, X: x, Y: y})
	case !inside && el.pointerInside:
		el.setLink(-1, x, y)
		el.pointerInside = false
		el.Dispatch(surface.Event{Kind: surface.PointerLeave, X: x, Y: y})
		el.Dispatch(surface.Event{Kind: surface.MouseLeave, X: x, Y: y})
		return
	case !inside:
		return
	}
	el.Dispatch(surface.Event{Kind: surface.PointerMove, X: x, Y: y})
	el.setLink(el.linkAt(x, y), x, y)
}
