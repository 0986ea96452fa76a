package siderun

import (
	"github.com/olivier-w/siderun/internal/motion"
	"github.com/olivier-w/siderun/internal/surface"
)

func (in *instance) listen(kind surface.EventKind, fn func(surface.Event)) {
	in.offs = append(in.offs, in.host.Listen(kind, fn))
}

// wireInput picks the hover source: pointer tracking, link hover zones, or
// plain enter/leave on the host. Touch tracking is added on touch-capable
// environments regardless.
func (in *instance) wireInput() {
	switch {
	case in.cfg.TrackPointer:
		in.listen(surface.PointerEnter, func(e surface.Event) {
			in.hover.Active = true
			in.updateFromEvent(e)
		})
		in.listen(surface.PointerMove, in.updateFromEvent)
		in.listen(surface.PointerLeave, in.onLeave)

	case len(in.host.Links()) > 0:
		in.listen(surface.LinkEnter, in.onLinkEnter)
		in.listen(surface.LinkLeave, in.onLeave)
		in.listen(surface.MouseLeave, in.onLeave)

	default:
		in.listen(surface.MouseEnter, func(surface.Event) { in.hover.Active = true })
		in.listen(surface.MouseLeave, in.onLeave)
	}

	if in.rt.env.TouchCapable() {
		in.listen(surface.TouchStart, in.onTouchStart)
		in.listen(surface.TouchMove, in.onTouchMove)
		in.listen(surface.TouchEnd, in.onTouchEnd)
		in.listen(surface.TouchCancel, in.onTouchCancel)
	}
}

func ratio(v, origin, size float64) float64 {
	if size == 0 {
		size = 1
	}
	return motion.Clamp01((v - origin) / size)
}

func (in *instance) updateFromEvent(e surface.Event) {
	r := in.host.Bounds()
	in.hover.X = ratio(e.X, r.Left, r.Width)
	in.hover.Y = ratio(e.Y, r.Top, r.Height)
}

func (in *instance) onLeave(surface.Event) {
	in.hover.Active = false
}

// onLinkEnter steers toward the centre of the hovered link.
func (in *instance) onLinkEnter(e surface.Event) {
	in.hover.Active = true
	r := in.host.Bounds()
	cx, _ := e.Target.Center()
	in.hover.X = ratio(cx, r.Left, r.Width)
}

// updateFromTouch follows the first finger while it stays within
// TouchTolerance of the host and reports whether it did.
func (in *instance) updateFromTouch(e surface.Event) bool {
	if len(e.Touches) == 0 {
		return false
	}
	t := e.Touches[0]
	r := in.host.Bounds()
	inBounds := t.X >= r.Left-TouchTolerance &&
		t.X <= r.Right()+TouchTolerance &&
		t.Y >= r.Top-TouchTolerance &&
		t.Y <= r.Bottom()+TouchTolerance
	if inBounds {
		in.hover.X = ratio(t.X, r.Left, r.Width)
		in.hover.Y = ratio(t.Y, r.Top, r.Height)
	}
	return inBounds
}

func (in *instance) cancelRelease() {
	if in.releaseStop != nil {
		in.releaseStop()
		in.releaseStop = nil
	}
}

func (in *instance) onTouchStart(e surface.Event) {
	in.cancelRelease()
	if in.updateFromTouch(e) {
		in.hover.Active = true
	}
}

func (in *instance) onTouchMove(e surface.Event) {
	if in.hover.Active && !in.updateFromTouch(e) {
		in.hover.Active = false
	}
}

func (in *instance) onTouchEnd(surface.Event) {
	in.cancelRelease()
	in.releaseStop = in.rt.env.AfterFunc(TouchReleaseDelay, func() {
		in.releaseStop = nil
		in.hover.Active = false
	})
}

func (in *instance) onTouchCancel(surface.Event) {
	in.cancelRelease()
	in.hover.Active = false
}
