package scene

import (
	"strconv"
	"strings"

	"github.com/olivier-w/siderun/internal/dash"
	"github.com/olivier-w/siderun/internal/surface"
)

// Shape is the rounded rectangle stroked by one layer, in overlay
// coordinates.
type Shape struct {
	X, Y          float64
	Width, Height float64
	RX            float64
}

// Overlay records everything the engine writes to an injected surface.
type Overlay struct {
	el            *Element
	margin        float64
	width, height float64
	shapes        [len(surface.Layers)]Shape
	attrs         [len(surface.Layers)]map[string]string
	writes        int
	removed       bool
}

func (o *Overlay) SetViewport(width, height float64) {
	o.width, o.height = width, height
}

func (o *Overlay) SetRect(l surface.Layer, x, y, width, height, rx float64) {
	o.shapes[l] = Shape{X: x, Y: y, Width: width, Height: height, RX: rx}
}

func (o *Overlay) SetAttr(l surface.Layer, name, value string) {
	if o.attrs[l] == nil {
		o.attrs[l] = make(map[string]string)
	}
	o.attrs[l][name] = value
	o.writes++
}

func (o *Overlay) Remove() {
	if o.removed {
		return
	}
	o.removed = true
	if o.el.overlay == o {
		o.el.overlay = nil
	}
}

// Removed reports whether the overlay has been detached.
func (o *Overlay) Removed() bool { return o.removed }

// Writes returns the number of attribute writes so far.
func (o *Overlay) Writes() int { return o.writes }

// Attr returns the last value written for name on l.
func (o *Overlay) Attr(l surface.Layer, name string) string {
	return o.attrs[l][name]
}

// Size returns the outer box size.
func (o *Overlay) Size() (width, height float64) { return o.width, o.height }

// Margin returns how far the overlay extends beyond its host.
func (o *Overlay) Margin() float64 { return o.margin }

// Origin returns the overlay's top-left corner in document coordinates.
func (o *Overlay) Origin() (x, y float64) {
	b := o.el.bounds
	return b.Left - o.margin, b.Top - o.margin
}

// Shape returns the rectangle stroked by l.
func (o *Overlay) Shape(l surface.Layer) Shape { return o.shapes[l] }

// Pattern parses the dash attributes of l. ok is false until both have been
// written.
func (o *Overlay) Pattern(l surface.Layer) (p dash.Pattern, ok bool) {
	arr, hasArr := o.attrs[l][surface.AttrDashArray]
	off, hasOff := o.attrs[l][surface.AttrDashOffset]
	if !hasArr || !hasOff {
		return dash.Pattern{}, false
	}
	fields := strings.Fields(arr)
	if len(fields) != 2 {
		return dash.Pattern{}, false
	}
	var err error
	if p.Dash, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return dash.Pattern{}, false
	}
	if p.Gap, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return dash.Pattern{}, false
	}
	if p.Offset, err = strconv.ParseFloat(off, 64); err != nil {
		return dash.Pattern{}, false
	}
	return p, true
}
