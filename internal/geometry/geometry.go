// Package geometry derives the rounded-rectangle outline that the flying
// border travels along: corner radius, perimeter, runner segment lengths and
// the base offsets that bound each runner's travel.
package geometry

import "math"

// AppleRatio is the continuous-corner ratio used for squircle-style radii.
const AppleRatio = 0.2237

// AppleRadius returns a squircle-style corner radius for a w×h box.
func AppleRadius(w, h float64) float64 {
	m := math.Min(w, h)
	return math.Min(m*AppleRatio, m/2)
}

// Input describes one geometry pass.
type Input struct {
	// Width and Height are the outer size, host size plus both margins.
	Width  float64
	Height float64

	StrokeWidth float64
	Tail        float64
	Margin      float64

	// BorderRadius is the host's resolved corner radius. The outline is
	// concentric, so the margin is added to it unless UseAppleRadius is set.
	BorderRadius   float64
	UseAppleRadius bool
	// MaxRadius caps the radius when positive.
	MaxRadius float64
}

// Bases are the endpoints each cursor interpolates between.
type Bases struct {
	PrimaryStart   float64 // rest position of the primary cursor
	PrimaryEnd     float64 // primary position with the pointer at the far edge
	SecondaryStart float64 // rest position of the secondary cursor
	SecondaryEnd   float64
	Wrap           float64
}

// Metrics is the result of a geometry pass.
type Metrics struct {
	Width, Height float64 // outer size
	InnerWidth    float64
	InnerHeight   float64
	Radius        float64
	ArcQuarter    float64
	Perimeter     float64
	Segment       float64
	Head          float64
	WidthSpan     float64
	Bases         Bases
}

// Radius resolves the corner radius for in: squircle or concentric policy,
// the optional cap, and finally half the smaller inner dimension.
func Radius(in Input) float64 {
	w := math.Max(0, in.Width)
	h := math.Max(0, in.Height)
	iw := w - in.StrokeWidth
	ih := h - in.StrokeWidth

	var r float64
	if in.UseAppleRadius {
		r = AppleRadius(w, h)
	} else {
		r = in.BorderRadius + in.Margin
	}
	if in.MaxRadius > 0 {
		r = math.Min(r, in.MaxRadius)
	}
	r = math.Min(r, math.Min(iw, ih)/2)
	if r < 0 || math.IsNaN(r) {
		r = 0
	}
	return r
}

// Perimeter returns the rounded-rectangle outline length for an inner
// iw×ih box with corner radius r. Degenerate results fall back to the plain
// rectangle perimeter, and to zero if that is unusable too.
func Perimeter(iw, ih, r float64) float64 {
	p := 2*(iw+ih) - 8*r + 2*math.Pi*r
	if !isUsable(p) {
		p = 2 * (iw + ih)
	}
	if !isUsable(p) {
		return 0
	}
	return p
}

func isUsable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Compute runs a full geometry pass.
func Compute(in Input) Metrics {
	w := math.Max(0, in.Width)
	h := math.Max(0, in.Height)
	iw := w - in.StrokeWidth
	ih := h - in.StrokeWidth
	r := Radius(in)

	arcQ := math.Pi * r * 0.5
	perim := Perimeter(iw, ih, r)

	m := Metrics{
		Width:       w,
		Height:      h,
		InnerWidth:  math.Max(0, iw),
		InnerHeight: math.Max(0, ih),
		Radius:      r,
		ArcQuarter:  arcQ,
		Perimeter:   perim,
		Segment:     arcQ + in.Tail*2,
		Head:        arcQ + in.Tail,
		WidthSpan:   math.Max(0, iw-r*2),
	}
	m.Bases = computeBases(m)
	return m
}

func computeBases(m Metrics) Bases {
	b := Bases{
		PrimaryStart:   m.Head,
		PrimaryEnd:     -m.WidthSpan - m.ArcQuarter + m.Head,
		SecondaryStart: m.Head - m.Perimeter*0.5,
		SecondaryEnd:   -m.Perimeter*0.5 - m.WidthSpan - m.ArcQuarter + m.Head,
	}
	b.Wrap = b.SecondaryEnd + m.Perimeter
	return b
}

// Rect is the geometry written to every border layer.
type Rect struct {
	X, Y          float64
	Width, Height float64
	RX            float64
}

// Layout returns the layer rectangle for m: inset by half the stroke so the
// stroke stays inside the outer box.
func Layout(m Metrics, strokeWidth float64) Rect {
	off := strokeWidth / 2
	return Rect{
		X:      off,
		Y:      off,
		Width:  math.Max(0, m.Width-strokeWidth),
		Height: math.Max(0, m.Height-strokeWidth),
		RX:     m.Radius,
	}
}
