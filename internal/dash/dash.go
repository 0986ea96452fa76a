// Package dash turns runner cursor positions into dash patterns for the
// four border layers.
package dash

import (
	"math"

	"github.com/olivier-w/siderun/internal/surface"
	"github.com/olivier-w/siderun/internal/util"
)

// Pattern is a two-entry dash array with its offset.
type Pattern struct {
	Dash   float64
	Gap    float64
	Offset float64
}

// Array formats the dash array attribute.
func (p Pattern) Array() string {
	return util.FormatPair(p.Dash, p.Gap)
}

// OffsetAttr formats the dash offset attribute.
func (p Pattern) OffsetAttr() string {
	return util.FormatNumber(p.Offset)
}

// Length is one full dash-plus-gap cycle.
func (p Pattern) Length() float64 {
	return p.Dash + p.Gap
}

// Covers reports whether arc position s is inside a dash. The dash offset
// shifts the pattern backwards along the path, as stroke-dashoffset does.
func (p Pattern) Covers(s float64) bool {
	n := p.Length()
	if p.Dash <= 0 || n <= 0 {
		return false
	}
	if p.Gap <= 0 {
		return true
	}
	q := math.Mod(s+p.Offset, n)
	if q < 0 {
		q += n
	}
	return q < p.Dash
}

// Frame holds the pattern for every layer.
type Frame [len(surface.Layers)]Pattern

// Layer returns the pattern for l.
func (f Frame) Layer(l surface.Layer) Pattern {
	return f[l]
}

// Input is what one dash computation needs.
type Input struct {
	Perimeter float64
	Segment   float64
	Gap       float64
	Primary   float64
	Secondary float64
}

// Compute derives all four patterns. Runner 2 follows the primary cursor,
// runner 1 the secondary. The border layers fill the stretches between the
// runners, each kept Gap away from both ends.
func Compute(in Input) Frame {
	p, seg := in.Perimeter, in.Segment
	mainGap := math.Max(0, p-seg)

	var f Frame
	f[surface.Runner2] = Pattern{Dash: seg, Gap: mainGap, Offset: in.Primary}
	f[surface.Runner1] = Pattern{Dash: seg, Gap: mainGap, Offset: in.Secondary}

	lead := math.Max(0, in.Primary-in.Secondary-in.Gap*2-seg)
	f[surface.BorderTop] = Pattern{Dash: lead, Gap: p - lead, Offset: in.Primary - seg - in.Gap}

	trail := math.Max(0, p+in.Secondary-in.Primary-in.Gap*2-seg)
	f[surface.BorderBottom] = Pattern{Dash: trail, Gap: p - trail, Offset: in.Secondary - seg - in.Gap + p*2}
	return f
}
