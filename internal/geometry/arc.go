package geometry

import "math"

type segment struct {
	start float64 // arc length at the segment start
	// line segments
	x0, y0, x1, y1 float64
	// arcs
	arc    bool
	cx, cy float64
	a0     float64 // start angle, sweeping clockwise (increasing angle in screen space)
}

// ArcPosition projects (x, y) onto the outline of an iw×ih rounded rectangle
// with corner radius r and returns the arc length of the projected point,
// measured clockwise from the top tangent point (r, 0). This is where an
// SVG rect's dash pattern begins.
func ArcPosition(iw, ih, r, x, y float64) float64 {
	if iw <= 0 || ih <= 0 {
		return 0
	}
	r = math.Max(0, math.Min(r, math.Min(iw, ih)/2))
	segs := outline(iw, ih, r)
	perim := Perimeter(iw, ih, r)

	best := math.Inf(1)
	pos := 0.0
	for _, s := range segs {
		d, local := s.project(r, x, y)
		if d < best {
			best = d
			pos = s.start + local
		}
	}
	if perim > 0 {
		pos = math.Mod(pos, perim)
	}
	return pos
}

func outline(iw, ih, r float64) []segment {
	arcQ := math.Pi * r / 2
	top := iw - 2*r
	side := ih - 2*r

	segs := make([]segment, 0, 8)
	at := 0.0
	addLine := func(x0, y0, x1, y1, length float64) {
		segs = append(segs, segment{start: at, x0: x0, y0: y0, x1: x1, y1: y1})
		at += length
	}
	addArc := func(cx, cy, a0 float64) {
		if r > 0 {
			segs = append(segs, segment{start: at, arc: true, cx: cx, cy: cy, a0: a0})
			at += arcQ
		}
	}

	addLine(r, 0, iw-r, 0, top)
	addArc(iw-r, r, -math.Pi/2)
	addLine(iw, r, iw, ih-r, side)
	addArc(iw-r, ih-r, 0)
	addLine(iw-r, ih, r, ih, top)
	addArc(r, ih-r, math.Pi/2)
	addLine(0, ih-r, 0, r, side)
	addArc(r, r, math.Pi)
	return segs
}

// project returns the distance from (x, y) to the segment and the arc length
// of the closest point, relative to the segment start.
func (s segment) project(r, x, y float64) (dist, local float64) {
	if s.arc {
		a := math.Atan2(y-s.cy, x-s.cx)
		rel := normalizeAngle(a - s.a0)
		if rel > math.Pi/2 {
			// outside the quarter: clamp to the nearer end
			if rel < math.Pi*5/4 {
				rel = math.Pi / 2
			} else {
				rel = 0
			}
		}
		px := s.cx + r*math.Cos(s.a0+rel)
		py := s.cy + r*math.Sin(s.a0+rel)
		return math.Hypot(x-px, y-py), rel * r
	}

	dx, dy := s.x1-s.x0, s.y1-s.y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(x-s.x0, y-s.y0), 0
	}
	t := ((x-s.x0)*dx + (y-s.y0)*dy) / (length * length)
	t = math.Max(0, math.Min(1, t))
	px := s.x0 + t*dx
	py := s.y0 + t*dy
	return math.Hypot(x-px, y-py), t * length
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
