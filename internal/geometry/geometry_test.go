package geometry

import (
	"math"
	"testing"
)

func TestComputeHostScenario(t *testing.T) {
	// 200×50 host, margin 11 → 222×72 outer box.
	m := Compute(Input{
		Width:        200 + 2*11,
		Height:       50 + 2*11,
		StrokeWidth:  3,
		Tail:         10,
		Margin:       11,
		BorderRadius: 12,
	})
	if m.Width != 222 || m.Height != 72 {
		t.Fatalf("expected 222×72, got %v×%v", m.Width, m.Height)
	}
	if m.Radius != 23 {
		t.Fatalf("expected radius 23, got %v", m.Radius)
	}
	if limit := math.Min(m.InnerWidth, m.InnerHeight) / 2; m.Radius > limit {
		t.Fatalf("radius %v exceeds half inner dimension %v", m.Radius, limit)
	}

	wantPerim := 2*(219.0+69.0) - 8*23 + 2*math.Pi*23
	if math.Abs(m.Perimeter-wantPerim) > 1e-9 {
		t.Fatalf("expected perimeter %v, got %v", wantPerim, m.Perimeter)
	}
	arcQ := math.Pi * 23 / 2
	if m.Segment != arcQ+20 || m.Head != arcQ+10 {
		t.Fatalf("unexpected segment/head: %v/%v", m.Segment, m.Head)
	}
	if m.WidthSpan != 219-46 {
		t.Fatalf("expected width span 173, got %v", m.WidthSpan)
	}
	if m.Bases.PrimaryStart != m.Head {
		t.Fatalf("expected primary start at head, got %v", m.Bases.PrimaryStart)
	}
	if got := m.Bases.Wrap - m.Bases.SecondaryEnd; math.Abs(got-m.Perimeter) > 1e-9 {
		t.Fatalf("expected wrap one perimeter past secondary end, got delta %v", got)
	}
}

func TestRadiusNeverExceedsHalfInnerDimension(t *testing.T) {
	tests := []Input{
		{Width: 100, Height: 20, StrokeWidth: 3, BorderRadius: 50, Margin: 11},
		{Width: 100, Height: 20, StrokeWidth: 3, BorderRadius: 50, MaxRadius: 500},
		{Width: 30, Height: 300, StrokeWidth: 1, UseAppleRadius: true},
		{Width: 8, Height: 8, StrokeWidth: 3, BorderRadius: 1},
		{Width: 400, Height: 400, StrokeWidth: 2, BorderRadius: 4, MaxRadius: 3},
	}
	for _, in := range tests {
		r := Radius(in)
		limit := math.Min(in.Width-in.StrokeWidth, in.Height-in.StrokeWidth) / 2
		if r > limit {
			t.Fatalf("radius %v exceeds %v for %+v", r, limit, in)
		}
		if in.MaxRadius > 0 && r > in.MaxRadius {
			t.Fatalf("radius %v exceeds cap %v", r, in.MaxRadius)
		}
	}
}

func TestRadiusUsesResolvedBorderRadius(t *testing.T) {
	in := Input{Width: 222, Height: 72, StrokeWidth: 3, Margin: 11}
	if got := Radius(in); got != 11 {
		t.Fatalf("expected margin-only radius 11, got %v", got)
	}
	in.BorderRadius = 4
	if got := Radius(in); got != 15 {
		t.Fatalf("expected concentric radius 15, got %v", got)
	}
}

func TestAppleRadius(t *testing.T) {
	if got, want := AppleRadius(200, 100), 100*AppleRatio; math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPerimeterAlwaysFiniteAndNonNegative(t *testing.T) {
	sizes := []float64{0, 0.5, 1, 3, 10, 57.3, 1000}
	radii := []float64{0, 2, 12, 40, 1e6}
	for _, w := range sizes {
		for _, h := range sizes {
			for _, br := range radii {
				m := Compute(Input{Width: w, Height: h, StrokeWidth: 3, BorderRadius: br, Margin: 11, Tail: 10})
				if math.IsNaN(m.Perimeter) || math.IsInf(m.Perimeter, 0) || m.Perimeter < 0 {
					t.Fatalf("bad perimeter %v for %v×%v r=%v", m.Perimeter, w, h, br)
				}
			}
		}
	}
}

func TestPerimeterFallsBackToRectangle(t *testing.T) {
	if got := Perimeter(10, 10, math.NaN()); got != 40 {
		t.Fatalf("expected fallback 40, got %v", got)
	}
	if got := Perimeter(-5, -5, 0); got != 0 {
		t.Fatalf("expected 0 for negative box, got %v", got)
	}
}

func TestLayoutInsetsByHalfStroke(t *testing.T) {
	m := Compute(Input{Width: 222, Height: 72, StrokeWidth: 3, Margin: 11, BorderRadius: 12})
	r := Layout(m, 3)
	if r.X != 1.5 || r.Y != 1.5 || r.Width != 219 || r.Height != 69 || r.RX != m.Radius {
		t.Fatalf("unexpected layout: %+v", r)
	}
}

func TestArcPosition(t *testing.T) {
	const iw, ih, r = 100.0, 60.0, 10.0
	perim := Perimeter(iw, ih, r)

	if got := ArcPosition(iw, ih, r, r, 0); math.Abs(got) > 1e-9 {
		t.Fatalf("expected 0 at top tangent point, got %v", got)
	}
	// middle of the top edge
	if got := ArcPosition(iw, ih, r, 50, -3); math.Abs(got-40) > 1e-9 {
		t.Fatalf("expected 40 mid top edge, got %v", got)
	}
	// middle of the right edge: top edge + one quarter arc + half the side
	want := (iw - 2*r) + math.Pi*r/2 + (ih-2*r)/2
	if got := ArcPosition(iw, ih, r, iw+2, ih/2); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v mid right edge, got %v", want, got)
	}
	// middle of the bottom edge sits half way round from the middle of the top
	if got := ArcPosition(iw, ih, r, 50, ih); math.Abs(got-(40+perim/2)) > 1e-9 {
		t.Fatalf("expected %v mid bottom edge, got %v", 40+perim/2, got)
	}

	prev := -1.0
	for x := r; x <= iw-r; x += 5 {
		got := ArcPosition(iw, ih, r, x, 0)
		if got <= prev {
			t.Fatalf("expected increasing arc position along top edge, got %v after %v", got, prev)
		}
		prev = got
	}
}

func TestArcPositionOnCorner(t *testing.T) {
	const iw, ih, r = 100.0, 60.0, 10.0
	// 45° into the top-right corner
	x := iw - r + r*math.Cos(-math.Pi/4)
	y := r + r*math.Sin(-math.Pi/4)
	want := (iw - 2*r) + math.Pi*r/4
	if got := ArcPosition(iw, ih, r, x, y); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
