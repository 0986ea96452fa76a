package ui

import (
	"math"
	"strings"

	"github.com/olivier-w/siderun/internal/dash"
	"github.com/olivier-w/siderun/internal/geometry"
	"github.com/olivier-w/siderun/internal/scene"
	"github.com/olivier-w/siderun/internal/surface"
)

// Terminal cells are mapped to document pixels at this size.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

type cell struct {
	r   rune
	c   colorRGB
	set bool
}

type canvas struct {
	cols, rows int
	cells      []cell
}

func newCanvas(cols, rows int) *canvas {
	cols = max(cols, 0)
	rows = max(rows, 0)
	return &canvas{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

func (cv *canvas) put(col, row int, r rune, c colorRGB) {
	if col < 0 || row < 0 || col >= cv.cols || row >= cv.rows {
		return
	}
	cv.cells[row*cv.cols+col] = cell{r: r, c: c, set: true}
}

func (cv *canvas) text(col, row int, s string, c colorRGB) {
	for _, r := range s {
		cv.put(col, row, r, c)
		col++
	}
}

func (cv *canvas) at(col, row int) cell {
	if col < 0 || row < 0 || col >= cv.cols || row >= cv.rows {
		return cell{}
	}
	return cv.cells[row*cv.cols+col]
}

func (cv *canvas) render(p colorProfile) string {
	var sb strings.Builder
	sb.Grow(cv.cols*cv.rows*2 + cv.rows)
	for row := range cv.rows {
		st := newANSIState(p)
		for col := range cv.cols {
			c := cv.cells[row*cv.cols+col]
			if !c.set {
				sb.WriteByte(' ')
				continue
			}
			st.set(&sb, c.c)
			sb.WriteRune(c.r)
		}
		st.reset(&sb)
		if row < cv.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type palette struct {
	host      colorRGB
	label     colorRGB
	link      colorRGB
	linkHover colorRGB
	border    colorRGB
	runner    gradient
}

var defaultPalette = palette{
	host:      toRGB(mustHex("#3e4451")),
	label:     toRGB(mustHex("#abb2bf")),
	link:      toRGB(mustHex("#7f848e")),
	linkHover: toRGB(mustHex("#e5c07b")),
	border:    toRGB(mustHex("#5c6370")),
	runner:    newGradient("#c678dd", "#61afef", "#56b6c2"),
}

func cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

// drawDocument paints every host, its links and its border into cv.
func drawDocument(cv *canvas, doc *scene.Document, pal palette) {
	for _, el := range doc.Elements() {
		drawHost(cv, el, pal)
		if o := el.Overlay(); o != nil {
			drawOverlay(cv, o, pal)
		}
	}
}

func drawHost(cv *canvas, el *scene.Element, pal palette) {
	links := el.Links()
	for i, l := range links {
		col, row := cellOf(l.Left, l.Top+l.Height/2)
		c := pal.link
		if el.HoveredLink() == i {
			c = pal.linkHover
		}
		cv.text(col, row, el.LinkLabel(i), c)
	}
	if len(links) > 0 {
		return
	}
	b := el.Bounds()
	label := el.Label()
	cx, cy := b.Center()
	col, row := cellOf(cx, cy)
	cv.text(col-len([]rune(label))/2, row, label, pal.label)
}

// roundRectDist is the signed distance from (x, y) to the outline of a w×h
// rounded rectangle with corner radius r, negative inside.
func roundRectDist(x, y, w, h, r float64) float64 {
	qx := math.Abs(x-w/2) - (w/2 - r)
	qy := math.Abs(y-h/2) - (h/2 - r)
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r
}

// crossesOutline reports whether the outline passes through the box.
func crossesOutline(x0, y0, x1, y1, w, h, r float64) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range [...][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}, {(x0 + x1) / 2, (y0 + y1) / 2}} {
		d := roundRectDist(p[0], p[1], w, h, r)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo <= 0 && hi >= 0
}

type edge uint8

const (
	edgeHorizontal edge = iota
	edgeVertical
	edgeTopLeft
	edgeTopRight
	edgeBottomLeft
	edgeBottomRight
)

func classify(x, y, w, h, r float64) edge {
	qx := math.Abs(x-w/2) - (w/2 - r)
	qy := math.Abs(y-h/2) - (h/2 - r)
	switch {
	case qx > 0 && qy > 0:
		left, top := x < w/2, y < h/2
		switch {
		case top && left:
			return edgeTopLeft
		case top:
			return edgeTopRight
		case left:
			return edgeBottomLeft
		default:
			return edgeBottomRight
		}
	case qy >= qx:
		return edgeHorizontal
	default:
		return edgeVertical
	}
}

func glyph(e edge, heavy bool) rune {
	switch e {
	case edgeTopLeft:
		return '╭'
	case edgeTopRight:
		return '╮'
	case edgeBottomLeft:
		return '╰'
	case edgeBottomRight:
		return '╯'
	case edgeVertical:
		if heavy {
			return '┃'
		}
		return '│'
	}
	if heavy {
		return '━'
	}
	return '─'
}

var paintOrder = [...]surface.Layer{surface.Runner2, surface.Runner1, surface.BorderTop, surface.BorderBottom}

func drawOverlay(cv *canvas, o *scene.Overlay, pal palette) {
	s := o.Shape(surface.Runner1)
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	var pats [len(surface.Layers)]dash.Pattern
	var have [len(surface.Layers)]bool
	for _, l := range surface.Layers {
		pats[l], have[l] = o.Pattern(l)
	}

	ox, oy := o.Origin()
	x0, y0 := ox+s.X, oy+s.Y
	colMin, rowMin := cellOf(x0, y0)
	colMax, rowMax := cellOf(x0+s.Width, y0+s.Height)

	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			bx0 := float64(col)*cellWidth - x0
			by0 := float64(row)*cellHeight - y0
			bx1, by1 := bx0+cellWidth, by0+cellHeight
			if !crossesOutline(bx0, by0, bx1, by1, s.Width, s.Height, s.RX) {
				continue
			}
			cx, cy := (bx0+bx1)/2, (by0+by1)/2
			pos := geometry.ArcPosition(s.Width, s.Height, s.RX, cx, cy)
			e := classify(cx, cy, s.Width, s.Height, s.RX)

			for _, l := range paintOrder {
				p := pats[l]
				if !have[l] || !p.Covers(pos) {
					continue
				}
				if l == surface.Runner1 || l == surface.Runner2 {
					cv.put(col, row, glyph(e, true), pal.runner.at(dashFraction(p, pos)))
				} else {
					cv.put(col, row, glyph(e, false), pal.border)
				}
				break
			}
		}
	}
}

// dashFraction is how far into its dash s lies, in [0,1).
func dashFraction(p dash.Pattern, s float64) float64 {
	n := p.Length()
	if n <= 0 || p.Dash <= 0 {
		return 0
	}
	q := math.Mod(s+p.Offset, n)
	if q < 0 {
		q += n
	}
	return q / p.Dash
}

// renderDocument rasterises doc into a cols×rows block of text.
func renderDocument(doc *scene.Document, cols, rows int, p colorProfile, pal palette) string {
	cv := newCanvas(cols, rows)
	drawDocument(cv, doc, pal)
	return cv.render(p)
}
