package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/surface"
	"github.com/olivier-w/siderun/internal/util"
)

// Palette colours exported frames.
type Palette struct {
	Background string
	Host       string
	Border     string
	Runner     string
}

// DefaultPalette is a dark theme.
var DefaultPalette = Palette{
	Background: "#1e2127",
	Host:       "#3e4451",
	Border:     "#5c6370",
	Runner:     "#61afef",
}

// Stroke returns the colour for l.
func (p Palette) Stroke(l surface.Layer) string {
	if l == surface.Runner1 || l == surface.Runner2 {
		return p.Runner
	}
	return p.Border
}

// Extent returns the exported canvas size: the viewport when set, otherwise
// the box covering every element and its overlay.
func (d *Document) Extent() (width, height float64) {
	if d.width > 0 && d.height > 0 {
		return d.width, d.height
	}
	for _, el := range d.elements {
		r := el.bounds
		if el.overlay != nil {
			r = r.Expand(el.overlay.margin)
		}
		width = math.Max(width, r.Right())
		height = math.Max(height, r.Bottom())
	}
	return width, height
}

func num(v float64) string { return util.FormatNumber(v) }

// SVG renders the document and every mounted overlay as standalone markup.
func (d *Document) SVG(p Palette) string {
	w, h := d.Extent()
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(w), num(h), num(w), num(h))
	fmt.Fprintf(&b, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", p.Background)

	for _, el := range d.elements {
		r := el.bounds
		fmt.Fprintf(&b, `  <rect class="sr-host" x="%s" y="%s" width="%s" height="%s" rx="%s" fill="none" stroke="%s"/>`+"\n",
			num(r.Left), num(r.Top), num(r.Width), num(r.Height), num(config.BorderRadius(el.style)), p.Host)

		o := el.overlay
		if o == nil {
			continue
		}
		ox, oy := o.Origin()
		fmt.Fprintf(&b, `  <svg class="sr-overlay" x="%s" y="%s" width="%s" height="%s" overflow="visible">`+"\n",
			num(ox), num(oy), num(o.width), num(o.height))
		sw := config.StrokeWidth(el.style)
		for _, l := range surface.Layers {
			s := o.shapes[l]
			fmt.Fprintf(&b, `    <rect class="%s" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="none" stroke="%s" stroke-width="%s"`,
				l.Class(), num(s.X), num(s.Y), num(s.Width), num(s.Height), num(s.RX), num(s.RX), p.Stroke(l), num(sw))
			if v := o.Attr(l, surface.AttrDashArray); v != "" {
				fmt.Fprintf(&b, ` %s="%s"`, surface.AttrDashArray, v)
			}
			if v := o.Attr(l, surface.AttrDashOffset); v != "" {
				fmt.Fprintf(&b, ` %s="%s"`, surface.AttrDashOffset, v)
			}
			b.WriteString("/>\n")
		}
		b.WriteString("  </svg>\n")
	}
	b.WriteString("</svg>\n")
	return b.String()
}
