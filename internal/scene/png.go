package scene

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/surface"
)

// RenderPNG rasterises the document at the given scale and writes a PNG.
func (d *Document) RenderPNG(w io.Writer, p Palette, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	width, height := d.Extent()
	pw, ph := int(math.Ceil(width*scale)), int(math.Ceil(height*scale))
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("nothing to render: canvas is %dx%d", pw, ph)
	}

	dc := gg.NewContext(pw, ph)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.Hex(p.Background))

	for _, el := range d.elements {
		r := el.bounds
		dc.SetDash()
		dc.SetHexColor(p.Host)
		dc.SetLineWidth(scale)
		dc.DrawRoundedRectangle(r.Left*scale, r.Top*scale, r.Width*scale, r.Height*scale,
			config.BorderRadius(el.style)*scale)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroking host %s: %w", el.key, err)
		}

		o := el.overlay
		if o == nil {
			continue
		}
		ox, oy := o.Origin()
		sw := config.StrokeWidth(el.style)
		for _, l := range surface.Layers {
			pat, ok := o.Pattern(l)
			if !ok || pat.Dash <= 0 {
				continue
			}
			s := o.shapes[l]
			dc.SetHexColor(p.Stroke(l))
			dc.SetLineWidth(sw * scale)
			if pat.Gap > 0 {
				dc.SetDash(pat.Dash*scale, pat.Gap*scale)
				dc.SetDashOffset(pat.Offset * scale)
			} else {
				dc.SetDash()
			}
			dc.DrawRoundedRectangle((ox+s.X)*scale, (oy+s.Y)*scale, s.Width*scale, s.Height*scale, s.RX*scale)
			if err := dc.Stroke(); err != nil {
				return fmt.Errorf("stroking %s on %s: %w", l.Class(), el.key, err)
			}
		}
	}
	return dc.EncodePNG(w)
}
